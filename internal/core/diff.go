package core

import "composer-reconcile/internal/types"

// DiffValues returns the structural changes turning before into after.
// Objects are compared key by key (keys of before first, in their order,
// then keys only after has); arrays and scalars are compared as whole
// values. An empty array and an empty object are treated as the same empty
// mapping.
func DiffValues(before types.Value, after types.Value) []types.Change {
	var changes []types.Change
	diffAt(nil, before, after, &changes)
	return changes
}

func diffAt(path []string, before types.Value, after types.Value, out *[]types.Change) {
	before, after = asMappings(before, after)
	if before.Kind() == types.ValueObject && after.Kind() == types.ValueObject {
		for _, member := range before.Members() {
			next, ok := after.Get(member.Key)
			if !ok {
				*out = append(*out, types.Change{
					Path:   childPath(path, member.Key),
					Op:     types.ChangeRemoved,
					Before: member.Value,
				})
				continue
			}
			diffAt(childPath(path, member.Key), member.Value, next, out)
		}
		for _, member := range after.Members() {
			if _, ok := before.Get(member.Key); ok {
				continue
			}
			*out = append(*out, types.Change{
				Path:  childPath(path, member.Key),
				Op:    types.ChangeAdded,
				After: member.Value,
			})
		}
		return
	}
	if before.Equal(after) {
		return
	}
	*out = append(*out, types.Change{
		Path:   append([]string(nil), path...),
		Op:     types.ChangeChanged,
		Before: before,
		After:  after,
	})
}

func asMappings(before types.Value, after types.Value) (types.Value, types.Value) {
	if isEmptyArray(before) && after.Kind() == types.ValueObject {
		before = types.ObjectValue()
	}
	if isEmptyArray(after) && before.Kind() == types.ValueObject {
		after = types.ObjectValue()
	}
	return before, after
}

func isEmptyArray(v types.Value) bool {
	return v.Kind() == types.ValueArray && v.Len() == 0
}

func childPath(path []string, key string) []string {
	out := make([]string, 0, len(path)+1)
	out = append(out, path...)
	return append(out, key)
}

// DiffManifest compares two manifest documents and groups the changes by
// the section they touch. It makes no assumption that current is a superset
// of original.
func DiffManifest(original types.Value, current types.Value) types.ManifestDiff {
	var diff types.ManifestDiff
	for _, change := range DiffValues(section(original, types.SectionRequire), section(current, types.SectionRequire)) {
		diff.Requirements = append(diff.Requirements, types.RequirementChange{
			Name:   change.Path[0],
			Op:     change.Op,
			Before: constraintText(change.Before, change.Op != types.ChangeAdded),
			After:  constraintText(change.After, change.Op != types.ChangeRemoved),
		})
	}
	for _, change := range DiffValues(section(original, types.SectionExtra), section(current, types.SectionExtra)) {
		change.Path = append([]string{types.SectionExtra}, change.Path...)
		diff.Extra = append(diff.Extra, change)
	}
	diff.Other = DiffValues(withoutSections(original), withoutSections(current))
	return diff
}

// section returns doc[key] as a mapping. A missing section is an empty
// mapping; a section that is not a mapping is wrapped under an empty key so
// that it still shows up as a change.
func section(doc types.Value, key string) types.Value {
	value, ok := doc.Get(key)
	if !ok || isEmptyArray(value) {
		return types.ObjectValue()
	}
	if value.Kind() != types.ValueObject {
		return types.ObjectValue(types.Member{Key: "", Value: value})
	}
	return value
}

func withoutSections(doc types.Value) types.Value {
	if doc.Kind() != types.ValueObject {
		return doc
	}
	return doc.Delete(types.SectionRequire).Delete(types.SectionExtra)
}

func constraintText(v types.Value, present bool) string {
	if !present {
		return ""
	}
	if text, ok := v.AsString(); ok {
		return text
	}
	return v.String()
}
