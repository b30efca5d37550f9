package core

import (
	"context"
	"fmt"
	"time"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

// ManifestReconciler folds discovered requirements, repositories and extra
// metadata into a loaded destination manifest. The loaded manifest is kept
// as the original and never modified.
type ManifestReconciler struct {
	manifest        types.Manifest
	requirements    []*Requirement
	index           map[string]int
	repositories    types.Value
	hasRepositories bool
	extra           types.Value
	cache           *versionCache
}

// NewManifestReconciler seeds a reconciler from a loaded manifest.
func NewManifestReconciler(manifest types.Manifest) (*ManifestReconciler, error) {
	doc := manifest.Document
	if doc.Kind() != types.ValueObject {
		return nil, shared.ParseError(fmt.Sprintf("manifest %s is not a JSON object", manifest.Path), nil)
	}
	m := &ManifestReconciler{
		manifest: manifest,
		index:    map[string]int{},
		extra:    types.ObjectValue(),
		cache:    newVersionCache(),
	}

	if require, ok := doc.Get(types.SectionRequire); ok && !isEmptyArray(require) {
		if require.Kind() != types.ValueObject {
			return nil, shared.ValidationError(fmt.Sprintf("manifest %s: require is not a mapping", manifest.Path))
		}
		for _, member := range require.Members() {
			version, ok := member.Value.AsString()
			if !ok {
				return nil, shared.ValidationError(fmt.Sprintf("manifest %s: constraint of %s is not a string", manifest.Path, member.Key))
			}
			if err := m.insert(member.Key, version); err != nil {
				return nil, err
			}
		}
	}
	if repositories, ok := doc.Get(types.SectionRepositories); ok {
		m.repositories, m.hasRepositories = repositories, true
	}
	if extra, ok := doc.Get(types.SectionExtra); ok && !isEmptyArray(extra) {
		if extra.Kind() != types.ValueObject {
			return nil, shared.ValidationError(fmt.Sprintf("manifest %s: extra is not a mapping", manifest.Path))
		}
		m.extra = extra
	}
	return m, nil
}

// LoadManifestReconciler loads path through store and seeds a reconciler
// from it.
func LoadManifestReconciler(ctx context.Context, store ports.ManifestStorePort, path string) (*ManifestReconciler, error) {
	manifest, err := store.Load(path)
	if err != nil {
		return nil, err
	}
	m, err := NewManifestReconciler(manifest)
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Str("path", path).
		Int("requirements", len(m.requirements)).
		Msg("manifest loaded")
	return m, nil
}

func (m *ManifestReconciler) insert(name string, version string) error {
	requirement, err := newRequirement(name, version, m.cache)
	if err != nil {
		return err
	}
	key := shared.NormalizePackageName(requirement.Name())
	if i, ok := m.index[key]; ok {
		m.requirements[i] = requirement
		return nil
	}
	m.index[key] = len(m.requirements)
	m.requirements = append(m.requirements, requirement)
	return nil
}

// AddRequirement inserts name at version, or ratchets an existing entry up
// to version. Package names match case-insensitively and keep the spelling
// they were first seen with. A failed call leaves the reconciler unchanged.
func (m *ManifestReconciler) AddRequirement(ctx context.Context, name string, version string) error {
	requirement, ok := m.lookup(name)
	if !ok {
		if _, err := NewRequirement(name, version); err != nil {
			return err
		}
		if _, err := m.cache.version(version); err != nil {
			return shared.ParseError(fmt.Sprintf("requirement %s: %s", name, shared.Message(err)), err)
		}
		if err := m.insert(name, version); err != nil {
			return err
		}
		log.Ctx(ctx).Debug().Str("package", name).Str("version", version).Msg("requirement added")
		return nil
	}
	previous := requirement.Version()
	changed, err := requirement.SetVersionIfGreater(version)
	if err != nil {
		return shared.ParseError(fmt.Sprintf("requirement %s: %s", requirement.Name(), shared.Message(err)), err)
	}
	if changed {
		log.Ctx(ctx).Debug().
			Str("package", requirement.Name()).
			Str("from", previous).
			Str("to", version).
			Msg("requirement raised")
	}
	return nil
}

func (m *ManifestReconciler) lookup(name string) (*Requirement, bool) {
	i, ok := m.index[shared.NormalizePackageName(name)]
	if !ok {
		return nil, false
	}
	return m.requirements[i], true
}

// Requirement returns the requirement held for name.
func (m *ManifestReconciler) Requirement(name string) (types.RequirementEntry, bool) {
	requirement, ok := m.lookup(name)
	if !ok {
		return types.RequirementEntry{}, false
	}
	return types.RequirementEntry{Name: requirement.Name(), Version: requirement.Version()}, true
}

// Requirements returns the held requirements in insertion order.
func (m *ManifestReconciler) Requirements() []types.RequirementEntry {
	out := make([]types.RequirementEntry, 0, len(m.requirements))
	for _, requirement := range m.requirements {
		out = append(out, types.RequirementEntry{Name: requirement.Name(), Version: requirement.Version()})
	}
	return out
}

// SetRepositories replaces the repository list wholesale.
func (m *ManifestReconciler) SetRepositories(repositories types.Value) {
	m.repositories, m.hasRepositories = repositories, true
}

func (m *ManifestReconciler) Repositories() (types.Value, bool) {
	return m.repositories, m.hasRepositories
}

// ExtraProperty reads extra[key]. ok is false when the key is absent.
func (m *ManifestReconciler) ExtraProperty(key string) (types.Value, bool) {
	return m.extra.Get(key)
}

func (m *ManifestReconciler) SetExtraProperty(key string, value types.Value) {
	m.extra = m.extra.Set(key, value)
}

func (m *ManifestReconciler) Extra() types.Value {
	return m.extra
}

// MergeExtraList unions values into the list at extra[key], dropping
// duplicates and keeping first-seen order. An absent key starts from an
// empty list.
func (m *ManifestReconciler) MergeExtraList(ctx context.Context, key string, values ...types.Value) error {
	existing, ok := m.extra.Get(key)
	if !ok {
		existing = types.ArrayValue()
	}
	if existing.Kind() != types.ValueArray {
		return shared.ValidationError(fmt.Sprintf("extra %s is a %s, not a list", key, existing.Kind()))
	}
	merged, added := unionValues(existing.Items(), values)
	if ok && added == 0 {
		return nil
	}
	m.extra = m.extra.Set(key, types.ArrayValue(merged...))
	log.Ctx(ctx).Debug().Str("extra", key).Int("added", added).Msg("extra list merged")
	return nil
}

// MergeExtraMapList is MergeExtraList for the list at extra[key][subkey].
func (m *ManifestReconciler) MergeExtraMapList(ctx context.Context, key string, subkey string, values ...types.Value) error {
	table, tableFound := m.extra.Get(key)
	if !tableFound || isEmptyArray(table) {
		table = types.ObjectValue()
	}
	if table.Kind() != types.ValueObject {
		return shared.ValidationError(fmt.Sprintf("extra %s is a %s, not a mapping", key, table.Kind()))
	}
	existing, listFound := table.Get(subkey)
	if !listFound {
		existing = types.ArrayValue()
	}
	if existing.Kind() != types.ValueArray {
		return shared.ValidationError(fmt.Sprintf("extra %s[%q] is a %s, not a list", key, subkey, existing.Kind()))
	}
	merged, added := unionValues(existing.Items(), values)
	if tableFound && listFound && added == 0 {
		return nil
	}
	m.extra = m.extra.Set(key, table.Set(subkey, types.ArrayValue(merged...)))
	log.Ctx(ctx).Debug().Str("extra", key).Str("entry", subkey).Int("added", added).Msg("extra list merged")
	return nil
}

func unionValues(existing []types.Value, incoming []types.Value) ([]types.Value, int) {
	out := make([]types.Value, 0, len(existing)+len(incoming))
	added := 0
	for i, value := range append(existing, incoming...) {
		if containsValue(out, value) {
			continue
		}
		out = append(out, value)
		if i >= len(existing) {
			added++
		}
	}
	return out, added
}

func containsValue(values []types.Value, value types.Value) bool {
	for _, candidate := range values {
		if candidate.Equal(value) {
			return true
		}
	}
	return false
}

// Snapshot returns the reconciled document. Top-level keys keep their
// original order and sections that did not change keep their original
// encoding. Sections the original lacked are appended in the order
// require, repositories, extra.
func (m *ManifestReconciler) Snapshot() types.Value {
	original := m.manifest.Document
	sections := []types.Member{
		{Key: types.SectionRequire, Value: m.requireValue()},
	}
	if m.hasRepositories {
		sections = append(sections, types.Member{Key: types.SectionRepositories, Value: m.repositories})
	}
	sections = append(sections, types.Member{Key: types.SectionExtra, Value: m.extra})

	out := types.ObjectValue()
	for _, member := range original.Members() {
		out = out.Set(member.Key, member.Value)
	}
	for _, section := range sections {
		previous, ok := original.Get(section.Key)
		switch {
		case ok && sameSection(previous, section.Value):
		case ok:
			out = out.Set(section.Key, section.Value)
		case section.Value.Len() > 0 || section.Key == types.SectionRepositories:
			out = out.Set(section.Key, section.Value)
		}
	}
	return out
}

func (m *ManifestReconciler) requireValue() types.Value {
	members := make([]types.Member, 0, len(m.requirements))
	for _, requirement := range m.requirements {
		members = append(members, types.Member{Key: requirement.Name(), Value: types.StringValue(requirement.Version())})
	}
	return types.ObjectValue(members...)
}

func sameSection(previous types.Value, current types.Value) bool {
	if previous.Identical(current) {
		return true
	}
	return isEmptyArray(previous) && current.Kind() == types.ValueObject && current.Len() == 0
}

// Diff compares the reconciled document with the original.
func (m *ManifestReconciler) Diff() types.ManifestDiff {
	return DiffManifest(m.manifest.Document, m.Snapshot())
}

// Encode renders the reconciled document with the original's indent.
func (m *ManifestReconciler) Encode() ([]byte, error) {
	data, err := types.EncodeIndent(m.Snapshot(), m.manifest.Indent)
	if err != nil {
		return nil, shared.ParseError(fmt.Sprintf("failed to encode manifest %s", m.manifest.Path), err)
	}
	return data, nil
}

func (m *ManifestReconciler) Path() string {
	return m.manifest.Path
}

func (m *ManifestReconciler) Original() types.Manifest {
	return m.manifest
}

// BackupFile copies the on-disk manifest to a timestamped sibling and
// returns the sibling's path.
func (m *ManifestReconciler) BackupFile(ctx context.Context, store ports.ManifestStorePort, at time.Time) (string, error) {
	backup, err := store.Backup(m.manifest.Path, at)
	if err != nil {
		return "", err
	}
	log.Ctx(ctx).Debug().Str("path", m.manifest.Path).Str("backup", backup).Msg("manifest backed up")
	return backup, nil
}

// Write encodes the reconciled document and replaces the manifest at its
// original path. The encoding is decoded again before anything is written.
func (m *ManifestReconciler) Write(ctx context.Context, store ports.ManifestStorePort) error {
	assert.NotEmpty(ctx, m.manifest.Path, "manifest path must be set")
	for _, requirement := range m.requirements {
		assert.NotEmpty(ctx, requirement.Name(), "requirement name must be set")
	}
	data, err := m.Encode()
	if err != nil {
		return err
	}
	if _, err := types.DecodeValue(data); err != nil {
		return shared.ParseError(fmt.Sprintf("encoded manifest %s is not valid JSON", m.manifest.Path), err)
	}
	if err := store.Write(m.manifest.Path, data); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("path", m.manifest.Path).Int("bytes", len(data)).Msg("manifest written")
	return nil
}
