package types

import (
	"fmt"
	"strings"
)

// Change is one structural difference between two documents. Path holds
// the object keys leading to the changed value; Before is null for
// additions and After is null for removals.
type Change struct {
	Path   []string
	Op     ChangeOp
	Before Value
	After  Value
}

// PathString renders the path as first["second"]["third"].
func (c Change) PathString() string {
	if len(c.Path) == 0 {
		return "$"
	}
	var builder strings.Builder
	builder.WriteString(c.Path[0])
	for _, key := range c.Path[1:] {
		builder.WriteString(fmt.Sprintf("[%q]", key))
	}
	return builder.String()
}

type RequirementChange struct {
	Name   string
	Op     ChangeOp
	Before string
	After  string
}

// ManifestDiff groups the changes between an original manifest and its
// reconciled state.
type ManifestDiff struct {
	Requirements []RequirementChange
	Extra        []Change
	Other        []Change
}

func (d ManifestDiff) Empty() bool {
	return len(d.Requirements) == 0 && len(d.Extra) == 0 && len(d.Other) == 0
}

// RequirementsWith returns the requirement changes with the given op.
func (d ManifestDiff) RequirementsWith(op ChangeOp) []RequirementChange {
	var out []RequirementChange
	for _, change := range d.Requirements {
		if change.Op == op {
			out = append(out, change)
		}
	}
	return out
}
