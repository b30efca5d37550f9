package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"composer-reconcile/internal/types"
)

func decode(t *testing.T, content string) types.Value {
	t.Helper()
	value, err := types.DecodeValue([]byte(content))
	require.NoError(t, err)
	return value
}

type changeSummary struct {
	Path string
	Op   types.ChangeOp
}

func summarize(changes []types.Change) []changeSummary {
	var out []changeSummary
	for _, change := range changes {
		out = append(out, changeSummary{Path: change.PathString(), Op: change.Op})
	}
	return out
}

func TestDiffValues(t *testing.T) {
	tests := []struct {
		name     string
		before   string
		after    string
		expected []changeSummary
	}{
		{
			name:   "identical",
			before: `{"a": 1, "b": [1, 2]}`,
			after:  `{"b": [1, 2], "a": 1}`,
		},
		{
			name:   "nested addition",
			before: `{"a": {"x": 1}}`,
			after:  `{"a": {"x": 1, "y": 2}}`,
			expected: []changeSummary{
				{Path: `a["y"]`, Op: types.ChangeAdded},
			},
		},
		{
			name:   "removal and change",
			before: `{"a": 1, "b": 2, "c": 3}`,
			after:  `{"a": 1, "c": 4}`,
			expected: []changeSummary{
				{Path: "b", Op: types.ChangeRemoved},
				{Path: "c", Op: types.ChangeChanged},
			},
		},
		{
			name:   "arrays compare whole",
			before: `{"list": ["a", "b"]}`,
			after:  `{"list": ["b", "a"]}`,
			expected: []changeSummary{
				{Path: "list", Op: types.ChangeChanged},
			},
		},
		{
			name:   "kind change",
			before: `{"a": {"x": 1}}`,
			after:  `{"a": "x"}`,
			expected: []changeSummary{
				{Path: "a", Op: types.ChangeChanged},
			},
		},
		{
			name:   "empty array as empty mapping",
			before: `{"extra": []}`,
			after:  `{"extra": {"installer-types": ["library"]}}`,
			expected: []changeSummary{
				{Path: `extra["installer-types"]`, Op: types.ChangeAdded},
			},
		},
		{
			name:   "number literal text",
			before: `{"n": 1.0}`,
			after:  `{"n": 1}`,
			expected: []changeSummary{
				{Path: "n", Op: types.ChangeChanged},
			},
		},
		{
			name:   "scalar documents",
			before: `"a"`,
			after:  `"b"`,
			expected: []changeSummary{
				{Path: "$", Op: types.ChangeChanged},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(DiffValues(decode(t, tt.before), decode(t, tt.after)))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("unexpected changes (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDiffValuesCarriesBeforeAndAfter(t *testing.T) {
	changes := DiffValues(decode(t, `{"a": 1, "b": true}`), decode(t, `{"a": 2, "c": null}`))
	require.Len(t, changes, 3)

	assert.Equal(t, "1", changes[0].Before.String())
	assert.Equal(t, "2", changes[0].After.String())
	assert.Equal(t, types.ChangeRemoved, changes[1].Op)
	assert.Equal(t, "true", changes[1].Before.String())
	assert.True(t, changes[1].After.IsNull())
	assert.Equal(t, types.ChangeAdded, changes[2].Op)
	assert.True(t, changes[2].After.IsNull())
}

func TestDiffManifestGroupsSections(t *testing.T) {
	original := decode(t, `{
		"require": {"drupal/core": "^9.0", "drupal/old": "^1.0", "drupal/token": "^1.9"},
		"repositories": [{"type": "composer", "url": "https://packages.drupal.org/8"}],
		"extra": {"installer-types": ["library"]},
		"name": "acme/site"
	}`)
	current := decode(t, `{
		"require": {"drupal/core": "^9.0", "drupal/token": "^1.10", "drupal/ctools": "^3.7"},
		"repositories": [],
		"extra": {"installer-types": ["library", "npm-asset"], "patches": {}},
		"name": "acme/site"
	}`)

	diff := DiffManifest(original, current)
	expected := []types.RequirementChange{
		{Name: "drupal/old", Op: types.ChangeRemoved, Before: "^1.0"},
		{Name: "drupal/token", Op: types.ChangeChanged, Before: "^1.9", After: "^1.10"},
		{Name: "drupal/ctools", Op: types.ChangeAdded, After: "^3.7"},
	}
	if d := cmp.Diff(expected, diff.Requirements); d != "" {
		t.Fatalf("unexpected requirement changes (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]changeSummary{
		{Path: `extra["installer-types"]`, Op: types.ChangeChanged},
		{Path: `extra["patches"]`, Op: types.ChangeAdded},
	}, summarize(diff.Extra)); d != "" {
		t.Fatalf("unexpected extra changes (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]changeSummary{
		{Path: "repositories", Op: types.ChangeChanged},
	}, summarize(diff.Other)); d != "" {
		t.Fatalf("unexpected other changes (-want +got):\n%s", d)
	}
	assert.Len(t, diff.RequirementsWith(types.ChangeAdded), 1)
	assert.False(t, diff.Empty())
}

func TestDiffManifestToleratesArbitraryOriginal(t *testing.T) {
	original := decode(t, `{"require": "everything", "extra": 3}`)
	current := decode(t, `{"require": {"drupal/core": "^9.0"}, "extra": {}}`)

	diff := DiffManifest(original, current)
	require.Len(t, diff.Requirements, 2)
	assert.Equal(t, types.ChangeRemoved, diff.Requirements[0].Op)
	assert.Equal(t, "everything", diff.Requirements[0].Before)
	assert.Equal(t, types.RequirementChange{Name: "drupal/core", Op: types.ChangeAdded, After: "^9.0"}, diff.Requirements[1])
	require.Len(t, diff.Extra, 1)
	assert.Equal(t, types.ChangeRemoved, diff.Extra[0].Op)
	assert.Empty(t, diff.Other)
}

func TestDiffManifestEmptyForMissingVersusEmptySections(t *testing.T) {
	diff := DiffManifest(decode(t, `{"name": "a"}`), decode(t, `{"name": "a", "require": [], "extra": {}}`))
	assert.True(t, diff.Empty())
}
