package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

func TestNewRequirementRejectsEmptyName(t *testing.T) {
	for _, name := range []string{"", "  "} {
		_, err := NewRequirement(name, "1.0.0")
		require.Error(t, err)
		assert.Equal(t, types.ErrorKindValidation, shared.KindOf(err))
	}
}

func TestRequirementAccessors(t *testing.T) {
	requirement, err := NewRequirement("drupal/token", "^1.9")
	require.NoError(t, err)
	assert.Equal(t, "drupal/token", requirement.Name())
	assert.Equal(t, "^1.9", requirement.Version())
	assert.Equal(t, "^1.9", requirement.String())
}

func TestRequirementComparisons(t *testing.T) {
	requirement, err := NewRequirement("drupal/token", "^1.9")
	require.NoError(t, err)

	greater, err := requirement.IsGreaterThan("^1.5")
	require.NoError(t, err)
	assert.True(t, greater)

	less, err := requirement.IsLessThan("^1.5")
	require.NoError(t, err)
	assert.False(t, less)

	less, err = requirement.IsLessThan("^2.0")
	require.NoError(t, err)
	assert.True(t, less)
}

func TestRequirementEqualVersionsAreNeitherGreaterNorLess(t *testing.T) {
	requirement, err := NewRequirement("drupal/token", "1.2.0")
	require.NoError(t, err)

	greater, err := requirement.IsGreaterThan("1.2")
	require.NoError(t, err)
	less, err := requirement.IsLessThan("1.2")
	require.NoError(t, err)

	assert.False(t, greater)
	assert.False(t, less)
}

func TestSetVersionIfGreaterIsOrderIndependent(t *testing.T) {
	orders := [][]string{
		{"^8.3", "^8.1", "^8.5"},
		{"^8.1", "^8.3", "^8.5"},
		{"^8.5", "^8.3", "^8.1"},
		{"^8.3", "^8.5", "^8.1"},
		{"^8.1", "^8.5", "^8.3"},
		{"^8.5", "^8.1", "^8.3"},
	}
	for _, order := range orders {
		requirement, err := NewRequirement("drupal/pathauto", order[0])
		require.NoError(t, err)
		for _, version := range order[1:] {
			_, err := requirement.SetVersionIfGreater(version)
			require.NoError(t, err)
		}
		assert.Equal(t, "^8.5", requirement.Version(), "order %v", order)
	}
}

func permutations(values []string) [][]string {
	if len(values) <= 1 {
		return [][]string{append([]string(nil), values...)}
	}
	var out [][]string
	for i := range values {
		rest := make([]string, 0, len(values)-1)
		rest = append(rest, values[:i]...)
		rest = append(rest, values[i+1:]...)
		for _, tail := range permutations(rest) {
			out = append(out, append([]string{values[i]}, tail...))
		}
	}
	return out
}

func TestSetVersionIfGreaterIsOrderIndependentAcrossStabilities(t *testing.T) {
	versions := []string{"1.0.0-dev", "1.0.0", "1.0.0-RC2", "^1.0.0-beta1", "1.0.0-alpha3"}
	orders := permutations(versions)
	require.Len(t, orders, 120)
	for _, order := range orders {
		requirement, err := NewRequirement("acme/widget", order[0])
		require.NoError(t, err)
		for _, version := range order[1:] {
			_, err := requirement.SetVersionIfGreater(version)
			require.NoError(t, err)
		}
		assert.Equal(t, "1.0.0", requirement.Version(), "order %v", order)
	}
}

func TestAddRequirementRejectsUnknownStabilityInAnyOrder(t *testing.T) {
	for _, order := range permutations([]string{"1.0.0-dev", "1.0.0", "1.0.0-canary"}) {
		reconciler := newReconciler(t, `{"require": {}}`)
		for _, version := range order {
			err := reconciler.AddRequirement(t.Context(), "acme/widget", version)
			if version == "1.0.0-canary" {
				require.Error(t, err, "order %v", order)
				assert.Equal(t, types.ErrorKindParse, shared.KindOf(err))
				continue
			}
			require.NoError(t, err, "order %v", order)
		}
		entry, ok := reconciler.Requirement("acme/widget")
		require.True(t, ok, "order %v", order)
		assert.Equal(t, "1.0.0", entry.Version, "order %v", order)
	}
}

func TestSetVersionIfGreaterKeepsHeldOnTie(t *testing.T) {
	requirement, err := NewRequirement("drupal/pathauto", "1.0")
	require.NoError(t, err)

	changed, err := requirement.SetVersionIfGreater("1.0.0")
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "1.0", requirement.Version())

	changed, err = requirement.SetVersionIfGreater("1.1")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "1.1", requirement.Version())
}

func TestSetVersionIfGreaterLeavesStateOnError(t *testing.T) {
	requirement, err := NewRequirement("drupal/pathauto", "^1.8")
	require.NoError(t, err)

	changed, err := requirement.SetVersionIfGreater("dev-master")
	require.Error(t, err)
	assert.False(t, changed)
	assert.Equal(t, types.ErrorKindParse, shared.KindOf(err))
	assert.Equal(t, "^1.8", requirement.Version())
}
