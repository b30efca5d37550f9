package adapters

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"composer-reconcile/internal/types"
)

func TestDiffPrinterAdapter_Plain(t *testing.T) {
	diff := types.ManifestDiff{
		Requirements: []types.RequirementChange{
			{Name: "drupal/ctools", Op: types.ChangeAdded, After: "^3.7"},
			{Name: "drupal/token", Op: types.ChangeChanged, Before: "^1.9", After: "^1.10"},
			{Name: "drupal/old", Op: types.ChangeRemoved, Before: "^1.0"},
		},
		Extra: []types.Change{
			{
				Path:  []string{"extra", "installer-types"},
				Op:    types.ChangeAdded,
				After: types.StringsValue("npm-asset", "library"),
			},
		},
		Other: []types.Change{
			{
				Path:   []string{"repositories"},
				Op:     types.ChangeChanged,
				Before: types.ArrayValue(),
				After:  types.StringsValue("https://asset-packagist.org"),
			},
		},
	}

	var out bytes.Buffer
	require.NoError(t, NewDiffPrinterAdapter(false).PrintDiff(&out, diff))
	expected := `require
  + drupal/ctools ^3.7
  ~ drupal/token ^1.9 -> ^1.10
  - drupal/old ^1.0
extra
  + extra["installer-types"]: ["npm-asset","library"]
other
  ~ repositories: [] -> ["https://asset-packagist.org"]
`
	if d := cmp.Diff(expected, out.String()); d != "" {
		t.Fatalf("unexpected rendering (-want +got):\n%s", d)
	}
}

func TestDiffPrinterAdapter_Empty(t *testing.T) {
	assert.Equal(t, "no changes\n", NewDiffPrinterAdapter(true).Render(types.ManifestDiff{}))
}

func TestDiffPrinterAdapter_ColorKeepsText(t *testing.T) {
	diff := types.ManifestDiff{
		Requirements: []types.RequirementChange{{Name: "drupal/ctools", Op: types.ChangeAdded, After: "^3.7"}},
	}
	assert.Contains(t, NewDiffPrinterAdapter(true).Render(diff), "drupal/ctools ^3.7")
}
