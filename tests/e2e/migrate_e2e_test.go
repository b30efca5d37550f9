package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"composer-reconcile/tests/testutil"
)

func TestMigrateCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	source := testutil.FixtureProject(t, "source")
	destination := testutil.FixtureProject(t, "destination")

	cmd := exec.Command("go", "run", "./cmd/composer-reconcile", "migrate",
		"--source", source,
		"--destination", destination,
		"--yes",
		"--color=false",
	)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))

	manifest := testutil.ReadFile(t, filepath.Join(destination, "composer.json"))
	assert.Contains(t, manifest, `"drupal/ctools": "^3.7"`)
	assert.Contains(t, manifest, `"npm-asset/chosen": "^1.8.7"`)
	assert.Contains(t, string(out), "backed up: ")

	entries, err := os.ReadDir(destination)
	require.NoError(t, err)
	var backups int
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "backup-") {
			backups++
		}
	}
	assert.Equal(t, 1, backups)
}

func TestValidateCommandExitCodeE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	manifest := filepath.Join(t.TempDir(), "composer.json")
	require.NoError(t, os.WriteFile(manifest, []byte(`{"require": "nope"}`), 0o644))

	cmd := exec.Command("go", "run", "./cmd/composer-reconcile", "validate", "--manifest", manifest)
	cmd.Dir = root
	out, err := cmd.CombinedOutput()
	require.Error(t, err, string(out))
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	// go run reports a failing program as exit status 1 regardless of its code.
	assert.Contains(t, string(out), "require")
}
