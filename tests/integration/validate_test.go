package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"composer-reconcile/internal/app"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

// TestHandWrittenManifestFlow exercises a project written from scratch:
//
//	write manifest -> validate -> migrate a single module -> validate again
func TestHandWrittenManifestFlow(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old")
	destination := filepath.Join(dir, "new")
	require.NoError(t, os.MkdirAll(filepath.Join(source, "modules", "webform"), 0o755))
	require.NoError(t, os.MkdirAll(destination, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(source, app.ManifestName), []byte(`{"require": {"drupal/core": "~8.9"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(source, "modules", "webform", "webform.info.yml"), []byte(
		"name: Webform\ntype: module\nproject: webform\nversion: '8.x-5.25'\n"), 0o644))
	manifest := `{
  "name": "acme/fresh",
  "require": [],
  "extra": []
}
`
	manifestPath := filepath.Join(destination, app.ManifestName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	service := app.NewService()
	validated, err := service.Validate(t.Context(), app.ValidateRequest{ManifestPath: manifestPath})
	require.NoError(t, err)
	assert.Equal(t, 0, validated.Requirements)

	result, err := service.Migrate(t.Context(), app.MigrateRequest{
		SourceDir:      source,
		DestinationDir: destination,
		Apply:          true,
	})
	require.NoError(t, err)
	assert.Equal(t, []types.RequirementEntry{{Name: "drupal/webform", Version: "^5.25"}}, result.Requirements)
	assert.Empty(t, result.BackupPath)

	validated, err = service.Validate(t.Context(), app.ValidateRequest{ManifestPath: manifestPath})
	require.NoError(t, err)
	assert.Equal(t, 1, validated.Requirements)

	doc, err := types.DecodeValue([]byte(readFile(t, manifestPath)))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "require", "extra", "repositories"}, doc.Keys())
	repositories, _ := doc.Get("repositories")
	assert.Equal(t, "[]", repositories.String())
	assert.Equal(t, "  ", types.DetectIndent([]byte(readFile(t, manifestPath))))
}

func TestValidateRejectsUncomparableConstraint(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), app.ManifestName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"require": {"drupal/core": "^9.0", "acme/tool": "dev-master"}}`), 0o644))

	_, err := app.NewService().Validate(t.Context(), app.ValidateRequest{ManifestPath: manifestPath})
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindParse, shared.KindOf(err))
	assert.Contains(t, shared.Message(err), "acme/tool")
}

func TestMigrateRejectsMalformedDestination(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "old")
	destination := filepath.Join(dir, "new")
	require.NoError(t, os.MkdirAll(source, 0o755))
	require.NoError(t, os.MkdirAll(destination, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(source, app.ManifestName), []byte(`{}`), 0o644))
	manifestPath := filepath.Join(destination, app.ManifestName)
	require.NoError(t, os.WriteFile(manifestPath, []byte(`{"require": {`), 0o644))

	_, err := app.NewService().Migrate(t.Context(), app.MigrateRequest{
		SourceDir:      source,
		DestinationDir: destination,
		Apply:          true,
	})
	require.Error(t, err)
	assert.Equal(t, types.ErrorKindParse, shared.KindOf(err))
	assert.Equal(t, `{"require": {`, readFile(t, manifestPath))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
