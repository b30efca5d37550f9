// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// RepoRoot returns the absolute path to the repository root, resolved
// from the location of this file so it works from any package directory.
func RepoRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok, "cannot locate testutil source file")
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}

// FixtureProject copies fixtures/<name> into a fresh temp directory and
// returns the copy, so tests can migrate into it without touching the
// committed fixtures.
func FixtureProject(t *testing.T, name string) string {
	t.Helper()
	src := filepath.Join(RepoRoot(t), "fixtures", name)
	dst := filepath.Join(t.TempDir(), name)
	CopyTree(t, src, dst)
	return dst
}

// CopyTree copies the regular files below src to dst.
func CopyTree(t *testing.T, src string, dst string) {
	t.Helper()
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
	require.NoError(t, err)
}

// ReadFile returns the content of path as a string.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
