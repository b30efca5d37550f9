package adapters

import (
	"io/fs"
	"path/filepath"
	"strings"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
)

// DefaultLibrariesDir is the directory front-end libraries are vendored in.
const DefaultLibrariesDir = "libraries"

type WorkspaceAdapter struct{}

func NewWorkspaceAdapter() WorkspaceAdapter {
	return WorkspaceAdapter{}
}

func (a WorkspaceAdapter) FindInfoFiles(root string) ([]string, error) {
	return a.walk(root, func(path string) bool {
		name := filepath.Base(path)
		return strings.HasSuffix(name, ".info.yml") || strings.HasSuffix(name, ".info.yaml")
	})
}

// FindLibraryPackages matches <librariesDir>/<library>/package.json at any
// depth below root.
func (a WorkspaceAdapter) FindLibraryPackages(root string, librariesDir string) ([]string, error) {
	if strings.TrimSpace(librariesDir) == "" {
		librariesDir = DefaultLibrariesDir
	}
	return a.walk(root, func(path string) bool {
		if filepath.Base(path) != "package.json" {
			return false
		}
		libraryDir := filepath.Dir(path)
		return filepath.Base(filepath.Dir(libraryDir)) == librariesDir
	})
}

func (a WorkspaceAdapter) walk(root string, match func(path string) bool) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, shared.ValidationError("source root is empty")
	}
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipWorkspaceDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if match(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, shared.ReadError("failed to scan source tree "+root, err)
	}
	return paths, nil
}

func shouldSkipWorkspaceDir(name string) bool {
	switch name {
	case ".git", "node_modules", "vendor", ".idea", ".ddev":
		return true
	default:
		return false
	}
}

var _ ports.SourceScannerPort = WorkspaceAdapter{}
