package policies

import (
	"context"
	"strings"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/types"
)

const (
	ExtraInstallerPaths = "installer-paths"
	ExtraInstallerTypes = "installer-types"

	// DefaultLibrariesPath is where composer/installers places asset
	// packages when the destination docroot is web/.
	DefaultLibrariesPath = "web/libraries/{$name}"
)

var (
	libraryPathTypes  = []string{"type:bower-asset", "type:npm-asset"}
	libraryInstallers = []string{"bower-asset", "npm-asset", "library"}
)

// InstallerPolicy registers the installer metadata front-end asset
// requirements need to land in the libraries directory.
type InstallerPolicy struct {
	LibrariesPath string
}

func NewInstallerPolicy(librariesPath string) InstallerPolicy {
	if strings.TrimSpace(librariesPath) == "" {
		librariesPath = DefaultLibrariesPath
	}
	return InstallerPolicy{LibrariesPath: librariesPath}
}

// Apply adds the asset package types to installer-paths[LibrariesPath]
// and the asset installers to installer-types. Existing entries are kept.
func (p InstallerPolicy) Apply(ctx context.Context, extra ports.ExtraMetadataPort) error {
	if err := extra.MergeExtraMapList(ctx, ExtraInstallerPaths, p.LibrariesPath, stringValues(libraryPathTypes)...); err != nil {
		return err
	}
	return extra.MergeExtraList(ctx, ExtraInstallerTypes, stringValues(libraryInstallers)...)
}

func stringValues(values []string) []types.Value {
	out := make([]types.Value, 0, len(values))
	for _, value := range values {
		out = append(out, types.StringValue(value))
	}
	return out
}
