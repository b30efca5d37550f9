package app

import "composer-reconcile/internal/types"

// ManifestName is the manifest file looked up in project directories.
const ManifestName = "composer.json"

type MigrateRequest struct {
	SourceDir      string
	DestinationDir string
	// LibrariesDir names the directory front-end libraries are vendored
	// in within the source tree.
	LibrariesDir string
	// LibrariesPath is the installer path registered for asset packages.
	LibrariesPath string
	Apply         bool
	Backup        bool
}

// StageResult is the destination diff as it stood after one migration
// stage.
type StageResult struct {
	Name string
	Diff types.ManifestDiff
}

type MigrateResult struct {
	SourcePath      string
	DestinationPath string
	Stages          []StageResult
	Diff            types.ManifestDiff
	Requirements    []types.RequirementEntry
	Skipped         []types.SkippedDescriptor
	BackupPath      string
	Written         bool
}

type DiffRequest struct {
	ManifestPath string
	AgainstPath  string
}

type DiffResult struct {
	Diff types.ManifestDiff
}

type ValidateRequest struct {
	ManifestPath string
}

type ValidateResult struct {
	Path         string
	Requirements int
}
