package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"composer-reconcile/internal/core"
	"composer-reconcile/internal/policies"
	"composer-reconcile/internal/types"
)

const (
	StageRepositories = "repositories"
	StageModules      = "modules"
	StageLibraries    = "libraries"
)

// Migrate folds the source project's repositories, module and theme
// projects and front-end libraries into the destination manifest. Nothing
// is written unless req.Apply is set.
func (s Service) Migrate(ctx context.Context, req MigrateRequest) (MigrateResult, error) {
	sourceDir := strings.TrimSpace(req.SourceDir)
	if sourceDir == "" {
		return MigrateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is required")
	}
	destinationDir := strings.TrimSpace(req.DestinationDir)
	if destinationDir == "" {
		return MigrateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("destination directory is required")
	}
	result := MigrateResult{
		SourcePath:      filepath.Join(sourceDir, ManifestName),
		DestinationPath: filepath.Join(destinationDir, ManifestName),
	}

	source, err := s.Manifests.Load(result.SourcePath)
	if err != nil {
		return MigrateResult{}, err
	}
	reconciler, err := core.LoadManifestReconciler(ctx, s.Manifests, result.DestinationPath)
	if err != nil {
		return MigrateResult{}, err
	}

	repositories, ok := source.Document.Get(types.SectionRepositories)
	if !ok {
		repositories = types.ArrayValue()
	}
	reconciler.SetRepositories(repositories)
	result.Stages = append(result.Stages, StageResult{Name: StageRepositories, Diff: reconciler.Diff()})

	collector := core.NewRequirementCollector(s.Scanner, s.Info, s.Libraries)
	modules, err := collector.CollectModules(ctx, sourceDir)
	if err != nil {
		return MigrateResult{}, err
	}
	if err := core.MergeCollection(ctx, reconciler, modules); err != nil {
		return MigrateResult{}, err
	}
	result.Skipped = append(result.Skipped, modules.Skipped...)
	result.Stages = append(result.Stages, StageResult{Name: StageModules, Diff: reconciler.Diff()})

	libraries, err := collector.CollectLibraries(ctx, sourceDir, req.LibrariesDir, repositories)
	if err != nil {
		return MigrateResult{}, err
	}
	if err := core.MergeCollection(ctx, reconciler, libraries); err != nil {
		return MigrateResult{}, err
	}
	if err := policies.NewInstallerPolicy(req.LibrariesPath).Apply(ctx, reconciler); err != nil {
		return MigrateResult{}, err
	}
	result.Skipped = append(result.Skipped, libraries.Skipped...)
	result.Stages = append(result.Stages, StageResult{Name: StageLibraries, Diff: reconciler.Diff()})

	result.Diff = reconciler.Diff()
	result.Requirements = reconciler.Requirements()
	if !req.Apply {
		log.Ctx(ctx).Debug().Str("destination", result.DestinationPath).Msg("dry run, manifest not written")
		return result, nil
	}
	if req.Backup {
		backup, err := reconciler.BackupFile(ctx, s.Manifests, s.Clock())
		if err != nil {
			return MigrateResult{}, err
		}
		result.BackupPath = backup
	}
	if err := reconciler.Write(ctx, s.Manifests); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}
