package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

const (
	drupalVendor   = "drupal/"
	npmAssetVendor = "npm-asset/"
	// drupalCoreProject is the project key core's own modules carry. Core
	// is required explicitly by the destination, never derived.
	drupalCoreProject = "drupal"
)

var coreCompatVersion = regexp.MustCompile(`^\d+\.x-`)

// RequirementCollector turns the descriptor files of a source tree into
// requirements.
type RequirementCollector struct {
	Scanner   ports.SourceScannerPort
	Info      ports.InfoDescriptorPort
	Libraries ports.LibraryDescriptorPort
}

func NewRequirementCollector(scanner ports.SourceScannerPort, info ports.InfoDescriptorPort, libraries ports.LibraryDescriptorPort) RequirementCollector {
	return RequirementCollector{
		Scanner:   scanner,
		Info:      info,
		Libraries: libraries,
	}
}

// CollectModules derives a requirement from every module, theme and
// profile info file below root that names its drupal.org project.
// Descriptors that cannot be parsed are skipped, not fatal.
func (c RequirementCollector) CollectModules(ctx context.Context, root string) (types.Collection, error) {
	paths, err := c.Scanner.FindInfoFiles(root)
	if err != nil {
		return types.Collection{}, err
	}
	var out types.Collection
	for _, path := range paths {
		descriptor, err := c.Info.LoadInfo(path)
		if err != nil {
			if shared.KindOf(err) != types.ErrorKindParse {
				return types.Collection{}, err
			}
			log.Ctx(ctx).Warn().Str("path", path).Err(err).Msg("skipping unreadable info file")
			out.Skipped = append(out.Skipped, types.SkippedDescriptor{Path: path, Reason: shared.Message(err)})
			continue
		}
		requirement, reason, ok := RequirementFromInfo(descriptor)
		if !ok {
			if reason != "" {
				out.Skipped = append(out.Skipped, types.SkippedDescriptor{Path: path, Reason: reason})
			}
			continue
		}
		out.Requirements = append(out.Requirements, requirement)
	}
	log.Ctx(ctx).Debug().
		Int("info_files", len(paths)).
		Int("requirements", len(out.Requirements)).
		Msg("module requirements collected")
	return out, nil
}

// RequirementFromInfo derives drupal/<project> at ^<version>. Descriptors
// without a project are custom code and yield no requirement and no
// reason; a project without a version is reported.
func RequirementFromInfo(descriptor types.InfoDescriptor) (types.DiscoveredRequirement, string, bool) {
	project := strings.TrimSpace(descriptor.Project)
	if project == "" {
		return types.DiscoveredRequirement{}, "", false
	}
	if project == drupalCoreProject {
		return types.DiscoveredRequirement{}, "", false
	}
	version := strings.TrimSpace(descriptor.Version)
	if version == "" {
		return types.DiscoveredRequirement{}, fmt.Sprintf("project %s has no version", project), false
	}
	return types.DiscoveredRequirement{
		Name:    drupalVendor + project,
		Version: "^" + coreCompatVersion.ReplaceAllString(version, ""),
		Source:  descriptor.Path,
	}, "", true
}

// CollectLibraries derives a requirement from every front-end library
// package.json under the libraries directories of root. repositories is
// the source manifest's repository list, consulted for package overrides.
func (c RequirementCollector) CollectLibraries(ctx context.Context, root string, librariesDir string, repositories types.Value) (types.Collection, error) {
	paths, err := c.Scanner.FindLibraryPackages(root, librariesDir)
	if err != nil {
		return types.Collection{}, err
	}
	var out types.Collection
	for _, path := range paths {
		descriptor, err := c.Libraries.LoadLibrary(path)
		if err != nil {
			if shared.KindOf(err) != types.ErrorKindParse {
				return types.Collection{}, err
			}
			log.Ctx(ctx).Warn().Str("path", path).Err(err).Msg("skipping unreadable package.json")
			out.Skipped = append(out.Skipped, types.SkippedDescriptor{Path: path, Reason: shared.Message(err)})
			continue
		}
		requirement, reason, ok := RequirementFromLibrary(descriptor, repositories)
		if !ok {
			log.Ctx(ctx).Warn().Str("path", path).Msg(reason)
			out.Skipped = append(out.Skipped, types.SkippedDescriptor{Path: path, Reason: reason})
			continue
		}
		out.Requirements = append(out.Requirements, requirement)
	}
	log.Ctx(ctx).Debug().
		Int("packages", len(paths)).
		Int("requirements", len(out.Requirements)).
		Msg("library requirements collected")
	return out, nil
}

// RequirementFromLibrary names a library after the last path segment of
// its package name, or of its repository URL when the name is empty. A
// source repository of type package registered under that name wins;
// otherwise the library is guessed to be npm-asset/<name>.
func RequirementFromLibrary(descriptor types.LibraryDescriptor, repositories types.Value) (types.DiscoveredRequirement, string, bool) {
	reference := strings.TrimSpace(descriptor.Name)
	if reference == "" {
		reference = strings.TrimSpace(descriptor.RepositoryURL)
	}
	if reference == "" {
		return types.DiscoveredRequirement{}, "package.json has neither a name nor a repository; add it to require by hand as npm-asset/<name>", false
	}
	library := shared.LastPathSegment(reference)
	if library == "" {
		return types.DiscoveredRequirement{}, fmt.Sprintf("cannot derive a library name from %q", reference), false
	}
	if name, version, ok := repositoryPackage(repositories, library); ok {
		return types.DiscoveredRequirement{Name: name, Version: version, Source: descriptor.Path}, "", true
	}
	version := strings.TrimSpace(descriptor.Version)
	if version == "" {
		return types.DiscoveredRequirement{}, fmt.Sprintf("library %s has no version", library), false
	}
	return types.DiscoveredRequirement{
		Name:    npmAssetVendor + library,
		Version: "^" + version,
		Source:  descriptor.Path,
	}, "", true
}

// repositoryPackage finds the package block registered for library. Keyed
// repository maps match on the key; repository lists match on the last
// segment of package.name.
func repositoryPackage(repositories types.Value, library string) (string, string, bool) {
	switch repositories.Kind() {
	case types.ValueObject:
		repository, ok := repositories.Get(library)
		if !ok {
			return "", "", false
		}
		return packageBlock(repository)
	case types.ValueArray:
		for _, repository := range repositories.Items() {
			name, version, ok := packageBlock(repository)
			if ok && shared.LastPathSegment(name) == library {
				return name, version, true
			}
		}
	}
	return "", "", false
}

func packageBlock(repository types.Value) (string, string, bool) {
	block, ok := repository.Get("package")
	if !ok {
		return "", "", false
	}
	name, nameOK := stringField(block, "name")
	version, versionOK := stringField(block, "version")
	if !nameOK || !versionOK {
		return "", "", false
	}
	return name, version, true
}

func stringField(v types.Value, key string) (string, bool) {
	field, ok := v.Get(key)
	if !ok {
		return "", false
	}
	text, ok := field.AsString()
	if !ok || strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

// MergeCollection feeds every discovered requirement into the reconciler,
// stopping at the first failure.
func MergeCollection(ctx context.Context, reconciler *ManifestReconciler, collection types.Collection) error {
	for _, requirement := range collection.Requirements {
		if err := reconciler.AddRequirement(ctx, requirement.Name, requirement.Version); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeOf(err)).
				WithMsg(fmt.Sprintf("%s (from %s)", shared.Message(err), requirement.Source)).
				WithCause(err)
		}
	}
	return nil
}
