package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"composer-reconcile/internal/core"
)

// Diff compares two manifests on disk. AgainstPath is the newer side.
func (s Service) Diff(_ context.Context, req DiffRequest) (DiffResult, error) {
	if strings.TrimSpace(req.ManifestPath) == "" || strings.TrimSpace(req.AgainstPath) == "" {
		return DiffResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest and against paths are required")
	}
	before, err := s.Manifests.Load(req.ManifestPath)
	if err != nil {
		return DiffResult{}, err
	}
	after, err := s.Manifests.Load(req.AgainstPath)
	if err != nil {
		return DiffResult{}, err
	}
	return DiffResult{Diff: core.DiffManifest(before.Document, after.Document)}, nil
}
