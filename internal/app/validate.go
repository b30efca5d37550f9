package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"composer-reconcile/internal/core"
	"composer-reconcile/internal/shared"
)

// Validate checks that a manifest loads and that every requirement carries
// a comparable version constraint.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	path := strings.TrimSpace(req.ManifestPath)
	if path == "" {
		return ValidateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	reconciler, err := core.LoadManifestReconciler(ctx, s.Manifests, path)
	if err != nil {
		return ValidateResult{}, err
	}
	requirements := reconciler.Requirements()
	for _, requirement := range requirements {
		if _, err := core.ParseVersion(requirement.Version); err != nil {
			return ValidateResult{}, shared.ParseError(
				fmt.Sprintf("manifest %s: requirement %s: %s", path, requirement.Name, shared.Message(err)), err)
		}
	}
	log.Ctx(ctx).Debug().Str("path", path).Int("requirements", len(requirements)).Msg("manifest validated")
	return ValidateResult{Path: path, Requirements: len(requirements)}, nil
}
