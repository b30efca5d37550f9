package core

import (
	"strings"

	"composer-reconcile/internal/shared"
)

// Requirement is one package of a manifest and the constraint currently
// selected for it. The name never changes; the version only moves up
// through SetVersionIfGreater.
type Requirement struct {
	name    string
	version string
	cache   *versionCache
}

// NewRequirement returns a requirement for name at version. It fails with
// a validation error when name is empty.
func NewRequirement(name string, version string) (*Requirement, error) {
	return newRequirement(name, version, newVersionCache())
}

func newRequirement(name string, version string, cache *versionCache) (*Requirement, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.ValidationError("requirement package name must not be empty")
	}
	return &Requirement{name: strings.TrimSpace(name), version: version, cache: cache}, nil
}

func (r *Requirement) Name() string {
	return r.name
}

func (r *Requirement) Version() string {
	return r.version
}

// IsGreaterThan reports whether the held version orders strictly above
// other.
func (r *Requirement) IsGreaterThan(other string) (bool, error) {
	cmp, err := r.cache.compare(r.version, other)
	if err != nil {
		return false, err
	}
	return cmp > 0, nil
}

// IsLessThan reports whether the held version orders strictly below
// other. Equal versions are neither greater nor less.
func (r *Requirement) IsLessThan(other string) (bool, error) {
	cmp, err := r.cache.compare(r.version, other)
	if err != nil {
		return false, err
	}
	return cmp < 0, nil
}

// SetVersionIfGreater replaces the held version with incoming only when
// incoming orders strictly above it. Ties keep the held value. It reports
// whether the version changed.
func (r *Requirement) SetVersionIfGreater(incoming string) (bool, error) {
	cmp, err := r.cache.compare(incoming, r.version)
	if err != nil {
		return false, err
	}
	if cmp <= 0 {
		return false, nil
	}
	r.version = incoming
	return true, nil
}

func (r *Requirement) String() string {
	return r.version
}
