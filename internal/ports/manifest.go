package ports

import (
	"time"

	"composer-reconcile/internal/types"
)

// ManifestStorePort reads and persists composer manifests.
type ManifestStorePort interface {
	Load(path string) (types.Manifest, error)
	// Backup copies the current content of path to a timestamped sibling
	// and returns the sibling's path.
	Backup(path string, at time.Time) (string, error)
	// Write replaces the content of path. The previous content stays
	// intact when the write fails.
	Write(path string, data []byte) error
}
