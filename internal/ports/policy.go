package ports

import (
	"context"

	"composer-reconcile/internal/types"
)

// ExtraMetadataPort merges list-valued entries of a manifest's extra block.
type ExtraMetadataPort interface {
	MergeExtraList(ctx context.Context, key string, values ...types.Value) error
	MergeExtraMapList(ctx context.Context, key string, subkey string, values ...types.Value) error
}
