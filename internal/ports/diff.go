package ports

import (
	"io"

	"composer-reconcile/internal/types"
)

type DiffPrinterPort interface {
	PrintDiff(w io.Writer, diff types.ManifestDiff) error
}
