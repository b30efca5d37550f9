package ports

import "composer-reconcile/internal/types"

type InfoDescriptorPort interface {
	LoadInfo(path string) (types.InfoDescriptor, error)
}

type LibraryDescriptorPort interface {
	LoadLibrary(path string) (types.LibraryDescriptor, error)
}
