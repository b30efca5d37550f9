package app

import (
	"time"

	"composer-reconcile/internal/adapters"
	"composer-reconcile/internal/ports"
)

type Service struct {
	Manifests ports.ManifestStorePort
	Scanner   ports.SourceScannerPort
	Info      ports.InfoDescriptorPort
	Libraries ports.LibraryDescriptorPort
	Clock     func() time.Time
}

func NewService() Service {
	return Service{
		Manifests: adapters.NewManifestFileAdapter(),
		Scanner:   adapters.NewWorkspaceAdapter(),
		Info:      adapters.NewInfoYAMLAdapter(),
		Libraries: adapters.NewPackageJSONAdapter(),
		Clock:     time.Now,
	}
}
