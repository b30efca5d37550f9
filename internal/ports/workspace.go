package ports

// SourceScannerPort discovers descriptor files within a source project tree.
type SourceScannerPort interface {
	// FindInfoFiles returns every module, theme and profile *.info.yml
	// below root.
	FindInfoFiles(root string) ([]string, error)

	// FindLibraryPackages returns the package.json of every front-end
	// library directly under root/librariesDir.
	FindLibraryPackages(root string, librariesDir string) ([]string, error)
}
