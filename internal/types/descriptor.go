package types

// InfoDescriptor is the subset of a module or theme *.info.yml file the
// migration reads.
type InfoDescriptor struct {
	Path    string         `yaml:"-"`
	Name    string         `yaml:"name"`
	Type    DescriptorType `yaml:"type"`
	Project string         `yaml:"project"`
	Version string         `yaml:"version"`
}

// LibraryDescriptor is the subset of a front-end library package.json.
type LibraryDescriptor struct {
	Path          string
	Name          string
	Version       string
	RepositoryURL string
}

// DiscoveredRequirement is a requirement derived from a descriptor file.
type DiscoveredRequirement struct {
	Name    string
	Version string
	Source  string
}

// SkippedDescriptor records a descriptor that could not be turned into a
// requirement.
type SkippedDescriptor struct {
	Path   string
	Reason string
}

// Collection is the outcome of scanning a source tree.
type Collection struct {
	Requirements []DiscoveredRequirement
	Skipped      []SkippedDescriptor
}
