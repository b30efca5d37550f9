package types

// Manifest is a composer manifest as loaded from disk.
type Manifest struct {
	Path     string
	Content  []byte
	Document Value
	Indent   string
}

// Manifest section keys the reconciler owns. Every other top-level key
// passes through untouched.
const (
	SectionRequire      = "require"
	SectionRepositories = "repositories"
	SectionExtra        = "extra"
)

// RequirementEntry is a package name and its selected constraint.
type RequirementEntry struct {
	Name    string
	Version string
}
