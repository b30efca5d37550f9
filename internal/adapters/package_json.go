package adapters

import (
	"fmt"
	"os"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

type PackageJSONAdapter struct{}

func NewPackageJSONAdapter() PackageJSONAdapter {
	return PackageJSONAdapter{}
}

// LoadLibrary reads name, version and repository from a package.json.
// repository may be a URL string or an object with a url member.
func (a PackageJSONAdapter) LoadLibrary(path string) (types.LibraryDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LibraryDescriptor{}, shared.ReadError(fmt.Sprintf("failed to read %s", path), err)
	}
	doc, err := types.DecodeValue(data)
	if err != nil {
		return types.LibraryDescriptor{}, shared.ParseError(fmt.Sprintf("failed to parse %s", path), err)
	}
	if doc.Kind() != types.ValueObject {
		return types.LibraryDescriptor{}, shared.ParseError(fmt.Sprintf("%s is not a JSON object", path), nil)
	}
	descriptor := types.LibraryDescriptor{
		Path:    path,
		Name:    textMember(doc, "name"),
		Version: textMember(doc, "version"),
	}
	if repository, ok := doc.Get("repository"); ok {
		if url, isString := repository.AsString(); isString {
			descriptor.RepositoryURL = url
		} else {
			descriptor.RepositoryURL = textMember(repository, "url")
		}
	}
	return descriptor, nil
}

func textMember(v types.Value, key string) string {
	member, ok := v.Get(key)
	if !ok {
		return ""
	}
	text, _ := member.AsString()
	return text
}

var _ ports.LibraryDescriptorPort = PackageJSONAdapter{}
