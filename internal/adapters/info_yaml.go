package adapters

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"composer-reconcile/internal/ports"
	"composer-reconcile/internal/shared"
	"composer-reconcile/internal/types"
)

type InfoYAMLAdapter struct{}

func NewInfoYAMLAdapter() InfoYAMLAdapter {
	return InfoYAMLAdapter{}
}

func (a InfoYAMLAdapter) LoadInfo(path string) (types.InfoDescriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.InfoDescriptor{}, shared.ReadError(fmt.Sprintf("failed to read info file %s", path), err)
	}
	var descriptor types.InfoDescriptor
	if err := yaml.Unmarshal(data, &descriptor); err != nil {
		return types.InfoDescriptor{}, shared.ParseError(fmt.Sprintf("failed to parse info file %s", path), err)
	}
	descriptor.Path = path
	return descriptor, nil
}

var _ ports.InfoDescriptorPort = InfoYAMLAdapter{}
