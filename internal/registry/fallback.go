package registry

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"
)

//go:embed fallback.yaml
var fallbackYAML []byte

// Fallback returns the built-in descriptor list.
func Fallback() ([]Descriptor, error) {
	var list []Descriptor
	if err := yaml.Unmarshal(fallbackYAML, &list); err != nil {
		return nil, fmt.Errorf("parsing built-in template list: %w", err)
	}
	return list, nil
}
