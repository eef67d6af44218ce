package registry

import (
	"slices"
)

// Type selects how a template is installed.
type Type string

const (
	// TypeStandard templates are copied and rendered by the CLI.
	TypeStandard Type = "standard"
	// TypeCustom templates ship their own generator entry point.
	TypeCustom Type = "custom"
	// typeNormal is the older name for TypeStandard still sent by the service.
	typeNormal Type = "normal"
)

// Tags used to split templates between project and component scaffolds.
const (
	TagProject   = "project"
	TagComponent = "component"
)

// Descriptor describes one scaffoldable template.
type Descriptor struct {
	Name           string   `json:"name" yaml:"name"`
	NpmName        string   `json:"npmName" yaml:"npmName"`
	Version        string   `json:"version" yaml:"version"`
	Type           Type     `json:"type,omitempty" yaml:"type,omitempty"`
	Tags           []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	InstallCommand string   `json:"installCommand,omitempty" yaml:"installCommand,omitempty"`
	StartCommand   string   `json:"startCommand,omitempty" yaml:"startCommand,omitempty"`
	BuildPath      string   `json:"buildPath,omitempty" yaml:"buildPath,omitempty"`
	Ignore         []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
}

// InstallType returns the effective install type; unset and "normal" both
// mean standard.
func (d Descriptor) InstallType() Type {
	switch d.Type {
	case "", typeNormal:
		return TypeStandard
	default:
		return d.Type
	}
}

// HasTag reports whether d carries tag.
func (d Descriptor) HasTag(tag string) bool {
	return slices.Contains(d.Tags, tag)
}

// Filter returns the descriptors carrying tag, keeping their order.
func Filter(descriptors []Descriptor, tag string) []Descriptor {
	var out []Descriptor
	for _, d := range descriptors {
		if d.HasTag(tag) {
			out = append(out, d)
		}
	}
	return out
}

// Find returns the descriptor whose npm name is npmName.
func Find(descriptors []Descriptor, npmName string) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.NpmName == npmName {
			return d, true
		}
	}
	return Descriptor{}, false
}
