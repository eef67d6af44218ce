package initcmd

import (
	"errors"
	"fmt"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/npm"
	"github.com/colin-cli/colin/internal/prompt"
	"github.com/colin-cli/colin/internal/registry"
)

// CollectProjectInfo asks for the project's type, name, version, description
// and template. A valid projectName is used without asking.
func CollectProjectInfo(p prompt.Prompter, projectName string, templates []registry.Descriptor) (*ProjectInfo, error) {
	kind, err := p.Select("Choose what to create", []prompt.Option{
		{Label: "Project", Value: TypeProject},
		{Label: "Component", Value: TypeComponent},
	})
	if err != nil {
		return nil, err
	}

	candidates := registry.Filter(templates, kind)
	if len(candidates) == 0 {
		return nil, clierr.Newf(clierr.NoTemplates, "no %s templates available", kind)
	}

	label := "Project"
	if kind == TypeComponent {
		label = "Component"
	}

	info := &ProjectInfo{Type: kind, Name: projectName}
	if !ValidName(info.Name) {
		info.Name, err = p.Input(label+" name", "", validateName)
		if err != nil {
			return nil, err
		}
	}

	info.Version, err = p.Input(label+" version", DefaultVersion, validateVersion)
	if err != nil {
		return nil, err
	}

	if kind == TypeComponent {
		info.Description, err = p.Input("Component description", "", validateDescription)
		if err != nil {
			return nil, err
		}
	}

	options := make([]prompt.Option, len(candidates))
	for i, d := range candidates {
		options[i] = prompt.Option{Label: d.Name, Value: d.NpmName}
	}
	info.Template, err = p.Select("Choose a "+kind+" template", options)
	if err != nil {
		return nil, err
	}

	info.ClassName = ClassName(info.Name)
	return info, nil
}

func validateName(name string) error {
	if !ValidName(name) {
		return fmt.Errorf("invalid name %q: start with a letter, end with a letter or digit, separate words with - or _", name)
	}
	return nil
}

func validateVersion(v string) error {
	if !npm.IsValid(v) {
		return fmt.Errorf("invalid version %q: use MAJOR.MINOR.PATCH", v)
	}
	return nil
}

func validateDescription(d string) error {
	if d == "" {
		return errors.New("description must not be empty")
	}
	return nil
}
