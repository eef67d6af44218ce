package initcmd

import (
	"regexp"
	"strings"
	"unicode"
)

// Project kinds offered by the wizard. They double as descriptor tags.
const (
	TypeProject   = "project"
	TypeComponent = "component"
)

// DefaultVersion is offered when the wizard asks for a version.
const DefaultVersion = "1.0.0"

// namePattern accepts names that start with a letter, end with a letter or
// digit, and use single "-" or "_" separators.
var namePattern = regexp.MustCompile(`^[a-zA-Z]+([-][a-zA-Z][a-zA-Z0-9]*|[_][a-zA-Z][a-zA-Z0-9]*|[a-zA-Z0-9])*$`)

// ProjectInfo is what the wizard collected about the project to create.
type ProjectInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Version     string `json:"version"`
	ClassName   string `json:"className"`
	Description string `json:"description,omitempty"`
	Template    string `json:"template"`
}

// RenderContext returns the values templates can reference.
func (p *ProjectInfo) RenderContext() map[string]any {
	return map[string]any{
		"type":                 p.Type,
		"name":                 p.Name,
		"projectName":          p.Name,
		"version":              p.Version,
		"projectVersion":       p.Version,
		"className":            p.ClassName,
		"description":          p.Description,
		"componentDescription": p.Description,
	}
}

// ValidName reports whether name is usable as a project name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// ClassName converts name to kebab-case: every capital letter becomes a dash
// and its lower-case form, and a leading dash is dropped.
func ClassName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimPrefix(b.String(), "-")
}
