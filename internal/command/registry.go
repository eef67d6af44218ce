package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/colin-cli/colin/internal/clierr"
)

// Factory builds a fresh Implementation for one invocation.
type Factory func() Implementation

// Registry maps command names to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds a named command. Registering a name twice panics.
func (r *Registry) Register(name string, f Factory) {
	if _, dup := r.factories[name]; dup {
		panic(fmt.Sprintf("command %q registered twice", name))
	}
	r.factories[name] = f
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Build returns a Command for name wrapping a new Implementation. An unknown
// name is a Config error that lists the known commands.
func (r *Registry) Build(name string, argv []any, opts ...Option) (*Command, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, clierr.Newf(clierr.Config, "unknown command %q, available commands: %s", name, strings.Join(r.Names(), ", "))
	}
	return New(name, f(), argv, opts...)
}
