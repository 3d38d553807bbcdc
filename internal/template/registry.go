package template

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Registry is the process-wide template lookup table. It is populated once
// at startup and read-only afterwards, so concurrent pipeline runs share
// it without coordination.
type Registry struct {
	templates map[string]Template
	order     []string
	def       string
}

// DefaultTemplateName is used when a request names no template.
const DefaultTemplateName = "standard"

var builtins = []Template{
	{
		Name:             "standard",
		Description:      "Two-level navigation with a compact sidebar",
		NavigationLevels: []int{1, 2},
		Sidebar:          "compact",
		HeadingScale:     "regular",
	},
	{
		Name:             "detailed",
		Description:      "Full three-level navigation for reference material",
		NavigationLevels: []int{1, 2, 3},
		Sidebar:          "full",
		HeadingScale:     "regular",
	},
	{
		Name:             "minimal",
		Description:      "Top-level navigation only, large headings",
		NavigationLevels: []int{1},
		Sidebar:          "none",
		HeadingScale:     "large",
	},
}

// DefaultRegistry returns the built-in templates.
func DefaultRegistry() *Registry {
	r := &Registry{templates: map[string]Template{}, def: DefaultTemplateName}
	for _, t := range builtins {
		r.put(t)
	}
	return r
}

// LoadRegistry reads template definitions from a YAML file and layers them
// over the built-ins. Definitions with a known name replace the built-in.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}

	var file struct {
		Templates []Template `yaml:"templates"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse templates file: %w", err)
	}

	r := DefaultRegistry()
	for _, t := range file.Templates {
		if t.Name == "" {
			return nil, fmt.Errorf("template with empty name in %s", path)
		}
		if len(t.NavigationLevels) == 0 {
			t.NavigationLevels = []int{1, 2}
		}
		r.put(t)
	}
	return r, nil
}

func (r *Registry) put(t Template) {
	if _, exists := r.templates[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.templates[t.Name] = t
}

// Get looks up a template by name. An empty name yields the default.
func (r *Registry) Get(name string) (Template, bool) {
	if name == "" {
		name = r.def
	}
	t, ok := r.templates[name]
	return t, ok
}

// List returns all templates in registration order.
func (r *Registry) List() []Template {
	out := make([]Template, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.templates[name])
	}
	return out
}
