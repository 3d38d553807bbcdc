package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

func sampleSections(t *testing.T) []docmodel.DocumentSection {
	t.Helper()
	h2, ok := docmodel.Heading("Sub Topic", 2)
	if !ok {
		t.Fatal("heading constructor failed")
	}
	h3, ok := docmodel.Heading("Deep Dive", 3)
	if !ok {
		t.Fatal("heading constructor failed")
	}
	list, ok := docmodel.List([]string{"bullet one", "bullet two"})
	if !ok {
		t.Fatal("list constructor failed")
	}
	return []docmodel.DocumentSection{
		{
			ID:      "main",
			Heading: "Main Section",
			Level:   1,
			Blocks:  []docmodel.ContentBlock{h2, list, h3, list},
		},
	}
}

func TestProject_FiltersNestedHeadings(t *testing.T) {
	sections := sampleSections(t)
	out := Project(sections, []int{1, 2})
	if len(out) != 1 {
		t.Fatalf("sections must never be dropped, got %d", len(out))
	}
	blocks := out[0].Blocks
	if len(blocks) != 3 {
		t.Fatalf("expected level-3 heading removed, got %d blocks", len(blocks))
	}
	for _, b := range blocks {
		if b.Kind == docmodel.BlockHeading && b.Level == 3 {
			t.Error("level-3 heading survived a {1,2} projection")
		}
	}
	// Non-heading blocks always survive.
	lists := 0
	for _, b := range blocks {
		if b.Kind == docmodel.BlockList {
			lists++
		}
	}
	if lists != 2 {
		t.Errorf("expected both list blocks kept, got %d", lists)
	}
}

func TestProject_DoesNotMutateInput(t *testing.T) {
	sections := sampleSections(t)
	before := len(sections[0].Blocks)
	Project(sections, []int{1})
	if len(sections[0].Blocks) != before {
		t.Error("projection mutated its input")
	}
}

func TestProject_TopLevelOnly(t *testing.T) {
	out := Project(sampleSections(t), []int{1})
	for _, b := range out[0].Blocks {
		if b.Kind == docmodel.BlockHeading {
			t.Errorf("nested heading survived a {1} projection: %+v", b)
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	std, ok := r.Get("")
	if !ok || std.Name != DefaultTemplateName {
		t.Errorf("empty name should resolve the default, got %+v (ok=%v)", std, ok)
	}

	detailed, ok := r.Get("detailed")
	if !ok || len(detailed.NavigationLevels) != 3 {
		t.Errorf("unexpected detailed template: %+v", detailed)
	}

	if _, ok := r.Get("nope"); ok {
		t.Error("unknown template should not resolve")
	}

	list := r.List()
	if len(list) != 3 {
		t.Fatalf("expected 3 built-ins, got %d", len(list))
	}
	if list[0].Name != "standard" {
		t.Errorf("expected registration order, got %s first", list[0].Name)
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "templates.yaml")
	content := `templates:
  - name: landing
    description: Marketing landing layout
    navigation_levels: [1]
    sidebar: none
    heading_scale: large
  - name: standard
    description: Overridden standard
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}

	landing, ok := r.Get("landing")
	if !ok || landing.Sidebar != "none" {
		t.Errorf("custom template missing: %+v (ok=%v)", landing, ok)
	}

	std, _ := r.Get("standard")
	if std.Description != "Overridden standard" {
		t.Errorf("expected built-in override, got %q", std.Description)
	}
	// Omitted navigation levels default to {1,2}.
	if len(std.NavigationLevels) != 2 {
		t.Errorf("expected default navigation levels, got %v", std.NavigationLevels)
	}
}

func TestLoadRegistry_Errors(t *testing.T) {
	if _, err := LoadRegistry(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("templates:\n  - description: nameless\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Error("expected error for template with empty name")
	}
}
