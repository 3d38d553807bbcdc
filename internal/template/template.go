// Package template holds the page template registry and the projector
// that filters the content tree by a template's navigation levels.
package template

import (
	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Template describes one page layout. Everything here is static lookup
// data consumed by the renderer; only NavigationLevels affects the
// pipeline.
type Template struct {
	Name             string `yaml:"name" json:"name"`
	Description      string `yaml:"description" json:"description"`
	NavigationLevels []int  `yaml:"navigation_levels" json:"navigation_levels"`
	Sidebar          string `yaml:"sidebar" json:"sidebar"`
	HeadingScale     string `yaml:"heading_scale" json:"heading_scale"`
}

// Project filters each section's nested heading blocks down to the levels
// the template navigates. Sections are never removed by level mismatch,
// blocks keep their relative order, and the input is left untouched.
func Project(sections []docmodel.DocumentSection, navigationLevels []int) []docmodel.DocumentSection {
	nav := make(map[int]bool, len(navigationLevels))
	for _, l := range navigationLevels {
		nav[l] = true
	}

	out := make([]docmodel.DocumentSection, 0, len(sections))
	for _, sec := range sections {
		projected := docmodel.DocumentSection{
			ID:      sec.ID,
			Heading: sec.Heading,
			Level:   sec.Level,
		}
		for _, block := range sec.Blocks {
			if block.Kind == docmodel.BlockHeading && !nav[block.Level] {
				continue
			}
			projected.Blocks = append(projected.Blocks, block)
		}
		out = append(out, projected)
	}
	return out
}
