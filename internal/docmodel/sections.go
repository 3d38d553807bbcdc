package docmodel

// SectionKey identifies one of the 8 fixed, user-toggleable UI sections.
// These are presentation slots, distinct from document sections.
type SectionKey string

const (
	SectionAbout            SectionKey = "about"
	SectionExecutiveSummary SectionKey = "executiveSummary"
	SectionKeyFindings      SectionKey = "keyFindings"
	SectionProcess          SectionKey = "process"
	SectionFAQs             SectionKey = "faqs"
	SectionGlossary         SectionKey = "glossary"
	SectionHighlights       SectionKey = "highlights"
	SectionTopics           SectionKey = "topics"
)

// SectionOrder is the canonical iteration order for UI sections. All code
// that walks the section set follows this order so output is deterministic.
var SectionOrder = []SectionKey{
	SectionAbout,
	SectionExecutiveSummary,
	SectionKeyFindings,
	SectionProcess,
	SectionFAQs,
	SectionGlossary,
	SectionHighlights,
	SectionTopics,
}

var sectionTitles = map[SectionKey]string{
	SectionAbout:            "Overview",
	SectionExecutiveSummary: "Executive Summary",
	SectionKeyFindings:      "Key Findings",
	SectionProcess:          "How It Works",
	SectionFAQs:             "FAQs",
	SectionGlossary:         "Glossary",
	SectionHighlights:       "Highlights",
	SectionTopics:           "Explore Topics",
}

// SectionTitle returns the display title for a UI section key.
func SectionTitle(key SectionKey) string {
	return sectionTitles[key]
}

// ValidSectionKey reports whether key names one of the 8 fixed sections.
func ValidSectionKey(key SectionKey) bool {
	_, ok := sectionTitles[key]
	return ok
}

// EnabledSections records which UI sections the user switched on.
type EnabledSections map[SectionKey]bool

// AllSectionsEnabled returns a set with every UI section switched on.
func AllSectionsEnabled() EnabledSections {
	es := make(EnabledSections, len(SectionOrder))
	for _, key := range SectionOrder {
		es[key] = true
	}
	return es
}
