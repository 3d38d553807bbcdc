// Package enrich optionally rephrases mapped content through an external
// text model under a strict meaning-preservation contract. Enrichment is
// best-effort: with no provider configured, or on any provider failure,
// content passes through unchanged. The pipeline never depends on it.
package enrich

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/dgallion1/pagegen/internal/docmodel"
)

// Options tunes a single enhancement call.
type Options struct {
	Temperature      float64
	MaxOutputChars   int
	ExpectStructured bool
}

// Provider is the external text-enrichment collaborator. It must be
// treated as optional, slow, and unreliable.
type Provider interface {
	Enhance(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
}

// Config bounds enrichment behavior.
type Config struct {
	Timeout        time.Duration // per-batch call budget
	MaxItemLen     int           // rephrased items are truncated to this
	MaxContextLen  int           // context excerpt passed to the provider
	MaxOutputChars int           // requested output budget
	Temperature    float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxItemLen:     120,
		MaxContextLen:  2000,
		MaxOutputChars: 2048,
		Temperature:    0.2,
	}
}

const systemPrompt = `You rewrite bullet points for a web page. Rules:
- Preserve every domain-specific fact, number, and term exactly.
- Do not introduce claims that are not in the bullets or the context.
- Keep each bullet under 120 characters.
- Ground every rewrite strictly in the supplied context excerpt.
- Return ONLY a JSON array of strings, one per input bullet, no other text.`

// Enrich rephrases one section's item batch. The second return reports
// whether enrichment was applied: false means the items came back
// unchanged, whatever the reason.
func Enrich(ctx context.Context, items []string, contextText string, p Provider, cfg Config) ([]string, bool) {
	if p == nil || len(items) == 0 {
		return items, false
	}
	cfg = withDefaults(cfg)

	callCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	raw, err := p.Enhance(callCtx, systemPrompt, buildUserPrompt(items, contextText, cfg), Options{
		Temperature:      cfg.Temperature,
		MaxOutputChars:   cfg.MaxOutputChars,
		ExpectStructured: true,
	})
	if err != nil {
		return items, false
	}

	var rephrased []string
	if err := json.Unmarshal([]byte(stripCodeBlock(raw)), &rephrased); err != nil {
		return items, false
	}

	cleaned := make([]string, 0, len(rephrased))
	for _, item := range rephrased {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		cleaned = append(cleaned, docmodel.TruncateEllipsis(item, cfg.MaxItemLen))
	}
	if len(cleaned) == 0 {
		return items, false
	}
	return cleaned, true
}

func buildUserPrompt(items []string, contextText string, cfg Config) string {
	var sb strings.Builder
	sb.WriteString("Context excerpt:\n")
	sb.WriteString(docmodel.TruncateEllipsis(strings.TrimSpace(contextText), cfg.MaxContextLen))
	sb.WriteString("\n\nBullets to rewrite (JSON):\n")
	encoded, err := json.Marshal(items)
	if err != nil {
		// Items are plain strings; Marshal cannot fail on them.
		return sb.String()
	}
	sb.Write(encoded)
	return sb.String()
}

var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}
	return s
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxItemLen <= 0 {
		cfg.MaxItemLen = def.MaxItemLen
	}
	if cfg.MaxContextLen <= 0 {
		cfg.MaxContextLen = def.MaxContextLen
	}
	if cfg.MaxOutputChars <= 0 {
		cfg.MaxOutputChars = def.MaxOutputChars
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = def.Temperature
	}
	return cfg
}
