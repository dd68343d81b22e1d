package resolver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"ui_mapping/domain/entities"
)

// Synthesizer derives the most durable executable locator for a record.
// The priority chain goes from test-specific markers (immune to styling
// and copy changes) down to the structural DOM path (always present, most
// fragile).
type Synthesizer struct {
	cfg Config
}

// NewSynthesizer - creates a locator synthesizer with the given policy
func NewSynthesizer(cfg Config) *Synthesizer {
	return &Synthesizer{cfg: cfg}
}

// Synthesize - builds a locator for the record, first applicable strategy wins
func (s *Synthesizer) Synthesize(record entities.ElementRecord) entities.Locator {
	if testID := record.Attributes["data-testid"]; testID != "" {
		return entities.Locator{
			Expression: fmt.Sprintf(`[data-testid=%q]`, testID),
			Strategy:   entities.StrategyDataTestID,
		}
	}

	if id := record.Attributes["id"]; id != "" && !s.looksAutoGenerated(id) {
		return entities.Locator{
			Expression: "#" + id,
			Strategy:   entities.StrategyID,
		}
	}

	for _, attr := range s.cfg.StableAttributes {
		value := record.Attributes[attr]
		if value == "" {
			continue
		}
		expr := fmt.Sprintf(`%s[%s=%q]`, record.TagName, attr, value)
		// role alone is rarely unique, combine with type when available
		if attr == "role" {
			if typ := record.Attributes["type"]; typ != "" {
				expr = fmt.Sprintf(`%s[role=%q][type=%q]`, record.TagName, value, typ)
			}
		}
		return entities.Locator{
			Expression: expr,
			Strategy:   entities.StrategyStableAttribute,
		}
	}

	if text := strings.TrimSpace(record.Text); text != "" && utf8.RuneCountInString(text) <= s.cfg.TextLocatorMaxLen {
		return entities.Locator{
			Expression: fmt.Sprintf(`%s:has-text(%q)`, record.TagName, text),
			Strategy:   entities.StrategyText,
		}
	}

	return entities.Locator{
		Expression: record.DOMPath,
		Strategy:   entities.StrategyDOMPath,
	}
}

// looksAutoGenerated - heuristic for framework-generated id values that
// change between page loads
func (s *Synthesizer) looksAutoGenerated(id string) bool {
	lower := strings.ToLower(id)
	for _, pattern := range s.cfg.AutoIDPatterns {
		if pattern.MatchString(lower) {
			return true
		}
	}
	return false
}
