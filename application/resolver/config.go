package resolver

import "regexp"

// Config holds the policy constants of the resolution engine. Thresholds
// are deliberately configurable; the defaults below are tuned against the
// property tests, not carved in stone.
type Config struct {
	// TieMargin is the relative score gap below which the runner-up is
	// considered tied with the best candidate (fraction of the top score)
	TieMargin float64

	// ContextBonus is added to any matching candidate whose feature
	// context equals the query context. It is large enough to let a
	// right-context word-overlap match outrank a wrong-context exact
	// match, and is never applied to candidates with no textual match.
	ContextBonus float64

	// TextLocatorMaxLen is the maximum rune length of visible text that
	// is still acceptable as a text-strategy locator
	TextLocatorMaxLen int

	// StableAttributes are checked in order when synthesizing a
	// stable-attribute locator
	StableAttributes []string

	// AutoIDPatterns mark id attribute values that look auto-generated
	// and therefore unusable as locators
	AutoIDPatterns []*regexp.Regexp
}

// DefaultConfig returns the default engine policy
func DefaultConfig() Config {
	return Config{
		TieMargin:         0.20,
		ContextBonus:      100,
		TextLocatorMaxLen: 60,
		StableAttributes:  []string{"name", "aria-label", "role"},
		AutoIDPatterns: []*regexp.Regexp{
			regexp.MustCompile(`^[0-9]+$`),            // purely numeric
			regexp.MustCompile(`[0-9a-f]{8,}`),        // hash-like hex run
			regexp.MustCompile(`[-_:][0-9]{4,}$`),     // framework counter suffix
		},
	}
}

// Base scores per matching tier. Ordering is load-bearing: every tier's
// maximum (including secondary bonuses) stays below the next tier's
// minimum, so match specificity alone decides relative rank.
const (
	scoreExact    = 100.0
	scorePrefix   = 85.0
	scoreContains = 70.0
	scorePattern  = 55.0

	// word overlap scores in (overlapBase, overlapBase+overlapRange]
	// proportionally to the fraction of matched tokens
	overlapBase  = 30.0
	overlapRange = 15.0

	// alternative names score below any word overlap, decaying with the
	// name's position in the list
	altNameExact   = 20.0
	altNamePartial = 10.0

	// secondary signals folded into tiers exact..pattern
	textEqualsBonus = 5.0
	testIDBonus     = 2.0
)
