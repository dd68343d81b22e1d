package resolver

import (
	"regexp"
	"strings"

	"ui_mapping/domain/entities"
)

// Scorer computes the relevance of one element record against a query.
// Matching tiers are evaluated in a fixed order and the first one that
// matches sets MatchedVia; the numeric score additionally folds in
// secondary signals and the context bonus.
type Scorer struct {
	cfg Config
}

// NewScorer - creates a candidate scorer with the given policy
func NewScorer(cfg Config) *Scorer {
	return &Scorer{cfg: cfg}
}

var separators = regexp.MustCompile(`[\s_]+`)
var nonToken = regexp.MustCompile(`[^a-z0-9]+`)

// normalize - canonical comparison form: lower case, whitespace and
// underscore runs collapsed to a single underscore
func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return separators.ReplaceAllString(s, "_")
}

// tokenize - lowercase word tokens with punctuation stripped
func tokenize(s string) []string {
	parts := nonToken.Split(strings.ToLower(s), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// Score - scores one record against the query. The second return value is
// false when no tier matched; such records never enter the candidate list,
// so the context bonus alone can never create a match.
func (s *Scorer) Score(query entities.Query, record entities.ElementRecord) (entities.ScoredCandidate, bool) {
	normQuery := normalize(query.Text)
	identifier := record.Identifier
	lowerText := strings.ToLower(record.Text)

	var score float64
	var tier entities.MatchTier

	switch {
	case normQuery != "" && normQuery == identifier:
		score, tier = scoreExact, entities.MatchExact

	case normQuery != "" && strings.HasPrefix(identifier, normQuery):
		score, tier = scorePrefix, entities.MatchPrefix

	case normQuery != "" && strings.Contains(identifier, normQuery):
		score, tier = scoreContains, entities.MatchContains

	case strings.Contains(query.Text, "*") && wildcardMatch(normQuery, identifier):
		score, tier = scorePattern, entities.MatchPattern

	default:
		if frac := s.wordOverlap(query.Text, identifier, lowerText); frac > 0 {
			score = overlapBase + overlapRange*frac
			tier = entities.MatchWordOverlap
			break
		}
		if altScore := s.alternativeNameScore(query.Text, record.AlternativeNames); altScore > 0 {
			score = altScore
			tier = entities.MatchAlternativeName
			break
		}
		return entities.ScoredCandidate{}, false
	}

	// secondary signals, kept small enough to never cross tier boundaries
	if tier != entities.MatchWordOverlap && tier != entities.MatchAlternativeName {
		if lowerText != "" && normalize(record.Text) == normQuery {
			score += textEqualsBonus
		}
		if record.Attributes["data-testid"] != "" {
			score += testIDBonus
		}
	}

	if query.Context != "" && query.Context == record.FeatureContext {
		score += s.cfg.ContextBonus
	}

	return entities.ScoredCandidate{
		Record:     record,
		Score:      score,
		MatchedVia: tier,
	}, true
}

// wildcardMatch - glob match of pattern against the identifier, `*`
// matching any run of characters, anchored at both ends
func wildcardMatch(pattern, identifier string) bool {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	re, err := regexp.Compile("^" + strings.Join(parts, ".*") + "$")
	if err != nil {
		return false
	}
	return re.MatchString(identifier)
}

// wordOverlap - fraction of query tokens found as substrings within the
// identifier or the visible text
func (s *Scorer) wordOverlap(queryText, identifier, lowerText string) float64 {
	tokens := tokenize(queryText)
	if len(tokens) == 0 {
		return 0
	}
	matched := 0
	for _, token := range tokens {
		if strings.Contains(identifier, token) || strings.Contains(lowerText, token) {
			matched++
		}
	}
	return float64(matched) / float64(len(tokens))
}

// alternativeNameScore - matches the query against the enrichment-provided
// synonyms; earlier entries score higher, exact matches beat partial ones
func (s *Scorer) alternativeNameScore(queryText string, names []string) float64 {
	normQuery := normalize(queryText)
	tokens := tokenize(queryText)

	var best float64
	for i, name := range names {
		normName := normalize(name)
		if normName == "" {
			continue
		}
		weight := 1.0 / (1.0 + 0.25*float64(i))

		var candidate float64
		if normName == normQuery {
			candidate = altNameExact * weight
		} else if strings.Contains(normName, normQuery) || strings.Contains(normQuery, normName) {
			candidate = altNamePartial * weight
		} else {
			// partial credit when every query token appears in the name
			allFound := len(tokens) > 0
			for _, token := range tokens {
				if !strings.Contains(normName, token) {
					allFound = false
					break
				}
			}
			if allFound {
				candidate = altNamePartial * weight
			}
		}
		if candidate > best {
			best = candidate
		}
	}
	return best
}
