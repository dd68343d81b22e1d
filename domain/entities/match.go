package entities

// MatchTier represents how a candidate matched the query. Tiers are
// ordered: an earlier tier always carries a higher base score.
type MatchTier string

const (
	MatchExact           MatchTier = "exact"
	MatchPrefix          MatchTier = "prefix"
	MatchContains        MatchTier = "contains"
	MatchPattern         MatchTier = "pattern"
	MatchWordOverlap     MatchTier = "word_overlap"
	MatchAlternativeName MatchTier = "alternative_name"
)

// ScoredCandidate represents one element record scored against a query.
// Scores are comparable only within a single resolution call.
type ScoredCandidate struct {
	Record     ElementRecord `json:"record"`
	Score      float64       `json:"score"`
	MatchedVia MatchTier     `json:"matched_via"`
}

// AmbiguityReport describes a resolution that ended with several
// statistically tied candidates, with refined queries the caller can retry
type AmbiguityReport struct {
	Query          Query             `json:"query"`
	TiedCandidates []ScoredCandidate `json:"tied_candidates"`
	Suggestions    []string          `json:"suggestions"`
}
