package resolver

import (
	"fmt"
	"strings"

	"ui_mapping/domain/entities"
)

// Detector decides whether the top-ranked candidate is decisive or
// whether several candidates are statistically tied. A wrong silent pick
// is strictly worse than a visible, actionable failure, so ties are
// always reported rather than broken arbitrarily.
type Detector struct {
	cfg Config
}

// NewDetector - creates an ambiguity detector with the given policy
func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Evaluate - inspects a non-empty, score-descending candidate list. When
// the leader beats the runner-up by at least the tie margin (or stands
// alone) the winner is returned; otherwise a report collecting every
// candidate within the margin, plus refined query suggestions, is built.
func (d *Detector) Evaluate(query entities.Query, candidates []entities.ScoredCandidate) (entities.ScoredCandidate, *entities.AmbiguityReport) {
	top := candidates[0]
	if len(candidates) == 1 {
		return top, nil
	}

	threshold := top.Score * (1 - d.cfg.TieMargin)
	if candidates[1].Score < threshold {
		return top, nil
	}

	tied := make([]entities.ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= threshold {
			tied = append(tied, c)
		}
	}

	return entities.ScoredCandidate{}, &entities.AmbiguityReport{
		Query:          query,
		TiedCandidates: tied,
		Suggestions:    d.suggestions(query, tied),
	}
}

// suggestions - proposes one refined query per tied candidate, combining
// the original query with whatever distinguishes that candidate from the
// others: its feature context when contexts differ, otherwise its longest
// alternative name not shared with the rest of the tie.
func (d *Detector) suggestions(query entities.Query, tied []entities.ScoredCandidate) []string {
	contexts := make(map[string]int)
	for _, c := range tied {
		contexts[c.Record.FeatureContext]++
	}

	seen := make(map[string]bool)
	var out []string
	for _, c := range tied {
		var refined string
		if ctx := c.Record.FeatureContext; ctx != "" && contexts[ctx] == 1 && ctx != query.Context {
			refined = fmt.Sprintf("%s %s", ctx, query.Text)
		} else if name := distinguishingName(c, tied); name != "" {
			refined = fmt.Sprintf("%s %s", query.Text, name)
		} else {
			// identifier itself is always an exact-match query
			refined = c.Record.Identifier
		}
		if !seen[refined] {
			seen[refined] = true
			out = append(out, refined)
		}
	}
	return out
}

// distinguishingName - longest alternative name of the candidate that no
// other tied candidate also carries
func distinguishingName(candidate entities.ScoredCandidate, tied []entities.ScoredCandidate) string {
	shared := make(map[string]bool)
	for _, other := range tied {
		if other.Record.Identifier == candidate.Record.Identifier &&
			other.Record.FeatureContext == candidate.Record.FeatureContext {
			continue
		}
		for _, name := range other.Record.AlternativeNames {
			shared[strings.ToLower(name)] = true
		}
	}

	var best string
	for _, name := range candidate.Record.AlternativeNames {
		if shared[strings.ToLower(name)] {
			continue
		}
		if len(name) > len(best) {
			best = name
		}
	}
	return best
}
