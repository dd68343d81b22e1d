package resolver

import (
	"fmt"
	"sort"
	"strings"

	"ui_mapping/domain/entities"

	"github.com/sirupsen/logrus"
)

// NotFoundError means no element matched the query at all. Definitive;
// the engine never retries internally.
type NotFoundError struct {
	Query entities.Query
}

func (e *NotFoundError) Error() string {
	if e.Query.Context != "" {
		return fmt.Sprintf("no element matches %q in context %q", e.Query.Text, e.Query.Context)
	}
	return fmt.Sprintf("no element matches %q", e.Query.Text)
}

// AmbiguityError means two or more candidates are statistically tied.
// Recoverable: the report carries refined queries the caller can reissue.
type AmbiguityError struct {
	Report entities.AmbiguityReport
}

func (e *AmbiguityError) Error() string {
	ids := make([]string, 0, len(e.Report.TiedCandidates))
	for _, c := range e.Report.TiedCandidates {
		ids = append(ids, c.Record.Identifier)
	}
	return fmt.Sprintf("query %q is ambiguous between: %s", e.Report.Query.Text, strings.Join(ids, ", "))
}

// StoreEmptyError means Resolve was called before any mapping was loaded.
// A configuration error, fatal to the calling test.
type StoreEmptyError struct{}

func (e *StoreEmptyError) Error() string {
	return "no element mapping loaded, capture or load a mapping first"
}

// Engine is the public entry point of selector resolution. It composes
// the store, scorer, ambiguity detector and locator synthesizer into a
// single Resolve call. Resolution is a pure computation over the loaded
// snapshot; concurrent Resolve calls need no coordination.
type Engine struct {
	store    *Store
	scorer   *Scorer
	synth    *Synthesizer
	detector *Detector
	logger   *logrus.Logger
}

// NewEngine - creates a resolution engine with the given policy
func NewEngine(cfg Config, logger *logrus.Logger) *Engine {
	return &Engine{
		store:    NewStore(),
		scorer:   NewScorer(cfg),
		synth:    NewSynthesizer(cfg),
		detector: NewDetector(cfg),
		logger:   logger,
	}
}

// Load - normalizes and loads records into the given feature scope,
// replacing whatever the scope held before. Must not run concurrently
// with in-flight Resolve calls for the same scope.
func (e *Engine) Load(featureContext string, records []entities.ElementRecord) error {
	normalized := make([]entities.ElementRecord, 0, len(records))
	for i, rec := range records {
		norm, err := normalizeRecord(featureContext, rec)
		if err != nil {
			return fmt.Errorf("record %d in context %q: %w", i, featureContext, err)
		}
		normalized = append(normalized, norm)
	}

	e.store.Load(featureContext, normalized)
	e.logger.WithFields(logrus.Fields{
		"context": featureContext,
		"records": len(normalized),
	}).Info("Loaded element records")
	return nil
}

// Contexts - returns the loaded feature contexts
func (e *Engine) Contexts() []string {
	return e.store.Contexts()
}

// Records - returns the records visible for a feature context ("" = all)
func (e *Engine) Records(featureContext string) []entities.ElementRecord {
	return e.store.Query(featureContext)
}

// Resolve - resolves a query to a single locator. Terminal outcomes:
// a Locator, *NotFoundError, *AmbiguityError or *StoreEmptyError.
func (e *Engine) Resolve(queryText, contextHint string) (entities.Locator, error) {
	if !e.store.Loaded() {
		return entities.Locator{}, &StoreEmptyError{}
	}

	query := entities.Query{Text: queryText, Context: contextHint}

	candidates := e.store.Query(contextHint)
	if contextHint != "" && len(candidates) == 0 {
		// a uniquely named element should resolve even without its context
		candidates = e.store.Query("")
	}

	scored := make([]entities.ScoredCandidate, 0, len(candidates))
	for _, rec := range candidates {
		if sc, ok := e.scorer.Score(query, rec); ok {
			scored = append(scored, sc)
		}
	}

	if len(scored) == 0 {
		return entities.Locator{}, &NotFoundError{Query: query}
	}

	// identifier order as tie-break keeps resolution deterministic
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Record.Identifier < scored[j].Record.Identifier
	})

	winner, report := e.detector.Evaluate(query, scored)
	if report != nil {
		e.logger.WithFields(logrus.Fields{
			"query": queryText,
			"tied":  len(report.TiedCandidates),
		}).Warn("Ambiguous query")
		return entities.Locator{}, &AmbiguityError{Report: *report}
	}

	locator := e.synth.Synthesize(winner.Record)
	e.logger.WithFields(logrus.Fields{
		"query":      queryText,
		"identifier": winner.Record.Identifier,
		"tier":       winner.MatchedVia,
		"strategy":   locator.Strategy,
	}).Info("Resolved query")
	return locator, nil
}

// normalizeRecord - one-time normalization at load: identifiers are
// lower-cased, text trimmed, missing alternative names defaulted. An
// empty DOM path violates the synthesizer's fallback guarantee and is
// rejected here.
func normalizeRecord(featureContext string, rec entities.ElementRecord) (entities.ElementRecord, error) {
	if strings.TrimSpace(rec.DOMPath) == "" {
		return entities.ElementRecord{}, fmt.Errorf("element %q has an empty dom path", rec.Identifier)
	}

	rec.Identifier = normalize(rec.Identifier)
	if rec.Identifier == "" {
		return entities.ElementRecord{}, fmt.Errorf("element at %q has an empty identifier", rec.DOMPath)
	}

	rec.TagName = strings.ToLower(strings.TrimSpace(rec.TagName))
	rec.Text = strings.TrimSpace(rec.Text)
	rec.FeatureContext = featureContext
	if rec.Attributes == nil {
		rec.Attributes = map[string]string{}
	}

	names := make([]string, 0, len(rec.AlternativeNames))
	for _, name := range rec.AlternativeNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	rec.AlternativeNames = names

	return rec, nil
}

// RecordFromRaw - builds a loadable element record from an extraction
// descriptor
func RecordFromRaw(featureContext string, raw entities.RawElement) entities.ElementRecord {
	return entities.ElementRecord{
		Identifier:       raw.Identifier,
		TagName:          raw.TagName,
		Attributes:       raw.Attributes,
		Text:             raw.Text,
		DOMPath:          raw.DOMPath,
		AlternativeNames: nil,
		FeatureContext:   featureContext,
	}
}
