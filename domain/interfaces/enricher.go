package interfaces

import (
	"context"

	"ui_mapping/domain/entities"
)

// NameEnricher defines the interface for the optional AI name-enrichment
// service. Absence of an enricher only reduces matching precision; the
// resolution engine never depends on it.
type NameEnricher interface {
	// Enrich proposes a canonical identifier and human-phrased synonyms
	// for a raw element. The returned identifier replaces the rule-derived
	// one; the names are appended as alternative names, best first.
	Enrich(ctx context.Context, element entities.RawElement) (identifier string, names []string, err error)
}
