package entities

// RawElement represents a single element descriptor as produced by the
// extraction front-end, before normalization
type RawElement struct {
	TagName    string            `json:"tag_name"`    // lower-cased tag, e.g. button, input
	Attributes map[string]string `json:"attributes"`  // id, class, type, name, data-testid, aria-*
	Text       string            `json:"text"`        // visible text, untrimmed
	DOMPath    string            `json:"dom_path"`    // structural path computed at capture time
	IsVisible  bool              `json:"is_visible"`  // element occupied layout space at capture
	Position   Position          `json:"position"`    // center of the bounding box
	Identifier string            `json:"identifier"`  // rule-derived key, may be overwritten by enrichment
}

// Position represents the on-page position of an element
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ElementRecord represents one captured UI element after normalization.
// Records are immutable once loaded into the store; a reload of the
// feature scope is the only way to change them.
type ElementRecord struct {
	Identifier       string            `json:"identifier"`        // canonical key, context_type_description
	TagName          string            `json:"tag_name"`          // lower-cased tag
	Attributes       map[string]string `json:"attributes"`        // identifying HTML attributes
	Text             string            `json:"text"`              // trimmed visible text, may be empty
	DOMPath          string            `json:"dom_path"`          // structural fallback locator, never empty
	AlternativeNames []string          `json:"alternative_names"` // human synonyms, relevance-descending
	FeatureContext   string            `json:"feature_context"`   // page/feature group scoping this record
}

// Query represents one resolution request
type Query struct {
	Text    string `json:"text"`              // identifier, partial token, phrase, or glob pattern
	Context string `json:"context,omitempty"` // optional feature context hint
}
