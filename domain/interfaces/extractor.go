package interfaces

import (
	"context"

	"ui_mapping/domain/entities"
)

// PageExtractor defines the interface for the extraction front-end
type PageExtractor interface {
	// ExtractPage navigates to a URL (http(s):// or file://) and returns
	// raw descriptors for the interactive elements found on it
	ExtractPage(ctx context.Context, url string, featureContext string) ([]entities.RawElement, error)

	// Close shuts down the underlying browser
	Close() error
}
