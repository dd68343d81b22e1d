package interfaces

import "ui_mapping/domain/entities"

// MappingStorage defines the interface for persisting captured element
// mappings between sessions
type MappingStorage interface {
	// Save writes the mapping, grouped by feature context, to path
	Save(path string, contexts map[string][]entities.ElementRecord) error

	// Load reads a previously saved mapping from path
	Load(path string) (map[string][]entities.ElementRecord, error)
}
