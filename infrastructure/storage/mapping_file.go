package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"ui_mapping/domain/entities"
	"ui_mapping/domain/interfaces"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// mappingDocument is the on-disk shape of a captured mapping: one record
// per element, grouped under a feature-context key
type mappingDocument struct {
	SessionID  string                              `json:"session_id"`
	CapturedAt time.Time                           `json:"captured_at"`
	Contexts   map[string][]entities.ElementRecord `json:"contexts"`
}

type mappingFile struct {
	logger *logrus.Logger
}

// NewMappingFile - creates JSON file storage for element mappings
func NewMappingFile(logger *logrus.Logger) interfaces.MappingStorage {
	return &mappingFile{logger: logger}
}

// Save - writes the mapping to path, stamped with a fresh session id
func (s *mappingFile) Save(path string, contexts map[string][]entities.ElementRecord) error {
	doc := mappingDocument{
		SessionID:  uuid.NewString(),
		CapturedAt: time.Now().UTC(),
		Contexts:   contexts,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"contexts": len(contexts),
		"session":  doc.SessionID,
	}).Info("Saved element mapping")
	return nil
}

// Load - reads a previously saved mapping from path
func (s *mappingFile) Load(path string) (map[string][]entities.ElementRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file: %w", err)
	}

	var doc mappingDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mapping file: %w", err)
	}
	if doc.Contexts == nil {
		doc.Contexts = make(map[string][]entities.ElementRecord)
	}

	s.logger.WithFields(logrus.Fields{
		"path":     path,
		"contexts": len(doc.Contexts),
		"session":  doc.SessionID,
	}).Info("Loaded element mapping")
	return doc.Contexts, nil
}
