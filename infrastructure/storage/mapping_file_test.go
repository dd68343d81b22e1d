package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"ui_mapping/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage() *mappingFile {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return &mappingFile{logger: logger}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	storage := newTestStorage()
	path := filepath.Join(t.TempDir(), "mapping.json")

	contexts := map[string][]entities.ElementRecord{
		"login": {{
			Identifier:       "login_button_submit",
			TagName:          "button",
			Attributes:       map[string]string{"data-testid": "submit"},
			Text:             "Sign In",
			DOMPath:          "/html/body/form/button[1]",
			AlternativeNames: []string{"sign in"},
			FeatureContext:   "login",
		}},
	}

	require.NoError(t, storage.Save(path, contexts))

	loaded, err := storage.Load(path)
	require.NoError(t, err)
	assert.Equal(t, contexts, loaded)
}

func TestSaveStampsSessionMetadata(t *testing.T) {
	storage := newTestStorage()
	path := filepath.Join(t.TempDir(), "mapping.json")

	require.NoError(t, storage.Save(path, map[string][]entities.ElementRecord{}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc mappingDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.SessionID)
	assert.False(t, doc.CapturedAt.IsZero())
}

func TestLoadMissingFile(t *testing.T) {
	storage := newTestStorage()

	_, err := storage.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	storage := newTestStorage()
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0644))

	_, err := storage.Load(path)
	assert.Error(t, err)
}
