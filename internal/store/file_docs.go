package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileDocumentStore keeps each collection as one JSON file under a base
// directory. Useful for single-machine deployments without Redis.
type FileDocumentStore struct {
	basePath string
}

// NewFileDocumentStore creates the base directory if missing.
func NewFileDocumentStore(basePath string) (*FileDocumentStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("document store base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileDocumentStore{basePath: basePath}, nil
}

// LoadAll reads and decodes the collection file for key.
func (s *FileDocumentStore) LoadAll(key string) ([]json.RawMessage, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", key, err)
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		slog.Warn("corrupt document payload, reading as empty", "key", key, "err", err)
		return []json.RawMessage{}, true, nil
	}
	return docs, true, nil
}

// SaveAll writes the collection to a temp file and renames it into place, so
// readers never observe a partial write.
func (s *FileDocumentStore) SaveAll(key string, docs []json.RawMessage) error {
	if docs == nil {
		docs = []json.RawMessage{}
	}
	payload, err := json.Marshal(docs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *FileDocumentStore) path(key string) string {
	return filepath.Join(s.basePath, safeKeyFilename(key)+".json")
}

func safeKeyFilename(key string) string {
	key = strings.ReplaceAll(key, ":", "_")
	key = strings.ReplaceAll(key, string(os.PathSeparator), "_")
	key = strings.TrimSpace(key)
	if key == "" {
		return "store"
	}
	return key
}
