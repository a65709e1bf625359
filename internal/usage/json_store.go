package usage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// jsonDocument is the on-disk shape of the recents file.
type jsonDocument struct {
	Recent []Record `json:"recent"`
}

// JSONStore keeps the recents list in a small JSON file.
type JSONStore struct {
	path string
}

// Compile-time check that JSONStore implements Store.
var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a store backed by the file at path. The file and its
// directory are created on first Save.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the backing file path.
func (s *JSONStore) Path() string {
	return s.path
}

// Load reads the recents file. A missing file is an empty list.
func (s *JSONStore) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read recents file: %w", err)
	}

	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse recents file: %w", err)
	}
	return normalize(doc.Recent), nil
}

// Save writes the recents file atomically: the data goes to a temporary
// file in the same directory which is then renamed over the target.
func (s *JSONStore) Save(ctx context.Context, records []Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create recents directory: %w", err)
	}

	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(jsonDocument{Recent: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal recents: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recents-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // No-op after a successful rename

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write recents: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set recents permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write recents: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace recents file: %w", err)
	}
	return nil
}

// Close is a no-op; the file is not held open.
func (s *JSONStore) Close() error {
	return nil
}
