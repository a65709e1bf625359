package usage

import (
	"context"
	"fmt"
	"log/slog"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store persists the recents list.
type Store interface {
	// Load returns the stored records, most recent first. A store that has
	// never been saved returns an empty list and no error.
	Load(ctx context.Context) ([]Record, error)
	// Save replaces the stored records.
	Save(ctx context.Context, records []Record) error
	Close() error
}

// Open returns the store for backend. jsonPath and dbPath locate the
// respective backends' files.
func Open(backend, jsonPath, dbPath string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewJSONStore(jsonPath), nil
	case BackendSQLite:
		return NewSQLiteStore(dbPath)
	default:
		return nil, fmt.Errorf("unknown recents backend %q", backend)
	}
}

// LoadQuiet loads the recents list, logging and swallowing any failure.
// A nil store yields an empty list.
func LoadQuiet(ctx context.Context, s Store) []Record {
	if s == nil {
		return nil
	}
	records, err := s.Load(ctx)
	if err != nil {
		slog.Warn("failed to load recent skills", "error", err)
		return nil
	}
	return records
}

// SaveQuiet saves the recents list, logging and swallowing any failure.
// It reports whether the save succeeded.
func SaveQuiet(ctx context.Context, s Store, records []Record) bool {
	if s == nil {
		return false
	}
	if err := s.Save(ctx, records); err != nil {
		slog.Warn("failed to save recent skills", "error", err)
		return false
	}
	return true
}
