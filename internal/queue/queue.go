// Package queue persists the single queued skill.
//
// At most one skill is queued at a time. Choosing a skill in the picker
// queues it; choosing the queued skill again removes it.
package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotQueued is returned by Clear when nothing is queued.
var ErrNotQueued = errors.New("no skill is queued")

// Entry is the on-disk queue record.
type Entry struct {
	Name     string    `json:"name"`
	QueuedAt time.Time `json:"queuedAt"`
}

// Store keeps the queued skill in a JSON file.
type Store struct {
	Path string
	now  func() time.Time
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path, now: time.Now}
}

// Get returns the queued skill name, or "" when none is queued.
func (s *Store) Get() (string, error) {
	e, err := s.Entry()
	if err != nil {
		return "", err
	}
	return e.Name, nil
}

// Entry returns the full queue record. A missing file is an empty entry.
func (s *Store) Entry() (Entry, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, nil
		}
		return Entry{}, fmt.Errorf("failed to read queue file: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("failed to parse queue file: %w", err)
	}
	return e, nil
}

// Set queues name, replacing any previously queued skill.
func (s *Store) Set(name string) error {
	if name == "" {
		return errors.New("skill name is required")
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	data, err := json.MarshalIndent(Entry{Name: name, QueuedAt: now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal queue entry: %w", err)
	}
	return writeAtomic(s.Path, append(data, '\n'))
}

// Clear removes the queued skill. It returns ErrNotQueued when nothing was
// queued.
func (s *Store) Clear() error {
	name, err := s.Get()
	if err != nil {
		// An unreadable queue is still cleared.
		if rmErr := os.Remove(s.Path); rmErr != nil && !os.IsNotExist(rmErr) {
			return fmt.Errorf("failed to remove queue file: %w", rmErr)
		}
		return nil
	}
	if name == "" {
		return ErrNotQueued
	}
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove queue file: %w", err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create queue directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".queue-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write queue file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set queue file permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write queue file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace queue file: %w", err)
	}
	return nil
}
