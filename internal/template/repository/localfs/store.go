package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"event-prep-engine/internal/template"
	"event-prep-engine/pkg/log"
)

// Store persists cache entries as one JSON file per household under a
// base directory. Writes go through a temp file and rename so a crash
// mid-write never leaves a half-written file behind.
type Store struct {
	l       log.Logger
	baseDir string
	mu      sync.Mutex
}

func New(l log.Logger, baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Store{l: l, baseDir: baseDir}, nil
}

func (s *Store) path(householdID string) string {
	if householdID == "" {
		householdID = "default"
	}
	return filepath.Join(s.baseDir, householdID+"-templates.json")
}

// LoadEntries reads all entries for a household. A missing file is an
// empty store; a corrupt file is treated as empty and logged, never
// surfaced as an error.
func (s *Store) LoadEntries(ctx context.Context, householdID string) ([]template.CacheEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(householdID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read template store: %w", err)
	}

	var entries []template.CacheEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		s.l.Warnf(ctx, "template store corrupt, starting empty: %v", err)
		return nil, nil
	}
	return entries, nil
}

func (s *Store) SaveEntries(ctx context.Context, householdID string, entries []template.CacheEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template store: %w", err)
	}

	target := s.path(householdID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write template store: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace template store: %w", err)
	}
	return nil
}
