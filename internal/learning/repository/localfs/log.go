package localfs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"event-prep-engine/internal/learning/repository"
	"event-prep-engine/pkg/log"
)

// Log persists outcome batches as one JSON file per household, same
// temp-file-and-rename discipline as the template store. Delivered
// batches are deleted from the file rather than kept flagged forever.
type Log struct {
	l       log.Logger
	baseDir string
	mu      sync.Mutex
}

func New(l log.Logger, baseDir string) (*Log, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Log{l: l, baseDir: baseDir}, nil
}

func (g *Log) path(householdID string) string {
	if householdID == "" {
		householdID = "default"
	}
	return filepath.Join(g.baseDir, householdID+"-actions.json")
}

func (g *Log) load(ctx context.Context, householdID string) ([]repository.Batch, error) {
	raw, err := os.ReadFile(g.path(householdID))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read action log: %w", err)
	}

	var batches []repository.Batch
	if err := json.Unmarshal(raw, &batches); err != nil {
		g.l.Warnf(ctx, "action log corrupt, starting empty: %v", err)
		return nil, nil
	}
	return batches, nil
}

func (g *Log) save(householdID string, batches []repository.Batch) error {
	raw, err := json.MarshalIndent(batches, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal action log: %w", err)
	}

	target := g.path(householdID)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write action log: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace action log: %w", err)
	}
	return nil
}

func (g *Log) Append(ctx context.Context, householdID string, b repository.Batch) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	batches, err := g.load(ctx, householdID)
	if err != nil {
		return err
	}
	batches = append(batches, b)
	return g.save(householdID, batches)
}

// Pending returns unsubmitted batches oldest-first.
func (g *Log) Pending(ctx context.Context, householdID string) ([]repository.Batch, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	batches, err := g.load(ctx, householdID)
	if err != nil {
		return nil, err
	}

	var pending []repository.Batch
	for _, b := range batches {
		if !b.Submitted {
			pending = append(pending, b)
		}
	}
	return pending, nil
}

// MarkSubmitted deletes the delivered batch, compacting the file down
// to the still-pending ones.
func (g *Log) MarkSubmitted(ctx context.Context, householdID, batchID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	batches, err := g.load(ctx, householdID)
	if err != nil {
		return err
	}

	kept := batches[:0]
	found := false
	for _, b := range batches {
		if b.ID == batchID {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return fmt.Errorf("batch %s not found", batchID)
	}
	return g.save(householdID, kept)
}
