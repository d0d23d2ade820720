package cache

import (
	"context"
	"fmt"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
)

// The cache doubles as a pending-write source for the sync coordinator:
// entries saved offline keep their pending origin until a flush pushes
// them to the authority.

func (c *Cache) Name() string { return "templates" }

func (c *Cache) PendingCount(ctx context.Context, sc model.Scope) (int, error) {
	c.mu.Lock()
	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	c.mu.Unlock()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, entry := range entries {
		if entry.Origin == template.OriginPending {
			n++
		}
	}
	return n, nil
}

// FlushNext confirms the oldest pending entry with the authority.
// Returns more=true while pending entries remain after this push; a
// failed push returns the error so the coordinator stops the pass.
func (c *Cache) FlushNext(ctx context.Context, sc model.Scope) (bool, error) {
	if c.remote == nil {
		return false, nil
	}

	c.mu.Lock()
	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	c.mu.Unlock()
	if err != nil {
		return false, err
	}

	oldest := -1
	remaining := 0
	for i, entry := range entries {
		if entry.Origin != template.OriginPending {
			continue
		}
		remaining++
		if oldest < 0 || entry.StoredAt.Before(entries[oldest].StoredAt) {
			oldest = i
		}
	}
	if oldest < 0 {
		return false, nil
	}

	entry := entries[oldest]
	key := template.Key(entry.Template.EventType, entry.Template.EventPattern)
	if _, err := c.confirm(ctx, sc, key, entry); err != nil {
		return true, fmt.Errorf("confirm template %s: %w", key, err)
	}
	return remaining > 1, nil
}
