package cache

import (
	"context"
	"errors"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/template/repository"
)

func (c *Cache) readKey(sc model.Scope, key string) string {
	return sc.HouseholdID + "|" + key
}

// Get returns the cached template for (eventType, patternName) when its
// confidence clears the floor. A miss is (nil, nil): the caller falls
// back to pattern-generated timelines. Remote lookups only happen when
// the local store has nothing usable and the authority is reachable.
func (c *Cache) Get(ctx context.Context, sc model.Scope, eventType, patternName string) (*template.Template, error) {
	key := template.Key(eventType, patternName)

	entry, ok, err := c.lookup(ctx, sc, key)
	if err != nil {
		return nil, err
	}
	if ok && entry.Template.Confidence >= c.minConfidence {
		c.touchUsage(ctx, sc, key)
		t := entry.Template
		return &t, nil
	}

	if c.remote == nil || !c.conn.Online() {
		return nil, nil
	}

	remote, err := c.remote.Search(ctx, sc, repository.SearchOptions{
		EventType:     eventType,
		EventPattern:  patternName,
		MinConfidence: c.minConfidence,
	})
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			c.l.Warnf(ctx, "template search fell back to local: %v", err)
		}
		return nil, nil
	}

	confirmed := template.CacheEntry{
		Template: *remote,
		StoredAt: c.now(),
		Origin:   template.OriginConfirmed,
	}
	if err := c.put(ctx, sc, key, confirmed); err != nil {
		c.l.Warnf(ctx, "caching remote template locally: %v", err)
	}
	t := *remote
	return &t, nil
}

// Save stores a learned or customized timeline as the template for its
// (eventType, eventPattern) key, replacing any previous one. The write
// succeeds with a temporary offline- id even when fully offline; when
// the authority is reachable the entry is confirmed inline and the
// server-assigned id takes over.
func (c *Cache) Save(ctx context.Context, sc model.Scope, input template.SaveInput) (*template.Template, error) {
	if input.EventType == "" || input.EventPattern == "" {
		return nil, template.ErrInvalidInput
	}

	confidence := input.Confidence
	if confidence <= 0 {
		confidence = 100
	}

	t := template.Template{
		ID:                  c.newID(),
		EventType:           input.EventType,
		EventPattern:        input.EventPattern,
		PreparationTimeline: input.PreparationTimeline,
		PostEventTimeline:   input.PostEventTimeline,
		Confidence:          confidence,
		UsageCount:          1,
		LastUsedAt:          c.now(),
		CompletionRate:      input.CompletionRate,
		Version:             1,
	}

	key := template.Key(input.EventType, input.EventPattern)
	entry := template.CacheEntry{Template: t, StoredAt: c.now(), Origin: template.OriginPending}
	if err := c.put(ctx, sc, key, entry); err != nil {
		return nil, err
	}

	if c.remote != nil && c.conn.Online() {
		if confirmed, err := c.confirm(ctx, sc, key, entry); err == nil {
			return confirmed, nil
		} else {
			c.l.Warnf(ctx, "template queued for sync, remote save failed: %v", err)
		}
	}

	return &t, nil
}

// Clear removes the template for a key. Clearing an absent key is a
// no-op; a remote delete failure is recovered from locally and not
// surfaced.
func (c *Cache) Clear(ctx context.Context, sc model.Scope, eventType, patternName string) error {
	key := template.Key(eventType, patternName)

	removed, ok, err := c.remove(ctx, sc, key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	if c.remote != nil && c.conn.Online() && removed.Template.Confirmed() {
		if err := c.remote.Delete(ctx, sc, removed.Template.ID); err != nil {
			c.l.Warnf(ctx, "remote template delete failed, removed locally: %v", err)
		}
	}
	return nil
}

// confirm pushes a pending entry to the authority and swaps in the
// server copy.
func (c *Cache) confirm(ctx context.Context, sc model.Scope, key string, entry template.CacheEntry) (*template.Template, error) {
	serverCopy, err := c.remote.Create(ctx, sc, entry.Template)
	if err != nil {
		return nil, err
	}
	confirmed := template.CacheEntry{
		Template: *serverCopy,
		StoredAt: c.now(),
		Origin:   template.OriginConfirmed,
	}
	if err := c.put(ctx, sc, key, confirmed); err != nil {
		return nil, err
	}
	return serverCopy, nil
}

// touchUsage bumps the local usage counters and mirrors the increment
// to the authority in the background.
func (c *Cache) touchUsage(ctx context.Context, sc model.Scope, key string) {
	var templateID string
	err := c.update(ctx, sc, key, func(entry *template.CacheEntry) error {
		entry.Template.UsageCount++
		entry.Template.LastUsedAt = c.now()
		if entry.Template.Confirmed() {
			templateID = entry.Template.ID
		}
		return nil
	})
	if err != nil {
		c.l.Warnf(ctx, "recording template usage: %v", err)
		return
	}

	if templateID == "" || c.remote == nil || !c.conn.Online() {
		return
	}
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := c.remote.IncrementUsage(bg, sc, templateID); err != nil {
			c.l.Warnf(bg, "remote usage increment failed: %v", err)
		}
	}()
}

// Entries returns every cached entry for the household, confirmed and
// pending alike. Used by the learning decay job.
func (c *Cache) Entries(ctx context.Context, sc model.Scope) ([]template.CacheEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.local.LoadEntries(ctx, sc.HouseholdID)
}

// Update applies mutate to the stored template for a key and persists
// the result. Returns template.ErrNotFound when no template exists.
func (c *Cache) Update(ctx context.Context, sc model.Scope, eventType, patternName string, mutate func(*template.Template) error) error {
	key := template.Key(eventType, patternName)
	return c.update(ctx, sc, key, func(entry *template.CacheEntry) error {
		return mutate(&entry.Template)
	})
}

func (c *Cache) lookup(ctx context.Context, sc model.Scope, key string) (template.CacheEntry, bool, error) {
	if entry, ok := c.read.Get(c.readKey(sc, key)); ok {
		return entry, true, nil
	}

	c.mu.Lock()
	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	c.mu.Unlock()
	if err != nil {
		return template.CacheEntry{}, false, err
	}

	for _, entry := range entries {
		k := template.Key(entry.Template.EventType, entry.Template.EventPattern)
		c.read.Add(c.readKey(sc, k), entry)
	}

	entry, ok := c.read.Get(c.readKey(sc, key))
	return entry, ok, nil
}

func (c *Cache) put(ctx context.Context, sc model.Scope, key string, entry template.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	if err != nil {
		return err
	}

	replaced := false
	for i := range entries {
		if template.Key(entries[i].Template.EventType, entries[i].Template.EventPattern) == key {
			entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, entry)
	}

	if err := c.local.SaveEntries(ctx, sc.HouseholdID, entries); err != nil {
		return err
	}
	c.read.Add(c.readKey(sc, key), entry)
	return nil
}

func (c *Cache) update(ctx context.Context, sc model.Scope, key string, mutate func(*template.CacheEntry) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	if err != nil {
		return err
	}

	for i := range entries {
		if template.Key(entries[i].Template.EventType, entries[i].Template.EventPattern) != key {
			continue
		}
		if err := mutate(&entries[i]); err != nil {
			return err
		}
		if err := c.local.SaveEntries(ctx, sc.HouseholdID, entries); err != nil {
			return err
		}
		c.read.Add(c.readKey(sc, key), entries[i])
		return nil
	}
	return template.ErrNotFound
}

func (c *Cache) remove(ctx context.Context, sc model.Scope, key string) (template.CacheEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.local.LoadEntries(ctx, sc.HouseholdID)
	if err != nil {
		return template.CacheEntry{}, false, err
	}

	for i := range entries {
		if template.Key(entries[i].Template.EventType, entries[i].Template.EventPattern) != key {
			continue
		}
		removed := entries[i]
		entries = append(entries[:i], entries[i+1:]...)
		if err := c.local.SaveEntries(ctx, sc.HouseholdID, entries); err != nil {
			return template.CacheEntry{}, false, err
		}
		c.read.Remove(c.readKey(sc, key))
		return removed, true, nil
	}
	return template.CacheEntry{}, false, nil
}
