package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"event-prep-engine/internal/event"
	"event-prep-engine/internal/model"
)

// Store is the in-process event store. Sources repopulate it on every
// refresh, so losing it on restart costs nothing.
type Store struct {
	mu     sync.RWMutex
	events map[string]model.EventRecord
	now    func() time.Time
}

func New() *Store {
	return &Store{
		events: make(map[string]model.EventRecord),
		now:    time.Now,
	}
}

func (s *Store) Get(_ context.Context, id string) (*model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, event.ErrNotFound
	}
	return &ev, nil
}

func (s *Store) ListUpcoming(_ context.Context, within time.Duration) ([]model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var out []model.EventRecord
	for _, ev := range s.events {
		if !ev.StartTime.After(now) {
			continue
		}
		if within > 0 && ev.StartTime.After(now.Add(within)) {
			continue
		}
		out = append(out, ev)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// ListActive keeps events whose effective end has not slipped more than
// lookback into the past, so currently running and just-finished events
// stay visible alongside upcoming ones.
func (s *Store) ListActive(_ context.Context, lookback time.Duration) ([]model.EventRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cutoff := s.now().Add(-lookback)
	var out []model.EventRecord
	for _, ev := range s.events {
		if ev.EffectiveEnd().Before(cutoff) {
			continue
		}
		out = append(out, ev)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// Upsert inserts or replaces events by id, keeping the enriched flag
// of an existing record so a refresh does not reset prepared events.
func (s *Store) Upsert(_ context.Context, events ...model.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		if existing, ok := s.events[ev.ID]; ok && existing.AIEnriched {
			ev.AIEnriched = true
		}
		s.events[ev.ID] = ev
	}
	return nil
}

func (s *Store) MarkEnriched(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[id]
	if !ok {
		return event.ErrNotFound
	}
	ev.AIEnriched = true
	s.events[id] = ev
	return nil
}
