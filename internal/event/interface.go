package event

import (
	"context"
	"errors"
	"time"

	"event-prep-engine/internal/model"
)

var ErrNotFound = errors.New("event not found")

// Source is anything that can produce calendar events for a window:
// Google Calendar, an ICS feed, or manual entry.
type Source interface {
	Name() string
	List(ctx context.Context, from, to time.Time) ([]model.EventRecord, error)
}

// Store holds the events the engine currently knows about.
type Store interface {
	Get(ctx context.Context, id string) (*model.EventRecord, error)
	// ListUpcoming returns future events starting within the window,
	// ascending by start time. within <= 0 means no upper bound.
	ListUpcoming(ctx context.Context, within time.Duration) ([]model.EventRecord, error)
	// ListActive returns events still relevant for coordination: running
	// now, ended within lookback, or upcoming. Ascending by start time.
	ListActive(ctx context.Context, lookback time.Duration) ([]model.EventRecord, error)
	Upsert(ctx context.Context, events ...model.EventRecord) error
	// MarkEnriched records that a prepared timeline exists for the event.
	MarkEnriched(ctx context.Context, id string) error
}
