package repository

import (
	"context"
	"time"

	"event-prep-engine/internal/model"
)

// Batch is one durably-logged set of task outcomes awaiting upstream
// submission.
type Batch struct {
	ID             string             `json:"id"`
	EventID        string             `json:"event_id"`
	EventType      string             `json:"event_type"`
	EventPattern   string             `json:"event_pattern"`
	Actions        []model.TaskAction `json:"actions"`
	CompletionRate float64            `json:"completion_rate"`
	RecordedAt     time.Time          `json:"recorded_at"`
	// Submitted marks a delivered batch in stores that retain history;
	// stores that drop delivered batches never set it.
	Submitted bool `json:"submitted"`
}

// ActionLog is the durable, per-household log of outcome batches. It
// survives restarts so offline batches are never lost.
type ActionLog interface {
	Append(ctx context.Context, householdID string, b Batch) error
	// Pending returns undelivered batches oldest-first.
	Pending(ctx context.Context, householdID string) ([]Batch, error)
	// MarkSubmitted retires a delivered batch: it no longer appears in
	// Pending, whether the store flags it or drops it.
	MarkSubmitted(ctx context.Context, householdID, batchID string) error
}
