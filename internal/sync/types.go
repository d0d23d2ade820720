package sync

import (
	"context"
	"time"

	"event-prep-engine/internal/model"
)

// PendingSource is a store holding unsynced local writes. Sources drain
// oldest-first; FlushNext pushes exactly one write upstream and reports
// whether more remain.
type PendingSource interface {
	Name() string
	PendingCount(ctx context.Context, sc model.Scope) (int, error)
	FlushNext(ctx context.Context, sc model.Scope) (more bool, err error)
}

// Status is the externally visible sync state.
type Status struct {
	Online        bool      `json:"online"`
	PendingWrites int       `json:"pending_writes"`
	LastSyncAt    time.Time `json:"last_sync_at,omitempty"`
	LastError     string    `json:"last_error,omitempty"`
}
