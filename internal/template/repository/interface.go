package repository

import (
	"context"
	"errors"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
)

var (
	ErrNotFound    = errors.New("template not found")
	ErrUnavailable = errors.New("remote authority unavailable")
)

// LocalStore is the durable device-local template store. It must work
// with no network at all; a corrupt or missing file reads as empty.
type LocalStore interface {
	LoadEntries(ctx context.Context, householdID string) ([]template.CacheEntry, error)
	SaveEntries(ctx context.Context, householdID string, entries []template.CacheEntry) error
}

// SearchOptions filters a remote template lookup.
type SearchOptions struct {
	EventType     string
	EventPattern  string
	MinConfidence int
}

// LearningReport is the completion feedback submitted to the authority.
type LearningReport struct {
	TemplateID     string             `json:"template_id,omitempty"`
	EventID        string             `json:"event_id"`
	EventType      string             `json:"event_type"`
	EventPattern   string             `json:"event_pattern"`
	Actions        []model.TaskAction `json:"actions"`
	CompletionRate float64            `json:"completion_rate"`
	ReportedAt     time.Time          `json:"reported_at"`
}

// RemoteAuthority is the server-side source of truth for templates.
// Every method may fail with ErrUnavailable when offline.
type RemoteAuthority interface {
	Search(ctx context.Context, sc model.Scope, opts SearchOptions) (*template.Template, error)
	Create(ctx context.Context, sc model.Scope, t template.Template) (*template.Template, error)
	IncrementUsage(ctx context.Context, sc model.Scope, templateID string) error
	Delete(ctx context.Context, sc model.Scope, templateID string) error
	SubmitLearning(ctx context.Context, sc model.Scope, report LearningReport) error
}
