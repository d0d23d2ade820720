package prep

import (
	"context"

	"event-prep-engine/internal/learning"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/template"
)

// UseCase is the preparation engine's business logic surface.
type UseCase interface {
	// Classify matches free text against the pattern table. A nil match
	// means no pattern applies.
	Classify(ctx context.Context, sc model.Scope, input ClassifyInput) (*pattern.Match, error)

	// Timeline produces the preparation timeline for an event, serving a
	// learned template when one clears the confidence floor and falling
	// back to pattern generation otherwise.
	Timeline(ctx context.Context, sc model.Scope, eventID string) (*TimelineOutput, error)

	// PostEvent produces the follow-up timeline for an event.
	PostEvent(ctx context.Context, sc model.Scope, eventID string) (*TimelineOutput, error)

	// SaveTemplate persists a customized timeline as the template for the
	// event's type and pattern.
	SaveTemplate(ctx context.Context, sc model.Scope, input SaveTemplateInput) (*template.Template, error)

	// ClearTemplate forgets the template for a key. Clearing an absent
	// key succeeds.
	ClearTemplate(ctx context.Context, sc model.Scope, input ClearTemplateInput) error

	// RecordActions feeds task outcomes to the learning engine and
	// notifies the event's room.
	RecordActions(ctx context.Context, sc model.Scope, input RecordActionsInput) (*learning.Result, error)

	// Suggestions returns contextual preparation hints for an event.
	Suggestions(ctx context.Context, sc model.Scope, eventID string) ([]Suggestion, error)

	// Upcoming lists future events annotated with preparation state.
	Upcoming(ctx context.Context, sc model.Scope) (*UpcomingOutput, error)
}
