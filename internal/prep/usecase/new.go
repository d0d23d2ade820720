package usecase

import (
	"context"
	"time"

	"event-prep-engine/internal/event"
	"event-prep-engine/internal/learning"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/template/cache"
	"event-prep-engine/internal/timeline"
	"event-prep-engine/pkg/log"
)

// DefaultPrepWindow is how close an event must be before it counts as
// "needs preparation now".
const DefaultPrepWindow = 4 * time.Hour

// Broadcaster pushes realtime updates to the event's room.
type Broadcaster interface {
	TimelineUpdated(ctx context.Context, eventID string, payload any)
	TaskCompletionUpdated(ctx context.Context, eventID string, payload any)
}

type implUseCase struct {
	l           log.Logger
	classifier  *pattern.Classifier
	scheduler   timeline.Service
	templates   *cache.Cache
	engine      *learning.Engine
	events      event.Store
	broadcaster Broadcaster
	prepWindow  time.Duration
	now         func() time.Time
}

// New creates the preparation engine use case.
func New(
	l log.Logger,
	classifier *pattern.Classifier,
	scheduler timeline.Service,
	templates *cache.Cache,
	engine *learning.Engine,
	events event.Store,
	broadcaster Broadcaster,
	prepWindow time.Duration,
) *implUseCase {
	if prepWindow <= 0 {
		prepWindow = DefaultPrepWindow
	}
	return &implUseCase{
		l:           l,
		classifier:  classifier,
		scheduler:   scheduler,
		templates:   templates,
		engine:      engine,
		events:      events,
		broadcaster: broadcaster,
		prepWindow:  prepWindow,
		now:         time.Now,
	}
}
