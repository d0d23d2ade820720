package event

import (
	"context"
	"time"

	"event-prep-engine/pkg/log"
)

// Refresher pulls events from every configured source into the store.
// One failing source logs and moves on; a calendar outage must not hide
// the ICS feed's events.
type Refresher struct {
	l       log.Logger
	store   Store
	sources []Source
	window  time.Duration
	now     func() time.Time
}

func NewRefresher(l log.Logger, store Store, window time.Duration, sources ...Source) *Refresher {
	if window <= 0 {
		window = 7 * 24 * time.Hour
	}
	return &Refresher{
		l:       l,
		store:   store,
		sources: sources,
		window:  window,
		now:     time.Now,
	}
}

// Refresh returns how many events were upserted.
func (r *Refresher) Refresh(ctx context.Context) (int, error) {
	from := r.now()
	to := from.Add(r.window)

	total := 0
	for _, src := range r.sources {
		events, err := src.List(ctx, from, to)
		if err != nil {
			r.l.Warnf(ctx, "event source %s failed: %v", src.Name(), err)
			continue
		}
		if err := r.store.Upsert(ctx, events...); err != nil {
			return total, err
		}
		total += len(events)
	}

	r.l.Infof(ctx, "refreshed %d events from %d sources", total, len(r.sources))
	return total, nil
}
