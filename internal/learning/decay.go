package learning

import (
	"context"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
)

const (
	// decayAfter is how long a template can sit unused before its
	// confidence starts eroding.
	decayAfter = 30 * 24 * time.Hour
	decayStep  = 5
)

// Decay lowers the confidence of templates that have not been used for
// a month, one step per run, never below the floor. Returns how many
// templates were touched. Meant to run from the nightly cron.
func (e *Engine) Decay(ctx context.Context, sc model.Scope) (int, error) {
	entries, err := e.cache.Entries(ctx, sc)
	if err != nil {
		return 0, err
	}

	cutoff := e.now().Add(-decayAfter)
	touched := 0
	for _, entry := range entries {
		t := entry.Template
		if t.Confidence <= ConfidenceFloor || !t.LastUsedAt.Before(cutoff) {
			continue
		}
		err := e.cache.Update(ctx, sc, t.EventType, t.EventPattern, func(stored *template.Template) error {
			stored.Confidence -= decayStep
			if stored.Confidence < ConfidenceFloor {
				stored.Confidence = ConfidenceFloor
			}
			return nil
		})
		if err != nil {
			e.l.Warnf(ctx, "decaying template %s-%s: %v", t.EventType, t.EventPattern, err)
			continue
		}
		touched++
	}

	if touched > 0 {
		e.l.Infof(ctx, "decayed confidence on %d stale templates", touched)
	}
	return touched, nil
}
