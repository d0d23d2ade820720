package usecase

import (
	"context"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/prep"
)

const (
	// recentFollowUpWindow is how long after an event ends its
	// follow-up tasks keep it in coordination focus.
	recentFollowUpWindow = time.Hour
	// nextEventHorizon bounds the lowest-priority tier: an event
	// further out than this is not worth coordinating around yet.
	nextEventHorizon = 8 * time.Hour
)

func (uc *implUseCase) Upcoming(ctx context.Context, _ model.Scope) (*prep.UpcomingOutput, error) {
	events, err := uc.events.ListActive(ctx, recentFollowUpWindow)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	out := &prep.UpcomingOutput{Events: make([]prep.UpcomingEvent, 0, len(events))}
	annotated := make([]prep.UpcomingEvent, 0, len(events))

	for _, ev := range events {
		match := uc.classifier.Classify(ev.SearchText())
		a := prep.UpcomingEvent{
			EventRecord:  ev,
			EventPattern: patternNameOf(match),
		}
		if until := ev.StartTime.Sub(now); until > 0 && until <= uc.prepWindow {
			a.WithinPrepWindow = true
		}
		if match != nil && match.Transportation == pattern.TransportParentRequired {
			a.NeedsCoordination = true
		}

		annotated = append(annotated, a)
		if ev.StartTime.After(now) {
			out.Events = append(out.Events, a)
		}
	}

	out.NextCoordination = uc.nextCoordination(annotated, now)
	return out, nil
}

// nextCoordination walks the priority tiers over events sorted by start
// time: currently running, recently ended (follow-up), next inside the
// preparation window, next within the eight hour horizon.
func (uc *implUseCase) nextCoordination(events []prep.UpcomingEvent, now time.Time) *prep.UpcomingEvent {
	for _, ev := range events {
		if !ev.StartTime.After(now) && !ev.EffectiveEnd().Before(now) {
			ev.CoordinationStatus = prep.CoordinationCurrent
			return &ev
		}
	}
	for _, ev := range events {
		if since := now.Sub(ev.EffectiveEnd()); since > 0 && since <= recentFollowUpWindow {
			ev.CoordinationStatus = prep.CoordinationRecentlyEnded
			return &ev
		}
	}
	for _, ev := range events {
		if until := ev.StartTime.Sub(now); until > 0 && until <= uc.prepWindow {
			ev.CoordinationStatus = prep.CoordinationUpcoming
			return &ev
		}
	}
	for _, ev := range events {
		if until := ev.StartTime.Sub(now); until > 0 && until <= nextEventHorizon {
			ev.CoordinationStatus = prep.CoordinationNext
			return &ev
		}
	}
	return nil
}
