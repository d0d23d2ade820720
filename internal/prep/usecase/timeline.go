package usecase

import (
	"context"
	"errors"
	"strings"

	"event-prep-engine/internal/event"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/prep"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/timeline"
)

func (uc *implUseCase) Classify(_ context.Context, _ model.Scope, input prep.ClassifyInput) (*pattern.Match, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, prep.ErrInvalidInput
	}
	return uc.classifier.Classify(input.Text), nil
}

func (uc *implUseCase) Timeline(ctx context.Context, sc model.Scope, eventID string) (*prep.TimelineOutput, error) {
	ev, err := uc.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	match := uc.classifier.Classify(ev.SearchText())
	eventType, patternName := templateKeyParts(*ev, match)

	if tpl, err := uc.templates.Get(ctx, sc, eventType, patternName); err == nil && tpl != nil {
		out := &prep.TimelineOutput{
			EventID:      ev.ID,
			Tasks:        template.Apply(*tpl, *ev),
			EventPattern: tpl.EventPattern,
			Confidence:   tpl.Confidence,
			Source:       prep.SourceTemplate,
			TemplateID:   tpl.ID,
		}
		out.TotalPrepTime = sumPrepMinutes(out.Tasks)
		uc.finishTimeline(ctx, ev.ID, out)
		return out, nil
	} else if err != nil {
		uc.l.Warnf(ctx, "template lookup for %s: %v", ev.ID, err)
	}

	generated := uc.scheduler.Generate(*ev, match)
	if generated == nil {
		return nil, prep.ErrEventNotPreparable
	}

	out := &prep.TimelineOutput{
		EventID:       ev.ID,
		Tasks:         generated.Tasks,
		TotalPrepTime: generated.TotalPrepTime,
		EventPattern:  generated.EventPattern,
		Confidence:    generated.Confidence,
		Source:        prep.SourceGenerated,
	}
	uc.finishTimeline(ctx, ev.ID, out)
	return out, nil
}

func (uc *implUseCase) PostEvent(ctx context.Context, sc model.Scope, eventID string) (*prep.TimelineOutput, error) {
	ev, err := uc.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	match := uc.classifier.Classify(ev.SearchText())
	tasks := uc.scheduler.GeneratePostEvent(*ev, match)
	if tasks == nil {
		return nil, prep.ErrEventNotPreparable
	}

	out := &prep.TimelineOutput{
		EventID:      ev.ID,
		Tasks:        tasks,
		EventPattern: patternNameOf(match),
		Source:       prep.SourceGenerated,
	}
	if match != nil {
		out.Confidence = match.Confidence
	}
	return out, nil
}

func (uc *implUseCase) getEvent(ctx context.Context, eventID string) (*model.EventRecord, error) {
	if eventID == "" {
		return nil, prep.ErrInvalidInput
	}
	ev, err := uc.events.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, event.ErrNotFound) {
			return nil, prep.ErrEventNotFound
		}
		return nil, err
	}
	return ev, nil
}

// finishTimeline marks the event enriched and tells the room. Neither
// failure affects the returned timeline.
func (uc *implUseCase) finishTimeline(ctx context.Context, eventID string, out *prep.TimelineOutput) {
	if err := uc.events.MarkEnriched(ctx, eventID); err != nil {
		uc.l.Warnf(ctx, "marking event %s enriched: %v", eventID, err)
	}
	if uc.broadcaster != nil {
		uc.broadcaster.TimelineUpdated(ctx, eventID, out)
	}
}

// templateKeyParts derives the cache key: lowercased title plus the
// matched pattern (general when nothing matched).
func templateKeyParts(ev model.EventRecord, match *pattern.Match) (eventType, patternName string) {
	return strings.ToLower(strings.TrimSpace(ev.Title)), patternNameOf(match)
}

func patternNameOf(match *pattern.Match) string {
	if match == nil {
		return "general"
	}
	return match.PatternName
}

func sumPrepMinutes(tasks []timeline.Task) int {
	total := 0
	for _, task := range tasks {
		if task.Type != timeline.TaskFollowUp && task.Type != timeline.TaskEventStart {
			total += task.DurationMin
		}
	}
	return total
}
