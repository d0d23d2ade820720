package usecase

import (
	"context"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/prep"
	"event-prep-engine/internal/template"
)

func (uc *implUseCase) SaveTemplate(ctx context.Context, sc model.Scope, input prep.SaveTemplateInput) (*template.Template, error) {
	if len(input.Tasks) == 0 {
		return nil, prep.ErrInvalidInput
	}

	ev, err := uc.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	match := uc.classifier.Classify(ev.SearchText())
	eventType, patternName := templateKeyParts(*ev, match)

	prepTasks, postTasks := template.RelativeFromTimeline(input.Tasks, *ev)
	confidence := 100
	if match != nil && match.Confidence > 0 {
		// seed from classification confidence so weak matches start
		// below the serving floor until reinforced
		confidence = match.Confidence
	}

	saved, err := uc.templates.Save(ctx, sc, template.SaveInput{
		EventType:           eventType,
		EventPattern:        patternName,
		PreparationTimeline: prepTasks,
		PostEventTimeline:   postTasks,
		Confidence:          confidence,
	})
	if err != nil {
		return nil, err
	}

	if uc.broadcaster != nil {
		uc.broadcaster.TimelineUpdated(ctx, ev.ID, map[string]any{
			"template_id": saved.ID,
			"tasks":       input.Tasks,
		})
	}
	return saved, nil
}

func (uc *implUseCase) ClearTemplate(ctx context.Context, sc model.Scope, input prep.ClearTemplateInput) error {
	if input.EventType == "" || input.EventPattern == "" {
		return prep.ErrInvalidInput
	}
	return uc.templates.Clear(ctx, sc, input.EventType, input.EventPattern)
}
