package usecase

import (
	"context"

	"event-prep-engine/internal/learning"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/prep"
)

func (uc *implUseCase) RecordActions(ctx context.Context, sc model.Scope, input prep.RecordActionsInput) (*learning.Result, error) {
	if len(input.Actions) == 0 {
		return nil, prep.ErrInvalidInput
	}

	ev, err := uc.getEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}

	match := uc.classifier.Classify(ev.SearchText())
	eventType, patternName := templateKeyParts(*ev, match)

	res, err := uc.engine.RecordActions(ctx, sc, learning.RecordInput{
		EventID:      ev.ID,
		EventType:    eventType,
		EventPattern: patternName,
		Actions:      input.Actions,
	})
	if err != nil {
		return nil, err
	}

	if uc.broadcaster != nil {
		uc.broadcaster.TaskCompletionUpdated(ctx, ev.ID, map[string]any{
			"completion_rate": res.CompletionRate,
			"actions":         input.Actions,
		})
	}
	return res, nil
}
