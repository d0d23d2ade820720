package learning

import (
	"context"
	"fmt"

	"event-prep-engine/internal/model"
	templaterepo "event-prep-engine/internal/template/repository"
)

// The engine doubles as a pending-write source: batches that could not
// be submitted stay in the durable log until a sync flush delivers them.

func (e *Engine) Name() string { return "learning" }

func (e *Engine) PendingCount(ctx context.Context, sc model.Scope) (int, error) {
	pending, err := e.actions.Pending(ctx, sc.HouseholdID)
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}

// FlushNext submits the oldest pending batch and reports whether more
// remain. A failed submit stops the pass with the batch still queued.
func (e *Engine) FlushNext(ctx context.Context, sc model.Scope) (bool, error) {
	if e.remote == nil {
		return false, nil
	}

	pending, err := e.actions.Pending(ctx, sc.HouseholdID)
	if err != nil {
		return false, err
	}
	if len(pending) == 0 {
		return false, nil
	}

	batch := pending[0]
	report := templaterepo.LearningReport{
		EventID:        batch.EventID,
		EventType:      batch.EventType,
		EventPattern:   batch.EventPattern,
		Actions:        batch.Actions,
		CompletionRate: batch.CompletionRate,
		ReportedAt:     e.now(),
	}
	if err := e.remote.SubmitLearning(ctx, sc, report); err != nil {
		return true, fmt.Errorf("submit learning batch %s: %w", batch.ID, err)
	}
	if err := e.actions.MarkSubmitted(ctx, sc.HouseholdID, batch.ID); err != nil {
		return true, err
	}
	return len(pending) > 1, nil
}
