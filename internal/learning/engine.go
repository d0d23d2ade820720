package learning

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"event-prep-engine/internal/learning/repository"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/template/cache"
	templaterepo "event-prep-engine/internal/template/repository"
	"event-prep-engine/pkg/log"
)

// Engine turns task outcomes into template adjustments. Every batch is
// logged durably first, applied to the local template synchronously,
// and pushed upstream best-effort.
type Engine struct {
	l       log.Logger
	cache   *cache.Cache
	actions repository.ActionLog
	remote  templaterepo.RemoteAuthority
	conn    cache.Connectivity

	now   func() time.Time
	newID func() string
}

func New(l log.Logger, c *cache.Cache, actions repository.ActionLog, remote templaterepo.RemoteAuthority, conn cache.Connectivity) *Engine {
	return &Engine{
		l:       l,
		cache:   c,
		actions: actions,
		remote:  remote,
		conn:    conn,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// NextConfidence blends the previous confidence with this batch's
// completion rate (0.0-1.0). A fully-completed timeline holds a 100
// template at 100; an ignored one decays toward, but never past, the
// floor.
func NextConfidence(old int, completionRate float64) int {
	next := float64(old)*0.8 + completionRate*100*0.2
	next = math.Min(math.Max(next, ConfidenceFloor), ConfidenceCeiling)
	return int(math.Round(next))
}

// RecordActions processes one batch of outcomes for a finished
// timeline. The durable log write must succeed; the template update is
// skipped when no template exists for the key, and the upstream
// submission failing just leaves the batch queued for the next flush.
func (e *Engine) RecordActions(ctx context.Context, sc model.Scope, in RecordInput) (*Result, error) {
	if in.EventType == "" || in.EventPattern == "" || len(in.Actions) == 0 {
		return nil, ErrInvalidInput
	}

	completed := 0
	skipped := make(map[string]bool)
	for _, a := range in.Actions {
		switch a.Action {
		case model.ActionCompleted:
			completed++
		case model.ActionSkipped:
			skipped[a.TaskID] = true
		}
	}
	rate := float64(completed) / float64(len(in.Actions))

	batch := repository.Batch{
		ID:             e.newID(),
		EventID:        in.EventID,
		EventType:      in.EventType,
		EventPattern:   in.EventPattern,
		Actions:        in.Actions,
		CompletionRate: rate,
		RecordedAt:     e.now(),
	}
	if err := e.actions.Append(ctx, sc.HouseholdID, batch); err != nil {
		return nil, err
	}

	res := &Result{CompletionRate: rate}

	var templateID string
	err := e.cache.Update(ctx, sc, in.EventType, in.EventPattern, func(t *template.Template) error {
		t.Confidence = NextConfidence(t.Confidence, rate)
		t.CompletionRate = rate
		t.LastUsedAt = e.now()
		t.Version++
		demoteSkipped(t.PreparationTimeline, skipped)
		demoteSkipped(t.PostEventTimeline, skipped)
		if t.Confirmed() {
			templateID = t.ID
		}
		snapshot := *t
		res.Template = &snapshot
		return nil
	})
	if err != nil && !errors.Is(err, template.ErrNotFound) {
		return nil, err
	}
	if errors.Is(err, template.ErrNotFound) {
		e.l.Debugf(ctx, "no template for %s, actions logged only", template.Key(in.EventType, in.EventPattern))
	}

	e.submit(ctx, sc, batch, templateID)
	return res, nil
}

// demoteSkipped lowers the priority of skipped tasks so repeated skips
// push a task toward, but never past, the bottom of the list.
func demoteSkipped(tasks []template.RelTask, skipped map[string]bool) {
	for i := range tasks {
		if !skipped[tasks[i].ID] {
			continue
		}
		tasks[i].SkipCount++
		if tasks[i].Priority == 0 {
			tasks[i].Priority = DefaultTaskPriority
		}
		if tasks[i].Priority > MinPriority {
			tasks[i].Priority--
		}
	}
}

func (e *Engine) submit(ctx context.Context, sc model.Scope, batch repository.Batch, templateID string) {
	if e.remote == nil || !e.conn.Online() {
		return
	}

	report := templaterepo.LearningReport{
		TemplateID:     templateID,
		EventID:        batch.EventID,
		EventType:      batch.EventType,
		EventPattern:   batch.EventPattern,
		Actions:        batch.Actions,
		CompletionRate: batch.CompletionRate,
		ReportedAt:     e.now(),
	}
	if err := e.remote.SubmitLearning(ctx, sc, report); err != nil {
		e.l.Warnf(ctx, "learning batch queued for sync, submit failed: %v", err)
		return
	}
	if err := e.actions.MarkSubmitted(ctx, sc.HouseholdID, batch.ID); err != nil {
		e.l.Warnf(ctx, "marking learning batch submitted: %v", err)
	}
}
