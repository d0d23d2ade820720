package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"event-prep-engine/internal/event/repository/memory"
	"event-prep-engine/internal/learning"
	learninglocal "event-prep-engine/internal/learning/repository"
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/prep"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/template/cache"
	"event-prep-engine/internal/timeline"
	"event-prep-engine/pkg/log"
)

type memStore struct {
	entries map[string][]template.CacheEntry
}

func (m *memStore) LoadEntries(_ context.Context, h string) ([]template.CacheEntry, error) {
	return append([]template.CacheEntry(nil), m.entries[h]...), nil
}

func (m *memStore) SaveEntries(_ context.Context, h string, entries []template.CacheEntry) error {
	m.entries[h] = append([]template.CacheEntry(nil), entries...)
	return nil
}

type memLog struct {
	batches []learninglocal.Batch
}

func (m *memLog) Append(_ context.Context, _ string, b learninglocal.Batch) error {
	m.batches = append(m.batches, b)
	return nil
}

func (m *memLog) Pending(context.Context, string) ([]learninglocal.Batch, error) {
	return m.batches, nil
}

func (m *memLog) MarkSubmitted(context.Context, string, string) error { return nil }

type connStub bool

func (c connStub) Online() bool { return bool(c) }

type spyBroadcaster struct {
	timelineEvents   []string
	completionEvents []string
}

func (s *spyBroadcaster) TimelineUpdated(_ context.Context, eventID string, _ any) {
	s.timelineEvents = append(s.timelineEvents, eventID)
}

func (s *spyBroadcaster) TaskCompletionUpdated(_ context.Context, eventID string, _ any) {
	s.completionEvents = append(s.completionEvents, eventID)
}

var testScope = model.Scope{HouseholdID: "hh1"}

type fixture struct {
	uc     *implUseCase
	events *memory.Store
	cache  *cache.Cache
	spy    *spyBroadcaster
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	l := log.NewNop()
	classifier := pattern.NewClassifier(nil)
	scheduler := timeline.New(classifier, timeline.DefaultHousehold())

	c, err := cache.New(l, &memStore{entries: map[string][]template.CacheEntry{}}, nil, connStub(false), 0)
	if err != nil {
		t.Fatal(err)
	}
	engine := learning.New(l, c, &memLog{}, nil, connStub(false))
	events := memory.New()
	spy := &spyBroadcaster{}

	uc := New(l, classifier, scheduler, c, engine, events, spy, 0)
	return &fixture{uc: uc, events: events, cache: c, spy: spy}
}

func futureAt(hour int) time.Time {
	n := time.Now().AddDate(0, 0, 1)
	return time.Date(n.Year(), n.Month(), n.Day(), hour, 0, 0, 0, time.Local)
}

func seedEvent(t *testing.T, f *fixture, id, title string, start time.Time) {
	t.Helper()
	err := f.events.Upsert(context.Background(), model.EventRecord{
		ID:        id,
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("Generated When No Template", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "e1", "Soccer Practice", futureAt(18))

		out, err := f.uc.Timeline(ctx, testScope, "e1")
		if err != nil {
			t.Fatal(err)
		}
		if out.Source != prep.SourceGenerated {
			t.Errorf("expected generated timeline, got %s", out.Source)
		}
		if out.EventPattern != "sports" || out.Confidence != 100 {
			t.Errorf("unexpected classification: %+v", out)
		}

		ev, err := f.events.Get(ctx, "e1")
		if err != nil {
			t.Fatal(err)
		}
		if !ev.AIEnriched {
			t.Error("event must be marked enriched")
		}
		if len(f.spy.timelineEvents) != 1 || f.spy.timelineEvents[0] != "e1" {
			t.Errorf("expected one timeline broadcast, got %v", f.spy.timelineEvents)
		}
	})

	t.Run("Template Served When Confident", func(t *testing.T) {
		f := newFixture(t)
		start := futureAt(18)
		seedEvent(t, f, "e1", "Soccer Practice", start)

		_, err := f.cache.Save(ctx, testScope, template.SaveInput{
			EventType:    "soccer practice",
			EventPattern: "sports",
			PreparationTimeline: []template.RelTask{
				{ID: "preparation", Activity: "Pack gear", MinutesBefore: 45, Type: "preparation", DurationMin: 30},
				{ID: "event_start", Activity: "begins", Type: "event_start"},
			},
		})
		if err != nil {
			t.Fatal(err)
		}

		out, err := f.uc.Timeline(ctx, testScope, "e1")
		if err != nil {
			t.Fatal(err)
		}
		if out.Source != prep.SourceTemplate {
			t.Fatalf("expected template timeline, got %s", out.Source)
		}
		if out.TemplateID == "" {
			t.Error("template timeline must carry the template id")
		}
		if !out.Tasks[0].Time.Equal(start.Add(-45 * time.Minute)) {
			t.Errorf("template task not anchored to event start: %v", out.Tasks[0].Time)
		}
	})

	t.Run("Unknown Event", func(t *testing.T) {
		f := newFixture(t)
		if _, err := f.uc.Timeline(ctx, testScope, "nope"); !errors.Is(err, prep.ErrEventNotFound) {
			t.Errorf("expected ErrEventNotFound, got %v", err)
		}
	})

	t.Run("Past Event Not Preparable", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "e1", "Soccer Practice", time.Now().Add(-2*time.Hour))

		if _, err := f.uc.Timeline(ctx, testScope, "e1"); !errors.Is(err, prep.ErrEventNotPreparable) {
			t.Errorf("expected ErrEventNotPreparable, got %v", err)
		}
	})
}

func TestPostEvent(t *testing.T) {
	f := newFixture(t)
	seedEvent(t, f, "e1", "Soccer Practice", futureAt(18))

	out, err := f.uc.PostEvent(context.Background(), testScope, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if out.EventPattern != "sports" || len(out.Tasks) == 0 {
		t.Errorf("unexpected post-event output: %+v", out)
	}
	for _, task := range out.Tasks {
		if task.Type != timeline.TaskFollowUp {
			t.Errorf("post-event timeline must only hold follow-ups, got %s", task.Type)
		}
	}
}

func TestSaveTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	start := futureAt(18)
	seedEvent(t, f, "e1", "Soccer Practice", start)

	saved, err := f.uc.SaveTemplate(ctx, testScope, prep.SaveTemplateInput{
		EventID: "e1",
		Tasks: []timeline.Task{
			{ID: "preparation", Activity: "Custom prep", Time: start.Add(-50 * time.Minute), Type: timeline.TaskPreparation, DurationMin: 40},
			{ID: "event_start", Activity: "begins", Time: start, Type: timeline.TaskEventStart},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(saved.ID, template.TempIDPrefix) {
		t.Errorf("offline save must use a temporary id, got %s", saved.ID)
	}
	if saved.EventType != "soccer practice" || saved.EventPattern != "sports" {
		t.Errorf("unexpected template key: %s-%s", saved.EventType, saved.EventPattern)
	}
	if saved.PreparationTimeline[0].MinutesBefore != 50 {
		t.Errorf("offsets not derived from the event start: %+v", saved.PreparationTimeline[0])
	}

	// the next timeline request serves the saved customization
	out, err := f.uc.Timeline(ctx, testScope, "e1")
	if err != nil {
		t.Fatal(err)
	}
	if out.Source != prep.SourceTemplate || out.Tasks[0].Activity != "Custom prep" {
		t.Errorf("customization not served back: %+v", out)
	}
}

func TestClearTemplate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if err := f.uc.ClearTemplate(ctx, testScope, prep.ClearTemplateInput{EventType: "x", EventPattern: "y"}); err != nil {
		t.Errorf("clearing an absent template must succeed: %v", err)
	}
	if err := f.uc.ClearTemplate(ctx, testScope, prep.ClearTemplateInput{}); !errors.Is(err, prep.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRecordActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	start := futureAt(18)
	seedEvent(t, f, "e1", "Soccer Practice", start)

	if _, err := f.uc.SaveTemplate(ctx, testScope, prep.SaveTemplateInput{
		EventID: "e1",
		Tasks: []timeline.Task{
			{ID: "preparation", Activity: "Pack gear", Time: start.Add(-50 * time.Minute), Type: timeline.TaskPreparation},
			{ID: "event_start", Activity: "begins", Time: start, Type: timeline.TaskEventStart},
		},
	}); err != nil {
		t.Fatal(err)
	}

	res, err := f.uc.RecordActions(ctx, testScope, prep.RecordActionsInput{
		EventID: "e1",
		Actions: []model.TaskAction{
			{TaskID: "preparation", Action: model.ActionCompleted},
			{TaskID: "event_start", Action: model.ActionSkipped},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.CompletionRate != 0.5 {
		t.Errorf("expected rate 0.5, got %v", res.CompletionRate)
	}
	if res.Template == nil || res.Template.Confidence != 90 {
		t.Errorf("expected reinforced template at 90, got %+v", res.Template)
	}
	if len(f.spy.completionEvents) != 1 {
		t.Errorf("expected completion broadcast, got %v", f.spy.completionEvents)
	}
}

func TestSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("Pattern Derived", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "e1", "Soccer Practice", futureAt(18))

		got, err := f.uc.Suggestions(ctx, testScope, "e1")
		if err != nil {
			t.Fatal(err)
		}
		ids := map[string]bool{}
		for _, s := range got {
			ids[s.ID] = true
		}
		for _, want := range []string{"weather", "uniform", "packing", "transport", "snacks"} {
			if !ids[want] {
				t.Errorf("expected suggestion %q, got %v", want, ids)
			}
		}
	})

	t.Run("Fallback For Unmatched", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "e2", "Errand run", futureAt(11))

		got, err := f.uc.Suggestions(ctx, testScope, "e2")
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 1 || got[0].ID != "general_prep" {
			t.Errorf("expected general fallback, got %+v", got)
		}
	})
}

func TestUpcoming(t *testing.T) {
	ctx := context.Background()

	t.Run("Annotates Prep Window And Transport", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "near", "Soccer Practice", time.Now().Add(2*time.Hour))
		seedEvent(t, f, "far", "Zoom standup", time.Now().Add(48*time.Hour))

		out, err := f.uc.Upcoming(ctx, testScope)
		if err != nil {
			t.Fatal(err)
		}
		if len(out.Events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(out.Events))
		}
		if out.Events[0].ID != "near" || !out.Events[0].WithinPrepWindow || !out.Events[0].NeedsCoordination {
			t.Errorf("unexpected annotation: %+v", out.Events[0])
		}
		if out.Events[1].WithinPrepWindow || out.Events[1].NeedsCoordination {
			t.Errorf("virtual event needs no coordination: %+v", out.Events[1])
		}
		if out.NextCoordination == nil || out.NextCoordination.ID != "near" {
			t.Fatalf("expected near as next coordination, got %+v", out.NextCoordination)
		}
		if out.NextCoordination.CoordinationStatus != prep.CoordinationUpcoming {
			t.Errorf("expected upcoming status, got %q", out.NextCoordination.CoordinationStatus)
		}
	})

	t.Run("Running Event Wins", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "live", "Soccer Practice", time.Now().Add(-10*time.Minute))
		seedEvent(t, f, "near", "Doctor appointment", time.Now().Add(2*time.Hour))

		out, err := f.uc.Upcoming(ctx, testScope)
		if err != nil {
			t.Fatal(err)
		}
		if out.NextCoordination == nil || out.NextCoordination.ID != "live" {
			t.Fatalf("expected live as next coordination, got %+v", out.NextCoordination)
		}
		if out.NextCoordination.CoordinationStatus != prep.CoordinationCurrent {
			t.Errorf("expected current status, got %q", out.NextCoordination.CoordinationStatus)
		}
		// The running event is not an upcoming listing entry.
		if len(out.Events) != 1 || out.Events[0].ID != "near" {
			t.Errorf("expected only near in listing, got %+v", out.Events)
		}
	})

	t.Run("Recently Ended Beats Upcoming", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "done", "Soccer Practice", time.Now().Add(-90*time.Minute))
		seedEvent(t, f, "near", "Doctor appointment", time.Now().Add(2*time.Hour))

		out, err := f.uc.Upcoming(ctx, testScope)
		if err != nil {
			t.Fatal(err)
		}
		if out.NextCoordination == nil || out.NextCoordination.ID != "done" {
			t.Fatalf("expected done as next coordination, got %+v", out.NextCoordination)
		}
		if out.NextCoordination.CoordinationStatus != prep.CoordinationRecentlyEnded {
			t.Errorf("expected recently_ended status, got %q", out.NextCoordination.CoordinationStatus)
		}
	})

	t.Run("Next Within Eight Hours", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "later", "Soccer Practice", time.Now().Add(6*time.Hour))

		out, err := f.uc.Upcoming(ctx, testScope)
		if err != nil {
			t.Fatal(err)
		}
		if out.NextCoordination == nil || out.NextCoordination.ID != "later" {
			t.Fatalf("expected later as next coordination, got %+v", out.NextCoordination)
		}
		if out.NextCoordination.CoordinationStatus != prep.CoordinationNext {
			t.Errorf("expected next status, got %q", out.NextCoordination.CoordinationStatus)
		}
	})

	t.Run("Nothing Beyond Horizon", func(t *testing.T) {
		f := newFixture(t)
		seedEvent(t, f, "distant", "Soccer Practice", time.Now().Add(48*time.Hour))

		out, err := f.uc.Upcoming(ctx, testScope)
		if err != nil {
			t.Fatal(err)
		}
		if out.NextCoordination != nil {
			t.Errorf("expected no coordination focus, got %+v", out.NextCoordination)
		}
		if len(out.Events) != 1 {
			t.Errorf("distant event still listed, got %+v", out.Events)
		}
	})
}
