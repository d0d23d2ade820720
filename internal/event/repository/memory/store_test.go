package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"event-prep-engine/internal/event"
	"event-prep-engine/internal/model"
)

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Missing", func(t *testing.T) {
		s := New()
		if _, err := s.Get(ctx, "nope"); !errors.Is(err, event.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Upcoming Sorted And Windowed", func(t *testing.T) {
		s := New()
		now := time.Now()
		err := s.Upsert(ctx,
			model.EventRecord{ID: "far", Title: "Far", StartTime: now.Add(80 * time.Hour)},
			model.EventRecord{ID: "soon", Title: "Soon", StartTime: now.Add(time.Hour)},
			model.EventRecord{ID: "later", Title: "Later", StartTime: now.Add(5 * time.Hour)},
			model.EventRecord{ID: "past", Title: "Past", StartTime: now.Add(-time.Hour)},
		)
		if err != nil {
			t.Fatal(err)
		}

		got, err := s.ListUpcoming(ctx, 24*time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 2 || got[0].ID != "soon" || got[1].ID != "later" {
			t.Errorf("unexpected upcoming list: %+v", got)
		}

		all, err := s.ListUpcoming(ctx, 0)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 future events without a window, got %d", len(all))
		}
	})

	t.Run("Active Keeps Running And Recently Ended", func(t *testing.T) {
		s := New()
		now := time.Now()
		err := s.Upsert(ctx,
			model.EventRecord{ID: "running", Title: "Running", StartTime: now.Add(-10 * time.Minute), EndTime: now.Add(50 * time.Minute)},
			model.EventRecord{ID: "ended", Title: "Ended", StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-30 * time.Minute)},
			model.EventRecord{ID: "old", Title: "Old", StartTime: now.Add(-6 * time.Hour), EndTime: now.Add(-5 * time.Hour)},
			model.EventRecord{ID: "soon", Title: "Soon", StartTime: now.Add(time.Hour)},
		)
		if err != nil {
			t.Fatal(err)
		}

		got, err := s.ListActive(ctx, time.Hour)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != 3 || got[0].ID != "ended" || got[1].ID != "running" || got[2].ID != "soon" {
			t.Errorf("unexpected active list: %+v", got)
		}
	})

	t.Run("Upsert Preserves Enriched Flag", func(t *testing.T) {
		s := New()
		start := time.Now().Add(time.Hour)
		if err := s.Upsert(ctx, model.EventRecord{ID: "e1", Title: "Soccer", StartTime: start}); err != nil {
			t.Fatal(err)
		}
		if err := s.MarkEnriched(ctx, "e1"); err != nil {
			t.Fatal(err)
		}

		// refresh delivers the same event again, without the flag
		if err := s.Upsert(ctx, model.EventRecord{ID: "e1", Title: "Soccer Practice", StartTime: start}); err != nil {
			t.Fatal(err)
		}

		got, err := s.Get(ctx, "e1")
		if err != nil {
			t.Fatal(err)
		}
		if !got.AIEnriched {
			t.Error("refresh must not reset the enriched flag")
		}
		if got.Title != "Soccer Practice" {
			t.Error("refresh must update event fields")
		}
	})

	t.Run("Mark Enriched Missing", func(t *testing.T) {
		s := New()
		if err := s.MarkEnriched(ctx, "nope"); !errors.Is(err, event.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
