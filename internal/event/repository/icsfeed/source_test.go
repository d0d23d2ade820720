package icsfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"event-prep-engine/pkg/log"
)

const feedBody = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//test//EN
BEGIN:VEVENT
UID:single-1
SUMMARY:Doctor appointment
LOCATION:Clinic
DTSTART:20260910T140000Z
DTEND:20260910T143000Z
END:VEVENT
BEGIN:VEVENT
UID:weekly-1
SUMMARY:Soccer Practice
DTSTART:20260901T180000Z
DTEND:20260901T193000Z
RRULE:FREQ=WEEKLY;BYDAY=TU
END:VEVENT
BEGIN:VEVENT
UID:allday-1
SUMMARY:School Holiday
DTSTART;VALUE=DATE:20260914
END:VEVENT
END:VCALENDAR
`

func serveFeed(t *testing.T, body string) *Source {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.ReplaceAll(body, "\n", "\r\n")))
	}))
	t.Cleanup(srv.Close)
	return New(log.NewNop(), srv.URL, time.Second)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)

	t.Run("Expands Recurrence Skips AllDay", func(t *testing.T) {
		src := serveFeed(t, feedBody)

		records, err := src.List(ctx, from, to)
		if err != nil {
			t.Fatal(err)
		}

		var single, weekly int
		for _, rec := range records {
			switch {
			case rec.ID == "single-1":
				single++
				if rec.Title != "Doctor appointment" || rec.Location != "Clinic" {
					t.Errorf("unexpected record %+v", rec)
				}
				if rec.EndTime.Sub(rec.StartTime) != 30*time.Minute {
					t.Errorf("duration lost: %+v", rec)
				}
			case strings.HasPrefix(rec.ID, "weekly-1-"):
				weekly++
				if rec.StartTime.Weekday() != time.Tuesday {
					t.Errorf("weekly occurrence on %v", rec.StartTime.Weekday())
				}
				if rec.EndTime.Sub(rec.StartTime) != 90*time.Minute {
					t.Errorf("recurring duration lost: %+v", rec)
				}
			case strings.HasPrefix(rec.ID, "allday-1"):
				t.Error("all-day events must be skipped")
			}
		}
		if single != 1 {
			t.Errorf("expected one single event, got %d", single)
		}
		// Tuesdays Sep 8 and Sep 15 fall inside the window
		if weekly != 2 {
			t.Errorf("expected 2 weekly occurrences, got %d", weekly)
		}
	})

	t.Run("Window Excludes Outside Events", func(t *testing.T) {
		src := serveFeed(t, feedBody)

		records, err := src.List(ctx, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC))
		if err != nil {
			t.Fatal(err)
		}
		for _, rec := range records {
			if rec.ID == "single-1" {
				t.Error("event outside the window must be excluded")
			}
		}
	})

	t.Run("Feed Error Surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		src := New(log.NewNop(), srv.URL, time.Second)
		if _, err := src.List(ctx, from, to); err == nil {
			t.Error("expected feed error")
		}
	})
}
