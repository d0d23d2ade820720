package gcal

import (
	"context"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/pkg/gcalendar"
)

const maxResults = 100

// Source adapts a Google Calendar into event records. All-day entries
// are skipped: there is no start time to prepare against.
type Source struct {
	client     *gcalendar.Client
	calendarID string
}

func New(client *gcalendar.Client, calendarID string) *Source {
	return &Source{client: client, calendarID: calendarID}
}

func (s *Source) Name() string { return "gcal" }

func (s *Source) List(ctx context.Context, from, to time.Time) ([]model.EventRecord, error) {
	items, err := s.client.ListEvents(ctx, gcalendar.ListEventsRequest{
		CalendarID: s.calendarID,
		TimeMin:    from,
		TimeMax:    to,
		MaxResults: maxResults,
	})
	if err != nil {
		return nil, err
	}

	records := make([]model.EventRecord, 0, len(items))
	for _, item := range items {
		if item.AllDay || item.StartTime.IsZero() {
			continue
		}
		records = append(records, model.EventRecord{
			ID:          item.ID,
			Title:       item.Summary,
			Description: item.Description,
			Location:    item.Location,
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			Attendees:   item.Attendees,
		})
	}
	return records, nil
}
