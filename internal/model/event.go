package model

import "time"

// EventRecord is a calendar event as read from the external event store.
// The engine only reads it, except for the AIEnriched flag which marks
// that a preparation timeline has been generated for it.
type EventRecord struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time,omitempty"`
	Attendees   []string  `json:"attendees,omitempty"`
	AIEnriched  bool      `json:"ai_enriched"`
}

// EffectiveEnd returns the event end time, assuming one hour when the
// record has no explicit end.
func (e EventRecord) EffectiveEnd() time.Time {
	if !e.EndTime.IsZero() {
		return e.EndTime
	}
	return e.StartTime.Add(time.Hour)
}

// SearchText is the lower-cased text the classifier scans.
func (e EventRecord) SearchText() string {
	return e.Title + " " + e.Description
}
