package prep

import (
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/timeline"
)

// Where a timeline came from.
const (
	SourceTemplate  = "template"
	SourceGenerated = "generated"
)

type ClassifyInput struct {
	Text string
}

// TimelineOutput is a concrete timeline for one event.
type TimelineOutput struct {
	EventID       string          `json:"event_id"`
	Tasks         []timeline.Task `json:"tasks"`
	TotalPrepTime int             `json:"total_prep_time"`
	EventPattern  string          `json:"event_pattern"`
	Confidence    int             `json:"confidence"`
	Source        string          `json:"source"`
	TemplateID    string          `json:"template_id,omitempty"`
}

// SaveTemplateInput carries a user-customized timeline to persist.
// Tasks may mix preparation and follow-up entries; they are split by
// task type when converted to template form.
type SaveTemplateInput struct {
	EventID string
	Tasks   []timeline.Task
}

type ClearTemplateInput struct {
	EventType    string
	EventPattern string
}

// RecordActionsInput is a batch of task outcomes for one event. The
// event type and pattern are derived from the event itself.
type RecordActionsInput struct {
	EventID string
	Actions []model.TaskAction
}

// Suggestion is one contextual preparation hint.
type Suggestion struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Category string `json:"category"`
}

// Coordination statuses carried by NextCoordination, in selection
// priority order.
const (
	CoordinationCurrent       = "current"
	CoordinationRecentlyEnded = "recently_ended"
	CoordinationUpcoming      = "upcoming"
	CoordinationNext          = "next"
)

// UpcomingEvent annotates an event with its preparation state.
type UpcomingEvent struct {
	model.EventRecord
	EventPattern      string `json:"event_pattern"`
	WithinPrepWindow  bool   `json:"within_prep_window"`
	NeedsCoordination bool   `json:"needs_coordination"`
	// CoordinationStatus is set only on NextCoordination.
	CoordinationStatus string `json:"coordination_status,omitempty"`
}

// UpcomingOutput lists upcoming events. NextCoordination is the event
// the household should be coordinating around right now: a running
// event first, then one that just ended (follow-up tasks), then the
// next one inside the preparation window, then the next one within
// eight hours.
type UpcomingOutput struct {
	Events           []UpcomingEvent `json:"events"`
	NextCoordination *UpcomingEvent  `json:"next_coordination,omitempty"`
}
