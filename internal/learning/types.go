package learning

import (
	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
)

// Confidence bounds for learned templates. Learning never drives a
// template below the floor, so one bad day cannot erase a pattern.
const (
	ConfidenceFloor   = 50
	ConfidenceCeiling = 100

	// MinPriority is the lowest a repeatedly-skipped task can sink to.
	MinPriority = 1

	// DefaultTaskPriority matches the priority generated tasks start at.
	DefaultTaskPriority = 5
)

// RecordInput is one batch of task outcomes for a finished timeline.
type RecordInput struct {
	EventID      string             `json:"event_id"`
	EventType    string             `json:"event_type"`
	EventPattern string             `json:"event_pattern"`
	Actions      []model.TaskAction `json:"actions"`
}

// Result reports what a batch of actions did to the learned state.
type Result struct {
	CompletionRate float64            `json:"completion_rate"`
	Template       *template.Template `json:"template,omitempty"`
}
