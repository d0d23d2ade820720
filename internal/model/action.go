package model

// ActionType is what the user did with a timeline task.
type ActionType string

const (
	ActionCompleted   ActionType = "completed"
	ActionUncompleted ActionType = "uncompleted"
	ActionSkipped     ActionType = "skipped"
)

// TaskAction is a single user signal consumed by the learning engine,
// then discarded. Offsets are minutes relative to the task's scheduled
// time (negative = earlier than scheduled).
type TaskAction struct {
	TaskID          string     `json:"task_id"`
	Action          ActionType `json:"action"`
	TimingOffsetMin int        `json:"timing_offset_min"`
	TaskType        string     `json:"task_type,omitempty"`
	ScheduledOffset int        `json:"scheduled_offset_min,omitempty"`
}
