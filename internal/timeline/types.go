package timeline

import "time"

// TaskType tags what a timeline task is for.
type TaskType string

const (
	TaskMeal           TaskType = "meal"
	TaskDogCare        TaskType = "dog_care"
	TaskPreparation    TaskType = "preparation"
	TaskDeparture      TaskType = "departure"
	TaskEventStart     TaskType = "event_start"
	TaskTechCheck      TaskType = "tech_check"
	TaskWorkspaceSetup TaskType = "workspace_setup"
	TaskDocumentReview TaskType = "document_review"
	TaskRefresh        TaskType = "refresh"
	TaskFollowUp       TaskType = "follow_up"
)

// DefaultPriority is the priority assigned to generated tasks (1-10 scale).
const DefaultPriority = 5

// Task is one entry of a concrete, absolute-time timeline.
type Task struct {
	ID          string    `json:"id"`
	Activity    string    `json:"activity"`
	Time        time.Time `json:"time"`
	Type        TaskType  `json:"type"`
	DurationMin int       `json:"duration_min"`
	Note        string    `json:"note,omitempty"`
	Assignee    string    `json:"assignee,omitempty"`
	Priority    int       `json:"priority,omitempty"`
	TemplateRef string    `json:"template_ref,omitempty"`
}

// Output is a generated timeline: tasks sorted ascending by time, with
// exactly one event_start task pinned to the event's start time.
type Output struct {
	Tasks         []Task `json:"tasks"`
	TotalPrepTime int    `json:"total_prep_time"` // preparation + pet care + commute buffer, minutes
	EventPattern  string `json:"event_pattern"`
	Confidence    int    `json:"confidence"`
}

// HouseholdConfig holds the household-specific scheduling constants.
type HouseholdConfig struct {
	HasDog               bool
	DogCareMinutes       int
	MealPrepMinutes      int
	GeneralPrepMinutes   int
	CommuteBufferMinutes int
	Children             []string
}

// DefaultHousehold returns the stock household constants.
func DefaultHousehold() HouseholdConfig {
	return HouseholdConfig{
		HasDog:               true,
		DogCareMinutes:       15,
		MealPrepMinutes:      30,
		GeneralPrepMinutes:   20,
		CommuteBufferMinutes: 15,
	}
}
