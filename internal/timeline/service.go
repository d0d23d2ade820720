package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
)

// Service generates preparation and follow-up timelines for events.
type Service interface {
	// Generate builds the preparation timeline counting backward from the
	// event start. Returns nil when the event has no start time or has
	// already started; classification is performed internally when match
	// is nil.
	Generate(event model.EventRecord, match *pattern.Match) *Output

	// GeneratePostEvent builds the follow-up timeline counting forward
	// from the event end.
	GeneratePostEvent(event model.EventRecord, match *pattern.Match) []Task
}

type service struct {
	classifier *pattern.Classifier
	household  HouseholdConfig
	now        func() time.Time
}

// New creates the scheduler. A zero HouseholdConfig selects defaults.
func New(classifier *pattern.Classifier, household HouseholdConfig) Service {
	if household.GeneralPrepMinutes == 0 && household.CommuteBufferMinutes == 0 {
		household = DefaultHousehold()
	}
	return &service{
		classifier: classifier,
		household:  household,
		now:        time.Now,
	}
}

func (s *service) Generate(event model.EventRecord, match *pattern.Match) *Output {
	// Scheduling preparation for something already started is pointless;
	// a nil result here is policy, not an error.
	if event.StartTime.IsZero() || !event.StartTime.After(s.now()) {
		return nil
	}

	if match == nil {
		match = s.classifier.Classify(event.SearchText())
	}

	prepMinutes := s.household.GeneralPrepMinutes
	isVirtual := false
	if match != nil {
		if match.PreparationTime > 0 {
			prepMinutes = match.PreparationTime
		}
		isVirtual = match.IsVirtual
	}

	start := event.StartTime
	tasks := make([]Task, 0, 8)

	if isVirtual {
		tasks = append(tasks, s.virtualTasks(start, match)...)
	} else {
		tasks = append(tasks, s.physicalTasks(event, start, prepMinutes, match)...)
	}

	if match != nil && !match.Meals.FlexibleTiming {
		if meal := s.mealTask(start, match.Meals); meal != nil {
			tasks = append(tasks, *meal)
		}
	}

	tasks = append(tasks, Task{
		ID:       string(TaskEventStart),
		Activity: fmt.Sprintf("%s begins", event.Title),
		Time:     start,
		Type:     TaskEventStart,
		Priority: DefaultPriority,
	})

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Time.Before(tasks[j].Time)
	})

	out := &Output{
		Tasks:         tasks,
		TotalPrepTime: prepMinutes + s.household.DogCareMinutes + s.household.CommuteBufferMinutes,
		EventPattern:  "general",
	}
	if match != nil {
		out.EventPattern = match.PatternName
		out.Confidence = match.Confidence
	}
	return out
}

// virtualTasks counts backward from the start time only: no commute, no
// pet care.
func (s *service) virtualTasks(start time.Time, match *pattern.Match) []Task {
	tasks := []Task{{
		ID:          string(TaskTechCheck),
		Activity:    "Join meeting early, test audio/video",
		Time:        start.Add(-5 * time.Minute),
		Type:        TaskTechCheck,
		DurationMin: 5,
		Priority:    DefaultPriority,
	}}

	if match != nil && match.Virtual.BackgroundSetupMinutes > 0 {
		tasks = append(tasks, Task{
			ID:          string(TaskWorkspaceSetup),
			Activity:    "Tidy background, close unnecessary apps, silence phone",
			Time:        start.Add(-8 * time.Minute),
			Type:        TaskWorkspaceSetup,
			DurationMin: match.Virtual.BackgroundSetupMinutes,
			Priority:    DefaultPriority,
		})
	}

	if match != nil && match.Virtual.DocumentReviewMinutes > 0 {
		tasks = append(tasks, Task{
			ID:          string(TaskDocumentReview),
			Activity:    "Review meeting agenda, notes, and materials",
			Time:        start.Add(-15 * time.Minute),
			Type:        TaskDocumentReview,
			DurationMin: match.Virtual.DocumentReviewMinutes,
			Priority:    DefaultPriority,
		})
	}

	tasks = append(tasks, Task{
		ID:          string(TaskRefresh),
		Activity:    "Quick break - water, restroom, stretch",
		Time:        start.Add(-20 * time.Minute),
		Type:        TaskRefresh,
		DurationMin: 5,
		Priority:    DefaultPriority,
	})

	return tasks
}

func (s *service) physicalTasks(event model.EventRecord, start time.Time, prepMinutes int, match *pattern.Match) []Task {
	departure := start.Add(-time.Duration(s.household.CommuteBufferMinutes) * time.Minute)
	tasks := make([]Task, 0, 3)

	if s.household.HasDog {
		tasks = append(tasks, Task{
			ID:          string(TaskDogCare),
			Activity:    "Dog care routine (let out, feed if needed)",
			Time:        departure.Add(-time.Duration(s.household.DogCareMinutes) * time.Minute),
			Type:        TaskDogCare,
			DurationMin: s.household.DogCareMinutes,
			Priority:    DefaultPriority,
		})
	}

	tasks = append(tasks, Task{
		ID:          string(TaskPreparation),
		Activity:    preparationActivity(match),
		Time:        departure.Add(-time.Duration(prepMinutes) * time.Minute),
		Type:        TaskPreparation,
		DurationMin: prepMinutes,
		Priority:    DefaultPriority,
	})

	tasks = append(tasks, Task{
		ID:       string(TaskDeparture),
		Activity: fmt.Sprintf("Leave for %s", event.Title),
		Time:     departure,
		Type:     TaskDeparture,
		Priority: DefaultPriority,
	})

	return tasks
}

// mealTask inserts at most one meal task. Dinner only makes sense when
// the event starts during the usual dinner window (17:00-20:59).
func (s *service) mealTask(start time.Time, meals pattern.MealHints) *Task {
	hour := start.Hour()

	if meals.DinnerBefore && hour >= 17 && hour <= 20 {
		minutesBefore := meals.DinnerMinutesBefore
		if minutesBefore <= 0 {
			minutesBefore = 90
		}
		return &Task{
			ID:          string(TaskMeal),
			Activity:    "Dinner time (eat before event)",
			Time:        start.Add(-time.Duration(minutesBefore) * time.Minute),
			Type:        TaskMeal,
			DurationMin: s.household.MealPrepMinutes,
			Note:        "Early dinner recommended",
			Priority:    DefaultPriority,
		}
	}

	if meals.LightMeal {
		return &Task{
			ID:          string(TaskMeal),
			Activity:    "Light snack/meal (avoid heavy food)",
			Time:        start.Add(-60 * time.Minute),
			Type:        TaskMeal,
			DurationMin: 15,
			Note:        "Light meal recommended",
			Priority:    DefaultPriority,
		}
	}

	return nil
}

func preparationActivity(match *pattern.Match) string {
	if match == nil {
		return "Get ready and gather items"
	}

	parts := make([]string, 0, 2)
	if match.NeedsUniform {
		parts = append(parts, "Put on uniform/appropriate clothing")
	} else {
		parts = append(parts, "Get dressed appropriately")
	}

	if len(match.PackingList) > 0 {
		items := match.PackingList
		suffix := ""
		if len(items) > 3 {
			items = items[:3]
			suffix = "..."
		}
		parts = append(parts, fmt.Sprintf("Pack items: %s%s", strings.Join(items, ", "), suffix))
	}

	return strings.Join(parts, ", ")
}
