package template_test

import (
	"testing"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/template"
	"event-prep-engine/internal/timeline"
)

func TestRelativeRoundTrip(t *testing.T) {
	start := time.Date(2026, 9, 12, 18, 0, 0, 0, time.Local)
	event := model.EventRecord{
		ID:        "e1",
		Title:     "Soccer Practice",
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
	}

	original := []timeline.Task{
		{ID: "preparation", Activity: "Pack gear", Time: start.Add(-75 * time.Minute), Type: timeline.TaskPreparation, DurationMin: 60, Priority: 5},
		{ID: "departure", Activity: "Leave for Soccer Practice", Time: start.Add(-15 * time.Minute), Type: timeline.TaskDeparture, Priority: 5},
		{ID: "event_start", Activity: "Soccer Practice begins", Time: start, Type: timeline.TaskEventStart, Priority: 5},
		{ID: "gear_clean", Activity: "Clean and store gear", Time: event.EndTime.Add(time.Hour), Type: timeline.TaskFollowUp, DurationMin: 20, Priority: 5},
		{ID: "archive", Activity: "Archive event materials", Time: event.EndTime.Add(72 * time.Hour), Type: timeline.TaskFollowUp, DurationMin: 10, Priority: 5},
	}

	prep, post := template.RelativeFromTimeline(original, event)
	if len(prep) != 3 || len(post) != 2 {
		t.Fatalf("expected 3 prep + 2 post tasks, got %d + %d", len(prep), len(post))
	}
	if prep[0].MinutesBefore != 75 {
		t.Errorf("expected preparation 75 minutes before, got %d", prep[0].MinutesBefore)
	}
	if post[1].HoursAfter != 72 {
		t.Errorf("expected archive 72 hours after, got %v", post[1].HoursAfter)
	}

	tpl := template.Template{
		ID:                  "tpl-1",
		EventType:           "soccer practice",
		EventPattern:        "sports",
		PreparationTimeline: prep,
		PostEventTimeline:   post,
	}

	applied := template.Apply(tpl, event)
	if len(applied) != len(original) {
		t.Fatalf("expected %d tasks, got %d", len(original), len(applied))
	}
	for i, task := range applied {
		if !task.Time.Equal(original[i].Time) {
			t.Errorf("task %s: time drifted, want %v got %v", task.ID, original[i].Time, task.Time)
		}
		if task.ID != original[i].ID || task.Type != original[i].Type || task.DurationMin != original[i].DurationMin {
			t.Errorf("task %d changed shape: %+v vs %+v", i, task, original[i])
		}
		if task.TemplateRef != "tpl-1" {
			t.Errorf("task %s missing template ref", task.ID)
		}
	}
}

func TestApplyToDifferentEvent(t *testing.T) {
	tpl := template.Template{
		ID:           "tpl-2",
		EventType:    "soccer practice",
		EventPattern: "sports",
		PreparationTimeline: []template.RelTask{
			{ID: "preparation", Activity: "Pack gear", MinutesBefore: 75, Type: "preparation"},
			{ID: "event_start", Activity: "begins", Type: "event_start"},
		},
		PostEventTimeline: []template.RelTask{
			{ID: "gear_clean", Activity: "Clean gear", HoursAfter: 1, Type: "follow_up"},
		},
	}

	start := time.Date(2026, 10, 3, 10, 30, 0, 0, time.Local)
	event := model.EventRecord{ID: "e2", Title: "Soccer practice", StartTime: start}

	tasks := template.Apply(tpl, event)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}
	if !tasks[0].Time.Equal(start.Add(-75 * time.Minute)) {
		t.Errorf("preparation not re-anchored: %v", tasks[0].Time)
	}
	// no end time recorded, follow-ups anchor one hour after start
	if !tasks[2].Time.Equal(start.Add(2 * time.Hour)) {
		t.Errorf("follow-up not anchored to implied end: %v", tasks[2].Time)
	}
	if tasks[1].Priority != timeline.DefaultPriority {
		t.Errorf("zero priority should default, got %d", tasks[1].Priority)
	}
}

func TestKeyAndConfirmed(t *testing.T) {
	if template.Key("soccer practice", "sports") != "soccer practice-sports" {
		t.Error("unexpected composite key")
	}
	if (template.Template{ID: "offline-abc"}).Confirmed() {
		t.Error("offline id must not read as confirmed")
	}
	if !(template.Template{ID: "srv-1"}).Confirmed() {
		t.Error("server id must read as confirmed")
	}
}
