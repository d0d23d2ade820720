package template

import (
	"sort"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/timeline"
)

// RelativeFromTimeline converts an absolute timeline into template form.
// Preparation tasks (everything up to and including event_start) become
// minutes-before offsets from the event start; follow-up tasks become
// hours-after offsets from the event end.
func RelativeFromTimeline(tasks []timeline.Task, event model.EventRecord) (prep, post []RelTask) {
	end := event.EffectiveEnd()
	for _, task := range tasks {
		rel := RelTask{
			ID:          task.ID,
			Activity:    task.Activity,
			Type:        string(task.Type),
			DurationMin: task.DurationMin,
			Note:        task.Note,
			Assignee:    task.Assignee,
			Priority:    task.Priority,
		}
		if task.Type == timeline.TaskFollowUp {
			rel.HoursAfter = task.Time.Sub(end).Hours()
			post = append(post, rel)
			continue
		}
		rel.MinutesBefore = int(event.StartTime.Sub(task.Time).Minutes())
		prep = append(prep, rel)
	}
	return prep, post
}

// Apply instantiates a template against a concrete event, producing
// absolute-time tasks sorted ascending. The template id is carried on
// each task so completions can be traced back for learning.
func Apply(t Template, event model.EventRecord) []timeline.Task {
	end := event.EffectiveEnd()
	tasks := make([]timeline.Task, 0, len(t.PreparationTimeline)+len(t.PostEventTimeline))

	for _, rel := range t.PreparationTimeline {
		tasks = append(tasks, absoluteTask(rel, t.ID,
			event.StartTime.Add(-time.Duration(rel.MinutesBefore)*time.Minute)))
	}
	for _, rel := range t.PostEventTimeline {
		tasks = append(tasks, absoluteTask(rel, t.ID,
			end.Add(time.Duration(rel.HoursAfter*float64(time.Hour)))))
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Time.Before(tasks[j].Time)
	})
	return tasks
}

func absoluteTask(rel RelTask, templateID string, at time.Time) timeline.Task {
	priority := rel.Priority
	if priority == 0 {
		priority = timeline.DefaultPriority
	}
	return timeline.Task{
		ID:          rel.ID,
		Activity:    rel.Activity,
		Time:        at,
		Type:        timeline.TaskType(rel.Type),
		DurationMin: rel.DurationMin,
		Note:        rel.Note,
		Assignee:    rel.Assignee,
		Priority:    priority,
		TemplateRef: templateID,
	}
}
