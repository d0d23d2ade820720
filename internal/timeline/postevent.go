package timeline

import (
	"sort"
	"time"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
)

// GeneratePostEvent builds the follow-up timeline counting forward from
// the event end (one hour after start when the record has no end time).
// Every event gets a notes task and an archive task; the matched pattern
// adds its own follow-ups in between.
func (s *service) GeneratePostEvent(event model.EventRecord, match *pattern.Match) []Task {
	if event.StartTime.IsZero() {
		return nil
	}
	if match == nil {
		match = s.classifier.Classify(event.SearchText())
	}

	end := event.EffectiveEnd()
	tasks := []Task{followUp("document_notes", "Document event notes", end, 30*time.Minute, 15)}

	if match != nil {
		tasks = append(tasks, patternFollowUps(match.PatternName, end)...)
	}

	tasks = append(tasks, followUp("archive", "Archive event materials", end, 72*time.Hour, 10))

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Time.Before(tasks[j].Time)
	})
	return tasks
}

func patternFollowUps(patternName string, end time.Time) []Task {
	switch patternName {
	case "sports":
		return []Task{
			followUp("gear_clean", "Clean and store gear", end, time.Hour, 20),
			followUp("share_photos", "Share event photos", end, 2*time.Hour, 10),
			followUp("confirm_next", "Confirm next game/practice", end, 3*time.Hour, 5),
		}
	case "medical":
		return []Task{
			followUp("follow_up_apt", "Schedule follow-up appointment", end, time.Hour, 10),
			followUp("pharmacy", "Fill prescriptions", end, 2*time.Hour, 20),
			followUp("insurance", "Submit insurance claims", end, 24*time.Hour, 15),
		}
	case "school":
		return []Task{
			followUp("homework", "Review homework assignments", end, 30*time.Minute, 20),
			followUp("materials", "Prepare tomorrow's materials", end, 4*time.Hour, 15),
		}
	case "social":
		return []Task{
			followUp("share_photos", "Share event photos", end, 2*time.Hour, 10),
			followUp("thank_you", "Send thank you messages", end, 24*time.Hour, 15),
		}
	case "workMeeting", "onlineMeeting":
		return []Task{
			followUp("action_items", "Complete action items", end, time.Hour, 30),
			followUp("expenses", "Submit expense reports", end, 48*time.Hour, 15),
		}
	default:
		return nil
	}
}

func followUp(id, activity string, end time.Time, after time.Duration, durationMin int) Task {
	return Task{
		ID:          id,
		Activity:    activity,
		Time:        end.Add(after),
		Type:        TaskFollowUp,
		DurationMin: durationMin,
		Priority:    DefaultPriority,
	}
}
