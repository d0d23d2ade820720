package usecase

import (
	"context"
	"fmt"
	"strings"

	"event-prep-engine/internal/model"
	"event-prep-engine/internal/pattern"
	"event-prep-engine/internal/prep"
)

// Suggestions derives preparation hints from the matched pattern's
// attributes rather than a per-pattern script, so custom pattern tables
// get sensible hints for free.
func (uc *implUseCase) Suggestions(ctx context.Context, _ model.Scope, eventID string) ([]prep.Suggestion, error) {
	ev, err := uc.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	match := uc.classifier.Classify(ev.SearchText())
	if match == nil {
		return []prep.Suggestion{
			{ID: "general_prep", Text: "Gather what you need and plan to leave early", Category: "preparation"},
		}, nil
	}

	var out []prep.Suggestion
	add := func(id, text, category string) {
		out = append(out, prep.Suggestion{ID: id, Text: text, Category: category})
	}

	if match.WeatherDependent {
		add("weather", "Check the weather forecast before heading out", "weather")
	}
	if match.NeedsUniform {
		add("uniform", "Lay out the uniform the night before", "clothing")
	}
	if len(match.PackingList) > 0 {
		add("packing", fmt.Sprintf("Pack: %s", strings.Join(match.PackingList, ", ")), "packing")
	}
	if match.Transportation == pattern.TransportParentRequired {
		add("transport", "Confirm who is driving and when to leave", "transportation")
	}
	if match.Meals.Snacks {
		add("snacks", "Bring snacks and a water bottle", "food")
	}
	if match.Meals.CheckWithHost {
		add("host_food", "Check with the host whether food is provided", "food")
	}
	if match.IsVirtual {
		add("tech", "Test camera and microphone a few minutes early", "technology")
		add("focus", "Silence phone notifications and close distracting apps", "technology")
	}
	if match.ArrivalBuffer > 0 {
		add("arrive_early", fmt.Sprintf("Plan to arrive %d minutes early", match.ArrivalBuffer), "timing")
	}

	return out, nil
}
