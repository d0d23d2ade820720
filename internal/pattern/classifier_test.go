package pattern_test

import (
	"testing"

	"event-prep-engine/internal/pattern"
)

func TestClassify(t *testing.T) {
	c := pattern.NewClassifier(nil)

	t.Run("Soccer Practice Full Confidence", func(t *testing.T) {
		m := c.Classify("Soccer Practice")
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.PatternName != "sports" {
			t.Errorf("expected sports, got %s", m.PatternName)
		}
		if m.Confidence != 100 {
			t.Errorf("expected confidence 100, got %d", m.Confidence)
		}
		if m.PreparationTime != 60 {
			t.Errorf("expected 60 minute prep, got %d", m.PreparationTime)
		}
	})

	t.Run("Team Game Coverage", func(t *testing.T) {
		// basketball and game standalone: 2/5*100 + 25 = 65.
		m := c.Classify("Basketball game vs Riverside")
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.PatternName != "sportsGame" {
			t.Errorf("expected sportsGame, got %s", m.PatternName)
		}
		if m.Confidence != 65 {
			t.Errorf("expected confidence 65, got %d", m.Confidence)
		}
		if m.Transportation != pattern.TransportParentRequired {
			t.Error("team games need transport coordination")
		}
	})

	t.Run("Soccer Game Stays Sports", func(t *testing.T) {
		m := c.Classify("Soccer game")
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.PatternName != "sports" {
			t.Errorf("expected sports to win on soccer, got %s", m.PatternName)
		}
	})

	t.Run("Online Meeting Beats Work Meeting", func(t *testing.T) {
		m := c.Classify("Zoom standup")
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.PatternName != "onlineMeeting" {
			t.Errorf("expected onlineMeeting, got %s", m.PatternName)
		}
		if !m.IsVirtual {
			t.Error("onlineMeeting must be virtual")
		}
	})

	t.Run("Standalone Token Boost", func(t *testing.T) {
		// "doctor" and "checkup" as standalone tokens: 2/5*100 + 25 = 65.
		m := c.Classify("doctor checkup for Ella")
		if m == nil {
			t.Fatal("expected a match")
		}
		if m.PatternName != "medical" {
			t.Errorf("expected medical, got %s", m.PatternName)
		}
		if m.Confidence != 65 {
			t.Errorf("expected confidence 65, got %d", m.Confidence)
		}
	})

	t.Run("Substring Only No Boost", func(t *testing.T) {
		// "den" matches only inside "garden": 1/4*100 = 25, no boost.
		m := c.Classify("gardening afternoon")
		if m == nil {
			t.Fatal("expected scouts via den substring")
		}
		if m.PatternName != "scouts" {
			t.Errorf("expected scouts, got %s", m.PatternName)
		}
		if m.Confidence != 25 {
			t.Errorf("expected confidence 25, got %d", m.Confidence)
		}
	})

	t.Run("No Match Is Nil", func(t *testing.T) {
		if m := c.Classify("quiet evening at home"); m != nil {
			t.Errorf("expected nil, got %s", m.PatternName)
		}
	})

	t.Run("Empty Text Is Nil", func(t *testing.T) {
		if m := c.Classify("   "); m != nil {
			t.Error("expected nil for blank text")
		}
	})

	t.Run("Confidence Bounds", func(t *testing.T) {
		inputs := []string{
			"Soccer Practice", "zoom teams webinar virtual online remote",
			"scout troop den meeting", "doctor dentist appointment checkup medical",
			"birthday party playdate sleepover", "x",
		}
		for _, in := range inputs {
			m := c.Classify(in)
			if m == nil {
				continue
			}
			if m.Confidence < 0 || m.Confidence > 100 {
				t.Errorf("confidence out of range for %q: %d", in, m.Confidence)
			}
		}
	})

	t.Run("Injected Synthetic Table", func(t *testing.T) {
		custom := pattern.NewClassifier([]pattern.Definition{
			{Name: "chess", Keywords: []string{"chess", "rapid"}, PreparationTime: 5},
		})
		m := custom.Classify("chess club")
		if m == nil || m.PatternName != "chess" {
			t.Fatalf("expected chess match, got %+v", m)
		}
		// 1/2*100 + 25 standalone boost
		if m.Confidence != 75 {
			t.Errorf("expected confidence 75, got %d", m.Confidence)
		}
	})
}
