package pattern

import (
	"math"
	"strings"
)

// Classifier matches free event text against the pattern table. It is a
// pure component: no I/O, no state beyond the immutable table.
type Classifier struct {
	patterns []Definition
}

// NewClassifier creates a Classifier over the given table. A nil table
// selects the built-in defaults.
func NewClassifier(patterns []Definition) *Classifier {
	if patterns == nil {
		patterns = Defaults()
	}
	return &Classifier{patterns: patterns}
}

// Classify returns the best matching pattern for the given event text,
// or nil when nothing matches. Iteration order over the table is the
// static priority list from Defaults(): the first pattern with any
// keyword hit wins.
func (c *Classifier) Classify(eventText string) *Match {
	searchText := strings.ToLower(eventText)
	if strings.TrimSpace(searchText) == "" {
		return nil
	}

	for _, p := range c.patterns {
		matched := false
		for _, kw := range p.Keywords {
			if strings.Contains(searchText, strings.ToLower(kw)) {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		return &Match{
			Definition:  p,
			PatternName: p.Name,
			Confidence:  confidence(searchText, p),
		}
	}

	return nil
}

// confidence scores a match 0-100: the fraction of the pattern's
// keywords present in the text, boosted by 25 when a matched keyword
// also appears as a standalone token rather than only as a substring.
func confidence(searchText string, p Definition) int {
	if len(p.Keywords) == 0 {
		return 0
	}

	tokens := strings.Fields(searchText)
	matchCount := 0
	standalone := false

	for _, kw := range p.Keywords {
		lower := strings.ToLower(kw)
		if !strings.Contains(searchText, lower) {
			continue
		}
		matchCount++
		for _, tok := range tokens {
			if tok == lower {
				standalone = true
				break
			}
		}
	}

	score := float64(matchCount) / float64(len(p.Keywords)) * 100
	if standalone {
		score = math.Min(100, score+25)
	}

	return int(math.Round(score))
}
