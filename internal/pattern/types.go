package pattern

// MealHints describes how meals interact with an event of this pattern.
type MealHints struct {
	DinnerBefore        bool
	DinnerMinutesBefore int // minutes before the event start; 0 means the 90 minute default
	DinnerAfter         bool
	LightMeal           bool
	Snacks              bool
	CheckWithHost       bool
	FlexibleTiming      bool
}

// VirtualPrep holds the sub-timings used by virtual-mode scheduling.
// Zero values mean the corresponding task is not generated.
type VirtualPrep struct {
	TechCheckMinutes       int
	BackgroundSetupMinutes int
	DocumentReviewMinutes  int
}

// Definition is one entry of the compiled-in pattern table. Definitions
// are immutable at runtime; the table is injected into the classifier so
// tests can substitute synthetic patterns.
type Definition struct {
	Name             string
	Keywords         []string
	PreparationTime  int // minutes
	NeedsUniform     bool
	PackingList      []string
	Meals            MealHints
	IsVirtual        bool
	Virtual          VirtualPrep
	Transportation   string
	WeatherDependent bool
	ArrivalBuffer    int // minutes to arrive early, 0 if not applicable
}

// Match is the result of one classification call. It copies the matched
// definition so callers never hold a reference into the shared table.
type Match struct {
	Definition

	PatternName string
	Confidence  int // 0-100
}
