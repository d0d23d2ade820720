package pattern

// Transportation values.
const (
	TransportParentRequired = "parent_required"
	TransportSelf           = "self"
	TransportNone           = "none"
)

// Defaults returns the built-in pattern table. Order matters: the
// classifier takes the first pattern with any keyword hit, so more
// specific patterns come before broader ones (onlineMeeting before
// workMeeting, which shares "meeting").
func Defaults() []Definition {
	return []Definition{
		{
			Name:            "scouts",
			Keywords:        []string{"scouts", "scout", "troop", "den"},
			PreparationTime: 45,
			NeedsUniform:    true,
			Meals: MealHints{
				DinnerBefore:        true,
				DinnerMinutesBefore: 90,
				Snacks:              true,
			},
			PackingList:    []string{"Scout uniform", "Handbook", "Water bottle", "Snacks"},
			Transportation: TransportParentRequired,
		},
		{
			Name:            "sports",
			Keywords:        []string{"soccer", "practice"},
			PreparationTime: 60,
			NeedsUniform:    true,
			Meals: MealHints{
				DinnerAfter: true,
				Snacks:      true,
			},
			PackingList:      []string{"Sports uniform", "Cleats", "Shin guards", "Water bottle", "Towel", "Change of clothes"},
			Transportation:   TransportParentRequired,
			WeatherDependent: true,
		},
		{
			// Same preparation profile as sports; the split keeps the
			// sports keyword set small so its confidence fractions stay
			// meaningful while still covering other team events.
			Name:            "sportsGame",
			Keywords:        []string{"football", "baseball", "basketball", "game", "tournament"},
			PreparationTime: 60,
			NeedsUniform:    true,
			Meals: MealHints{
				DinnerAfter: true,
				Snacks:      true,
			},
			PackingList:      []string{"Sports uniform", "Cleats", "Shin guards", "Water bottle", "Towel", "Change of clothes"},
			Transportation:   TransportParentRequired,
			WeatherDependent: true,
		},
		{
			Name:            "school",
			Keywords:        []string{"school", "class", "pta", "parent-teacher"},
			PreparationTime: 30,
			Meals: MealHints{
				DinnerBefore:        true,
				DinnerMinutesBefore: 60,
			},
			PackingList:    []string{"Notebook", "Pen", "School materials"},
			Transportation: TransportParentRequired,
		},
		{
			Name:            "medical",
			Keywords:        []string{"doctor", "dentist", "appointment", "checkup", "medical"},
			PreparationTime: 30,
			Meals: MealHints{
				LightMeal: true,
			},
			PackingList:    []string{"Insurance cards", "ID", "Medical records", "Medication list"},
			Transportation: TransportParentRequired,
			ArrivalBuffer:  15,
		},
		{
			Name:            "social",
			Keywords:        []string{"party", "birthday", "playdate", "sleepover"},
			PreparationTime: 45,
			Meals: MealHints{
				CheckWithHost: true,
			},
			PackingList:    []string{"Gift", "Card", "Change of clothes", "Toothbrush"},
			Transportation: TransportParentRequired,
		},
		{
			Name:            "onlineMeeting",
			Keywords:        []string{"zoom", "teams", "webinar", "virtual", "online", "video call", "video conference", "remote"},
			PreparationTime: 10,
			IsVirtual:       true,
			Meals: MealHints{
				FlexibleTiming: true,
			},
			Virtual: VirtualPrep{
				TechCheckMinutes:       5,
				BackgroundSetupMinutes: 3,
				DocumentReviewMinutes:  10,
			},
			PackingList:    []string{"Notebook", "Pen", "Meeting agenda/notes", "Water bottle"},
			Transportation: TransportNone,
		},
		{
			Name:            "workMeeting",
			Keywords:        []string{"meeting", "conference", "presentation", "review", "standup", "sync"},
			PreparationTime: 15,
			Meals: MealHints{
				LightMeal: true,
			},
			PackingList:    []string{"Laptop", "Charger", "Notebook", "Business cards"},
			Transportation: TransportSelf,
		},
	}
}
