package domain

type StreakType string

const (
	StreakNone StreakType = "none"
	StreakWin  StreakType = "win"
	StreakLoss StreakType = "loss"
	StreakDraw StreakType = "draw"
)

type ResultStreak struct {
	Type  StreakType `json:"type"`
	Count int        `json:"count"`
}

// Morale is an externally computed trend indicator. A nil *Morale means the
// trend function had too little data to say anything.
type Morale struct {
	Level  string `json:"level"`
	Sample int    `json:"sample"`
}

type StreakSummary struct {
	Result  ResultStreak `json:"result_streak"`
	Goals   int          `json:"goal_streak"`
	Assists int          `json:"assist_streak"`
	Morale  *Morale      `json:"morale,omitempty"`
}
