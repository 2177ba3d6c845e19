package domain

import "time"

// StandingsRow is derived on demand from a campaign snapshot. It is never
// persisted; identical inputs always produce identical rows.
type StandingsRow struct {
	Name           string `json:"name"`
	Points         int    `json:"points"`
	MatchesPlayed  int    `json:"matches_played"`
	GoalDifference int    `json:"goal_difference"`
	Position       int    `json:"position"`
}

type PointsBreakdown struct {
	Regular    int `json:"regular"`
	Qualifiers int `json:"qualifiers"`
	WorldCup   int `json:"world_cup"`
}

func (b PointsBreakdown) Total() int {
	return b.Regular + b.Qualifiers + b.WorldCup
}

type RankingEntry struct {
	UserID      string          `json:"user_id"`
	Name        string          `json:"name"`
	TotalPoints int             `json:"total_points"`
	Breakdown   PointsBreakdown `json:"breakdown"`
	Position    int             `json:"position"`
}

type RankingPage struct {
	Entries    []RankingEntry `json:"entries"`
	NextCursor string         `json:"next_cursor,omitempty"`
	HasMore    bool           `json:"has_more"`
}

// Period selects a calendar window for the friends ranking: a whole year, or
// a single month when Month is non-zero.
type Period struct {
	Year  int
	Month time.Month
}

func (p Period) Contains(date time.Time) bool {
	if date.IsZero() || date.Year() != p.Year {
		return false
	}
	return p.Month == 0 || date.Month() == p.Month
}
