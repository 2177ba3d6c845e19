package domain

import "time"

type MatchResult string

const (
	ResultWin  MatchResult = "win"
	ResultLoss MatchResult = "loss"
	ResultDraw MatchResult = "draw"
)

func (r MatchResult) Valid() bool {
	switch r {
	case ResultWin, ResultLoss, ResultDraw:
		return true
	}
	return false
}

// Match is a single logged game. Matches are append-only: the engine never
// mutates or deletes one after it has been recorded.
type Match struct {
	ID        string      `json:"id"`
	UserID    string      `json:"-"`
	Date      time.Time   `json:"date"`
	Result    MatchResult `json:"result"`
	Goals     int         `json:"goals"`
	Assists   int         `json:"assists"`
	CreatedAt time.Time   `json:"created_at"`
}
