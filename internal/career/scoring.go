package career

import (
	"fmt"

	"FootyCareerwebserver/internal/domain"
)

// Mode is the scoring classification of a match. Every place that cares
// about match modes consumes this enumeration; nothing re-derives it ad hoc.
type Mode string

const (
	ModeRegular    Mode = "regular"
	ModeQualifiers Mode = "qualifiers"
	ModeWorldCup   Mode = "world_cup"
)

// Scoring is the mode multiplier table. The zero value is deliberately
// invalid: a deployment must either take DefaultScoring or override every
// multiplier, and Validate runs at startup so a missing multiplier is a
// config error, not a silent ×0 per match.
type Scoring struct {
	Regular    int
	Qualifiers int
	WorldCup   int
	// Elite multiplies the world-cup rate again for campaigns entered via
	// qualification ("10x points" in the app copy).
	Elite int
}

func DefaultScoring() Scoring {
	return Scoring{Regular: 1, Qualifiers: 2, WorldCup: 3, Elite: 10}
}

func (s Scoring) Validate() error {
	if s.Regular < 1 {
		return fmt.Errorf("scoring: regular multiplier unset")
	}
	if s.Qualifiers < 1 {
		return fmt.Errorf("scoring: qualifiers multiplier unset")
	}
	if s.WorldCup < 1 {
		return fmt.Errorf("scoring: world cup multiplier unset")
	}
	if s.Elite < 1 {
		return fmt.Errorf("scoring: elite multiplier unset")
	}
	return nil
}

// BasePoints is the plain result score: win 3, draw 1, loss 0.
func BasePoints(r domain.MatchResult) int {
	switch r {
	case domain.ResultWin:
		return 3
	case domain.ResultDraw:
		return 1
	}
	return 0
}

// Points scores a match under a mode: result points plus a performance bonus
// of goals and assists, times the mode multiplier.
func (s Scoring) Points(m domain.Match, mode Mode, elite bool) int {
	pts := BasePoints(m.Result) + m.Goals + m.Assists
	switch mode {
	case ModeQualifiers:
		return pts * s.Qualifiers
	case ModeWorldCup:
		if elite {
			return pts * s.WorldCup * s.Elite
		}
		return pts * s.WorldCup
	}
	return pts * s.Regular
}

// LevelForXP maps accumulated XP to a career level, starting at level 1.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return 1 + xp/250
}
