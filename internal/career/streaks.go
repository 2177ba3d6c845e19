package career

import "FootyCareerwebserver/internal/domain"

// TrendFunc computes a morale summary from a full chronological match list.
// Implementations return nil when there is too little history to judge. The
// analyzer treats morale as an opaque collaborator; only this contract binds.
type TrendFunc func(chronological []domain.Match) *domain.Morale

// AnalyzeStreaks walks a most-recent-first match list and reports consecutive
// runs from the head: same-result streaks (only once they reach two), and
// scoring/assisting streaks as raw counts.
func AnalyzeStreaks(recentFirst []domain.Match, trend TrendFunc) domain.StreakSummary {
	out := domain.StreakSummary{Result: domain.ResultStreak{Type: domain.StreakNone}}
	if len(recentFirst) == 0 {
		return out
	}

	head := recentFirst[0].Result
	count := 0
	for _, m := range recentFirst {
		if m.Result != head {
			break
		}
		count++
	}
	if count >= 2 {
		out.Result = domain.ResultStreak{Type: streakTypeFor(head), Count: count}
	}

	for _, m := range recentFirst {
		if m.Goals <= 0 {
			break
		}
		out.Goals++
	}
	for _, m := range recentFirst {
		if m.Assists <= 0 {
			break
		}
		out.Assists++
	}

	if trend != nil {
		chron := make([]domain.Match, len(recentFirst))
		for i, m := range recentFirst {
			chron[len(recentFirst)-1-i] = m
		}
		out.Morale = trend(chron)
	}
	return out
}

// DefaultTrend scores the last five results (+1 win, -1 loss) and maps the
// balance to a morale level. Fewer than five matches is insufficient data.
func DefaultTrend(chronological []domain.Match) *domain.Morale {
	const window = 5
	if len(chronological) < window {
		return nil
	}
	score := 0
	for _, m := range chronological[len(chronological)-window:] {
		switch m.Result {
		case domain.ResultWin:
			score++
		case domain.ResultLoss:
			score--
		}
	}
	level := "steady"
	switch {
	case score >= 3:
		level = "high"
	case score <= -3:
		level = "low"
	}
	return &domain.Morale{Level: level, Sample: window}
}

func streakTypeFor(r domain.MatchResult) domain.StreakType {
	switch r {
	case domain.ResultWin:
		return domain.StreakWin
	case domain.ResultLoss:
		return domain.StreakLoss
	case domain.ResultDraw:
		return domain.StreakDraw
	}
	return domain.StreakNone
}
