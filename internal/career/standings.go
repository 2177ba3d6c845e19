package career

import (
	"sort"

	"FootyCareerwebserver/internal/domain"
)

// GenerateStandings builds the qualification table for a campaign snapshot.
// The table always contains the player's row; rival rows come from the
// confederation's fixed rival list with points derived deterministically from
// the campaign's progress, so identical inputs always yield identical tables.
// A campaign with no matches played yet collapses to the player's all-zero
// row.
func GenerateStandings(c domain.QualifiersCampaign, conf domain.ConfederationConfig, playerName string, campaignMatches []domain.Match) []domain.StandingsRow {
	if playerName == "" {
		playerName = "You"
	}

	rows := []domain.StandingsRow{{
		Name:           playerName,
		Points:         c.Points,
		MatchesPlayed:  c.MatchesPlayed,
		GoalDifference: goalDifference(campaignMatches),
	}}

	if c.MatchesPlayed > 0 {
		maxPoints := c.MatchesPlayed * 3
		n := len(conf.Rivals)
		for i, rival := range conf.Rivals {
			rows = append(rows, domain.StandingsRow{
				Name:           rival,
				MatchesPlayed:  c.MatchesPlayed,
				Points:         rivalPoints(maxPoints, i, n),
				GoalDifference: n - 1 - 2*i,
			})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.Name < b.Name
	})
	for i := range rows {
		rows[i].Position = i + 1
	}
	return rows
}

// rivalPoints spaces rival i of n below the per-match maximum so a perfect
// run always tops the table and a poor one sinks through it.
func rivalPoints(maxPoints, i, n int) int {
	if n <= 1 {
		return maxPoints / 2
	}
	pts := maxPoints * (2*(n-i) - 1) / (2 * n)
	if pts < 0 {
		return 0
	}
	return pts
}

// goalDifference reconstructs a margin from what a match records. Only our
// own goals are logged, so the opponent's score is implied by the result: a
// win is taken as winning to nil, a draw is level, a loss as losing by one.
func goalDifference(matches []domain.Match) int {
	gd := 0
	for _, m := range matches {
		switch m.Result {
		case domain.ResultWin:
			if m.Goals > 0 {
				gd += m.Goals
			} else {
				gd++
			}
		case domain.ResultLoss:
			gd--
		}
	}
	return gd
}
