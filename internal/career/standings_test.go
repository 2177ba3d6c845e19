package career

import (
	"testing"
	"time"

	"FootyCareerwebserver/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStandingsEmptyCampaign(t *testing.T) {
	conf := domain.ConfederationConfig{ID: "uefa", MatchesToPlay: 10, DirectSlots: 2, Rivals: []string{"A", "B"}}
	c := StartQualifiers("uefa", 0, day(2026, time.March, 1))

	rows := GenerateStandings(c, conf, "You", nil)

	require.Len(t, rows, 1)
	assert.Equal(t, domain.StandingsRow{Name: "You", Position: 1}, rows[0])
}

func TestGenerateStandingsDeterministic(t *testing.T) {
	conf := domain.ConfederationConfig{
		ID: "uefa", MatchesToPlay: 10, DirectSlots: 2,
		Rivals: []string{"Adler FC", "Lions United", "Azzurri Stars"},
	}
	c := domain.QualifiersCampaign{
		ConfederationID: "uefa",
		Status:          domain.CampaignActive,
		StartDate:       day(2026, time.March, 1),
		MatchesPlayed:   4,
		Points:          10,
	}
	matches := []domain.Match{
		{Date: day(2026, time.March, 2), Result: domain.ResultWin, Goals: 2},
		{Date: day(2026, time.March, 5), Result: domain.ResultWin},
		{Date: day(2026, time.March, 9), Result: domain.ResultDraw, Goals: 1},
		{Date: day(2026, time.March, 12), Result: domain.ResultWin, Goals: 1},
	}

	first := GenerateStandings(c, conf, "You", matches)
	second := GenerateStandings(c, conf, "You", matches)
	assert.Equal(t, first, second)

	require.Len(t, first, 4)
	for i, r := range first {
		assert.Equal(t, i+1, r.Position, "positions are dense and 1-based")
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		inOrder := prev.Points > cur.Points ||
			(prev.Points == cur.Points && prev.GoalDifference > cur.GoalDifference) ||
			(prev.Points == cur.Points && prev.GoalDifference == cur.GoalDifference && prev.Name < cur.Name)
		assert.True(t, inOrder, "row %d out of order", i)
	}
}

func TestGenerateStandingsTieBreakByName(t *testing.T) {
	conf := domain.ConfederationConfig{ID: "ofc", MatchesToPlay: 6, DirectSlots: 1}
	c := domain.QualifiersCampaign{ConfederationID: "ofc", MatchesPlayed: 2, Points: 3}

	rows := GenerateStandings(c, conf, "Zed", nil)
	require.Len(t, rows, 1, "no rivals configured leaves just the player")
	assert.Equal(t, 1, rows[0].Position)
}

func TestGoalDifferenceReconstruction(t *testing.T) {
	matches := []domain.Match{
		{Result: domain.ResultWin, Goals: 3},  // +3
		{Result: domain.ResultWin, Goals: 0},  // +1, winning goal came from elsewhere
		{Result: domain.ResultDraw, Goals: 2}, // level
		{Result: domain.ResultLoss, Goals: 1}, // -1
	}
	assert.Equal(t, 3, goalDifference(matches))
}
