package career

import (
	"testing"
	"time"

	"FootyCareerwebserver/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfederations(t *testing.T) Confederations {
	t.Helper()
	confs, err := LoadConfederations()
	require.NoError(t, err)
	return confs
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestClassifyNoCampaignIsRegular(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	p := domain.CareerProfile{Active: domain.NoCampaign()}
	m := domain.Match{Date: day(2026, time.March, 1), Result: domain.ResultWin}

	assert.Equal(t, ModeRegular, cls.Classify(m, p))
}

func TestClassifyQualifiersWindow(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	start := day(2026, time.March, 10)
	p := domain.CareerProfile{Active: domain.QualifiersInProgress(domain.QualifiersCampaign{
		ConfederationID: "uefa",
		CampaignNumber:  1,
		Status:          domain.CampaignActive,
		StartDate:       start,
	})}

	before := domain.Match{Date: day(2026, time.March, 9), Result: domain.ResultWin}
	assert.Equal(t, ModeRegular, cls.Classify(before, p), "match before start date must not count")

	onStart := domain.Match{Date: start, Result: domain.ResultWin}
	assert.Equal(t, ModeQualifiers, cls.Classify(onStart, p))
}

func TestClassifyQualifiersQuotaExhausted(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	p := domain.CareerProfile{Active: domain.QualifiersInProgress(domain.QualifiersCampaign{
		ConfederationID: "uefa",
		Status:          domain.CampaignActive,
		StartDate:       day(2026, time.January, 1),
		MatchesPlayed:   10, // uefa quota
	})}
	m := domain.Match{Date: day(2026, time.June, 1), Result: domain.ResultWin}

	assert.Equal(t, ModeRegular, cls.Classify(m, p))
}

func TestClassifyMalformedDateDefaultsRegular(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	p := domain.CareerProfile{Active: domain.QualifiersInProgress(domain.QualifiersCampaign{
		ConfederationID: "uefa",
		Status:          domain.CampaignActive,
		StartDate:       day(2026, time.January, 1),
	})}

	assert.Equal(t, ModeRegular, cls.Classify(domain.Match{Result: domain.ResultWin}, p))
}

func TestClassifyWorldCupKnockoutPendingOnly(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	wc := domain.WorldCupCampaign{
		Status:             domain.CampaignActive,
		Stage:              domain.StageQuarterFinal,
		StartDate:          day(2026, time.June, 1),
		GroupMatchesPlayed: 3,
		GroupPoints:        7,
	}
	p := domain.CareerProfile{Active: domain.WorldCupInProgress(wc)}
	m := domain.Match{Date: day(2026, time.June, 20), Result: domain.ResultWin}

	assert.Equal(t, ModeWorldCup, cls.Classify(m, p))

	wc.StageMatches = map[domain.WorldCupStage]string{domain.StageQuarterFinal: "m1"}
	p = domain.CareerProfile{Active: domain.WorldCupInProgress(wc)}
	assert.Equal(t, ModeRegular, cls.Classify(m, p), "stage with a recorded match consumes nothing")
}

func TestPointsMultipliers(t *testing.T) {
	s := DefaultScoring()
	m := domain.Match{Result: domain.ResultWin, Goals: 2, Assists: 1} // 3+2+1 = 6

	assert.Equal(t, 6, s.Points(m, ModeRegular, false))
	assert.Equal(t, 12, s.Points(m, ModeQualifiers, false))
	assert.Equal(t, 18, s.Points(m, ModeWorldCup, false))
	assert.Equal(t, 180, s.Points(m, ModeWorldCup, true), "elite world cup scores at 10x")
}

func TestScoringValidateRejectsUnsetMultiplier(t *testing.T) {
	require.NoError(t, DefaultScoring().Validate())

	broken := DefaultScoring()
	broken.WorldCup = 0
	assert.Error(t, broken.Validate())
}

func TestBreakdownForPeriodSumsToTotal(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	p := domain.CareerProfile{
		QualifiersHistory: []domain.QualifiersCampaign{{
			ConfederationID: "ofc",
			CampaignNumber:  1,
			Status:          domain.CampaignCompleted,
			StartDate:       day(2026, time.February, 1),
			MatchesPlayed:   2,
			Points:          6,
		}},
		Active: domain.NoCampaign(),
	}
	matches := []domain.Match{
		{Date: day(2026, time.January, 10), Result: domain.ResultWin, Goals: 1},
		{Date: day(2026, time.February, 2), Result: domain.ResultWin},
		{Date: day(2026, time.February, 3), Result: domain.ResultDraw, Assists: 1},
		{Date: day(2026, time.February, 20), Result: domain.ResultLoss, Goals: 2},
	}

	b := cls.BreakdownForPeriod(p, matches, domain.Period{Year: 2026})

	// Jan 10 regular: (3+1)*1 = 4. Feb 2 and Feb 3 fill the campaign window:
	// (3)*2 + (1+1)*2 = 10. Feb 20 falls after the quota: (0+2)*1 = 2.
	assert.Equal(t, 6, b.Regular)
	assert.Equal(t, 10, b.Qualifiers)
	assert.Equal(t, 0, b.WorldCup)
	assert.Equal(t, b.Regular+b.Qualifiers+b.WorldCup, b.Total())
}

func TestBreakdownForPeriodMonthFilter(t *testing.T) {
	cls := Classifier{Confederations: testConfederations(t), Scoring: DefaultScoring()}
	p := domain.CareerProfile{Active: domain.NoCampaign()}
	matches := []domain.Match{
		{Date: day(2026, time.January, 5), Result: domain.ResultWin},
		{Date: day(2026, time.February, 5), Result: domain.ResultWin},
		{Date: day(2025, time.February, 5), Result: domain.ResultWin},
	}

	b := cls.BreakdownForPeriod(p, matches, domain.Period{Year: 2026, Month: time.February})
	assert.Equal(t, 3, b.Total())
}
