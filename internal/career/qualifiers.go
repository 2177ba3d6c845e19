package career

import (
	"time"

	"FootyCareerwebserver/internal/domain"
)

// StartQualifiers begins a fresh qualification run. Campaign numbers are
// monotonic per user per confederation; StartDate never changes afterwards.
func StartQualifiers(confederationID string, lastNumber int, now time.Time) domain.QualifiersCampaign {
	return domain.QualifiersCampaign{
		ConfederationID: confederationID,
		CampaignNumber:  lastNumber + 1,
		Status:          domain.CampaignActive,
		StartDate:       now,
	}
}

// ApplyQualifiersMatch counts a match toward an active campaign and completes
// the campaign when the confederation quota is reached. Qualification points
// use base result scoring only; the goal/assist bonus does not feed the
// campaign tally. Returns the updated campaign and whether the match counted.
func ApplyQualifiersMatch(c domain.QualifiersCampaign, m domain.Match, conf domain.ConfederationConfig) (domain.QualifiersCampaign, bool) {
	if c.Status != domain.CampaignActive || c.MatchesPlayed >= conf.MatchesToPlay {
		return c, false
	}
	if m.Date.IsZero() || m.Date.Before(dateOnly(c.StartDate)) {
		return c, false
	}

	c.MatchesPlayed++
	c.Points += BasePoints(m.Result)
	if c.MatchesPlayed == conf.MatchesToPlay {
		c.Status = domain.CampaignCompleted
	}
	return c, true
}

// AbandonQualifiers force-completes a campaign, keeping its counters so the
// archived snapshot reflects how far the run got.
func AbandonQualifiers(c domain.QualifiersCampaign) domain.QualifiersCampaign {
	c.Status = domain.CampaignCompleted
	return c
}

// LastQualifiersNumber returns the highest campaign number this profile has
// used for a confederation, zero when there has been none.
func LastQualifiersNumber(p domain.CareerProfile, confederationID string) int {
	n := 0
	for _, c := range p.QualifiersHistory {
		if c.ConfederationID == confederationID && c.CampaignNumber > n {
			n = c.CampaignNumber
		}
	}
	if p.Active.Kind == domain.CampaignQualifiers {
		if q := p.Active.Qualifiers; q != nil && q.ConfederationID == confederationID && q.CampaignNumber > n {
			n = q.CampaignNumber
		}
	}
	return n
}

// Qualified reports whether the player's standings position earns a world cup
// berth. Direct slots always qualify; the playoff path is enabled per
// confederation through its playoff_slots config.
func Qualified(rows []domain.StandingsRow, playerName string, conf domain.ConfederationConfig) bool {
	for _, r := range rows {
		if r.Name != playerName {
			continue
		}
		if r.Position <= conf.DirectSlots {
			return true
		}
		return conf.PlayoffSlots > 0 && r.Position <= conf.DirectSlots+conf.PlayoffSlots
	}
	return false
}
