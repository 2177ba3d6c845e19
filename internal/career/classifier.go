package career

import (
	"sort"
	"time"

	"FootyCareerwebserver/internal/domain"
)

// Classifier maps matches to scoring modes against a profile snapshot. It is
// pure: classification never does I/O and never fails on well-formed input.
type Classifier struct {
	Confederations Confederations
	Scoring        Scoring
}

// Classify returns the scoring mode for a match given the profile's active
// campaign. A match with no usable date is always Regular; it can never fall
// inside a campaign window.
func (c Classifier) Classify(m domain.Match, p domain.CareerProfile) Mode {
	if m.Date.IsZero() {
		return ModeRegular
	}

	switch p.Active.Kind {
	case domain.CampaignQualifiers:
		q := p.Active.Qualifiers
		if q == nil || q.Status != domain.CampaignActive {
			return ModeRegular
		}
		conf, ok := c.Confederations.Get(q.ConfederationID)
		if !ok {
			return ModeRegular
		}
		if m.Date.Before(dateOnly(q.StartDate)) || q.MatchesPlayed >= conf.MatchesToPlay {
			return ModeRegular
		}
		return ModeQualifiers

	case domain.CampaignWorldCup:
		w := p.Active.WorldCup
		if w == nil || w.Status != domain.CampaignActive {
			return ModeRegular
		}
		if m.Date.Before(dateOnly(w.StartDate)) || !worldCupConsumesMatch(*w) {
			return ModeRegular
		}
		return ModeWorldCup
	}

	return ModeRegular
}

// Elite reports whether a world-cup classified match scores at the elite rate.
func Elite(p domain.CareerProfile) bool {
	return p.Active.Kind == domain.CampaignWorldCup &&
		p.Active.WorldCup != nil &&
		p.Active.WorldCup.IsElite
}

// BreakdownForPeriod is the canonical from-scratch recompute used by the
// friends ranking: the period's matches are replayed in date order against
// the profile's campaign windows (history plus the active campaign), and each
// match scores under at most one campaign mode. Stored career points are only
// a cache of this function.
func (c Classifier) BreakdownForPeriod(p domain.CareerProfile, matches []domain.Match, period domain.Period) domain.PointsBreakdown {
	windows := campaignWindows(p)

	inPeriod := make([]domain.Match, 0, len(matches))
	for _, m := range matches {
		if period.Contains(m.Date) {
			inPeriod = append(inPeriod, m)
		}
	}
	sort.SliceStable(inPeriod, func(i, j int) bool {
		return inPeriod[i].Date.Before(inPeriod[j].Date)
	})

	var b domain.PointsBreakdown
	for _, m := range inPeriod {
		mode, elite := ModeRegular, false
		for i := range windows {
			w := &windows[i]
			if w.remaining <= 0 || m.Date.Before(dateOnly(w.start)) {
				continue
			}
			w.remaining--
			mode, elite = w.mode, w.elite
			break
		}
		pts := c.Scoring.Points(m, mode, elite)
		switch mode {
		case ModeQualifiers:
			b.Qualifiers += pts
		case ModeWorldCup:
			b.WorldCup += pts
		default:
			b.Regular += pts
		}
	}
	return b
}

type campaignWindow struct {
	start     time.Time
	remaining int
	mode      Mode
	elite     bool
}

// campaignWindows reconstructs how many matches each campaign absorbed, in
// start-date order, so a replay assigns matches the same way the live engine
// did.
func campaignWindows(p domain.CareerProfile) []campaignWindow {
	var out []campaignWindow
	for _, q := range p.QualifiersHistory {
		out = append(out, campaignWindow{start: q.StartDate, remaining: q.MatchesPlayed, mode: ModeQualifiers})
	}
	for _, w := range p.WorldCupHistory {
		out = append(out, campaignWindow{
			start:     w.StartDate,
			remaining: w.GroupMatchesPlayed + len(w.StageMatches),
			mode:      ModeWorldCup,
			elite:     w.IsElite,
		})
	}
	switch p.Active.Kind {
	case domain.CampaignQualifiers:
		if q := p.Active.Qualifiers; q != nil {
			out = append(out, campaignWindow{start: q.StartDate, remaining: q.MatchesPlayed, mode: ModeQualifiers})
		}
	case domain.CampaignWorldCup:
		if w := p.Active.WorldCup; w != nil {
			out = append(out, campaignWindow{
				start:     w.StartDate,
				remaining: w.GroupMatchesPlayed + len(w.StageMatches),
				mode:      ModeWorldCup,
				elite:     w.IsElite,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}

// dateOnly strips the time component so campaign windows compare by calendar
// date, matching how match dates are recorded.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
