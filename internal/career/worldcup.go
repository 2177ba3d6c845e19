package career

import (
	"time"

	"FootyCareerwebserver/internal/domain"
)

const (
	// GroupStageMatches is the fixed group-stage quota; the knockout decision
	// is made only once all of them are played.
	GroupStageMatches = 3
	// GroupQualifyPoints is the group-stage points needed to reach the
	// knockout rounds (out of a maximum of 9).
	GroupQualifyPoints = 5
)

// StageOrder is the fixed progression of a world cup run. Champion is
// terminal; it consumes no matches.
var StageOrder = []domain.WorldCupStage{
	domain.StageGroup,
	domain.StageRoundOf16,
	domain.StageQuarterFinal,
	domain.StageSemiFinal,
	domain.StageFinal,
	domain.StageChampion,
}

// StartWorldCup begins a tournament run. elite is decided here, at creation,
// from how the campaign was entered; it is never toggled afterwards.
func StartWorldCup(lastNumber int, elite bool, now time.Time) domain.WorldCupCampaign {
	return domain.WorldCupCampaign{
		CampaignNumber: lastNumber + 1,
		Status:         domain.CampaignActive,
		IsElite:        elite,
		Stage:          domain.StageGroup,
		StartDate:      now,
	}
}

// ApplyWorldCupMatch advances an active campaign by one match. Group matches
// accumulate base points with the knockout decision after the third match; a
// knockout stage is a single match where anything short of a win ends the
// run. Winning the final parks the campaign at Champion, completed.
// Returns the updated campaign and whether the match counted.
func ApplyWorldCupMatch(c domain.WorldCupCampaign, m domain.Match) (domain.WorldCupCampaign, bool) {
	if c.Status != domain.CampaignActive || c.Stage == domain.StageChampion {
		return c, false
	}
	if m.Date.IsZero() || m.Date.Before(dateOnly(c.StartDate)) {
		return c, false
	}

	if c.Stage == domain.StageGroup {
		if c.GroupMatchesPlayed >= GroupStageMatches {
			return c, false
		}
		c.GroupMatchesPlayed++
		c.GroupPoints += BasePoints(m.Result)
		if c.GroupMatchesPlayed == GroupStageMatches {
			if c.GroupPoints >= GroupQualifyPoints {
				c.Stage = domain.StageRoundOf16
			} else {
				c.Status = domain.CampaignCompleted
			}
		}
		return c, true
	}

	refs := make(map[domain.WorldCupStage]string, len(c.StageMatches)+1)
	for k, v := range c.StageMatches {
		refs[k] = v
	}
	refs[c.Stage] = m.ID
	c.StageMatches = refs

	if m.Result != domain.ResultWin {
		c.Status = domain.CampaignCompleted
		return c, true
	}

	c.Stage = nextStage(c.Stage)
	if c.Stage == domain.StageChampion {
		c.Status = domain.CampaignCompleted
	}
	return c, true
}

// DefendTitle starts the next campaign off a finished championship run,
// carrying the elite flag forward unchanged.
func DefendTitle(champion domain.WorldCupCampaign, now time.Time) (domain.WorldCupCampaign, error) {
	if champion.Stage != domain.StageChampion {
		return domain.WorldCupCampaign{}, domain.ErrNotChampion
	}
	return domain.WorldCupCampaign{
		CampaignNumber: champion.CampaignNumber + 1,
		Status:         domain.CampaignActive,
		IsElite:        champion.IsElite,
		Stage:          domain.StageGroup,
		StartDate:      now,
	}, nil
}

type StageState string

const (
	StageStateCurrent   StageState = "current"
	StageStateCompleted StageState = "completed"
	StageStateLocked    StageState = "locked"
)

type StageStatus struct {
	Stage   domain.WorldCupStage `json:"stage"`
	State   StageState           `json:"state"`
	MatchID string               `json:"match_id,omitempty"`
}

// StageStatuses derives every stage's display state from where the campaign's
// stage pointer sits in the fixed order. An eliminated campaign shows its
// last stage as current; a champion shows everything completed.
func StageStatuses(c domain.WorldCupCampaign) []StageStatus {
	cur := stageIndex(c.Stage)
	out := make([]StageStatus, 0, len(StageOrder))
	for i, s := range StageOrder {
		st := StageStatus{Stage: s, MatchID: c.StageMatches[s]}
		switch {
		case i < cur || c.Stage == domain.StageChampion:
			st.State = StageStateCompleted
		case i == cur:
			st.State = StageStateCurrent
		default:
			st.State = StageStateLocked
		}
		out = append(out, st)
	}
	return out
}

// LastWorldCupNumber returns the highest campaign number across the active
// campaign and the archive, zero when the profile has never entered one.
func LastWorldCupNumber(p domain.CareerProfile) int {
	n := 0
	for _, c := range p.WorldCupHistory {
		if c.CampaignNumber > n {
			n = c.CampaignNumber
		}
	}
	if p.Active.Kind == domain.CampaignWorldCup && p.Active.WorldCup != nil && p.Active.WorldCup.CampaignNumber > n {
		n = p.Active.WorldCup.CampaignNumber
	}
	return n
}

// LatestWorldCup returns the run to display: the active campaign when there
// is one, otherwise the most recently numbered archived run.
func LatestWorldCup(p domain.CareerProfile) (domain.WorldCupCampaign, bool) {
	if p.Active.Kind == domain.CampaignWorldCup && p.Active.WorldCup != nil {
		return *p.Active.WorldCup, true
	}
	var latest domain.WorldCupCampaign
	found := false
	for _, c := range p.WorldCupHistory {
		if !found || c.CampaignNumber > latest.CampaignNumber {
			latest, found = c, true
		}
	}
	return latest, found
}

func worldCupConsumesMatch(c domain.WorldCupCampaign) bool {
	switch {
	case c.Stage == domain.StageChampion:
		return false
	case c.Stage == domain.StageGroup:
		return c.GroupMatchesPlayed < GroupStageMatches
	default:
		_, played := c.StageMatches[c.Stage]
		return !played
	}
}

func nextStage(s domain.WorldCupStage) domain.WorldCupStage {
	for i, stage := range StageOrder {
		if stage == s && i+1 < len(StageOrder) {
			return StageOrder[i+1]
		}
	}
	return s
}

func stageIndex(s domain.WorldCupStage) int {
	for i, stage := range StageOrder {
		if stage == s {
			return i
		}
	}
	return 0
}
