package domain

import "time"

type CampaignStatus string

const (
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
)

type CampaignKind string

const (
	CampaignNone       CampaignKind = "none"
	CampaignQualifiers CampaignKind = "qualifiers"
	CampaignWorldCup   CampaignKind = "world_cup"
)

// QualifiersCampaign is one confederation qualification run. StartDate is
// fixed at creation and never changes afterwards.
type QualifiersCampaign struct {
	ConfederationID string         `json:"confederation_id"`
	CampaignNumber  int            `json:"campaign_number"`
	Status          CampaignStatus `json:"status"`
	StartDate       time.Time      `json:"start_date"`
	MatchesPlayed   int            `json:"matches_played"`
	Points          int            `json:"points"`
}

type WorldCupStage string

const (
	StageGroup        WorldCupStage = "group_stage"
	StageRoundOf16    WorldCupStage = "round_of_16"
	StageQuarterFinal WorldCupStage = "quarter_final"
	StageSemiFinal    WorldCupStage = "semi_final"
	StageFinal        WorldCupStage = "final"
	StageChampion     WorldCupStage = "champion"
)

// WorldCupCampaign tracks a tournament run from the group stage to the title.
// Knockout stages reference matches by id only; matches never point back.
type WorldCupCampaign struct {
	CampaignNumber     int                      `json:"campaign_number"`
	Status             CampaignStatus           `json:"status"`
	IsElite            bool                     `json:"is_elite"`
	Stage              WorldCupStage            `json:"stage"`
	StartDate          time.Time                `json:"start_date"`
	GroupMatchesPlayed int                      `json:"group_matches_played"`
	GroupPoints        int                      `json:"group_points"`
	StageMatches       map[WorldCupStage]string `json:"stage_matches,omitempty"`
}

// ActiveCampaign is a tagged variant: Kind selects which ref is populated,
// and at most one ever is. Build values through the constructors below.
type ActiveCampaign struct {
	Kind       CampaignKind        `json:"kind"`
	Qualifiers *QualifiersCampaign `json:"qualifiers,omitempty"`
	WorldCup   *WorldCupCampaign   `json:"world_cup,omitempty"`
}

func NoCampaign() ActiveCampaign {
	return ActiveCampaign{Kind: CampaignNone}
}

// IsNone reports whether nothing is running. The zero value counts: a
// profile that never stored a campaign has an empty Kind.
func (a ActiveCampaign) IsNone() bool {
	return a.Kind == CampaignNone || a.Kind == ""
}

func QualifiersInProgress(c QualifiersCampaign) ActiveCampaign {
	return ActiveCampaign{Kind: CampaignQualifiers, Qualifiers: &c}
}

func WorldCupInProgress(c WorldCupCampaign) ActiveCampaign {
	return ActiveCampaign{Kind: CampaignWorldCup, WorldCup: &c}
}

type CareerProfile struct {
	UserID            string               `json:"-"`
	CareerPoints      int                  `json:"career_points"`
	Level             int                  `json:"level"`
	XP                int                  `json:"xp"`
	Breakdown         PointsBreakdown      `json:"breakdown"`
	Active            ActiveCampaign       `json:"active_campaign"`
	QualifiersHistory []QualifiersCampaign `json:"qualifiers_history"`
	WorldCupHistory   []WorldCupCampaign   `json:"world_cup_history"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// CareerProfileUpdate carries a partial profile write. Nil fields are left
// untouched by the store; history entries are appended, never rewritten.
type CareerProfileUpdate struct {
	CareerPoints     *int
	Level            *int
	XP               *int
	Breakdown        *PointsBreakdown
	Active           *ActiveCampaign
	AppendQualifiers *QualifiersCampaign
	AppendWorldCup   *WorldCupCampaign
}

type ConfederationConfig struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"name" yaml:"name"`
	DirectSlots   int      `json:"direct_slots" yaml:"direct_slots"`
	PlayoffSlots  int      `json:"playoff_slots" yaml:"playoff_slots"`
	MatchesToPlay int      `json:"matches_to_play" yaml:"matches_to_play"`
	Rivals        []string `json:"-" yaml:"rivals"`
}
