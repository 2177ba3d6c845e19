package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
)

type ProfilesStore interface {
	GetProfile(ctx context.Context, userID string) (domain.CareerProfile, error)
	UpdateProfile(ctx context.Context, userID string, upd domain.CareerProfileUpdate) error
}

type CareerMatchesStore interface {
	ListMatchesForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error)
}

type ProfileUsersStore interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)
}

type Milestone string

const (
	MilestoneQualified  Milestone = "qualified"
	MilestoneEliminated Milestone = "eliminated"
	MilestoneChampion   Milestone = "champion"
)

type MilestoneNotifier interface {
	NotifyCareerMilestone(ctx context.Context, userID string, milestone Milestone, campaignNumber int) error
}

// CareerService owns campaign lifecycle and point accrual. Every mutation
// follows the same shape: load a profile snapshot, run the pure engine over a
// local copy, persist the delta, and discard the copy if the write fails so
// the stored profile stays untouched.
type CareerService struct {
	Profiles       ProfilesStore
	Matches        CareerMatchesStore
	Users          ProfileUsersStore
	Confederations career.Confederations
	Scoring        career.Scoring
	Notifier       MilestoneNotifier
	Logger         *slog.Logger
	Now            func() time.Time
}

func (s *CareerService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *CareerService) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}

func (s *CareerService) Profile(ctx context.Context, userID string) (domain.CareerProfile, error) {
	return s.Profiles.GetProfile(ctx, userID)
}

// StartQualifiers opens a new qualification campaign. The active-campaign
// variant admits one campaign at a time, so this fails while anything else is
// running.
func (s *CareerService) StartQualifiers(ctx context.Context, userID, confederationID string) (domain.QualifiersCampaign, error) {
	conf, ok := s.Confederations.Get(confederationID)
	if !ok {
		return domain.QualifiersCampaign{}, domain.NewValidationError(map[string]string{"confederation_id": "unknown confederation"})
	}

	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.QualifiersCampaign{}, err
	}
	if !p.Active.IsNone() {
		return domain.QualifiersCampaign{}, domain.ErrCampaignActive
	}

	c := career.StartQualifiers(conf.ID, career.LastQualifiersNumber(p, conf.ID), s.now())
	active := domain.QualifiersInProgress(c)
	if err := s.Profiles.UpdateProfile(ctx, userID, domain.CareerProfileUpdate{Active: &active}); err != nil {
		return domain.QualifiersCampaign{}, err
	}
	return c, nil
}

// AbandonQualifiers force-completes the active qualification campaign and
// archives its snapshot with the counters it reached.
func (s *CareerService) AbandonQualifiers(ctx context.Context, userID string) (domain.QualifiersCampaign, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.QualifiersCampaign{}, err
	}
	if p.Active.Kind != domain.CampaignQualifiers || p.Active.Qualifiers == nil {
		return domain.QualifiersCampaign{}, domain.ErrNoCampaign
	}

	archived := career.AbandonQualifiers(*p.Active.Qualifiers)
	none := domain.NoCampaign()
	upd := domain.CareerProfileUpdate{Active: &none, AppendQualifiers: &archived}
	if err := s.Profiles.UpdateProfile(ctx, userID, upd); err != nil {
		return domain.QualifiersCampaign{}, err
	}
	return archived, nil
}

// StartWorldCup opens a tournament campaign by direct entry. Elite campaigns
// are never started here; they only come out of a qualification handoff.
func (s *CareerService) StartWorldCup(ctx context.Context, userID string) (domain.WorldCupCampaign, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.WorldCupCampaign{}, err
	}
	if !p.Active.IsNone() {
		return domain.WorldCupCampaign{}, domain.ErrCampaignActive
	}

	c := career.StartWorldCup(career.LastWorldCupNumber(p), false, s.now())
	active := domain.WorldCupInProgress(c)
	if err := s.Profiles.UpdateProfile(ctx, userID, domain.CareerProfileUpdate{Active: &active}); err != nil {
		return domain.WorldCupCampaign{}, err
	}
	return c, nil
}

// DefendTitle starts the next campaign off the latest championship run.
func (s *CareerService) DefendTitle(ctx context.Context, userID string) (domain.WorldCupCampaign, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return domain.WorldCupCampaign{}, err
	}
	if !p.Active.IsNone() {
		return domain.WorldCupCampaign{}, domain.ErrCampaignActive
	}

	latest, ok := career.LatestWorldCup(p)
	if !ok {
		return domain.WorldCupCampaign{}, domain.ErrNotChampion
	}
	c, err := career.DefendTitle(latest, s.now())
	if err != nil {
		return domain.WorldCupCampaign{}, err
	}

	active := domain.WorldCupInProgress(c)
	if err := s.Profiles.UpdateProfile(ctx, userID, domain.CareerProfileUpdate{Active: &active}); err != nil {
		return domain.WorldCupCampaign{}, err
	}
	return c, nil
}

// Standings derives the qualification table for the active campaign.
func (s *CareerService) Standings(ctx context.Context, userID string) ([]domain.StandingsRow, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p.Active.Kind != domain.CampaignQualifiers || p.Active.Qualifiers == nil {
		return nil, domain.ErrNoCampaign
	}
	q := *p.Active.Qualifiers

	conf, ok := s.Confederations.Get(q.ConfederationID)
	if !ok {
		return nil, domain.ErrNoCampaign
	}

	name, err := s.playerName(ctx, userID)
	if err != nil {
		return nil, err
	}
	campaignMatches, err := s.campaignMatches(ctx, userID, q, conf)
	if err != nil {
		return nil, err
	}
	return career.GenerateStandings(q, conf, name, campaignMatches), nil
}

// WorldCupStages reports the display state of every tournament stage for the
// active run, falling back to the most recent archived run (so a finished
// championship still renders).
func (s *CareerService) WorldCupStages(ctx context.Context, userID string) ([]career.StageStatus, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	c, ok := career.LatestWorldCup(p)
	if !ok {
		return nil, domain.ErrNoCampaign
	}
	return career.StageStatuses(c), nil
}

// ApplyMatch classifies a freshly recorded match, scores it, and advances
// whichever campaign it falls into. The whole transition is computed on a
// local copy and persisted in one partial write; a failed write leaves the
// stored profile exactly as loaded and surfaces the error.
func (s *CareerService) ApplyMatch(ctx context.Context, userID string, m domain.Match) (career.Mode, int, error) {
	p, err := s.Profiles.GetProfile(ctx, userID)
	if err != nil {
		return career.ModeRegular, 0, err
	}

	cls := career.Classifier{Confederations: s.Confederations, Scoring: s.Scoring}
	mode := cls.Classify(m, p)
	elite := mode == career.ModeWorldCup && career.Elite(p)
	pts := s.Scoring.Points(m, mode, elite)

	breakdown := p.Breakdown
	switch mode {
	case career.ModeQualifiers:
		breakdown.Qualifiers += pts
	case career.ModeWorldCup:
		breakdown.WorldCup += pts
	default:
		breakdown.Regular += pts
	}
	total := breakdown.Total()
	xp := p.XP + pts
	level := career.LevelForXP(xp)
	upd := domain.CareerProfileUpdate{
		CareerPoints: &total,
		XP:           &xp,
		Level:        &level,
		Breakdown:    &breakdown,
	}

	var milestone *milestoneEvent
	switch mode {
	case career.ModeQualifiers:
		milestone, err = s.advanceQualifiers(ctx, userID, p, m, &upd)
		if err != nil {
			return career.ModeRegular, 0, err
		}
	case career.ModeWorldCup:
		milestone = s.advanceWorldCup(p, m, &upd)
	}

	if err := s.Profiles.UpdateProfile(ctx, userID, upd); err != nil {
		return career.ModeRegular, 0, err
	}

	if milestone != nil {
		s.notify(ctx, userID, *milestone)
	}
	return mode, pts, nil
}

type milestoneEvent struct {
	milestone      Milestone
	campaignNumber int
}

// advanceQualifiers counts the match toward the active qualification run.
// When the quota is reached the run settles immediately: a qualifying
// position hands off into an elite world cup campaign, anything else closes
// the run out.
func (s *CareerService) advanceQualifiers(ctx context.Context, userID string, p domain.CareerProfile, m domain.Match, upd *domain.CareerProfileUpdate) (*milestoneEvent, error) {
	q := *p.Active.Qualifiers
	conf, _ := s.Confederations.Get(q.ConfederationID)

	q, counted := career.ApplyQualifiersMatch(q, m, conf)
	if !counted {
		return nil, nil
	}

	if q.Status != domain.CampaignCompleted {
		active := domain.QualifiersInProgress(q)
		upd.Active = &active
		return nil, nil
	}

	name, err := s.playerName(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The match row is persisted before the profile is updated, so the
	// store already includes m in the campaign window here.
	campaignMatches, err := s.campaignMatches(ctx, userID, q, conf)
	if err != nil {
		return nil, err
	}
	rows := career.GenerateStandings(q, conf, name, campaignMatches)

	upd.AppendQualifiers = &q
	if career.Qualified(rows, name, conf) {
		wc := career.StartWorldCup(career.LastWorldCupNumber(p), true, s.now())
		active := domain.WorldCupInProgress(wc)
		upd.Active = &active
		return &milestoneEvent{milestone: MilestoneQualified, campaignNumber: q.CampaignNumber}, nil
	}

	none := domain.NoCampaign()
	upd.Active = &none
	return &milestoneEvent{milestone: MilestoneEliminated, campaignNumber: q.CampaignNumber}, nil
}

func (s *CareerService) advanceWorldCup(p domain.CareerProfile, m domain.Match, upd *domain.CareerProfileUpdate) *milestoneEvent {
	w, counted := career.ApplyWorldCupMatch(*p.Active.WorldCup, m)
	if !counted {
		return nil
	}

	if w.Status != domain.CampaignCompleted {
		active := domain.WorldCupInProgress(w)
		upd.Active = &active
		return nil
	}

	upd.AppendWorldCup = &w
	none := domain.NoCampaign()
	upd.Active = &none

	milestone := MilestoneEliminated
	if w.Stage == domain.StageChampion {
		milestone = MilestoneChampion
	}
	return &milestoneEvent{milestone: milestone, campaignNumber: w.CampaignNumber}
}

// campaignMatches selects the matches that counted toward a qualification
// run: the earliest ones on or after the start date, capped at what the
// campaign actually absorbed.
func (s *CareerService) campaignMatches(ctx context.Context, userID string, q domain.QualifiersCampaign, conf domain.ConfederationConfig) ([]domain.Match, error) {
	recent, err := s.Matches.ListMatchesForUser(ctx, userID, conf.MatchesToPlay*2)
	if err != nil {
		return nil, err
	}

	var inWindow []domain.Match
	for _, m := range recent {
		if !m.Date.IsZero() && !m.Date.Before(startOfDay(q.StartDate)) {
			inWindow = append(inWindow, m)
		}
	}
	sort.SliceStable(inWindow, func(i, j int) bool { return inWindow[i].Date.Before(inWindow[j].Date) })
	if len(inWindow) > q.MatchesPlayed {
		inWindow = inWindow[:q.MatchesPlayed]
	}
	return inWindow, nil
}

func (s *CareerService) playerName(ctx context.Context, userID string) (string, error) {
	u, err := s.Users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return displayName(u), nil
}

func (s *CareerService) notify(ctx context.Context, userID string, ev milestoneEvent) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyCareerMilestone(ctx, userID, ev.milestone, ev.campaignNumber); err != nil {
		s.logger().Error("career: milestone notification failed", "err", err, "user_id", userID, "milestone", ev.milestone)
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
