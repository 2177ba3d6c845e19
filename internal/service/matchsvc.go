package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
)

type MatchesStore interface {
	CreateMatch(ctx context.Context, m domain.Match) error
	ListMatchesForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error)
}

// MatchApplier folds a recorded match into the owner's career profile and
// reports the scoring mode plus points awarded.
type MatchApplier interface {
	ApplyMatch(ctx context.Context, userID string, m domain.Match) (career.Mode, int, error)
}

type MatchService struct {
	Matches MatchesStore
	Career  MatchApplier
	Trend   career.TrendFunc
	Now     func() time.Time
}

type RecordMatchParams struct {
	Date    time.Time
	Result  string
	Goals   int
	Assists int
}

type RecordedMatch struct {
	Match  domain.Match
	Mode   career.Mode
	Points int
}

// RecordMatch validates and stores a match, then applies it to the career
// profile. The match row is written first: results are append-only facts,
// and a failed profile write must not lose one.
func (s *MatchService) RecordMatch(ctx context.Context, userID string, p RecordMatchParams) (RecordedMatch, error) {
	if s.Now == nil {
		s.Now = time.Now
	}

	fields := map[string]string{}
	result := domain.MatchResult(p.Result)
	if !result.Valid() {
		fields["result"] = "must be one of: win, loss, draw"
	}
	if p.Goals < 0 {
		fields["goals"] = "must not be negative"
	}
	if p.Assists < 0 {
		fields["assists"] = "must not be negative"
	}
	if len(fields) > 0 {
		return RecordedMatch{}, domain.NewValidationError(fields)
	}

	m := domain.Match{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      p.Date,
		Result:    result,
		Goals:     p.Goals,
		Assists:   p.Assists,
		CreatedAt: s.Now(),
	}
	if err := s.Matches.CreateMatch(ctx, m); err != nil {
		return RecordedMatch{}, err
	}

	mode, pts, err := s.Career.ApplyMatch(ctx, userID, m)
	if err != nil {
		return RecordedMatch{}, err
	}
	return RecordedMatch{Match: m, Mode: mode, Points: pts}, nil
}

func (s *MatchService) ListMatches(ctx context.Context, userID string, limit int) ([]domain.Match, error) {
	return s.Matches.ListMatchesForUser(ctx, userID, limit)
}

// Streaks analyzes the most recent matches, newest first as the store
// returns them.
func (s *MatchService) Streaks(ctx context.Context, userID string, limit int) (domain.StreakSummary, error) {
	matches, err := s.Matches.ListMatchesForUser(ctx, userID, limit)
	if err != nil {
		return domain.StreakSummary{}, err
	}
	trend := s.Trend
	if trend == nil {
		trend = career.DefaultTrend
	}
	return career.AnalyzeStreaks(matches, trend), nil
}
