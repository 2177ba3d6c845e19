package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
)

type stubMatchesStore struct {
	created struct {
		called bool
		match  domain.Match
	}
	createErr error

	matches []domain.Match
	listErr error
}

func (s *stubMatchesStore) CreateMatch(ctx context.Context, m domain.Match) error {
	s.created.called = true
	s.created.match = m
	return s.createErr
}

func (s *stubMatchesStore) ListMatchesForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error) {
	return s.matches, s.listErr
}

type stubMatchApplier struct {
	called bool
	match  domain.Match
	mode   career.Mode
	points int
	err    error
}

func (s *stubMatchApplier) ApplyMatch(ctx context.Context, userID string, m domain.Match) (career.Mode, int, error) {
	s.called = true
	s.match = m
	return s.mode, s.points, s.err
}

func TestRecordMatchRejectsUnknownResult(t *testing.T) {
	store := &stubMatchesStore{}
	svc := &MatchService{Matches: store, Career: &stubMatchApplier{}}

	_, err := svc.RecordMatch(context.Background(), "u1", RecordMatchParams{Result: "victory"})
	expectValidation(t, err)
	if store.created.called {
		t.Fatal("store should not be called on validation error")
	}
}

func TestRecordMatchRejectsNegativeCounts(t *testing.T) {
	store := &stubMatchesStore{}
	svc := &MatchService{Matches: store, Career: &stubMatchApplier{}}

	_, err := svc.RecordMatch(context.Background(), "u1", RecordMatchParams{Result: "win", Goals: -1, Assists: -2})
	expectValidation(t, err)
}

func TestRecordMatchStoresThenApplies(t *testing.T) {
	now := time.Date(2025, time.March, 1, 18, 0, 0, 0, time.UTC)
	store := &stubMatchesStore{}
	applier := &stubMatchApplier{mode: career.ModeQualifiers, points: 8}
	svc := &MatchService{Matches: store, Career: applier, Now: func() time.Time { return now }}

	rec, err := svc.RecordMatch(context.Background(), "u1", RecordMatchParams{
		Date:    time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Result:  "win",
		Goals:   2,
		Assists: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !store.created.called {
		t.Fatal("expected match to be stored")
	}
	if store.created.match.ID == "" {
		t.Fatal("expected match id to be minted")
	}
	if store.created.match.UserID != "u1" {
		t.Fatalf("expected owner u1, got %q", store.created.match.UserID)
	}
	if !store.created.match.CreatedAt.Equal(now) {
		t.Fatalf("expected created_at %v, got %v", now, store.created.match.CreatedAt)
	}
	if !applier.called {
		t.Fatal("expected match applied to career profile")
	}
	if applier.match.ID != store.created.match.ID {
		t.Fatal("applied match must be the stored match")
	}
	if rec.Mode != career.ModeQualifiers || rec.Points != 8 {
		t.Fatalf("expected qualifiers/8, got %q/%d", rec.Mode, rec.Points)
	}
}

func TestRecordMatchKeepsRowWhenApplyFails(t *testing.T) {
	store := &stubMatchesStore{}
	applier := &stubMatchApplier{err: errors.New("profile write failed")}
	svc := &MatchService{Matches: store, Career: applier}

	_, err := svc.RecordMatch(context.Background(), "u1", RecordMatchParams{Result: "draw"})
	if err == nil {
		t.Fatal("expected apply error to surface")
	}
	if !store.created.called {
		t.Fatal("match row must be written before the profile update")
	}
}

func TestStreaksAnalyzesRecentMatches(t *testing.T) {
	store := &stubMatchesStore{matches: []domain.Match{
		{Result: domain.ResultWin, Goals: 1},
		{Result: domain.ResultWin, Goals: 2},
		{Result: domain.ResultLoss},
	}}
	svc := &MatchService{Matches: store, Career: &stubMatchApplier{}}

	sum, err := svc.Streaks(context.Background(), "u1", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sum.Result.Type != domain.StreakWin || sum.Result.Count != 2 {
		t.Fatalf("expected win streak of 2, got %+v", sum.Result)
	}
	if sum.Goals != 2 {
		t.Fatalf("expected goal streak 2, got %d", sum.Goals)
	}
}
