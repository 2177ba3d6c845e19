package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
)

type stubGlobalRankingStore struct {
	entries []domain.RankingEntry
	err     error

	last struct {
		afterPoints int
		afterUserID string
		limit       int
	}
}

func (s *stubGlobalRankingStore) GlobalRankingPage(ctx context.Context, afterPoints int, afterUserID string, limit int) ([]domain.RankingEntry, error) {
	s.last.afterPoints = afterPoints
	s.last.afterUserID = afterUserID
	s.last.limit = limit
	return s.entries, s.err
}

type stubFriendIDs struct {
	ids []string
}

func (s *stubFriendIDs) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	return s.ids, nil
}

type stubRankingProfiles struct {
	profiles map[string]domain.CareerProfile
}

func (s *stubRankingProfiles) GetProfiles(ctx context.Context, userIDs []string) (map[string]domain.CareerProfile, error) {
	return s.profiles, nil
}

type stubRankingMatches struct {
	byUser map[string][]domain.Match
}

func (s *stubRankingMatches) MatchesForUsers(ctx context.Context, userIDs []string, from, to time.Time) (map[string][]domain.Match, error) {
	return s.byUser, nil
}

type stubRankingUsers struct {
	users map[string]domain.User
}

func (s *stubRankingUsers) GetUsersByID(ctx context.Context, ids []string) (map[string]domain.User, error) {
	return s.users, nil
}

func TestRankingCursorRoundTrip(t *testing.T) {
	c := RankingCursor{Points: 420, UserID: "u-42", Rank: 150}
	got, err := DecodeRankingCursor(c.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != c {
		t.Fatalf("expected %+v, got %+v", c, got)
	}
}

func TestDecodeRankingCursorRejectsGarbage(t *testing.T) {
	// "bm9wZQ" is base64 without a separator, "MTB8dTc" decodes to "10|u7"
	// with the rank segment missing.
	for _, s := range []string{"!!!", "bm9wZQ", "MTB8dTc", ""} {
		if _, err := DecodeRankingCursor(s); err == nil {
			t.Fatalf("expected error for %q", s)
		}
	}
}

func TestGlobalFullPageYieldsCursor(t *testing.T) {
	entries := make([]domain.RankingEntry, 3)
	for i := range entries {
		entries[i] = domain.RankingEntry{UserID: fmt.Sprintf("u%d", i+1), TotalPoints: 100 - i}
	}
	store := &stubGlobalRankingStore{entries: entries}
	svc := &RankingService{Rankings: store, PageSize: 3}

	page, err := svc.Global(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !page.HasMore {
		t.Fatal("expected has_more for a full page")
	}
	for i, e := range page.Entries {
		if e.Position != i+1 {
			t.Fatalf("entry %d: expected position %d, got %d", i, i+1, e.Position)
		}
	}
	cur, err := DecodeRankingCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("cursor should decode: %v", err)
	}
	if cur.Points != 98 || cur.UserID != "u3" || cur.Rank != 3 {
		t.Fatalf("cursor should point past the last entry, got %+v", cur)
	}
	if store.last.limit != 3 {
		t.Fatalf("expected page size 3, got %d", store.last.limit)
	}
}

func TestGlobalShortPageEndsPagination(t *testing.T) {
	store := &stubGlobalRankingStore{entries: []domain.RankingEntry{{UserID: "u1", TotalPoints: 10}}}
	svc := &RankingService{Rankings: store, PageSize: 3}

	page, err := svc.Global(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.HasMore || page.NextCursor != "" {
		t.Fatalf("expected final page, got %+v", page)
	}
}

func TestGlobalPassesCursorToStore(t *testing.T) {
	store := &stubGlobalRankingStore{}
	svc := &RankingService{Rankings: store, PageSize: 3}

	cursor := RankingCursor{Points: 55, UserID: "u7", Rank: 3}.Encode()
	if _, err := svc.Global(context.Background(), cursor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.last.afterPoints != 55 || store.last.afterUserID != "u7" {
		t.Fatalf("expected decoded cursor passed to store, got %d/%q", store.last.afterPoints, store.last.afterUserID)
	}
}

func TestGlobalPositionsContinueAcrossPages(t *testing.T) {
	store := &stubGlobalRankingStore{entries: []domain.RankingEntry{
		{UserID: "u4", TotalPoints: 55},
		{UserID: "u5", TotalPoints: 52},
	}}
	svc := &RankingService{Rankings: store, PageSize: 3}

	cursor := RankingCursor{Points: 60, UserID: "u3", Rank: 3}.Encode()
	page, err := svc.Global(context.Background(), cursor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Entries[0].Position != 4 || page.Entries[1].Position != 5 {
		t.Fatalf("expected positions 4 and 5 on the second page, got %d and %d",
			page.Entries[0].Position, page.Entries[1].Position)
	}
}

func TestGlobalRejectsMalformedCursor(t *testing.T) {
	svc := &RankingService{Rankings: &stubGlobalRankingStore{}}
	_, err := svc.Global(context.Background(), "not-a-cursor!")
	expectValidation(t, err)
}

func newFriendsRankingService(friends []string, profiles map[string]domain.CareerProfile, matches map[string][]domain.Match, users map[string]domain.User) *RankingService {
	return &RankingService{
		Friends:        &stubFriendIDs{ids: friends},
		Profiles:       &stubRankingProfiles{profiles: profiles},
		Matches:        &stubRankingMatches{byUser: matches},
		Users:          &stubRankingUsers{users: users},
		Confederations: minorLeague(),
		Scoring:        career.DefaultScoring(),
	}
}

func TestFriendsRankingIncludesSelfAndOrders(t *testing.T) {
	profiles := map[string]domain.CareerProfile{
		"me": {UserID: "me"},
		"f1": {UserID: "f1"},
	}
	matches := map[string][]domain.Match{
		"me": {{Date: testDate(2025, time.April, 2), Result: domain.ResultWin, Goals: 1}},
		"f1": {
			{Date: testDate(2025, time.April, 5), Result: domain.ResultWin, Goals: 2, Assists: 1},
			{Date: testDate(2025, time.April, 9), Result: domain.ResultDraw},
		},
	}
	users := map[string]domain.User{
		"me": {ID: "me", Username: "me"},
		"f1": {ID: "f1", Username: "rival"},
	}
	svc := newFriendsRankingService([]string{"f1"}, profiles, matches, users)

	entries, err := svc.FriendsForPeriod(context.Background(), "me", domain.Period{Year: 2025, Month: time.April})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != "f1" || entries[0].TotalPoints != 7 {
		t.Fatalf("expected f1 with 7 points first, got %+v", entries[0])
	}
	if entries[1].UserID != "me" || entries[1].TotalPoints != 4 {
		t.Fatalf("expected me with 4 points second, got %+v", entries[1])
	}
	if entries[0].Position != 1 || entries[1].Position != 2 {
		t.Fatalf("expected positions 1 and 2, got %d and %d", entries[0].Position, entries[1].Position)
	}
}

func TestFriendsRankingTiesKeepInputOrder(t *testing.T) {
	profiles := map[string]domain.CareerProfile{
		"me": {UserID: "me"}, "f1": {UserID: "f1"}, "f2": {UserID: "f2"},
	}
	win := domain.Match{Date: testDate(2025, time.April, 2), Result: domain.ResultWin}
	matches := map[string][]domain.Match{
		"me": {},
		"f1": {win},
		"f2": {win},
	}
	users := map[string]domain.User{
		"me": {ID: "me", Username: "me"},
		"f1": {ID: "f1", Username: "zed"},
		"f2": {ID: "f2", Username: "amy"},
	}
	svc := newFriendsRankingService([]string{"f1", "f2"}, profiles, matches, users)

	entries, err := svc.FriendsForPeriod(context.Background(), "me", domain.Period{Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The sort is stable: f1 and f2 are tied, so they stay in the
	// self-then-friends input order regardless of name.
	if entries[0].UserID != "f1" || entries[1].UserID != "f2" {
		t.Fatalf("ties must keep input order, got %q then %q", entries[0].UserID, entries[1].UserID)
	}
	if entries[0].Position != 1 || entries[1].Position != 2 || entries[2].Position != 3 {
		t.Fatalf("positions follow sorted order with no tie sharing, got %d, %d, %d",
			entries[0].Position, entries[1].Position, entries[2].Position)
	}
	if entries[2].UserID != "me" {
		t.Fatalf("expected the caller last with 0 points, got %q", entries[2].UserID)
	}
}

func TestFriendsRankingBreakdownSumsToTotal(t *testing.T) {
	start := testDate(2025, time.April, 1)
	q := domain.QualifiersCampaign{
		ConfederationID: "minor",
		CampaignNumber:  1,
		Status:          domain.CampaignCompleted,
		StartDate:       start,
		MatchesPlayed:   1,
		Points:          3,
	}
	profiles := map[string]domain.CareerProfile{
		"me": {UserID: "me", QualifiersHistory: []domain.QualifiersCampaign{q}},
	}
	matches := map[string][]domain.Match{
		"me": {
			{Date: testDate(2025, time.April, 2), Result: domain.ResultWin, Goals: 1},
			{Date: testDate(2025, time.April, 20), Result: domain.ResultWin, Goals: 1},
		},
	}
	users := map[string]domain.User{"me": {ID: "me", Username: "me"}}
	svc := newFriendsRankingService(nil, profiles, matches, users)

	entries, err := svc.FriendsForPeriod(context.Background(), "me", domain.Period{Year: 2025})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := entries[0]
	if e.Breakdown.Total() != e.TotalPoints {
		t.Fatalf("breakdown %+v must sum to total %d", e.Breakdown, e.TotalPoints)
	}
	// First win replays inside the campaign window at double points, the
	// second falls outside the one-match quota and scores as regular.
	if e.Breakdown.Qualifiers != 8 || e.Breakdown.Regular != 4 {
		t.Fatalf("unexpected breakdown %+v", e.Breakdown)
	}
}

func TestFriendsRankingRejectsBadPeriod(t *testing.T) {
	svc := newFriendsRankingService(nil, nil, nil, nil)
	_, err := svc.FriendsForPeriod(context.Background(), "me", domain.Period{Year: 10})
	expectValidation(t, err)
}
