package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"FootyCareerwebserver/internal/career"
	"FootyCareerwebserver/internal/domain"
)

const DefaultRankingPageSize = 50

// RankingCursor is the keyset position of the last entry on a page: entries
// strictly after (points desc, user id asc) belong to the next page. Rank is
// the number of rows already served, so position numbering continues across
// pages.
type RankingCursor struct {
	Points int
	UserID string
	Rank   int
}

func (c RankingCursor) Encode() string {
	raw := strconv.Itoa(c.Points) + "|" + c.UserID + "|" + strconv.Itoa(c.Rank)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeRankingCursor(s string) (RankingCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return RankingCursor{}, fmt.Errorf("decode cursor: %w", err)
	}
	points, rest, ok := strings.Cut(string(raw), "|")
	if !ok {
		return RankingCursor{}, fmt.Errorf("malformed cursor")
	}
	userID, rank, ok := strings.Cut(rest, "|")
	if !ok {
		return RankingCursor{}, fmt.Errorf("malformed cursor")
	}
	n, err := strconv.Atoi(points)
	if err != nil {
		return RankingCursor{}, fmt.Errorf("malformed cursor points: %w", err)
	}
	r, err := strconv.Atoi(rank)
	if err != nil || r < 0 {
		return RankingCursor{}, fmt.Errorf("malformed cursor rank")
	}
	return RankingCursor{Points: n, UserID: userID, Rank: r}, nil
}

type GlobalRankingStore interface {
	GlobalRankingPage(ctx context.Context, afterPoints int, afterUserID string, limit int) ([]domain.RankingEntry, error)
}

type FriendIDsLister interface {
	ListFriendIDs(ctx context.Context, userID string) ([]string, error)
}

type RankingProfilesStore interface {
	GetProfiles(ctx context.Context, userIDs []string) (map[string]domain.CareerProfile, error)
}

type RankingMatchesStore interface {
	MatchesForUsers(ctx context.Context, userIDs []string, from, to time.Time) (map[string][]domain.Match, error)
}

type RankingUsersStore interface {
	GetUsersByID(ctx context.Context, ids []string) (map[string]domain.User, error)
}

type RankingService struct {
	Rankings       GlobalRankingStore
	Friends        FriendIDsLister
	Profiles       RankingProfilesStore
	Matches        RankingMatchesStore
	Users          RankingUsersStore
	Confederations career.Confederations
	Scoring        career.Scoring
	PageSize       int
}

func (s *RankingService) pageSize() int {
	if s.PageSize <= 0 {
		return DefaultRankingPageSize
	}
	return s.PageSize
}

// Global returns one page of the all-time leaderboard, ordered by career
// points. The cursor carries the running row count, so positions keep
// numbering from where the previous page left off.
func (s *RankingService) Global(ctx context.Context, cursor string) (domain.RankingPage, error) {
	var after RankingCursor
	if cursor != "" {
		c, err := DecodeRankingCursor(cursor)
		if err != nil {
			return domain.RankingPage{}, domain.NewValidationError(map[string]string{"cursor": "invalid cursor"})
		}
		after = c
	}

	size := s.pageSize()
	entries, err := s.Rankings.GlobalRankingPage(ctx, after.Points, after.UserID, size)
	if err != nil {
		return domain.RankingPage{}, err
	}
	for i := range entries {
		entries[i].Position = after.Rank + i + 1
	}

	page := domain.RankingPage{Entries: entries, HasMore: len(entries) == size}
	if page.HasMore {
		last := entries[len(entries)-1]
		page.NextCursor = RankingCursor{
			Points: last.TotalPoints,
			UserID: last.UserID,
			Rank:   after.Rank + len(entries),
		}.Encode()
	}
	return page, nil
}

// FriendsForPeriod ranks the caller and their accepted friends over a
// calendar year or month. Totals are recomputed from the stored matches each
// call, replayed against every player's own campaign history, so a match
// scores under the mode it was played in even when campaigns have since
// closed.
func (s *RankingService) FriendsForPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.RankingEntry, error) {
	if period.Year < 1900 || period.Year > 3000 {
		return nil, domain.NewValidationError(map[string]string{"year": "out of range"})
	}
	if period.Month < 0 || period.Month > 12 {
		return nil, domain.NewValidationError(map[string]string{"month": "must be 1-12"})
	}

	friendIDs, err := s.Friends.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := append([]string{userID}, friendIDs...)

	from, to := periodBounds(period)
	profiles, err := s.Profiles.GetProfiles(ctx, ids)
	if err != nil {
		return nil, err
	}
	matchesByUser, err := s.Matches.MatchesForUsers(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.GetUsersByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	cls := career.Classifier{Confederations: s.Confederations, Scoring: s.Scoring}
	entries := make([]domain.RankingEntry, 0, len(ids))
	for _, id := range ids {
		b := cls.BreakdownForPeriod(profiles[id], matchesByUser[id], period)
		entries = append(entries, domain.RankingEntry{
			UserID:      id,
			Name:        displayName(users[id]),
			TotalPoints: b.Total(),
			Breakdown:   b,
		})
	}

	// Stable sort: ties keep the self-then-friends input order, and each row
	// takes its sorted index as position.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalPoints > entries[j].TotalPoints
	})
	for i := range entries {
		entries[i].Position = i + 1
	}
	return entries, nil
}

func periodBounds(p domain.Period) (time.Time, time.Time) {
	if p.Month != 0 {
		from := time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 1, 0)
	}
	from := time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(1, 0, 0)
}

func displayName(u domain.User) string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
