package postgres

import (
	"context"
	"fmt"
	"time"

	"FootyCareerwebserver/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MatchesStore struct {
	pool *pgxpool.Pool
}

func NewMatchesStore(pool *pgxpool.Pool) *MatchesStore {
	return &MatchesStore{pool: pool}
}

// CreateMatch inserts a result row. Rows are never updated or deleted; the
// career engine treats the table as an append-only log.
func (s *MatchesStore) CreateMatch(ctx context.Context, m domain.Match) error {
	const q = `
		INSERT INTO matches (id, user_id, played_on, result, goals, assists, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var playedOn any
	if !m.Date.IsZero() {
		playedOn = m.Date
	}
	_, err := s.pool.Exec(ctx, q, m.ID, m.UserID, playedOn, string(m.Result), m.Goals, m.Assists, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create match: %w", err)
	}
	return nil
}

// ListMatchesForUser returns the newest matches first. Matches with no
// played_on date sort last.
func (s *MatchesStore) ListMatchesForUser(ctx context.Context, userID string, limit int) ([]domain.Match, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	const q = `
		SELECT id, user_id, played_on, result, goals, assists, created_at
		FROM matches
		WHERE user_id = $1
		ORDER BY played_on DESC NULLS LAST, created_at DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, q, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []domain.Match
	for rows.Next() {
		m, err := scanMatchRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return out, nil
}

// MatchesForUsers loads every match played inside [from, to) for the given
// users, grouped by owner. The friends ranking replays these per caller.
func (s *MatchesStore) MatchesForUsers(ctx context.Context, userIDs []string, from, to time.Time) (map[string][]domain.Match, error) {
	const q = `
		SELECT id, user_id, played_on, result, goals, assists, created_at
		FROM matches
		WHERE user_id = ANY($1)
		  AND played_on >= $2 AND played_on < $3
		ORDER BY played_on ASC, created_at ASC
	`

	rows, err := s.pool.Query(ctx, q, userIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("matches for users: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.Match, len(userIDs))
	for rows.Next() {
		m, err := scanMatchRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		out[m.UserID] = append(out[m.UserID], m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("matches for users: %w", err)
	}
	return out, nil
}

func scanMatchRow(scan func(dest ...any) error) (domain.Match, error) {
	var (
		m        domain.Match
		idUUID   pgtype.UUID
		userUUID pgtype.UUID
		playedTS pgtype.Timestamptz
		result   string
	)
	if err := scan(&idUUID, &userUUID, &playedTS, &result, &m.Goals, &m.Assists, &m.CreatedAt); err != nil {
		return domain.Match{}, err
	}
	m.ID = uuidOrEmpty(idUUID)
	m.UserID = uuidOrEmpty(userUUID)
	if playedTS.Valid {
		m.Date = playedTS.Time
	}
	m.Result = domain.MatchResult(result)
	return m, nil
}
