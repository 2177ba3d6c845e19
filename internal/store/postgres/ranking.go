package postgres

import (
	"context"
	"fmt"

	"FootyCareerwebserver/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RankingStore struct {
	pool *pgxpool.Pool
}

func NewRankingStore(pool *pgxpool.Pool) *RankingStore {
	return &RankingStore{pool: pool}
}

// GlobalRankingPage walks the leaderboard keyset-style on
// (career_points DESC, user_id ASC), so a page stays stable while rows
// above it change. An empty afterUserID means the first page. Positions are
// assigned by the caller, which tracks the running count in its cursor.
func (s *RankingStore) GlobalRankingPage(ctx context.Context, afterPoints int, afterUserID string, limit int) ([]domain.RankingEntry, error) {
	const base = `
		SELECT p.user_id, u.username, u.display_name,
		       p.career_points, p.regular_points, p.qualifiers_points, p.world_cup_points
		FROM career_profiles p
		JOIN users u ON u.id = p.user_id
		WHERE u.status = 'active'
	`

	q := base + `
		ORDER BY p.career_points DESC, p.user_id ASC
		LIMIT $1
	`
	args := []any{limit}
	if afterUserID != "" {
		q = base + `
			AND (p.career_points < $2 OR (p.career_points = $2 AND p.user_id > $3::uuid))
			ORDER BY p.career_points DESC, p.user_id ASC
			LIMIT $1
		`
		args = append(args, afterPoints, afterUserID)
	}

	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("global ranking page: %w", err)
	}
	defer rows.Close()

	var out []domain.RankingEntry
	for rows.Next() {
		var (
			userUUID    pgtype.UUID
			username    string
			displayText pgtype.Text
			e           domain.RankingEntry
		)
		err := rows.Scan(
			&userUUID,
			&username,
			&displayText,
			&e.TotalPoints,
			&e.Breakdown.Regular,
			&e.Breakdown.Qualifiers,
			&e.Breakdown.WorldCup,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ranking entry: %w", err)
		}
		e.UserID = uuidOrEmpty(userUUID)
		e.Name = username
		if d := textOrEmpty(displayText); d != "" {
			e.Name = d
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("global ranking page: %w", err)
	}
	return out, nil
}
