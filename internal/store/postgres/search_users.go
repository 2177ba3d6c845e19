package postgres

import (
	"context"
	"fmt"
	"strings"

	"FootyCareerwebserver/internal/domain"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserSearchStore struct {
	pool *pgxpool.Pool
}

func NewUserSearchStore(pool *pgxpool.Pool) *UserSearchStore {
	return &UserSearchStore{pool: pool}
}

// SearchUsers matches username, display name, or email, and carries each
// hit's career points for the add-friend screen. Accepted friends are left
// out; the search exists to find new ones.
func (s *UserSearchStore) SearchUsers(ctx context.Context, q string, limit int, excludeUserID string) ([]domain.UserSummary, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.UserSummary{}, nil
	}

	like := "%" + q + "%"
	const query = `
		SELECT u.id, u.username, u.display_name, p.career_points
		FROM users u
		LEFT JOIN career_profiles p ON p.user_id = u.id
		WHERE u.status = 'active'
		  AND u.id <> $3
		  AND (u.username ILIKE $1 OR u.display_name ILIKE $1 OR u.email ILIKE $1)
		  AND NOT EXISTS (
			SELECT 1 FROM friendships f
			WHERE f.status = 'accepted'
			  AND ((f.requester_id = $3 AND f.addressee_id = u.id)
			    OR (f.addressee_id = $3 AND f.requester_id = u.id))
		  )
		ORDER BY u.username ASC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, like, limit, excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var out []domain.UserSummary
	for rows.Next() {
		var (
			idUUID      pgtype.UUID
			username    string
			displayText pgtype.Text
			points      pgtype.Int4
		)
		if err := rows.Scan(&idUUID, &username, &displayText, &points); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, domain.UserSummary{
			ID:           uuidOrEmpty(idUUID),
			Username:     username,
			DisplayName:  textOrEmpty(displayText),
			CareerPoints: int4Ptr(points),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	return out, nil
}
