package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"FootyCareerwebserver/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FriendshipsStore struct {
	pool *pgxpool.Pool
}

func NewFriendshipsStore(pool *pgxpool.Pool) *FriendshipsStore {
	return &FriendshipsStore{pool: pool}
}

func (s *FriendshipsStore) CreateRequest(ctx context.Context, requesterID, addresseeID string) (string, time.Time, error) {
	const q = `
		INSERT INTO friendships (requester_id, addressee_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, created_at
	`

	var (
		idUUID    pgtype.UUID
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx, q, requesterID, addresseeID).Scan(&idUUID, &createdAt)
	if err != nil {
		var pgerr *pgconn.PgError
		if errors.As(err, &pgerr) && pgerr.Code == "23505" && pgerr.ConstraintName == "friendships_pair_uq" {
			return "", time.Time{}, domain.ErrFriendshipExists
		}
		return "", time.Time{}, fmt.Errorf("create friend request: %w", err)
	}

	return uuidOrEmpty(idUUID), createdAt, nil
}

func (s *FriendshipsStore) Accept(ctx context.Context, requestID, addresseeID string, when time.Time) error {
	const q = `
		UPDATE friendships
		SET status = 'accepted', responded_at = $3
		WHERE id = $1 AND addressee_id = $2 AND status = 'pending'
	`
	ct, err := s.pool.Exec(ctx, q, requestID, addresseeID, when)
	if err != nil {
		return fmt.Errorf("accept friend request: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *FriendshipsStore) Decline(ctx context.Context, requestID, addresseeID string, when time.Time) error {
	const q = `
		UPDATE friendships
		SET status = 'declined', responded_at = $3
		WHERE id = $1 AND addressee_id = $2 AND status = 'pending'
	`
	ct, err := s.pool.Exec(ctx, q, requestID, addresseeID, when)
	if err != nil {
		return fmt.Errorf("decline friend request: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *FriendshipsStore) ListOverview(ctx context.Context, userID string) (domain.FriendsOverview, error) {
	friends, err := s.listFriends(ctx, userID)
	if err != nil {
		return domain.FriendsOverview{}, err
	}
	incoming, err := s.listRequests(ctx, userID, true)
	if err != nil {
		return domain.FriendsOverview{}, err
	}
	outgoing, err := s.listRequests(ctx, userID, false)
	if err != nil {
		return domain.FriendsOverview{}, err
	}

	return domain.FriendsOverview{
		Friends:  friends,
		Incoming: incoming,
		Outgoing: outgoing,
	}, nil
}

// ListFriendIDs returns the ids of accepted friends, used by the friends
// ranking to scope the recompute.
func (s *FriendshipsStore) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	const q = `
		SELECT CASE WHEN f.requester_id = $1 THEN f.addressee_id ELSE f.requester_id END
		FROM friendships f
		WHERE f.status = 'accepted' AND (f.requester_id = $1 OR f.addressee_id = $1)
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var idUUID pgtype.UUID
		if err := rows.Scan(&idUUID); err != nil {
			return nil, fmt.Errorf("scan friend id: %w", err)
		}
		out = append(out, uuidOrEmpty(idUUID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}
	return out, nil
}

// listFriends joins career profiles so the overview can show each friend's
// career points next to their name.
func (s *FriendshipsStore) listFriends(ctx context.Context, userID string) ([]domain.UserSummary, error) {
	const q = `
		SELECT u.id, u.username, u.display_name, p.career_points
		FROM friendships f
		JOIN users u ON u.id = CASE
			WHEN f.requester_id = $1 THEN f.addressee_id
			ELSE f.requester_id
		END
		LEFT JOIN career_profiles p ON p.user_id = u.id
		WHERE f.status = 'accepted' AND (f.requester_id = $1 OR f.addressee_id = $1)
		ORDER BY u.username ASC
	`

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
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
			return nil, fmt.Errorf("scan friend: %w", err)
		}
		out = append(out, domain.UserSummary{
			ID:           uuidOrEmpty(idUUID),
			Username:     username,
			DisplayName:  textOrEmpty(displayText),
			CareerPoints: int4Ptr(points),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return out, nil
}

func (s *FriendshipsStore) listRequests(ctx context.Context, userID string, incoming bool) ([]domain.FriendRequest, error) {
	q := `
		SELECT f.id, f.created_at, u.id, u.username, u.display_name
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.status = 'pending' AND f.addressee_id = $1
		ORDER BY f.created_at DESC
	`
	if !incoming {
		q = `
			SELECT f.id, f.created_at, u.id, u.username, u.display_name
			FROM friendships f
			JOIN users u ON u.id = f.addressee_id
			WHERE f.status = 'pending' AND f.requester_id = $1
			ORDER BY f.created_at DESC
		`
	}

	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	defer rows.Close()

	var out []domain.FriendRequest
	for rows.Next() {
		var (
			reqIDUUID   pgtype.UUID
			createdAt   time.Time
			peerIDUUID  pgtype.UUID
			peerName    string
			displayText pgtype.Text
		)
		if err := rows.Scan(&reqIDUUID, &createdAt, &peerIDUUID, &peerName, &displayText); err != nil {
			return nil, fmt.Errorf("scan friend request: %w", err)
		}
		out = append(out, domain.FriendRequest{
			ID:        uuidOrEmpty(reqIDUUID),
			User:      domain.UserSummary{ID: uuidOrEmpty(peerIDUUID), Username: peerName, DisplayName: textOrEmpty(displayText)},
			CreatedAt: createdAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list friend requests: %w", err)
	}
	return out, nil
}
