package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"FootyCareerwebserver/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ProfilesStore persists career profiles. Campaign state is stored as jsonb:
// the active campaign as one document, history as append-only arrays. Point
// totals live in plain integer columns so the global ranking can index them.
type ProfilesStore struct {
	pool *pgxpool.Pool
}

func NewProfilesStore(pool *pgxpool.Pool) *ProfilesStore {
	return &ProfilesStore{pool: pool}
}

const profileColumns = `
	user_id, career_points, level, xp,
	regular_points, qualifiers_points, world_cup_points,
	active_campaign, qualifiers_history, world_cup_history, updated_at
`

func (s *ProfilesStore) GetProfile(ctx context.Context, userID string) (domain.CareerProfile, error) {
	q := `
		SELECT ` + profileColumns + `
		FROM career_profiles
		WHERE user_id = $1
	`

	p, err := scanProfileRow(s.pool.QueryRow(ctx, q, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CareerProfile{}, domain.ErrNotFound
		}
		return domain.CareerProfile{}, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *ProfilesStore) GetProfiles(ctx context.Context, userIDs []string) (map[string]domain.CareerProfile, error) {
	q := `
		SELECT ` + profileColumns + `
		FROM career_profiles
		WHERE user_id = ANY($1)
	`

	rows, err := s.pool.Query(ctx, q, userIDs)
	if err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.CareerProfile, len(userIDs))
	for rows.Next() {
		p, err := scanProfileRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out[p.UserID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get profiles: %w", err)
	}
	return out, nil
}

// UpdateProfile applies a partial write in a single statement. Nil fields
// keep their stored values; history entries are concatenated onto the jsonb
// arrays.
func (s *ProfilesStore) UpdateProfile(ctx context.Context, userID string, upd domain.CareerProfileUpdate) error {
	sets := []string{"updated_at = now()"}
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if upd.CareerPoints != nil {
		sets = append(sets, "career_points = "+arg(*upd.CareerPoints))
	}
	if upd.Level != nil {
		sets = append(sets, "level = "+arg(*upd.Level))
	}
	if upd.XP != nil {
		sets = append(sets, "xp = "+arg(*upd.XP))
	}
	if upd.Breakdown != nil {
		sets = append(sets,
			"regular_points = "+arg(upd.Breakdown.Regular),
			"qualifiers_points = "+arg(upd.Breakdown.Qualifiers),
			"world_cup_points = "+arg(upd.Breakdown.WorldCup),
		)
	}
	if upd.Active != nil {
		raw, err := json.Marshal(upd.Active)
		if err != nil {
			return fmt.Errorf("encode active campaign: %w", err)
		}
		sets = append(sets, "active_campaign = "+arg(raw)+"::jsonb")
	}
	if upd.AppendQualifiers != nil {
		raw, err := json.Marshal(upd.AppendQualifiers)
		if err != nil {
			return fmt.Errorf("encode qualifiers campaign: %w", err)
		}
		sets = append(sets, "qualifiers_history = qualifiers_history || "+arg(raw)+"::jsonb")
	}
	if upd.AppendWorldCup != nil {
		raw, err := json.Marshal(upd.AppendWorldCup)
		if err != nil {
			return fmt.Errorf("encode world cup campaign: %w", err)
		}
		sets = append(sets, "world_cup_history = world_cup_history || "+arg(raw)+"::jsonb")
	}

	q := "UPDATE career_profiles SET " + strings.Join(sets, ", ") + " WHERE user_id = $1"
	ct, err := s.pool.Exec(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProfileRow(row pgx.Row) (domain.CareerProfile, error) {
	var (
		p         domain.CareerProfile
		userUUID  pgtype.UUID
		activeRaw []byte
		qualsRaw  []byte
		worldsRaw []byte
	)
	err := row.Scan(
		&userUUID,
		&p.CareerPoints,
		&p.Level,
		&p.XP,
		&p.Breakdown.Regular,
		&p.Breakdown.Qualifiers,
		&p.Breakdown.WorldCup,
		&activeRaw,
		&qualsRaw,
		&worldsRaw,
		&p.UpdatedAt,
	)
	if err != nil {
		return domain.CareerProfile{}, err
	}
	p.UserID = uuidOrEmpty(userUUID)

	if len(activeRaw) > 0 {
		if err := json.Unmarshal(activeRaw, &p.Active); err != nil {
			return domain.CareerProfile{}, fmt.Errorf("decode active campaign: %w", err)
		}
	}
	if p.Active.Kind == "" {
		p.Active = domain.NoCampaign()
	}
	if len(qualsRaw) > 0 {
		if err := json.Unmarshal(qualsRaw, &p.QualifiersHistory); err != nil {
			return domain.CareerProfile{}, fmt.Errorf("decode qualifiers history: %w", err)
		}
	}
	if len(worldsRaw) > 0 {
		if err := json.Unmarshal(worldsRaw, &p.WorldCupHistory); err != nil {
			return domain.CareerProfile{}, fmt.Errorf("decode world cup history: %w", err)
		}
	}
	return p, nil
}
