package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/reward"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rewardRepository struct {
	db *database.DB
}

func NewRewardRepository(db *database.DB) reward.RewardRepository {
	return &rewardRepository{db: db}
}

const rewardColumns = `id, name, team, amount, criteria_type, criteria_value, criteria_description,
		tags, is_active, valid_from, valid_until, created_at, updated_at`

func scanReward(row pgx.Row) (reward.Reward, error) {
	var rw reward.Reward
	var team string

	err := row.Scan(
		&rw.ID, &rw.Name, &team, &rw.Amount,
		&rw.Criteria.Type, &rw.Criteria.Value, &rw.Criteria.Description,
		&rw.Tags, &rw.IsActive, &rw.ValidFrom, &rw.ValidUntil,
		&rw.CreatedAt, &rw.UpdatedAt,
	)
	if err != nil {
		return reward.Reward{}, err
	}

	rw.Team = reward.Team(team)
	return rw, nil
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (reward.Reward, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf("SELECT %s FROM rewards WHERE id = $1", rewardColumns)

	rw, err := scanReward(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return reward.Reward{}, reward.ErrRewardNotFound
		}
		return reward.Reward{}, fmt.Errorf("failed to get reward: %w", err)
	}

	return rw, nil
}

func (r *rewardRepository) List(ctx context.Context, activeOnly bool) ([]reward.Reward, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf("SELECT %s FROM rewards", rewardColumns)
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []reward.Reward
	for rows.Next() {
		rw, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward: %w", err)
		}
		rewards = append(rewards, rw)
	}

	return rewards, nil
}

type awardRepository struct {
	db *database.DB
}

func NewAwardRepository(db *database.DB) reward.AwardRepository {
	return &awardRepository{db: db}
}

func (r *awardRepository) ExistsInRange(ctx context.Context, candidateID string, category staff.Category, rewardID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM reward_awards
			WHERE candidate_id = $1 AND candidate_category = $2 AND reward_id = $3
			  AND paid_at >= $4 AND paid_at < $5
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, candidateID, string(category), rewardID, from, to).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existing award: %w", err)
	}

	return exists, nil
}

func (r *awardRepository) Create(ctx context.Context, award reward.Award) (reward.Award, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reward_awards (
			id, candidate_id, candidate_category, reward_id, amount, reason, status, created_by, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		award.ID, award.CandidateID, string(award.Category), award.RewardID,
		award.Amount, award.Reason, string(award.Status), award.CreatedBy, award.PaidAt,
	).Scan(&award.CreatedAt)
	if err != nil {
		return reward.Award{}, fmt.Errorf("failed to create award: %w", err)
	}

	return award, nil
}

func (r *awardRepository) ListByReward(ctx context.Context, rewardID string) ([]reward.Award, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, candidate_id, candidate_category, reward_id, amount, reason, status, created_by, paid_at, created_at
		FROM reward_awards
		WHERE reward_id = $1
		ORDER BY paid_at DESC
	`

	rows, err := q.Query(ctx, query, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list awards: %w", err)
	}
	defer rows.Close()

	var awards []reward.Award
	for rows.Next() {
		var a reward.Award
		var category, status string
		if err := rows.Scan(
			&a.ID, &a.CandidateID, &category, &a.RewardID,
			&a.Amount, &a.Reason, &status, &a.CreatedBy, &a.PaidAt, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan award: %w", err)
		}
		a.Category = staff.Category(category)
		a.Status = reward.AwardStatus(status)
		awards = append(awards, a)
	}

	return awards, nil
}
