package reward

import (
	"context"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
)

// RewardRepository defines data access for reward policies.
type RewardRepository interface {
	GetByID(ctx context.Context, id string) (Reward, error)
	List(ctx context.Context, activeOnly bool) ([]Reward, error)
}

// AwardRepository defines data access for award records. Awards are
// write-once: created by the evaluator, never mutated or deleted.
type AwardRepository interface {
	// ExistsInRange reports whether an award for (candidate, reward)
	// was paid inside [from, to). This is the monthly dedup check.
	ExistsInRange(ctx context.Context, candidateID string, category staff.Category, rewardID string, from, to time.Time) (bool, error)

	Create(ctx context.Context, award Award) (Award, error)
	ListByReward(ctx context.Context, rewardID string) ([]Award, error)
}

// RewardService is the surface exposed to the administrative layer.
type RewardService interface {
	Evaluate(ctx context.Context, rewardID string) (EvaluateResult, error)
	GetReward(ctx context.Context, id string) (RewardResponse, error)
	ListRewards(ctx context.Context, activeOnly bool) ([]RewardResponse, error)
	ListAwards(ctx context.Context, rewardID string) ([]AwardResponse, error)
}
