package reward

import (
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// Team scopes a reward to one track. The evaluator only has authority
// over dev and pm rewards; sales rewards belong to another subsystem.
type Team string

const (
	TeamDev   Team = "dev"
	TeamPM    Team = "pm"
	TeamSales Team = "sales"
)

// Criteria is the eligibility rule attached to a reward. Value is kept
// as text and parsed at evaluation time; it must be a completion
// percentage in [0, 100].
type Criteria struct {
	Type        string
	Value       string
	Description string
}

// Reward is a policy object, not a per-month record.
type Reward struct {
	ID         string
	Name       string
	Team       Team
	Amount     decimal.Decimal
	Criteria   Criteria
	Tags       []string
	IsActive   bool
	ValidFrom  *time.Time
	ValidUntil *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AwardStatus enum
type AwardStatus string

const (
	// AwardStatusPaid is the default: reward payout is synchronous with
	// eligibility, unlike salary which has an explicit pending stage.
	AwardStatusPaid AwardStatus = "paid"
)

// Award is one payout of a reward to one candidate. At most one exists
// per (candidate, reward) with PaidAt inside a given calendar month;
// the dedup is a range check before insert, not a stored constraint.
type Award struct {
	ID          string
	CandidateID string
	Category    staff.Category
	RewardID    string
	Amount      decimal.Decimal
	Reason      string
	Status      AwardStatus
	CreatedBy   string
	PaidAt      time.Time
	CreatedAt   time.Time
}
