package reward

import "github.com/shopspring/decimal"

// EvaluationFailure records one candidate's failure inside an
// evaluation run without aborting the batch.
type EvaluationFailure struct {
	CandidateID string `json:"candidate_id"`
	Category    string `json:"category"`
	Reason      string `json:"reason"`
}

// EvaluateResult reports what an evaluation run did, partitioned by
// candidate category. Re-running mid-month only awards newly-eligible
// candidates; everyone already awarded lands in SkippedExisting.
type EvaluateResult struct {
	RewardID        string              `json:"reward_id"`
	Month           string              `json:"month"`
	DevAwarded      int                 `json:"dev_awarded"`
	ManagerAwarded  int                 `json:"manager_awarded"`
	SkippedExisting int                 `json:"skipped_existing"`
	SkippedBelow    int                 `json:"skipped_below_threshold"`
	Failed          []EvaluationFailure `json:"failed,omitempty"`
}

type RewardResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Team       string          `json:"team"`
	Amount     decimal.Decimal `json:"amount"`
	Criteria   CriteriaDTO     `json:"criteria"`
	Tags       []string        `json:"tags,omitempty"`
	IsActive   bool            `json:"is_active"`
	ValidFrom  *string         `json:"valid_from,omitempty"`
	ValidUntil *string         `json:"valid_until,omitempty"`
}

type CriteriaDTO struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

type AwardResponse struct {
	ID          string          `json:"id"`
	CandidateID string          `json:"candidate_id"`
	Category    string          `json:"category"`
	RewardID    string          `json:"reward_id"`
	Amount      decimal.Decimal `json:"amount"`
	Reason      string          `json:"reason"`
	Status      string          `json:"status"`
	PaidAt      string          `json:"paid_at"`
}
