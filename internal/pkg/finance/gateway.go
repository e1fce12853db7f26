package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SourceType tags a ledger transaction with the kind of record that
// caused it.
type SourceType string

const (
	SourceTypeSalary SourceType = "salary"
	SourceTypeAward  SourceType = "award"
)

// SourceTag correlates a ledger transaction back to the salary record
// or award that caused it.
type SourceTag struct {
	Type SourceType `json:"source_type"`
	ID   string     `json:"source_id"`
}

type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	TransactionDate time.Time       `json:"transaction_date"`
	CreatedBy       string          `json:"created_by"`
	SubjectID       string          `json:"subject_id"`
	PaymentMethod   string          `json:"payment_method"`
	Description     string          `json:"description"`
	Source          SourceTag       `json:"source"`

	// CheckDuplicate asks the ledger to suppress the insert when an
	// equivalent transaction already exists for the source tag.
	CheckDuplicate bool `json:"check_duplicate"`
}

type TransactionRef struct {
	ID        string `json:"id"`
	Duplicate bool   `json:"duplicate"`
}

// Gateway is the narrow contract this engine consumes from the finance
// ledger service. Cancelling a source with no matching transaction is
// a no-op, not an error.
type Gateway interface {
	CreateOutgoing(ctx context.Context, req CreateTransactionRequest) (TransactionRef, error)
	CancelForSource(ctx context.Context, source SourceTag, reason string) error
}
