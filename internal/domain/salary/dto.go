package salary

import (
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== GENERATION DTOs ==========

type ProvisionRequest struct {
	MemberID    string          `json:"member_id"`
	Category    string          `json:"category"`
	FixedSalary decimal.Decimal `json:"fixed_salary"`
}

func (r *ProvisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.MemberID == "" {
		errs = append(errs, validator.ValidationError{Field: "member_id", Message: "is required"})
	}
	if !staff.Category(r.Category).Valid() {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "must be 'developer', 'sales' or 'manager'"})
	}
	if r.FixedSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fixed_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type GenerateMonthRequest struct {
	Month string `json:"month"` // "YYYY-MM"
}

func (r *GenerateMonthRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month == "" {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "is required"})
	} else if _, err := ParseMonth(r.Month); err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BatchFailure records one member's failure inside a bulk run without
// aborting the batch.
type BatchFailure struct {
	MemberID string `json:"member_id"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// GenerateResult reports what a generation run did so an operator can
// audit it without reading logs.
type GenerateResult struct {
	Month     string           `json:"month,omitempty"`
	Generated int              `json:"generated"`
	Updated   int              `json:"updated"`
	Skipped   int              `json:"skipped"`
	Total     int              `json:"total"`
	Failed    []BatchFailure   `json:"failed,omitempty"`
	Records   []RecordResponse `json:"records,omitempty"`
}

// ========== STATUS DTOs ==========

type SetStatusRequest struct {
	ID            string  `json:"-"`
	Status        string  `json:"status"`
	PaymentMethod *string `json:"payment_method,omitempty"`
}

func (r *SetStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'pending' or 'paid'"})
	}
	if r.PaymentMethod != nil && !PaymentMethod(*r.PaymentMethod).Valid() {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "must be 'bank_transfer', 'cash', 'upi' or 'cheque'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatusResult carries the updated record plus an optional warning
// when the ledger sync failed but the local transition went through.
type StatusResult struct {
	Record        RecordResponse `json:"record"`
	LedgerWarning string         `json:"ledger_warning,omitempty"`
}

// ========== READ DTOs ==========

type RecordResponse struct {
	ID            string          `json:"id"`
	MemberID      string          `json:"member_id"`
	Category      string          `json:"category"`
	Month         string          `json:"month"`
	MemberName    string          `json:"member_name"`
	Department    string          `json:"department,omitempty"`
	Role          string          `json:"role,omitempty"`
	FixedSalary   decimal.Decimal `json:"fixed_salary"`
	PaymentDate   string          `json:"payment_date"`
	PaymentDay    int             `json:"payment_day"`
	Status        string          `json:"status"`
	PaidDate      *string         `json:"paid_date,omitempty"`
	PaymentMethod *string         `json:"payment_method,omitempty"`
	Remarks       *string         `json:"remarks,omitempty"`
}

type ListFilter struct {
	Month    *string `json:"month,omitempty"`
	Status   *string `json:"status,omitempty"`
	Category *string `json:"category,omitempty"`
	MemberID *string `json:"member_id,omitempty"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

type ListRecordResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}
