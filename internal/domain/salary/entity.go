package salary

import (
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// PaymentMethod enum
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodUPI, PaymentMethodCheque:
		return true
	}
	return false
}

// Record is one member's salary for one calendar month. Exactly one
// record exists per (MemberID, Category, Month); regeneration updates
// in place.
type Record struct {
	ID            string
	MemberID      string
	Category      staff.Category
	Month         Month
	MemberName    string
	Department    string
	Role          string
	FixedSalary   decimal.Decimal
	PaymentDate   time.Time
	PaymentDay    int
	Status        Status
	PaidDate      *time.Time
	PaymentMethod *PaymentMethod
	Remarks       *string
	CreatedBy     string
	UpdatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
