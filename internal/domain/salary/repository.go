package salary

import (
	"context"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/shopspring/decimal"
)

// RecordRepository defines data access for salary records. The store
// enforces uniqueness on (member_id, category, month); Create surfaces
// a violation as ErrRecordAlreadyExists so concurrent generation runs
// can treat it as "someone else got there first".
type RecordRepository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	GetByKey(ctx context.Context, memberID string, category staff.Category, month Month) (Record, error)
	Create(ctx context.Context, record Record) (Record, error)

	// UpdateCompensation refreshes salary/payment-date drift on an
	// existing record. Status and paid metadata are never touched.
	UpdateCompensation(ctx context.Context, id string, fixedSalary decimal.Decimal, paymentDate time.Time, paymentDay int, updatedBy string) error

	UpdateStatus(ctx context.Context, id string, status Status, paidDate *time.Time, paymentMethod *PaymentMethod, updatedBy string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]Record, int64, error)
}

// SalaryService is the surface exposed to the administrative layer.
type SalaryService interface {
	Provision(ctx context.Context, req ProvisionRequest) (GenerateResult, error)
	GenerateMonth(ctx context.Context, req GenerateMonthRequest) (GenerateResult, error)
	SetStatus(ctx context.Context, req SetStatusRequest) (StatusResult, error)
	Delete(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter ListFilter) (ListRecordResponse, error)
}
