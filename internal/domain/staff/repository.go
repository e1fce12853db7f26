package staff

import (
	"context"

	"github.com/shopspring/decimal"
)

// MemberRepository defines data access over the three compensable
// collections. Implementations dispatch on Category explicitly.
type MemberRepository interface {
	GetByID(ctx context.Context, id string, category Category) (Member, error)
	GetActiveByCategory(ctx context.Context, category Category) ([]Member, error)

	// GetActiveCompensable returns active members across all categories
	// whose fixed salary is strictly positive.
	GetActiveCompensable(ctx context.Context) ([]Member, error)

	UpdateFixedSalary(ctx context.Context, id string, category Category, amount decimal.Decimal) error
}
