package staff

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category discriminates the three compensable member collections.
// Switches over Category must cover every constant and reject anything
// else with ErrUnknownCategory; adding a category starts here.
type Category string

const (
	CategoryDeveloper Category = "developer"
	CategorySales     Category = "sales"
	CategoryManager   Category = "manager"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryDeveloper, CategorySales, CategoryManager:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// AllCategories lists every compensable category, in generation order.
func AllCategories() []Category {
	return []Category{CategoryDeveloper, CategorySales, CategoryManager}
}

// Member is the common compensable view over the three collections.
// The (ID, Category) pair is the identity everywhere a key is formed.
type Member struct {
	ID          string
	Category    Category
	Name        string
	Department  string
	Role        string
	JoiningDate time.Time
	FixedSalary decimal.Decimal
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
