package postgresql

import (
	"context"
	"fmt"

	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type memberRepository struct {
	db *database.DB
}

func NewMemberRepository(db *database.DB) staff.MemberRepository {
	return &memberRepository{db: db}
}

// tableForCategory maps each compensable category to its collection.
// The switch is exhaustive; a new category must be added here before
// anything can read it.
func tableForCategory(category staff.Category) (string, error) {
	switch category {
	case staff.CategoryDeveloper:
		return "developers", nil
	case staff.CategorySales:
		return "sales_members", nil
	case staff.CategoryManager:
		return "project_managers", nil
	default:
		return "", staff.ErrUnknownCategory
	}
}

const memberColumns = "id, name, department, role, joining_date, fixed_salary, is_active, created_at, updated_at"

func scanMember(row pgx.Row, category staff.Category) (staff.Member, error) {
	var m staff.Member
	err := row.Scan(
		&m.ID, &m.Name, &m.Department, &m.Role, &m.JoiningDate,
		&m.FixedSalary, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return staff.Member{}, err
	}
	m.Category = category
	return m, nil
}

func (r *memberRepository) GetByID(ctx context.Context, id string, category staff.Category) (staff.Member, error) {
	table, err := tableForCategory(category)
	if err != nil {
		return staff.Member{}, err
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", memberColumns, table)

	member, err := scanMember(q.QueryRow(ctx, query, id), category)
	if err != nil {
		if err == pgx.ErrNoRows {
			return staff.Member{}, staff.ErrMemberNotFound
		}
		return staff.Member{}, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

func (r *memberRepository) GetActiveByCategory(ctx context.Context, category staff.Category) ([]staff.Member, error) {
	table, err := tableForCategory(category)
	if err != nil {
		return nil, err
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_active = true ORDER BY name", memberColumns, table)

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []staff.Member
	for rows.Next() {
		member, err := scanMember(rows, category)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, member)
	}

	return members, nil
}

func (r *memberRepository) GetActiveCompensable(ctx context.Context) ([]staff.Member, error) {
	q := GetQuerier(ctx, r.db)

	var members []staff.Member
	for _, category := range staff.AllCategories() {
		table, err := tableForCategory(category)
		if err != nil {
			return nil, err
		}

		query := fmt.Sprintf(
			"SELECT %s FROM %s WHERE is_active = true AND fixed_salary > 0 ORDER BY name",
			memberColumns, table,
		)
		rows, err := q.Query(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to list compensable members from %s: %w", table, err)
		}

		for rows.Next() {
			member, err := scanMember(rows, category)
			if err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan member: %w", err)
			}
			members = append(members, member)
		}
		rows.Close()
	}

	return members, nil
}

func (r *memberRepository) UpdateFixedSalary(ctx context.Context, id string, category staff.Category, amount decimal.Decimal) error {
	table, err := tableForCategory(category)
	if err != nil {
		return err
	}

	q := GetQuerier(ctx, r.db)
	query := fmt.Sprintf("UPDATE %s SET fixed_salary = $1, updated_at = NOW() WHERE id = $2", table)

	tag, err := q.Exec(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("failed to update fixed salary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return staff.ErrMemberNotFound
	}

	return nil
}
