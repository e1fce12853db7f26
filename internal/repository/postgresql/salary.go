package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/devxankit/appzeto-payroll/internal/domain/salary"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.RecordRepository {
	return &salaryRepository{db: db}
}

const recordColumns = `id, member_id, member_category, period_year, period_month,
		member_name, department, role, fixed_salary, payment_date, payment_day,
		status, paid_date, payment_method, remarks, created_by, updated_by,
		created_at, updated_at`

func scanRecord(row pgx.Row) (salary.Record, error) {
	var r salary.Record
	var periodYear, periodMonth int
	var category, status string
	var paymentMethod *string

	err := row.Scan(
		&r.ID, &r.MemberID, &category, &periodYear, &periodMonth,
		&r.MemberName, &r.Department, &r.Role, &r.FixedSalary, &r.PaymentDate, &r.PaymentDay,
		&status, &r.PaidDate, &paymentMethod, &r.Remarks, &r.CreatedBy, &r.UpdatedBy,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return salary.Record{}, err
	}

	r.Category = staff.Category(category)
	r.Month = salary.Month{Year: periodYear, Month: time.Month(periodMonth)}
	r.Status = salary.Status(status)
	if paymentMethod != nil {
		method := salary.PaymentMethod(*paymentMethod)
		r.PaymentMethod = &method
	}
	return r, nil
}

func (r *salaryRepository) GetByID(ctx context.Context, id string) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf("SELECT %s FROM salary_records WHERE id = $1", recordColumns)

	record, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) GetByKey(ctx context.Context, memberID string, category staff.Category, month salary.Month) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s FROM salary_records
		WHERE member_id = $1 AND member_category = $2 AND period_year = $3 AND period_month = $4
	`, recordColumns)

	record, err := scanRecord(q.QueryRow(ctx, query, memberID, string(category), month.Year, int(month.Month)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Record{}, salary.ErrRecordNotFound
		}
		return salary.Record{}, fmt.Errorf("failed to get salary record by key: %w", err)
	}

	return record, nil
}

func (r *salaryRepository) Create(ctx context.Context, record salary.Record) (salary.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO salary_records (
			id, member_id, member_category, period_year, period_month,
			member_name, department, role, fixed_salary, payment_date, payment_day,
			status, remarks, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING %s
	`, recordColumns)

	created, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.MemberID, string(record.Category), record.Month.Year, int(record.Month.Month),
		record.MemberName, record.Department, record.Role, record.FixedSalary, record.PaymentDate, record.PaymentDay,
		string(record.Status), record.Remarks, record.CreatedBy, record.UpdatedBy,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_records_member_period") {
			return salary.Record{}, salary.ErrRecordAlreadyExists
		}
		return salary.Record{}, fmt.Errorf("failed to create salary record: %w", err)
	}

	return created, nil
}

func (r *salaryRepository) UpdateCompensation(ctx context.Context, id string, fixedSalary decimal.Decimal, paymentDate time.Time, paymentDay int, updatedBy string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salary_records
		SET fixed_salary = $1, payment_date = $2, payment_day = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, fixedSalary, paymentDate, paymentDay, updatedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update salary compensation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrRecordNotFound
	}

	return nil
}

func (r *salaryRepository) UpdateStatus(ctx context.Context, id string, status salary.Status, paidDate *time.Time, paymentMethod *salary.PaymentMethod, updatedBy string) error {
	q := GetQuerier(ctx, r.db)

	var methodStr *string
	if paymentMethod != nil {
		str := string(*paymentMethod)
		methodStr = &str
	}

	query := `
		UPDATE salary_records
		SET status = $1, paid_date = $2, payment_method = $3, updated_by = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query, string(status), paidDate, methodStr, updatedBy, id)
	if err != nil {
		return fmt.Errorf("failed to update salary status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrRecordNotFound
	}

	return nil
}

func (r *salaryRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, "DELETE FROM salary_records WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete salary record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salary.ErrRecordNotFound
	}

	return nil
}

func (r *salaryRepository) List(ctx context.Context, filter salary.ListFilter) ([]salary.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.Month != nil {
		month, err := salary.ParseMonth(*filter.Month)
		if err != nil {
			return nil, 0, err
		}
		conditions = append(conditions, fmt.Sprintf("period_year = $%d AND period_month = $%d", argIdx, argIdx+1))
		args = append(args, month.Year, int(month.Month))
		argIdx += 2
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("member_category = $%d", argIdx))
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.MemberID != nil {
		conditions = append(conditions, fmt.Sprintf("member_id = $%d", argIdx))
		args = append(args, *filter.MemberID)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var totalCount int64
	countQuery := "SELECT COUNT(*) FROM salary_records WHERE " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM salary_records
		WHERE %s
		ORDER BY period_year DESC, period_month DESC, member_name
		LIMIT $%d OFFSET $%d
	`, recordColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	var records []salary.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, record)
	}

	return records, totalCount, nil
}
