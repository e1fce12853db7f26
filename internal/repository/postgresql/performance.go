package postgresql

import (
	"context"
	"fmt"

	"github.com/devxankit/appzeto-payroll/internal/domain/performance"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type performanceProvider struct {
	db *database.DB
}

func NewPerformanceProvider(db *database.DB) performance.Provider {
	return &performanceProvider{db: db}
}

// RefreshCompletionRate recomputes a developer's completion rate from
// their assigned tasks and stores it back, so dashboards and the
// evaluator read the same number.
func (p *performanceProvider) RefreshCompletionRate(ctx context.Context, developerID string) (float64, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		WITH stats AS (
			SELECT
				COUNT(*) FILTER (WHERE status <> 'cancelled') AS total,
				COUNT(*) FILTER (WHERE status = 'completed') AS completed
			FROM tasks
			WHERE assigned_to = $1
		)
		UPDATE developers d
		SET completion_rate = CASE
				WHEN stats.total = 0 THEN 0
				ELSE ROUND(stats.completed::numeric / stats.total * 100)
			END,
			updated_at = NOW()
		FROM stats
		WHERE d.id = $1
		RETURNING d.completion_rate
	`

	var rate float64
	if err := q.QueryRow(ctx, query, developerID).Scan(&rate); err != nil {
		if err == pgx.ErrNoRows {
			return 0, staff.ErrMemberNotFound
		}
		return 0, fmt.Errorf("failed to refresh completion rate: %w", err)
	}

	return rate, nil
}

func (p *performanceProvider) ManagedProjects(ctx context.Context, managerID string) ([]performance.Project, error) {
	q := GetQuerier(ctx, p.db)

	rows, err := q.Query(ctx, "SELECT id, name FROM projects WHERE manager_id = $1", managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list managed projects: %w", err)
	}
	defer rows.Close()

	var projects []performance.Project
	for rows.Next() {
		var project performance.Project
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, project)
	}

	return projects, nil
}

func (p *performanceProvider) ProjectWorkItems(ctx context.Context, projectID string) ([]performance.WorkItem, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, status = 'completed'
		FROM tasks
		WHERE project_id = $1 AND status <> 'cancelled'
	`

	rows, err := q.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list work items: %w", err)
	}
	defer rows.Close()

	var items []performance.WorkItem
	for rows.Next() {
		var item performance.WorkItem
		if err := rows.Scan(&item.ID, &item.Completed); err != nil {
			return nil, fmt.Errorf("failed to scan work item: %w", err)
		}
		items = append(items, item)
	}

	return items, nil
}
