package performance

import "context"

// Project is a unit of work a manager is responsible for.
type Project struct {
	ID   string
	Name string
}

// WorkItem is a non-cancelled task inside a project.
type WorkItem struct {
	ID        string
	Completed bool
}

// Provider exposes the completion statistics the reward evaluator
// reads. Implementations recompute on demand; nothing is cached
// between evaluation runs.
type Provider interface {
	// RefreshCompletionRate recomputes and returns a developer's
	// rolling completion rate as a percentage in [0, 100].
	RefreshCompletionRate(ctx context.Context, developerID string) (float64, error)

	// ManagedProjects returns the projects a manager currently runs.
	// Assignments are read at evaluation time, not from a historical
	// snapshot of the reward month.
	ManagedProjects(ctx context.Context, managerID string) ([]Project, error)

	// ProjectWorkItems returns the non-cancelled work items of a
	// project with their completion flag.
	ProjectWorkItems(ctx context.Context, projectID string) ([]WorkItem, error)
}
