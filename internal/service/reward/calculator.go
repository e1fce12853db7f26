package reward

import (
	"math"

	"github.com/devxankit/appzeto-payroll/internal/domain/performance"
)

// completionRatio computes the percentage of completed items among
// non-cancelled work items, rounded to the nearest integer. No items
// means a ratio of zero, not an error.
func completionRatio(items []performance.WorkItem) float64 {
	if len(items) == 0 {
		return 0
	}
	completed := 0
	for _, item := range items {
		if item.Completed {
			completed++
		}
	}
	return math.Round(float64(completed) / float64(len(items)) * 100)
}
