package response

import (
	"errors"
	"net/http"

	"github.com/devxankit/appzeto-payroll/internal/domain/reward"
	"github.com/devxankit/appzeto-payroll/internal/domain/salary"
	"github.com/devxankit/appzeto-payroll/internal/domain/staff"
	"github.com/devxankit/appzeto-payroll/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Every rejection
// carries the specific reason because these are money-affecting
// operations.
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Staff domain errors
	case errors.Is(err, staff.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, staff.ErrUnknownCategory):
		BadRequest(w, "Unknown member category", nil)
	case errors.Is(err, staff.ErrMemberInactive):
		Conflict(w, "Member is not active")

	// Salary domain errors
	case errors.Is(err, salary.ErrRecordNotFound):
		NotFound(w, "Salary record not found")
	case errors.Is(err, salary.ErrRecordAlreadyExists):
		Conflict(w, "Salary record already exists for this month")
	case errors.Is(err, salary.ErrRecordImmutable):
		Conflict(w, "Paid salary record from a past month cannot be modified")
	case errors.Is(err, salary.ErrCannotDeletePaidRecord):
		Conflict(w, "Cannot delete a paid salary record")
	case errors.Is(err, salary.ErrCannotDeletePastRecord):
		Conflict(w, "Cannot delete a salary record from a past month")
	case errors.Is(err, salary.ErrInvalidMonth):
		BadRequest(w, "Invalid month token, expected YYYY-MM", nil)
	case errors.Is(err, salary.ErrInvalidStatus):
		BadRequest(w, "Invalid salary status", nil)
	case errors.Is(err, salary.ErrInvalidPaymentMethod):
		BadRequest(w, "Invalid payment method", nil)
	case errors.Is(err, salary.ErrNegativeSalary):
		BadRequest(w, "Fixed salary must be non-negative", nil)

	// Reward domain errors
	case errors.Is(err, reward.ErrRewardNotFound):
		NotFound(w, "Reward not found")
	case errors.Is(err, reward.ErrRewardInactive):
		Conflict(w, "Reward is not active")
	case errors.Is(err, reward.ErrRewardExpired):
		Conflict(w, "Reward is outside its validity window")
	case errors.Is(err, reward.ErrTeamNotSupported):
		BadRequest(w, "Reward team is not handled by this engine", nil)
	case errors.Is(err, reward.ErrInvalidThreshold):
		BadRequest(w, "Reward criteria value must be a number between 0 and 100", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
