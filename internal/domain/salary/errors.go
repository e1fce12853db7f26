package salary

import "errors"

var (
	ErrRecordNotFound         = errors.New("salary record not found")
	ErrRecordAlreadyExists    = errors.New("salary record already exists for this month")
	ErrRecordImmutable        = errors.New("paid salary record from a past month cannot be modified")
	ErrCannotDeletePaidRecord = errors.New("cannot delete a paid salary record")
	ErrCannotDeletePastRecord = errors.New("cannot delete a salary record from a past month")
	ErrInvalidMonth           = errors.New("invalid month token")
	ErrInvalidStatus          = errors.New("invalid salary status")
	ErrInvalidPaymentMethod   = errors.New("invalid payment method")
	ErrNegativeSalary         = errors.New("fixed salary must be non-negative")
)
