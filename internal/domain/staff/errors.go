package staff

import "errors"

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrUnknownCategory = errors.New("unknown member category")
	ErrMemberInactive  = errors.New("member is not active")
)
