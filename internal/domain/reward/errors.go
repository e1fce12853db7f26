package reward

import "errors"

var (
	ErrRewardNotFound   = errors.New("reward not found")
	ErrRewardInactive   = errors.New("reward is not active")
	ErrRewardExpired    = errors.New("reward is outside its validity window")
	ErrTeamNotSupported = errors.New("reward team is not handled by this engine")
	ErrInvalidThreshold = errors.New("reward criteria value must be a number between 0 and 100")
)
