package prep

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrEventNotPreparable = errors.New("event has no upcoming start time")
	ErrInvalidInput       = errors.New("invalid input")
)
