package template

import "errors"

var (
	ErrNotFound     = errors.New("template not found")
	ErrInvalidInput = errors.New("invalid template input")
	ErrRemote       = errors.New("remote authority unavailable")
)
