package learning

import "errors"

var ErrInvalidInput = errors.New("invalid learning input")
