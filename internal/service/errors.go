package service

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks request data the service refuses to store
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
