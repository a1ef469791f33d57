package t2048

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is matched by every *OutOfBoundsError.
	ErrOutOfBounds = errors.New("t2048: coordinate out of bounds")

	// ErrInvalidConfiguration is returned when a session is built from a config
	// that cannot produce a playable board.
	ErrInvalidConfiguration = errors.New("t2048: invalid configuration")

	// ErrIllegalTransition is returned when an operation is not allowed in the
	// session's current status, or when an internal invariant is broken.
	ErrIllegalTransition = errors.New("t2048: illegal transition")
)

// OutOfBoundsError reports a coordinate outside [0, Size).
type OutOfBoundsError struct {
	Col, Row int
	Size     int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("t2048: coordinate (%d, %d) out of bounds for %dx%d grid", e.Col, e.Row, e.Size, e.Size)
}

// Is lets errors.Is(err, ErrOutOfBounds) match.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}

func invalidConfig(field string, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfiguration, field, fmt.Sprintf(format, args...))
}

func illegalTransition(op string, from Status) error {
	return fmt.Errorf("%w: %s while %s", ErrIllegalTransition, op, from)
}
