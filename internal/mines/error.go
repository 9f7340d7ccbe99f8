package mines

import (
	"errors"
	"fmt"
)

var ErrOutOfBounds = errors.New("position out of bounds")

type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

// [OutOfBoundsError] implements [error]
func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("cell (%d, %d) is outside of the %dx%d board",
		e.Row, e.Col, e.Rows, e.Cols)
}

func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
