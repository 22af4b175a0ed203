package interp

import (
	"fmt"

	"github.com/lumenlang/lumen/internal/token"
)

// RuntimeError is a failure raised during evaluation, carrying the source
// location it occurred at. Unlike the teacher's sentinel ErrorValue
// threaded through Value returns, errors here are surfaced through Go's
// ordinary (Value, error) return shape, matching how every other
// collaborator in this toolchain reports failure.
type RuntimeError struct {
	Message string
	Loc     token.Position
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Message, e.Loc.Line, e.Loc.Column)
}

func newRuntimeError(loc token.Position, format string, args ...any) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...), Loc: loc}
}
