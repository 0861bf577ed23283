package positioning

import (
	"errors"
	"fmt"

	"github.com/koscakluka/whereabouts/core/events"
)

// ErrDisallowed classifies denied and restricted authorization. It never
// terminates a stream; see [events.AuthorizationChanged.Err].
var ErrDisallowed = events.ErrDisallowed

var errUnspecifiedFailure = errors.New("unspecified failure")

// UnknownError is the terminal failure of an adapter stream. It wraps the
// error the subsystem reported.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("positioning subsystem failed: %v", e.Err)
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}
