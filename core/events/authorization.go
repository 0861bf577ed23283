package events

import (
	"errors"

	"github.com/koscakluka/whereabouts/core/location"
)

// KindAuthorizationChanged identifies a change of the authorization status.
const KindAuthorizationChanged Kind = "authorization.changed"

// ErrDisallowed classifies a denied or restricted authorization status. It is
// never a stream failure.
var ErrDisallowed = errors.New("location access disallowed")

// AuthorizationChanged carries the authorization status reported by the
// subsystem.
type AuthorizationChanged struct {
	Base
	Status location.AuthorizationStatus
}

// NewAuthorizationChanged creates an authorization changed event.
func NewAuthorizationChanged(status location.AuthorizationStatus) AuthorizationChanged {
	return AuthorizationChanged{Base: NewBase(KindAuthorizationChanged), Status: status}
}

// Err returns ErrDisallowed for denied and restricted statuses and nil
// otherwise.
func (e AuthorizationChanged) Err() error {
	switch e.Status {
	case location.AuthorizationDenied, location.AuthorizationRestricted:
		return ErrDisallowed
	default:
		return nil
	}
}
