package simulated

import (
	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/location"
)

type Option func(*Manager)

// WithAuthorizationStatus sets the status reported before any authorization
// callback. Defaults to not determined.
func WithAuthorizationStatus(status location.AuthorizationStatus) Option {
	return func(m *Manager) {
		m.status = status
	}
}

// WithAutoGrant answers every authorization request with an authorization
// change to status, delivered before the request returns.
func WithAutoGrant(status location.AuthorizationStatus) Option {
	return func(m *Manager) {
		m.autoGrant = &status
	}
}

func WithHandle(handle positioning.Handle) Option {
	return func(m *Manager) {
		m.handle = handle
	}
}
