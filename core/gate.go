package positioning

import (
	"sync"

	"github.com/koscakluka/whereabouts/core/location"
)

// AuthorizationState is the state of an adapter's authorization gate.
type AuthorizationState int

const (
	AuthorizationUninitialized AuthorizationState = iota
	// AuthorizationAwaiting means a request was issued and no sufficient
	// status has been reported yet.
	AuthorizationAwaiting
	// AuthorizationGranted means the manager was told to start updating.
	AuthorizationGranted
	// AuthorizationWithheld means the last reported status was denied or not
	// determined. A later grant still moves the gate to AuthorizationGranted.
	AuthorizationWithheld
)

func (s AuthorizationState) String() string {
	switch s {
	case AuthorizationUninitialized:
		return "uninitialized"
	case AuthorizationAwaiting:
		return "awaiting"
	case AuthorizationGranted:
		return "granted"
	case AuthorizationWithheld:
		return "withheld"
	default:
		return "unknown"
	}
}

type gateAction int

const (
	gateActionNone gateAction = iota
	gateActionStartUpdates
	gateActionRequestAuthorization
)

// authorizationGate decides when the manager is asked for authorization and
// when it is told to start updating. It issues at most one authorization
// request in its lifetime and a start command on every transition into
// AuthorizationGranted.
//
// Manager commands are issued without holding mu: a manager may answer a
// command with a synchronous callback that re-enters the gate.
type authorizationGate struct {
	manager Manager
	desired location.AuthorizationStatus

	mu        sync.Mutex
	state     AuthorizationState
	requested bool
}

func newAuthorizationGate(manager Manager, desired location.AuthorizationStatus) *authorizationGate {
	return &authorizationGate{manager: manager, desired: desired}
}

// start runs the initial decision against the manager's current status.
func (g *authorizationGate) start(current location.AuthorizationStatus) {
	g.mu.Lock()
	var action gateAction
	if current == g.desired || current.AllowsUpdates() {
		action = g.grantLocked()
	} else {
		action = g.awaitLocked()
	}
	g.mu.Unlock()

	g.perform(action)
}

// update applies a reported authorization status.
func (g *authorizationGate) update(status location.AuthorizationStatus) {
	g.mu.Lock()
	var action gateAction
	if status.AllowsUpdates() {
		action = g.grantLocked()
	} else {
		g.transitionLocked(AuthorizationWithheld)
	}
	g.mu.Unlock()

	g.perform(action)
}

func (g *authorizationGate) State() AuthorizationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

func (g *authorizationGate) grantLocked() gateAction {
	if g.state == AuthorizationGranted {
		return gateActionNone
	}
	g.transitionLocked(AuthorizationGranted)
	return gateActionStartUpdates
}

func (g *authorizationGate) awaitLocked() gateAction {
	g.transitionLocked(AuthorizationAwaiting)
	if g.requested {
		return gateActionNone
	}
	g.requested = true
	return gateActionRequestAuthorization
}

func (g *authorizationGate) transitionLocked(next AuthorizationState) {
	if g.state != next {
		logger.Debug("authorization gate transition", "from", g.state.String(), "to", next.String())
	}
	g.state = next
}

func (g *authorizationGate) perform(action gateAction) {
	switch action {
	case gateActionStartUpdates:
		g.manager.StartUpdatingLocation()
	case gateActionRequestAuthorization:
		if g.desired == location.AuthorizationAlways {
			g.manager.RequestAlwaysAuthorization()
		} else {
			g.manager.RequestWhenInUseAuthorization()
		}
	}
}
