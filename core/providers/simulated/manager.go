// Package simulated provides an in-process positioning.Manager whose
// callbacks are driven by the caller. Callbacks are delivered synchronously on
// the calling goroutine.
package simulated

import (
	"sync"

	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/location"
)

// Command is a manager command issued by the registered delegate's owner.
type Command string

const (
	CommandSetDelegate                   Command = "set_delegate"
	CommandSetDesiredAccuracy            Command = "set_desired_accuracy"
	CommandStartUpdatingLocation         Command = "start_updating_location"
	CommandRequestAlwaysAuthorization    Command = "request_always_authorization"
	CommandRequestWhenInUseAuthorization Command = "request_when_in_use_authorization"
)

type Manager struct {
	handle    positioning.Handle
	autoGrant *location.AuthorizationStatus

	mu       sync.Mutex
	delegate positioning.Delegate
	status   location.AuthorizationStatus
	accuracy location.Accuracy
	updating bool
	commands []Command
}

func New(opts ...Option) *Manager {
	m := &Manager{
		handle:   positioning.NewHandle(),
		status:   location.AuthorizationNotDetermined,
		accuracy: location.AccuracyHundredMeters,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Handle() positioning.Handle { return m.handle }

func (m *Manager) SetDelegate(delegate positioning.Delegate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delegate = delegate
	m.commands = append(m.commands, CommandSetDelegate)
}

func (m *Manager) SetDesiredAccuracy(accuracy location.Accuracy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accuracy = accuracy
	m.commands = append(m.commands, CommandSetDesiredAccuracy)
}

func (m *Manager) AuthorizationStatus() location.AuthorizationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) StartUpdatingLocation() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updating = true
	m.commands = append(m.commands, CommandStartUpdatingLocation)
}

func (m *Manager) RequestAlwaysAuthorization() {
	m.request(CommandRequestAlwaysAuthorization)
}

func (m *Manager) RequestWhenInUseAuthorization() {
	m.request(CommandRequestWhenInUseAuthorization)
}

func (m *Manager) request(command Command) {
	m.mu.Lock()
	m.commands = append(m.commands, command)
	m.mu.Unlock()

	if m.autoGrant != nil {
		m.Deliver().ChangeAuthorization(*m.autoGrant)
	}
}

// Commands returns the commands issued so far, oldest first.
func (m *Manager) Commands() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.commands...)
}

// Count returns how many times command was issued.
func (m *Manager) Count(command Command) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, issued := range m.commands {
		if issued == command {
			count++
		}
	}
	return count
}

func (m *Manager) DesiredAccuracy() location.Accuracy {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accuracy
}

// Updating reports whether StartUpdatingLocation was issued.
func (m *Manager) Updating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updating
}

// Deliver returns callbacks that reach the registered delegate from this
// manager.
func (m *Manager) Deliver() *Delivery {
	return &Delivery{manager: m, source: m.handle}
}

// DeliverAs returns callbacks that reach the registered delegate claiming to
// come from source. It models a delegate receiving another manager's
// callbacks.
func (m *Manager) DeliverAs(source positioning.Handle) *Delivery {
	return &Delivery{manager: m, source: source}
}

func (m *Manager) registered() positioning.Delegate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delegate
}

var _ positioning.Manager = (*Manager)(nil)
