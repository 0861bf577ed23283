package positioning

import (
	"sync"

	"github.com/koscakluka/whereabouts/core/location"
)

const (
	commandStartUpdates  = "start_updating_location"
	commandRequestAlways = "request_always_authorization"
	commandRequestInUse  = "request_when_in_use_authorization"
	commandSetAccuracy   = "set_desired_accuracy"
	commandSetDelegate   = "set_delegate"
)

type fakeManager struct {
	handle Handle
	status location.AuthorizationStatus

	mu       sync.Mutex
	delegate Delegate
	accuracy location.Accuracy
	commands []string

	// onRequest, when set, answers authorization requests synchronously.
	onRequest func(m *fakeManager, always bool)
}

func newFakeManager(status location.AuthorizationStatus) *fakeManager {
	return &fakeManager{handle: NewHandle(), status: status, accuracy: -1}
}

func (m *fakeManager) Handle() Handle { return m.handle }

func (m *fakeManager) SetDelegate(delegate Delegate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delegate = delegate
	m.commands = append(m.commands, commandSetDelegate)
}

func (m *fakeManager) SetDesiredAccuracy(accuracy location.Accuracy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accuracy = accuracy
	m.commands = append(m.commands, commandSetAccuracy)
}

func (m *fakeManager) AuthorizationStatus() location.AuthorizationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *fakeManager) StartUpdatingLocation() {
	m.record(commandStartUpdates)
}

func (m *fakeManager) RequestAlwaysAuthorization() {
	m.record(commandRequestAlways)
	if m.onRequest != nil {
		m.onRequest(m, true)
	}
}

func (m *fakeManager) RequestWhenInUseAuthorization() {
	m.record(commandRequestInUse)
	if m.onRequest != nil {
		m.onRequest(m, false)
	}
}

func (m *fakeManager) record(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = append(m.commands, command)
}

func (m *fakeManager) registered() Delegate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delegate
}

func (m *fakeManager) count(command string) int {
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

func (m *fakeManager) issued() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.commands...)
}
