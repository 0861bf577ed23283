package positioning

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/koscakluka/whereabouts/core/broadcast"
	"github.com/koscakluka/whereabouts/core/events"
	"github.com/koscakluka/whereabouts/core/location"
)

func TestInitialDecision(t *testing.T) {
	testCases := []struct {
		name          string
		desired       location.AuthorizationStatus
		current       location.AuthorizationStatus
		expectedState AuthorizationState
		expectedTail  []string
	}{
		{
			name:          "matching status starts without asking",
			desired:       location.AuthorizationWhenInUse,
			current:       location.AuthorizationWhenInUse,
			expectedState: AuthorizationGranted,
			expectedTail:  []string{commandStartUpdates},
		},
		{
			name:          "always granted while when in use desired",
			desired:       location.AuthorizationWhenInUse,
			current:       location.AuthorizationAlways,
			expectedState: AuthorizationGranted,
			expectedTail:  []string{commandStartUpdates},
		},
		{
			name:          "when in use granted while always desired",
			desired:       location.AuthorizationAlways,
			current:       location.AuthorizationWhenInUse,
			expectedState: AuthorizationGranted,
			expectedTail:  []string{commandStartUpdates},
		},
		{
			name:          "restricted counts as sufficient",
			desired:       location.AuthorizationWhenInUse,
			current:       location.AuthorizationRestricted,
			expectedState: AuthorizationGranted,
			expectedTail:  []string{commandStartUpdates},
		},
		{
			name:          "not determined asks when in use",
			desired:       location.AuthorizationWhenInUse,
			current:       location.AuthorizationNotDetermined,
			expectedState: AuthorizationAwaiting,
			expectedTail:  []string{commandRequestInUse},
		},
		{
			name:          "not determined asks always",
			desired:       location.AuthorizationAlways,
			current:       location.AuthorizationNotDetermined,
			expectedState: AuthorizationAwaiting,
			expectedTail:  []string{commandRequestAlways},
		},
		{
			name:          "denied still asks once",
			desired:       location.AuthorizationWhenInUse,
			current:       location.AuthorizationDenied,
			expectedState: AuthorizationAwaiting,
			expectedTail:  []string{commandRequestInUse},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			manager := newFakeManager(tc.current)
			adapter := NewAdapter(manager, WithDesiredAuthorization(tc.desired))

			if got := adapter.AuthorizationState(); got != tc.expectedState {
				t.Fatalf("expected state %s, got %s", tc.expectedState, got)
			}
			expected := append([]string{commandSetDelegate, commandSetAccuracy}, tc.expectedTail...)
			if diff := cmp.Diff(expected, manager.issued()); diff != "" {
				t.Fatalf("command mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAlreadyAuthorizedStartsOnce(t *testing.T) {
	manager := newFakeManager(location.AuthorizationWhenInUse)
	NewAdapter(manager)

	if got := manager.count(commandRequestInUse) + manager.count(commandRequestAlways); got != 0 {
		t.Fatalf("expected no authorization requests, got %d", got)
	}
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected one start command, got %d", got)
	}
}

func TestGrantAfterRequestStartsUpdates(t *testing.T) {
	manager := newFakeManager(location.AuthorizationNotDetermined)
	adapter := NewAdapter(manager)
	recorder, _ := record(adapter.Events())
	current, _ := record(adapter.CurrentLocation())

	if got := manager.count(commandRequestInUse); got != 1 {
		t.Fatalf("expected one when in use request, got %d", got)
	}
	if got := manager.count(commandStartUpdates); got != 0 {
		t.Fatalf("expected no start before a grant, got %d", got)
	}

	d := manager.registered()
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationNotDetermined)
	if got := manager.count(commandStartUpdates); got != 0 {
		t.Fatalf("expected no start after not determined, got %d", got)
	}

	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationWhenInUse)
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected start after grant, got %d", got)
	}

	p := fix(45.81, 15.98)
	d.DidUpdateLocations(manager.Handle(), []location.Location{p})

	values, _ := current.snapshot()
	if diff := cmp.Diff([]location.Location{p}, values); diff != "" {
		t.Fatalf("current location mismatch (-want +got):\n%s", diff)
	}
	all, _ := recorder.snapshot()
	expected := []events.Event{
		events.NewAuthorizationChanged(location.AuthorizationNotDetermined),
		events.NewAuthorizationChanged(location.AuthorizationWhenInUse),
		events.NewLocationsUpdated([]location.Location{p}),
	}
	if diff := cmp.Diff(expected, all, compareEvents); diff != "" {
		t.Fatalf("event sequence mismatch (-want +got):\n%s", diff)
	}
	if got := manager.count(commandRequestInUse); got != 1 {
		t.Fatalf("expected no further requests, got %d", got)
	}
}

func TestDenialIsNotReRequested(t *testing.T) {
	manager := newFakeManager(location.AuthorizationNotDetermined)
	adapter := NewAdapter(manager, WithDesiredAuthorization(location.AuthorizationAlways))

	d := manager.registered()
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationDenied)
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationNotDetermined)
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationDenied)

	if got := manager.count(commandRequestAlways); got != 1 {
		t.Fatalf("expected a single always request, got %d", got)
	}
	if got := manager.count(commandStartUpdates); got != 0 {
		t.Fatalf("expected no start while denied, got %d", got)
	}
	if got := adapter.AuthorizationState(); got != AuthorizationWithheld {
		t.Fatalf("expected withheld state, got %s", got)
	}

	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationAlways)
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected start once access is granted, got %d", got)
	}
}

func TestStartIsIssuedPerTransitionIntoGranted(t *testing.T) {
	manager := newFakeManager(location.AuthorizationWhenInUse)
	adapter := NewAdapter(manager)
	d := manager.registered()

	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationWhenInUse)
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationAlways)
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected repeated grants not to restart, got %d starts", got)
	}

	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationDenied)
	d.DidChangeAuthorization(manager.Handle(), location.AuthorizationWhenInUse)
	if got := manager.count(commandStartUpdates); got != 2 {
		t.Fatalf("expected a restart after revocation and grant, got %d starts", got)
	}
	if got := manager.count(commandRequestInUse); got != 0 {
		t.Fatalf("expected no requests when initially authorized, got %d", got)
	}
	if got := adapter.AuthorizationState(); got != AuthorizationGranted {
		t.Fatalf("expected granted state, got %s", got)
	}
}

func TestSynchronousGrantDuringRequest(t *testing.T) {
	manager := newFakeManager(location.AuthorizationNotDetermined)
	manager.onRequest = func(m *fakeManager, always bool) {
		m.mu.Lock()
		m.status = location.AuthorizationWhenInUse
		delegate := m.delegate
		m.mu.Unlock()
		delegate.DidChangeAuthorization(m.handle, location.AuthorizationWhenInUse)
	}

	adapter := NewAdapter(manager)

	if got := manager.count(commandRequestInUse); got != 1 {
		t.Fatalf("expected one request, got %d", got)
	}
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected one start, got %d", got)
	}
	if got := adapter.AuthorizationState(); got != AuthorizationGranted {
		t.Fatalf("expected granted state, got %s", got)
	}
}

func TestAuthorizationEventPrecedesStart(t *testing.T) {
	manager := newFakeManager(location.AuthorizationNotDetermined)
	adapter := NewAdapter(manager)

	var startsAtEvent []int
	adapter.Events().Subscribe(broadcast.Sink[events.Event]{
		Next: func(event events.Event) {
			if _, ok := event.(events.AuthorizationChanged); ok {
				startsAtEvent = append(startsAtEvent, manager.count(commandStartUpdates))
			}
		},
	})

	manager.registered().DidChangeAuthorization(manager.Handle(), location.AuthorizationAlways)

	if diff := cmp.Diff([]int{0}, startsAtEvent); diff != "" {
		t.Fatalf("expected the event to be delivered before the start command (-want +got):\n%s", diff)
	}
	if got := manager.count(commandStartUpdates); got != 1 {
		t.Fatalf("expected start after the event, got %d", got)
	}
}

func TestAuthorizationStateString(t *testing.T) {
	testCases := map[AuthorizationState]string{
		AuthorizationUninitialized: "uninitialized",
		AuthorizationAwaiting:      "awaiting",
		AuthorizationGranted:       "granted",
		AuthorizationWithheld:      "withheld",
		AuthorizationState(42):     "unknown",
	}
	for state, expected := range testCases {
		if got := state.String(); got != expected {
			t.Fatalf("expected %q, got %q", expected, got)
		}
	}
}
