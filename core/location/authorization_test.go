package location

import "testing"

func TestAllowsUpdates(t *testing.T) {
	testCases := []struct {
		status   AuthorizationStatus
		expected bool
	}{
		{status: AuthorizationNotDetermined, expected: false},
		{status: AuthorizationDenied, expected: false},
		{status: AuthorizationRestricted, expected: true},
		{status: AuthorizationWhenInUse, expected: true},
		{status: AuthorizationAlways, expected: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.status.String(), func(t *testing.T) {
			if got := testCase.status.AllowsUpdates(); got != testCase.expected {
				t.Fatalf("expected AllowsUpdates()=%t for %s, got %t", testCase.expected, testCase.status, got)
			}
		})
	}
}

func TestParseAuthorizationStatusRoundTrips(t *testing.T) {
	for status := range authorizationNames {
		parsed, err := ParseAuthorizationStatus(status.String())
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", status.String(), err)
		}
		if parsed != status {
			t.Fatalf("expected %s, got %s", status, parsed)
		}
	}
}

func TestParseAuthorizationStatusRejectsUnknownNames(t *testing.T) {
	if _, err := ParseAuthorizationStatus("maybe"); err == nil {
		t.Fatalf("expected error for unknown status name")
	}
}

func TestUnknownAuthorizationStatusString(t *testing.T) {
	if got := AuthorizationStatus(42).String(); got != "authorization(42)" {
		t.Fatalf("unexpected string for unknown status: %q", got)
	}
}
