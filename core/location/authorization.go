package location

import "fmt"

// AuthorizationStatus is the level of access the user granted to location
// services. The zero value is AuthorizationNotDetermined.
type AuthorizationStatus int

const (
	AuthorizationNotDetermined AuthorizationStatus = iota
	AuthorizationDenied
	AuthorizationRestricted
	AuthorizationWhenInUse
	AuthorizationAlways
)

var authorizationNames = map[AuthorizationStatus]string{
	AuthorizationNotDetermined: "not_determined",
	AuthorizationDenied:        "denied",
	AuthorizationRestricted:    "restricted",
	AuthorizationWhenInUse:     "authorized_when_in_use",
	AuthorizationAlways:        "authorized_always",
}

func (s AuthorizationStatus) String() string {
	if name, ok := authorizationNames[s]; ok {
		return name
	}
	return fmt.Sprintf("authorization(%d)", int(s))
}

// ParseAuthorizationStatus is the inverse of AuthorizationStatus.String.
func ParseAuthorizationStatus(name string) (AuthorizationStatus, error) {
	for status, statusName := range authorizationNames {
		if statusName == name {
			return status, nil
		}
	}
	return AuthorizationNotDetermined, fmt.Errorf("unknown authorization status %q", name)
}

// AllowsUpdates reports whether the subsystem may be asked to produce
// location updates under this status. Only denied and not determined
// statuses withhold updates.
func (s AuthorizationStatus) AllowsUpdates() bool {
	return s != AuthorizationDenied && s != AuthorizationNotDetermined
}
