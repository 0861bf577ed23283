package events

import "github.com/koscakluka/whereabouts/core/location"

const (
	// KindBeaconsRanged identifies a ranging result.
	KindBeaconsRanged Kind = "beacon.ranged"
	// KindBeaconRangingFailed identifies a ranging failure.
	KindBeaconRangingFailed Kind = "beacon.ranging_failed"
)

// BeaconsRanged carries the beacons matching Constraint, possibly none.
type BeaconsRanged struct {
	Base
	Beacons    []location.Beacon
	Constraint location.BeaconConstraint
}

// NewBeaconsRanged creates a beacons ranged event.
func NewBeaconsRanged(beacons []location.Beacon, constraint location.BeaconConstraint) BeaconsRanged {
	return BeaconsRanged{Base: NewBase(KindBeaconsRanged), Beacons: beacons, Constraint: constraint}
}

// BeaconRangingFailed carries the error ranging for Constraint ended with.
type BeaconRangingFailed struct {
	Base
	Constraint location.BeaconConstraint
	Err        error
}

// NewBeaconRangingFailed creates a beacon ranging failed event.
func NewBeaconRangingFailed(constraint location.BeaconConstraint, err error) BeaconRangingFailed {
	return BeaconRangingFailed{Base: NewBase(KindBeaconRangingFailed), Constraint: constraint, Err: err}
}
