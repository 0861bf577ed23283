package location

import (
	"time"

	"github.com/google/uuid"
)

// BeaconConstraint selects the beacons a ranging request looks for. Nil Major
// and Minor match any value.
type BeaconConstraint struct {
	UUID  uuid.UUID
	Major *uint16
	Minor *uint16
}

// Proximity is the coarse distance class of a ranged beacon.
type Proximity int

const (
	ProximityUnknown Proximity = iota
	ProximityImmediate
	ProximityNear
	ProximityFar
)

// Beacon is one beacon observed while ranging.
type Beacon struct {
	UUID      uuid.UUID
	Major     uint16
	Minor     uint16
	Proximity Proximity
	// Accuracy is the distance estimate in meters, negative when unknown.
	Accuracy  float64
	RSSI      int
	Timestamp time.Time
}
