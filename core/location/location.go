// Package location holds the values a positioning subsystem reports.
//
// The types are plain data. Nothing in this module interprets them: they are
// carried from the subsystem callbacks to event subscribers unchanged.
package location

import "time"

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Location is a single position fix.
type Location struct {
	Coordinate Coordinate
	// Altitude above mean sea level in meters.
	Altitude float64
	// HorizontalAccuracy is the radius of uncertainty in meters. Negative
	// values mark an invalid coordinate.
	HorizontalAccuracy float64
	VerticalAccuracy   float64
	// Speed in meters per second, negative when unknown.
	Speed float64
	// Course in degrees relative to true north, negative when unknown.
	Course    float64
	Floor     *int
	Timestamp time.Time
}

// Heading is a compass reading.
type Heading struct {
	MagneticHeading float64
	TrueHeading     float64
	// Accuracy is the maximum deviation in degrees, negative when invalid.
	Accuracy  float64
	X, Y, Z   float64
	Timestamp time.Time
}

// Region is a monitored area identified by Identifier. Circular regions fill
// Center and Radius; beacon regions leave Radius zero.
type Region struct {
	Identifier    string
	Center        Coordinate
	Radius        float64
	NotifyOnEntry bool
	NotifyOnExit  bool
}

// RegionState is the relation of the device to a region.
type RegionState int

const (
	RegionStateUnknown RegionState = iota
	RegionStateInside
	RegionStateOutside
)

func (s RegionState) String() string {
	switch s {
	case RegionStateInside:
		return "inside"
	case RegionStateOutside:
		return "outside"
	default:
		return "unknown"
	}
}

// Visit is a place the device stayed at for a while.
type Visit struct {
	Coordinate         Coordinate
	HorizontalAccuracy float64
	Arrival            time.Time
	// Departure is the zero time while the device is still at the place.
	Departure time.Time
}

// Accuracy is the precision preference handed to the subsystem.
type Accuracy int

const (
	AccuracyBestForNavigation Accuracy = iota
	AccuracyBest
	AccuracyNearestTenMeters
	AccuracyHundredMeters
	AccuracyKilometer
	AccuracyThreeKilometers
	AccuracyReduced
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyBestForNavigation:
		return "best_for_navigation"
	case AccuracyBest:
		return "best"
	case AccuracyNearestTenMeters:
		return "nearest_ten_meters"
	case AccuracyHundredMeters:
		return "hundred_meters"
	case AccuracyKilometer:
		return "kilometer"
	case AccuracyThreeKilometers:
		return "three_kilometers"
	case AccuracyReduced:
		return "reduced"
	default:
		return "unknown"
	}
}
