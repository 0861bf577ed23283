package events

import "github.com/koscakluka/whereabouts/core/location"

const (
	// KindLocationsUpdated identifies a batch of new position fixes.
	KindLocationsUpdated Kind = "location.updated"
	// KindHeadingUpdated identifies a new compass heading.
	KindHeadingUpdated Kind = "location.heading_updated"
	// KindVisited identifies a visit to a place.
	KindVisited Kind = "location.visited"
)

// LocationsUpdated carries the fixes of one update callback, oldest first.
type LocationsUpdated struct {
	Base
	Locations []location.Location
}

// NewLocationsUpdated creates a locations updated event.
func NewLocationsUpdated(locations []location.Location) LocationsUpdated {
	return LocationsUpdated{Base: NewBase(KindLocationsUpdated), Locations: locations}
}

// HeadingUpdated carries a new heading.
type HeadingUpdated struct {
	Base
	Heading location.Heading
}

// NewHeadingUpdated creates a heading updated event.
func NewHeadingUpdated(heading location.Heading) HeadingUpdated {
	return HeadingUpdated{Base: NewBase(KindHeadingUpdated), Heading: heading}
}

// Visited carries a visit reported by the subsystem.
type Visited struct {
	Base
	Visit location.Visit
}

// NewVisited creates a visited event.
func NewVisited(visit location.Visit) Visited {
	return Visited{Base: NewBase(KindVisited), Visit: visit}
}
