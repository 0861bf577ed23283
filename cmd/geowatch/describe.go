package main

import (
	"fmt"

	"github.com/koscakluka/whereabouts/core/events"
)

// describe renders an event as a single log line.
func describe(event events.Event) string {
	switch event := event.(type) {
	case events.LocationsUpdated:
		if len(event.Locations) == 0 {
			return "locations: none"
		}
		first := event.Locations[0].Coordinate
		return fmt.Sprintf("locations: %d, first %.6f, %.6f", len(event.Locations), first.Latitude, first.Longitude)
	case events.HeadingUpdated:
		return fmt.Sprintf("heading: %.1f° true, %.1f° magnetic", event.Heading.TrueHeading, event.Heading.MagneticHeading)
	case events.AuthorizationChanged:
		return "authorization: " + event.Status.String()
	case events.Visited:
		return fmt.Sprintf("visit at %.6f, %.6f", event.Visit.Coordinate.Latitude, event.Visit.Coordinate.Longitude)
	case events.RegionEntered:
		return "entered region " + event.Region.Identifier
	case events.RegionExited:
		return "exited region " + event.Region.Identifier
	case events.RegionMonitoringStarted:
		return "monitoring region " + event.Region.Identifier
	case events.RegionStateDetermined:
		return fmt.Sprintf("region %s: %s", event.Region.Identifier, event.State)
	case events.RegionMonitoringFailed:
		if event.Region == nil {
			return fmt.Sprintf("region monitoring failed: %v", event.Err)
		}
		return fmt.Sprintf("monitoring region %s failed: %v", event.Region.Identifier, event.Err)
	case events.BeaconsRanged:
		return fmt.Sprintf("ranged %d beacons for %s", len(event.Beacons), event.Constraint.UUID)
	case events.BeaconRangingFailed:
		return fmt.Sprintf("ranging %s failed: %v", event.Constraint.UUID, event.Err)
	case events.DeferredUpdatesFailed:
		return fmt.Sprintf("deferred updates failed: %v", event.Err)
	default:
		return string(event.Kind())
	}
}
