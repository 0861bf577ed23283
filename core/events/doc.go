// Package events defines the typed positioning event contract.
//
// Every callback a positioning subsystem can make is represented by exactly
// one event type. Event kinds are grouped by namespace:
//
//   - updates.*
//   - location.*
//   - region.*
//   - beacon.*
//   - authorization.*
//
// Failure-bearing events (DeferredUpdatesFailed, RegionMonitoringFailed,
// BeaconRangingFailed) are informational. A hard subsystem failure is not an
// event at all; it terminates the stream.
//
// updates events
//
//   - UpdatesPaused (updates.paused): the subsystem paused location updates.
//   - UpdatesResumed (updates.resumed): the subsystem resumed location updates.
//   - DeferredUpdatesFinished (updates.deferred_finished): a deferred batch
//     was delivered.
//   - DeferredUpdatesFailed (updates.deferred_failed): a deferred batch ended
//     with an error.
//
// location events
//
//   - LocationsUpdated (location.updated): one or more new fixes.
//   - HeadingUpdated (location.heading_updated): new compass heading.
//   - Visited (location.visited): a visit to a place.
//
// region events
//
//   - RegionEntered (region.entered)
//   - RegionExited (region.exited)
//   - RegionMonitoringStarted (region.monitoring_started)
//   - RegionMonitoringFailed (region.monitoring_failed): region may be nil.
//   - RegionStateDetermined (region.state_determined)
//
// beacon events
//
//   - BeaconsRanged (beacon.ranged)
//   - BeaconRangingFailed (beacon.ranging_failed)
//
// authorization events
//
//   - AuthorizationChanged (authorization.changed): includes denied and
//     restricted statuses, which AuthorizationChanged.Err classifies as
//     ErrDisallowed.
package events
