package simulated

import (
	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/location"
)

// Delivery invokes the registered delegate on the calling goroutine. Every
// method is a no-op while no delegate is registered.
type Delivery struct {
	manager *Manager
	source  positioning.Handle
}

func (d *Delivery) PauseLocationUpdates() {
	d.with(func(delegate positioning.Delegate) { delegate.DidPauseLocationUpdates(d.source) })
}

func (d *Delivery) ResumeLocationUpdates() {
	d.with(func(delegate positioning.Delegate) { delegate.DidResumeLocationUpdates(d.source) })
}

func (d *Delivery) Visit(visit location.Visit) {
	d.with(func(delegate positioning.Delegate) { delegate.DidVisit(d.source, visit) })
}

func (d *Delivery) ExitRegion(region location.Region) {
	d.with(func(delegate positioning.Delegate) { delegate.DidExitRegion(d.source, region) })
}

func (d *Delivery) EnterRegion(region location.Region) {
	d.with(func(delegate positioning.Delegate) { delegate.DidEnterRegion(d.source, region) })
}

// AskHeadingCalibration returns the delegate's answer, false without one.
func (d *Delivery) AskHeadingCalibration() bool {
	display := false
	d.with(func(delegate positioning.Delegate) { display = delegate.ShouldDisplayHeadingCalibration(d.source) })
	return display
}

func (d *Delivery) StartMonitoring(region location.Region) {
	d.with(func(delegate positioning.Delegate) { delegate.DidStartMonitoring(d.source, region) })
}

func (d *Delivery) UpdateHeading(heading location.Heading) {
	d.with(func(delegate positioning.Delegate) { delegate.DidUpdateHeading(d.source, heading) })
}

func (d *Delivery) UpdateLocations(locations ...location.Location) {
	d.with(func(delegate positioning.Delegate) { delegate.DidUpdateLocations(d.source, locations) })
}

func (d *Delivery) FinishDeferredUpdates(err error) {
	d.with(func(delegate positioning.Delegate) { delegate.DidFinishDeferredUpdates(d.source, err) })
}

// ChangeAuthorization also updates the manager's reported status when the
// delivery comes from the manager itself.
func (d *Delivery) ChangeAuthorization(status location.AuthorizationStatus) {
	if d.source == d.manager.handle {
		d.manager.mu.Lock()
		d.manager.status = status
		d.manager.mu.Unlock()
	}
	d.with(func(delegate positioning.Delegate) { delegate.DidChangeAuthorization(d.source, status) })
}

func (d *Delivery) DetermineState(state location.RegionState, region location.Region) {
	d.with(func(delegate positioning.Delegate) { delegate.DidDetermineState(d.source, state, region) })
}

func (d *Delivery) FailMonitoring(region *location.Region, err error) {
	d.with(func(delegate positioning.Delegate) { delegate.MonitoringDidFail(d.source, region, err) })
}

func (d *Delivery) FailRanging(constraint location.BeaconConstraint, err error) {
	d.with(func(delegate positioning.Delegate) { delegate.DidFailRanging(d.source, constraint, err) })
}

func (d *Delivery) Range(beacons []location.Beacon, constraint location.BeaconConstraint) {
	d.with(func(delegate positioning.Delegate) { delegate.DidRange(d.source, beacons, constraint) })
}

func (d *Delivery) Fail(err error) {
	d.with(func(delegate positioning.Delegate) { delegate.DidFail(d.source, err) })
}

func (d *Delivery) with(call func(positioning.Delegate)) {
	if delegate := d.manager.registered(); delegate != nil {
		call(delegate)
	}
}
