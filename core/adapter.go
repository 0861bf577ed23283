package positioning

import (
	"context"

	"github.com/koscakluka/whereabouts/core/broadcast"
	"github.com/koscakluka/whereabouts/core/events"
	"github.com/koscakluka/whereabouts/core/location"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Adapter owns the delegate slot of one Manager and relays its callbacks as
// events. It lives as long as the caller keeps it; there is no stop.
type Adapter struct {
	manager Manager
	handle  Handle
	config  Config

	baseContext context.Context

	events       *broadcast.Broadcaster[events.Event]
	initialSinks []func(*Adapter) broadcast.Sink[events.Event]
	gate         *authorizationGate
}

// NewAdapter registers a new adapter as the delegate of manager, asks for the
// best accuracy and runs the initial authorization decision: if the current
// status already allows updates the manager is told to start, otherwise a
// single authorization request of the configured kind is issued.
func NewAdapter(manager Manager, opts ...AdapterOption) *Adapter {
	a := &Adapter{
		manager:     manager,
		handle:      manager.Handle(),
		config:      DefaultConfig(),
		baseContext: context.Background(),
		events:      broadcast.New[events.Event](),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.gate = newAuthorizationGate(manager, a.config.DesiredAuthorization)
	for _, sink := range a.initialSinks {
		a.events.Subscribe(sink(a))
	}

	_, span := tracer.Start(a.baseContext, "create positioning adapter", trace.WithAttributes(
		attribute.String("handle", a.handle.String()),
		attribute.String("desired_authorization", a.config.DesiredAuthorization.String()),
	))
	defer span.End()

	manager.SetDelegate(delegate{adapter: a})
	manager.SetDesiredAccuracy(location.AccuracyBest)

	current := manager.AuthorizationStatus()
	span.SetAttributes(attribute.String("authorization", current.String()))
	a.gate.start(current)
	span.SetAttributes(attribute.String("gate_state", a.gate.State().String()))

	return a
}

// Events is the stream of every event relayed from the manager. It ends with
// an *UnknownError if the manager reports a hard failure.
func (a *Adapter) Events() broadcast.Stream[events.Event] {
	return a.events
}

// Locations streams the fixes of every LocationsUpdated event.
func (a *Adapter) Locations() broadcast.Stream[[]location.Location] {
	return Locations(a.events)
}

// CurrentLocation streams the first fix of every non-empty LocationsUpdated
// event.
func (a *Adapter) CurrentLocation() broadcast.Stream[location.Location] {
	return CurrentLocation(a.events)
}

func (a *Adapter) Handle() Handle { return a.handle }
func (a *Adapter) Config() Config { return a.config }

// AuthorizationState reports the state of the authorization gate.
func (a *Adapter) AuthorizationState() AuthorizationState { return a.gate.State() }

// Terminated reports whether the event stream ended, and the failure it ended
// with.
func (a *Adapter) Terminated() (bool, error) { return a.events.Terminated() }

// Locations projects an event stream onto the fixes of its LocationsUpdated
// events.
func Locations(stream broadcast.Stream[events.Event]) broadcast.Stream[[]location.Location] {
	return broadcast.FilterMap[events.Event, []location.Location](stream, func(event events.Event) ([]location.Location, bool) {
		updated, ok := event.(events.LocationsUpdated)
		return updated.Locations, ok
	})
}

// CurrentLocation narrows Locations to the first fix of each non-empty list.
// Empty lists emit nothing; no earlier fix is repeated.
func CurrentLocation(stream broadcast.Stream[events.Event]) broadcast.Stream[location.Location] {
	return broadcast.FilterMap[[]location.Location, location.Location](Locations(stream), func(locations []location.Location) (location.Location, bool) {
		if len(locations) == 0 {
			return location.Location{}, false
		}
		return locations[0], true
	})
}

func (a *Adapter) owns(source Handle) bool {
	if source.IsZero() || source != a.handle {
		crosstalkDropped.Add(a.baseContext, 1)
		logger.Debug("ignoring callback from another manager", "source", source.String(), "handle", a.handle.String())
		return false
	}
	return true
}

// receive is the only path from manager callbacks into the event stream. The
// event is built only once the source is known to be ours.
func (a *Adapter) receive(source Handle, build func() events.Event) bool {
	if !a.owns(source) {
		return false
	}

	event := build()
	if a.events.Publish(event) {
		publishedEvents.Add(a.baseContext, 1, metric.WithAttributes(attribute.String("kind", string(event.Kind()))))
	}
	return true
}

func (a *Adapter) fail(source Handle, err error) {
	if !a.owns(source) {
		return
	}
	if err == nil {
		err = errUnspecifiedFailure
	}

	failure := &UnknownError{Err: err}
	if a.events.Fail(failure) {
		logger.Warn("positioning stream terminated", "handle", a.handle.String(), "error", err)
	}
}

func (a *Adapter) authorizationChanged(source Handle, status location.AuthorizationStatus) {
	if !a.receive(source, func() events.Event { return events.NewAuthorizationChanged(status) }) {
		return
	}
	if terminated, _ := a.events.Terminated(); terminated {
		return
	}
	a.gate.update(status)
}

// delegate keeps the callback surface off the Adapter's exported API.
type delegate struct {
	adapter *Adapter
}

func (d delegate) DidPauseLocationUpdates(source Handle) {
	d.adapter.receive(source, func() events.Event { return events.NewUpdatesPaused() })
}

func (d delegate) DidResumeLocationUpdates(source Handle) {
	d.adapter.receive(source, func() events.Event { return events.NewUpdatesResumed() })
}

func (d delegate) DidVisit(source Handle, visit location.Visit) {
	d.adapter.receive(source, func() events.Event { return events.NewVisited(visit) })
}

func (d delegate) DidExitRegion(source Handle, region location.Region) {
	d.adapter.receive(source, func() events.Event { return events.NewRegionExited(region) })
}

func (d delegate) DidEnterRegion(source Handle, region location.Region) {
	d.adapter.receive(source, func() events.Event { return events.NewRegionEntered(region) })
}

func (d delegate) ShouldDisplayHeadingCalibration(source Handle) bool {
	if !d.adapter.owns(source) {
		return false
	}
	return d.adapter.config.ShouldDisplayHeadingCalibration
}

func (d delegate) DidStartMonitoring(source Handle, region location.Region) {
	d.adapter.receive(source, func() events.Event { return events.NewRegionMonitoringStarted(region) })
}

func (d delegate) DidUpdateHeading(source Handle, heading location.Heading) {
	d.adapter.receive(source, func() events.Event { return events.NewHeadingUpdated(heading) })
}

func (d delegate) DidUpdateLocations(source Handle, locations []location.Location) {
	d.adapter.receive(source, func() events.Event { return events.NewLocationsUpdated(locations) })
}

func (d delegate) DidFinishDeferredUpdates(source Handle, err error) {
	d.adapter.receive(source, func() events.Event { return events.NewDeferredUpdatesResult(err) })
}

func (d delegate) DidChangeAuthorization(source Handle, status location.AuthorizationStatus) {
	d.adapter.authorizationChanged(source, status)
}

func (d delegate) DidDetermineState(source Handle, state location.RegionState, region location.Region) {
	d.adapter.receive(source, func() events.Event { return events.NewRegionStateDetermined(state, region) })
}

func (d delegate) MonitoringDidFail(source Handle, region *location.Region, err error) {
	d.adapter.receive(source, func() events.Event { return events.NewRegionMonitoringFailed(region, err) })
}

func (d delegate) DidFailRanging(source Handle, constraint location.BeaconConstraint, err error) {
	d.adapter.receive(source, func() events.Event { return events.NewBeaconRangingFailed(constraint, err) })
}

func (d delegate) DidRange(source Handle, beacons []location.Beacon, constraint location.BeaconConstraint) {
	d.adapter.receive(source, func() events.Event { return events.NewBeaconsRanged(beacons, constraint) })
}

func (d delegate) DidFail(source Handle, err error) {
	d.adapter.fail(source, err)
}

var _ Delegate = delegate{}
