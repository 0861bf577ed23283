package positioning

import (
	"github.com/google/uuid"
	"github.com/koscakluka/whereabouts/core/location"
)

// Handle identifies one Manager instance. Handles are comparable; the zero
// Handle identifies nothing and never matches.
type Handle struct {
	id uuid.UUID
}

// NewHandle returns a fresh Handle. Manager implementations call it once and
// keep the result for their lifetime.
func NewHandle() Handle {
	return Handle{id: uuid.New()}
}

func (h Handle) IsZero() bool { return h.id == uuid.Nil }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(none)"
	}
	return h.id.String()
}

// Manager is the positioning subsystem an Adapter drives.
type Manager interface {
	// Handle returns the identity every callback of this manager carries.
	Handle() Handle
	// SetDelegate replaces the single callback target.
	SetDelegate(delegate Delegate)
	SetDesiredAccuracy(accuracy location.Accuracy)
	AuthorizationStatus() location.AuthorizationStatus
	// StartUpdatingLocation is idempotent.
	StartUpdatingLocation()
	RequestAlwaysAuthorization()
	RequestWhenInUseAuthorization()
}

// Delegate is the callback target of a Manager. Every callback carries the
// Handle of the manager making it. Callbacks may arrive on any goroutine but a
// manager must not make them concurrently.
type Delegate interface {
	DidPauseLocationUpdates(source Handle)
	DidResumeLocationUpdates(source Handle)
	DidVisit(source Handle, visit location.Visit)
	DidExitRegion(source Handle, region location.Region)
	DidEnterRegion(source Handle, region location.Region)
	ShouldDisplayHeadingCalibration(source Handle) bool
	DidStartMonitoring(source Handle, region location.Region)
	DidUpdateHeading(source Handle, heading location.Heading)
	DidUpdateLocations(source Handle, locations []location.Location)
	// DidFinishDeferredUpdates reports a nil err when the batch was delivered.
	DidFinishDeferredUpdates(source Handle, err error)
	DidChangeAuthorization(source Handle, status location.AuthorizationStatus)
	DidDetermineState(source Handle, state location.RegionState, region location.Region)
	// MonitoringDidFail reports a nil region when the failure is not tied to
	// one.
	MonitoringDidFail(source Handle, region *location.Region, err error)
	DidFailRanging(source Handle, constraint location.BeaconConstraint, err error)
	DidRange(source Handle, beacons []location.Beacon, constraint location.BeaconConstraint)
	// DidFail reports an unrecoverable subsystem error.
	DidFail(source Handle, err error)
}
