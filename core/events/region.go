package events

import "github.com/koscakluka/whereabouts/core/location"

const (
	// KindRegionEntered identifies the device entering a monitored region.
	KindRegionEntered Kind = "region.entered"
	// KindRegionExited identifies the device leaving a monitored region.
	KindRegionExited Kind = "region.exited"
	// KindRegionMonitoringStarted identifies the start of region monitoring.
	KindRegionMonitoringStarted Kind = "region.monitoring_started"
	// KindRegionMonitoringFailed identifies a region monitoring failure.
	KindRegionMonitoringFailed Kind = "region.monitoring_failed"
	// KindRegionStateDetermined identifies a resolved region state.
	KindRegionStateDetermined Kind = "region.state_determined"
)

// RegionEntered marks the device entering Region.
type RegionEntered struct {
	Base
	Region location.Region
}

// NewRegionEntered creates a region entered event.
func NewRegionEntered(region location.Region) RegionEntered {
	return RegionEntered{Base: NewBase(KindRegionEntered), Region: region}
}

// RegionExited marks the device leaving Region.
type RegionExited struct {
	Base
	Region location.Region
}

// NewRegionExited creates a region exited event.
func NewRegionExited(region location.Region) RegionExited {
	return RegionExited{Base: NewBase(KindRegionExited), Region: region}
}

// RegionMonitoringStarted marks the subsystem beginning to monitor Region.
type RegionMonitoringStarted struct {
	Base
	Region location.Region
}

// NewRegionMonitoringStarted creates a region monitoring started event.
func NewRegionMonitoringStarted(region location.Region) RegionMonitoringStarted {
	return RegionMonitoringStarted{Base: NewBase(KindRegionMonitoringStarted), Region: region}
}

// RegionMonitoringFailed carries a monitoring error. Region is nil when the
// subsystem could not attribute the failure to a region.
type RegionMonitoringFailed struct {
	Base
	Region *location.Region
	Err    error
}

// NewRegionMonitoringFailed creates a region monitoring failed event.
func NewRegionMonitoringFailed(region *location.Region, err error) RegionMonitoringFailed {
	return RegionMonitoringFailed{Base: NewBase(KindRegionMonitoringFailed), Region: region, Err: err}
}

// RegionStateDetermined carries the state of the device relative to Region.
type RegionStateDetermined struct {
	Base
	State  location.RegionState
	Region location.Region
}

// NewRegionStateDetermined creates a region state determined event.
func NewRegionStateDetermined(state location.RegionState, region location.Region) RegionStateDetermined {
	return RegionStateDetermined{Base: NewBase(KindRegionStateDetermined), State: state, Region: region}
}
