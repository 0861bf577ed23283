package websocket

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/invopop/jsonschema"
	"github.com/jinzhu/copier"
	"github.com/koscakluka/whereabouts/core/location"
)

type FrameType string

const (
	FrameHello             FrameType = "hello"
	FramePaused            FrameType = "paused"
	FrameResumed           FrameType = "resumed"
	FrameVisit             FrameType = "visit"
	FrameExitedRegion      FrameType = "exited_region"
	FrameEnteredRegion     FrameType = "entered_region"
	FrameStartedMonitoring FrameType = "started_monitoring"
	FrameHeading           FrameType = "heading"
	FrameLocations         FrameType = "locations"
	FrameDeferredFinished  FrameType = "deferred_finished"
	FrameAuthorization     FrameType = "authorization"
	FrameRegionState       FrameType = "region_state"
	FrameMonitoringFailed  FrameType = "monitoring_failed"
	FrameRangingFailed     FrameType = "ranging_failed"
	FrameRanged            FrameType = "ranged"
	FrameFailed            FrameType = "failed"
	// FrameHeadingCalibration asks whether to show the compass calibration
	// prompt. It is answered with a CommandHeadingCalibration.
	FrameHeadingCalibration FrameType = "heading_calibration"
)

// Frame is a message sent by the device. Only the fields belonging to its
// type are set.
type Frame struct {
	Type FrameType `json:"type" jsonschema:"required,enum=hello,enum=paused,enum=resumed,enum=visit,enum=exited_region,enum=entered_region,enum=started_monitoring,enum=heading,enum=locations,enum=deferred_finished,enum=authorization,enum=region_state,enum=monitoring_failed,enum=ranging_failed,enum=ranged,enum=failed,enum=heading_calibration"`

	// Authorization is set on hello and authorization frames.
	Authorization string `json:"authorization,omitempty" jsonschema:"enum=not_determined,enum=denied,enum=restricted,enum=authorized_when_in_use,enum=authorized_always"`

	Locations  []Location  `json:"locations,omitempty"`
	Heading    *Heading    `json:"heading,omitempty"`
	Visit      *Visit      `json:"visit,omitempty"`
	Region     *Region     `json:"region,omitempty"`
	State      string      `json:"state,omitempty" jsonschema:"enum=unknown,enum=inside,enum=outside"`
	Constraint *Constraint `json:"constraint,omitempty"`
	Beacons    []Beacon    `json:"beacons,omitempty"`
	Error      string      `json:"error,omitempty" jsonschema:"description=Failure reported by the device. Empty on a successful deferred_finished."`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	Coordinate         Coordinate `json:"coordinate" jsonschema:"required"`
	Altitude           float64    `json:"altitude"`
	HorizontalAccuracy float64    `json:"horizontal_accuracy"`
	VerticalAccuracy   float64    `json:"vertical_accuracy"`
	Speed              float64    `json:"speed"`
	Course             float64    `json:"course"`
	Floor              *int       `json:"floor,omitempty"`
	Timestamp          time.Time  `json:"timestamp"`
}

type Heading struct {
	MagneticHeading float64   `json:"magnetic_heading"`
	TrueHeading     float64   `json:"true_heading"`
	Accuracy        float64   `json:"accuracy"`
	X               float64   `json:"x"`
	Y               float64   `json:"y"`
	Z               float64   `json:"z"`
	Timestamp       time.Time `json:"timestamp"`
}

type Visit struct {
	Coordinate         Coordinate `json:"coordinate" jsonschema:"required"`
	HorizontalAccuracy float64    `json:"horizontal_accuracy"`
	Arrival            time.Time  `json:"arrival"`
	Departure          time.Time  `json:"departure,omitzero"`
}

type Region struct {
	Identifier    string     `json:"identifier" jsonschema:"required"`
	Center        Coordinate `json:"center"`
	Radius        float64    `json:"radius"`
	NotifyOnEntry bool       `json:"notify_on_entry"`
	NotifyOnExit  bool       `json:"notify_on_exit"`
}

type Constraint struct {
	UUID  string  `json:"uuid" jsonschema:"required,format=uuid"`
	Major *uint16 `json:"major,omitempty"`
	Minor *uint16 `json:"minor,omitempty"`
}

type Beacon struct {
	UUID      string    `json:"uuid" jsonschema:"required,format=uuid"`
	Major     uint16    `json:"major"`
	Minor     uint16    `json:"minor"`
	Proximity string    `json:"proximity" jsonschema:"enum=unknown,enum=immediate,enum=near,enum=far"`
	Accuracy  float64   `json:"accuracy"`
	RSSI      int       `json:"rssi"`
	Timestamp time.Time `json:"timestamp"`
}

type CommandType string

const (
	CommandSetDesiredAccuracy    CommandType = "set_desired_accuracy"
	CommandStartUpdatingLocation CommandType = "start_updating_location"
	CommandRequestAuthorization  CommandType = "request_authorization"
	CommandHeadingCalibration    CommandType = "heading_calibration"
)

// Command is a message sent to the device.
type Command struct {
	Type     CommandType `json:"type" jsonschema:"required,enum=set_desired_accuracy,enum=start_updating_location,enum=request_authorization,enum=heading_calibration"`
	Accuracy string      `json:"accuracy,omitempty"`
	Level    string      `json:"level,omitempty" jsonschema:"enum=always,enum=when_in_use"`
	Display  *bool       `json:"display,omitempty"`
}

// Schema describes the frames a device sends.
func Schema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&Frame{})
}

// CommandSchema describes the commands a device receives.
func CommandSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{DoNotReference: true}
	return reflector.Reflect(&Command{})
}

var proximities = map[string]location.Proximity{
	"":          location.ProximityUnknown,
	"unknown":   location.ProximityUnknown,
	"immediate": location.ProximityImmediate,
	"near":      location.ProximityNear,
	"far":       location.ProximityFar,
}

var converters = []copier.TypeConverter{
	{
		SrcType: "",
		DstType: uuid.UUID{},
		Fn: func(src interface{}) (interface{}, error) {
			return uuid.Parse(src.(string))
		},
	},
	{
		SrcType: "",
		DstType: location.ProximityUnknown,
		Fn: func(src interface{}) (interface{}, error) {
			proximity, ok := proximities[src.(string)]
			if !ok {
				return nil, fmt.Errorf("unknown proximity %q", src)
			}
			return proximity, nil
		},
	},
}

// convert copies a wire value into its location counterpart.
func convert(to, from any) error {
	return copier.CopyWithOption(to, from, copier.Option{Converters: converters})
}

func parseRegionState(name string) (location.RegionState, error) {
	switch name {
	case "", "unknown":
		return location.RegionStateUnknown, nil
	case "inside":
		return location.RegionStateInside, nil
	case "outside":
		return location.RegionStateOutside, nil
	default:
		return location.RegionStateUnknown, fmt.Errorf("unknown region state %q", name)
	}
}
