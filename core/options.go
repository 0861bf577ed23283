package positioning

import (
	"context"

	"github.com/koscakluka/whereabouts/core/broadcast"
	"github.com/koscakluka/whereabouts/core/events"
	"github.com/koscakluka/whereabouts/core/location"
)

// Config is fixed when the Adapter is created.
type Config struct {
	// DesiredAuthorization decides which authorization request is issued:
	// AuthorizationAlways asks for always, anything else for when in use.
	DesiredAuthorization location.AuthorizationStatus
	// ShouldDisplayHeadingCalibration is the answer given to the manager when
	// it asks whether to show the compass calibration prompt.
	ShouldDisplayHeadingCalibration bool
}

// DefaultConfig asks for when-in-use authorization and suppresses the
// calibration prompt.
func DefaultConfig() Config {
	return Config{
		DesiredAuthorization:            location.AuthorizationWhenInUse,
		ShouldDisplayHeadingCalibration: false,
	}
}

type AdapterOption func(*Adapter)

// WithConfig replaces the whole configuration.
func WithConfig(config Config) AdapterOption {
	return func(a *Adapter) {
		a.config = config
	}
}

func WithDesiredAuthorization(status location.AuthorizationStatus) AdapterOption {
	return func(a *Adapter) {
		a.config.DesiredAuthorization = status
	}
}

func WithHeadingCalibrationPrompt(display bool) AdapterOption {
	return func(a *Adapter) {
		a.config.ShouldDisplayHeadingCalibration = display
	}
}

// WithContext sets the context used as parent of the adapter's telemetry.
// It does not bound the adapter's lifetime.
func WithContext(ctx context.Context) AdapterOption {
	return func(a *Adapter) {
		if ctx != nil {
			a.baseContext = ctx
		}
	}
}

// WithEventSink subscribes the sink built by sink before the adapter becomes
// the manager's delegate, so it also sees events the manager reports while
// the adapter is being created.
func WithEventSink(sink func(*Adapter) broadcast.Sink[events.Event]) AdapterOption {
	return func(a *Adapter) {
		a.initialSinks = append(a.initialSinks, sink)
	}
}
