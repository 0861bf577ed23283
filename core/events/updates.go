package events

const (
	// KindUpdatesPaused identifies the subsystem pausing location delivery.
	KindUpdatesPaused Kind = "updates.paused"
	// KindUpdatesResumed identifies the subsystem resuming location delivery.
	KindUpdatesResumed Kind = "updates.resumed"
	// KindDeferredUpdatesFinished identifies a completed deferred delivery batch.
	KindDeferredUpdatesFinished Kind = "updates.deferred_finished"
	// KindDeferredUpdatesFailed identifies a deferred delivery batch that
	// ended with an error.
	KindDeferredUpdatesFailed Kind = "updates.deferred_failed"
)

// UpdatesPaused marks the subsystem pausing location updates on its own.
type UpdatesPaused struct{ Base }

// NewUpdatesPaused creates an updates paused event.
func NewUpdatesPaused() UpdatesPaused {
	return UpdatesPaused{Base: NewBase(KindUpdatesPaused)}
}

// UpdatesResumed marks the subsystem resuming location updates.
type UpdatesResumed struct{ Base }

// NewUpdatesResumed creates an updates resumed event.
func NewUpdatesResumed() UpdatesResumed {
	return UpdatesResumed{Base: NewBase(KindUpdatesResumed)}
}

// DeferredUpdatesFinished marks a deferred update batch that was delivered.
type DeferredUpdatesFinished struct{ Base }

// NewDeferredUpdatesFinished creates a deferred updates finished event.
func NewDeferredUpdatesFinished() DeferredUpdatesFinished {
	return DeferredUpdatesFinished{Base: NewBase(KindDeferredUpdatesFinished)}
}

// DeferredUpdatesFailed carries the error a deferred update batch ended with.
// It is informational; the stream stays open.
type DeferredUpdatesFailed struct {
	Base
	Err error
}

// NewDeferredUpdatesFailed creates a deferred updates failed event.
func NewDeferredUpdatesFailed(err error) DeferredUpdatesFailed {
	return DeferredUpdatesFailed{Base: NewBase(KindDeferredUpdatesFailed), Err: err}
}

// NewDeferredUpdatesResult picks the finished or failed variant depending on
// whether err is nil.
func NewDeferredUpdatesResult(err error) Event {
	if err != nil {
		return NewDeferredUpdatesFailed(err)
	}
	return NewDeferredUpdatesFinished()
}
