// Package websocket provides a positioning.Manager for a remote device. The
// device streams its positioning callbacks as JSON frames and receives
// commands back over the same connection.
//
// A connection starts with a hello frame carrying the device's authorization
// status. Frames after it are read once a delegate is registered and are
// delivered on the connection's read goroutine.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	gorilla "github.com/gorilla/websocket"
	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/location"
	"github.com/koscakluka/whereabouts/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrHandshake = errors.New("device handshake failed")
	ErrClosed    = errors.New("device connection closed")
)

// DeviceError is a failure reported by the device in a frame.
type DeviceError struct {
	Message string
}

func (e *DeviceError) Error() string {
	return "device: " + e.Message
}

func deviceError(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &DeviceError{Message: message}
}

type Manager struct {
	handle positioning.Handle
	conn   *gorilla.Conn

	// connMu serializes writes; the read goroutine is the only reader.
	connMu sync.Mutex

	mu       sync.Mutex
	delegate positioning.Delegate
	status   location.AuthorizationStatus
	closing  bool

	readOnce  sync.Once
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

// Dial connects to a device listening at url and waits for its hello frame.
func Dial(ctx context.Context, url string, opts ...Option) (*Manager, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(ctx, "dial device", trace.WithAttributes(attribute.String("url", url)))
	defer span.End()

	conn, _, err := options.dialer.DialContext(ctx, url, options.header)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to open device websocket: %w", err)
	}

	m, err := handshake(ctx, conn, options)
	if err != nil {
		conn.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("authorization", m.status.String()))
	return m, nil
}

// Accept upgrades a device's HTTP request and waits for its hello frame. On
// an upgrade failure the response has already been written.
func Accept(w http.ResponseWriter, r *http.Request, opts ...Option) (*Manager, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	ctx, span := tracer.Start(r.Context(), "accept device", trace.WithAttributes(attribute.String("remote", r.RemoteAddr)))
	defer span.End()

	conn, err := options.upgrader.Upgrade(w, r, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to upgrade device connection: %w", err)
	}

	m, err := handshake(ctx, conn, options)
	if err != nil {
		conn.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.String("authorization", m.status.String()))
	return m, nil
}

func handshake(ctx context.Context, conn *gorilla.Conn, opts options) (*Manager, error) {
	deadline := time.Now().Add(opts.handshakeTimeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
	})
	defer stop()

	var hello Frame
	if err := conn.ReadJSON(&hello); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}
	if hello.Type != FrameHello {
		return nil, fmt.Errorf("%w: expected %q frame, got %q", ErrHandshake, FrameHello, hello.Type)
	}
	status, err := location.ParseAuthorizationStatus(hello.Authorization)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	if !stop() {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, ctx.Err())
	}
	if err := conn.SetReadDeadline(time.Time{}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHandshake, err)
	}

	return &Manager{
		handle: positioning.NewHandle(),
		conn:   conn,
		status: status,
		done:   make(chan struct{}),
	}, nil
}

func (m *Manager) Handle() positioning.Handle { return m.handle }

// SetDelegate registers delegate and starts reading device frames.
func (m *Manager) SetDelegate(delegate positioning.Delegate) {
	m.mu.Lock()
	m.delegate = delegate
	m.mu.Unlock()

	m.readOnce.Do(func() { go m.readAndProcessFrames() })
}

func (m *Manager) SetDesiredAccuracy(accuracy location.Accuracy) {
	m.send(Command{Type: CommandSetDesiredAccuracy, Accuracy: accuracy.String()})
}

func (m *Manager) AuthorizationStatus() location.AuthorizationStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) StartUpdatingLocation() {
	m.send(Command{Type: CommandStartUpdatingLocation})
}

func (m *Manager) RequestAlwaysAuthorization() {
	m.send(Command{Type: CommandRequestAuthorization, Level: "always"})
}

func (m *Manager) RequestWhenInUseAuthorization() {
	m.send(Command{Type: CommandRequestAuthorization, Level: "when_in_use"})
}

// Close sends a close frame and closes the connection. The registered
// delegate is told the manager failed with ErrClosed.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closing = true
		m.mu.Unlock()

		m.connMu.Lock()
		message := gorilla.FormatCloseMessage(gorilla.CloseNormalClosure, "")
		if err := m.conn.WriteControl(gorilla.CloseMessage, message, time.Now().Add(time.Second)); err != nil {
			logger.Debug("failed to send close frame to device", "error", err)
		}
		m.connMu.Unlock()

		if err := m.conn.Close(); err != nil {
			m.closeErr = fmt.Errorf("failed to close device websocket: %w", err)
		}
	})
	return m.closeErr
}

// Done is closed once the read goroutine has stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

func (m *Manager) send(command Command) {
	m.connMu.Lock()
	defer m.connMu.Unlock()

	if err := m.conn.WriteJSON(command); err != nil {
		logger.Warn("failed to write device command", "type", string(command.Type), "error", err)
	}
}

func (m *Manager) registered() positioning.Delegate {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.delegate
}

func (m *Manager) readAndProcessFrames() {
	defer close(m.done)

	for {
		msgType, msg, err := m.conn.ReadMessage()
		if err != nil {
			m.connectionLost(err)
			return
		}
		if msgType != gorilla.TextMessage {
			logger.Warn("ignoring binary device message", "handle", m.handle.String())
			continue
		}
		m.processFrame(msg)
	}
}

func (m *Manager) connectionLost(err error) {
	m.mu.Lock()
	closing := m.closing
	m.mu.Unlock()

	switch {
	case closing:
		err = ErrClosed
	case gorilla.IsCloseError(err, gorilla.CloseNormalClosure, gorilla.CloseGoingAway):
		err = fmt.Errorf("%w: %w", ErrClosed, err)
	default:
		logger.Warn("failed to read device frame", "handle", m.handle.String(), "error", err)
		err = fmt.Errorf("failed to read device frame: %w", err)
	}
	m.conn.Close()

	if delegate := m.registered(); delegate != nil {
		delegate.DidFail(m.handle, err)
	}
}

func (m *Manager) processFrame(msg []byte) {
	var frame Frame
	if err := json.Unmarshal(msg, &frame); err != nil {
		logger.Warn("failed to unmarshal device frame", "handle", m.handle.String(), "error", err)
		return
	}

	if err := m.dispatch(frame); err != nil {
		logger.Warn("skipping device frame", "handle", m.handle.String(), "type", string(frame.Type), "error", err)
	}
}

func (m *Manager) dispatch(frame Frame) error {
	delegate := m.registered()
	if delegate == nil {
		return errors.New("no delegate registered")
	}

	switch frame.Type {
	case FramePaused:
		delegate.DidPauseLocationUpdates(m.handle)

	case FrameResumed:
		delegate.DidResumeLocationUpdates(m.handle)

	case FrameVisit:
		if frame.Visit == nil {
			return errors.New("missing visit")
		}
		var visit location.Visit
		if err := convert(&visit, frame.Visit); err != nil {
			return fmt.Errorf("invalid visit: %w", err)
		}
		delegate.DidVisit(m.handle, visit)

	case FrameExitedRegion, FrameEnteredRegion, FrameStartedMonitoring:
		region, err := requireRegion(frame)
		if err != nil {
			return err
		}
		switch frame.Type {
		case FrameExitedRegion:
			delegate.DidExitRegion(m.handle, region)
		case FrameEnteredRegion:
			delegate.DidEnterRegion(m.handle, region)
		default:
			delegate.DidStartMonitoring(m.handle, region)
		}

	case FrameHeadingCalibration:
		display := delegate.ShouldDisplayHeadingCalibration(m.handle)
		m.send(Command{Type: CommandHeadingCalibration, Display: utils.Ptr(display)})

	case FrameHeading:
		if frame.Heading == nil {
			return errors.New("missing heading")
		}
		var heading location.Heading
		if err := convert(&heading, frame.Heading); err != nil {
			return fmt.Errorf("invalid heading: %w", err)
		}
		delegate.DidUpdateHeading(m.handle, heading)

	case FrameLocations:
		var locations []location.Location
		if len(frame.Locations) > 0 {
			if err := convert(&locations, frame.Locations); err != nil {
				return fmt.Errorf("invalid locations: %w", err)
			}
		}
		delegate.DidUpdateLocations(m.handle, locations)

	case FrameDeferredFinished:
		var err error
		if frame.Error != "" {
			err = deviceError(frame.Error, "")
		}
		delegate.DidFinishDeferredUpdates(m.handle, err)

	case FrameAuthorization:
		status, err := location.ParseAuthorizationStatus(frame.Authorization)
		if err != nil {
			return err
		}
		m.mu.Lock()
		m.status = status
		m.mu.Unlock()
		delegate.DidChangeAuthorization(m.handle, status)

	case FrameRegionState:
		state, err := parseRegionState(frame.State)
		if err != nil {
			return err
		}
		region, err := requireRegion(frame)
		if err != nil {
			return err
		}
		delegate.DidDetermineState(m.handle, state, region)

	case FrameMonitoringFailed:
		var region *location.Region
		if frame.Region != nil {
			region = &location.Region{}
			if err := convert(region, frame.Region); err != nil {
				return fmt.Errorf("invalid region: %w", err)
			}
		}
		delegate.MonitoringDidFail(m.handle, region, deviceError(frame.Error, "region monitoring failed"))

	case FrameRangingFailed:
		constraint, err := requireConstraint(frame)
		if err != nil {
			return err
		}
		delegate.DidFailRanging(m.handle, constraint, deviceError(frame.Error, "beacon ranging failed"))

	case FrameRanged:
		constraint, err := requireConstraint(frame)
		if err != nil {
			return err
		}
		var beacons []location.Beacon
		if len(frame.Beacons) > 0 {
			if err := convert(&beacons, frame.Beacons); err != nil {
				return fmt.Errorf("invalid beacons: %w", err)
			}
		}
		delegate.DidRange(m.handle, beacons, constraint)

	case FrameFailed:
		delegate.DidFail(m.handle, deviceError(frame.Error, "device failed"))

	case FrameHello:
		return errors.New("repeated hello")

	default:
		return fmt.Errorf("unknown frame type %q", frame.Type)
	}
	return nil
}

func requireRegion(frame Frame) (location.Region, error) {
	var region location.Region
	if frame.Region == nil {
		return region, errors.New("missing region")
	}
	if err := convert(&region, frame.Region); err != nil {
		return region, fmt.Errorf("invalid region: %w", err)
	}
	return region, nil
}

func requireConstraint(frame Frame) (location.BeaconConstraint, error) {
	var constraint location.BeaconConstraint
	if frame.Constraint == nil {
		return constraint, errors.New("missing beacon constraint")
	}
	if err := convert(&constraint, frame.Constraint); err != nil {
		return constraint, fmt.Errorf("invalid beacon constraint: %w", err)
	}
	return constraint, nil
}

var _ positioning.Manager = (*Manager)(nil)
