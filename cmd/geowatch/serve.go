package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/broadcast"
	"github.com/koscakluka/whereabouts/core/events"
	"github.com/koscakluka/whereabouts/core/location"
	"github.com/koscakluka/whereabouts/core/providers/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 5 * time.Second

type serveConfig struct {
	addr             string
	always           bool
	calibration      bool
	handshakeTimeout time.Duration
}

func (c serveConfig) adapterOptions(ctx context.Context) []positioning.AdapterOption {
	desired := location.AuthorizationWhenInUse
	if c.always {
		desired = location.AuthorizationAlways
	}
	return []positioning.AdapterOption{
		positioning.WithContext(ctx),
		positioning.WithDesiredAuthorization(desired),
		positioning.WithHeadingCalibrationPrompt(c.calibration),
	}
}

func serve(ctx context.Context, config serveConfig) error {
	program := tea.NewProgram(newModel(config.addr), tea.WithAltScreen(), tea.WithContext(ctx))
	devices := newDeviceServer(config, program)

	mux := http.NewServeMux()
	mux.Handle("/device", devices)
	server := &http.Server{
		Addr:              config.addr,
		Handler:           otelhttp.NewHandler(mux, "geowatch"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			program.Send(serverFailedMsg{err: err})
		}
	}()

	final, runErr := program.Run()

	devices.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("terminal ui failed: %w", runErr)
	}
	if m, ok := final.(model); ok && m.err != nil {
		return fmt.Errorf("failed to serve devices: %w", m.err)
	}
	return nil
}

// messenger is the part of a tea.Program the device server reports to.
type messenger interface {
	Send(msg tea.Msg)
}

// deviceServer turns every accepted websocket into a positioning adapter and
// forwards its stream to the terminal UI.
type deviceServer struct {
	config serveConfig
	ui     messenger

	mu       sync.Mutex
	managers map[positioning.Handle]*websocket.Manager
}

func newDeviceServer(config serveConfig, ui messenger) *deviceServer {
	return &deviceServer{
		config:   config,
		ui:       ui,
		managers: make(map[positioning.Handle]*websocket.Manager),
	}
}

func (s *deviceServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	manager, err := websocket.Accept(w, r, websocket.WithHandshakeTimeout(s.config.handshakeTimeout))
	if err != nil {
		logger.Warn("failed to accept device", "remote", r.RemoteAddr, "error", err)
		return
	}
	s.watch(context.WithoutCancel(r.Context()), manager, r.RemoteAddr)
}

// watch builds an adapter for manager and reports its stream until it
// terminates. The device is reported before the adapter exists so events
// relayed while it is created are not lost.
func (s *deviceServer) watch(ctx context.Context, manager positioning.Manager, remote string) *positioning.Adapter {
	device := deviceID{handle: manager.Handle(), remote: remote}
	logger.Info("device connected", "handle", device.handle.String(), "remote", remote)

	if closer, ok := manager.(*websocket.Manager); ok {
		s.mu.Lock()
		s.managers[device.handle] = closer
		s.mu.Unlock()
	}
	s.ui.Send(deviceConnectedMsg{device: device, authorization: manager.AuthorizationStatus()})

	opts := append(s.config.adapterOptions(ctx), positioning.WithEventSink(func(adapter *positioning.Adapter) broadcast.Sink[events.Event] {
		return broadcast.Sink[events.Event]{
			Next: func(event events.Event) {
				s.ui.Send(deviceEventMsg{device: device, event: event, state: adapter.AuthorizationState()})
			},
			Done: func(err error) {
				logger.Info("device stream ended", "handle", device.handle.String(), "error", err)
				s.ui.Send(deviceTerminatedMsg{device: device, err: err})
				s.release(device.handle)
			},
		}
	}))
	adapter := positioning.NewAdapter(manager, opts...)
	s.ui.Send(deviceStateMsg{device: device, state: adapter.AuthorizationState()})
	return adapter
}

// release stops tracking the device and closes its connection.
func (s *deviceServer) release(handle positioning.Handle) {
	s.mu.Lock()
	manager, ok := s.managers[handle]
	delete(s.managers, handle)
	s.mu.Unlock()

	if !ok {
		return
	}
	if err := manager.Close(); err != nil {
		logger.Debug("failed to close device", "handle", handle.String(), "error", err)
	}
}

func (s *deviceServer) closeAll() {
	s.mu.Lock()
	managers := make([]*websocket.Manager, 0, len(s.managers))
	for _, manager := range s.managers {
		managers = append(managers, manager)
	}
	s.mu.Unlock()

	for _, manager := range managers {
		if err := manager.Close(); err != nil {
			logger.Debug("failed to close device", "handle", manager.Handle().String(), "error", err)
		}
	}
}
