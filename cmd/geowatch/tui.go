package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	positioning "github.com/koscakluka/whereabouts/core"
	"github.com/koscakluka/whereabouts/core/events"
	"github.com/koscakluka/whereabouts/core/location"
	"github.com/muesli/reflow/truncate"
)

const (
	maxLogLines   = 500
	defaultWidth  = 80
	defaultHeight = 24
	headerHeight  = 2
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	deviceStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	terminatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	mutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	logBorderStyle  = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true).BorderForeground(lipgloss.Color("8"))
)

type deviceID struct {
	handle positioning.Handle
	remote string
}

type deviceConnectedMsg struct {
	device        deviceID
	authorization location.AuthorizationStatus
}

type deviceEventMsg struct {
	device deviceID
	event  events.Event
	state  positioning.AuthorizationState
}

type deviceStateMsg struct {
	device deviceID
	state  positioning.AuthorizationState
}

type deviceTerminatedMsg struct {
	device deviceID
	err    error
}

type serverFailedMsg struct {
	err error
}

type deviceView struct {
	id            deviceID
	authorization location.AuthorizationStatus
	state         positioning.AuthorizationState
	current       *location.Location
	heading       *location.Heading
	events        int
	terminated    bool
	err           error
}

type model struct {
	addr string

	spinner  spinner.Model
	viewport viewport.Model
	width    int
	height   int

	devices []*deviceView
	log     []string

	err error
}

func newModel(addr string) model {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(mutedStyle))
	m := model{
		addr:     addr,
		spinner:  s,
		viewport: viewport.New(defaultWidth, defaultHeight-headerHeight),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	return m
}

func (m model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case deviceConnectedMsg:
		m.devices = append(m.devices, &deviceView{
			id:            msg.device,
			authorization: msg.authorization,
		})
		m.appendLog(msg.device, "connected, authorization "+msg.authorization.String())
		m.resize()

	case deviceStateMsg:
		if device := m.device(msg.device); device != nil {
			device.state = msg.state
		}

	case deviceEventMsg:
		device := m.device(msg.device)
		if device == nil {
			break
		}
		device.events++
		device.state = msg.state
		switch event := msg.event.(type) {
		case events.LocationsUpdated:
			if len(event.Locations) > 0 {
				current := event.Locations[0]
				device.current = &current
			}
		case events.HeadingUpdated:
			heading := event.Heading
			device.heading = &heading
		case events.AuthorizationChanged:
			device.authorization = event.Status
		}
		m.appendLog(msg.device, describe(msg.event))

	case deviceTerminatedMsg:
		device := m.device(msg.device)
		if device == nil {
			break
		}
		device.terminated = true
		device.err = msg.err
		if msg.err != nil {
			m.appendLog(msg.device, "terminated: "+msg.err.Error())
		} else {
			m.appendLog(msg.device, "completed")
		}

	case serverFailedMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("geowatch"))
	b.WriteString(mutedStyle.Render(fmt.Sprintf("  listening on %s/device  (q to quit)", m.addr)))
	b.WriteString("\n")

	if len(m.devices) == 0 {
		b.WriteString(m.spinner.View() + " waiting for devices\n")
	}
	for _, device := range m.devices {
		b.WriteString(m.fit(m.renderDevice(device)))
		b.WriteString("\n")
	}

	b.WriteString(logBorderStyle.Width(m.width).Render(m.viewport.View()))
	return b.String()
}

func (m model) renderDevice(device *deviceView) string {
	position := "no fix yet"
	if device.current != nil {
		position = fmt.Sprintf("%.6f, %.6f ±%.0fm",
			device.current.Coordinate.Latitude,
			device.current.Coordinate.Longitude,
			device.current.HorizontalAccuracy)
	}
	heading := ""
	if device.heading != nil {
		heading = fmt.Sprintf("  heading %.0f°", device.heading.TrueHeading)
	}

	line := fmt.Sprintf("%s %s  %s  %s/%s  %d events%s",
		shortHandle(device.id.handle),
		device.id.remote,
		position,
		device.authorization,
		device.state,
		device.events,
		heading)

	switch {
	case device.terminated && device.err != nil:
		return terminatedStyle.Render("✗ " + line)
	case device.terminated:
		return mutedStyle.Render("■ " + line)
	default:
		return deviceStyle.Render("● " + line)
	}
}

// fit truncates a rendered line to the terminal width.
func (m model) fit(line string) string {
	if m.width <= 0 {
		return line
	}
	return truncate.StringWithTail(line, uint(m.width), "…")
}

func (m *model) device(id deviceID) *deviceView {
	for _, device := range m.devices {
		if device.id == id {
			return device
		}
	}
	return nil
}

func (m *model) appendLog(id deviceID, text string) {
	line := fmt.Sprintf("%s %s %s", time.Now().Format(time.TimeOnly), shortHandle(id.handle), text)
	m.log = append(m.log, m.fit(line))
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
	m.viewport.SetContent(strings.Join(m.log, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) resize() {
	m.viewport.Width = m.width
	m.viewport.Height = max(1, m.height-headerHeight-max(1, len(m.devices))-1)
}

func shortHandle(handle positioning.Handle) string {
	s := handle.String()
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
