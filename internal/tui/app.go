package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dm/t8-go/internal/client"
	"github.com/dm/t8-go/internal/engine"
	"github.com/dm/t8-go/internal/format"
	"github.com/dm/t8-go/internal/timefmt"
)

type connState int

const (
	stateConnected connState = iota
	stateDisconnected
)

// maxHistory bounds the temperature series kept for the sparklines.
const maxHistory = 120

// App is the root Bubble Tea model for the watch dashboard.
type App struct {
	client       client.T8Client
	pollInterval time.Duration

	// Poll state
	fetching  bool // true while a fetchCmd goroutine is in-flight
	current   *engine.DeviceSnapshot
	cpuTemps  []float64
	boardTemp []float64

	// Connection state
	connState        connState
	consecutiveFails int
	lastError        error
	lastUpdated      time.Time

	// Layout
	width, height int

	// UI state
	showHelp bool
}

// NewApp creates a new App with the given client and poll interval.
func NewApp(c client.T8Client, interval time.Duration) *App {
	return &App{
		client:       c,
		pollInterval: interval,
		connState:    stateDisconnected,
		fetching:     true, // Init() always issues an immediate fetchCmd
	}
}

// Init implements tea.Model. Starts the first fetch immediately on launch.
func (app *App) Init() tea.Cmd {
	return fetchCmd(app.client, app.pollInterval)
}

// Update implements tea.Model — the single state-mutation entry point.
func (app *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		app.width = msg.Width
		app.height = msg.Height

	case SnapshotMsg:
		app.fetching = false
		app.current = msg.Snapshot
		app.cpuTemps = pushCapped(app.cpuTemps, msg.Snapshot.Status.CPUTemp)
		app.boardTemp = pushCapped(app.boardTemp, msg.Snapshot.Status.BoardTemp)
		app.consecutiveFails = 0
		app.lastError = nil
		app.connState = stateConnected
		app.lastUpdated = msg.Snapshot.FetchedAt
		return app, tickCmd(app.pollInterval)

	case FetchErrorMsg:
		app.fetching = false
		app.consecutiveFails++
		app.lastError = msg.Err
		app.connState = stateDisconnected
		return app, tickCmd(backoffDuration(app.consecutiveFails))

	case TickMsg:
		if app.fetching {
			return app, nil
		}
		app.fetching = true
		return app, fetchCmd(app.client, app.pollInterval)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return app, tea.Quit
		case key.Matches(msg, keys.Refresh):
			if app.fetching {
				return app, nil
			}
			app.fetching = true
			return app, fetchCmd(app.client, app.pollInterval)
		case key.Matches(msg, keys.Help):
			app.showHelp = !app.showHelp
		}
	}

	return app, nil
}

// View implements tea.Model. Renders the full dashboard.
func (app *App) View() string {
	var parts []string

	parts = append(parts, app.renderHeader())
	if app.current != nil {
		parts = append(parts, app.renderStatus())
		parts = append(parts, app.renderTemps())
	}
	parts = append(parts, app.renderFooter())

	return strings.Join(parts, "\n")
}

func (app *App) renderHeader() string {
	title := "t8 watch — " + app.client.Host()
	if app.current != nil {
		info := app.current.Info
		title += fmt.Sprintf("  [%s %s  %s]", info.Model, info.Variant, info.FullSerial)
	}
	return styleHeader.Render(title)
}

func (app *App) renderStatus() string {
	st := app.current.Status
	conn := styleStatusOK.Render("● connected")
	if app.connState == stateDisconnected {
		conn = styleStatusBad.Render("● disconnected")
	}
	lines := []string{
		conn,
		fmt.Sprintf("Time         %s", timefmt.Format(st.Timestamp)),
		fmt.Sprintf("Host         %s (%s)", st.Host, st.IPAddr),
		fmt.Sprintf("Input        %s   Fan PWM %d", format.FormatVolts(st.VInput), st.FanPWM),
		fmt.Sprintf("Data mount   %s / %s used",
			format.FormatBytes(st.DataMount.Used), format.FormatBytes(st.DataMount.Total)),
	}
	return strings.Join(lines, "\n")
}

func (app *App) renderTemps() string {
	st := app.current.Status
	width := app.width - 24
	if width < 10 {
		width = 10
	}
	cpu := fmt.Sprintf("CPU   %s %s",
		format.FormatCelsius(st.CPUTemp), RenderSparkline(app.cpuTemps, width, colorCyan))
	board := fmt.Sprintf("Board %s %s",
		format.FormatCelsius(st.BoardTemp), RenderSparkline(app.boardTemp, width, colorOrange))
	return cpu + "\n" + board
}

func (app *App) renderFooter() string {
	var status string
	switch {
	case app.lastError != nil:
		status = styleStatusBad.Render("error: " + app.lastError.Error())
	case app.fetching:
		status = "fetching..."
	case !app.lastUpdated.IsZero():
		status = "updated " + app.lastUpdated.Format("15:04:05")
	}
	if app.showHelp {
		return status + "\n" + helpText
	}
	return status + "\n" + styleFooter.Render("q: quit  r: refresh  ?: help")
}

func pushCapped(vals []float64, v float64) []float64 {
	vals = append(vals, v)
	if len(vals) > maxHistory {
		vals = vals[len(vals)-maxHistory:]
	}
	return vals
}

// tickCmd schedules the next poll after duration d.
func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// fetchCmd is a Bubble Tea command that polls both status endpoints and
// returns a SnapshotMsg or FetchErrorMsg.
func fetchCmd(c client.T8Client, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		timeout := interval - 500*time.Millisecond
		if timeout < 500*time.Millisecond {
			timeout = 500 * time.Millisecond
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		snap, err := engine.FetchAll(ctx, c)
		if err != nil {
			return FetchErrorMsg{Err: err}
		}
		return SnapshotMsg{Snapshot: snap}
	}
}

// backoffDuration returns min(2^fails * time.Second, 60*time.Second).
// At fails=1: 2s, fails=2: 4s, fails=3: 8s, ..., fails>=6: 60s.
func backoffDuration(fails int) time.Duration {
	const maxBackoff = 60 * time.Second
	if fails <= 0 {
		return time.Second
	}
	if fails >= 6 {
		return maxBackoff
	}
	return time.Duration(1<<fails) * time.Second
}
