// Package tui is the terminal dashboard. It renders dashboard.Snapshot
// values and turns key presses, timer ticks and fetch results into
// orchestrator calls on the Bubble Tea update loop.
package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/airwatch/internal/airquality"
	"github.com/jask/airwatch/internal/atlas"
	"github.com/jask/airwatch/internal/config"
	"github.com/jask/airwatch/internal/dashboard"
	"github.com/jask/airwatch/widgets"
)

// App ties the orchestrator to the terminal.
type App struct {
	ctx    context.Context
	client airquality.Client
	orch   *dashboard.Orchestrator
	places *atlas.Atlas
	logger *slog.Logger

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	viewport viewport.Model
	picker   *sectorPicker

	notice     string
	timeFormat string
	width      int
	height     int

	now   func() time.Time
	after func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

// Deps are the collaborators the dashboard needs.
type Deps struct {
	Client   airquality.Client
	Atlas    *atlas.Atlas
	Recorder dashboard.Recorder
	Logger   *slog.Logger
	// NewID generates request ids; nil uses random UUIDs.
	NewID func() string
}

type tickMsg struct{ epoch uint64 }

type resultMsg struct{ res dashboard.Result }

// scrollAdapter exposes the viewport offset to the orchestrator.
type scrollAdapter struct{ vp *viewport.Model }

func (s scrollAdapter) ScrollOffset() int { return s.vp.YOffset }

func (s scrollAdapter) SetScrollOffset(offset int) { s.vp.SetYOffset(offset) }

func New(ctx context.Context, cfg config.Config, deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	places := deps.Atlas
	if places == nil {
		places = atlas.Default()
	}
	a := &App{
		ctx:    ctx,
		client: deps.Client,
		places: places,
		logger: logger,
		orch: dashboard.New(dashboard.Options{
			InitialSector: cfg.UI.InitialSector,
			Interval:      cfg.Poll.Interval,
			TimeFormat:    cfg.UI.TimeFormat,
			NewID:         deps.NewID,
			Recorder:      deps.Recorder,
			Logger:        logger,
		}),
		keys:       defaultKeys(),
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(lipgloss.NewStyle().Foreground(colorMauve))),
		viewport:   viewport.New(100, 24),
		timeFormat: cfg.UI.TimeFormat,
		width:      100,
		height:     30,
		now:        time.Now,
		after:      tea.Tick,
	}
	if a.timeFormat == "" {
		a.timeFormat = "15:04:05"
	}
	a.orch.AttachViewport(scrollAdapter{vp: &a.viewport})
	a.refresh()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.run(a.orch.Start()), a.spinner.Tick)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		a.help.Width = msg.Width
		a.refresh()
		return a, nil
	case tickMsg:
		return a, a.run(a.orch.Tick(msg.epoch))
	case resultMsg:
		eff := a.orch.Apply(msg.res)
		a.refresh()
		return a, a.run(eff)
	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd
	case tea.MouseMsg:
		var cmd tea.Cmd
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	case tea.KeyMsg:
		if a.picker != nil {
			return a.handlePickerKey(msg)
		}
		return a.handleKey(msg)
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.notice = ""
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Refresh):
		cmd = a.run(a.orch.RequestRefresh())
	case key.Matches(msg, a.keys.Simulate):
		eff, err := a.orch.RequestSimulation("")
		if err != nil {
			a.refuse("simulate", err)
			break
		}
		cmd = a.run(eff)
	case key.Matches(msg, a.keys.Next), key.Matches(msg, a.keys.Prev):
		delta := 1
		if key.Matches(msg, a.keys.Prev) {
			delta = -1
		}
		eff, err := a.orch.SelectAdjacent(delta)
		if err != nil {
			a.refuse("select adjacent", err)
			break
		}
		cmd = a.run(eff)
	case key.Matches(msg, a.keys.Picker):
		snap := a.orch.Snapshot()
		if len(snap.Sectors) == 0 {
			a.notice = "sectors not loaded yet"
			break
		}
		a.picker = newSectorPicker(snap.Sectors)
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	default:
		a.viewport, cmd = a.viewport.Update(msg)
		return a, cmd
	}
	a.refresh()
	return a, cmd
}

func (a *App) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}
	action, id := a.picker.HandleKey(msg.String())
	switch action {
	case pickerActionSelected:
		a.picker = nil
		cmd := a.run(a.orch.SelectSector(id))
		a.refresh()
		return a, cmd
	case pickerActionCancelled:
		a.picker = nil
	}
	return a, nil
}

func (a *App) refuse(intent string, err error) {
	a.logger.Debug("intent refused", "intent", intent, "error", err)
	a.notice = err.Error()
}

// refresh re-renders the scrollable body from a fresh snapshot and lets the
// orchestrator restore any scroll offset whose refresh has completed.
func (a *App) refresh() {
	snap := a.orch.Snapshot()
	chrome := lipgloss.Height(renderHeader(snap, a.spinner.View(), a.width)) +
		lipgloss.Height(a.footer(snap))
	a.viewport.Width = a.width
	a.viewport.Height = max(1, a.height-chrome)
	a.viewport.SetContent(renderBody(snap, a.places, a.width))
	a.orch.Committed()
}

func (a *App) footer(snap dashboard.Snapshot) string {
	return renderFooter(snap, a.timeFormat, a.notice) + "\n" + a.help.View(a.keys)
}

func (a *App) View() string {
	snap := a.orch.Snapshot()
	out := renderHeader(snap, a.spinner.View(), a.width) + "\n" +
		a.viewport.View() + "\n" +
		a.footer(snap)
	if a.picker != nil {
		out = widgets.RenderPopup(out, a.picker.View(a.width), a.width, a.height)
	}
	return out
}

// run turns effects into commands: fetches run on their own goroutines and
// come back as resultMsg, the timer comes back as tickMsg.
func (a *App) run(eff dashboard.Effects) tea.Cmd {
	if eff.Empty() {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(eff.Fetches))
	for _, req := range eff.Fetches {
		cmds = append(cmds, a.fetchCmd(req))
	}
	var fetches tea.Cmd
	switch {
	case len(cmds) == 0:
	case eff.Sequential:
		fetches = tea.Sequence(cmds...)
	default:
		fetches = tea.Batch(cmds...)
	}
	return tea.Batch(fetches, a.timerCmd(eff.Timer))
}

func (a *App) fetchCmd(req dashboard.Request) tea.Cmd {
	return func() tea.Msg {
		return resultMsg{res: dashboard.Execute(a.ctx, a.client, req, a.now)}
	}
}

func (a *App) timerCmd(t *dashboard.Timer) tea.Cmd {
	if t == nil {
		return nil
	}
	epoch := t.Epoch
	return a.after(t.After, func(time.Time) tea.Msg { return tickMsg{epoch: epoch} })
}
