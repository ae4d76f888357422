// Package ui is the live view: it re-runs the usage analysis whenever
// a device log grows and renders the same report the CLI prints.
package ui

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/debuggeek/Brace-Tracker/internal/config"
	"github.com/debuggeek/Brace-Tracker/internal/domain"
	"github.com/debuggeek/Brace-Tracker/internal/parser"
	"github.com/debuggeek/Brace-Tracker/internal/report"
	"github.com/debuggeek/Brace-Tracker/internal/theme"
	"github.com/debuggeek/Brace-Tracker/internal/watcher"
)

// tickMsg refreshes the clock line.
type tickMsg time.Time

// dataMsg carries a freshly computed analysis.
type dataMsg struct {
	usages []domain.DeviceUsage
	err    error
	at     time.Time
}

// fileChangedMsg means a watched CSV grew since the last load.
type fileChangedMsg struct{}

type App struct {
	Config     config.Config
	DataDir    string
	Devices    []string
	WindowDays int

	usages     []domain.DeviceUsage
	loadErr    error
	lastLoaded time.Time
	verbose    bool
	loading    bool

	watch   *watcher.Watcher
	changed chan struct{}

	width  int
	height int
}

func NewApp(cfg config.Config, dataDir string, devices []string, windowDays int) *App {
	a := &App{
		Config:     cfg,
		DataDir:    dataDir,
		Devices:    devices,
		WindowDays: windowDays,
		changed:    make(chan struct{}, 1),
	}

	interval := time.Duration(cfg.General.PollIntervalSeconds) * time.Second
	var w *watcher.Watcher
	w = watcher.New([]string{dataDir}, interval, func(changes []watcher.FileChange) {
		for _, c := range changes {
			if info, err := os.Stat(c.Path); err == nil {
				w.SetOffset(c.Path, info.Size())
			}
		}
		select {
		case a.changed <- struct{}{}:
		default:
		}
	})
	a.watch = w
	return a
}

func (a *App) Init() tea.Cmd {
	_, _ = a.watch.InitialScan()
	_ = a.watch.Start()
	a.loading = true
	return tea.Batch(a.loadCmd(), a.waitForChange(), tickCmd())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			a.watch.Stop()
			return a, tea.Quit
		case "v":
			a.verbose = !a.verbose
		case "r":
			a.loading = true
			return a, a.loadCmd()
		}

	case dataMsg:
		a.loading = false
		a.usages = msg.usages
		a.loadErr = msg.err
		a.lastLoaded = msg.at

	case fileChangedMsg:
		a.loading = true
		return a, tea.Batch(a.loadCmd(), a.waitForChange())

	case tickMsg:
		return a, tickCmd()
	}
	return a, nil
}

func (a *App) View() string {
	title := theme.HeaderStyle.Render("brace-tracker")
	clock := theme.MutedStyle.Render(time.Now().Format("15:04:05"))
	header := lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", clock)

	var body string
	switch {
	case a.loadErr != nil:
		body = theme.FarStyle.Render(fmt.Sprintf("error: %v", a.loadErr))
	case len(a.usages) == 0 && a.loading:
		body = theme.MutedStyle.Render("loading...")
	case len(a.usages) == 0:
		body = theme.MutedStyle.Render("no device data under " + a.DataDir)
	default:
		body = report.RenderText(a.usages, report.Options{
			Verbose:        a.verbose,
			UseColor:       true,
			UsageThreshold: a.Config.Analysis.UsageThresholdHoursPerDay,
			TempThreshold:  a.Config.Analysis.TemperatureThresholdFahrenheit,
			NearBuffer:     a.Config.Report.NearBufferHours,
		})
	}

	footer := theme.MutedStyle.Render(a.statusLine())

	card := theme.CardStyle
	if a.width > 4 {
		card = card.Width(a.width - 4)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, card.Render(body), footer)
}

// statusLine describes refresh state and key bindings.
func (a *App) statusLine() string {
	refreshed := "never"
	if !a.lastLoaded.IsZero() {
		refreshed = a.lastLoaded.Format("15:04:05")
	}
	verbose := "off"
	if a.verbose {
		verbose = "on"
	}
	return fmt.Sprintf("refreshed %s | v verbose [%s] | r reload | q quit", refreshed, verbose)
}

func (a *App) loadCmd() tea.Cmd {
	dataDir, devices := a.DataDir, a.Devices
	cfg, windowDays := a.Config, a.WindowDays
	return func() tea.Msg {
		usages, err := loadUsages(dataDir, devices, cfg, windowDays)
		return dataMsg{usages: usages, err: err, at: time.Now()}
	}
}

func (a *App) waitForChange() tea.Cmd {
	ch := a.changed
	return func() tea.Msg {
		<-ch
		return fileChangedMsg{}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// loadUsages runs the whole pipeline: scan, normalize, filter, aggregate.
func loadUsages(dataDir string, devices []string, cfg config.Config, windowDays int) ([]domain.DeviceUsage, error) {
	raw, err := parser.ScanAndParse(dataDir)
	if err != nil {
		return nil, err
	}
	hourly := domain.FilterDevices(parser.Normalize(raw), devices)
	return domain.ComputeDeviceUsage(hourly, domain.AnalysisParams{
		UsageThreshold:       cfg.Analysis.UsageThresholdHoursPerDay,
		TemperatureThreshold: cfg.Analysis.TemperatureThresholdFahrenheit,
		WindowDays:           windowDays,
	}), nil
}
