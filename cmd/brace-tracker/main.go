package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/debuggeek/Brace-Tracker/internal/config"
	"github.com/debuggeek/Brace-Tracker/internal/domain"
	"github.com/debuggeek/Brace-Tracker/internal/parser"
	"github.com/debuggeek/Brace-Tracker/internal/report"
	"github.com/debuggeek/Brace-Tracker/internal/ui"
)

// version is set by goreleaser via ldflags.
var version = "dev"

// maxReadings limits in-memory rows to protect against runaway exports.
const maxReadings = 1_000_000

const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// deviceList collects repeated --device flags.
type deviceList []string

func (d *deviceList) String() string { return strings.Join(*d, ",") }

func (d *deviceList) Set(v string) error {
	*d = append(*d, v)
	return nil
}

func main() {
	var devices deviceList
	var (
		dataDir     = flag.String("data-dir", "bt-bracedata", "directory containing device CSV logs")
		configPath  = flag.String("config", "", "TOML config path (default "+config.DefaultPath()+")")
		days        = flag.Int("days", 0, "override the trailing window length in days")
		since       = flag.String("since", "", "ignore readings before this date (YYYY-MM-DD)")
		until       = flag.String("until", "", "ignore readings after this date (YYYY-MM-DD)")
		jsonOut     = flag.Bool("json", false, "emit structured JSON instead of text")
		colorMode   = flag.String("color", colorAuto, "colorize output: auto, always, never")
		verbose     = flag.Bool("verbose", false, "show below-threshold hours for each day")
		watch       = flag.Bool("watch", false, "live view that refreshes as logs change")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Var(&devices, "device", "limit analysis to a device ID (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Println("brace-tracker", version)
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	windowDays := cfg.Analysis.WindowDays
	if *days != 0 {
		if *days < 0 {
			fmt.Fprintln(os.Stderr, "--days must be a positive integer")
			os.Exit(1)
		}
		windowDays = *days
	}

	for _, df := range []struct{ name, val string }{{"--since", *since}, {"--until", *until}} {
		if df.val != "" {
			if _, err := time.Parse("2006-01-02", df.val); err != nil {
				fmt.Fprintf(os.Stderr, "Invalid %s date (use YYYY-MM-DD): %s\n", df.name, df.val)
				os.Exit(1)
			}
		}
	}

	if *watch {
		app := ui.NewApp(cfg, *dataDir, devices, windowDays)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	raw, err := parser.ScanAndParse(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(raw) == 0 {
		fmt.Fprintln(os.Stderr, "No records found")
		os.Exit(1)
	}
	if len(raw) > maxReadings {
		raw = raw[len(raw)-maxReadings:]
	}

	raw, err = domain.FilterByDateRange(raw, *since, *until)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date filter: %v\n", err)
		os.Exit(1)
	}

	hourly := domain.FilterDevices(parser.Normalize(raw), devices)
	if len(hourly) == 0 {
		fmt.Fprintln(os.Stderr, "No matching device data")
		os.Exit(1)
	}

	usages := domain.ComputeDeviceUsage(hourly, domain.AnalysisParams{
		UsageThreshold:       cfg.Analysis.UsageThresholdHoursPerDay,
		TemperatureThreshold: cfg.Analysis.TemperatureThresholdFahrenheit,
		WindowDays:           windowDays,
	})

	if *jsonOut {
		if err := report.RenderJSON(os.Stdout, usages); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	useColor := shouldUseColor(*colorMode)
	if useColor && *colorMode == colorAlways {
		// Keep colors when stdout is piped.
		lipgloss.SetColorProfile(termenv.ANSI)
	}

	fmt.Println(report.RenderText(usages, report.Options{
		Verbose:        *verbose,
		UseColor:       useColor,
		UsageThreshold: cfg.Analysis.UsageThresholdHoursPerDay,
		TempThreshold:  cfg.Analysis.TemperatureThresholdFahrenheit,
		NearBuffer:     cfg.Report.NearBufferHours,
	}))
}

// loadConfig falls back to defaults when no --config was given and the
// default file is absent; an explicitly named missing file is an error.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(config.DefaultPath())
	}
	return config.LoadRequired(path)
}

func shouldUseColor(mode string) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}
