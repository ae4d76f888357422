// Package report renders device usage summaries as text or JSON.
// All formatting, rounding, and coloring lives here; the domain layer
// only hands over raw numbers.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/debuggeek/Brace-Tracker/internal/domain"
	"github.com/debuggeek/Brace-Tracker/internal/theme"
)

// Status buckets an hours-per-day figure for presentation coloring.
type Status int

const (
	StatusMet Status = iota
	StatusNear
	StatusFar
)

// Classify compares hours against the usage threshold. At or above is
// met; within nearBuffer hours under it is near; further under is far.
func Classify(hours, threshold, nearBuffer float64) Status {
	delta := hours - threshold
	switch {
	case delta >= 0:
		return StatusMet
	case delta >= -nearBuffer:
		return StatusNear
	default:
		return StatusFar
	}
}

// StatusStyle returns the lipgloss style for a status.
func StatusStyle(s Status) lipgloss.Style {
	switch s {
	case StatusMet:
		return theme.MetStyle
	case StatusNear:
		return theme.NearStyle
	default:
		return theme.FarStyle
	}
}

// Options control text rendering.
type Options struct {
	Verbose        bool
	UseColor       bool
	UsageThreshold float64
	TempThreshold  float64
	NearBuffer     float64
}

// RenderText formats the summaries the way the CLI prints them: a
// device header, the dual-average line, then one line per window day.
func RenderText(usages []domain.DeviceUsage, opts Options) string {
	var lines []string
	for _, u := range usages {
		status := "needs improvement"
		if u.ThresholdMet {
			status = "meets goal"
		}

		lines = append(lines, fmt.Sprintf("Device: %s", u.DeviceID))

		totalDays := len(u.Days)
		recentDays := min(7, totalDays)
		sevenDay := opts.colorize(fmt.Sprintf("%.1f hr/day", u.SevenDayAverage), u.SevenDayAverage)
		overall := opts.colorize(fmt.Sprintf("%.1f hr/day", u.OverallAverage), u.OverallAverage)
		lines = append(lines, fmt.Sprintf(
			"7-day avg: %s (based on %d/%d days) | overall avg (%d days): %s (based on %d/%d days, %s)",
			sevenDay, u.CompleteDaysLastSeven, recentDays,
			totalDays, overall, u.CompleteDaysOverall, totalDays, status))

		for _, day := range u.Days {
			suffix := "hrs"
			if day.HoursInUse == 1 {
				suffix = "hr"
			}
			note := ""
			if !day.IsComplete {
				note = fmt.Sprintf(" (incomplete: %d/24 hours logged)", day.SamplesPresent)
			}
			hoursText := opts.colorize(
				fmt.Sprintf("%d %s", day.HoursInUse, suffix), float64(day.HoursInUse))
			lines = append(lines, fmt.Sprintf(
				"  %s: %s%s", day.Day.Format("Mon 2006-01-02"), hoursText, note))

			if opts.Verbose && len(day.BelowThresholdHours) > 0 {
				times := make([]string, 0, len(day.BelowThresholdHours))
				for _, h := range day.BelowThresholdHours {
					times = append(times, h.Format("15:04"))
				}
				lines = append(lines, fmt.Sprintf(
					"    below %.1f°F at: %s", opts.TempThreshold, strings.Join(times, ", ")))
			}
		}
		lines = append(lines, "")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// RenderJSON writes the summaries as indented JSON.
func RenderJSON(w io.Writer, usages []domain.DeviceUsage) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(usages)
}

func (o Options) colorize(text string, hours float64) string {
	if !o.UseColor {
		return text
	}
	return StatusStyle(Classify(hours, o.UsageThreshold, o.NearBuffer)).Render(text)
}
