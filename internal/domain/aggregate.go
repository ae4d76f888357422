package domain

import (
	"sort"
	"time"
)

// hoursPerDay is the sample count that makes a calendar day complete.
const hoursPerDay = 24

// recentSpanDays caps the short rolling average at one week.
const recentSpanDays = 7

// AnalysisParams are the scalar knobs aggregation runs against.
type AnalysisParams struct {
	UsageThreshold       float64 // goal, in-use hours per day
	TemperatureThreshold float64 // degrees; strictly above counts as in use
	WindowDays           int     // trailing window length, must be positive
}

// ComputeDeviceUsage summarizes every device present in the hourly
// readings, sorted by device ID. WindowDays must be positive; callers
// validate it before this layer and violations panic.
func ComputeDeviceUsage(readings []HourlyReading, params AnalysisParams) []DeviceUsage {
	if params.WindowDays <= 0 {
		panic("domain: AnalysisParams.WindowDays must be positive")
	}

	perDevice := make(map[string][]HourlyReading)
	for _, r := range readings {
		perDevice[r.DeviceID] = append(perDevice[r.DeviceID], r)
	}

	ids := make([]string, 0, len(perDevice))
	for id := range perDevice {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	summaries := make([]DeviceUsage, 0, len(ids))
	for _, id := range ids {
		recs := perDevice[id]
		sort.Slice(recs, func(i, j int) bool { return recs[i].Hour.Before(recs[j].Hour) })
		summaries = append(summaries, summarizeDevice(id, recs, params))
	}
	return summaries
}

// dayTally accumulates one calendar day before window placement.
type dayTally struct {
	hoursInUse int
	below      []time.Time
	samples    int
}

func summarizeDevice(deviceID string, readings []HourlyReading, params AnalysisParams) DeviceUsage {
	if len(readings) == 0 {
		return DeviceUsage{DeviceID: deviceID, Days: []DayBucket{}}
	}

	// Keyed by wall-clock date so readings that straddle an offset
	// change still land on the day they were logged.
	tallies := make(map[string]*dayTally)
	for _, r := range readings {
		key := r.Hour.Format("2006-01-02")
		t := tallies[key]
		if t == nil {
			t = &dayTally{}
			tallies[key] = t
		}
		t.samples++
		if r.Temperature > params.TemperatureThreshold {
			t.hoursInUse++
		} else {
			// Readings arrive sorted by hour, so the list stays ascending.
			t.below = append(t.below, r.Hour)
		}
	}

	anchor := readings[len(readings)-1].Day()
	days := make([]DayBucket, 0, params.WindowDays)
	for offset := params.WindowDays - 1; offset >= 0; offset-- {
		day := anchor.AddDate(0, 0, -offset)
		bucket := DayBucket{Day: day}
		if t, ok := tallies[day.Format("2006-01-02")]; ok {
			bucket.HoursInUse = t.hoursInUse
			bucket.BelowThresholdHours = t.below
			bucket.SamplesPresent = t.samples
			bucket.IsComplete = t.samples == hoursPerDay
		}
		days = append(days, bucket)
	}

	recentStart := len(days) - recentSpanDays
	if recentStart < 0 {
		recentStart = 0
	}

	var totalOverall, totalRecent int
	var completeOverall, completeRecent int
	for i, d := range days {
		if !d.IsComplete {
			continue
		}
		completeOverall++
		totalOverall += d.HoursInUse
		if i >= recentStart {
			completeRecent++
			totalRecent += d.HoursInUse
		}
	}

	var sevenDay, overall float64
	if completeRecent > 0 {
		sevenDay = float64(totalRecent) / float64(completeRecent)
	}
	if completeOverall > 0 {
		overall = float64(totalOverall) / float64(completeOverall)
	}

	return DeviceUsage{
		DeviceID:              deviceID,
		SevenDayAverage:       sevenDay,
		OverallAverage:        overall,
		Days:                  days,
		CompleteDaysLastSeven: completeRecent,
		CompleteDaysOverall:   completeOverall,
		ThresholdMet:          completeRecent > 0 && sevenDay >= params.UsageThreshold,
	}
}
