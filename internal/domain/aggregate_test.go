package domain

import (
	"testing"
	"time"
)

var central = time.FixedZone("CDT", -5*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, central)
}

// deviceDay builds total hourly readings starting at midnight, the
// first hot of them above the 90 degree threshold.
func deviceDay(id string, start time.Time, hot, total int) []HourlyReading {
	out := make([]HourlyReading, 0, total)
	for h := 0; h < total; h++ {
		temp := 80.0
		if h < hot {
			temp = 95.0
		}
		out = append(out, HourlyReading{
			DeviceID:    id,
			Hour:        start.Add(time.Duration(h) * time.Hour),
			Temperature: temp,
		})
	}
	return out
}

func testParams(windowDays int) AnalysisParams {
	return AnalysisParams{
		UsageThreshold:       16.0,
		TemperatureThreshold: 90.0,
		WindowDays:           windowDays,
	}
}

func TestComputeDeviceUsage_FullWeekMeetsGoal(t *testing.T) {
	var readings []HourlyReading
	start := day(2025, time.September, 11)
	for d := 0; d < 7; d++ {
		readings = append(readings, deviceDay("ALPHA", start.AddDate(0, 0, d), 16, 24)...)
	}

	usages := ComputeDeviceUsage(readings, testParams(7))
	if len(usages) != 1 {
		t.Fatalf("got %d usages, want 1", len(usages))
	}
	u := usages[0]
	if u.SevenDayAverage != 16.0 {
		t.Errorf("SevenDayAverage = %v, want 16.0", u.SevenDayAverage)
	}
	if u.OverallAverage != 16.0 {
		t.Errorf("OverallAverage = %v, want 16.0", u.OverallAverage)
	}
	if u.CompleteDaysLastSeven != 7 || u.CompleteDaysOverall != 7 {
		t.Errorf("complete days = %d/%d, want 7/7", u.CompleteDaysLastSeven, u.CompleteDaysOverall)
	}
	// Average equals the threshold exactly; >= makes that a met goal.
	if !u.ThresholdMet {
		t.Error("ThresholdMet = false, want true")
	}
}

func TestComputeDeviceUsage_SparseDaysNeverComplete(t *testing.T) {
	readings := []HourlyReading{
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 11).Add(10 * time.Hour), Temperature: 95},
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 12).Add(9 * time.Hour), Temperature: 95},
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 17).Add(21 * time.Hour), Temperature: 95},
	}

	u := ComputeDeviceUsage(readings, testParams(7))[0]

	if len(u.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(u.Days))
	}
	for _, d := range u.Days {
		if d.SamplesPresent != 0 && d.SamplesPresent != 1 {
			t.Errorf("day %s SamplesPresent = %d, want 0 or 1", d.Day.Format("2006-01-02"), d.SamplesPresent)
		}
		if d.IsComplete {
			t.Errorf("day %s marked complete with %d samples", d.Day.Format("2006-01-02"), d.SamplesPresent)
		}
	}
	if u.SevenDayAverage != 0 || u.OverallAverage != 0 {
		t.Errorf("averages = %v/%v, want 0/0 with no complete days", u.SevenDayAverage, u.OverallAverage)
	}
	if u.ThresholdMet {
		t.Error("ThresholdMet = true, want false")
	}
}

func TestComputeDeviceUsage_SingleCompleteDay(t *testing.T) {
	readings := deviceDay("ALPHA", day(2025, time.September, 11), 24, 24)

	u := ComputeDeviceUsage(readings, testParams(7))[0]

	last := u.Days[len(u.Days)-1]
	if last.HoursInUse != 24 || last.SamplesPresent != 24 || !last.IsComplete {
		t.Errorf("anchor day = %+v, want 24 in-use hours and complete", last)
	}
	if u.SevenDayAverage != 24.0 {
		t.Errorf("SevenDayAverage = %v, want 24.0", u.SevenDayAverage)
	}
	if !u.ThresholdMet {
		t.Error("ThresholdMet = false, want true")
	}
}

func TestComputeDeviceUsage_WindowAnchoredAtLatestReading(t *testing.T) {
	readings := []HourlyReading{
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 1).Add(5 * time.Hour), Temperature: 95},
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 17).Add(21 * time.Hour), Temperature: 95},
	}

	u := ComputeDeviceUsage(readings, testParams(10))[0]

	if len(u.Days) != 10 {
		t.Fatalf("got %d days, want 10", len(u.Days))
	}
	wantLast := day(2025, time.September, 17)
	if !u.Days[len(u.Days)-1].Day.Equal(wantLast) {
		t.Errorf("last day = %v, want %v", u.Days[len(u.Days)-1].Day, wantLast)
	}
	wantFirst := day(2025, time.September, 8)
	if !u.Days[0].Day.Equal(wantFirst) {
		t.Errorf("first day = %v, want %v", u.Days[0].Day, wantFirst)
	}
}

func TestComputeDeviceUsage_IncompleteDaysExcludedFromAverage(t *testing.T) {
	var readings []HourlyReading
	// Complete day, fully in use.
	readings = append(readings, deviceDay("ALPHA", day(2025, time.September, 11), 24, 24)...)
	// 23 hot samples; one hour missing, so the whole day is excluded.
	readings = append(readings, deviceDay("ALPHA", day(2025, time.September, 12), 23, 23)...)

	u := ComputeDeviceUsage(readings, testParams(7))[0]

	if u.CompleteDaysOverall != 1 {
		t.Fatalf("CompleteDaysOverall = %d, want 1", u.CompleteDaysOverall)
	}
	if u.OverallAverage != 24.0 {
		t.Errorf("OverallAverage = %v, want 24.0 (incomplete day excluded)", u.OverallAverage)
	}
	incomplete := u.Days[len(u.Days)-1]
	if incomplete.SamplesPresent != 23 || incomplete.IsComplete {
		t.Errorf("incomplete day = %+v, want 23 samples and not complete", incomplete)
	}
}

func TestComputeDeviceUsage_DualAverages(t *testing.T) {
	var readings []HourlyReading
	start := day(2025, time.September, 1)
	for d := 0; d < 14; d++ {
		hot := 20
		if d >= 7 {
			hot = 10
		}
		readings = append(readings, deviceDay("ALPHA", start.AddDate(0, 0, d), hot, 24)...)
	}

	u := ComputeDeviceUsage(readings, testParams(14))[0]

	if u.SevenDayAverage != 10.0 {
		t.Errorf("SevenDayAverage = %v, want 10.0", u.SevenDayAverage)
	}
	if u.OverallAverage != 15.0 {
		t.Errorf("OverallAverage = %v, want 15.0", u.OverallAverage)
	}
	if u.CompleteDaysLastSeven != 7 || u.CompleteDaysOverall != 14 {
		t.Errorf("complete days = %d/%d, want 7/14", u.CompleteDaysLastSeven, u.CompleteDaysOverall)
	}
	// Goal is judged on the recent week.
	if u.ThresholdMet {
		t.Error("ThresholdMet = true, want false at 10 hr/day")
	}
}

func TestComputeDeviceUsage_CompletenessInvariant(t *testing.T) {
	var readings []HourlyReading
	readings = append(readings, deviceDay("ALPHA", day(2025, time.September, 10), 5, 24)...)
	readings = append(readings, deviceDay("ALPHA", day(2025, time.September, 11), 3, 12)...)
	readings = append(readings, deviceDay("ALPHA", day(2025, time.September, 13), 0, 8)...)

	u := ComputeDeviceUsage(readings, testParams(7))[0]

	for _, d := range u.Days {
		if d.HoursInUse+len(d.BelowThresholdHours) != d.SamplesPresent {
			t.Errorf("day %s: %d in use + %d below != %d samples",
				d.Day.Format("2006-01-02"), d.HoursInUse, len(d.BelowThresholdHours), d.SamplesPresent)
		}
		if d.IsComplete != (d.SamplesPresent == 24) {
			t.Errorf("day %s: IsComplete = %v with %d samples",
				d.Day.Format("2006-01-02"), d.IsComplete, d.SamplesPresent)
		}
		for i := 1; i < len(d.BelowThresholdHours); i++ {
			if d.BelowThresholdHours[i].Before(d.BelowThresholdHours[i-1]) {
				t.Errorf("day %s: below-threshold hours not ascending", d.Day.Format("2006-01-02"))
			}
		}
	}
}

func TestComputeDeviceUsage_ThresholdBoundaryTemperature(t *testing.T) {
	// Exactly at the temperature threshold counts as not in use.
	readings := []HourlyReading{
		{DeviceID: "ALPHA", Hour: day(2025, time.September, 11).Add(10 * time.Hour), Temperature: 90.0},
	}

	u := ComputeDeviceUsage(readings, testParams(7))[0]

	anchor := u.Days[len(u.Days)-1]
	if anchor.HoursInUse != 0 {
		t.Errorf("HoursInUse = %d, want 0 at threshold temperature", anchor.HoursInUse)
	}
	if len(anchor.BelowThresholdHours) != 1 {
		t.Errorf("got %d below-threshold hours, want 1", len(anchor.BelowThresholdHours))
	}
}

func TestComputeDeviceUsage_MultipleDevicesSortedByID(t *testing.T) {
	var readings []HourlyReading
	readings = append(readings, deviceDay("GAMMA", day(2025, time.September, 11), 2, 4)...)
	readings = append(readings, deviceDay("BETA", day(2025, time.September, 11), 2, 4)...)

	usages := ComputeDeviceUsage(readings, testParams(7))

	if len(usages) != 2 {
		t.Fatalf("got %d usages, want 2", len(usages))
	}
	if usages[0].DeviceID != "BETA" || usages[1].DeviceID != "GAMMA" {
		t.Errorf("order = %s, %s; want BETA, GAMMA", usages[0].DeviceID, usages[1].DeviceID)
	}
}

func TestComputeDeviceUsage_Empty(t *testing.T) {
	usages := ComputeDeviceUsage(nil, testParams(7))
	if len(usages) != 0 {
		t.Errorf("got %d usages, want 0", len(usages))
	}
}

func TestComputeDeviceUsage_PanicsOnNonPositiveWindow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for WindowDays = 0")
		}
	}()
	ComputeDeviceUsage(nil, testParams(0))
}
