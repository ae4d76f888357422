package domain

import "time"

// DayBucket summarizes one calendar day inside a device's trailing
// window. Invariant: HoursInUse + len(BelowThresholdHours) ==
// SamplesPresent, and SamplesPresent never exceeds 24 because
// normalization caps readings at one per hour.
type DayBucket struct {
	Day                 time.Time   `json:"day"`
	HoursInUse          int         `json:"hours_in_use"`
	BelowThresholdHours []time.Time `json:"below_threshold_hours,omitempty"`
	SamplesPresent      int         `json:"samples_present"`
	IsComplete          bool        `json:"is_complete"`
}

// DeviceUsage is the per-device summary over the trailing window.
// Days runs oldest to newest and always spans exactly the configured
// window length, anchored at the device's most recent reading day.
// Both averages count complete days only (days with all 24 hours
// logged); incomplete days still appear in Days but never contribute
// to a numerator or denominator.
type DeviceUsage struct {
	DeviceID              string      `json:"device_id"`
	SevenDayAverage       float64     `json:"seven_day_average_hours_per_day"`
	OverallAverage        float64     `json:"overall_average_hours_per_day"`
	Days                  []DayBucket `json:"days"`
	CompleteDaysLastSeven int         `json:"complete_days_last_seven"`
	CompleteDaysOverall   int         `json:"complete_days_overall"`
	ThresholdMet          bool        `json:"threshold_met"`
}
