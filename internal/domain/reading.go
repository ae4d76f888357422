package domain

import "time"

// RawReading is one CSV row as parsed from disk, prior to hourly
// normalization. The timestamp carries whatever UTC offset the log was
// exported with; no timezone conversion happens past this point.
type RawReading struct {
	DeviceID    string
	Timestamp   time.Time
	Temperature float64
	SourcePath  string // file the row came from
}

// HourFloor returns the reading's timestamp with minutes and seconds
// zeroed, i.e. the calendar hour the reading belongs to.
func (r RawReading) HourFloor() time.Time {
	t := r.Timestamp
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// HourlyReading is the canonical sample for one (device, calendar-hour)
// pair: the highest temperature observed within that hour.
type HourlyReading struct {
	DeviceID    string
	Hour        time.Time
	Temperature float64
}

// Day returns the midnight instant of the calendar day the reading
// falls on.
func (h HourlyReading) Day() time.Time {
	t := h.Hour
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
