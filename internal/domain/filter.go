package domain

import "time"

// FilterByDateRange returns raw readings within the [since, until]
// calendar-date range, compared on each reading's own wall-clock date.
// Both boundaries are inclusive; empty strings mean no constraint on
// that boundary.
func FilterByDateRange(readings []RawReading, since, until string) ([]RawReading, error) {
	if since == "" && until == "" {
		return readings, nil
	}

	for _, v := range []string{since, until} {
		if v == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", v); err != nil {
			return nil, err
		}
	}

	filtered := make([]RawReading, 0, len(readings))
	for _, r := range readings {
		// ISO dates compare correctly as strings.
		day := r.Timestamp.Format("2006-01-02")
		if since != "" && day < since {
			continue
		}
		if until != "" && day > until {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// FilterDevices keeps hourly readings whose device ID is in ids.
// An empty ids list keeps everything.
func FilterDevices(readings []HourlyReading, ids []string) []HourlyReading {
	if len(ids) == 0 {
		return readings
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	filtered := make([]HourlyReading, 0, len(readings))
	for _, r := range readings {
		if _, ok := want[r.DeviceID]; ok {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
