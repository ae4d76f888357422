package parser

import (
	"sort"

	"github.com/debuggeek/Brace-Tracker/internal/domain"
)

// Normalize collapses raw readings down to at most one per (device,
// calendar-hour), keeping the highest temperature observed in that
// hour. Exact temperature ties keep the first reading encountered, so
// output is deterministic for a fixed input order, and running
// Normalize over its own output is a no-op.
func Normalize(readings []domain.RawReading) []domain.HourlyReading {
	type hourKey struct {
		device string
		unix   int64
	}

	collapsed := make(map[hourKey]domain.HourlyReading, len(readings))
	for _, r := range readings {
		floored := r.HourFloor()
		key := hourKey{device: r.DeviceID, unix: floored.Unix()}
		if existing, ok := collapsed[key]; ok && r.Temperature <= existing.Temperature {
			continue
		}
		collapsed[key] = domain.HourlyReading{
			DeviceID:    r.DeviceID,
			Hour:        floored,
			Temperature: r.Temperature,
		}
	}

	result := make([]domain.HourlyReading, 0, len(collapsed))
	for _, h := range collapsed {
		result = append(result, h)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DeviceID != result[j].DeviceID {
			return result[i].DeviceID < result[j].DeviceID
		}
		return result[i].Hour.Before(result[j].Hour)
	})
	return result
}
