package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/debuggeek/Brace-Tracker/internal/domain"
)

// timestampLayout matches the export format, e.g.
// "Thu Sep 11 2025 10:54:11 GMT-0500 (Central Daylight Time)".
// The parenthesized zone name is stripped before parsing; the numeric
// offset is what resolves the instant.
const timestampLayout = "Mon Jan 02 2006 15:04:05 GMT-0700"

// ParseResult holds parsed readings and per-file row stats.
type ParseResult struct {
	Readings   []domain.RawReading
	SkipCount  int
	ErrorCount int
}

// ParseReader reads one device CSV. The first non-blank row is the
// header and must name "date" and "temperature" columns; anything else
// (like the export's "index" column) is ignored. Rows that cannot be
// interpreted are counted and skipped rather than failing the file.
func ParseReader(r io.Reader, deviceID, sourcePath string) ParseResult {
	var result ParseResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			result.ErrorCount++
		}
		return result
	}

	dateCol, tempCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "temperature":
			tempCol = i
		}
	}
	if dateCol < 0 || tempCol < 0 {
		result.ErrorCount++
		return result
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.ErrorCount++
			continue
		}
		if dateCol >= len(row) || tempCol >= len(row) {
			result.SkipCount++
			continue
		}

		dateRaw := strings.TrimSpace(row[dateCol])
		tempRaw := strings.TrimSpace(row[tempCol])
		if dateRaw == "" || tempRaw == "" {
			result.SkipCount++
			continue
		}

		ts, err := ParseTimestamp(dateRaw)
		if err != nil {
			result.ErrorCount++
			continue
		}
		temp, err := strconv.ParseFloat(tempRaw, 64)
		if err != nil {
			result.ErrorCount++
			continue
		}

		result.Readings = append(result.Readings, domain.RawReading{
			DeviceID:    deviceID,
			Timestamp:   ts,
			Temperature: temp,
			SourcePath:  sourcePath,
		})
	}

	return result
}

// ParseTimestamp parses an exported timestamp into an absolute instant.
func ParseTimestamp(raw string) (time.Time, error) {
	cleaned := raw
	if i := strings.Index(raw, " ("); i >= 0 {
		cleaned = raw[:i]
	}
	return time.Parse(timestampLayout, cleaned)
}
