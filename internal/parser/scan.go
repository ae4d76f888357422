package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/debuggeek/Brace-Tracker/internal/domain"
)

// ScanAndParse walks the data directory, parses every .csv log, and
// returns the combined raw readings. A missing directory is an error;
// individual unreadable files are skipped.
func ScanAndParse(dataDir string) ([]domain.RawReading, error) {
	info, err := os.Stat(dataDir)
	if err != nil {
		return nil, fmt.Errorf("data directory not found: %s", dataDir)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dataDir)
	}

	var paths []string
	_ = filepath.Walk(dataDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	sort.Strings(paths)

	// Pre-allocate with a rough estimate (a device-month of hourly
	// samples is ~720 rows).
	all := make([]domain.RawReading, 0, len(paths)*720)

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		result := ParseReader(f, DeviceIDFromPath(path), path)
		all = append(all, result.Readings...)
		f.Close()
	}

	return all, nil
}

// DeviceIDFromPath infers the device ID from a log file name: the stem
// up to the first underscore ("ALPHA_sept_log.csv" -> "ALPHA").
func DeviceIDFromPath(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return stem
}
