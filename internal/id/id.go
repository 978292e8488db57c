package id

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSnapshotID returns a snapshot ID like "2024-v003": the fiscal
// exercise plus the import version within it.
func FormatSnapshotID(exercise string, version int) string {
	return fmt.Sprintf("%s-v%03d", exercise, version)
}

// ParseSnapshotID parses "2024-v003" into exercise and version.
func ParseSnapshotID(id string) (exercise string, version int, err error) {
	i := strings.LastIndex(id, "-v")
	if i <= 0 || i+2 >= len(id) {
		return "", 0, fmt.Errorf("invalid snapshot ID format: %q", id)
	}

	exercise = id[:i]
	version, err = strconv.Atoi(id[i+2:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid version in snapshot ID %q: %w", id, err)
	}
	if version < 1 {
		return "", 0, fmt.Errorf("version must be >= 1 in snapshot ID %q", id)
	}
	return exercise, version, nil
}
