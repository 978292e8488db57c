package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSnapshotID(t *testing.T) {
	assert.Equal(t, "2024-v001", FormatSnapshotID("2024", 1))
	assert.Equal(t, "2024-2025-v012", FormatSnapshotID("2024-2025", 12))
}

func TestParseSnapshotID(t *testing.T) {
	exercise, version, err := ParseSnapshotID("2024-v003")
	require.NoError(t, err)
	assert.Equal(t, "2024", exercise)
	assert.Equal(t, 3, version)
}

func TestParseSnapshotID_SplitExercise(t *testing.T) {
	exercise, version, err := ParseSnapshotID("2024-2025-v012")
	require.NoError(t, err)
	assert.Equal(t, "2024-2025", exercise)
	assert.Equal(t, 12, version)
}

func TestParseSnapshotID_Invalid(t *testing.T) {
	for _, bad := range []string{"", "2024", "2024-v", "2024-vX", "2024-v000", "-v001"} {
		_, _, err := ParseSnapshotID(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestRoundTrip(t *testing.T) {
	id := FormatSnapshotID("2026", 42)
	exercise, version, err := ParseSnapshotID(id)
	require.NoError(t, err)
	assert.Equal(t, "2026", exercise)
	assert.Equal(t, 42, version)
}
