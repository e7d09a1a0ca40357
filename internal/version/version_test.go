package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBuildID(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2025-12-04", expected: 0},
		{name: "next day after epoch", date: "2025-12-05", expected: 1},
		{name: "one year later", date: "2026-12-04", expected: 365},
		{name: "date with leap years included", date: "2032-12-04", expected: 2557},
		{name: "invalid format", date: "invalid", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2025-12-03", wantError: true},
	}

	old := BuildDate
	defer func() { BuildDate = old }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			BuildDate = tt.date

			got, err := CalculateBuildID()
			if tt.wantError {
				assert.Error(t, err, "id=%d", got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestInfo(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = "2026-01-03"
	info := Info()
	assert.True(t, info.Calculated)
	assert.Equal(t, 30, info.BuildID)
	assert.EqualValues(t, 1, info.SnapshotVersion)
	assert.Contains(t, String(), "Build 30 (2026-01-03)")
	assert.Contains(t, String(), "ci[local]")

	BuildDate = ""
	info = Info()
	assert.False(t, info.Calculated)
	assert.NotEmpty(t, info.Error)
	assert.Contains(t, String(), "Build unknown")
}
