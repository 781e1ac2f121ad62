package timeslot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"9:05", 545, false},
		{"", 0, true},
		{"0900", 0, true},
		{"ab:cd", 0, true},
		{"09:30:00", 0, true},
	}

	for _, tt := range tests {
		got, err := ToMinutes(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"09:30", "09:30", false},
		{"9:05", "09:05", false},
		{"9:5", "09:05", false},
		{"0:00", "00:00", false},
		{"23:59", "23:59", false},
		{"24:00", "", true},
		{"10:60", "", true},
		{"-1:30", "", true},
		{"morning", "", true},
	}

	for _, tt := range tests {
		got, err := Normalize(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			assert.ErrorIs(t, err, ErrInvalidFormat)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestSplit(t *testing.T) {
	start, end, err := Split("09:00-10:30")
	require.NoError(t, err)
	assert.Equal(t, "09:00", start)
	assert.Equal(t, "10:30", end)

	_, _, err = Split("09:00")
	require.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		start    string
		end      string
		want     bool
	}{
		{"starts inside existing", "09:00-10:00", "09:30", "09:45", true},
		{"ends inside existing", "09:00-10:00", "08:30", "09:30", true},
		{"contains existing", "09:00-10:00", "08:00", "11:00", true},
		{"identical", "09:00-10:00", "09:00", "10:00", true},
		{"adjacent after", "09:00-10:00", "10:00", "11:00", false},
		{"adjacent before", "09:00-10:00", "08:00", "09:00", false},
		{"one minute overlap", "14:00-15:00", "14:59", "16:00", true},
		{"fully before", "14:00-15:00", "13:00", "14:00", false},
		{"fully after", "14:00-15:00", "15:30", "16:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.existing, tt.start, tt.end))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "09:00-10:00", Format("09:00", "10:00"))
}
