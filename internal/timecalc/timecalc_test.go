package timecalc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeToHours(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"9:30", 9.5},
		{"0:00", 0},
		{"17:00", 17},
		{"7:45", 7.75},
		{"23:59", 23 + 59.0/60.0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := TimeToHours(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestTimeToHoursRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "9", "9:30:00", "nine:30", "9:mm", "9.30"} {
		t.Run(input, func(t *testing.T) {
			_, err := TimeToHours(input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrTimeFormat)
		})
	}
}

func TestHoursOutsideBusiness(t *testing.T) {
	tests := []struct {
		name           string
		bStart, bEnd   float64
		from, to       float64
		want           float64
	}{
		{"before business", 9, 17, 7, 10, 2},
		{"after business", 9, 17, 16, 19, 2},
		{"fully inside", 9, 17, 10, 12, 0},
		{"fully outside after", 9, 17, 20, 22, 2},
		{"fully outside before", 9, 17, 5, 8, 3},
		{"spanning both sides", 9, 17, 7, 19, 4},
		{"touching start", 9, 17, 7, 9, 2},
		{"touching end", 9, 17, 17, 20, 3},
		{"exact business window", 9, 17, 9, 17, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HoursOutsideBusiness(tt.bStart, tt.bEnd, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestHoursOutsideBusinessRejectsInvalidIntervals(t *testing.T) {
	_, err := HoursOutsideBusiness(9, 17, 12, 10)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = HoursOutsideBusiness(9, 17, 12, 12)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = HoursOutsideBusiness(17, 9, 10, 12)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}
