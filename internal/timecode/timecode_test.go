package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"01:02:03.5", 3723.5},
		{"1:02:03", 3723},
		{"02:03.5", 123.5},
		{"01:23.540", 83.54},
		{"45.25", 45.25},
		{"45.1", 45.1},
		{"0", 0},
		{"", 0},
		{" 00:10 ", 10},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"abc", "1:2:3:4", "01:xx", "-5", "NaN", "nan", "Inf", "+inf", "-Inf", "00:NaN", "1:inf:00", "Infinity"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.Error(t, err)
			assert.Equal(t, 0.0, MustParse(in))
		})
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00:00:00", Format(0))
	assert.Equal(t, "00:01:23", Format(83.54))
	assert.Equal(t, "01:02:03", Format(3723.9))
	assert.Equal(t, "00:00:00", Format(-4))

	back, err := Parse(Format(3723))
	require.NoError(t, err)
	assert.InDelta(t, 3723, back, 1e-9)
}
