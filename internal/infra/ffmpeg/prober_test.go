package ffmpeg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrameRate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"integral rational", "25/1", 25.0},
		{"ntsc rational", "30000/1001", 30000.0 / 1001.0},
		{"bare integer", "30", 30.0},
		{"bare float", "23.976", 23.976},
		{"trailing newline", "60/1\n", 60.0},
		{"surrounding whitespace", "  50/1  ", 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrameRate(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseFrameRateInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"zero denominator", "30/0"},
		{"garbage numerator", "abc/1"},
		{"garbage denominator", "30/xyz"},
		{"not a number", "N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFrameRate(tt.raw)
			assert.Error(t, err)
		})
	}
}
