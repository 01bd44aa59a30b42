package delta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolution(t *testing.T) {
	tests := []struct {
		timeframe string
		want      string
	}{
		{"1m", "1m"},
		{"15m", "15m"},
		{"1h", "1h"},
		{"4h", "4h"},
		{"1d", "1d"},
		{"1w", "1w"},
		// The exchange has no calendar-month resolution, 30d is the
		// closest supported window.
		{"1M", "30d"},
	}
	for _, tt := range tests {
		got, err := resolution(tt.timeframe)
		require.NoError(t, err, tt.timeframe)
		assert.Equal(t, tt.want, got)
	}
}

func TestResolutionUnknown(t *testing.T) {
	_, err := resolution("3h")
	assert.Error(t, err)
}

func TestTimeframeDuration(t *testing.T) {
	assert.Equal(t, time.Minute, timeframeDuration("1m"))
	assert.Equal(t, time.Hour, timeframeDuration("1h"))
	assert.Equal(t, 24*time.Hour, timeframeDuration("1d"))
	assert.Equal(t, 30*24*time.Hour, timeframeDuration("1M"))
}
