package delta

import (
	"time"

	"hermes/pkg/errors"
)

// resolutions maps canonical timeframe tokens to Delta candle resolutions.
// Delta has no true monthly resolution, so 1M maps to a fixed 30-day bucket.
var resolutions = map[string]string{
	"1m":  "1m",
	"3m":  "3m",
	"5m":  "5m",
	"15m": "15m",
	"30m": "30m",
	"1h":  "1h",
	"2h":  "2h",
	"4h":  "4h",
	"6h":  "6h",
	"1d":  "1d",
	"7d":  "7d",
	"1w":  "1w",
	"2w":  "2w",
	"1M":  "30d",
}

var timeframeDurations = map[string]time.Duration{
	"1m":  time.Minute,
	"3m":  3 * time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"30m": 30 * time.Minute,
	"1h":  time.Hour,
	"2h":  2 * time.Hour,
	"4h":  4 * time.Hour,
	"6h":  6 * time.Hour,
	"1d":  24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
	"1w":  7 * 24 * time.Hour,
	"2w":  14 * 24 * time.Hour,
	"1M":  30 * 24 * time.Hour,
}

// resolution returns the exchange token for a canonical timeframe
func resolution(timeframe string) (string, error) {
	token, ok := resolutions[timeframe]
	if !ok {
		return "", errors.Wrapf(errors.ErrInvalidInput, "unsupported timeframe %q", timeframe)
	}
	return token, nil
}

// timeframeDuration returns the bar length of a canonical timeframe
func timeframeDuration(timeframe string) time.Duration {
	if d, ok := timeframeDurations[timeframe]; ok {
		return d
	}
	return time.Minute
}
