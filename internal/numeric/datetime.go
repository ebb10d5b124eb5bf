package numeric

import (
	"strconv"
	"strings"
	"time"

	"github.com/relvacode/iso8601"

	"github.com/alenon/tradeimport/internal/models"
)

// layouts is the bounded, ordered list of strptime-style formats tried
// after the ISO-8601 fast path fails. Order matters: the first match wins,
// so more specific layouts (with seconds, with fractional seconds) sit
// ahead of looser ones.
var layouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"02/01/2006 15:04:05",
	"01/02/2006 15:04:05",
	"01/02/2006 3:04:05 PM",
	"2006.01.02 15:04:05",
	"02.01.2006 15:04:05",
	"2006-01-02",
}

// ParseDateTime tolerantly parses a broker-supplied timestamp: ISO-8601
// (with or without a trailing Z), the bounded layout list above, an
// integer epoch (seconds, or milliseconds when the magnitude implies it),
// and finally a best-effort retry with separators normalized. A value
// bearing a Z suffix is interpreted as true UTC; every other form is
// treated as naive wall-clock and represented in UTC without conversion,
// so two runs of the same input always agree regardless of host locale.
func ParseDateTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, models.ErrInvalidDateTime
	}

	if strings.HasSuffix(value, "Z") || hasOffsetSuffix(value) {
		if t, err := iso8601.ParseString(value); err == nil {
			return t.UTC(), nil
		}
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	if epoch, err := strconv.ParseInt(value, 10, 64); err == nil {
		return epochToTime(epoch), nil
	}

	normalized := strings.NewReplacer(".", "-", "/", "-").Replace(value)
	for _, layout := range layouts {
		normalizedLayout := strings.NewReplacer(".", "-", "/", "-").Replace(layout)
		if t, err := time.ParseInLocation(normalizedLayout, normalized, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, models.ErrInvalidDateTime
}

func hasOffsetSuffix(value string) bool {
	if len(value) < 6 {
		return false
	}
	tail := value[len(value)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}

// epochToTime converts an integer epoch to UTC time, treating magnitudes
// at or above 1e12 as milliseconds rather than seconds.
func epochToTime(epoch int64) time.Time {
	const msThreshold = int64(1_000_000_000_000)
	if epoch >= msThreshold {
		return time.UnixMilli(epoch).UTC()
	}
	return time.Unix(epoch, 0).UTC()
}
