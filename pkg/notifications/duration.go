package notifications

import (
	"strconv"
	"strings"
	"time"
)

var durationUnits = []struct {
	name string
	size time.Duration
}{
	{"year", 31557600 * time.Second},
	{"month", 2629800 * time.Second},
	{"week", 7 * 24 * time.Hour},
	{"day", 24 * time.Hour},
	{"hour", time.Hour},
	{"minute", time.Minute},
}

// humanizeDuration spells out a duration, ie: "2 minutes, 5 seconds".
// Seconds keep millisecond precision. Negative durations count as zero.
func humanizeDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	pieces := []string{}
	for _, unit := range durationUnits {
		count := int64(d / unit.size)
		if count == 0 {
			continue
		}
		d -= time.Duration(count) * unit.size
		pieces = append(pieces, plural(strconv.FormatInt(count, 10), count == 1, unit.name))
	}

	seconds := float64(d.Milliseconds()) / 1000
	if seconds > 0 || len(pieces) == 0 {
		pieces = append(pieces, plural(strconv.FormatFloat(seconds, 'f', -1, 64), seconds == 1, "second"))
	}

	return strings.Join(pieces, ", ")
}

func plural(value string, singular bool, unit string) string {
	if singular {
		return value + " " + unit
	}
	return value + " " + unit + "s"
}
