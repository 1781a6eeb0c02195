package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_humanizeDuration(t *testing.T) {
	cases := []struct {
		duration time.Duration
		expected string
	}{
		{0, "0 seconds"},
		{-5 * time.Second, "0 seconds"},
		{time.Second, "1 second"},
		{1500 * time.Millisecond, "1.5 seconds"},
		{125 * time.Second, "2 minutes, 5 seconds"},
		{time.Minute, "1 minute"},
		{time.Hour + time.Second, "1 hour, 1 second"},
		{26*time.Hour + 3*time.Minute, "1 day, 2 hours, 3 minutes"},
		{8 * 24 * time.Hour, "1 week, 1 day"},
		{90*time.Second + 250*time.Millisecond, "1 minute, 30.25 seconds"},
		{999 * time.Microsecond, "0 seconds"},
	}

	for _, c := range cases {
		assert.Equal(t, c.expected, humanizeDuration(c.duration), c.duration.String())
	}
}
