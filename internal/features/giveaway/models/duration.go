package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MinDuration = time.Minute
	MaxDuration = 30 * 24 * time.Hour
)

// ParseGiveawayDuration parses a user-supplied duration string and enforces
// the [1 minute, 30 days] bounds. On top of time.ParseDuration syntax it
// accepts a "d" suffix for days ("7d", "1.5d").
func ParseGiveawayDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("duration is required")
	}

	var d time.Duration
	if strings.HasSuffix(s, "d") {
		days, err := strconv.ParseFloat(strings.TrimSuffix(s, "d"), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
		d = time.Duration(days * float64(24*time.Hour))
	} else {
		var err error
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", s)
		}
	}

	if d < MinDuration {
		return 0, fmt.Errorf("duration must be at least %s", MinDuration)
	}
	if d > MaxDuration {
		return 0, fmt.Errorf("duration must be at most %s", MaxDuration)
	}
	return d, nil
}
