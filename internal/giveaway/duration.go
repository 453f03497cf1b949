package giveaway

import (
	"errors"
	"regexp"
	"strconv"
)

// ErrInvalidDuration is returned when a duration string contains no
// recognizable tokens
var ErrInvalidDuration = errors.New("invalid duration")

var durationPattern = regexp.MustCompile(`(\d+)([dhm])`)

var durationUnits = map[string]int64{
	"d": 86400,
	"h": 3600,
	"m": 60,
}

// ParseDuration converts a string of <integer><unit> tokens into seconds.
// Supported units are days (d), hours (h) and minutes (m); tokens are
// summed in any order, so "1d2h30m" yields 95400. Repeated units also
// accumulate ("1d1d" is two days).
func ParseDuration(input string) (int64, error) {
	matches := durationPattern.FindAllStringSubmatch(input, -1)
	if len(matches) == 0 {
		return 0, ErrInvalidDuration
	}

	var total int64
	for _, match := range matches {
		amount, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			return 0, ErrInvalidDuration
		}
		total += amount * durationUnits[match[2]]
	}

	return total, nil
}
