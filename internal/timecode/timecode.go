// Package timecode converts model-produced time strings into seconds.
package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Parse accepts "H:MM:SS.ss", "MM:SS.ss" and "SS.ss" and returns total seconds.
// An empty string is zero.
func Parse(ts string) (float64, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return 0, nil
	}

	parts := strings.Split(ts, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("parse timestamp %q: too many fields", ts)
	}

	vals := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("parse timestamp %q: not a finite number", ts)
		}
		if v < 0 {
			return 0, fmt.Errorf("parse timestamp %q: negative field", ts)
		}
		vals[i] = v
	}

	switch len(vals) {
	case 3:
		return vals[0]*3600 + vals[1]*60 + vals[2], nil
	case 2:
		return vals[0]*60 + vals[1], nil
	default:
		return vals[0], nil
	}
}

// MustParse is Parse that returns 0 on malformed input.
func MustParse(ts string) float64 {
	v, err := Parse(ts)
	if err != nil {
		return 0
	}
	return v
}

// Format renders seconds as "HH:MM:SS", truncating fractions.
func Format(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, total%3600/60, total%60)
}
