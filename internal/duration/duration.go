// Package duration converts between leaderboard run times such as
// "1h 02m 03s 004ms" and millisecond counts.
package duration

import (
	"fmt"
	"math"
	"strings"
	"unicode"
)

const (
	Hour        int64 = 3600 * 1000
	Minute      int64 = 60 * 1000
	Second      int64 = 1000
	Millisecond int64 = 1

	// MillisMarker is the unit suffix for milliseconds.
	MillisMarker = "ms"

	// millisSentinel stands in for the first MillisMarker so the scan loop
	// only ever deals with single character units.
	millisSentinel = 'x'
)

// Parse reads a run time into milliseconds. It reports false for empty input
// or any character that is not a digit, whitespace or a unit, and for values
// that do not fit in an int64. Digits with no unit after them are dropped.
func Parse(text string) (int64, bool) {
	if len(text) == 0 {
		return 0, false
	}

	text = strings.Replace(text, MillisMarker, string(millisSentinel), 1)

	var total, buf int64
	for _, c := range text {
		var weight int64
		switch {
		case unicode.IsSpace(c):
			continue
		case c >= '0' && c <= '9':
			d := int64(c - '0')
			if buf > (math.MaxInt64-d)/10 {
				return 0, false
			}
			buf = buf*10 + d
			continue
		case c == 'h':
			weight = Hour
		case c == 'm':
			weight = Minute
		case c == 's':
			weight = Second
		case c == millisSentinel:
			weight = Millisecond
		default:
			return 0, false
		}

		if buf > (math.MaxInt64-total)/weight {
			return 0, false
		}
		total += buf * weight
		buf = 0
	}

	return total, true
}

// Format renders ms as "{h}h {mm}m {ss}s " and appends "{mmm}ms" when
// withMillis is set. Hours are always present.
func Format(ms int64, withMillis bool) string {
	millis := ms % 1000
	ms /= 1000
	seconds := ms % 60
	ms /= 60
	minutes := ms % 60
	hours := ms / 60

	s := fmt.Sprintf("%dh %02dm %02ds ", hours, minutes, seconds)
	if withMillis {
		s += fmt.Sprintf("%03dms", millis)
	}
	return s
}

// HasMillis reports whether text carries a millisecond component.
func HasMillis(text string) bool {
	return strings.Contains(text, MillisMarker)
}
