package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

var (
	ErrEmpty       = errors.New("empty time")
	ErrUnparseable = errors.New("unrecognised time")
)

// Parse reads a free-form time of day such as "9", "930pm", "9:30 a.m.",
// "14:00" or "2400" and returns it in 24-hour form.
//
// Grammar (whole input): HOUR [":"]MM? [" "](a|p)["."]m["."]?
// where HOUR is 0-9, 00-19 or 20-24 and MM is 00-59. Alternatives are tried
// left to right and the first one that consumes the whole input wins, so
// "1230" reads as 12:30 and "123" as 1:23.
//
// Without a marker, hours below 12 are taken as am: "9" is 09:00, "21" is
// 21:00. "12am", "24" and "24:00" are all midnight.
//
// Parse never panics; an empty string yields ErrEmpty and anything else
// outside the grammar yields ErrUnparseable.
func Parse(s string) (t Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("time parse panicked", zap.String("input", s), zap.Any("panic", r))
			t, err = Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
		}
	}()
	return parseClock(s)
}

// parseClock is swapped out in tests to exercise the recovery path.
var parseClock = parseClockText

func parseClockText(s string) (Time, error) {
	if s == "" {
		return Time{}, ErrEmpty
	}
	norm := dropSpaceColon(s)

	hourDigits, minDigits, ok := scanClock(norm)
	if !ok {
		return Time{}, fmt.Errorf("%w: %q", ErrUnparseable, s)
	}

	hour, err := strconv.Atoi(hourDigits)
	if err != nil {
		return Time{}, fmt.Errorf("%w: hour %q", ErrUnparseable, hourDigits)
	}
	minute := 0
	if minDigits != "" {
		if minute, err = strconv.Atoi(minDigits); err != nil {
			return Time{}, fmt.Errorf("%w: minute %q", ErrUnparseable, minDigits)
		}
	}

	marker := strings.ReplaceAll(strings.ToLower(norm), ".", "")
	// Both flags look at the numeral as typed, before any adjustment.
	isAM := strings.Contains(marker, "am") || hour < 12
	isPM := strings.Contains(marker, "pm") || hour >= 12

	if isPM && hour < 12 {
		hour += 12
	}
	if (isAM && hour == 12) || hour == 24 {
		hour = 0
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// dropSpaceColon removes each whitespace+colon pair, so "9 :30" becomes "930".
func dropSpaceColon(s string) string {
	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(rs); i++ {
		if isPatternSpace(rs[i]) && i+1 < len(rs) && rs[i+1] == ':' {
			i++
			continue
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}

// isPatternSpace reports whether r is whitespace in the sense of a
// regular-expression \s class in browsers (ECMAScript WhiteSpace and
// LineTerminator). This differs from unicode.IsSpace: U+0085 is excluded
// and U+FEFF is included.
func isPatternSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		'\u00a0', '\u1680', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return r >= '\u2000' && r <= '\u200a'
}

// scanClock matches s against the clock grammar and returns the hour digits
// and the minute digits (empty when no minutes were given).
func scanClock(s string) (hour, minute string, ok bool) {
	for _, hn := range hourSpans(s) {
		rest := s[hn:]
		for _, m := range minuteSpans(rest) {
			if isMeridiemTail(rest[m.n:]) {
				return s[:hn], m.digits, true
			}
		}
	}
	return "", "", false
}

// hourSpans lists candidate hour lengths in priority order:
// 0?\d, then 1\d, then 2[0-4].
func hourSpans(s string) []int {
	var spans []int
	if len(s) >= 2 && s[0] == '0' && isDigit(s[1]) {
		spans = append(spans, 2)
	}
	if len(s) >= 1 && isDigit(s[0]) {
		spans = append(spans, 1)
	}
	if len(s) >= 2 && s[0] == '1' && isDigit(s[1]) {
		spans = append(spans, 2)
	}
	if len(s) >= 2 && s[0] == '2' && s[1] >= '0' && s[1] <= '4' {
		spans = append(spans, 2)
	}
	return spans
}

type minuteSpan struct {
	n      int
	digits string
}

// minuteSpans lists ":MM", then "MM", then nothing.
func minuteSpans(s string) []minuteSpan {
	var spans []minuteSpan
	if len(s) >= 3 && s[0] == ':' && isMinutePair(s[1:3]) {
		spans = append(spans, minuteSpan{n: 3, digits: s[1:3]})
	}
	if len(s) >= 2 && isMinutePair(s[:2]) {
		spans = append(spans, minuteSpan{n: 2, digits: s[:2]})
	}
	return append(spans, minuteSpan{})
}

func isMinutePair(s string) bool {
	return s[0] >= '0' && s[0] <= '5' && isDigit(s[1])
}

// isMeridiemTail reports whether s is empty or exactly [" "](a|p)["."]m["."].
func isMeridiemTail(s string) bool {
	if s == "" {
		return true
	}
	i := 0
	if s[i] == ' ' {
		i++
	}
	if i >= len(s) {
		return false
	}
	switch s[i] {
	case 'a', 'A', 'p', 'P':
		i++
	default:
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
	}
	if i >= len(s) || (s[i] != 'm' && s[i] != 'M') {
		return false
	}
	i++
	if i < len(s) && s[i] == '.' {
		i++
	}
	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
