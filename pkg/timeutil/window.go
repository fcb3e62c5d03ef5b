// Package timeutil parses the compact look-back windows accepted on the
// command line, such as "90m", "1d" or "1w2d".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

var (
	segment = regexp.MustCompile(`^(\d+)([a-z]+)`)
	units   = map[string]time.Duration{
		"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
		"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
		"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
		"d": day, "day": day, "days": day,
		"w": week, "wk": week, "wks": week, "week": week, "weeks": week,
	}
)

// ParseWindow turns a window such as "1w2d6h" into a duration. An empty
// input is no window and returns zero.
func ParseWindow(input string) (time.Duration, error) {
	rest := strings.ToLower(strings.Join(strings.Fields(input), ""))
	if rest == "" {
		return 0, nil
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("timeutil: invalid window segment %q", rest)
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("timeutil: invalid window value %q: %w", m[1], err)
		}
		unit, ok := units[m[2]]
		if !ok {
			return 0, fmt.Errorf("timeutil: unknown window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("timeutil: window must be longer than zero")
	}
	return total, nil
}

// FormatWindow renders d with the largest units first, e.g. "1w2d".
func FormatWindow(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	var b strings.Builder
	for _, u := range []struct {
		label string
		size  time.Duration
	}{{"w", week}, {"d", day}, {"h", time.Hour}, {"m", time.Minute}, {"s", time.Second}} {
		if d >= u.size {
			fmt.Fprintf(&b, "%d%s", d/u.size, u.label)
			d %= u.size
		}
	}
	return b.String()
}
