package timewindow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// ErrorKind identifies which input of Resolve failed to parse.
type ErrorKind int

const (
	KindInvalidStart ErrorKind = iota + 1
	KindInvalidDuration
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidStart:
		return "invalid_start"
	case KindInvalidDuration:
		return "invalid_duration"
	default:
		return "unknown"
	}
}

// ParseError is returned by Resolve for malformed input. Callers show it
// inline and halt the flow; it must never escalate to a panic.
type ParseError struct {
	Kind  ErrorKind
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q: %v", e.Kind, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Window is a concrete [Start, End) interval. End is always Start+Duration.
type Window struct {
	Start    time.Time
	Duration time.Duration
	End      time.Time
}

// ISOLayout matches the naive isoformat used on the hub wire: no offset,
// second precision.
const ISOLayout = "2006-01-02T15:04:05"

// StartISO returns Window.Start formatted for hub accessors.
func (w Window) StartISO() string { return w.Start.Format(ISOLayout) }

// EndISO returns Window.End formatted for hub accessors.
func (w Window) EndISO() string { return w.End.Format(ISOLayout) }

// Resolve turns a free-form start timestamp and a human duration expression
// into a concrete window. Timestamps without an offset are interpreted in the
// process-local zone; both inputs must parse before End is computed.
//
// No upper bound is applied to the duration here. Bounding, if any, belongs
// to the downstream fetch (stored views carry a row cap).
func Resolve(startText, durationText string) (Window, error) {
	start, err := dateparse.ParseIn(strings.TrimSpace(startText), time.Local)
	if err != nil {
		return Window{}, &ParseError{Kind: KindInvalidStart, Input: startText, Err: err}
	}

	d, err := ParseDuration(durationText)
	if err != nil {
		return Window{}, &ParseError{Kind: KindInvalidDuration, Input: durationText, Err: err}
	}

	return Window{Start: start, Duration: d, End: start.Add(d)}, nil
}

// unitSeconds maps duration unit spellings to seconds.
var unitSeconds = map[string]float64{
	"s": 1, "sec": 1, "secs": 1, "second": 1, "seconds": 1,
	"m": 60, "min": 60, "mins": 60, "minute": 60, "minutes": 60,
	"h": 3600, "hr": 3600, "hrs": 3600, "hour": 3600, "hours": 3600,
	"d": 86400, "day": 86400, "days": 86400,
	"w": 604800, "wk": 604800, "wks": 604800, "week": 604800, "weeks": 604800,
}

var (
	colonRe = regexp.MustCompile(`^\d+(?::\d+){1,2}(?:\.\d+)?$`)
	termRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)[\s,]*`)
)

// ParseDuration parses human duration text: "240 mins", "2 hours", "1h 30m",
// "1.5 days", "3 weeks", colon forms "4:13" (M:S) and "1:20:30" (H:M:S), and
// a bare number meaning seconds.
func ParseDuration(text string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, fmt.Errorf("empty duration")
	}

	sign := 1.0
	if strings.HasPrefix(s, "-") {
		sign = -1.0
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}

	if colonRe.MatchString(s) {
		sec, err := parseColonForm(s)
		if err != nil {
			return 0, err
		}
		return time.Duration(sign * sec * float64(time.Second)), nil
	}

	// bare number means seconds
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(sign * n * float64(time.Second)), nil
	}

	total := 0.0
	rest := s
	for rest != "" {
		m := termRe.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("unsupported duration expression %q", text)
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, fmt.Errorf("bad number %q in %q", m[1], text)
		}
		mult, ok := unitSeconds[m[2]]
		if !ok {
			return 0, fmt.Errorf("unknown duration unit %q in %q", m[2], text)
		}
		total += n * mult
		rest = rest[len(m[0]):]
	}

	return time.Duration(sign * total * float64(time.Second)), nil
}

// parseColonForm handles M:S and H:M:S.
func parseColonForm(s string) (float64, error) {
	parts := strings.Split(s, ":")
	mults := []float64{1, 60, 3600}
	total := 0.0
	for i := 0; i < len(parts); i++ {
		p := parts[len(parts)-1-i]
		n, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("bad clock duration %q", s)
		}
		total += n * mults[i]
	}
	return total, nil
}
