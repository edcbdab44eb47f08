// Package datefmt turns stored show timestamps into display strings.
// Parsing is lenient about the input layout; rendering never converts
// between time zones, the parsed wall clock is printed as-is.
package datefmt

import (
	"fmt"
	"strings"
	"time"
)

// Style selects a display preset.
type Style string

const (
	// Full renders e.g. "Saturday May, 21, 2019 at 9:30PM".
	Full Style = "full"
	// Medium renders e.g. "Sat May, 21, 2019 9:30PM".  It is the default.
	Medium Style = "medium"
)

const (
	fullLayout    = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout  = "Mon Jan, 02, 2006 3:04PM"
	defaultLayout = "Jan 2, 2006, 3:04:05 PM"
)

// DBLayout is the layout show start times are written in by forms and
// read back from the database driver when it returns text.
const DBLayout = "2006-01-02 15:04:05"

// parseLayouts is tried in order; the first layout that parses wins.
var parseLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05.999999999",
	DBLayout,
	"2006-01-02 15:04",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02",
}

// ParseError reports a timestamp string that matched none of the
// accepted layouts.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("datefmt: cannot parse %q as a timestamp: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads a timestamp in any of the accepted layouts.  Offsets in
// the input are kept on the returned value; inputs without an offset
// are returned in UTC.
func Parse(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	var lastErr error
	for _, layout := range parseLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Value: raw, Err: lastErr}
}

// Format renders t with the given style.  An empty style means Medium;
// an unknown style falls back to the default date-time layout.
func Format(t time.Time, style Style) string {
	switch style {
	case Full:
		return t.Format(fullLayout)
	case Medium, "":
		return t.Format(mediumLayout)
	default:
		return t.Format(defaultLayout)
	}
}

// FormatDatetime parses raw and renders it with style.  It is the
// template-facing entry point and fails with *ParseError on input it
// cannot read.
func FormatDatetime(raw string, style Style) (string, error) {
	t, err := Parse(raw)
	if err != nil {
		return "", err
	}
	return Format(t, style), nil
}
