package tripdata

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultLayouts are the timestamp layouts tried, in order, when none are
// configured.
var DefaultLayouts = []string{
	time.RFC3339Nano,
	time.DateTime,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	time.DateOnly,
}

var errNoLayout = errors.New("no layout matched")

// TimeParser converts bucket-start text into [time.Time] values.
// Create instances with [NewTimeParser].
type TimeParser struct {
	loc     *time.Location
	layouts []string
}

// NewTimeParser creates a [TimeParser]. Layouts are tried in the given order;
// if none are given, [DefaultLayouts] is used. Values without a zone offset
// are interpreted in loc, or UTC if loc is nil.
func NewTimeParser(loc *time.Location, layouts ...string) *TimeParser {
	if loc == nil {
		loc = time.UTC
	}

	if len(layouts) == 0 {
		layouts = DefaultLayouts
	}

	return &TimeParser{
		loc:     loc,
		layouts: layouts,
	}
}

// Parse returns the first successful interpretation of s.
func (p *TimeParser) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}

	for _, layout := range p.layouts {
		t, err := time.ParseInLocation(layout, s, p.loc)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w (tried %d layouts)", errNoLayout, len(p.layouts))
}
