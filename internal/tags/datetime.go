package tags

import (
	"fmt"
	"strings"
	"time"
)

// dateTimeLayouts are tried in order. Vendors disagree on whether the
// aggregated date/time carries fractional seconds, so the layout is inferred
// per value.
var dateTimeLayouts = []string{
	"20060102150405",
	"20060102150405.999999999",
}

// ParseDateTime parses an aggregated DICOM date/time ("YYYYMMDDHHMMSS" with
// optional fractional seconds) in loc. The first layout that parses wins.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDateTime, s)
}
