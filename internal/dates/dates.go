// Package dates implements the canonical textual date representation used by
// the wizard: DD/MM/YYYY calendar dates with no time or zone component.
package dates

import (
	"strings"
	"time"
)

// Layout is the canonical storage form for dates.
const Layout = "02/01/2006"

// isoLayout is the dash-separated form accepted on the education adapter path.
const isoLayout = "2006-01-02"

// Parse converts canonical DD/MM/YYYY text into a calendar date. It returns
// nil for empty input, malformed input, or an impossible calendar date such as
// month 13 or 31/02.
func Parse(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return nil
	}
	return &t
}

// ParseFlexible accepts the canonical slash form and additionally the
// dash-separated YYYY-MM-DD form. Anything else parses to nil.
func ParseFlexible(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.Contains(s, "/") {
		return Parse(s)
	}
	if strings.Contains(s, "-") {
		t, err := time.Parse(isoLayout, s)
		if err != nil {
			return nil
		}
		return &t
	}
	return nil
}

// Format emits the canonical DD/MM/YYYY text for a date, or the empty string
// for an unset date. Unset fields render as empty strings at rest.
func Format(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(Layout)
}
