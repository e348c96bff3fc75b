package reports

import (
	"fmt"
	"time"

	"inventory-backend/internal/orders"
)

// Window is an inclusive [Start, End] reporting window in UTC.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

const dateOnly = "2006-01-02"

// ParseWindow resolves the caller-supplied date strings. Calendar dates
// without a time component are widened to full UTC days (start 00:00:00,
// end 23:59:59.999); RFC3339 timestamps are taken as-is. A missing end
// defaults to now, a missing start to 30 days before the end.
func ParseWindow(startStr, endStr string, now time.Time) (Window, error) {
	now = now.UTC()

	end := now
	if endStr != "" {
		t, dayOnly, err := parseDate(endStr)
		if err != nil {
			return Window{}, &orders.ValidationError{Field: "end_date", Message: err.Error()}
		}
		end = t
		if dayOnly {
			end = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, time.UTC)
		}
	}

	start := end.AddDate(0, 0, -30)
	if startStr != "" {
		t, dayOnly, err := parseDate(startStr)
		if err != nil {
			return Window{}, &orders.ValidationError{Field: "start_date", Message: err.Error()}
		}
		start = t
		if dayOnly {
			start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	if end.Before(start) {
		return Window{}, &orders.ValidationError{Field: "date_range", Message: "end date precedes start date"}
	}
	return Window{Start: start, End: end}, nil
}

func parseDate(s string) (t time.Time, dayOnly bool, err error) {
	if t, err = time.ParseInLocation(dateOnly, s, time.UTC); err == nil {
		return t, true, nil
	}
	if t, err = time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	return time.Time{}, false, fmt.Errorf("unparseable date %q", s)
}

// dayStart truncates t to its UTC day boundary.
func dayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
