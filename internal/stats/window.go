package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/dietlog/internal/apperr"
)

// DateLayout is the ISO calendar date format used for record dates.
const DateLayout = "2006-01-02"

// WeekLength is the number of days in a weekly window.
const WeekLength = 7

// ParseDate parses an ISO calendar date. The result is midnight UTC, so
// calendar arithmetic on it is unaffected by daylight saving shifts.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, apperr.E(apperr.Validation, "parse date", fmt.Errorf("invalid date %q: %w", s, err))
	}
	return t, nil
}

// Window returns the days consecutive calendar dates ending at and including
// end, oldest first.
func Window(end time.Time, days int) []string {
	if days <= 0 {
		return nil
	}
	out := make([]string, days)
	for i := 0; i < days; i++ {
		out[i] = end.AddDate(0, 0, i-(days-1)).Format(DateLayout)
	}
	return out
}
