package internal

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted by --since/--until and passed to git
const DateLayout = "2006-01-02"

// ThisWeekRange returns Monday 00:00 and Sunday 23:59:59 of the week containing now
func ThisWeekRange(now time.Time) (time.Time, time.Time) {
	offset := (int(now.Weekday()) + 6) % 7 // days since Monday
	y, m, d := now.Date()
	monday := time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
	sunday := time.Date(y, m, d-offset+6, 23, 59, 59, 0, now.Location())
	return monday, sunday
}

// ParseDateFlag validates a YYYY-MM-DD date
func ParseDateFlag(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s date %q (expected YYYY-MM-DD)", name, value)
	}
	return t, nil
}

// ResolveDateRange fills empty since/until with this week's range and checks ordering
func ResolveDateRange(since, until string, now time.Time) (string, string, error) {
	monday, sunday := ThisWeekRange(now)
	if since == "" {
		since = monday.Format(DateLayout)
	}
	if until == "" {
		until = sunday.Format(DateLayout)
	}

	s, err := ParseDateFlag("since", since)
	if err != nil {
		return "", "", err
	}
	u, err := ParseDateFlag("until", until)
	if err != nil {
		return "", "", err
	}
	if u.Before(s) {
		return "", "", fmt.Errorf("--until %s is before --since %s", until, since)
	}
	return since, until, nil
}
