package utils

import "time"

func FromUTCToTimezone(utcTime time.Time, timezone string) time.Time {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return utcTime
	}
	return utcTime.In(loc)
}

// FormatDate renders t in the display timezone as YYYY-MM-DD. The zero time
// renders as an empty string.
func FormatDate(t time.Time, timezone string) string {
	if t.IsZero() {
		return ""
	}
	return FromUTCToTimezone(t.UTC(), timezone).Format("2006-01-02")
}

func FormatDateTime(t time.Time, timezone string) string {
	if t.IsZero() {
		return ""
	}
	return FromUTCToTimezone(t.UTC(), timezone).Format("2006-01-02 15:04")
}
