package domain

import "time"

// TimestampLayout is the single representation used for every persisted
// timestamp: UTC, millisecond precision, "Z" suffix. Values in this layout sort
// lexicographically in chronological order.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp reads any RFC 3339 timestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// TruncateTimestamp drops everything finer than TimestampLayout can express.
func TruncateTimestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// DayRange returns the first and last millisecond of the calendar day that
// contains day, as seen in loc.
func DayRange(day time.Time, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.In(loc).Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
