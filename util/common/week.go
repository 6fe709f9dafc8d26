package common

import "time"

// WeekNumber returns the ISO-8601 year and week of the current UTC time.
func WeekNumber() (year int, week int) {
	return time.Now().UTC().ISOWeek()
}

// PrevWeekNumber returns the ISO-8601 year and week of seven days ago, so
// week 1 wraps back to week 52/53 of the previous year.
func PrevWeekNumber() (year int, week int) {
	return time.Now().UTC().AddDate(0, 0, -7).ISOWeek()
}

// PrevWeekOf returns the ISO year and week immediately preceding t's week.
func PrevWeekOf(t time.Time) (year int, week int) {
	return t.UTC().AddDate(0, 0, -7).ISOWeek()
}

// ISOWeeksInYear returns 52 or 53, the number of ISO weeks in the given
// year. December 28th always falls in the year's last ISO week.
func ISOWeeksInYear(year int) int {
	_, week := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// PrevWeek returns the ISO week immediately preceding (year, week),
// wrapping week 1 back to the last week of the prior year.
func PrevWeek(year, week int) (int, int) {
	if week > 1 {
		return year, week - 1
	}
	return year - 1, ISOWeeksInYear(year - 1)
}

// DayStartUTC returns 00:00:00 UTC of t's calendar day. Daily activity
// quotas reset at this boundary.
func DayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
