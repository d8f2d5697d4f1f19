package timeutil

import "time"

func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// SubtractOneMonth steps back one calendar month, clamping the day to the
// shorter month's length (Mar 31 -> Feb 28/29).
func SubtractOneMonth(value time.Time) time.Time {
	year := value.Year()
	month := value.Month() - 1
	if month == 0 {
		month = time.December
		year--
	}
	day := value.Day()
	if last := daysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, value.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
