package planner

import (
	"fmt"
	"iter"
	"time"

	"jirafill/internal/timeutil"
)

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange normalizes both bounds to midnight and rejects inverted spans.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = timeutil.StartOfDay(start)
	end = timeutil.StartOfDay(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf(
			"%w: start date %s is after end date %s",
			ErrConfiguration,
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)
	}
	return DateRange{Start: start, End: end}, nil
}

// DefaultDateRange is one month back through today.
func DefaultDateRange(today time.Time) DateRange {
	return DateRange{
		Start: timeutil.SubtractOneMonth(today),
		End:   timeutil.StartOfDay(today),
	}
}

// Workdays yields the Monday-Friday dates within the range in ascending
// order. The sequence is lazy and restartable; iteration state is a single
// cursor date.
func Workdays(r DateRange) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for day := r.Start; !day.After(r.End); day = day.AddDate(0, 0, 1) {
			weekday := day.Weekday()
			if weekday == time.Saturday || weekday == time.Sunday {
				continue
			}
			if !yield(day) {
				return
			}
		}
	}
}

// CountWorkdays reports how many Monday-Friday dates the range contains.
func CountWorkdays(r DateRange) int {
	count := 0
	for range Workdays(r) {
		count++
	}
	return count
}
