package planner

import (
	"fmt"
	"time"
)

const (
	// Entries start at 10:00 in the tracker's fixed zone and run back to back.
	baseStartHour = 10
	hourSeconds   = 3600
)

// Zone is the fixed UTC offset worklog timestamps are generated in.
var Zone = time.FixedZone("UTC+3", 3*60*60)

// Entry is one planned worklog chunk for a single day.
type Entry struct {
	IssueKey string
	Summary  string
	Comment  string
	Start    time.Time
	Seconds  int
}

// DayPlan is the allocation outcome for one workday.
type DayPlan struct {
	Day         time.Time
	LoggedHours float64
	Entries     []Entry
	Skipped     bool
}

func (p DayPlan) PlannedHours() float64 {
	total := 0
	for _, entry := range p.Entries {
		total += entry.Seconds
	}
	return float64(total) / hourSeconds
}

// PlanDay allocates the remaining hours of one day in fixed one-hour chunks,
// each attributed to an independently drawn task. The loop stops the moment
// the remainder drops below one hour; a fractional tail stays unfilled.
func PlanDay(day time.Time, remaining float64, settings Settings, selector *Selector) []Entry {
	if Skippable(remaining) {
		return nil
	}

	cursor := time.Date(day.Year(), day.Month(), day.Day(), baseStartHour, 0, 0, 0, Zone)
	entries := make([]Entry, 0, int(remaining))

	toAllocate := remaining
	for toAllocate >= minChunkHours {
		chunk := minChunkHours
		if settings.MaxEntryHours < chunk {
			chunk = settings.MaxEntryHours
		}

		task := selector.Pick()
		seconds := int(chunk * hourSeconds)
		entries = append(entries, Entry{
			IssueKey: task.Key,
			Summary:  task.Summary,
			Comment:  fmt.Sprintf("Work on task %s", task.Key),
			Start:    cursor,
			Seconds:  seconds,
		})

		cursor = cursor.Add(time.Duration(seconds) * time.Second)
		toAllocate -= chunk
	}
	return entries
}
