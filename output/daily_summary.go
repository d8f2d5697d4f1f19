package output

import (
	"sort"
	"time"

	"jirafill/worklog"
)

// DailySummary aggregates the recorded entries of one calendar day.
type DailySummary struct {
	Date         string
	FirstStart   time.Time
	LastEnd      time.Time
	PlannedHours float64
	FailedHours  float64
	EntryCount   int
	FailedCount  int
}

func BuildDailySummaries(records []worklog.Record) []DailySummary {
	if len(records) == 0 {
		return []DailySummary{}
	}

	byDay := make(map[string][]worklog.Record)
	for _, record := range records {
		day := record.Started.Format("2006-01-02")
		byDay[day] = append(byDay[day], record)
	}

	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	summaries := make([]DailySummary, 0, len(days))
	for _, day := range days {
		summaries = append(summaries, summarizeDay(day, byDay[day]))
	}

	return summaries
}

func summarizeDay(day string, records []worklog.Record) DailySummary {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Started.Equal(records[j].Started) {
			return records[i].ID < records[j].ID
		}
		return records[i].Started.Before(records[j].Started)
	})

	summary := DailySummary{
		Date:       day,
		FirstStart: records[0].Started,
		EntryCount: len(records),
	}

	for _, record := range records {
		end := record.Started.Add(time.Duration(record.Seconds) * time.Second)
		if end.After(summary.LastEnd) {
			summary.LastEnd = end
		}
		summary.PlannedHours += record.Hours()
		if record.Status == worklog.StatusFailed {
			summary.FailedHours += record.Hours()
			summary.FailedCount++
		}
	}

	return summary
}
