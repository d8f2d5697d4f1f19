package filler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"jirafill/jira"
	"jirafill/planner"
	"jirafill/worklog"
)

// Tracker is the external tracker capability the fill run consumes: one
// read (time already logged on a day) and one write (post an entry).
type Tracker interface {
	LoggedSecondsForDay(ctx context.Context, day time.Time) (int, error)
	AddWorklog(ctx context.Context, issueKey, comment string, started time.Time, seconds int) error
}

// Recorder persists generated entries for auditing and export.
type Recorder interface {
	InsertRecords(records []worklog.Record) (int, error)
}

// Service runs the day-by-day allocation over a date range. Days are
// processed strictly in chronological order; each day is planned from a
// fresh logged-time query and no allocation state crosses day boundaries.
type Service struct {
	Tracker  Tracker
	Selector *planner.Selector
	Settings planner.Settings
	Recorder Recorder
	Mode     string
	Out      io.Writer
}

// Report summarizes one run.
type Report struct {
	WorkingDays int
	Created     int
	SkippedDays int
	Failed      int
}

// Run fills every workday in the range. A failed logged-time query aborts
// the run (a partial retry could double-log time); a failed submission is
// reported and the remaining entries are still attempted.
func (s *Service) Run(ctx context.Context, dateRange planner.DateRange) (Report, error) {
	if err := s.Settings.Validate(); err != nil {
		return Report{}, err
	}
	if s.Selector == nil {
		return Report{}, fmt.Errorf("%w: selector is required", planner.ErrConfiguration)
	}

	var report Report
	for day := range planner.Workdays(dateRange) {
		report.WorkingDays++
		dayLabel := day.Format("2006-01-02")

		loggedSeconds, err := s.Tracker.LoggedSecondsForDay(ctx, day)
		if err != nil {
			return report, fmt.Errorf("logged time for %s: %w", dayLabel, err)
		}
		logged := float64(loggedSeconds) / 3600

		remaining := planner.Remaining(s.Settings.DailyHours, logged)
		if planner.Skippable(remaining) {
			fmt.Fprintf(s.out(), "[SKIP] %s: already logged %.2fh, remaining < 1h\n", dayLabel, logged)
			report.SkippedDays++
			continue
		}

		entries := planner.PlanDay(day, remaining, s.Settings, s.Selector)
		planned := 0
		for _, entry := range entries {
			planned += entry.Seconds
		}
		fmt.Fprintf(s.out(), "[DAY] %s logged=%.2fh to_add=%.2fh\n", dayLabel, logged, float64(planned)/3600)

		records := make([]worklog.Record, 0, len(entries))
		for _, entry := range entries {
			status := worklog.StatusCreated
			if err := s.Tracker.AddWorklog(ctx, entry.IssueKey, entry.Comment, entry.Start, entry.Seconds); err != nil {
				fmt.Fprintf(s.out(), "[ERR] %s: %v\n", entry.IssueKey, err)
				status = worklog.StatusFailed
				report.Failed++
			} else {
				if s.mode() == worklog.ModeLive {
					fmt.Fprintf(
						s.out(),
						"[OK] %s +%dh started=%s\n",
						entry.IssueKey,
						entry.Seconds/3600,
						jira.FormatStarted(entry.Start),
					)
				}
				report.Created++
			}
			records = append(records, worklog.Record{
				IssueKey: entry.IssueKey,
				Summary:  entry.Summary,
				Comment:  entry.Comment,
				Started:  entry.Start,
				Seconds:  entry.Seconds,
				Mode:     s.mode(),
				Status:   status,
			})
		}

		if s.Recorder != nil && len(records) > 0 {
			if _, err := s.Recorder.InsertRecords(records); err != nil {
				fmt.Fprintf(s.out(), "Warning: recording entries for %s failed: %v\n", dayLabel, err)
			}
		}
	}
	return report, nil
}

func (s *Service) out() io.Writer {
	if s.Out != nil {
		return s.Out
	}
	return os.Stdout
}

func (s *Service) mode() string {
	if s.Mode != "" {
		return s.Mode
	}
	return worklog.ModeLive
}
