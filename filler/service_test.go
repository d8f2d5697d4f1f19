package filler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"jirafill/planner"
	"jirafill/worklog"
)

type fakeTracker struct {
	loggedSeconds map[string]int
	loggedErr     error
	submitErr     map[string]error
	submissions   []submission
	queries       []string
}

type submission struct {
	issueKey string
	comment  string
	started  time.Time
	seconds  int
}

func (f *fakeTracker) LoggedSecondsForDay(_ context.Context, day time.Time) (int, error) {
	key := day.Format("2006-01-02")
	f.queries = append(f.queries, key)
	if f.loggedErr != nil {
		return 0, f.loggedErr
	}
	return f.loggedSeconds[key], nil
}

func (f *fakeTracker) AddWorklog(_ context.Context, issueKey, comment string, started time.Time, seconds int) error {
	f.submissions = append(f.submissions, submission{issueKey: issueKey, comment: comment, started: started, seconds: seconds})
	if err, ok := f.submitErr[issueKey]; ok {
		return err
	}
	return nil
}

type fakeRecorder struct {
	records []worklog.Record
}

func (f *fakeRecorder) InsertRecords(records []worklog.Record) (int, error) {
	f.records = append(f.records, records...)
	return len(records), nil
}

func fillerTestSelector(t *testing.T, seed uint64) *planner.Selector {
	t.Helper()

	selector, err := planner.NewSelector([]planner.Task{
		{Key: "PRJ-1", Summary: "first", Weight: 5},
		{Key: "PRJ-2", Summary: "second", Weight: 2},
	}, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		t.Fatalf("new selector: %v", err)
	}
	return selector
}

func mustRange(t *testing.T, start, end time.Time) planner.DateRange {
	t.Helper()

	r, err := planner.NewDateRange(start, end)
	if err != nil {
		t.Fatalf("new date range: %v", err)
	}
	return r
}

func TestRun_AllocatesRemainingHoursPerDay(t *testing.T) {
	t.Parallel()

	// Monday 2026-08-03 with 1h already logged: exactly 3 entries expected.
	tracker := &fakeTracker{loggedSeconds: map[string]int{"2026-08-03": 3600}}
	recorder := &fakeRecorder{}
	var out bytes.Buffer

	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.DefaultSettings(),
		Recorder: recorder,
		Out:      &out,
	}

	dayStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)
	report, err := service.Run(context.Background(), mustRange(t, dayStart, dayStart))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.WorkingDays != 1 || report.Created != 3 || report.SkippedDays != 0 || report.Failed != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(tracker.submissions) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(tracker.submissions))
	}
	for i, sub := range tracker.submissions {
		if sub.seconds != 3600 {
			t.Fatalf("submission %d has %d seconds", i, sub.seconds)
		}
		wantStart := time.Date(2026, 8, 3, 10+i, 0, 0, 0, planner.Zone)
		if !sub.started.Equal(wantStart) {
			t.Fatalf("submission %d starts at %v, expected %v", i, sub.started, wantStart)
		}
	}
	if len(recorder.records) != 3 {
		t.Fatalf("expected 3 recorded entries, got %d", len(recorder.records))
	}
	if recorder.records[0].Status != worklog.StatusCreated || recorder.records[0].Mode != worklog.ModeLive {
		t.Fatalf("unexpected record: %+v", recorder.records[0])
	}
}

func TestRun_SkipsDaysBelowOneHour(t *testing.T) {
	t.Parallel()

	// 3.6h of 4h already logged: remaining 0.4h, day skipped.
	tracker := &fakeTracker{loggedSeconds: map[string]int{"2026-08-03": 12960}}
	var out bytes.Buffer

	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.DefaultSettings(),
		Out:      &out,
	}

	dayStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)
	report, err := service.Run(context.Background(), mustRange(t, dayStart, dayStart))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if report.SkippedDays != 1 || report.Created != 0 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(tracker.submissions) != 0 {
		t.Fatalf("expected no submissions, got %d", len(tracker.submissions))
	}
	if !strings.Contains(out.String(), "[SKIP] 2026-08-03") {
		t.Fatalf("expected skip line, got %q", out.String())
	}
}

func TestRun_ProcessesDaysInOrderAndSkipsWeekends(t *testing.T) {
	t.Parallel()

	tracker := &fakeTracker{loggedSeconds: map[string]int{}}
	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.DefaultSettings(),
		Out:      &bytes.Buffer{},
	}

	// Friday through Tuesday: the weekend must not be queried.
	report, err := service.Run(context.Background(), mustRange(
		t,
		time.Date(2026, 8, 7, 0, 0, 0, 0, time.Local),
		time.Date(2026, 8, 11, 0, 0, 0, 0, time.Local),
	))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []string{"2026-08-07", "2026-08-10", "2026-08-11"}
	if len(tracker.queries) != len(want) {
		t.Fatalf("expected %d queries, got %v", len(want), tracker.queries)
	}
	for i, day := range want {
		if tracker.queries[i] != day {
			t.Fatalf("query %d is %s, expected %s", i, tracker.queries[i], day)
		}
	}
	if report.WorkingDays != 3 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestRun_AbortsWhenLoggedQueryFails(t *testing.T) {
	t.Parallel()

	tracker := &fakeTracker{loggedErr: errors.New("jira unreachable")}
	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.DefaultSettings(),
		Out:      &bytes.Buffer{},
	}

	_, err := service.Run(context.Background(), mustRange(
		t,
		time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local),
		time.Date(2026, 8, 7, 0, 0, 0, 0, time.Local),
	))
	if err == nil {
		t.Fatalf("expected run to abort on logged-time query failure")
	}
	if len(tracker.queries) != 1 {
		t.Fatalf("expected the run to stop after the first day, queried %v", tracker.queries)
	}
}

func TestRun_ContinuesAfterSubmissionFailure(t *testing.T) {
	t.Parallel()

	tracker := &fakeTracker{
		loggedSeconds: map[string]int{},
		submitErr:     map[string]error{"PRJ-2": fmt.Errorf("403 forbidden")},
	}
	recorder := &fakeRecorder{}
	var out bytes.Buffer

	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 5),
		Settings: planner.DefaultSettings(),
		Recorder: recorder,
		Out:      &out,
	}

	dayStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)
	report, err := service.Run(context.Background(), mustRange(t, dayStart, dayStart))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(tracker.submissions) != 4 {
		t.Fatalf("expected all 4 entries attempted, got %d", len(tracker.submissions))
	}
	if report.Created+report.Failed != 4 {
		t.Fatalf("created+failed must cover every entry: %+v", report)
	}

	failedRecords := 0
	for _, record := range recorder.records {
		if record.Status == worklog.StatusFailed {
			failedRecords++
			if record.IssueKey != "PRJ-2" {
				t.Fatalf("unexpected failed issue: %+v", record)
			}
		}
	}
	if failedRecords != report.Failed {
		t.Fatalf("report.Failed=%d but %d failed records", report.Failed, failedRecords)
	}
}

func TestRun_RejectsInvalidSettingsBeforeAnyQuery(t *testing.T) {
	t.Parallel()

	tracker := &fakeTracker{loggedSeconds: map[string]int{}}
	service := &Service{
		Tracker:  tracker,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.Settings{DailyHours: 2, MaxEntryHours: 3},
		Out:      &bytes.Buffer{},
	}

	_, err := service.Run(context.Background(), mustRange(
		t,
		time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local),
		time.Date(2026, 8, 7, 0, 0, 0, 0, time.Local),
	))
	if !errors.Is(err, planner.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
	if len(tracker.queries) != 0 {
		t.Fatalf("expected no external queries, got %v", tracker.queries)
	}
}

func TestRun_DeterministicWithFixedSeed(t *testing.T) {
	t.Parallel()

	run := func() []submission {
		tracker := &fakeTracker{loggedSeconds: map[string]int{}}
		service := &Service{
			Tracker:  tracker,
			Selector: fillerTestSelector(t, 77),
			Settings: planner.DefaultSettings(),
			Out:      &bytes.Buffer{},
		}
		_, err := service.Run(context.Background(), mustRange(
			t,
			time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local),
			time.Date(2026, 8, 7, 0, 0, 0, 0, time.Local),
		))
		if err != nil {
			t.Fatalf("run: %v", err)
		}
		return tracker.submissions
	}

	first := run()
	second := run()
	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("runs diverge at entry %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestDryRunTracker_PrintsPayloadWithoutSubmitting(t *testing.T) {
	t.Parallel()

	inner := &fakeTracker{loggedSeconds: map[string]int{"2026-08-03": 3600}}
	var out bytes.Buffer
	dry := DryRunTracker{Tracker: inner, Out: &out}

	service := &Service{
		Tracker:  dry,
		Selector: fillerTestSelector(t, 3),
		Settings: planner.DefaultSettings(),
		Mode:     worklog.ModeDryRun,
		Out:      &out,
	}

	dayStart := time.Date(2026, 8, 3, 0, 0, 0, 0, time.Local)
	report, err := service.Run(context.Background(), mustRange(t, dayStart, dayStart))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(inner.submissions) != 0 {
		t.Fatalf("dry run must not hit the tracker, got %d submissions", len(inner.submissions))
	}
	if report.Created != 3 {
		t.Fatalf("dry run must still count planned entries: %+v", report)
	}
	if len(inner.queries) != 1 {
		t.Fatalf("dry run must still query logged time, got %v", inner.queries)
	}
	if !strings.Contains(out.String(), `"timeSpentSeconds":3600`) {
		t.Fatalf("expected payload JSON in output, got %q", out.String())
	}
	if !strings.Contains(out.String(), `"started":"2026-08-03T10:00:00.000+0300"`) {
		t.Fatalf("expected started timestamp in output, got %q", out.String())
	}
}
