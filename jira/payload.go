package jira

import (
	"fmt"
	"strings"
	"time"
)

// startedLayout matches the tracker's worklog timestamp, e.g.
// 2026-02-23T10:00:00.000+0300.
const startedLayout = "2006-01-02T15:04:05.000-0700"

// WorklogPayload is the exact wire shape posted per worklog entry.
type WorklogPayload struct {
	Comment          string `json:"comment"`
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

func NewWorklogPayload(comment string, started time.Time, seconds int) WorklogPayload {
	return WorklogPayload{
		Comment:          comment,
		Started:          FormatStarted(started),
		TimeSpentSeconds: seconds,
	}
}

func FormatStarted(value time.Time) string {
	return value.Format(startedLayout)
}

func ParseStarted(value string) (time.Time, error) {
	parsed, err := time.Parse(startedLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse started %q: %w", value, err)
	}
	return parsed, nil
}
