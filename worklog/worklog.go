package worklog

import "time"

// Modes a record can be generated under.
const (
	ModeLive   = "live"
	ModeDryRun = "dry-run"
)

// Submission outcomes.
const (
	StatusCreated = "created"
	StatusFailed  = "failed"
)

// Record is one generated worklog entry as persisted for auditing and export.
type Record struct {
	ID        int64
	IssueKey  string
	Summary   string
	Comment   string
	Started   time.Time
	Seconds   int
	Mode      string
	Status    string
	CreatedAt time.Time
}

func (r Record) Hours() float64 {
	return float64(r.Seconds) / 3600
}
