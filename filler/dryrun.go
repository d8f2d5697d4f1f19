package filler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"jirafill/jira"
)

// DryRunTracker delegates reads to the wrapped tracker and replaces the
// submission side effect with printing the exact wire payload.
type DryRunTracker struct {
	Tracker
	Out io.Writer
}

func (t DryRunTracker) AddWorklog(_ context.Context, issueKey, comment string, started time.Time, seconds int) error {
	payload := jira.NewWorklogPayload(comment, started, seconds)
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal dry-run payload: %w", err)
	}
	fmt.Fprintf(t.Out, "[DRY-RUN] %s %s\n", issueKey, raw)
	return nil
}
