package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"jirafill/worklog"
)

type CSVWriter struct{}

func (w *CSVWriter) Write(path string, records []worklog.Record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Started", "IssueKey", "Summary", "Comment", "Seconds", "Hours", "Mode", "Status"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, record := range records {
		row := []string{
			record.Started.Format(time.RFC3339),
			record.IssueKey,
			record.Summary,
			record.Comment,
			strconv.Itoa(record.Seconds),
			fmt.Sprintf("%.2f", record.Hours()),
			record.Mode,
			record.Status,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}
