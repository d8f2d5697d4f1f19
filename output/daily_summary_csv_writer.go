package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

func writeDailySummariesCSV(path string, summaries []DailySummary) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"Date", "FirstStart", "LastEnd", "PlannedHours", "FailedHours", "EntryCount", "FailedCount"}
	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}

	for _, summary := range summaries {
		row := []string{
			summary.Date,
			summary.FirstStart.Format("15:04"),
			summary.LastEnd.Format("15:04"),
			fmt.Sprintf("%.2f", summary.PlannedHours),
			fmt.Sprintf("%.2f", summary.FailedHours),
			strconv.Itoa(summary.EntryCount),
			strconv.Itoa(summary.FailedCount),
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
