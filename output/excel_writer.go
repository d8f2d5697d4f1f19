package output

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"jirafill/worklog"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, records []worklog.Record) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"Started", "IssueKey", "Summary", "Comment", "Seconds", "Hours", "Mode", "Status"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range records {
		row := i + 2
		values := []string{
			record.Started.Format(time.RFC3339),
			record.IssueKey,
			record.Summary,
			record.Comment,
			strconv.Itoa(record.Seconds),
			fmt.Sprintf("%.2f", record.Hours()),
			record.Mode,
			record.Status,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
