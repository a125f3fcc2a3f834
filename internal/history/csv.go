package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

var csvHeader = []string{"timestamp", "title", "price", "profit", "margin_pct", "link", "status"}

// WriteCSV streams entries as CSV.
func WriteCSV(w io.Writer, entries []Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range entries {
		row := []string{
			e.Timestamp.Format(time.RFC3339),
			e.Title,
			e.Price.StringFixed(2),
			e.NetProfit.StringFixed(2),
			e.MarginPct.StringFixed(1),
			e.SourceLink,
			e.Status,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv export: %w", err)
	}
	return nil
}

// ExportCSV writes entries to a file.
func ExportCSV(path string, entries []Entry) error {
	f, err := os.Create(path) //nolint:gosec // export path from trusted CLI flag
	if err != nil {
		return fmt.Errorf("create csv export: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, entries)
}
