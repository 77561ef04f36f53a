package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/varalys/digitfactor/internal/journal"
)

// PrintHistory renders journal records, newest first, with the index that
// DeleteRecord expects.
func PrintHistory(w io.Writer, records []journal.RunRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "WHEN", "INPUT", "RESULTS", "DURATION", "ERROR")
	for i, r := range records {
		row := []string{
			strconv.Itoa(i),
			r.Timestamp.Format("2006-01-02 15:04:05"),
			truncate(r.Input, 24),
			strconv.Itoa(r.Results),
			r.Duration,
			r.Error,
		}
		if err := table.Append(row); err != nil {
			return err
		}
	}
	return table.Render()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
