package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/varalys/digitfactor/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// PrintTable renders verified pairs as a bordered table followed by the
// timing footer.
func PrintTable(w io.Writer, pairs []types.Pair, opts PrintOptions) error {
	st := newStyler(opts.NoColor)
	if len(pairs) == 0 {
		fmt.Fprintln(w, st.fail("No matches passed"))
	} else {
		fmt.Fprintln(w, st.pass(fmt.Sprintf("%d match(es) passed", len(pairs))))
		table := tablewriter.NewWriter(w)
		table.Header("#", "LEFT", "RIGHT")
		for i, p := range pairs {
			if err := table.Append([]string{strconv.Itoa(i + 1), p.Left.String(), p.Right.String()}); err != nil {
				return err
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	printFooter(w, st, opts)
	return nil
}

// PrintText renders one "Match: [ L, R ]" line per pair.
func PrintText(w io.Writer, pairs []types.Pair, opts PrintOptions) {
	st := newStyler(opts.NoColor)
	fmt.Fprintln(w, st.pass(fmt.Sprintf("%d match(es) passed", len(pairs))))
	for _, p := range pairs {
		fmt.Fprintln(w, st.match("Match: "+p.String()))
	}
	printFooter(w, st, opts)
}

func printFooter(w io.Writer, st styler, opts PrintOptions) {
	if opts.Duration > 0 {
		fmt.Fprintln(w, st.pass(fmt.Sprintf("Time processed: %dms", opts.Duration.Milliseconds())))
	}
}
