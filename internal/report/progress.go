package report

import (
	"fmt"
	"io"

	"github.com/varalys/digitfactor/internal/types"
)

// Progress prints the search event stream as colorized status lines. Its
// Handle method is meant to be used as engine.Config.Progress.
type Progress struct {
	w  io.Writer
	st styler
}

func NewProgress(w io.Writer, noColor bool) *Progress {
	return &Progress{w: w, st: newStyler(noColor)}
}

func (p *Progress) Handle(ev types.Event) {
	switch ev.Kind {
	case types.EventIterationStart:
		fmt.Fprintln(p.w, p.st.status(fmt.Sprintf("Finding matches at %d digit(s)", ev.Digit)))
	case types.EventCandidateAccepted:
		fmt.Fprintln(p.w, p.st.match("Match found: "+ev.Pair.String()))
	case types.EventIterationDone:
		fmt.Fprintln(p.w, p.st.pass(fmt.Sprintf("%d match(es) found with %d digits", ev.Count, ev.Digit)))
	case types.EventVerifyStart:
		fmt.Fprintln(p.w, p.st.status("Verifying matches"))
	case types.EventVerified:
		if ev.Passed {
			fmt.Fprintln(p.w, p.st.pass("Match passed: "+ev.Pair.String()))
		} else {
			fmt.Fprintln(p.w, p.st.fail("Match failed: "+ev.Pair.String()))
		}
	}
}
