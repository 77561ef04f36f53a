package core

import (
	"io"

	"github.com/varalys/digitfactor/internal/report"
)

// Document is the {"n", "digits", "pairs", "duration_ms"} JSON shape that
// `digitfactor factor --json` prints.
type Document = report.Document

// WriteResult encodes res in the same form as the CLI's --json output.
func WriteResult(w io.Writer, res Result) error {
	return report.WriteJSON(w, report.NewDocument(res))
}

// ReadResult decodes --json output. Documents containing a pair that does
// not multiply to n are rejected.
func ReadResult(r io.Reader) (Document, error) {
	return report.ReadJSON(r)
}
