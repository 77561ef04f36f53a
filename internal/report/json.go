package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/varalys/digitfactor/internal/engine"
	"github.com/varalys/digitfactor/internal/types"
)

// Document is the JSON shape printed by --json.
type Document struct {
	N          *big.Int     `json:"n"`
	Digits     int          `json:"digits"`
	Pairs      []types.Pair `json:"pairs"`
	DurationMS int64        `json:"duration_ms"`
}

// NewDocument captures a finished search.
func NewDocument(res engine.Result) Document {
	return Document{
		N:          res.N,
		Digits:     res.Digits,
		Pairs:      res.Pairs,
		DurationMS: res.Duration.Milliseconds(),
	}
}

func WriteJSON(w io.Writer, doc Document) error {
	if doc.Pairs == nil {
		doc.Pairs = []types.Pair{} // no `null` in JSON
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// ReadJSON decodes a document written by WriteJSON and rejects pairs that
// do not multiply to n.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if doc.N == nil {
		return Document{}, fmt.Errorf("decode document: missing n")
	}
	for i, p := range doc.Pairs {
		if p.Left == nil || p.Right == nil {
			return Document{}, fmt.Errorf("decode document: pair %d is incomplete", i)
		}
		if p.Product().Cmp(doc.N) != 0 {
			return Document{}, fmt.Errorf("decode document: pair %s does not multiply to %s", p, doc.N)
		}
	}
	return doc, nil
}
