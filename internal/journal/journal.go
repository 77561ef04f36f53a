// Package journal keeps an optional JSON-lines history of factor runs.
package journal

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/varalys/digitfactor/internal/types"
)

// RunRecord is one line of the journal.
type RunRecord struct {
	Timestamp    time.Time    `json:"timestamp"`
	RunID        string       `json:"run_id"`
	Input        string       `json:"input"`
	Digits       int          `json:"digits,omitempty"`
	Results      int          `json:"results"`
	Pairs        []types.Pair `json:"pairs,omitempty"`
	PeakFrontier int          `json:"peak_frontier,omitempty"`
	Duration     string       `json:"duration"`
	Error        string       `json:"error,omitempty"`
}

type Journal struct {
	path string
}

func New(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Path() string { return j.path }

// LoadHistory returns the records, newest first. Lines that fail to decode
// are skipped. A journal that does not exist yet holds no records.
func (j *Journal) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			var record RunRecord
			if jerr := json.Unmarshal(line, &record); jerr == nil {
				records = append(records, record)
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read journal: %w", err)
		}
	}

	for i, k := 0, len(records)-1; i < k; i, k = i+1, k-1 {
		records[i], records[k] = records[k], records[i]
	}
	return records, nil
}

// LogRun appends a record, assigning a run ID when missing.
func (j *Journal) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	if dir := filepath.Dir(j.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create journal dir: %w", err)
		}
	}
	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write journal record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index, counted newest first as returned
// by LoadHistory. The journal is rewritten from the decodable records, so
// corrupt lines are dropped along with the deleted one.
func (j *Journal) DeleteRecord(index int) error {
	records, err := j.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	for i, k := 0, len(records)-1; i < k; i, k = i+1, k-1 {
		records[i], records[k] = records[k], records[i]
	}

	f, err := os.Create(j.path)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write journal record: %w", err)
		}
	}
	return nil
}

// NewRunRecord builds a record from a finished or failed run. Pass a nil
// err for successful runs.
func NewRunRecord(input string, digits int, pairs []types.Pair, peakFrontier int, duration time.Duration, err error) RunRecord {
	rec := RunRecord{
		Timestamp:    time.Now(),
		Input:        input,
		Digits:       digits,
		Results:      len(pairs),
		Pairs:        pairs,
		PeakFrontier: peakFrontier,
		Duration:     duration.String(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	return rec
}
