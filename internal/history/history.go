// Package history keeps the append-only log of generated budgets: one CSV
// line per document with the occurrence number, the estimator and the time.
package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// TimeLayout is the timestamp format of the DATAHORA column.
const TimeLayout = "02/01/2006 15:04:05"

// Header is the first line of every log file.
var Header = []string{"RAT", "ORÇAMENTISTA", "DATAHORA"}

// ErrEmptyOccurrence is returned when an entry has no occurrence number.
var ErrEmptyOccurrence = errors.New("empty occurrence number")

// Entry is one generated budget.
type Entry struct {
	Occurrence string
	Estimator  string
	Time       time.Time
}

// Record returns the CSV fields of e.
func (e Entry) Record() []string {
	return []string{e.Occurrence, e.Estimator, e.Time.Format(TimeLayout)}
}

// Append adds e to the log at path, writing the header first when the file
// is new or empty.
func Append(path string, e Entry) error {
	if strings.TrimSpace(e.Occurrence) == "" {
		return ErrEmptyOccurrence
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat history: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(Header); err != nil {
			f.Close()
			return fmt.Errorf("write history header: %w", err)
		}
	}
	if err := w.Write(e.Record()); err != nil {
		f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush history: %w", err)
	}
	return f.Close()
}

// Read returns every entry of the log at path, oldest first. A missing file
// is an empty history. Lines whose timestamp does not parse keep a zero Time.
func Read(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	defer f.Close()
	return ReadFrom(f)
}

// ReadFrom parses a log from r.
func ReadFrom(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	var out []Entry
	first := true
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("parse history: %w", err)
		}
		if first {
			first = false
			if len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), Header[0]) {
				continue
			}
		}
		for len(rec) < len(Header) {
			rec = append(rec, "")
		}
		ts, _ := time.ParseInLocation(TimeLayout, rec[2], time.Local)
		out = append(out, Entry{Occurrence: rec[0], Estimator: rec[1], Time: ts})
	}
}
