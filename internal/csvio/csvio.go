// Package csvio reads header-keyed CSV rows and writes the normalized output.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNoHeader is returned when a CSV stream has no header row.
var ErrNoHeader = errors.New("csv has no header row")

// Reader yields rows keyed by the header's column names.
type Reader struct {
	csv    *csv.Reader
	header []string
	line   int
}

// NewReader reads the header row from r. A leading UTF-8 byte order mark is
// dropped so that spreadsheet exports keep their first column name intact.
func NewReader(r io.Reader) (*Reader, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	return &Reader{
		csv:    cr,
		header: header,
		line:   1,
	}, nil
}

// Header returns the column names in file order.
func (r *Reader) Header() []string {
	return r.header
}

// Line returns the number of records consumed so far, header included.
func (r *Reader) Line() int {
	return r.line
}

// Read returns the next row. Missing trailing cells are empty strings and
// cells beyond the header are ignored. It returns io.EOF after the last row.
func (r *Reader) Read() (map[string]string, error) {
	record, err := r.csv.Read()
	if err != nil {
		return nil, err
	}
	r.line++

	row := make(map[string]string, len(r.header))
	for i, col := range r.header {
		if i < len(record) {
			row[col] = record[i]
		} else {
			row[col] = ""
		}
	}
	return row, nil
}

// readAll reads every remaining row.
func (r *Reader) readAll() ([]map[string]string, error) {
	var rows []map[string]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}
		rows = append(rows, row)
	}
}

// Write writes a header followed by rows.
func Write(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}

// WriteFile writes header and rows to path, creating parent directories, and
// returns the number of bytes written.
func WriteFile(path string, header []string, rows [][]string) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	// #nosec G304 -- output path comes from the operator's configuration
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create output file: %w", err)
	}

	cw := &countingWriter{w: f}
	if err := Write(cw, header, rows); err != nil {
		f.Close()
		return cw.n, err
	}
	if err := f.Close(); err != nil {
		return cw.n, fmt.Errorf("failed to close output file: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
