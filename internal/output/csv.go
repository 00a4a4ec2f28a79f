// Package output writes the canonical record stream to flat files.
package output

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

// CSVWriter appends canonical records to a fixed-header CSV file. Writes are
// sequential; a failed run leaves a truncated file and is re-run from scratch.
type CSVWriter struct {
	file          *os.File
	w             *csv.Writer
	withModifiers bool
	written       int64
}

// NewCSVWriter creates path and writes the canonical header row. The
// modifiers column is present for CSV-sourced formats only.
func NewCSVWriter(path string, withModifiers bool) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(model.Fields(withModifiers)); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}
	return &CSVWriter{file: f, w: w, withModifiers: withModifiers}, nil
}

// Write appends one record.
func (c *CSVWriter) Write(rec *model.Record) error {
	if err := c.w.Write(rec.Values(c.withModifiers)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	c.written++
	return nil
}

// Written returns the number of records written so far.
func (c *CSVWriter) Written() int64 {
	return c.written
}

// Close flushes and closes the file, surfacing any deferred write error.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return c.file.Close()
}
