package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"sih-ps-scraper/models"
)

// Header is the fixed column layout of the output file.
var Header = []string{
	"S.No.",
	"Organization",
	"Problem Statement Title",
	"Category",
	"PS Number",
	"Submitted Idea(s) Count",
	"Theme",
	"Deadline for Idea Submission",
}

// CSVWriter writes collected rows to a CSV file.
// It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteRows writes every row, each fitted to the header width.
func (c *CSVWriter) WriteRows(rows []models.Row) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, row := range rows {
		if err := c.writer.Write(FitRow(row, len(Header))); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// FitRow pads row with empty strings, or truncates it, to exactly width fields.
// The input is never modified.
func FitRow(row models.Row, width int) []string {
	out := make([]string, width)
	copy(out, row)
	return out
}
