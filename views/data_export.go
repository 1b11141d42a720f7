package views

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"

	"speedsense/models"
)

// CSVWriter is a concurrency-safe, buffered CSV writer. It backs both the
// collector's /export endpoint and the logger's local session export.
type CSVWriter struct {
	mu     sync.Mutex
	closer io.Closer
	buf    *bufio.Writer
	csv    *csv.Writer
	rows   uint64
}

// NewCSVWriter wraps w and writes the header row for schema.
func NewCSVWriter(w io.Writer, bufSizeBytes int, schema Schema) (*CSVWriter, error) {
	if bufSizeBytes <= 0 {
		bufSizeBytes = 64 * 1024
	}

	bw := bufio.NewWriterSize(w, bufSizeBytes)
	cw := csv.NewWriter(bw)

	header, ok := SchemaColumns[schema]
	if !ok {
		return nil, fmt.Errorf("csv: unknown schema %s", schema)
	}
	if err := cw.Write(header); err != nil {
		return nil, fmt.Errorf("csv write header: %w", err)
	}

	return &CSVWriter{buf: bw, csv: cw}, nil
}

// CreateCSVFile creates (or truncates) path and writes the header row.
func CreateCSVFile(path string, bufSizeBytes int, schema Schema) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}
	w, err := NewCSVWriter(f, bufSizeBytes, schema)
	if err != nil {
		f.Close()
		return nil, err
	}
	w.closer = f
	return w, nil
}

// WriteRow appends a single CSV row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) {
	w.mu.Lock()
	_ = w.csv.Write(row) // error is buffered; checked on Flush
	w.rows++
	w.mu.Unlock()
}

// WriteRecord appends rec's CSV row.
func (w *CSVWriter) WriteRecord(rec models.CSVRowWriter) {
	w.WriteRow(rec.CSVRow())
}

// Flush pushes buffered rows to the underlying writer and reports the first
// write error seen so far.
func (w *CSVWriter) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes remaining data and closes the file, if the writer owns one.
func (w *CSVWriter) Close() error {
	err := w.Flush()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
		w.closer = nil
	}
	return err
}

// Rows returns the number of data rows written (excludes header).
func (w *CSVWriter) Rows() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}
