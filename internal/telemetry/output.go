package telemetry

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
)

// Writer streams FrameStats rows as CSV. The header goes out with the first row.
type Writer struct {
	w             *gocsv.SafeCSVWriter
	closer        io.Closer
	headerWritten bool
}

// NewWriter writes rows to w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: gocsv.NewSafeCSVWriter(csv.NewWriter(w))}
}

// Create opens path for writing, creating parent directories.
// An empty path returns a nil Writer, on which every method is a no-op.
func Create(path string) (*Writer, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating telemetry directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating %s", path)
	}
	tw := NewWriter(f)
	tw.closer = f
	return tw, nil
}

// Write appends one row
func (tw *Writer) Write(s FrameStats) error {
	if tw == nil {
		return nil
	}
	rows := []FrameStats{s}
	var err error
	if !tw.headerWritten {
		err = gocsv.MarshalCSV(rows, tw.w)
		tw.headerWritten = true
	} else {
		err = gocsv.MarshalCSVWithoutHeaders(rows, tw.w)
	}
	if err != nil {
		return errors.Wrap(err, "writing telemetry")
	}
	tw.w.Flush()
	return errors.Wrap(tw.w.Error(), "flushing telemetry")
}

// Close closes the underlying file, if the Writer opened one
func (tw *Writer) Close() error {
	if tw == nil || tw.closer == nil {
		return nil
	}
	return tw.closer.Close()
}
