package scenario

import (
	"bufio"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"spaceship-core/internal/record"
)

// TraceWriter appends msgpack snapshots, one per frame, to a stream
type TraceWriter struct {
	buf    *bufio.Writer
	enc    *msgpack.Encoder
	closer io.Closer
}

// NewTraceWriter writes snapshots to w. Call Close to flush.
func NewTraceWriter(w io.Writer) *TraceWriter {
	buf := bufio.NewWriter(w)
	return &TraceWriter{buf: buf, enc: msgpack.NewEncoder(buf)}
}

// CreateTrace opens path for a trace. An empty path returns a nil writer,
// on which every method is a no-op.
func CreateTrace(path string) (*TraceWriter, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "creating trace %s", path)
	}
	tw := NewTraceWriter(f)
	tw.closer = f
	return tw, nil
}

// Write appends one snapshot
func (t *TraceWriter) Write(s *record.Snapshot) error {
	if t == nil {
		return nil
	}
	return errors.Wrap(t.enc.Encode(s), "encoding snapshot")
}

// Close flushes the stream and closes the file, if the writer opened one
func (t *TraceWriter) Close() error {
	if t == nil {
		return nil
	}
	if err := t.buf.Flush(); err != nil {
		return errors.Wrap(err, "flushing trace")
	}
	if t.closer != nil {
		return t.closer.Close()
	}
	return nil
}

// ReadTrace decodes every snapshot in r, checking buffer strides
func ReadTrace(r io.Reader) ([]*record.Snapshot, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var out []*record.Snapshot
	for {
		var s record.Snapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, errors.Wrapf(err, "decoding snapshot %d", len(out))
		}
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "snapshot %d", len(out))
		}
		out = append(out, &s)
	}
}
