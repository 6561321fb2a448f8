package driver

import (
	"bufio"
	"io"
	"sync"

	"fenrir/internal/model"
)

// WriterSink renders events or diagnostics as lines onto an io.Writer,
// flushing after every write so the total order on the wire matches the
// total order of the requests that produced it, per spec §5's ordering
// guarantee — nothing is allowed to sit buffered past a message boundary.
type WriterSink struct {
	mu  sync.Mutex
	out *bufio.Writer
}

// NewWriterSink wraps w for line-oriented, flush-per-message output.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{out: bufio.NewWriter(w)}
}

// Emit implements model.EventSink.
func (s *WriterSink) Emit(ev model.Event) {
	s.writeLine(ev.WireLine())
}

// Diagnose implements model.DiagnosticSink.
func (s *WriterSink) Diagnose(message string) {
	s.writeLine(message)
}

func (s *WriterSink) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.out.WriteString(line)
	_, _ = s.out.WriteString("\n")
	_ = s.out.Flush()
}
