package backends

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// DefaultBufferSize for buffered sink writes.
const DefaultBufferSize = 32 * 1024 // 32 KB

// fdWriter is anything that exposes a file descriptor, which is what we
// need to ask the OS whether the sink is a terminal.
type fdWriter interface {
	Fd() uintptr
}

// WriterBackend wraps an arbitrary io.Writer as a sink. When the writer
// is an interactive terminal every line is flushed immediately so the
// output stays live; otherwise writes are buffered and flushed in
// batches by the consumer.
type WriterBackend struct {
	out io.Writer
	buf *bufio.Writer
	tty bool
}

// NewStdout returns the default sink, the process standard output.
func NewStdout() *WriterBackend {
	return NewWriter(os.Stdout)
}

// NewWriter wraps w as a sink.
func NewWriter(w io.Writer) *WriterBackend {
	b := &WriterBackend{
		out: w,
		buf: bufio.NewWriterSize(w, DefaultBufferSize),
	}
	if f, ok := w.(fdWriter); ok {
		b.tty = isTerminal(f)
	}
	return b
}

func isTerminal(f fdWriter) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsTerminal reports whether the underlying writer is an interactive
// terminal.
func (b *WriterBackend) IsTerminal() bool {
	return b.tty
}

// Write appends entry to the sink.
func (b *WriterBackend) Write(entry []byte) (int, error) {
	n, err := b.buf.Write(entry)
	if err != nil {
		return n, err
	}
	if b.tty {
		return n, b.buf.Flush()
	}
	return n, nil
}

// Flush pushes buffered bytes to the underlying writer.
func (b *WriterBackend) Flush() error {
	return b.buf.Flush()
}

// Close flushes. The underlying writer is not closed: the backend does
// not own stdout or a caller-supplied writer.
func (b *WriterBackend) Close() error {
	return b.buf.Flush()
}
