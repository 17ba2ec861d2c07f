package log

import (
	"io"
	"os"
	"sync"
)

// ConsoleOutput writes formatted entries to stderr.
type ConsoleOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsoleOutput returns an Output backed by stderr.
func NewConsoleOutput() *ConsoleOutput {
	return &ConsoleOutput{w: os.Stderr}
}

// Write writes one formatted entry.
func (o *ConsoleOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.w.Write(formatted)
	return err
}

// Close is a no-op; the console is not ours to close.
func (o *ConsoleOutput) Close() error { return nil }

// WriterOutput adapts an arbitrary io.Writer to the Output interface.
// Writes are serialized; Close closes the writer when it is an io.Closer.
type WriterOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterOutput wraps w as an Output.
func NewWriterOutput(w io.Writer) *WriterOutput { return &WriterOutput{w: w} }

// Write writes one formatted entry.
func (o *WriterOutput) Write(_ *Entry, formatted []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := o.w.Write(formatted)
	return err
}

// Close closes the underlying writer if it supports closing.
func (o *WriterOutput) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if c, ok := o.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NullOutput discards all entries.
type NullOutput struct{}

// Write discards the entry.
func (NullOutput) Write(*Entry, []byte) error { return nil }

// Close is a no-op.
func (NullOutput) Close() error { return nil }
