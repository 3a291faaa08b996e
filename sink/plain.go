package sink

import (
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/npillmayer/filltext/cells"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
)

// PlainWriter is a sink without layout. Chunks are rendered as they are,
// control chunks are dropped.
type PlainWriter struct {
	mu       sync.Mutex
	out      io.Writer
	mode     chunk.Mode
	position int
	closed   bool
}

var _ Sink = (*PlainWriter)(nil)

// Plain creates a sink which renders chunks in a given mode to out.
func Plain(out io.Writer, mode chunk.Mode) *PlainWriter {
	return &PlainWriter{out: out, mode: mode}
}

// Capabilities returns empty capabilities.
func (p *PlainWriter) Capabilities() Capabilities {
	return Capabilities{}
}

// Position returns the current output column.
func (p *PlainWriter) Position() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position
}

// Layout returns the empty layout.
func (p *PlainWriter) Layout() *layout.Layout {
	return layout.Empty
}

// WriteChunks renders chunks and writes them in one piece.
func (p *PlainWriter) WriteChunks(chunks iter.Seq[chunk.Chunk]) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	var b strings.Builder
	for c := range chunks {
		b.WriteString(c.Render(p.mode))
	}
	s := b.String()
	if _, err := io.WriteString(p.out, s); err != nil {
		return fmt.Errorf("sink: write failed: %w", err)
	}
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		p.position, s = 0, s[i+1:]
	}
	p.position += cells.Width(s)
	return nil
}

// Close marks the sink as closed.
func (p *PlainWriter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	return nil
}
