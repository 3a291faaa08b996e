package sink

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/guiguan/caster"
	"github.com/npillmayer/filltext/cells"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/filltext/wrap"
)

// Event is broadcast by a Writer for every text segment and every control
// chunk it outputs. Position is the output column after the event.
type Event struct {
	Text     string
	Control  chunk.Chunk
	Position int
}

// IsControl is true for events reporting a control chunk.
func (e Event) IsControl() bool {
	return e.Control.IsControl()
}

// Writer is a width-aware sink on top of an io.Writer. Chunks are flowed
// into lines of the writer's layout.
//
// Writes are queued and executed one after the other, on a single
// goroutine. A Writer must be closed to release this goroutine.
type Writer struct {
	out     io.Writer
	caps    Capabilities
	handler ControlHandler
	mode    chunk.Mode
	cast    *caster.Caster // nil without events
	queue   *serial
	mu      sync.Mutex // guards position and layout
	// state below is changed by queued jobs only
	position int
	layout   *layout.Layout
}

var _ Sink = (*Writer)(nil)
var _ io.Writer = (*Writer)(nil)

// NewWriter creates a sink writing to out. Without WithCapabilities, out is
// considered a device of unknown width which does not wrap by itself.
func NewWriter(out io.Writer, opts ...Option) *Writer {
	return newWriter(out, newConfig(opts))
}

func newWriter(out io.Writer, cfg config) *Writer {
	w := &Writer{
		out:      out,
		handler:  cfg.handler,
		mode:     cfg.mode,
		position: cfg.position,
	}
	if cfg.caps != nil {
		w.caps = *cfg.caps
	}
	if w.handler != nil {
		w.caps.SupportsControl = true
	}
	w.layout = w.fit(layout.Default.Apply(cfg.layout))
	if cfg.events {
		w.cast = caster.New(context.Background())
	}
	w.queue = newSerial()
	tracer().Debugf("new sink writer, capabilities = %+v", w.caps)
	return w
}

// fit adapts a layout to the device: it must not be wider than the device,
// and devices which do not wrap by themselves need explicit line ends.
func (w *Writer) fit(l *layout.Layout) *layout.Layout {
	if w.caps.Width > 0 && l.Width() > w.caps.Width {
		l = l.With(layout.Width(w.caps.Width))
	}
	if !w.caps.AutoWraps && l.WrapMode() != layout.NewLine {
		l = l.With(layout.Wrap(layout.NewLine))
	}
	return l
}

// Capabilities returns the capabilities of the device.
func (w *Writer) Capabilities() Capabilities {
	return w.caps
}

// Position returns the current output column. Called from a ControlHandler,
// it reports the column at the start of the write in progress.
func (w *Writer) Position() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.position
}

// Layout returns the layout for the next write. Layout controls in written
// chunks change it.
func (w *Writer) Layout() *layout.Layout {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.layout
}

// SetLayout applies l on top of the writer's current layout. It waits for
// pending writes and must not be called from a ControlHandler; use a layout
// control chunk to change the layout in the middle of a write.
func (w *Writer) SetLayout(l *layout.Layout) error {
	return w.queue.do(func() error {
		w.mu.Lock()
		defer w.mu.Unlock()
		w.layout = w.fit(w.layout.Apply(l))
		return nil
	})
}

// WriteChunks flows chunks into lines and writes them. It returns ErrClosed
// if the writer has been closed.
func (w *Writer) WriteChunks(chunks iter.Seq[chunk.Chunk]) error {
	return w.queue.do(func() error {
		return w.write(chunks)
	})
}

// Write implements io.Writer. p is treated as literal text.
func (w *Writer) Write(p []byte) (int, error) {
	c := chunk.Text(string(p))
	if err := w.WriteChunks(slices.Values([]chunk.Chunk{c})); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Subscribe returns a channel receiving Events, for writers created with
// WithEvents. Subscribers must drain their channel, as slow subscribers hold
// up writing. The subscription ends with ctx or when the writer is closed.
func (w *Writer) Subscribe(ctx context.Context, capacity uint) (<-chan interface{}, bool) {
	if w.cast == nil {
		return nil, false
	}
	return w.cast.Sub(ctx, capacity)
}

// Close waits for pending writes and releases the writer. The underlying
// io.Writer is not closed.
func (w *Writer) Close() error {
	if !w.queue.close() {
		return ErrClosed
	}
	if w.cast != nil {
		w.cast.Close()
	}
	return nil
}

func (w *Writer) write(chunks iter.Seq[chunk.Chunk]) error {
	w.mu.Lock()
	start, l := w.position, w.layout
	w.mu.Unlock()
	res := wrap.Flow(chunks, l, start, w.mode)
	col := start
	var text strings.Builder
	flush := func() error {
		if text.Len() == 0 {
			return nil
		}
		s := text.String()
		text.Reset()
		if _, err := io.WriteString(w.out, s); err != nil {
			return fmt.Errorf("sink: write failed: %w", err)
		}
		col = w.advance(col, s)
		w.publish(Event{Text: s, Position: col})
		return nil
	}
	for _, c := range res.Chunks {
		if !c.IsControl() {
			text.WriteString(c.Render(w.mode))
			continue
		}
		if err := flush(); err != nil {
			return err
		}
		if w.handler != nil {
			w.handler(w.out, c)
		} else {
			tracer().Debugf("sink drops control %s", c.Syntax())
		}
		w.publish(Event{Control: c, Position: col})
	}
	err := flush()
	w.mu.Lock()
	w.position = res.Position
	w.layout = w.fit(res.Layout)
	w.mu.Unlock()
	return err
}

// advance computes the output column after writing s at column col.
func (w *Writer) advance(col int, s string) int {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		col, s = 0, s[i+1:]
	}
	col += cells.Width(s)
	if w.caps.AutoWraps && w.caps.Width > 0 {
		col %= w.caps.Width
	}
	return col
}

func (w *Writer) publish(e Event) {
	if w.cast != nil {
		w.cast.Pub(e)
	}
}
