package sink

import (
	"errors"
	"io"
	"iter"

	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
)

// ErrClosed is returned for writes to a closed sink.
var ErrClosed = errors.New("sink: closed")

// Capabilities describe an output device.
type Capabilities struct {
	SupportsColor   bool // understands ANSI color sequences
	SupportsControl bool // control chunks are dispatched to a handler
	AutoWraps       bool // wraps by itself when a line reaches Width
	Width           int  // line width in cells, 0 if unknown
}

// Sink is an output device for chunks.
type Sink interface {
	Capabilities() Capabilities
	// Position is the current output column.
	Position() int
	// Layout is the layout used for the next write.
	Layout() *layout.Layout
	WriteChunks(chunks iter.Seq[chunk.Chunk]) error
	Close() error
}

// ControlHandler is called for every control chunk written to a sink. It may
// write escape sequences to w. Handlers run while the sink is writing: they
// may query the sink's Position and Layout, but must not write to the sink
// or call SetLayout or Close.
type ControlHandler func(w io.Writer, c chunk.Chunk)

// Option configures a sink.
type Option func(*config)

type config struct {
	layout     *layout.Layout
	caps       *Capabilities
	handler    ControlHandler
	mode       chunk.Mode
	position   int
	events     bool
	palette    Palette
	forceColor bool
}

func newConfig(opts []Option) config {
	cfg := config{mode: chunk.General}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithLayout sets the initial layout, applied on top of the sink's default
// layout.
func WithLayout(l *layout.Layout) Option {
	return func(cfg *config) {
		cfg.layout = cfg.layout.Apply(l)
	}
}

// WithCapabilities overrides the capabilities of a sink.
func WithCapabilities(caps Capabilities) Option {
	return func(cfg *config) {
		cfg.caps = &caps
	}
}

// WithControlHandler sets the handler for control chunks. See ControlHandler
// for what a handler may do with its sink.
func WithControlHandler(h ControlHandler) Option {
	return func(cfg *config) {
		cfg.handler = h
	}
}

// WithMode sets the render mode for fill points.
func WithMode(m chunk.Mode) Option {
	return func(cfg *config) {
		cfg.mode = m
	}
}

// WithPosition sets the initial output column.
func WithPosition(col int) Option {
	return func(cfg *config) {
		cfg.position = max(col, 0)
	}
}

// WithEvents makes a sink broadcast an Event for every piece of output.
// See Writer.Subscribe.
func WithEvents() Option {
	return func(cfg *config) {
		cfg.events = true
	}
}

// WithPalette adds custom color names to a console sink.
func WithPalette(p Palette) Option {
	return func(cfg *config) {
		cfg.palette = p
	}
}

// ForceColor makes a console sink emit colors even if the terminal does not
// seem to support them.
func ForceColor(b bool) Option {
	return func(cfg *config) {
		cfg.forceColor = b
	}
}
