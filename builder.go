package filltext

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/filltext/resolve"
	"github.com/npillmayer/filltext/sink"
	"github.com/npillmayer/filltext/wrap"
)

// Builder collects chunks, in order.
//
// A builder may be frozen with MakeReadonly. Appending to a read-only
// builder does nothing, so builders may be handed out without the risk of
// them being modified.
//
// Builders implement chunk.Source. A builder used as a value of a fill point
// expands into its chunks.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
// Builders are not safe for concurrent modification.
type Builder struct {
	chunks   []chunk.Chunk
	readonly bool
}

var _ chunk.Source = (*Builder)(nil)

// NewBuilder creates a new and empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Template creates a builder from a string in fill-point notation.
func Template(s string) *Builder {
	return NewBuilder().AppendTemplate(s)
}

// Format creates a builder from a composite format string, see AppendFormat.
func Format(format string, args ...any) *Builder {
	return NewBuilder().AppendFormat(format, args...)
}

// MakeReadonly freezes b.
func (b *Builder) MakeReadonly() *Builder {
	b.readonly = true
	return b
}

// IsReadonly is true for frozen builders.
func (b *Builder) IsReadonly() bool {
	return b.readonly
}

func (b *Builder) add(chunks ...chunk.Chunk) *Builder {
	if b.readonly {
		tracer().Debugf("builder is read-only, ignoring %d chunk(s)", len(chunks))
		return b
	}
	b.chunks = append(b.chunks, chunks...)
	return b
}

// --- Appending -------------------------------------------------------------

// Append appends literal text.
func (b *Builder) Append(s string) *Builder {
	if s == "" {
		return b
	}
	return b.add(chunk.Text(s))
}

// AppendLine appends literal text followed by a line break.
func (b *Builder) AppendLine(s string) *Builder {
	return b.add(chunk.Text(s + "\n"))
}

// AppendValue appends a value, rendered in its default format. Values which
// are chunks or chunk sources expand into their chunks at output time.
func (b *Builder) AppendValue(v any) *Builder {
	return b.add(chunk.Value(v))
}

// AppendChunk appends a single chunk.
func (b *Builder) AppendChunk(c chunk.Chunk) *Builder {
	return b.add(c)
}

// AppendChunks appends a sequence of chunks.
func (b *Builder) AppendChunks(chunks iter.Seq[chunk.Chunk]) *Builder {
	if b.readonly {
		return b
	}
	for c := range chunks {
		b.chunks = append(b.chunks, c)
	}
	return b
}

// AppendBuilder appends the chunks of another builder, as they are now.
func (b *Builder) AppendBuilder(other *Builder) *Builder {
	if other == nil {
		return b
	}
	return b.add(slices.Clone(other.chunks)...)
}

// AppendFillPoint appends an unresolved fill point.
func (b *Builder) AppendFillPoint(tag string, alignment int, format string) *Builder {
	return b.add(chunk.FillPoint(tag, alignment, format))
}

// AppendControl appends a control chunk. tag is given without the leading '!'.
func (b *Builder) AppendControl(tag string, format string) *Builder {
	return b.add(chunk.Control(tag, format))
}

// AppendTemplate parses s in fill-point notation and appends the result.
func (b *Builder) AppendTemplate(s string) *Builder {
	return b.AppendChunks(chunk.Parse(s))
}

// AppendFormat appends a composite format string. Fill points with numeric
// tags are replaced by the positional argument they index:
//
//	b.AppendFormat("{0} owes {1,8:%.2f} {{EUR}}", "Bob", 12.5)
//
// "{{" and "}}" stand for literal braces. Fill points which cannot be
// resolved remain in the builder.
func (b *Builder) AppendFormat(format string, args ...any) *Builder {
	return b.appendResolved(format, resolve.List(args))
}

// AppendFormatMap is like AppendFormat, but looks up non-numeric tags in
// values.
func (b *Builder) AppendFormatMap(format string, values map[string]any, args ...any) *Builder {
	return b.appendResolved(format, resolve.Map(values), resolve.List(args))
}

// AppendFormatFunc is like AppendFormat, but asks fn for non-numeric tags.
func (b *Builder) AppendFormatFunc(format string, fn resolve.Func, args ...any) *Builder {
	return b.appendResolved(format, resolve.FromFunc(fn), resolve.List(args))
}

func (b *Builder) appendResolved(format string, rs ...*resolve.Resolvable) *Builder {
	if b.readonly {
		return b
	}
	chain := resolve.Stack(rs...)
	return b.AppendChunks(chain.Expand(chunk.ParseComposite(format)))
}

// AppendLayout appends a control chunk changing the layout of subsequent
// lines.
func (b *Builder) AppendLayout(l *layout.Layout) *Builder {
	return b.add(chunk.Control(wrap.LayoutTag, l.Compact()))
}

// AppendForeColor appends a control chunk switching the console's
// foreground color. An empty name resets the color.
func (b *Builder) AppendForeColor(name string) *Builder {
	return b.add(chunk.Control(sink.ForeTag, name))
}

// AppendBackColor appends a control chunk switching the console's
// background color. An empty name resets the color.
func (b *Builder) AppendBackColor(name string) *Builder {
	return b.add(chunk.Control(sink.BackTag, name))
}

// AppendResetColors appends control chunks resetting both console colors.
func (b *Builder) AppendResetColors() *Builder {
	return b.add(chunk.Control(sink.ForeTag, ""), chunk.Control(sink.BackTag, ""))
}

// --- Introspection ---------------------------------------------------------

// Len returns the number of chunks.
func (b *Builder) Len() int {
	return len(b.chunks)
}

// IsEmpty is true if b holds no chunks.
func (b *Builder) IsEmpty() bool {
	return len(b.chunks) == 0
}

// Chunks iterates over the chunks of b, as they are at the time of the call.
func (b *Builder) Chunks() iter.Seq[chunk.Chunk] {
	return slices.Values(b.chunks)
}

// Clear removes all chunks, unless b is read-only.
func (b *Builder) Clear() *Builder {
	if !b.readonly {
		b.chunks = nil
	}
	return b
}

// Clone returns a modifiable copy of b.
func (b *Builder) Clone() *Builder {
	return &Builder{chunks: slices.Clone(b.chunks)}
}

// --- Rendering -------------------------------------------------------------

// expand substitutes values from resolvables, the first one being the
// outermost scope. Nested chunk sources are expanded even without
// resolvables.
func (b *Builder) expand(rs ...*resolve.Resolvable) iter.Seq[chunk.Chunk] {
	return resolve.Stack(rs...).Expand(b.Chunks())
}

// String renders b in mode General.
func (b *Builder) String() string {
	return b.Render(chunk.General)
}

// Render renders b in a given mode, with fill points substituted from
// resolvables.
func (b *Builder) Render(mode chunk.Mode, rs ...*resolve.Resolvable) string {
	var sb strings.Builder
	for c := range b.expand(rs...) {
		sb.WriteString(c.Render(mode))
	}
	return sb.String()
}

// Sprint renders b with numeric tags substituted by positional values.
func (b *Builder) Sprint(values ...any) string {
	return b.Render(chunk.General, resolve.List(values))
}

// SprintMap renders b with tags looked up in values, case-insensitively.
func (b *Builder) SprintMap(values map[string]any) string {
	return b.Render(chunk.General, resolve.Map(values))
}

// SprintFunc renders b with values provided by a resolver function.
func (b *Builder) SprintFunc(fn resolve.Func) string {
	return b.Render(chunk.General, resolve.FromFunc(fn))
}

// WriteTo writes b in mode General. It implements io.WriterTo.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	n, err := b.Fprint(w, chunk.General)
	return int64(n), err
}

// Fprint renders b in a given mode and writes it to w.
func (b *Builder) Fprint(w io.Writer, mode chunk.Mode, rs ...*resolve.Resolvable) (int, error) {
	if w == nil {
		return 0, ErrNoSink
	}
	n, err := io.WriteString(w, b.Render(mode, rs...))
	if err != nil {
		return n, fmt.Errorf("filltext: cannot write text: %w", err)
	}
	return n, nil
}

// Resolve returns a new builder with fill points substituted from
// resolvables and nested chunk sources expanded. Unresolvable fill points
// are kept.
func (b *Builder) Resolve(rs ...*resolve.Resolvable) *Builder {
	return NewBuilder().AppendChunks(b.expand(rs...))
}

// Layout flows b into lines of layout l, starting at column 0, and returns
// the text. l is applied on top of layout.Default. Control chunks other
// than layout changes are dropped.
func (b *Builder) Layout(l *layout.Layout, mode chunk.Mode, rs ...*resolve.Resolvable) string {
	return wrap.Flow(b.expand(rs...), l, 0, mode).Text()
}

// Output writes b to a sink. Control chunks are dispatched by the sink.
func (b *Builder) Output(s sink.Sink, rs ...*resolve.Resolvable) error {
	if s == nil {
		return ErrNoSink
	}
	return s.WriteChunks(b.expand(rs...))
}
