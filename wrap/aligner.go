package wrap

import (
	"iter"
	"strings"

	"github.com/npillmayer/filltext/cells"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
)

// Aligner turns finished lines into chunks, tracking the output column.
type Aligner struct {
	Position int // current output column
}

// Align renders a line: indentation, the line's items with justification
// spaces inserted, and the line end demanded by the layout's wrap mode.
// Control items are passed through as chunks at their position within the
// text.
//
// A line continuing a partially written line gets no indentation, whatever
// its alignment.
func (a *Aligner) Align(line *Line) []chunk.Chunk {
	var out []chunk.Chunk
	var text strings.Builder
	flush := func() {
		if text.Len() > 0 {
			out = append(out, chunk.Text(text.String()))
			text.Reset()
		}
	}
	l := line.Layout
	if pad := a.indent(line) - a.Position; pad > 0 && !line.partial {
		text.WriteString(cells.Pad(l.IndentChar(), pad))
		a.Position += pad
	}
	var gaps []int
	if line.Alignment == layout.Justify {
		gaps = Spread(line.End-line.Start-line.Length, line.Gaps())
	}
	gap := 0
	for _, it := range line.Items {
		switch it.Kind {
		case Control:
			flush()
			out = append(out, it.Control)
			continue
		case Space:
			if gap < len(gaps) {
				text.WriteString(cells.Pad(' ', gaps[gap]))
				a.Position += gaps[gap]
				gap++
			}
		}
		text.WriteString(it.Text)
		a.Position += it.Width
	}
	if line.Terminated {
		switch l.WrapMode() {
		case layout.NewLine:
			text.WriteByte('\n')
		case layout.NewLineOnShort:
			if a.Position < l.Width() {
				text.WriteByte('\n')
			}
		case layout.PadToWrap:
			text.WriteString(cells.Pad(l.IndentChar(), l.Width()-a.Position))
		}
		a.Position = 0
	}
	flush()
	return out
}

func (a *Aligner) indent(line *Line) int {
	switch line.Alignment {
	case layout.Right:
		return line.End - line.Length
	case layout.Centre:
		return line.Start + (line.End-line.Start-line.Length)/2
	}
	return line.Start
}

// Spread distributes extra cells onto n gaps. The parts sum up to extra
// exactly; if extra is not a multiple of n, later gaps get the larger parts.
func Spread(extra, n int) []int {
	if n <= 0 {
		return nil
	}
	parts := make([]int, n)
	if extra <= 0 {
		return parts
	}
	for i := range parts {
		parts[i] = (i+1)*extra/n - i*extra/n
	}
	return parts
}

// --- Flow ------------------------------------------------------------------

// Result is the outcome of flowing chunks into lines.
type Result struct {
	Chunks   []chunk.Chunk  // text and control chunks, ready for output
	Position int            // output column after the last chunk
	Layout   *layout.Layout // layout in effect after the last chunk
}

// Text concatenates the text chunks of a result.
func (r Result) Text() string {
	var b strings.Builder
	for _, c := range r.Chunks {
		b.WriteString(c.Render(chunk.Suppress))
	}
	return b.String()
}

// Flow renders chunks in a mode and flows them into lines of layout l,
// starting at output column position. l is applied on top of
// layout.Default.
func Flow(chunks iter.Seq[chunk.Chunk], l *layout.Layout, position int, mode chunk.Mode) Result {
	tokens := Tokenize(chunks, mode)
	breaker := NewBreaker(l, position)
	aligner := &Aligner{Position: max(position, 0)}
	var out []chunk.Chunk
	for _, line := range breaker.Lines(tokens) {
		out = append(out, aligner.Align(line)...)
	}
	return Result{
		Chunks:   out,
		Position: aligner.Position,
		Layout:   breaker.Layout(),
	}
}
