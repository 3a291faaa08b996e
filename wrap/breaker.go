package wrap

import (
	"strings"

	"github.com/npillmayer/filltext/cells"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
)

// LayoutTag is the tag of control chunks which change the layout, e.g.
// "{!layout:w60;aRight}". The tag is matched case-insensitively.
const LayoutTag = "layout"

// Item is a token placed on a line, together with its width in cells.
type Item struct {
	Token
	Width int
}

// Line is a single output line, as produced by a Breaker.
//
// Start and End are the columns available for text, derived from the
// layout's indentation and right margin. Length is the sum of the widths of
// all items.
type Line struct {
	Layout     *layout.Layout
	Alignment  layout.Alignment
	Start, End int
	FirstLine  bool // first line of a paragraph
	Items      []Item
	Length     int
	Terminated bool // a line end will be emitted
	partial    bool // continues a partially written output line
	forced     bool // ends in a word split without alternative
}

func (l *Line) hasText() bool {
	for _, it := range l.Items {
		if it.Kind != Control {
			return true
		}
	}
	return false
}

// fresh is true for a line without text which does not continue a
// partially written output line.
func (l *Line) fresh() bool {
	return !l.partial && !l.hasText()
}

func (l *Line) add(t Token, w int) {
	l.Items = append(l.Items, Item{Token: t, Width: w})
	l.Length += w
}

// Room returns the number of cells still free on the line.
func (l *Line) Room() int {
	return l.End - l.Start - l.Length
}

// Gaps counts the whitespace items between words.
func (l *Line) Gaps() int {
	n := 0
	for _, it := range l.Items {
		if it.Kind == Space {
			n++
		}
	}
	return n
}

// Text returns the text of the line, without indentation or controls.
func (l *Line) Text() string {
	var b strings.Builder
	for _, it := range l.Items {
		b.WriteString(it.Text)
	}
	return b.String()
}

// Finish completes a line. Trailing whitespace is removed, unless the
// alignment is None. Justified lines fall back to left alignment if they end
// a paragraph, are not terminated, have no gaps to stretch, or end in a word
// split which had no alternative.
func (l *Line) Finish(terminated, paragraphEnd bool) {
	l.Terminated = terminated
	if l.Alignment != layout.None {
		l.stripTrailing()
	}
	if l.Alignment == layout.Justify &&
		(paragraphEnd || !terminated || l.forced || l.Gaps() == 0) {
		l.Alignment = layout.Left
	}
}

// stripTrailing removes whitespace after the last word. Controls stay in
// place.
func (l *Line) stripTrailing() {
	last := -1
	for i, it := range l.Items {
		if it.Kind == Word {
			last = i
		}
	}
	items := l.Items[:last+1]
	for _, it := range l.Items[last+1:] {
		if it.Kind == Control {
			items = append(items, it)
		} else {
			l.Length -= it.Width
		}
	}
	l.Items = items
}

// --- Breaker ---------------------------------------------------------------

// Breaker distributes tokens onto lines, greedily: every line takes as many
// tokens as fit. Words which do not fit are moved to the next line or, if
// the layout allows it, split.
type Breaker struct {
	layout   *layout.Layout // active, always full
	pending  *layout.Layout // layout change for the next line
	position int            // column of the first line
	para     bool           // next line starts a paragraph
	lines    []*Line
	line     *Line
}

// NewBreaker creates a breaker for a layout. position is the output column
// at which the first line starts; a non-zero position continues a partially
// written line.
func NewBreaker(l *layout.Layout, position int) *Breaker {
	return &Breaker{
		layout:   layout.Default.Apply(l),
		position: max(position, 0),
		para:     position <= 0,
	}
}

// Layout returns the layout in effect after the tokens seen so far,
// including changes queued for the next line.
func (b *Breaker) Layout() *layout.Layout {
	return b.layout.Apply(b.pending)
}

// Lines breaks tokens into lines. The last line is not terminated, unless the
// tokens end in a line break.
func (b *Breaker) Lines(tokens []Token) []*Line {
	b.lines = nil
	b.newLine()
	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case Control:
			if strings.EqualFold(t.Control.Tag(), LayoutTag) {
				b.changeLayout(t.Control)
				continue
			}
			b.line.add(t, 0)
		case Break:
			b.endLine(true, true)
			b.para = true
			b.newLine()
		case Space:
			if b.line.fresh() && b.line.Alignment != layout.None {
				continue
			}
			w := max(cells.Width(t.Text), 1)
			if w > b.line.Room() {
				b.wrap()
				continue
			}
			b.line.add(t, w)
		case Tab:
			if !b.tab() {
				b.wrap()
				if !b.tab() {
					tracer().Debugf("tab dropped, no room on empty line")
				}
			}
		case Word:
			b.word(t.Text)
		}
	}
	if len(b.line.Items) > 0 {
		b.endLine(false, true)
	}
	tracer().Debugf("broke %d tokens into %d lines", len(tokens), len(b.lines))
	return b.lines
}

func (b *Breaker) newLine() {
	if b.pending != nil {
		b.layout = b.layout.Apply(b.pending)
		b.pending = nil
	}
	b.line = &Line{FirstLine: b.para}
	b.para = false
	b.setup()
}

// setup derives a line's geometry from the active layout.
func (b *Breaker) setup() {
	l := b.layout
	b.line.Layout = l
	b.line.Alignment = l.Alignment()
	b.line.End = l.Width() - l.RightMarginSize()
	b.line.partial = b.position > 0
	switch {
	case b.position > 0:
		b.line.Start = b.position
	case b.line.FirstLine:
		b.line.Start = l.FirstLineIndentSize()
	default:
		b.line.Start = l.IndentSize()
	}
}

func (b *Breaker) endLine(terminated, paragraphEnd bool) {
	b.line.Finish(terminated, paragraphEnd)
	b.lines = append(b.lines, b.line)
	b.position = 0
}

// wrap ends the current line at a natural break and starts a new one.
func (b *Breaker) wrap() {
	b.endLine(true, false)
	b.newLine()
}

func (b *Breaker) changeLayout(c chunk.Chunk) {
	var change *layout.Layout
	if v, ok := c.Value(); ok {
		change, _ = v.(*layout.Layout)
	}
	if change == nil {
		format, _ := c.Format()
		l, ok := layout.TryParse(format)
		if !ok {
			tracer().Errorf("ignoring malformed layout control %s", c.Syntax())
			return
		}
		change = l
	}
	if !b.line.hasText() {
		b.layout = b.layout.Apply(b.pending).Apply(change)
		b.pending = nil
		b.setup()
		return
	}
	b.pending = b.pending.Apply(change)
}

// tab places a tab on the current line. It expands to the next tab stop
// or, without one, to the layout's tab size. It reports false if the
// expansion does not fit. On an empty line the expansion is shortened
// instead.
func (b *Breaker) tab() bool {
	l, line := b.layout, b.line
	col := line.Start + line.Length
	n := l.TabSize()
	for _, stop := range l.TabStops() {
		if stop > col {
			n = stop - col
			break
		}
	}
	if n > line.Room() {
		if !line.fresh() {
			return false
		}
		n = line.Room()
	}
	if n <= 0 {
		return false
	}
	line.add(Token{Kind: Tab, Text: cells.Pad(l.TabChar(), n)}, n)
	return true
}

// word places a word on the current line, splitting or moving it to the
// next line if it does not fit.
func (b *Breaker) word(text string) {
	for text != "" {
		line := b.line
		w := cells.Width(text)
		room := line.Room()
		if w <= room {
			line.add(Token{Kind: Word, Text: text}, w)
			return
		}
		empty := line.fresh()
		if head, tail, ok := b.split(text, w, room, empty); ok {
			line.add(Token{Kind: Word, Text: head}, cells.Width(head))
			line.forced = empty
			b.wrap()
			text = tail
			continue
		}
		b.wrap()
	}
}

// split cuts a word which does not fit into room. Words may be split if
// the layout's split length allows it, or if the line is empty, as there is
// no better alternative then.
func (b *Breaker) split(text string, w, room int, empty bool) (head, tail string, ok bool) {
	l := b.layout
	if !empty && (!l.SplitWords() || w < l.SplitLength()) {
		return "", text, false
	}
	hyphen := ""
	if l.Hyphenate() {
		hyphen = string(l.HyphenChar())
	}
	n := room - cells.Width(hyphen)
	if n < 1 {
		if !empty {
			return "", text, false
		}
		n, hyphen = room, ""
	}
	head, tail = cells.Split(text, n)
	if tail == "" {
		hyphen = ""
	}
	return head + hyphen, tail, true
}
