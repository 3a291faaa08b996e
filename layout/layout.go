package layout

import (
	"slices"
)

// MaxBoundedWidth is the largest width for which alignment makes sense.
// Wider layouts are considered unbounded.
const MaxBoundedWidth = 8192

// Unbounded is a width for layouts which never wrap.
const Unbounded = 1<<31 - 1

// Field identifies a single layout parameter.
type Field uint16

// Layout parameters
const (
	FieldWidth Field = 1 << iota
	FieldIndentSize
	FieldRightMarginSize
	FieldIndentChar
	FieldFirstLineIndentSize
	FieldTabStops
	FieldTabSize
	FieldTabChar
	FieldAlignment
	FieldSplitLength
	FieldHyphenate
	FieldHyphenChar
	FieldWrapMode

	allFields = FieldWrapMode<<1 - 1
)

// Layout is a set of parameters controlling how text is flowed into lines.
//
// Every parameter is optional. A layout which has all of its parameters
// assigned is called full; one without any assigned parameter is empty.
// Partial layouts are combined with Apply, which lets assigned parameters
// override the ones of the receiver.
//
// Layouts are immutable. Parameters are normalized on construction, so that
// a layout's indents and margins always fit into its width.
type Layout struct {
	set                 Field
	width               int
	indentSize          int
	rightMarginSize     int
	indentChar          rune
	firstLineIndentSize int
	tabStops            []int
	tabSize             int
	tabChar             rune
	alignment           Alignment
	splitLength         int
	hyphenate           bool
	hyphenChar          rune
	wrapMode            WrapMode
}

// Option assigns a layout parameter.
type Option func(*Layout)

// Empty is the layout without any parameters.
var Empty = &Layout{}

// Default is a full layout with sensible defaults. Layouts used for output
// are always applied on top of Default.
var Default = New(
	Width(120),
	IndentSize(0),
	RightMarginSize(0),
	IndentChar(' '),
	FirstLineIndentSize(0),
	TabStops(),
	TabSize(3),
	TabChar(' '),
	Align(Left),
	SplitLength(0),
	Hyphenate(false),
	HyphenChar('-'),
	Wrap(NewLine),
)

// New creates a layout from options. Parameters not given remain unassigned.
func New(opts ...Option) *Layout {
	l := &Layout{}
	for _, opt := range opts {
		opt(l)
	}
	l.normalize()
	return l
}

// Width sets the total line width in cells, including indent and margin.
func Width(w int) Option {
	return func(l *Layout) { l.width = w; l.set |= FieldWidth }
}

// IndentSize sets the indent of all but the first line of a paragraph.
func IndentSize(n int) Option {
	return func(l *Layout) { l.indentSize = n; l.set |= FieldIndentSize }
}

// RightMarginSize sets the number of cells kept free at the end of a line.
func RightMarginSize(n int) Option {
	return func(l *Layout) { l.rightMarginSize = n; l.set |= FieldRightMarginSize }
}

// IndentChar sets the character used for indentation and padding.
func IndentChar(r rune) Option {
	return func(l *Layout) { l.indentChar = r; l.set |= FieldIndentChar }
}

// FirstLineIndentSize sets the indent of the first line of a paragraph.
func FirstLineIndentSize(n int) Option {
	return func(l *Layout) { l.firstLineIndentSize = n; l.set |= FieldFirstLineIndentSize }
}

// TabStops sets the tab stop columns. No arguments assign an empty list.
func TabStops(stops ...int) Option {
	return func(l *Layout) { l.tabStops = slices.Clone(stops); l.set |= FieldTabStops }
}

// TabSize sets the number of cells a tab expands to if no tab stop applies.
func TabSize(n int) Option {
	return func(l *Layout) { l.tabSize = n; l.set |= FieldTabSize }
}

// TabChar sets the character tabs are expanded with.
func TabChar(r rune) Option {
	return func(l *Layout) { l.tabChar = r; l.set |= FieldTabChar }
}

// Align sets the alignment.
func Align(a Alignment) Option {
	return func(l *Layout) { l.alignment = a; l.set |= FieldAlignment }
}

// SplitLength sets the minimum length of words which may be split at the
// end of a line. 0 disables splitting.
func SplitLength(n int) Option {
	return func(l *Layout) { l.splitLength = n; l.set |= FieldSplitLength }
}

// Hyphenate sets whether split words get a hyphen character.
func Hyphenate(b bool) Option {
	return func(l *Layout) { l.hyphenate = b; l.set |= FieldHyphenate }
}

// HyphenChar sets the hyphen character.
func HyphenChar(r rune) Option {
	return func(l *Layout) { l.hyphenChar = r; l.set |= FieldHyphenChar }
}

// Wrap sets the wrap mode.
func Wrap(m WrapMode) Option {
	return func(l *Layout) { l.wrapMode = m; l.set |= FieldWrapMode }
}

// --- Normalization ---------------------------------------------------------

func (l *Layout) normalize() {
	if l.has(FieldWidth) && l.width < 1 {
		l.width = 1
	}
	l.indentSize = max(l.indentSize, 0)
	l.firstLineIndentSize = max(l.firstLineIndentSize, 0)
	l.rightMarginSize = max(l.rightMarginSize, 0)
	l.splitLength = max(l.splitLength, 0)
	if l.has(FieldTabSize) && l.tabSize < 1 {
		l.tabSize = 1
	}
	if l.has(FieldIndentChar) && l.indentChar == 0 {
		l.indentChar = ' '
	}
	if l.has(FieldTabChar) && l.tabChar == 0 {
		l.tabChar = ' '
	}
	if l.has(FieldHyphenChar) && l.hyphenChar == 0 {
		l.hyphenChar = '-'
	}
	if l.has(FieldWidth) {
		w := l.width
		l.indentSize = min(l.indentSize, w-1)
		l.firstLineIndentSize = min(l.firstLineIndentSize, w-1)
		widest := max(l.indentSize, l.firstLineIndentSize)
		l.rightMarginSize = min(l.rightMarginSize, w-1-widest)
		l.tabSize = min(l.tabSize, w)
		if w > MaxBoundedWidth && l.alignment > Left {
			l.alignment = Left
		}
	}
	if l.has(FieldAlignment) && l.alignment > Left {
		if l.has(FieldTabStops) {
			l.tabStops = nil
		}
		return
	}
	if len(l.tabStops) > 0 {
		stops := make([]int, 0, len(l.tabStops))
		for _, t := range l.tabStops {
			if t > 0 && (!l.has(FieldWidth) || t < l.width) {
				stops = append(stops, t)
			}
		}
		slices.Sort(stops)
		l.tabStops = slices.Compact(stops)
	}
}

// --- Merging ---------------------------------------------------------------

// Apply returns a layout with the assigned parameters of other overriding
// those of l. If other does not change anything, l itself is returned.
func (l *Layout) Apply(other *Layout) *Layout {
	if l == nil {
		l = Empty
	}
	if other == nil || other.set == 0 {
		return l
	}
	merged := *l
	changed := false
	assign := func(f Field, differs bool, set func()) {
		if !other.has(f) || (l.has(f) && !differs) {
			return
		}
		set()
		merged.set |= f
		changed = true
	}
	assign(FieldWidth, l.width != other.width, func() { merged.width = other.width })
	assign(FieldIndentSize, l.indentSize != other.indentSize, func() { merged.indentSize = other.indentSize })
	assign(FieldRightMarginSize, l.rightMarginSize != other.rightMarginSize, func() { merged.rightMarginSize = other.rightMarginSize })
	assign(FieldIndentChar, l.indentChar != other.indentChar, func() { merged.indentChar = other.indentChar })
	assign(FieldFirstLineIndentSize, l.firstLineIndentSize != other.firstLineIndentSize, func() { merged.firstLineIndentSize = other.firstLineIndentSize })
	assign(FieldTabStops, !slices.Equal(l.tabStops, other.tabStops), func() { merged.tabStops = slices.Clone(other.tabStops) })
	assign(FieldTabSize, l.tabSize != other.tabSize, func() { merged.tabSize = other.tabSize })
	assign(FieldTabChar, l.tabChar != other.tabChar, func() { merged.tabChar = other.tabChar })
	assign(FieldAlignment, l.alignment != other.alignment, func() { merged.alignment = other.alignment })
	assign(FieldSplitLength, l.splitLength != other.splitLength, func() { merged.splitLength = other.splitLength })
	assign(FieldHyphenate, l.hyphenate != other.hyphenate, func() { merged.hyphenate = other.hyphenate })
	assign(FieldHyphenChar, l.hyphenChar != other.hyphenChar, func() { merged.hyphenChar = other.hyphenChar })
	assign(FieldWrapMode, l.wrapMode != other.wrapMode, func() { merged.wrapMode = other.wrapMode })
	if !changed {
		return l
	}
	merged.tabStops = slices.Clone(merged.tabStops)
	merged.normalize()
	return &merged
}

// With is a shortcut for l.Apply(New(opts...)).
func (l *Layout) With(opts ...Option) *Layout {
	return l.Apply(New(opts...))
}

// Equal compares the assigned parameters of two layouts.
func (l *Layout) Equal(other *Layout) bool {
	if l == other {
		return true
	}
	if l == nil || other == nil {
		return false
	}
	return l.set == other.set &&
		l.width == other.width &&
		l.indentSize == other.indentSize &&
		l.rightMarginSize == other.rightMarginSize &&
		l.indentChar == other.indentChar &&
		l.firstLineIndentSize == other.firstLineIndentSize &&
		slices.Equal(l.tabStops, other.tabStops) &&
		l.tabSize == other.tabSize &&
		l.tabChar == other.tabChar &&
		l.alignment == other.alignment &&
		l.splitLength == other.splitLength &&
		l.hyphenate == other.hyphenate &&
		l.hyphenChar == other.hyphenChar &&
		l.wrapMode == other.wrapMode
}

// --- Accessors -------------------------------------------------------------

func (l *Layout) has(f Field) bool {
	return l.set&f != 0
}

// Has reports whether a parameter is assigned.
func (l *Layout) Has(f Field) bool {
	return l != nil && l.has(f)
}

// IsFull is true if all parameters are assigned.
func (l *Layout) IsFull() bool {
	return l != nil && l.set == allFields
}

// IsEmpty is true if no parameter is assigned.
func (l *Layout) IsEmpty() bool {
	return l == nil || l.set == 0
}

// Width returns the line width. Unassigned parameters return zero values.
func (l *Layout) Width() int { return l.width }

// IndentSize returns the indent of continuation lines.
func (l *Layout) IndentSize() int { return l.indentSize }

// RightMarginSize returns the right margin.
func (l *Layout) RightMarginSize() int { return l.rightMarginSize }

// IndentChar returns the indentation character.
func (l *Layout) IndentChar() rune { return l.indentChar }

// FirstLineIndentSize returns the indent of a paragraph's first line.
func (l *Layout) FirstLineIndentSize() int { return l.firstLineIndentSize }

// TabStops returns a copy of the tab stop columns.
func (l *Layout) TabStops() []int { return slices.Clone(l.tabStops) }

// TabSize returns the default tab size.
func (l *Layout) TabSize() int { return l.tabSize }

// TabChar returns the tab expansion character.
func (l *Layout) TabChar() rune { return l.tabChar }

// Alignment returns the alignment.
func (l *Layout) Alignment() Alignment { return l.alignment }

// SplitLength returns the minimum length of splittable words.
func (l *Layout) SplitLength() int { return l.splitLength }

// SplitWords is true if words may be split at the end of a line.
func (l *Layout) SplitWords() bool { return l.splitLength > 0 }

// Hyphenate returns whether split words get a hyphen.
func (l *Layout) Hyphenate() bool { return l.hyphenate }

// HyphenChar returns the hyphen character.
func (l *Layout) HyphenChar() rune { return l.hyphenChar }

// WrapMode returns the wrap mode.
func (l *Layout) WrapMode() WrapMode { return l.wrapMode }

// IsBounded is true for layouts with a width small enough for alignment.
func (l *Layout) IsBounded() bool {
	return l.has(FieldWidth) && l.width <= MaxBoundedWidth
}
