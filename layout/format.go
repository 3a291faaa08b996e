package layout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrSyntax is returned for malformed layout strings.
var ErrSyntax = errors.New("layout: syntax error")

// Parse reads a layout from its compact notation, a ';'-separated list of
// parameters, each introduced by a single-letter prefix:
//
//	w<width>  i<indent>  r<right margin>  I<indent char>  f<first line indent>
//	l<tab|tab|…>  t<tab size>  T<tab char>  a<alignment>  s<split length>
//	h<hyphenate>  H<hyphen char>  p<wrap mode>
//
// for example "w60;i2;aJustify;htrue". Every prefix is optional. An unknown
// prefix or a malformed value invalidates the whole string. The empty string
// parses to the empty layout.
func Parse(s string) (*Layout, error) {
	if strings.TrimSpace(s) == "" {
		return Empty, nil
	}
	var opts []Option
	for _, token := range strings.Split(s, ";") {
		if token == "" {
			return nil, fmt.Errorf("%w: empty parameter in %q", ErrSyntax, s)
		}
		opt, err := parseToken(token[0], token[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: parameter %q: %v", ErrSyntax, token, err)
		}
		opts = append(opts, opt)
	}
	return New(opts...), nil
}

// TryParse is like Parse, but reports failure with a boolean.
func TryParse(s string) (*Layout, bool) {
	l, err := Parse(s)
	if err != nil {
		tracer().Debugf("not a layout: %v", err)
		return nil, false
	}
	return l, true
}

// MustParse is like Parse, but panics on malformed input.
func MustParse(s string) *Layout {
	l, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return l
}

func parseToken(prefix byte, value string) (Option, error) {
	switch prefix {
	case 'w', 'i', 'r', 'f', 't', 's':
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, err
		}
		return map[byte]func(int) Option{
			'w': Width, 'i': IndentSize, 'r': RightMarginSize,
			'f': FirstLineIndentSize, 't': TabSize, 's': SplitLength,
		}[prefix](n), nil
	case 'I', 'T', 'H':
		if utf8.RuneCountInString(value) != 1 {
			return nil, errors.New("expected a single character")
		}
		r, _ := utf8.DecodeRuneInString(value)
		return map[byte]func(rune) Option{
			'I': IndentChar, 'T': TabChar, 'H': HyphenChar,
		}[prefix](r), nil
	case 'l':
		if value == "" {
			return TabStops(), nil
		}
		var stops []int
		for _, t := range strings.Split(value, "|") {
			n, err := strconv.Atoi(t)
			if err != nil {
				return nil, err
			}
			stops = append(stops, n)
		}
		return TabStops(stops...), nil
	case 'a':
		if a, ok := ParseAlignment(value); ok {
			return Align(a), nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= int(None) && n <= int(Justify) {
			return Align(Alignment(n)), nil
		}
		return nil, errors.New("unknown alignment")
	case 'h':
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, err
		}
		return Hyphenate(b), nil
	case 'p':
		if m, ok := ParseWrapMode(value); ok {
			return Wrap(m), nil
		}
		if n, err := strconv.Atoi(value); err == nil && n >= int(NewLine) && n <= int(PadToWrap) {
			return Wrap(WrapMode(n)), nil
		}
		return nil, errors.New("unknown wrap mode")
	}
	return nil, errors.New("unknown prefix")
}

// Compact returns the compact notation understood by Parse.
func (l *Layout) Compact() string {
	if l.IsEmpty() {
		return ""
	}
	var parts []string
	add := func(f Field, prefix byte, value string) {
		if l.has(f) {
			parts = append(parts, string(prefix)+value)
		}
	}
	add(FieldWidth, 'w', strconv.Itoa(l.width))
	add(FieldIndentSize, 'i', strconv.Itoa(l.indentSize))
	add(FieldRightMarginSize, 'r', strconv.Itoa(l.rightMarginSize))
	add(FieldIndentChar, 'I', string(l.indentChar))
	add(FieldFirstLineIndentSize, 'f', strconv.Itoa(l.firstLineIndentSize))
	add(FieldTabStops, 'l', joinInts(l.tabStops, "|"))
	add(FieldTabSize, 't', strconv.Itoa(l.tabSize))
	add(FieldTabChar, 'T', string(l.tabChar))
	add(FieldAlignment, 'a', l.alignment.String())
	add(FieldSplitLength, 's', strconv.Itoa(l.splitLength))
	add(FieldHyphenate, 'h', strconv.FormatBool(l.hyphenate))
	add(FieldHyphenChar, 'H', string(l.hyphenChar))
	add(FieldWrapMode, 'p', l.wrapMode.String())
	return strings.Join(parts, ";")
}

func joinInts(n []int, sep string) string {
	s := make([]string, len(n))
	for i, x := range n {
		s[i] = strconv.Itoa(x)
	}
	return strings.Join(s, sep)
}

// String lists the assigned parameters in human readable form.
func (l *Layout) String() string {
	if l.IsEmpty() {
		return "Layout{}"
	}
	var parts []string
	add := func(f Field, name string, value any) {
		if l.has(f) {
			parts = append(parts, fmt.Sprintf("%s: %v", name, value))
		}
	}
	add(FieldWidth, "Width", l.width)
	add(FieldIndentSize, "Indent Size", l.indentSize)
	add(FieldRightMarginSize, "Right Margin Size", l.rightMarginSize)
	add(FieldIndentChar, "Indent Char", strconv.QuoteRune(l.indentChar))
	add(FieldFirstLineIndentSize, "First Line Indent Size", l.firstLineIndentSize)
	add(FieldTabStops, "Tab Stops", l.tabStops)
	add(FieldTabSize, "Tab Size", l.tabSize)
	add(FieldTabChar, "Tab Char", strconv.QuoteRune(l.tabChar))
	add(FieldAlignment, "Alignment", l.alignment)
	add(FieldSplitLength, "Split Length", l.splitLength)
	add(FieldHyphenate, "Hyphenate", l.hyphenate)
	add(FieldHyphenChar, "Hyphen Char", strconv.QuoteRune(l.hyphenChar))
	add(FieldWrapMode, "Wrap Mode", l.wrapMode)
	return "Layout{" + strings.Join(parts, ", ") + "}"
}

// Describe renders a layout in one of several formats:
// "f" for the compact notation, "l" for a ruler diagram, anything else for
// the parameter list.
func (l *Layout) Describe(code string) string {
	switch code {
	case "f":
		return l.Compact()
	case "l":
		return l.Ruler()
	}
	return l.String()
}

// Ruler draws a diagram of a layout's columns, for diagnostics. For
// "w20;i2;l3|11" it looks like this:
//
//	   ....+....1....+....2
//	F  [------------------]
//	L  __[----------------]
//	T  ...^.......^........
//
// Row F shows the span of a paragraph's first line, row L the span of
// the following lines, row T the tab stops. Indentation shows as '_', the
// right margin as '#'. Unbounded layouts are described by String instead.
func (l *Layout) Ruler() string {
	full := Default.Apply(l)
	if !full.IsBounded() {
		return l.String()
	}
	w := full.width
	var b strings.Builder
	b.WriteString("   ")
	for col := 1; col <= w; col++ {
		switch {
		case col%10 == 0:
			b.WriteByte(byte('0' + (col/10)%10))
		case col%5 == 0:
			b.WriteByte('+')
		default:
			b.WriteByte('.')
		}
	}
	b.WriteByte('\n')
	span := func(label string, start int) {
		end := w - full.rightMarginSize
		b.WriteString(label)
		for col := 0; col < w; col++ {
			switch {
			case col < start:
				b.WriteByte('_')
			case col >= end:
				b.WriteByte('#')
			case col == start:
				b.WriteByte('[')
			case col == end-1:
				b.WriteByte(']')
			default:
				b.WriteByte('-')
			}
		}
		b.WriteByte('\n')
	}
	span("F  ", full.firstLineIndentSize)
	span("L  ", full.indentSize)
	b.WriteString("T  ")
	stops := full.tabStops
	for col := 0; col < w; col++ {
		if len(stops) > 0 && stops[0] == col {
			b.WriteByte('^')
			stops = stops[1:]
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// MarshalText encodes a layout in compact notation.
func (l *Layout) MarshalText() ([]byte, error) {
	return []byte(l.Compact()), nil
}

// UnmarshalText decodes a layout from compact notation. It is meant for
// decoders of configuration files and overwrites the receiver, which must
// not be shared yet.
func (l *Layout) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*l = *parsed
	return nil
}
