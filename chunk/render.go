package chunk

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/npillmayer/filltext/cells"
)

// Mode selects how chunks are rendered to text.
type Mode byte

// Render modes. Their names are the single-letter format codes clients use.
const (
	General  Mode = 'G' // unresolved fill points as tags, controls suppressed
	Force    Mode = 'F' // all fill points as tags, values never substituted
	Suppress Mode = 'S' // unresolved fill points as "", controls suppressed
)

// ParseMode maps a format code to a render mode. Unrecognized codes select
// General.
func ParseMode(code string) Mode {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "F":
		return Force
	case "S":
		return Suppress
	}
	return General
}

func (m Mode) String() string {
	switch m {
	case Force, Suppress:
		return string(rune(m))
	}
	return "G"
}

// Formattable is implemented by values which handle format strings
// themselves. They should return ErrFormat (or any other error) for formats
// they do not understand.
type Formattable interface {
	FormatValue(format string) (string, error)
}

// String renders c in General mode.
func (c Chunk) String() string {
	return c.Render(General)
}

// Render renders a chunk in a given mode.
func (c Chunk) Render(mode Mode) string {
	if !c.fill {
		return FormatValue(c.value, "")
	}
	if mode == Force {
		return c.Syntax()
	}
	if c.control {
		return ""
	}
	if !c.resolved {
		if mode == Suppress {
			return ""
		}
		return c.Syntax()
	}
	return Align(FormatValue(c.value, c.format), c.alignment)
}

// Syntax returns the bracket notation of a fill point, e.g. "{!tag,-5:fmt}".
// Parsed fill points keep the alignment as it was spelled. For literals it
// returns the literal text.
func (c Chunk) Syntax() string {
	if !c.fill {
		return FormatValue(c.value, "")
	}
	var b strings.Builder
	b.WriteByte('{')
	if c.control {
		b.WriteByte('!')
	}
	b.WriteString(c.tag)
	if c.alignText != "" {
		b.WriteByte(',')
		b.WriteString(c.alignText)
	} else if c.alignment != 0 {
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(c.alignment))
	}
	if c.hasFormat {
		b.WriteByte(':')
		b.WriteString(c.format)
	}
	b.WriteByte('}')
	return b.String()
}

// Align pads s with spaces to the field width given by alignment.
// Positive alignments pad on the left, negative ones on the right.
func Align(s string, alignment int) string {
	if alignment == 0 {
		return s
	}
	w := cells.Width(s)
	if alignment > 0 && w < alignment {
		return cells.Pad(' ', alignment-w) + s
	}
	if alignment < 0 && w < -alignment {
		return s + cells.Pad(' ', -alignment-w)
	}
	return s
}

// FormatValue renders a value as text, applying an optional format string.
//
// Formattable values get the first chance. time.Time values use format as a
// time layout. Any other format is interpreted as a fmt verb, with the
// leading '%' being optional ("x", "%05d", "8.2f"). If formatting fails, the
// value is rendered in its default form.
func FormatValue(v any, format string) string {
	if v == nil {
		return ""
	}
	if format == "" {
		return defaultFormat(v)
	}
	s, err := formatWith(v, format)
	if err != nil {
		tracer().Debugf("format %q not applicable to %T, using default: %v", format, v, err)
		return defaultFormat(v)
	}
	return s
}

func defaultFormat(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case Formattable:
		if s, err := x.FormatValue(""); err == nil {
			return s
		}
	}
	return fmt.Sprint(v)
}

func formatWith(v any, format string) (string, error) {
	switch x := v.(type) {
	case Formattable:
		return x.FormatValue(format)
	case time.Time:
		return x.Format(format), nil
	}
	verb := format
	if !strings.HasPrefix(verb, "%") {
		verb = "%" + verb
	}
	s := fmt.Sprintf(verb, v)
	if strings.Contains(s, "%!") {
		return "", fmt.Errorf("%w: verb %q for %T", ErrFormat, verb, v)
	}
	return s, nil
}
