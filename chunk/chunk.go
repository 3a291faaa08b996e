package chunk

import (
	"iter"
	"reflect"
)

// Chunk is a fragment of a composite text. It is either literal text (or a
// literal value), a fill point carrying a tag to be resolved later, or a
// control marker for an output sink.
//
// The chunk is immutable: substituting a value returns a new Chunk.
// The zero Chunk is a valid, empty literal.
type Chunk struct {
	tag       string
	fill      bool // true for fill points, including controls
	control   bool
	alignment int
	alignText string // alignment as spelled in the source, if parsed
	format    string
	hasFormat bool
	value     any
	resolved  bool
}

// Source is implemented by values which expand into a sequence of chunks,
// e.g., a builder used as a value of another builder.
type Source interface {
	Chunks() iter.Seq[Chunk]
}

// Text creates a literal chunk.
func Text(s string) Chunk {
	return Chunk{value: s, resolved: true}
}

// Value creates a literal chunk carrying an arbitrary value. It is rendered
// in its default format.
func Value(v any) Chunk {
	return Chunk{value: v, resolved: true}
}

// FillPoint creates an unresolved fill point. An empty format string means
// "no format".
func FillPoint(tag string, alignment int, format string) Chunk {
	return Chunk{
		tag:       tag,
		fill:      true,
		alignment: alignment,
		format:    format,
		hasFormat: format != "",
	}
}

// Control creates an unresolved control chunk. tag is given without the
// leading '!'.
func Control(tag string, format string) Chunk {
	c := FillPoint(tag, 0, format)
	c.control = true
	return c
}

// Tag returns the tag of a fill point, or "" for literals.
func (c Chunk) Tag() string {
	return c.tag
}

// Alignment returns the field width of a fill point. Positive values align
// right, negative values align left.
func (c Chunk) Alignment() int {
	return c.alignment
}

// Format returns the format part of a fill point and whether one was given.
func (c Chunk) Format() (string, bool) {
	return c.format, c.hasFormat
}

// Value returns the chunk's value. For unresolved fill points the value is
// not present.
func (c Chunk) Value() (any, bool) {
	if !c.resolved {
		return nil, false
	}
	return c.value, true
}

// IsFillPoint is true for chunks carrying a tag.
func (c Chunk) IsFillPoint() bool {
	return c.fill
}

// IsControl is true for control chunks.
func (c Chunk) IsControl() bool {
	return c.control
}

// IsResolved is true for literals and for fill points with a substituted value.
func (c Chunk) IsResolved() bool {
	return c.resolved || !c.fill
}

// IsEmpty is true for literal chunks which will render as an empty string.
func (c Chunk) IsEmpty() bool {
	if c.fill {
		return false
	}
	if c.value == nil {
		return true
	}
	s, ok := c.value.(string)
	return ok && s == ""
}

// WithValue returns a resolved copy of c, carrying v.
func (c Chunk) WithValue(v any) Chunk {
	c.value = v
	c.resolved = true
	return c
}

// Unresolved returns a copy of c with its value removed. Literals are
// returned unchanged.
func (c Chunk) Unresolved() Chunk {
	if !c.fill {
		return c
	}
	c.value = nil
	c.resolved = false
	return c
}

// Equal compares two chunks structurally.
func (c Chunk) Equal(other Chunk) bool {
	if c.tag != other.tag || c.fill != other.fill || c.control != other.control ||
		c.alignment != other.alignment || c.format != other.format ||
		c.hasFormat != other.hasFormat || c.IsResolved() != other.IsResolved() {
		return false
	}
	if !c.IsResolved() {
		return true
	}
	return equalValues(c.value, other.value)
}

func equalValues(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
