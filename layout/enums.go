package layout

import (
	"fmt"
	"strings"
)

// Alignment controls the horizontal placement of text within a line.
type Alignment int

// Alignments
const (
	None    Alignment = iota // text is output as is, whitespace preserved
	Left                     // ragged right
	Centre                   // centred between indent and right margin
	Right                    // ragged left
	Justify                  // stretched to the full line length
)

var alignmentNames = [...]string{"None", "Left", "Centre", "Right", "Justify"}

func (a Alignment) String() string {
	if a >= None && a <= Justify {
		return alignmentNames[a]
	}
	return fmt.Sprintf("Alignment(%d)", int(a))
}

// ParseAlignment reads an alignment name, case-insensitively.
// "Center" is accepted as a synonym for Centre.
func ParseAlignment(s string) (Alignment, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "center") {
		return Centre, true
	}
	for i, name := range alignmentNames {
		if strings.EqualFold(s, name) {
			return Alignment(i), true
		}
	}
	return None, false
}

// WrapMode controls how a line boundary is expressed in the output.
type WrapMode int

// Wrap modes
const (
	// NewLine terminates every line with a newline.
	NewLine WrapMode = iota
	// NewLineOnShort emits a newline only for lines shorter than the width.
	// This suits sinks which wrap by themselves when a line fills the width.
	NewLineOnShort
	// PadToWrap pads every line to the full width instead of emitting a
	// newline. This suits consoles which wrap exactly at the width.
	PadToWrap
)

var wrapModeNames = [...]string{"NewLine", "NewLineOnShort", "PadToWrap"}

func (m WrapMode) String() string {
	if m >= NewLine && m <= PadToWrap {
		return wrapModeNames[m]
	}
	return fmt.Sprintf("WrapMode(%d)", int(m))
}

// ParseWrapMode reads a wrap mode name, case-insensitively.
func ParseWrapMode(s string) (WrapMode, bool) {
	s = strings.TrimSpace(s)
	for i, name := range wrapModeNames {
		if strings.EqualFold(s, name) {
			return WrapMode(i), true
		}
	}
	return NewLine, false
}
