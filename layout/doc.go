/*
Package layout holds the parameters for flowing text into lines: width,
indentation, margins, tab stops, alignment, word splitting and the way line
ends are expressed.

Layouts are immutable and partial. Clients usually start from
layout.Default and override single parameters:

	l := layout.Default.With(layout.Width(60), layout.Align(layout.Justify))

Layouts have a compact textual notation, which is used in control chunks
like

	{!layout:w60;aJustify}

to change the layout in the middle of a text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
