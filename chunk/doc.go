/*
Package chunk holds the building blocks of composite texts.

A text is a sequence of chunks. Literal chunks carry text (or a plain value),
fill points carry a tag which is resolved to a value at output time, and
control chunks carry out-of-band instructions for an output sink, e.g.
a color change. Chunks are immutable values.

Fill points are written in a compact notation, similar to composite format
items:

	{name}  {name,8}  {name:%x}  {name,-8:%x}  {!ConsoleFore:Red}

Package chunk parses this notation and renders chunks back to text.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package chunk

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
