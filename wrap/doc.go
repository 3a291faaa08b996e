/*
Package wrap flows chunks into lines.

Flowing is done in three steps. Tokenize renders a chunk sequence and cuts it
into words, whitespace, line breaks and control tokens. A Breaker distributes
the tokens onto lines, greedily, following the active layout. An Aligner
finally turns each line back into chunks, adding indentation, justification
spaces and line ends.

	res := wrap.Flow(chunks, layout.New(layout.Width(40)), 0, chunk.General)

Control chunks travel through all three steps and re-appear in the output at
their original position, with the exception of layout controls

	{!layout:w60;aJustify}

which are consumed by the Breaker and change the layout of subsequent lines.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package wrap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
