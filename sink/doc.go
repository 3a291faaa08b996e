/*
Package sink writes chunks to output devices.

A Sink receives chunk sequences, flows them into lines according to its
layout and writes the result. Sinks remember the output column and the
layout across writes, so that consecutive writes continue each other.

Control chunks are handed to the sink's ControlHandler at their position
within the text, after all text before them has been written. The console
sink uses this to switch colors:

	{!ConsoleFore:Red}warning{!ConsoleFore}

Writes to a sink are serialized. Concurrent writers never interleave
partial lines or control sequences.

What a sink can do is described by its Capabilities, decided once when the
sink is created.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package sink

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
