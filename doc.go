/*
Package filltext composes texts from fragments and fill points, and flows them
into lines for output.

A text is built from chunks: literal text, values, fill points which are
resolved at output time, and control chunks which instruct an output device.

	b := filltext.Template("Dear {name},{!ConsoleFore:Red} your balance is {balance,10:%.2f}{!ConsoleFore}")
	fmt.Println(b.SprintMap(map[string]any{"name": "Alice", "balance": -12.5}))

Rendering comes in three flavors:

■ plain strings, with fill points substituted from positional values, maps
or resolver functions (String, Render, Sprint, …);

■ text flowed into lines of a layout.Layout, with indentation, alignment
and word wrapping (Layout);

■ output to a sink.Sink, where control chunks are dispatched to the device,
e.g. to switch console colors (Output).

Fill points without a value render as their bracket notation, unless
suppressed by render mode chunk.Suppress. Control chunks never show up in
plain output, except in mode chunk.Force, which renders every fill point
in bracket notation.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/
package filltext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}

// FillError is an error type for the filltext module
type FillError string

func (e FillError) Error() string {
	return string(e)
}

// ErrNoSink is flagged when output is requested without a sink or writer.
const ErrNoSink = FillError("no sink to write to")
