/*
Package resolve finds values for fill points.

Values come from Resolvables: maps, positional lists or functions. A
Resolvable is wrapped into a scope of a resolution Chain. Scopes cache
their answers and may fall back to enclosing scopes for tags they do not
know:

	outer := resolve.NewChain(resolve.Map(map[string]any{"user": "Alice"}))
	inner := outer.Push(resolve.List([]any{42}))
	inner.Resolve(chunk.FillPoint("user", 0, ""))  // Resolved(Alice), from outer scope

Chain.Expand substitutes values into a sequence of chunks. Values which are
chunks themselves are expanded recursively.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package resolve

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
