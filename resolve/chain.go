package resolve

import (
	"iter"
	"strings"

	"github.com/npillmayer/filltext/chunk"
)

// MaxDepth limits how deeply values which expand into chunks may nest during
// Expand. Fill points found below this depth are left unresolved.
const MaxDepth = 64

// MaxExpansions limits the number of values spliced into the output while
// expanding a single chunk. Values beyond it are not expanded.
const MaxExpansions = 1 << 16

// Chain is a scope of a resolution chain. Each scope wraps a Resolvable
// and owns a cache of the answers it produced. Scopes may be pushed on top
// of each other; an inner scope consults its parent for tags it does not
// know, if its Resolvable allows it.
//
// Caches live as long as the chain; clients create a fresh chain for every
// independent rendering. A Chain is not safe for concurrent use.
//
// A nil *Chain is valid and resolves nothing.
type Chain struct {
	parent     *Chain
	resolvable *Resolvable
	cache      map[string]Resolution
}

// NewChain creates a root scope for r.
func NewChain(r *Resolvable) *Chain {
	return &Chain{resolvable: r}
}

// Stack creates a chain from resolvables, the first one becoming the
// outermost scope. Nil entries are skipped. Returns nil if no resolvable is
// given.
func Stack(rs ...*Resolvable) *Chain {
	var c *Chain
	for _, r := range rs {
		if r != nil {
			c = c.Push(r)
		}
	}
	return c
}

// Push creates a child scope for r. Push on a nil chain creates a root scope.
func (c *Chain) Push(r *Resolvable) *Chain {
	return &Chain{parent: c, resolvable: r}
}

// Parent returns the enclosing scope, or nil.
func (c *Chain) Parent() *Chain {
	if c == nil {
		return nil
	}
	return c.parent
}

// Resolve asks the scope for the value of a fill point.
//
// Control chunks are answered with Unknown unless the scope's Resolvable
// accepts them. Answers are cached per tag, except for those flagged NoCache.
// If the scope cannot resolve the tag and is allowed to consult outer scopes,
// the parent's answer is returned; it is cached by the parent only.
func (c *Chain) Resolve(ch chunk.Chunk) Resolution {
	if c == nil || !ch.IsFillPoint() {
		return Unknown
	}
	r := c.resolvable
	if r == nil {
		return c.parent.Resolve(ch)
	}
	if ch.IsControl() && !r.resolveControls {
		return Unknown
	}
	key := r.key(ch)
	res, ok := c.cache[key]
	if !ok {
		res = r.call(c, ch)
		if !res.NoCache() {
			if c.cache == nil {
				c.cache = make(map[string]Resolution)
			}
			c.cache[key] = res
		}
	}
	if !res.IsResolved() && r.resolveOuterTags && c.parent != nil {
		return c.parent.Resolve(ch)
	}
	return res
}

// Expand substitutes fill points of a chunk sequence with their values.
//
// Values which are themselves chunks (a chunk.Chunk, []chunk.Chunk,
// iter.Seq[chunk.Chunk] or a chunk.Source) are spliced into the output in
// place of the fill point and are expanded in turn. Unresolvable fill points
// are passed on unchanged. Expansion uses an explicit stack.
//
// A fill point is left unresolved if its tag is already being expanded, so
// values referring to themselves terminate. Nesting deeper than MaxDepth and
// splicing more than MaxExpansions values are not expanded either.
func (c *Chain) Expand(chunks iter.Seq[chunk.Chunk]) iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		for ch := range chunks {
			if !c.expand(ch, yield) {
				return
			}
		}
	}
}

// path holds the tags of the fill points currently being expanded.
type path struct {
	tag    string
	parent *path
}

func (p *path) contains(tag string) bool {
	for ; p != nil; p = p.parent {
		if p.tag == tag {
			return true
		}
	}
	return false
}

type pending struct {
	ch    chunk.Chunk
	depth int
	path  *path
}

// pathKey identifies a fill point on an expansion path. Control tags live in
// a key space of their own.
func pathKey(ch chunk.Chunk) string {
	key := strings.ToLower(ch.Tag())
	if ch.IsControl() {
		return "!" + key
	}
	return key
}

func (c *Chain) expand(first chunk.Chunk, yield func(chunk.Chunk) bool) bool {
	stack := []pending{{ch: first}}
	budget := MaxExpansions
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ch := top.ch
		p := top.path
		var value any
		if v, ok := ch.Value(); ok {
			value = v
		} else if top.depth >= MaxDepth || p.contains(pathKey(ch)) {
			tracer().Errorf("fill point %s refers to itself or is nested too deeply, left unresolved", ch.Syntax())
			if !yield(ch) {
				return false
			}
			continue
		} else {
			res := c.Resolve(ch)
			if !res.IsResolved() {
				if !yield(ch) {
					return false
				}
				continue
			}
			value = res.Value()
			p = &path{tag: pathKey(ch), parent: p}
			tracer().Debugf("resolved %s = %v", ch.Syntax(), value)
		}
		sub, ok := asChunks(value)
		if ok && (budget <= 0 || top.depth >= MaxDepth) {
			tracer().Errorf("expansion limit reached, %s left unexpanded", ch.Syntax())
			if ch.IsFillPoint() && !yield(ch.Unresolved()) { // literals are dropped
				return false
			}
			continue
		}
		if !ok {
			if !yield(ch.WithValue(value)) {
				return false
			}
			continue
		}
		budget--
		for i := len(sub) - 1; i >= 0; i-- {
			stack = append(stack, pending{ch: sub[i], depth: top.depth + 1, path: p})
		}
	}
	return true
}

// asChunks checks if v expands into a sequence of chunks.
func asChunks(v any) ([]chunk.Chunk, bool) {
	switch x := v.(type) {
	case chunk.Chunk:
		return []chunk.Chunk{x}, true
	case []chunk.Chunk:
		return x, true
	case iter.Seq[chunk.Chunk]:
		return collect(x), true
	case chunk.Source:
		return collect(x.Chunks()), true
	}
	return nil, false
}

func collect(seq iter.Seq[chunk.Chunk]) []chunk.Chunk {
	var out []chunk.Chunk
	for c := range seq {
		out = append(out, c)
	}
	return out
}
