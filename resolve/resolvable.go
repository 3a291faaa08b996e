package resolve

import (
	"strconv"
	"strings"

	"github.com/npillmayer/filltext/chunk"
)

// Func resolves a single fill point. ctx is the scope the request is made
// in. A return value which is not a Resolution is taken as the resolved
// value; to signal an unknown tag, return Unknown or UnknownYet.
type Func func(ctx *Chain, c chunk.Chunk) any

// Resolvable is a source of values for fill points, together with rules
// how a scope of a resolution chain uses it.
type Resolvable struct {
	fn               Func
	caseSensitive    bool
	resolveOuterTags bool
	resolveControls  bool
}

// Option configures a Resolvable.
type Option func(*Resolvable)

// CaseSensitive sets whether tags are cached and matched case-sensitively.
// Default is false.
func CaseSensitive(b bool) Option {
	return func(r *Resolvable) { r.caseSensitive = b }
}

// ResolveOuterTags sets whether tags unknown to a scope are passed to the
// enclosing scope. Default is true.
func ResolveOuterTags(b bool) Option {
	return func(r *Resolvable) { r.resolveOuterTags = b }
}

// ResolveControls sets whether control chunks are offered to the resolver.
// Default is false.
func ResolveControls(b bool) Option {
	return func(r *Resolvable) { r.resolveControls = b }
}

// FromFunc creates a Resolvable from a resolver function.
func FromFunc(fn Func, opts ...Option) *Resolvable {
	r := &Resolvable{fn: fn, resolveOuterTags: true}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Map creates a Resolvable looking up tags in a map. Unless the
// Resolvable is case-sensitive, keys are matched case-insensitively.
func Map(values map[string]any, opts ...Option) *Resolvable {
	r := FromFunc(nil, opts...)
	if r.caseSensitive {
		r.fn = func(_ *Chain, c chunk.Chunk) any {
			if v, ok := values[c.Tag()]; ok {
				return Resolved(v)
			}
			return Unknown
		}
		return r
	}
	folded := make(map[string]any, len(values))
	for k, v := range values {
		folded[strings.ToLower(k)] = v
	}
	r.fn = func(_ *Chain, c chunk.Chunk) any {
		if v, ok := folded[strings.ToLower(c.Tag())]; ok {
			return Resolved(v)
		}
		return Unknown
	}
	return r
}

// List creates a Resolvable for positional values: tags which are
// non-negative integers index into values.
func List(values []any, opts ...Option) *Resolvable {
	return FromFunc(func(_ *Chain, c chunk.Chunk) any {
		if i, ok := Index(c.Tag()); ok && i < len(values) {
			return Resolved(values[i])
		}
		return Unknown
	}, opts...)
}

// Index interprets a tag as a positional index.
func Index(tag string) (int, bool) {
	if tag == "" || tag[0] < '0' || tag[0] > '9' {
		return 0, false
	}
	i, err := strconv.Atoi(tag)
	if err != nil {
		return 0, false
	}
	return i, true
}

func (r *Resolvable) key(c chunk.Chunk) string {
	tag := c.Tag()
	if !r.caseSensitive {
		tag = strings.ToLower(tag)
	}
	if c.IsControl() {
		return "!" + tag
	}
	return tag
}

func (r *Resolvable) call(ctx *Chain, c chunk.Chunk) Resolution {
	if r.fn == nil {
		return Unknown
	}
	switch v := r.fn(ctx, c).(type) {
	case Resolution:
		return v
	default:
		return Resolved(v)
	}
}
