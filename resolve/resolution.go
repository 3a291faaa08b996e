package resolve

import "fmt"

// Resolution is the answer of a resolver for a fill point.
//
// A resolution is either unresolved (the resolver does not know the tag) or
// carries a value, where nil is a valid value. NoCache marks answers which
// must not be remembered, e.g. for tags whose values change between uses.
type Resolution struct {
	resolved bool
	value    any
	noCache  bool
}

// Sentinel resolutions.
var (
	Unknown        = Resolution{}                                  // not resolved, cacheable
	UnknownYet     = Resolution{noCache: true}                     // not resolved, ask again next time
	Null           = Resolution{resolved: true}                    // resolved to nil
	CurrentlyNull  = Resolution{resolved: true, noCache: true}     // resolved to nil for now
	Empty          = Resolution{resolved: true, value: ""}         // resolved to ""
	CurrentlyEmpty = Resolution{resolved: true, value: "", noCache: true}
)

// Resolved creates a cacheable resolution for v.
func Resolved(v any) Resolution {
	return Resolution{resolved: true, value: v}
}

// Currently creates a resolution for v which will not be cached.
func Currently(v any) Resolution {
	return Resolution{resolved: true, value: v, noCache: true}
}

// IsResolved is true if the resolution carries a value (possibly nil).
func (r Resolution) IsResolved() bool {
	return r.resolved
}

// Value returns the resolved value, which is nil for unresolved resolutions.
func (r Resolution) Value() any {
	return r.value
}

// NoCache is true for resolutions which must be recomputed on every use.
func (r Resolution) NoCache() bool {
	return r.noCache
}

func (r Resolution) String() string {
	if !r.resolved {
		if r.noCache {
			return "UnknownYet"
		}
		return "Unknown"
	}
	if r.noCache {
		return fmt.Sprintf("Currently(%v)", r.value)
	}
	return fmt.Sprintf("Resolved(%v)", r.value)
}
