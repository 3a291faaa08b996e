package resolve

import (
	"iter"
	"strings"
	"testing"

	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestResolveCachesAnswers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	calls := 0
	chain := NewChain(FromFunc(func(_ *Chain, c chunk.Chunk) any {
		calls++
		return "value of " + c.Tag()
	}))
	x := chunk.FillPoint("x", 0, "")
	r1 := chain.Resolve(x)
	r2 := chain.Resolve(x)
	if calls != 1 {
		t.Errorf("expected resolver to be called once, was called %d times", calls)
	}
	if r1 != r2 || !r1.IsResolved() || r1.Value() != "value of x" {
		t.Errorf("expected identical cached resolutions, got %v and %v", r1, r2)
	}
	chain.Resolve(chunk.FillPoint("X", 0, "")) // case-insensitive by default
	if calls != 1 {
		t.Errorf("expected 'X' to hit the cache entry of 'x'")
	}
}

func TestResolveNoCache(t *testing.T) {
	calls := 0
	chain := NewChain(FromFunc(func(_ *Chain, c chunk.Chunk) any {
		calls++
		return Currently(calls)
	}))
	x := chunk.FillPoint("tick", 0, "")
	chain.Resolve(x)
	r := chain.Resolve(x)
	if calls != 2 || r.Value() != 2 {
		t.Errorf("expected no-cache resolution to be recomputed, calls=%d, value=%v", calls, r.Value())
	}
}

func TestResolveCaseSensitive(t *testing.T) {
	chain := NewChain(Map(map[string]any{"Name": "Bob"}, CaseSensitive(true)))
	if chain.Resolve(chunk.FillPoint("name", 0, "")).IsResolved() {
		t.Errorf("expected case-sensitive lookup to miss 'name'")
	}
	if r := chain.Resolve(chunk.FillPoint("Name", 0, "")); r.Value() != "Bob" {
		t.Errorf("expected 'Name' to resolve to Bob, got %v", r)
	}
}

func TestOuterFallback(t *testing.T) {
	parent := NewChain(Map(map[string]any{"x": 42}))
	child := parent.Push(Map(map[string]any{}))
	if r := child.Resolve(chunk.FillPoint("x", 0, "")); !r.IsResolved() || r.Value() != 42 {
		t.Errorf("expected x=42 from parent scope, got %v", r)
	}
	isolated := parent.Push(Map(map[string]any{}, ResolveOuterTags(false)))
	if r := isolated.Resolve(chunk.FillPoint("x", 0, "")); r != Unknown {
		t.Errorf("expected Unknown without outer resolution, got %v", r)
	}
	if child.Parent() != parent {
		t.Errorf("expected parent scope to be reported")
	}
}

func TestOuterFallbackNotCachedLocally(t *testing.T) {
	outerCalls := 0
	parent := NewChain(FromFunc(func(_ *Chain, c chunk.Chunk) any {
		outerCalls++
		return 1
	}))
	child := parent.Push(FromFunc(func(_ *Chain, c chunk.Chunk) any {
		return Unknown
	}))
	x := chunk.FillPoint("x", 0, "")
	child.Resolve(x)
	child.Resolve(x)
	if outerCalls != 1 {
		t.Errorf("expected parent to cache its own answer, called %d times", outerCalls)
	}
	if _, ok := child.cache["x"]; !ok {
		t.Errorf("expected child to cache its own Unknown")
	}
	if v := child.cache["x"]; v.IsResolved() {
		t.Errorf("expected child cache to hold the child's answer only, got %v", v)
	}
}

func TestNullIsNotUnknown(t *testing.T) {
	chain := NewChain(Map(map[string]any{"nothing": nil}))
	r := chain.Resolve(chunk.FillPoint("nothing", 0, ""))
	if !r.IsResolved() || r.Value() != nil {
		t.Errorf("expected nil to be a resolved value, got %v", r)
	}
	if r == Unknown {
		t.Errorf("nil value must not be Unknown")
	}
}

func TestControlsNotResolvedByDefault(t *testing.T) {
	calls := 0
	fn := func(_ *Chain, c chunk.Chunk) any {
		calls++
		return "red"
	}
	ctrl := chunk.Control("color", "")
	if r := NewChain(FromFunc(fn)).Resolve(ctrl); r != Unknown || calls != 0 {
		t.Errorf("expected controls to be refused, got %v after %d calls", r, calls)
	}
	if r := NewChain(FromFunc(fn, ResolveControls(true))).Resolve(ctrl); r.Value() != "red" {
		t.Errorf("expected control to be resolved, got %v", r)
	}
}

func TestListResolvable(t *testing.T) {
	chain := NewChain(List([]any{"zero", "one"}))
	if r := chain.Resolve(chunk.FillPoint("1", 0, "")); r.Value() != "one" {
		t.Errorf("expected {1} = one, got %v", r)
	}
	if r := chain.Resolve(chunk.FillPoint("2", 0, "")); r.IsResolved() {
		t.Errorf("expected {2} to be out of range, got %v", r)
	}
	if r := chain.Resolve(chunk.FillPoint("name", 0, "")); r.IsResolved() {
		t.Errorf("expected non-numeric tag to be unknown, got %v", r)
	}
}

func TestNilChain(t *testing.T) {
	var chain *Chain
	if r := chain.Resolve(chunk.FillPoint("x", 0, "")); r != Unknown {
		t.Errorf("expected nil chain to resolve nothing, got %v", r)
	}
	if Stack() != nil {
		t.Errorf("expected empty stack to be nil")
	}
}

func render(seq iter.Seq[chunk.Chunk]) string {
	var b strings.Builder
	for c := range seq {
		b.WriteString(c.String())
	}
	return b.String()
}

func TestExpandFlattensChunks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	chain := Stack(Map(map[string]any{
		"greeting": chunk.ParseAll("Hello {name}"),
		"name":     chunk.FillPoint("first", 0, ""),
		"first":    "Alice",
	}))
	out := render(chain.Expand(chunk.Parse("{greeting}! {missing}")))
	if out != "Hello Alice! {missing}" {
		t.Errorf("unexpected expansion: %q", out)
	}
}

func TestExpandStopsCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	chain := Stack(Map(map[string]any{
		"self": chunk.FillPoint("self", 0, ""),
	}))
	out := render(chain.Expand(chunk.Parse("<{self}>")))
	if out != "<{self}>" {
		t.Errorf("expected self-referencing tag to stay unresolved, got %q", out)
	}
}

func TestExpandStopsBranchingCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	chain := Stack(Map(map[string]any{
		"x": chunk.ParseAll("{x}{x}"),
		"a": chunk.ParseAll("[{b}]"),
		"b": chunk.ParseAll("({a}{X})"),
	}))
	if out := render(chain.Expand(chunk.Parse("{x}"))); out != "{x}{x}" {
		t.Errorf("expected branching self-reference to stay unresolved, got %q", out)
	}
	if out := render(chain.Expand(chunk.Parse("{a}"))); out != "[({a}{x}{x})]" {
		t.Errorf("expected indirect cycle to stop at the repeated tag, got %q", out)
	}
}

type doubling struct{}

func (d doubling) Chunks() iter.Seq[chunk.Chunk] {
	return func(yield func(chunk.Chunk) bool) {
		_ = yield(chunk.Value(d)) && yield(chunk.Value(d))
	}
}

func TestExpandBudget(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	chain := Stack(Map(map[string]any{"d": doubling{}}))
	if out := render(chain.Expand(chunk.Parse("<{d}>"))); out != "<>" {
		t.Errorf("expected endless literal expansion to be cut off, got %q", out)
	}
}

func TestExpandAppliesFormat(t *testing.T) {
	chain := Stack(List([]any{255}))
	if out := render(chain.Expand(chunk.Parse("[{0,6:x}]"))); out != "[    ff]" {
		t.Errorf("unexpected formatted expansion: %q", out)
	}
}
