package sink

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestWriterFlowsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	var buf bytes.Buffer
	w := NewWriter(&buf, WithLayout(layout.New(layout.Width(10))))
	defer w.Close()
	if err := w.WriteChunks(chunk.Parse("hello world foo")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\nworld foo" || w.Position() != 9 {
		t.Errorf("unexpected output %q at position %d", buf.String(), w.Position())
	}
	if err := w.WriteChunks(chunk.Parse(" bar")); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello\nworld foo\nbar" || w.Position() != 3 {
		t.Errorf("expected write to continue the partial line, got %q at position %d", buf.String(), w.Position())
	}
}

func TestWriterIsIOWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithLayout(layout.New(layout.Width(6))))
	defer w.Close()
	fmt.Fprintf(w, "%s {x}", "abc")
	if buf.String() != "abc\n{x}" {
		t.Errorf("expected literal text to be flowed, got %q", buf.String())
	}
}

func TestWriterDispatchesControls(t *testing.T) {
	var buf bytes.Buffer
	var seen []string
	handler := func(out io.Writer, c chunk.Chunk) {
		seen = append(seen, buf.String()+"|"+c.Tag())
		io.WriteString(out, "#")
	}
	w := NewWriter(&buf, WithControlHandler(handler))
	defer w.Close()
	if !w.Capabilities().SupportsControl {
		t.Errorf("expected writer with handler to support controls")
	}
	if err := w.WriteChunks(chunk.Parse("ab{!ping}cd{!pong}")); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 2 || seen[0] != "ab|ping" || seen[1] != "ab#cd|pong" {
		t.Errorf("expected text to be flushed before each control, got %v", seen)
	}
	if buf.String() != "ab#cd#" {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestHandlerQueriesWriter(t *testing.T) {
	var buf bytes.Buffer
	var w *Writer
	var cols []int
	w = NewWriter(&buf, WithControlHandler(func(io.Writer, chunk.Chunk) {
		cols = append(cols, w.Position())
		if w.Layout() == nil {
			t.Errorf("expected a layout during a write")
		}
	}))
	defer w.Close()
	done := make(chan error, 1)
	go func() { done <- w.WriteChunks(chunk.Parse("ab{!x}")) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("control handler querying its writer blocks the write")
	}
	if len(cols) != 1 || cols[0] != 0 || w.Position() != 2 {
		t.Errorf("expected position 0 during and 2 after the write, got %v and %d", cols, w.Position())
	}
}

func TestWriterKeepsLayout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	defer w.Close()
	w.WriteChunks(chunk.Parse("{!layout:w5}"))
	if w.Layout().Width() != 5 {
		t.Errorf("expected layout change to persist, width is %d", w.Layout().Width())
	}
	w.WriteChunks(chunk.Parse("abc def"))
	if buf.String() != "abc\ndef" {
		t.Errorf("expected output in new layout, got %q", buf.String())
	}
	w.SetLayout(layout.New(layout.Width(3)))
	if w.Layout().Width() != 3 {
		t.Errorf("expected SetLayout to change the width, is %d", w.Layout().Width())
	}
}

func TestWriterFitsDevice(t *testing.T) {
	caps := Capabilities{Width: 8}
	w := NewWriter(io.Discard, WithCapabilities(caps),
		WithLayout(layout.New(layout.Wrap(layout.PadToWrap))))
	defer w.Close()
	l := w.Layout()
	if l.Width() != 8 {
		t.Errorf("expected layout width to be clamped to 8, is %d", l.Width())
	}
	if l.WrapMode() != layout.NewLine {
		t.Errorf("expected explicit line ends for a non-wrapping device, is %v", l.WrapMode())
	}
	caps.AutoWraps = true
	var buf bytes.Buffer
	w2 := NewWriter(&buf, WithCapabilities(caps),
		WithLayout(layout.New(layout.Wrap(layout.PadToWrap))))
	defer w2.Close()
	w2.WriteChunks(chunk.Parse("abc defgh"))
	if buf.String() != "abc     defgh" || w2.Position() != 5 {
		t.Errorf("unexpected padded output %q at %d", buf.String(), w2.Position())
	}
}

func TestWriterClosed(t *testing.T) {
	w := NewWriter(io.Discard)
	if err := w.Close(); err != nil {
		t.Errorf("expected first Close to succeed, got %v", err)
	}
	if err := w.WriteChunks(chunk.Parse("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if _, err := w.Write([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed from Write, got %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrClosed) {
		t.Errorf("expected second Close to fail, got %v", err)
	}
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func TestWriterSerializesWrites(t *testing.T) {
	out := &lockedBuffer{}
	w := NewWriter(out)
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.WriteChunks(chunk.Parse(fmt.Sprintf("line {!x}number %d\n", i)))
		}()
	}
	wg.Wait()
	w.Close()
	lines := strings.Split(strings.TrimSuffix(out.buf.String(), "\n"), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected 20 lines, got %d", len(lines))
	}
	pattern := regexp.MustCompile(`^line number \d+$`)
	for _, line := range lines {
		if !pattern.MatchString(line) {
			t.Errorf("interleaved output: %q", line)
		}
	}
}

func TestWriterEvents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, WithEvents(), WithControlHandler(func(io.Writer, chunk.Chunk) {}))
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, ok := w.Subscribe(ctx, 16)
	if !ok {
		t.Fatal("cannot subscribe")
	}
	w.WriteChunks(chunk.Parse("ab{!x}cd"))
	var got []Event
	for len(got) < 3 {
		select {
		case msg := <-events:
			got = append(got, msg.(Event))
		case <-time.After(2 * time.Second):
			t.Fatalf("timeout waiting for events, got %v", got)
		}
	}
	if got[0].Text != "ab" || got[0].Position != 2 {
		t.Errorf("unexpected first event %+v", got[0])
	}
	if !got[1].IsControl() || got[1].Control.Tag() != "x" || got[1].Position != 2 {
		t.Errorf("unexpected control event %+v", got[1])
	}
	if got[2].Text != "cd" || got[2].Position != 4 {
		t.Errorf("unexpected last event %+v", got[2])
	}
	if _, ok := NewWriter(io.Discard).Subscribe(ctx, 1); ok {
		t.Errorf("expected writer without events to refuse subscriptions")
	}
}

// ---------------------------------------------------------------------------

func TestPlain(t *testing.T) {
	var buf bytes.Buffer
	p := Plain(&buf, chunk.Suppress)
	p.WriteChunks(chunk.Parse("a{x}b{!c}\nxyz"))
	if buf.String() != "ab\nxyz" || p.Position() != 3 {
		t.Errorf("unexpected plain output %q at %d", buf.String(), p.Position())
	}
	p.Close()
	if err := p.WriteChunks(chunk.Parse("x")); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

// ---------------------------------------------------------------------------

func TestConsoleColors(t *testing.T) {
	t.Setenv(LayoutEnv, "")
	var buf bytes.Buffer
	caps := Capabilities{SupportsColor: true, Width: 20}
	c := NewConsoleWriter(&buf, caps, WithPalette(Palette{"warning": "yellow"}))
	defer c.Close()
	c.WriteChunks(chunk.Parse("{!ConsoleFore:Red}x{!ConsoleFore}"))
	if buf.String() != "\x1b[91mx\x1b[39m" {
		t.Errorf("unexpected colored output %q", buf.String())
	}
	buf.Reset()
	c.WriteChunks(chunk.Parse("{!ConsoleBack:Warning}y{!consoleback}"))
	if buf.String() != "\x1b[103my\x1b[49m" {
		t.Errorf("unexpected palette output %q", buf.String())
	}
	buf.Reset()
	c.WriteChunks(chunk.Parse("{!ConsoleFore:Puce}z"))
	if buf.String() != "z" {
		t.Errorf("expected unknown color to be ignored, got %q", buf.String())
	}
}

func TestConsoleWithoutColors(t *testing.T) {
	t.Setenv(LayoutEnv, "")
	var buf bytes.Buffer
	var other []string
	handler := func(_ io.Writer, c chunk.Chunk) { other = append(other, c.Tag()) }
	c := NewConsoleWriter(&buf, Capabilities{Width: 20}, WithControlHandler(handler))
	defer c.Close()
	c.WriteChunks(chunk.Parse("{!ConsoleFore:Red}x{!ping}"))
	if buf.String() != "x" {
		t.Errorf("expected no color sequences, got %q", buf.String())
	}
	if len(other) != 1 || other[0] != "ping" {
		t.Errorf("expected other controls to reach the handler, got %v", other)
	}
}

func TestConsoleLayout(t *testing.T) {
	t.Setenv(LayoutEnv, "w10;aRight")
	c := NewConsoleWriter(io.Discard, Capabilities{Width: 40, AutoWraps: true})
	defer c.Close()
	l := c.Layout()
	if l.Width() != 10 || l.Alignment() != layout.Right {
		t.Errorf("expected environment to override the layout, got %v", l)
	}
	if l.WrapMode() != layout.NewLineOnShort {
		t.Errorf("expected wrapping console to avoid double line ends, got %v", l.WrapMode())
	}
	t.Setenv(LayoutEnv, "w10;?")
	c2 := NewConsoleWriter(io.Discard, Capabilities{Width: 40})
	defer c2.Close()
	if c2.Layout().Width() != 40 {
		t.Errorf("expected malformed environment to be ignored, width is %d", c2.Layout().Width())
	}
}

func TestPaletteLookup(t *testing.T) {
	p := Palette{"alert": "DarkRed", "red": "Blue"}
	if name, ok := p.Lookup("ALERT"); !ok || name != "DarkRed" {
		t.Errorf("expected custom name to resolve to DarkRed, got %q", name)
	}
	if name, _ := p.Lookup("red"); name != "Blue" {
		t.Errorf("expected custom names to take precedence, got %q", name)
	}
	if name, ok := Palette(nil).Lookup("darkgray"); !ok || name != "DarkGray" {
		t.Errorf("expected standard name, got %q", name)
	}
	clash := Palette{"note": "Red", "Note": "Blue", "NOTE": "Green"}
	for range 20 {
		if name, _ := clash.Lookup("note"); name != "Green" {
			t.Fatalf("expected names differing in case to resolve deterministically, got %q", name)
		}
	}
}

func TestDetectCapabilitiesOfFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	caps := DetectCapabilities(f)
	if caps.Width != 0 || caps.AutoWraps || caps.SupportsColor {
		t.Errorf("expected a plain file to have no terminal capabilities, got %+v", caps)
	}
}

func TestTraceWriter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	tw := TraceWriter(tracing.Select("filltext"))
	n, err := io.WriteString(tw, "first line\nsecond")
	if err != nil || n != 17 {
		t.Errorf("expected all bytes to be accepted, got %d, %v", n, err)
	}
	if rest := string(tw.(*traceWriter).buf); rest != "second" {
		t.Errorf("expected incomplete line to be kept, got %q", rest)
	}
}
