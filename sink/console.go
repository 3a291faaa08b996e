package sink

import (
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"golang.org/x/term"
)

// Control tags understood by the console sink. Without a format, the
// respective color is reset to the terminal's default.
const (
	ForeTag = "ConsoleFore" // {!ConsoleFore:Red}
	BackTag = "ConsoleBack" // {!ConsoleBack:DarkBlue}
)

// LayoutEnv names an environment variable holding a layout in compact
// notation. It overrides the default layout of console sinks.
const LayoutEnv = "FILLTEXT_LAYOUT"

// Console creates a sink writing to stdout. Capabilities are detected from
// the terminal, if there is one.
func Console(opts ...Option) *Writer {
	return NewConsoleWriter(colorable.NewColorableStdout(), DetectCapabilities(os.Stdout), opts...)
}

// NewConsoleWriter creates a console sink on an arbitrary writer, which is
// assumed to have the given capabilities.
//
// The default layout of a console sink spans the console's width. Consoles
// which wrap by themselves get a wrap mode of NewLineOnShort, to avoid
// blank lines after lines filling the whole width. The environment variable
// FILLTEXT_LAYOUT may override parts of the default layout.
func NewConsoleWriter(out io.Writer, caps Capabilities, opts ...Option) *Writer {
	cfg := newConfig(opts)
	caps.SupportsControl = true
	cfg.caps = &caps
	l := layout.Empty
	if caps.Width > 0 {
		l = l.With(layout.Width(caps.Width))
	}
	if caps.AutoWraps {
		l = l.With(layout.Wrap(layout.NewLineOnShort))
	}
	if env := os.Getenv(LayoutEnv); env != "" {
		if envLayout, ok := layout.TryParse(env); ok {
			l = l.Apply(envLayout)
		} else {
			tracer().Errorf("ignoring malformed %s=%q", LayoutEnv, env)
		}
	}
	cfg.layout = l.Apply(cfg.layout)
	colors := &consoleColors{
		palette: cfg.palette.fold(),
		enabled: caps.SupportsColor || cfg.forceColor,
		next:    cfg.handler,
	}
	cfg.handler = colors.handle
	return newWriter(out, cfg)
}

// DetectCapabilities inspects a file, usually os.Stdout. Terminals wrap by
// themselves and report their width; color support is decided from the
// environment (TERM, COLORTERM, NO_COLOR, CLICOLOR_FORCE).
func DetectCapabilities(f *os.File) Capabilities {
	caps := Capabilities{SupportsControl: true}
	fd := f.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return caps
	}
	if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
		caps.Width = w
		caps.AutoWraps = true
	}
	caps.SupportsColor = termenv.EnvColorProfile() != termenv.Ascii
	tracer().P("sink", "console").Infof("console capabilities = %+v", caps)
	return caps
}

// --- Colors ----------------------------------------------------------------

// Palette maps custom color names to standard console color names, e.g.
// "warning" to "Yellow". Names are matched case-insensitively. Custom names
// take precedence over standard names. If custom names differ only in case,
// the one sorting first is used.
type Palette map[string]string

// Lookup resolves a color name to a standard color name.
func (p Palette) Lookup(name string) (string, bool) {
	return p.fold().lookup(name)
}

// foldedPalette is a palette with lower-case custom names.
type foldedPalette map[string]string

func (p Palette) fold() foldedPalette {
	folded := make(foldedPalette, len(p))
	for _, custom := range slices.Sorted(maps.Keys(p)) {
		key := strings.ToLower(custom)
		if _, ok := folded[key]; !ok {
			folded[key] = p[custom]
		}
	}
	return folded
}

func (f foldedPalette) lookup(name string) (string, bool) {
	if std, ok := f[strings.ToLower(name)]; ok {
		name = std
	}
	for _, std := range standardColorNames {
		if strings.EqualFold(std, name) {
			return std, true
		}
	}
	return "", false
}

type attributes struct {
	fore, back color.Attribute
}

// standard console color names
var standardColorNames = []string{
	"Black", "DarkBlue", "DarkGreen", "DarkCyan", "DarkRed", "DarkMagenta",
	"DarkYellow", "Gray", "DarkGray", "Blue", "Green", "Cyan", "Red",
	"Magenta", "Yellow", "White",
}

var standardColors = map[string]attributes{
	"Black":       {color.FgBlack, color.BgBlack},
	"DarkBlue":    {color.FgBlue, color.BgBlue},
	"DarkGreen":   {color.FgGreen, color.BgGreen},
	"DarkCyan":    {color.FgCyan, color.BgCyan},
	"DarkRed":     {color.FgRed, color.BgRed},
	"DarkMagenta": {color.FgMagenta, color.BgMagenta},
	"DarkYellow":  {color.FgYellow, color.BgYellow},
	"Gray":        {color.FgWhite, color.BgWhite},
	"DarkGray":    {color.FgHiBlack, color.BgHiBlack},
	"Blue":        {color.FgHiBlue, color.BgHiBlue},
	"Green":       {color.FgHiGreen, color.BgHiGreen},
	"Cyan":        {color.FgHiCyan, color.BgHiCyan},
	"Red":         {color.FgHiRed, color.BgHiRed},
	"Magenta":     {color.FgHiMagenta, color.BgHiMagenta},
	"Yellow":      {color.FgHiYellow, color.BgHiYellow},
	"White":       {color.FgHiWhite, color.BgHiWhite},
}

// SGR codes for the terminal's default colors
const (
	defaultFore color.Attribute = 39
	defaultBack color.Attribute = 49
)

type consoleColors struct {
	palette foldedPalette
	enabled bool
	next    ControlHandler // for controls other than colors
}

func (cc *consoleColors) handle(w io.Writer, c chunk.Chunk) {
	fore := strings.EqualFold(c.Tag(), ForeTag)
	if !fore && !strings.EqualFold(c.Tag(), BackTag) {
		if cc.next != nil {
			cc.next(w, c)
		}
		return
	}
	if !cc.enabled {
		return
	}
	attr := defaultBack
	if fore {
		attr = defaultFore
	}
	if name, ok := c.Format(); ok && name != "" {
		std, ok := cc.palette.lookup(name)
		if !ok {
			tracer().Errorf("unknown console color %q", name)
			return
		}
		attr = standardColors[std].back
		if fore {
			attr = standardColors[std].fore
		}
	}
	col := color.New(attr)
	col.EnableColor()
	col.SetWriter(w)
}
