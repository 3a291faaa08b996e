package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/filltext/resolve"
	"github.com/npillmayer/filltext/sink"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned for profile files with an extension other
// than .yaml, .yml or .toml.
var ErrUnknownFormat = errors.New("config: unknown profile format")

// Format is the encoding of a profile file.
type Format string

// Supported profile formats.
const (
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatOf decides the format of a profile file from its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Profile holds the settings for an output sink.
type Profile struct {
	Name string `yaml:"name" toml:"name"`
	// Layout is given in compact notation, e.g. "w60;aJustify". It is
	// applied on top of the sink's default layout.
	Layout *layout.Layout `yaml:"layout" toml:"layout"`
	// Mode is a render mode code: G, F or S.
	Mode string `yaml:"mode" toml:"mode"`
	// ForceColor enables colors for consoles which do not seem to support
	// them, e.g. when output is piped into a pager.
	ForceColor bool              `yaml:"force_color" toml:"force_color"`
	Palette    map[string]string `yaml:"palette" toml:"palette"`
	// Values are default values for fill points.
	Values map[string]string `yaml:"values" toml:"values"`
}

// Default returns a profile without settings of its own.
func Default() *Profile {
	return &Profile{
		Name: "default",
		Mode: chunk.General.String(),
	}
}

// Load reads a profile file, overlaying the default profile.
func Load(path string) (*Profile, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading profile: %w", err)
	}
	p, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	tracer().Debugf("loaded profile %q from %s", p.Name, path)
	return p, nil
}

// Decode reads a profile in a given format from r, overlaying the default
// profile.
func Decode(r io.Reader, format Format) (*Profile, error) {
	p := Default()
	switch format {
	case YAML:
		if err := yaml.NewDecoder(r).Decode(p); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing YAML profile: %w", err)
		}
	case TOML:
		if _, err := toml.NewDecoder(r).Decode(p); err != nil {
			return nil, fmt.Errorf("parsing TOML profile: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}

// profileText is the form profiles are written in, with the layout in
// compact notation.
type profileText struct {
	Name       string            `yaml:"name" toml:"name"`
	Layout     string            `yaml:"layout,omitempty" toml:"layout,omitempty"`
	Mode       string            `yaml:"mode" toml:"mode"`
	ForceColor bool              `yaml:"force_color,omitempty" toml:"force_color,omitempty"`
	Palette    map[string]string `yaml:"palette,omitempty" toml:"palette,omitempty"`
	Values     map[string]string `yaml:"values,omitempty" toml:"values,omitempty"`
}

// Encode writes p to w in a given format.
func (p *Profile) Encode(w io.Writer, format Format) error {
	out := profileText{
		Name:       p.Name,
		Mode:       p.Mode,
		ForceColor: p.ForceColor,
		Palette:    p.Palette,
		Values:     p.Values,
	}
	if p.Layout != nil {
		out.Layout = p.Layout.Compact()
	}
	switch format {
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("config: encoding YAML profile: %w", err)
		}
		return enc.Close()
	case TOML:
		if err := toml.NewEncoder(w).Encode(out); err != nil {
			return fmt.Errorf("config: encoding TOML profile: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// RenderMode returns the render mode of p. Unknown codes select
// chunk.General.
func (p *Profile) RenderMode() chunk.Mode {
	return chunk.ParseMode(p.Mode)
}

// SinkOptions converts p into options for sink.NewWriter or sink.Console.
func (p *Profile) SinkOptions() []sink.Option {
	opts := []sink.Option{sink.WithMode(p.RenderMode())}
	if p.Layout != nil {
		opts = append(opts, sink.WithLayout(p.Layout))
	}
	if len(p.Palette) > 0 {
		opts = append(opts, sink.WithPalette(sink.Palette(p.Palette)))
	}
	if p.ForceColor {
		opts = append(opts, sink.ForceColor(true))
	}
	return opts
}

// Resolvable makes the default values of p available for fill points. It
// returns nil if p has no values.
func (p *Profile) Resolvable() *resolve.Resolvable {
	if len(p.Values) == 0 {
		return nil
	}
	values := make(map[string]any, len(p.Values))
	for tag, v := range p.Values {
		values[tag] = v
	}
	return resolve.Map(values)
}
