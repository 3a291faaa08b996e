package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/filltext/chunk"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/filltext/resolve"
	"github.com/npillmayer/filltext/sink"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlProfile = `
name: report
layout: "w30;i2;aJustify"
mode: s
force_color: true
palette:
  warning: Yellow
values:
  company: ACME
`

const tomlProfile = `
name = "report"
layout = "w30;i2;aJustify"
mode = "S"

[palette]
warning = "Yellow"

[values]
company = "ACME"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFormatOf(t *testing.T) {
	for path, expected := range map[string]Format{
		"a.yaml": YAML, "a.YML": YAML, "dir/a.toml": TOML,
	} {
		f, err := FormatOf(path)
		require.NoError(t, err)
		assert.Equal(t, expected, f, path)
	}
	_, err := FormatOf("a.json")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoadProfiles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	for name, content := range map[string]string{"p.yaml": yamlProfile, "p.toml": tomlProfile} {
		t.Run(name, func(t *testing.T) {
			p, err := Load(writeFile(t, name, content))
			require.NoError(t, err)
			assert.Equal(t, "report", p.Name)
			require.NotNil(t, p.Layout)
			assert.Equal(t, 30, p.Layout.Width())
			assert.Equal(t, 2, p.Layout.IndentSize())
			assert.Equal(t, layout.Justify, p.Layout.Alignment())
			assert.Equal(t, chunk.Suppress, p.RenderMode())
			assert.Equal(t, "Yellow", p.Palette["warning"])
			assert.Equal(t, "ACME", p.Values["company"])
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = Load(writeFile(t, "p.ini", "name=x"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Load(writeFile(t, "p.yaml", "layout: \"w30;?\"\n"))
	assert.Error(t, err, "malformed layout must be reported")
	_, err = Load(writeFile(t, "p.toml", "layout = \n"))
	assert.Error(t, err, "malformed TOML must be reported")
}

func TestDefaults(t *testing.T) {
	p, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, "default", p.Name)
	assert.Nil(t, p.Layout)
	assert.Equal(t, chunk.General, p.RenderMode())
	assert.Nil(t, p.Resolvable())
	p, err = Decode(strings.NewReader("name = \"x\"\n"), TOML)
	require.NoError(t, err)
	assert.Equal(t, chunk.General, p.RenderMode())
	_, err = Decode(strings.NewReader(""), Format("ini"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []Format{YAML, TOML} {
		p := Default()
		p.Layout = layout.New(layout.Width(40), layout.Align(layout.Centre))
		p.Palette = map[string]string{"note": "Cyan"}
		var buf bytes.Buffer
		require.NoError(t, p.Encode(&buf, format))
		assert.Contains(t, buf.String(), p.Layout.Compact())
		decoded, err := Decode(&buf, format)
		require.NoError(t, err, string(format))
		require.NotNil(t, decoded.Layout)
		assert.True(t, p.Layout.Equal(decoded.Layout), "%s: %v", format, decoded.Layout)
		assert.Equal(t, p.Palette, decoded.Palette)
	}
}

func TestProfileDrivesSink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	t.Setenv(sink.LayoutEnv, "")
	p, err := Decode(strings.NewReader(yamlProfile), YAML)
	require.NoError(t, err)
	var buf bytes.Buffer
	w := sink.NewConsoleWriter(&buf, sink.Capabilities{Width: 80}, p.SinkOptions()...)
	defer w.Close()
	assert.Equal(t, 30, w.Layout().Width())
	chunks := resolve.Stack(p.Resolvable()).Expand(chunk.Parse("{!ConsoleFore:warning}{company}{missing}"))
	require.NoError(t, w.WriteChunks(chunks))
	assert.Equal(t, "\x1b[93mACME", buf.String())
}
