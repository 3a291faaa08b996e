package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/filltext/sink"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(sink.LayoutEnv, "")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootFlags(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"layout", "set", "mode", "profile", "ruler", "debug"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "expected --%s flag", name)
	}
}

func TestRenderTemplate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "filltext")
	defer teardown()
	//
	out, err := execute(t, "", "--layout", "w10", "--set", "w=world", "hello {w} foo")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld foo\n", out)
}

func TestRenderStdin(t *testing.T) {
	out, err := execute(t, "a{x}b{!ConsoleFore:Red}c\n", "--mode", "S")
	require.NoError(t, err)
	assert.Equal(t, "abc\n", out)
	out, err = execute(t, "a{x}b")
	require.NoError(t, err)
	assert.Equal(t, "a{x}b\n", out)
}

func TestRuler(t *testing.T) {
	out, err := execute(t, "", "--ruler", "--layout", "w20;i2;l3|11", "x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "   ....+....1....+....2\n"), out)
	assert.Contains(t, out, "L  __[----------------]\n")
	assert.True(t, strings.HasSuffix(out, "\nx\n"), out)
}

func TestProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	content := "layout = \"w12;aRight\"\n\n[values]\nname = \"Alice\"\ngreeting = \"Hi\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	out, err := execute(t, "", "--profile", path, "--set", "greeting=Hello", "{greeting} {name}")
	require.NoError(t, err)
	assert.Equal(t, " Hello Alice\n", out)
}

func TestErrors(t *testing.T) {
	_, err := execute(t, "", "--layout", "w10;?", "x")
	assert.Error(t, err)
	_, err = execute(t, "", "--set", "novalue", "x")
	assert.Error(t, err)
	_, err = execute(t, "", "--profile", "p.json", "x")
	assert.Error(t, err)
	_, err = execute(t, "", "a", "b")
	assert.Error(t, err)
}

type brokenPipe struct{}

var errBroken = errors.New("broken pipe")

func (brokenPipe) Write([]byte) (int, error) { return 0, errBroken }

func TestOutputErrors(t *testing.T) {
	t.Setenv(sink.LayoutEnv, "")
	cmd := newRootCmd()
	cmd.SetOut(brokenPipe{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"hello"})
	err := cmd.Execute()
	assert.ErrorIs(t, err, errBroken)
}
