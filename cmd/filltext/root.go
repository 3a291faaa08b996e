package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/filltext"
	"github.com/npillmayer/filltext/config"
	"github.com/npillmayer/filltext/layout"
	"github.com/npillmayer/filltext/resolve"
	"github.com/npillmayer/filltext/sink"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

type options struct {
	layout  string
	sets    []string
	mode    string
	profile string
	ruler   bool
	debug   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "filltext [template]",
		Short: "Render a template with fill points to the console",
		Long: `filltext resolves the fill points of a template and flows the text into
lines of a layout. Layouts are given in compact notation, e.g. "w60;i2;aJustify".`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.layout, "layout", "l", "", "layout in compact notation, applied on top of the profile's layout")
	flags.StringArrayVarP(&opts.sets, "set", "s", nil, "value for a fill point, as tag=value (repeatable)")
	flags.StringVarP(&opts.mode, "mode", "m", "", "render mode for unresolved fill points: G, F or S")
	flags.StringVarP(&opts.profile, "profile", "p", "", "profile file (.yaml, .yml or .toml)")
	flags.BoolVar(&opts.ruler, "ruler", false, "print a ruler of the layout before the text")
	flags.BoolVar(&opts.debug, "debug", false, "trace at debug level")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) (err error) {
	if opts.debug {
		tracing.Select("filltext").SetTraceLevel(tracing.LevelDebug)
	}
	profile := config.Default()
	if opts.profile != "" {
		if profile, err = config.Load(opts.profile); err != nil {
			return err
		}
	}
	if opts.mode != "" {
		profile.Mode = opts.mode
	}
	sinkOpts := profile.SinkOptions()
	if opts.layout != "" {
		l, err := layout.Parse(opts.layout)
		if err != nil {
			return fmt.Errorf("--layout: %w", err)
		}
		sinkOpts = append(sinkOpts, sink.WithLayout(l))
	}
	values, err := parseSets(opts.sets)
	if err != nil {
		return err
	}
	tmpl, err := readTemplate(cmd, args)
	if err != nil {
		return err
	}
	s := console(cmd.OutOrStdout(), sinkOpts)
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()
	if opts.ruler {
		fmt.Fprintln(cmd.OutOrStdout(), s.Layout().Ruler())
	}
	b := filltext.Template(tmpl)
	if err = b.Output(s, profile.Resolvable(), resolve.Map(values)); err != nil {
		return err
	}
	if s.Position() > 0 {
		_, err = io.WriteString(s, "\n")
	}
	return err
}

// console writes to the terminal if out is stdout. Other writers are treated
// as devices of unknown width without color support.
func console(out io.Writer, opts []sink.Option) *sink.Writer {
	if out == os.Stdout {
		return sink.Console(opts...)
	}
	return sink.NewConsoleWriter(out, sink.Capabilities{}, opts...)
}

func parseSets(sets []string) (map[string]any, error) {
	values := make(map[string]any, len(sets))
	for _, set := range sets {
		tag, value, ok := strings.Cut(set, "=")
		if !ok || tag == "" {
			return nil, fmt.Errorf("--set: expected tag=value, have %q", set)
		}
		values[tag] = value
	}
	return values, nil
}

func readTemplate(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading template: %w", err)
	}
	return strings.TrimSuffix(string(data), "\n"), nil
}
