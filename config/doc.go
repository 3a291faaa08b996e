/*
Package config loads output profiles for filltext.

A profile bundles the settings of an output sink: a layout in compact
notation, a render mode for fill points, custom color names and default
values for fill points. Profiles are read from YAML or TOML files:

	# profile.yaml
	name: report
	layout: "w72;i2;aJustify"
	mode: S
	palette:
	  warning: Yellow
	values:
	  company: ACME

The file format is decided from the file extension.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'filltext'
func tracer() tracing.Trace {
	return tracing.Select("filltext")
}
