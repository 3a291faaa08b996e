/*
Command filltext renders a template to the console.

The template is taken from the command line or, without arguments, from
standard input. Fill points are resolved from --set flags and from the
values of a profile:

	filltext --layout "w40;aJustify" --set name=Alice "Dear {name}, {!ConsoleFore:Red}hello{!ConsoleFore}"

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "filltext:", err)
		os.Exit(1)
	}
}
