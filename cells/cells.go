/*
Package cells measures text in fixed-width character cells.

All layout arithmetic of filltext is done in cells. A cell is one column of a
monospaced output device. Most characters occupy a single cell, East Asian
wide characters occupy two (UAX#11). Text is never cut inside a grapheme
cluster (UAX#29), so combining marks stay with their base character.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

For details please refer to the LICENSE file.
*/
package cells

import (
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
)

var setup sync.Once

func graphemes(s string) grapheme.String {
	setup.Do(grapheme.SetupGraphemeClasses)
	return grapheme.StringFromString(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// Width returns the number of cells s occupies.
func Width(s string) int {
	if isASCII(s) {
		return len(s)
	}
	return uax11.StringWidth(graphemes(s), uax11.LatinContext)
}

// Split cuts s at the last grapheme boundary where the head still fits into
// n cells. If n ≥ 1 the head holds at least one grapheme, even if that one is
// wider than n. For n < 1 the head is empty.
func Split(s string, n int) (head, tail string) {
	if n < 1 {
		return "", s
	}
	if isASCII(s) {
		if n >= len(s) {
			return s, ""
		}
		return s[:n], s[n:]
	}
	gstr := graphemes(s)
	w, pos := 0, 0
	for i := 0; i < gstr.Len(); i++ {
		g := gstr.Nth(i)
		gw := uax11.StringWidth(graphemes(g), uax11.LatinContext)
		if w+gw > n && i > 0 {
			break
		}
		w += gw
		pos += len(g)
	}
	return s[:pos], s[pos:]
}

// Pad returns a string of n copies of r, or "" for n ≤ 0.
func Pad(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]rune, n)
	for i := range buf {
		buf[i] = r
	}
	return string(buf)
}
