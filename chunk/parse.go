package chunk

import (
	"iter"
	"strconv"
	"strings"
)

// Parse scans a format string into literal chunks and fill-point chunks.
// Chunks are produced lazily.
//
// A fill point is a balanced span
//
//	{tag}  {tag,alignment}  {tag:format}  {tag,alignment:format}
//
// with a '!' in front of the tag marking a control chunk. Braces nest, so a
// format may itself contain fill-point syntax. Spans which do not form a
// valid fill point remain literal text, as do unbalanced braces.
//
// Parse does not handle escaped braces: "{{x}}" is a span with tag "{x}",
// which renders unchanged as long as it stays unresolved.
// Use ParseComposite for composite-format strings.
func Parse(s string) iter.Seq[Chunk] {
	return scan(s, false)
}

// ParseComposite is like Parse, but treats "{{" and "}}" outside of fill
// points as escaped literal braces.
func ParseComposite(s string) iter.Seq[Chunk] {
	return scan(s, true)
}

// ParseAll parses s and collects all chunks.
func ParseAll(s string) []Chunk {
	var chunks []Chunk
	for c := range Parse(s) {
		chunks = append(chunks, c)
	}
	return chunks
}

func scan(s string, escapes bool) iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		var lit strings.Builder
		flush := func() bool {
			if lit.Len() == 0 {
				return true
			}
			t := lit.String()
			lit.Reset()
			return yield(Text(t))
		}
		for i := 0; i < len(s); {
			ch := s[i]
			if escapes && (ch == '{' || ch == '}') && i+1 < len(s) && s[i+1] == ch {
				lit.WriteByte(ch)
				i += 2
				continue
			}
			if ch != '{' {
				lit.WriteByte(ch)
				i++
				continue
			}
			end := matchBrace(s, i)
			if end < 0 { // unbalanced: rest is literal
				lit.WriteString(s[i:])
				break
			}
			c, ok := fillPoint(s[i+1 : end])
			if !ok {
				lit.WriteString(s[i : end+1])
				i = end + 1
				continue
			}
			if !flush() || !yield(c) {
				return
			}
			i = end + 1
		}
		flush()
	}
}

// matchBrace returns the index of the '}' closing the '{' at position start,
// or -1.
func matchBrace(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// fillPoint interprets the interior of a brace span.
func fillPoint(interior string) (Chunk, bool) {
	if interior == "" {
		return Chunk{}, false
	}
	control := false
	if interior[0] == '!' {
		if len(interior) < 2 {
			return Chunk{}, false
		}
		control = true
		interior = interior[1:]
	}
	comma := strings.IndexByte(interior, ',')
	colon := strings.IndexByte(interior, ':')
	if colon >= 0 && comma > colon {
		comma = -1 // comma belongs to the format
	}
	tagEnd := len(interior)
	if comma >= 0 {
		tagEnd = comma
	} else if colon >= 0 {
		tagEnd = colon
	}
	tag := interior[:tagEnd]
	if tag == "" {
		return Chunk{}, false
	}
	alignment, alignText := 0, ""
	if comma >= 0 {
		alEnd := len(interior)
		if colon >= 0 {
			alEnd = colon
		}
		alignText = interior[comma+1 : alEnd]
		a, err := strconv.Atoi(strings.TrimSpace(alignText))
		if err != nil {
			return Chunk{}, false
		}
		alignment = a
	}
	c := Chunk{tag: tag, fill: true, control: control, alignment: alignment, alignText: alignText}
	if colon >= 0 {
		c.format = interior[colon+1:]
		c.hasFormat = true
	}
	return c, true
}
