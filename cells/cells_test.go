package cells

import "testing"

func TestWidthASCII(t *testing.T) {
	if w := Width("Hello World"); w != 11 {
		t.Errorf("expected width 11, is %d", w)
	}
	if w := Width(""); w != 0 {
		t.Errorf("expected empty string to have width 0, is %d", w)
	}
}

func TestWidthUnicode(t *testing.T) {
	if w := Width("Grüße"); w != 5 {
		t.Errorf("expected 'Grüße' to occupy 5 cells, is %d", w)
	}
	if w := Width("é"); w != 1 {
		t.Errorf("expected combining sequence to occupy 1 cell, is %d", w)
	}
}

func TestSplit(t *testing.T) {
	for i, tc := range []struct {
		s          string
		n          int
		head, tail string
	}{
		{"hello", 3, "hel", "lo"},
		{"hello", 5, "hello", ""},
		{"hello", 9, "hello", ""},
		{"hello", 0, "", "hello"},
		{"Grüße", 3, "Grü", "ße"},
		{"aéb", 2, "aé", "b"},
	} {
		h, tl := Split(tc.s, tc.n)
		if h != tc.head || tl != tc.tail {
			t.Errorf("[%d] Split(%q,%d) = (%q,%q), expected (%q,%q)", i, tc.s, tc.n, h, tl, tc.head, tc.tail)
		}
	}
}

func TestPad(t *testing.T) {
	if p := Pad('.', 3); p != "..." {
		t.Errorf("expected '...', got %q", p)
	}
	if p := Pad('.', -1); p != "" {
		t.Errorf("expected empty pad, got %q", p)
	}
}
