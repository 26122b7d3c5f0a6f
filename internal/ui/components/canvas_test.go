package components

import "testing"

func TestCanvas_TextClipsToWidth(t *testing.T) {
	c := newCanvas(10, 2)
	c.text(2, 1, "abcdefgh", 4, 0)

	want := "          \n  abcd    "
	if got := c.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestCanvas_WideRunes(t *testing.T) {
	c := newCanvas(6, 1)
	c.text(0, 0, "日本", 6, 0)
	if got := c.String(); got != "日本  " {
		t.Fatalf("got %q", got)
	}

	// overwriting the tail of a wide rune blanks its head
	c.put(1, 0, 'x', 0)
	if got := c.String(); got != " x本  " {
		t.Errorf("got %q", got)
	}
}

func TestCanvas_OutOfBounds(t *testing.T) {
	c := newCanvas(3, 1)
	c.put(-1, 0, 'a', 0)
	c.put(3, 0, 'b', 0)
	c.text(-2, 0, "wxyz", 10, 0)

	if got := c.String(); got != "yz " {
		t.Errorf("got %q", got)
	}
}

func TestTruncateCells(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abcdef", 10, "abcdef"},
		{"abcdef", 4, "abc…"},
		{"abcdef", 1, "…"},
		{"abcdef", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateCells(tt.in, tt.width); got != tt.want {
			t.Errorf("truncateCells(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
