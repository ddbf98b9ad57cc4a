package buffer

import "testing"

func TestBuffer_New_TextRoundTrip(t *testing.T) {
	cases := []string{"", "a", "a\nb", "\n", "héllo\n世界\n"}
	for _, text := range cases {
		b := New(text, Options{})
		if got := b.Text(); got != text {
			t.Fatalf("Text()=%q, want %q", got, text)
		}
	}
}

func TestBuffer_LineAccessors(t *testing.T) {
	b := New("ab\nc世\n", Options{})
	if got, want := b.LineCount(), 3; got != want {
		t.Fatalf("line count=%d, want %d", got, want)
	}
	if got, want := b.Line(1), "c世"; got != want {
		t.Fatalf("line 1=%q, want %q", got, want)
	}
	if got, want := b.LineLen(1), 2; got != want {
		t.Fatalf("line len=%d, want %d", got, want)
	}
	if got := b.Line(9); got != "" {
		t.Fatalf("out of range line=%q, want empty", got)
	}
	want := Range{Start: Pos{}, End: Pos{Row: 2, Col: 0}}
	if got := b.FullRange(); got != want {
		t.Fatalf("full range=%v, want %v", got, want)
	}
}

func TestBuffer_SetCursor_ClampsAndVersions(t *testing.T) {
	b := New("a\nbc", Options{})
	if b.Version() != 0 {
		t.Fatalf("expected version 0, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: 999, Col: 999})
	if got := b.Cursor(); got != (Pos{Row: 1, Col: 2}) {
		t.Fatalf("cursor=%v, want (1,2)", got)
	}
	if b.Version() != 1 {
		t.Fatalf("expected version 1, got %d", b.Version())
	}

	b.SetCursor(Pos{Row: 1, Col: 2})
	if b.Version() != 1 {
		t.Fatalf("expected version unchanged, got %d", b.Version())
	}
}

func TestBuffer_SetSelection_NormalizesAndClamps(t *testing.T) {
	b := New("a\nbc", Options{})

	b.SetSelection(Range{
		Start: Pos{Row: 1, Col: 99},
		End:   Pos{Row: 0, Col: -1},
	})

	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection active")
	}
	want := Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 1, Col: 2}}
	if r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}

	v := b.Version()
	b.ClearSelection()
	if _, ok := b.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
	if b.Version() != v+1 {
		t.Fatalf("version=%d, want %d", b.Version(), v+1)
	}
}

func TestBuffer_TextInRange(t *testing.T) {
	b := New("hello\nworld", Options{})
	got := b.TextInRange(Range{Start: Pos{Row: 0, Col: 3}, End: Pos{Row: 1, Col: 2}})
	if want := "lo\nwo"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}
