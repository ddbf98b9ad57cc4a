package buffer

import "testing"

func TestBuffer_Apply_AppliesSequentiallyAgainstEvolvingState(t *testing.T) {
	b := New("hello", Options{})
	v := b.Version()

	ok := b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 0}, End: Pos{Row: 0, Col: 0}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{Row: 0, Col: 1}, End: Pos{Row: 0, Col: 2}}, Text: ""},
	)
	if !ok {
		t.Fatalf("expected Apply=true")
	}
	if got, want := b.Text(), "Xello"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got := b.Version(); got != v+1 {
		t.Fatalf("version=%d, want %d", got, v+1)
	}
}

func TestBuffer_Apply_ClampsOutOfBoundsRanges(t *testing.T) {
	b := New("ab\ncd", Options{})

	b.Apply(
		TextEdit{Range: Range{Start: Pos{Row: 999, Col: 999}, End: Pos{Row: 999, Col: 999}}, Text: "X"},
		TextEdit{Range: Range{Start: Pos{Row: -5, Col: -9}, End: Pos{Row: -5, Col: -9}}, Text: "Y"},
	)

	if got, want := b.Text(), "Yab\ncdX"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
}

func TestBuffer_Apply_NoEffectiveEdit(t *testing.T) {
	b := New("same", Options{})
	v := b.Version()

	if b.Apply(TextEdit{Range: b.FullRange(), Text: "same"}) {
		t.Fatalf("expected Apply=false for identical replacement")
	}
	if b.Apply() {
		t.Fatalf("expected Apply=false for no edits")
	}
	if got := b.Version(); got != v {
		t.Fatalf("version=%d, want %d", got, v)
	}
	if b.CanUndo() {
		t.Fatalf("expected no undo element")
	}
}

func TestBuffer_Apply_CursorKeptBeforeEdit(t *testing.T) {
	b := New("abc def", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})

	b.Apply(TextEdit{Range: Range{Start: Pos{Row: 0, Col: 4}, End: Pos{Row: 0, Col: 7}}, Text: "xyz\nw"})
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 1}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Apply_FullRangeForceMoveMarkers(t *testing.T) {
	b := New("print(1)", Options{})
	b.SetCursor(Pos{Row: 0, Col: 3})

	b.Apply(TextEdit{Range: b.FullRange(), Text: "print(2)\n", ForceMoveMarkers: true})
	if got, want := b.Text(), "print(2)\n"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if got, want := b.Cursor(), (Pos{Row: 1, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Apply_FullRangeWithoutForceCollapsesToStart(t *testing.T) {
	b := New("print(1)", Options{})
	b.SetCursor(Pos{Row: 0, Col: 3})

	b.Apply(TextEdit{Range: b.FullRange(), Text: "x"})
	if got, want := b.Cursor(), (Pos{Row: 0, Col: 0}); got != want {
		t.Fatalf("cursor=%v, want %v", got, want)
	}
}

func TestBuffer_Apply_SelectionCarried(t *testing.T) {
	b := New("one two", Options{})
	b.SetSelection(Range{Start: Pos{Row: 0, Col: 4}, End: Pos{Row: 0, Col: 7}})

	b.Apply(TextEdit{Range: Range{Start: Pos{}, End: Pos{}}, Text: ">> "})
	r, ok := b.Selection()
	if !ok {
		t.Fatalf("expected selection kept")
	}
	want := Range{Start: Pos{Row: 0, Col: 7}, End: Pos{Row: 0, Col: 10}}
	if r != want {
		t.Fatalf("selection=%v, want %v", r, want)
	}
	if got := b.TextInRange(r); got != "two" {
		t.Fatalf("selected text=%q, want %q", got, "two")
	}
}

func TestBuffer_SetText_FlushesHistory(t *testing.T) {
	b := New("a", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	b.InsertText("b")
	if !b.CanUndo() {
		t.Fatalf("expected undo element before flush")
	}

	b.SetText("x\ny")
	if got, want := b.Text(), "x\ny"; got != want {
		t.Fatalf("text=%q, want %q", got, want)
	}
	if b.CanUndo() || b.CanRedo() {
		t.Fatalf("expected history cleared")
	}
	if got := b.Cursor(); got != (Pos{}) {
		t.Fatalf("cursor=%v, want origin", got)
	}

	ch, ok := b.LastChange()
	if !ok || !ch.IsFlush || ch.Source != ChangeSourceRemote {
		t.Fatalf("last change=%+v, want remote flush", ch)
	}
}
