package buffer

import "testing"

func TestBuffer_LastChange_InitialAndNoOp(t *testing.T) {
	b := New("a", Options{})

	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no initial change")
	}

	b.DeleteBackward() // no-op at BOF
	if _, ok := b.LastChange(); ok {
		t.Fatalf("expected no change after no-op mutation")
	}
}

func TestBuffer_Change_InsertTextShape(t *testing.T) {
	b := New("ab", Options{})
	b.SetCursor(Pos{Row: 0, Col: 1})
	v := b.Version()

	b.InsertText("X")

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if got, want := ch.Source, ChangeSourceLocal; got != want {
		t.Fatalf("source=%v, want %v", got, want)
	}
	if got, want := ch.VersionBefore, v; got != want {
		t.Fatalf("version before=%d, want %d", got, want)
	}
	if got, want := ch.VersionAfter, v+1; got != want {
		t.Fatalf("version after=%d, want %d", got, want)
	}
	if got, want := ch.CursorAfter, (Pos{Row: 0, Col: 2}); got != want {
		t.Fatalf("cursor after=%v, want %v", got, want)
	}
	if got, want := len(ch.AppliedEdits), 1; got != want {
		t.Fatalf("applied edits=%d, want %d", got, want)
	}
	e := ch.AppliedEdits[0]
	if e.InsertText != "X" || e.DeletedText != "" {
		t.Fatalf("applied edit=%+v", e)
	}
}

func TestBuffer_Change_ApplyIsRemote(t *testing.T) {
	b := New("old", Options{})
	b.Apply(TextEdit{Range: b.FullRange(), Text: "new"})

	ch, ok := b.LastChange()
	if !ok {
		t.Fatalf("expected last change")
	}
	if ch.Source != ChangeSourceRemote || ch.IsFlush {
		t.Fatalf("change=%+v, want remote non-flush", ch)
	}
	if got := ch.AppliedEdits[0].DeletedText; got != "old" {
		t.Fatalf("deleted=%q, want %q", got, "old")
	}
}

func TestBuffer_Change_UndoFlag(t *testing.T) {
	b := New("", Options{})
	b.InsertText("a")
	b.Undo()

	ch, _ := b.LastChange()
	if !ch.IsUndo || ch.IsRedo {
		t.Fatalf("change=%+v, want undo", ch)
	}
}
