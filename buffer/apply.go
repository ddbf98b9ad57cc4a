package buffer

// Apply applies a sequence of programmatic text edits in order and reports
// whether any of them changed the document. Each edit's range is interpreted
// against the buffer state at the time that edit is applied.
//
// Semantics:
// - Edit ranges are clamped into current document bounds.
// - Cursor and selection endpoints are carried across each edit; see
//   TextEdit.ForceMoveMarkers for endpoints touching the replaced range.
// - The edits join the open undo element, if any. Call PushUndoStop to close it.
func (b *Buffer) Apply(edits ...TextEdit) bool {
	if len(edits) == 0 {
		return false
	}

	prev := b.snapshot()
	change := b.beginChange(ChangeSourceRemote)

	cursor := b.cursor
	sel := b.sel
	anyChanged := false

	for _, e := range edits {
		r := NormalizeRange(ClampRange(e.Range, len(b.lines), b.lineLen))
		newEnd, applied, changed := b.replaceRange(r, e.Text)
		if !changed {
			continue
		}
		anyChanged = true
		cursor = shiftPos(cursor, r, newEnd, e.ForceMoveMarkers)
		if sel.active {
			sel.anchor = shiftPos(sel.anchor, r, newEnd, e.ForceMoveMarkers)
			sel.end = shiftPos(sel.end, r, newEnd, e.ForceMoveMarkers)
		}
		change.addAppliedEdit(applied)
	}

	if !anyChanged {
		return false
	}

	b.cursor = b.clampPos(cursor)
	b.sel = selectionState{}
	if sel.active && sel.anchor != sel.end {
		b.sel = selectionState{active: true, anchor: b.clampPos(sel.anchor), end: b.clampPos(sel.end)}
	}
	b.version++
	b.recordUndo(prev)
	b.commitChange(change)
	return true
}

// SetText replaces the whole document, resets cursor and selection, and
// discards undo/redo history.
func (b *Buffer) SetText(text string) {
	before := b.Text()
	change := b.beginChange(ChangeSourceRemote)
	change.flush = true

	b.lines = splitLines(text)
	b.cursor = Pos{}
	b.sel = selectionState{}
	b.hist = historyState{}
	b.version++

	if applied, ok := replacementAppliedEdit(before, text); ok {
		change.addAppliedEdit(applied)
	}
	b.commitChange(change)
}
