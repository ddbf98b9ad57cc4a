package buffer

// Pos points into the logical document by (row, col).
// Row and Col are 0-based; Col counts grapheme clusters.
type Pos struct {
	Row int
	Col int
}

// Range is a half-open selection in document coordinates: [Start, End).
// Start <= End in document order.
type Range struct {
	Start Pos
	End   Pos
}

// TextEdit replaces the text in Range with Text (which may contain '\n').
//
// When ForceMoveMarkers is set, cursor and selection endpoints that touch the
// replaced range move to the end of the inserted text.
type TextEdit struct {
	Range            Range
	Text             string
	ForceMoveMarkers bool
}

func ComparePos(a, b Pos) int {
	if a.Row < b.Row {
		return -1
	}
	if a.Row > b.Row {
		return 1
	}
	if a.Col < b.Col {
		return -1
	}
	if a.Col > b.Col {
		return 1
	}
	return 0
}

func NormalizeRange(r Range) Range {
	if ComparePos(r.Start, r.End) <= 0 {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// ClampPos clamps p into document bounds described by rowCount and lineLen.
//
// The returned Pos always satisfies:
// - 0 <= Row < rowCount (with rowCount treated as at least 1)
// - 0 <= Col <= lineLen(Row)
func ClampPos(p Pos, rowCount int, lineLen func(row int) int) Pos {
	if rowCount <= 0 {
		rowCount = 1
	}

	row := clampInt(p.Row, 0, rowCount-1)

	maxCol := 0
	if lineLen != nil {
		maxCol = lineLen(row)
		if maxCol < 0 {
			maxCol = 0
		}
	}
	col := clampInt(p.Col, 0, maxCol)

	return Pos{Row: row, Col: col}
}

func ClampRange(r Range, rowCount int, lineLen func(row int) int) Range {
	return Range{
		Start: ClampPos(r.Start, rowCount, lineLen),
		End:   ClampPos(r.End, rowCount, lineLen),
	}
}

// shiftPos maps p across a replacement of r whose inserted text now ends at
// newEnd. Positions inside r collapse to r.Start unless force is set or p sits
// exactly on a non-empty r.End.
func shiftPos(p Pos, r Range, newEnd Pos, force bool) Pos {
	switch {
	case ComparePos(p, r.Start) < 0:
		return p
	case ComparePos(p, r.End) > 0:
		if p.Row == r.End.Row {
			return Pos{Row: newEnd.Row, Col: newEnd.Col + (p.Col - r.End.Col)}
		}
		return Pos{Row: p.Row + (newEnd.Row - r.End.Row), Col: p.Col}
	case force:
		return newEnd
	case p == r.End && !r.IsEmpty():
		return newEnd
	default:
		return r.Start
	}
}
