package grapheme

import "testing"

func TestSplitAndCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + "\U0001F44D\U0001F3FD" + "b"
	got := Split(text)
	if len(got) != 4 {
		t.Fatalf("split len=%d, want %d", len(got), 4)
	}
	if got[1] != "é" {
		t.Fatalf("split[1]=%q, want %q", got[1], "é")
	}
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
	if j := Join(got); j != text {
		t.Fatalf("join=%q, want %q", j, text)
	}
}

func TestWidth_TabsAdvanceToStop(t *testing.T) {
	cases := []struct {
		col, tab, want int
	}{
		{col: 0, tab: 4, want: 4},
		{col: 1, tab: 4, want: 3},
		{col: 4, tab: 4, want: 4},
		{col: 3, tab: 0, want: 1},
	}
	for _, tc := range cases {
		if got := Width("\t", tc.col, tc.tab); got != tc.want {
			t.Fatalf("Width(tab, col=%d, tab=%d)=%d, want %d", tc.col, tc.tab, got, tc.want)
		}
	}
}

func TestWidth_WideRunes(t *testing.T) {
	if got := Width("a", 0, 4); got != 1 {
		t.Fatalf("ascii width=%d, want 1", got)
	}
	if got := Width("世", 0, 4); got != 2 {
		t.Fatalf("cjk width=%d, want 2", got)
	}
}

func TestClassification(t *testing.T) {
	if !IsSpace(" ") || IsSpace("a") || IsSpace("") {
		t.Fatalf("IsSpace classification mismatch")
	}
	if !IsWord("a") || !IsWord("_") || !IsWord("9") || IsWord(".") || IsWord("") {
		t.Fatalf("IsWord classification mismatch")
	}
}
