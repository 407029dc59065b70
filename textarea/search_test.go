package textarea

import "testing"

func TestSearchFindsAllMatches(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("cat catalog cat\ncattle"))
	if n := func() int { ta.Find("cat", true); return len(ta.SearchMatches()) }(); n != 4 {
		t.Fatalf("matches = %d, want 4", n)
	}
	want := [][2]int{{0, 3}, {4, 7}, {12, 15}, {16, 19}}
	got := ta.SearchMatches()
	for i, m := range want {
		if got[i] != m {
			t.Errorf("match %d = %v, want %v", i, got[i], m)
		}
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("Go go GO"))
	ta.Find("go", true)
	if n := len(ta.SearchMatches()); n != 1 {
		t.Errorf("case-sensitive matches = %d, want 1", n)
	}
	ta.Find("go", false)
	if n := len(ta.SearchMatches()); n != 3 {
		t.Errorf("case-insensitive matches = %d, want 3", n)
	}
}

func TestSearchUnicodeFolding(t *testing.T) {
	// Case folding expands ß to ss, so byte offsets shift between the
	// folded haystack and the original. The match range must still be
	// exact in original grapheme coordinates.
	ta := New("ed", boundsFor(200, 100), WithText("die straße hier"))
	ta.Find("STRASSE", false)
	matches := ta.SearchMatches()
	if len(matches) != 1 {
		t.Fatalf("matches = %d, want 1", len(matches))
	}
	if matches[0] != [2]int{4, 10} {
		t.Errorf("match = %v, want [4 10]", matches[0])
	}
	ta.Select(matches[0][0], matches[0][1])
	if ta.SelectedText() != "straße" {
		t.Errorf("selected %q", ta.SelectedText())
	}
}

func TestSearchMatchesDoNotOverlap(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("aaaa"))
	ta.Find("aa", true)
	got := ta.SearchMatches()
	if len(got) != 2 {
		t.Fatalf("matches = %v, want two", got)
	}
	if got[0] != [2]int{0, 2} || got[1] != [2]int{2, 4} {
		t.Errorf("matches = %v", got)
	}
}

func TestFindNextWraps(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("ab x ab y ab"))
	ta.SetCursorPosition(0)
	ta.Find("ab", true)

	// The match at the cursor itself does not count; the
	// fourth call wraps to the document start.
	starts := []int{5, 10, 0, 5}
	for i, want := range starts {
		if !ta.FindNext() {
			t.Fatalf("FindNext %d returned false", i)
		}
		start, end, ok := ta.Selection()
		if !ok || start != want || end != want+2 {
			t.Fatalf("FindNext %d selected (%d, %d, %v), want start %d", i, start, end, ok, want)
		}
	}
}

func TestFindPreviousWraps(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("ab x ab y ab"))
	ta.SetCursorPosition(7) // between second and third match
	ta.Find("ab", true)

	if !ta.FindPrevious() {
		t.Fatal("FindPrevious returned false")
	}
	if start, _, _ := ta.Selection(); start != 5 {
		t.Errorf("first FindPrevious start = %d, want 5", start)
	}
	if !ta.FindPrevious() {
		t.Fatal("second FindPrevious returned false")
	}
	if start, _, _ := ta.Selection(); start != 0 {
		t.Errorf("second FindPrevious start = %d, want 0", start)
	}
	if !ta.FindPrevious() {
		t.Fatal("third FindPrevious returned false")
	}
	if start, _, _ := ta.Selection(); start != 10 {
		t.Errorf("wrapped FindPrevious start = %d, want 10", start)
	}
}

func TestFindNextNoMatches(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("hello"))
	ta.Find("zzz", true)
	if ta.FindNext() || ta.FindPrevious() {
		t.Error("no-match search must report false")
	}
}

func TestHighlightMatchesCount(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("x y x"))
	ta.Find("x", true)
	if n := ta.HighlightMatches(); n != 2 {
		t.Errorf("HighlightMatches = %d, want 2", n)
	}
	ta.ClearSearch()
	if len(ta.SearchMatches()) != 0 {
		t.Error("ClearSearch must drop matches")
	}
}

func TestEditRescansSearch(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("abc"))
	ta.Find("abc", true)
	if len(ta.SearchMatches()) != 1 {
		t.Fatal("expected one match before edit")
	}
	ta.SetCursorPosition(1)
	ta.InsertText("X")
	if len(ta.SearchMatches()) != 0 {
		t.Errorf("matches after edit = %v, want none", ta.SearchMatches())
	}
}
