package textarea

import (
	"strings"
	"testing"
)

func opsContaining(ops []string, substr string) int {
	n := 0
	for _, op := range ops {
		if strings.Contains(op, substr) {
			n++
		}
	}
	return n
}

func TestRenderHeaderScaledBold(t *testing.T) {
	// Cursor sits on line 0, so the header on line 1 renders formatted:
	// the marker is gone and the font is doubled for H1.
	ta := New("ed", boundsFor(300, 96), WithText("intro\n# Title"), WithMarkdown(true))
	dc := paint(ta)

	ops := dc.Ops()
	if opsContaining(ops, `"Title"`) == 0 {
		t.Errorf("header text not painted: %v", ops)
	}
	if opsContaining(ops, `"# Title"`) != 0 {
		t.Error("header marker leaked into formatted output")
	}
	if opsContaining(ops, "font  28.0") == 0 {
		t.Errorf("no scaled header font op: %v", ops)
	}
}

func TestRenderCursorLineStaysRaw(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("# Title\nbody"), WithMarkdown(true))
	ta.SetCursorPosition(0)
	dc := paint(ta)

	// The marker survives as source text, split into styled tokens.
	ops := dc.Ops()
	if opsContaining(ops, `"#"`) == 0 || opsContaining(ops, `" Title"`) == 0 {
		t.Errorf("cursor line must render raw markdown source: %v", ops)
	}
	if opsContaining(ops, "0.55 0.35 0.75") == 0 {
		t.Errorf("heading marker not painted in the markup color: %v", ops)
	}
	if opsContaining(ops, "0.15 0.25 0.55") == 0 {
		t.Errorf("heading text not painted in the heading color: %v", ops)
	}
}

func TestMarkdownLineTokens(t *testing.T) {
	cases := []struct {
		line string
		want []Token
	}{
		{"## Head", []Token{
			{TokenMarkup, "##"}, {TokenHeading, " Head"},
		}},
		{"- item", []Token{
			{TokenMarkup, "- "}, {TokenText, "item"},
		}},
		{"a `b` c", []Token{
			{TokenText, "a "}, {TokenMarkup, "`"}, {TokenCode, "b"},
			{TokenMarkup, "`"}, {TokenText, " c"},
		}},
		{"**bold** end", []Token{
			{TokenMarkup, "**"}, {TokenText, "bold"}, {TokenMarkup, "**"},
			{TokenText, " end"},
		}},
		{"[go](https://go.dev)", []Token{
			{TokenMarkup, "["}, {TokenLink, "go"}, {TokenMarkup, "]"},
			{TokenMarkup, "("}, {TokenLink, "https://go.dev"}, {TokenMarkup, ")"},
		}},
		{"> quoted", []Token{
			{TokenMarkup, "> "}, {TokenText, "quoted"},
		}},
		{"#not a heading", []Token{
			{TokenText, "#not a heading"},
		}},
	}
	for _, tc := range cases {
		got := markdownLineTokens(tc.line)
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.line, got, tc.want)
			continue
		}
		joined := ""
		for i, tok := range got {
			if tok != tc.want[i] {
				t.Errorf("%q token %d: got %v, want %v", tc.line, i, tok, tc.want[i])
			}
			joined += tok.Text
		}
		if joined != tc.line {
			t.Errorf("%q: tokens do not partition the line: %q", tc.line, joined)
		}
	}
}

func TestRenderBulletAndTaskMarkers(t *testing.T) {
	ta := New("ed", boundsFor(300, 96),
		WithText("x\n- item\n- [x] done\n3. third"), WithMarkdown(true))
	dc := paint(ta)

	ops := dc.Ops()
	for _, marker := range []string{`"•"`, `"☑"`, `"3."`} {
		if opsContaining(ops, marker) == 0 {
			t.Errorf("marker %s not painted: %v", marker, ops)
		}
	}
}

func TestRenderCodeBlockUsesMonoFace(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("x\n```\ncode here\n```"), WithMarkdown(true))
	dc := paint(ta)

	if opsContaining(dc.Ops(), `"code here"`) == 0 {
		t.Errorf("code content not painted: %v", dc.Ops())
	}
}

func TestRenderGutterLineNumbers(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("a\nb\nc"), WithLineNumbers(true))
	dc := paint(ta)

	ops := dc.Ops()
	for _, num := range []string{`"1"`, `"2"`, `"3"`} {
		if opsContaining(ops, num) == 0 {
			t.Errorf("line number %s missing: %v", num, ops)
		}
	}
}

func TestRenderWrappedLineNumbersOnce(t *testing.T) {
	// A wrapped logical line gets its number on the first segment only.
	ta := New("ed", boundsFor(108, 96),
		WithText("the quick brown fox"), WithWrap(true), WithLineNumbers(true))
	dc := paint(ta)

	if got := opsContaining(dc.Ops(), `"1"`); got != 1 {
		t.Errorf("line number painted %d times, want 1", got)
	}
}

func TestRenderCaretOnlyWhenFocused(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("abc"))
	dc := paint(ta)
	blurred := dc.CountOps("fillRect")

	ta.SetFocused(true)
	dc = paint(ta)
	focused := dc.CountOps("fillRect")

	// Focus adds the caret and the current-line highlight.
	if focused != blurred+2 {
		t.Errorf("fillRect count blurred=%d focused=%d, want +2", blurred, focused)
	}
}

func TestRenderSelectionRects(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("hello\nworld"))
	paint(ta)
	ta.Select(3, 8) // spans the line break
	dc := paint(ta)

	// One rectangle per display line touched by the selection.
	if got := opsContaining(dc.Ops(), "0.3 0.5 0.9"); got != 2 {
		t.Errorf("selection rects = %d, want 2", got)
	}
}

func TestRenderSearchHighlights(t *testing.T) {
	ta := New("ed", boundsFor(300, 96), WithText("ab ab"))
	ta.Find("ab", true)
	dc := paint(ta)

	if got := opsContaining(dc.Ops(), "0.85 0.2"); got != 2 {
		t.Errorf("search rects = %d, want 2", got)
	}
}

func TestRenderBalanced(t *testing.T) {
	ta := New("ed", boundsFor(300, 96),
		WithText("# h\n> q\n- l\n```\nc\n```\n| a |\n| - |\n| b |"),
		WithMarkdown(true), WithLineNumbers(true))
	dc := paint(ta)
	if !dc.Balanced() {
		t.Error("render must balance push/pop state")
	}
}
