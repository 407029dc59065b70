package textarea

import (
	"strings"
	"testing"
)

func TestLanguageByName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"go", "go"},
		{"Go", "go"},
		{"main.go", "go"},
		{".go", "go"},
		{"py", "python"},
		{"script.py", "python"},
		{"c++", "cpp"},
		{"util.hpp", "cpp"},
		{"bash", "shell"},
		{"deploy.sh", "shell"},
		{"data.json", "json"},
		{"cobol", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := LanguageByName(c.in); got != c.want {
			t.Errorf("LanguageByName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTokenizePartitionsLine(t *testing.T) {
	// The token texts concatenated must reproduce the line exactly.
	lines := []string{
		`func main() { fmt.Println("hi \" there") }`,
		"x := 0xFF + 3.14 // trailing comment",
		"\tif a != b { return }",
		"no keywords here at all",
		"+++ ??? ;;;",
	}
	var tok defaultTokenizer
	for _, line := range lines {
		var b strings.Builder
		for _, tk := range tok.Tokenize(line, "go") {
			b.WriteString(tk.Text)
		}
		if b.String() != line {
			t.Errorf("tokens of %q reassemble to %q", line, b.String())
		}
	}
}

func TestTokenizeGoLine(t *testing.T) {
	var tok defaultTokenizer
	tokens := tok.Tokenize(`if x == "lit" { // note`, "go")

	want := []Token{
		{TokenKeyword, "if"},
		{TokenText, " "},
		{TokenIdent, "x"},
		{TokenText, " "},
		{TokenOperator, "=="},
		{TokenText, " "},
		{TokenString, `"lit"`},
		{TokenText, " "},
		{TokenOperator, "{"},
		{TokenText, " "},
		{TokenComment, "// note"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(tokens), tokens, len(want))
	}
	for i, w := range want {
		if tokens[i] != w {
			t.Errorf("token %d = %+v, want %+v", i, tokens[i], w)
		}
	}
}

func TestTokenizeNumbers(t *testing.T) {
	var tok defaultTokenizer
	tokens := tok.Tokenize("0xDEAD 42 3.14 1_000", "go")
	var numbers []string
	for _, tk := range tokens {
		if tk.Type == TokenNumber {
			numbers = append(numbers, tk.Text)
		}
	}
	want := []string{"0xDEAD", "42", "3.14", "1_000"}
	if len(numbers) != len(want) {
		t.Fatalf("numbers = %v, want %v", numbers, want)
	}
	for i, w := range want {
		if numbers[i] != w {
			t.Errorf("number %d = %q, want %q", i, numbers[i], w)
		}
	}
}

func TestTokenizePythonComment(t *testing.T) {
	var tok defaultTokenizer
	tokens := tok.Tokenize("x = 1  # comment", "python")
	last := tokens[len(tokens)-1]
	if last.Type != TokenComment || last.Text != "# comment" {
		t.Errorf("last token = %+v", last)
	}
	// Hash is no comment in Go.
	tokens = tok.Tokenize("x # y", "go")
	for _, tk := range tokens {
		if tk.Type == TokenComment {
			t.Errorf("unexpected comment token in go line: %+v", tk)
		}
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	var tok defaultTokenizer
	tokens := tok.Tokenize(`say "never closed`, "go")
	last := tokens[len(tokens)-1]
	if last.Type != TokenString || last.Text != `"never closed` {
		t.Errorf("last token = %+v", last)
	}
}

func TestTokenCachePerLine(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("func a() {}\nfunc b() {}"), WithLanguage("go"))
	first := ta.tokensForLine(0)
	again := ta.tokensForLine(0)
	if len(first) == 0 {
		t.Fatal("expected tokens")
	}
	if &first[0] != &again[0] {
		t.Error("second lookup must hit the cache")
	}
	ta.InsertText("x")
	if len(ta.tokCache) != 0 {
		t.Error("edits must drop the token cache")
	}
}

func TestNoLanguageNoTokens(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("plain text"))
	if got := ta.tokensForLine(0); got != nil {
		t.Errorf("tokens without language = %v, want nil", got)
	}
}

type upperTokenizer struct{}

func (upperTokenizer) Tokenize(line, language string) []Token {
	return []Token{{Type: TokenKeyword, Text: strings.ToUpper(line)}}
}

func TestCustomTokenizer(t *testing.T) {
	ta := New("ed", boundsFor(200, 100), WithText("abc"))
	ta.SetTokenizer(upperTokenizer{})
	tokens := ta.tokensForLine(0)
	if len(tokens) != 1 || tokens[0].Text != "ABC" {
		t.Errorf("tokens = %v", tokens)
	}
}
