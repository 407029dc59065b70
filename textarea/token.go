package textarea

import (
	"strings"
	"unicode"
)

// TokenType classifies a highlight token.
type TokenType int

const (
	TokenText TokenType = iota
	TokenKeyword
	TokenString
	TokenComment
	TokenNumber
	TokenOperator
	TokenIdent
	TokenMarkup  // markdown structural markers: #, *, `, [, ], >
	TokenHeading // markdown heading text after its marker run
	TokenCode    // markdown inline code span content
	TokenLink    // markdown link text and target
)

// Token is one highlight span. The tokens of a line partition its
// text exactly.
type Token struct {
	Type TokenType
	Text string
}

// Tokenizer turns one logical line into an ordered token sequence.
// State is per-line; no cross-line continuation is carried.
type Tokenizer interface {
	Tokenize(line, language string) []Token
}

// languageAliases maps names and file extensions to canonical
// language identifiers.
var languageAliases = map[string]string{
	"go":     "go",
	".go":    "go",
	"c":      "c",
	".c":     "c",
	".h":     "c",
	"cpp":    "cpp",
	"c++":    "cpp",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	"python": "python",
	"py":     "python",
	".py":    "python",
	"js":     "javascript",
	".js":    "javascript",
	"javascript": "javascript",
	"rust":   "rust",
	".rs":    "rust",
	"shell":  "shell",
	"sh":     "shell",
	"bash":   "shell",
	".sh":    "shell",
	"json":   "json",
	".json":  "json",
	"md":     "markdown",
	".md":    "markdown",
	"markdown":  "markdown",
	".markdown": "markdown",
}

// LanguageByName resolves a language name or file extension to a
// canonical identifier. Unknown input returns "" (no highlighting).
func LanguageByName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if lang, ok := languageAliases[name]; ok {
		return lang
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		if lang, ok := languageAliases[name[i:]]; ok {
			return lang
		}
	}
	return ""
}

// keywords per canonical language.
var languageKeywords = map[string]map[string]bool{
	"go": wordSet("break case chan const continue default defer else fallthrough for func go goto if import interface map package range return select struct switch type var nil true false"),
	"c":  wordSet("auto break case char const continue default do double else enum extern float for goto if int long register return short signed sizeof static struct switch typedef union unsigned void volatile while"),
	"cpp": wordSet("auto bool break case catch char class const continue default delete do double else enum explicit extern false float for friend goto if inline int long namespace new nullptr operator private protected public return short signed sizeof static struct switch template this throw true try typedef typename union unsigned using virtual void volatile while"),
	"python": wordSet("and as assert async await break class continue def del elif else except finally for from global if import in is lambda nonlocal not or pass raise return try while with yield None True False"),
	"javascript": wordSet("async await break case catch class const continue default delete do else export extends finally for function if import in instanceof let new null of return static super switch this throw true false try typeof undefined var void while yield"),
	"rust": wordSet("as async await break const continue crate dyn else enum extern false fn for if impl in let loop match mod move mut pub ref return self static struct super trait true type unsafe use where while"),
	"shell": wordSet("if then else elif fi for while until do done case esac function in select time local return exit export"),
	"json": wordSet("true false null"),
}

// lineCommentMarker per canonical language, "" for none.
var lineCommentMarker = map[string]string{
	"go":         "//",
	"c":          "//",
	"cpp":        "//",
	"javascript": "//",
	"rust":       "//",
	"python":     "#",
	"shell":      "#",
}

func wordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// defaultTokenizer is the built-in per-line scanner: line comments,
// single- and double-quoted strings, numbers, identifiers checked
// against the language keyword set, runs of everything else.
type defaultTokenizer struct{}

// Tokenize splits one line into a partition of typed tokens.
func (defaultTokenizer) Tokenize(line, language string) []Token {
	if line == "" {
		return nil
	}
	if language == "markdown" {
		return markdownLineTokens(line)
	}
	keywords := languageKeywords[language]
	comment := lineCommentMarker[language]

	var tokens []Token
	runes := []rune(line)
	i := 0
	flush := func(start int, typ TokenType) {
		if start < i {
			tokens = append(tokens, Token{Type: typ, Text: string(runes[start:i])})
		}
	}

	for i < len(runes) {
		r := runes[i]
		switch {
		case comment != "" && strings.HasPrefix(string(runes[i:]), comment):
			start := i
			i = len(runes)
			flush(start, TokenComment)

		case r == '"' || r == '\'' || r == '`':
			quote := r
			start := i
			i++
			for i < len(runes) {
				if runes[i] == '\\' && quote != '`' && i+1 < len(runes) {
					i += 2
					continue
				}
				if runes[i] == quote {
					i++
					break
				}
				i++
			}
			flush(start, TokenString)

		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' ||
				runes[i] == 'x' || runes[i] == 'X' || isHexDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			flush(start, TokenNumber)

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			word := string(runes[start:i])
			if keywords[word] {
				tokens = append(tokens, Token{Type: TokenKeyword, Text: word})
			} else {
				tokens = append(tokens, Token{Type: TokenIdent, Text: word})
			}

		case unicode.IsSpace(r):
			start := i
			for i < len(runes) && unicode.IsSpace(runes[i]) {
				i++
			}
			flush(start, TokenText)

		default:
			start := i
			for i < len(runes) && isOperatorRune(runes[i]) {
				i++
			}
			if start == i {
				i++
			}
			flush(start, TokenOperator)
		}
	}
	return tokens
}

func isHexDigit(r rune) bool {
	return (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("+-*/%=<>!&|^~?:;,.()[]{}", r)
}

// markdownLineTokens scans one line of raw markdown source. Markers
// keep their own token type so the line stays legible as source while
// still signaling its rendered role. The tokens partition the line
// exactly.
func markdownLineTokens(line string) []Token {
	if line == "" {
		return nil
	}
	runes := []rune(line)
	var tokens []Token
	emit := func(start, end int, typ TokenType) {
		if start < end {
			tokens = append(tokens, Token{Type: typ, Text: string(runes[start:end])})
		}
	}

	i := 0
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t') {
		i++
	}
	emit(0, i, TokenText)

	// Block quote markers, possibly nested.
	for i < len(runes) && runes[i] == '>' {
		start := i
		i++
		if i < len(runes) && runes[i] == ' ' {
			i++
		}
		emit(start, i, TokenMarkup)
	}

	// ATX heading: the marker run is markup, the remainder heading text.
	if i < len(runes) && runes[i] == '#' {
		start := i
		for i < len(runes) && runes[i] == '#' {
			i++
		}
		if i-start <= 6 && (i == len(runes) || runes[i] == ' ') {
			emit(start, i, TokenMarkup)
			emit(i, len(runes), TokenHeading)
			return tokens
		}
		i = start
	}

	// List bullets, unordered and ordered.
	if i < len(runes) {
		switch r := runes[i]; {
		case (r == '-' || r == '*' || r == '+') && i+1 < len(runes) && runes[i+1] == ' ':
			emit(i, i+2, TokenMarkup)
			i += 2
		case r >= '0' && r <= '9':
			j := i
			for j < len(runes) && runes[j] >= '0' && runes[j] <= '9' {
				j++
			}
			if j+1 < len(runes) && runes[j] == '.' && runes[j+1] == ' ' {
				emit(i, j+2, TokenMarkup)
				i = j + 2
			}
		}
	}

	// Inline spans: code, emphasis markers, links.
	plain := i
	for i < len(runes) {
		switch r := runes[i]; {
		case r == '`':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '`' {
					end = j
					break
				}
			}
			if end < 0 {
				i++
				continue
			}
			emit(plain, i, TokenText)
			emit(i, i+1, TokenMarkup)
			emit(i+1, end, TokenCode)
			emit(end, end+1, TokenMarkup)
			i = end + 1
			plain = i

		case r == '*' || r == '_':
			emit(plain, i, TokenText)
			start := i
			for i < len(runes) && runes[i] == r {
				i++
			}
			emit(start, i, TokenMarkup)
			plain = i

		case r == '[' || (r == '!' && i+1 < len(runes) && runes[i+1] == '['):
			open := i
			if r == '!' {
				open++
			}
			rb := -1
			for j := open + 1; j < len(runes); j++ {
				if runes[j] == ']' {
					rb = j
					break
				}
			}
			if rb < 0 {
				i++
				continue
			}
			emit(plain, i, TokenText)
			emit(i, open+1, TokenMarkup)
			emit(open+1, rb, TokenLink)
			emit(rb, rb+1, TokenMarkup)
			i = rb + 1
			if i < len(runes) && runes[i] == '(' {
				rp := -1
				for j := i + 1; j < len(runes); j++ {
					if runes[j] == ')' {
						rp = j
						break
					}
				}
				if rp >= 0 {
					emit(i, i+1, TokenMarkup)
					emit(i+1, rp, TokenLink)
					emit(rp, rp+1, TokenMarkup)
					i = rp + 1
				}
			}
			plain = i

		default:
			i++
		}
	}
	emit(plain, len(runes), TokenText)
	return tokens
}

// tokensForLine tokenizes one logical line, caching the result so
// wrapped segments of the same line reuse it.
func (t *TextArea) tokensForLine(line int) []Token {
	if t.language == "" && t.tokenizer == nil {
		return nil
	}
	if cached, ok := t.tokCache[line]; ok {
		return cached
	}
	tok := t.tokenizer
	if tok == nil {
		tok = defaultTokenizer{}
	}
	tokens := tok.Tokenize(t.doc.line(line), t.language)
	t.tokCache[line] = tokens
	return tokens
}
