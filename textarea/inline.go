package textarea

import "strings"

// inlineStyle is a bitmask of active inline markup.
type inlineStyle uint16

const (
	styleBold inlineStyle = 1 << iota
	styleItalic
	styleStrike
	styleHighlight
	styleCode
	styleSub
	styleSup
	styleMath
	styleLink
)

// inlineSpan is one styled run of text produced by the inline parser.
type inlineSpan struct {
	text   string
	style  inlineStyle
	target string // link destination when styleLink is set
}

// inline markers, longest first; the parser tries them in this order
// at every position so "***" wins over "**" wins over "*".
var inlineMarkers = []struct {
	marker string
	style  inlineStyle
}{
	{"***", styleBold | styleItalic},
	{"$$", styleMath},
	{"**", styleBold},
	{"__", styleBold},
	{"~~", styleStrike},
	{"==", styleHighlight},
	{"*", styleItalic},
	{"_", styleItalic},
	{"`", styleCode},
	{"$", styleMath},
	{"~", styleSub},
	{"^", styleSup},
}

// parseInline runs the left-to-right state machine over one line of
// markdown, producing styled spans. Backslash escapes any marker.
func parseInline(s string) []inlineSpan {
	var spans []inlineSpan
	var cur strings.Builder
	var style inlineStyle

	flush := func() {
		if cur.Len() > 0 {
			spans = append(spans, inlineSpan{text: cur.String(), style: style})
			cur.Reset()
		}
	}

	i := 0
	for i < len(s) {
		// Backslash escape: emit the next byte literally.
		if s[i] == '\\' && i+1 < len(s) {
			cur.WriteByte(s[i+1])
			i += 2
			continue
		}

		// Emoji shortcode :name:.
		if s[i] == ':' {
			if emoji, length := matchEmoji(s[i:]); length > 0 {
				cur.WriteString(emoji)
				i += length
				continue
			}
		}

		// Autolink for bare URLs.
		if link := matchAutolink(s[i:]); link != "" {
			flush()
			spans = append(spans, inlineSpan{text: link, style: style | styleLink, target: link})
			i += len(link)
			continue
		}

		// Markdown link [label](target).
		if s[i] == '[' {
			if label, target, length := matchLink(s[i:]); length > 0 {
				flush()
				spans = append(spans, inlineSpan{text: label, style: style | styleLink, target: target})
				i += length
				continue
			}
		}

		// Style markers, longest first. Inside inline code only the
		// closing backtick is special; inside math only the closing
		// dollar.
		matched := false
		for _, m := range inlineMarkers {
			if !strings.HasPrefix(s[i:], m.marker) {
				continue
			}
			if style&styleCode != 0 && m.style != styleCode {
				break
			}
			if style&styleMath != 0 && m.style != styleMath {
				break
			}
			flush()
			if m.style == styleMath && style&styleMath == 0 {
				// Substitute LaTeX inside the math run.
				if body, length, closed := mathRun(s[i:], m.marker); closed {
					spans = append(spans, inlineSpan{text: latexToUnicode(body), style: style | styleMath})
					i += length
					matched = true
					break
				}
			}
			style ^= m.style
			i += len(m.marker)
			matched = true
			break
		}
		if matched {
			continue
		}

		cur.WriteByte(s[i])
		i++
	}
	flush()
	return spans
}

// mathRun finds the closing marker of an inline ($...$) or block
// ($$...$$) math run.
func mathRun(s, marker string) (body string, length int, closed bool) {
	rest := s[len(marker):]
	end := strings.Index(rest, marker)
	if end < 0 {
		return "", 0, false
	}
	return rest[:end], len(marker)*2 + end, true
}

// matchLink recognizes "[label](target)" at the start of s and
// returns the consumed length.
func matchLink(s string) (label, target string, length int) {
	close1 := strings.Index(s, "]")
	if close1 < 0 || close1+1 >= len(s) || s[close1+1] != '(' {
		return "", "", 0
	}
	close2 := strings.Index(s[close1:], ")")
	if close2 < 0 {
		return "", "", 0
	}
	return s[1:close1], s[close1+2 : close1+close2], close1 + close2 + 1
}

// matchAutolink recognizes a bare http(s) URL at the start of s.
func matchAutolink(s string) string {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return ""
	}
	end := len(s)
	for i, r := range s {
		if r == ' ' || r == '\t' || r == ')' || r == '>' || r == '"' {
			end = i
			break
		}
	}
	// Trailing punctuation belongs to the sentence, not the URL.
	for end > 0 && strings.ContainsRune(".,;!?", rune(s[end-1])) {
		end--
	}
	return s[:end]
}

// matchEmoji recognizes ":name:" at the start of s.
func matchEmoji(s string) (emoji string, length int) {
	end := strings.Index(s[1:], ":")
	if end < 0 {
		return "", 0
	}
	name := s[1 : 1+end]
	if e, ok := emojiShortcodes[name]; ok {
		return e, end + 2
	}
	return "", 0
}

var emojiShortcodes = map[string]string{
	"smile":       "😄",
	"grin":        "😁",
	"laughing":    "😆",
	"wink":        "😉",
	"heart":       "❤️",
	"thumbsup":    "👍",
	"+1":          "👍",
	"thumbsdown":  "👎",
	"-1":          "👎",
	"fire":        "🔥",
	"star":        "⭐",
	"check":       "✔️",
	"x":           "❌",
	"warning":     "⚠️",
	"bulb":        "💡",
	"rocket":      "🚀",
	"tada":        "🎉",
	"eyes":        "👀",
	"thinking":    "🤔",
	"shrug":       "🤷",
	"wave":        "👋",
	"clap":        "👏",
	"100":         "💯",
	"memo":        "📝",
	"book":        "📖",
	"bug":         "🐛",
	"zap":         "⚡",
	"sparkles":    "✨",
	"construction": "🚧",
}

// latexSymbols maps LaTeX commands to their Unicode forms: the Greek
// alphabet and the common math operators.
var latexSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ",
	"epsilon": "ε", "zeta": "ζ", "eta": "η", "theta": "θ",
	"iota": "ι", "kappa": "κ", "lambda": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "pi": "π", "rho": "ρ",
	"sigma": "σ", "tau": "τ", "upsilon": "υ", "phi": "φ",
	"chi": "χ", "psi": "ψ", "omega": "ω",
	"Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Xi": "Ξ", "Pi": "Π", "Sigma": "Σ", "Upsilon": "Υ",
	"Phi": "Φ", "Psi": "Ψ", "Omega": "Ω",
	"times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"cdot": "·", "leq": "≤", "geq": "≥", "neq": "≠",
	"approx": "≈", "equiv": "≡", "infty": "∞", "partial": "∂",
	"nabla": "∇", "sum": "∑", "prod": "∏", "int": "∫",
	"sqrt": "√", "in": "∈", "notin": "∉", "subset": "⊂",
	"supset": "⊃", "cup": "∪", "cap": "∩", "emptyset": "∅",
	"forall": "∀", "exists": "∃", "neg": "¬", "land": "∧",
	"lor": "∨", "rightarrow": "→", "leftarrow": "←",
	"Rightarrow": "⇒", "Leftarrow": "⇐", "leftrightarrow": "↔",
	"propto": "∝", "perp": "⊥", "parallel": "∥", "angle": "∠",
	"degree": "°", "prime": "′", "ldots": "…", "cdots": "⋯",
}

// latexToUnicode substitutes \command sequences with their Unicode
// forms, longest command first at each backslash.
func latexToUnicode(s string) string {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '\\' {
			out.WriteByte(s[i])
			i++
			continue
		}
		j := i + 1
		for j < len(s) && isASCIILetter(s[j]) {
			j++
		}
		cmd := s[i+1 : j]
		if sym, ok := latexSymbols[cmd]; ok {
			out.WriteString(sym)
			i = j
			continue
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
