package textarea

import (
	"strconv"
	"strings"

	"github.com/ultracanvas/uc"
)

// markdownState is the document-wide pre-scan the hybrid renderer
// depends on: fenced/indented code-block tracking and table row
// classification. It is rebuilt lazily after every edit.
type markdownState struct {
	// Parallel arrays, one entry per logical line.
	insideCode []bool
	delimiter  []bool
	codeLang   []string

	rowKind  []tableRowKind
	// aligns holds the column alignment of the table a row belongs
	// to, keyed by the separator row's line index applied to all rows
	// of that table.
	aligns map[int][]uc.Alignment
}

type tableRowKind int

const (
	rowNone tableRowKind = iota
	rowHeader
	rowSeparator
	rowData
)

// ensureMarkdownState rebuilds the pre-scan if stale.
func (t *TextArea) ensureMarkdownState() *markdownState {
	if t.md != nil {
		return t.md
	}
	t.md = buildMarkdownState(t.doc)
	return t.md
}

// buildMarkdownState runs the one-pass scans over the whole document.
func buildMarkdownState(d *document) *markdownState {
	n := d.lineCount()
	st := &markdownState{
		insideCode: make([]bool, n),
		delimiter:  make([]bool, n),
		codeLang:   make([]string, n),
		rowKind:    make([]tableRowKind, n),
		aligns:     make(map[int][]uc.Alignment),
	}

	// Code blocks: fenced (``` or ~~~) and indented (>= 4 spaces).
	inFence := false
	fenceLang := ""
	for i := 0; i < n; i++ {
		line := d.line(i)
		trimmed := strings.TrimLeft(line, " ")
		isFence := strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~")
		switch {
		case isFence && !inFence:
			inFence = true
			fenceLang = LanguageByName(strings.TrimSpace(trimmed[3:]))
			st.delimiter[i] = true
		case isFence && inFence:
			inFence = false
			fenceLang = ""
			st.delimiter[i] = true
		case inFence:
			st.insideCode[i] = true
			st.codeLang[i] = fenceLang
		case strings.HasPrefix(line, "    ") && strings.TrimSpace(line) != "":
			st.insideCode[i] = true
		}
	}

	// Tables: a pipe row immediately followed by a separator row
	// starts a table; data rows run until the first non-pipe line.
	for i := 0; i < n; i++ {
		if st.insideCode[i] || st.rowKind[i] != rowNone {
			continue
		}
		if !isPipeRow(d.line(i)) || i+1 >= n {
			continue
		}
		aligns, ok := parseSeparatorRow(d.line(i + 1))
		if !ok {
			continue
		}
		st.rowKind[i] = rowHeader
		st.rowKind[i+1] = rowSeparator
		st.aligns[i] = aligns
		j := i + 2
		for j < n && isPipeRow(d.line(j)) && !st.insideCode[j] {
			st.rowKind[j] = rowData
			st.aligns[j] = aligns
			j++
		}
		st.aligns[i+1] = aligns
	}
	return st
}

// isPipeRow reports whether a line looks like a table row.
func isPipeRow(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.Contains(trimmed, "|") && trimmed != ""
}

// parseSeparatorRow parses "| --- | :---: |" style rows, reading the
// column alignment from the colons. Returns ok false when the row is
// not a separator.
func parseSeparatorRow(line string) ([]uc.Alignment, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.Contains(trimmed, "-") || !strings.Contains(trimmed, "|") {
		return nil, false
	}
	cells := splitTableRow(trimmed)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]uc.Alignment, len(cells))
	for i, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			return nil, false
		}
		core := strings.Trim(cell, ":")
		if core == "" || strings.Trim(core, "-") != "" {
			return nil, false
		}
		left := strings.HasPrefix(cell, ":")
		right := strings.HasSuffix(cell, ":")
		switch {
		case left && right:
			aligns[i] = uc.AlignCenter
		case right:
			aligns[i] = uc.AlignRight
		default:
			aligns[i] = uc.AlignLeft
		}
	}
	return aligns, true
}

// splitTableRow splits a pipe row into cells, dropping the outer
// empty cells produced by leading/trailing pipes.
func splitTableRow(line string) []string {
	cells := strings.Split(strings.TrimSpace(line), "|")
	if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// blockInfo is the per-line block classification the renderer
// switches on.
type blockInfo struct {
	headerLevel int // 1..6, 0 for none

	quoteDepth int
	content    string // text after block prefixes are stripped

	listBullet  string // "•" for unordered, "N." for ordered
	listIndent  int    // nesting depth from leading spaces
	taskBox     bool
	taskChecked bool
}

// classifyBlock parses the block-level shape of one line. Code block
// and table membership are decided by the pre-scan, not here.
func classifyBlock(line string) blockInfo {
	info := blockInfo{content: line}

	// Block quotes nest: strip "> " repeatedly.
	rest := line
	for {
		trimmed := strings.TrimLeft(rest, " ")
		if !strings.HasPrefix(trimmed, ">") {
			break
		}
		info.quoteDepth++
		rest = strings.TrimPrefix(trimmed, ">")
		rest = strings.TrimPrefix(rest, " ")
	}
	info.content = rest

	// Headers.
	trimmed := strings.TrimLeft(rest, " ")
	level := 0
	for level < len(trimmed) && level < 6 && trimmed[level] == '#' {
		level++
	}
	if level > 0 && level < len(trimmed) && trimmed[level] == ' ' {
		info.headerLevel = level
		info.content = strings.TrimSpace(trimmed[level+1:])
		return info
	}

	// Lists. Indent depth is leading spaces / 2.
	leading := len(rest) - len(trimmed)
	info.listIndent = leading / 2
	if len(trimmed) >= 2 && (trimmed[0] == '-' || trimmed[0] == '*' || trimmed[0] == '+') && trimmed[1] == ' ' {
		body := trimmed[2:]
		if box, checked, ok := parseTaskBox(body); ok {
			info.taskBox = true
			info.taskChecked = checked
			info.listBullet = "•"
			info.content = box
			return info
		}
		info.listBullet = "•"
		info.content = body
		return info
	}
	if num, body, ok := parseOrderedItem(trimmed); ok {
		info.listBullet = num + "."
		info.content = body
		return info
	}
	info.listIndent = 0
	return info
}

// parseTaskBox recognizes "[ ] text" and "[x] text" after a bullet.
func parseTaskBox(body string) (content string, checked, ok bool) {
	if len(body) >= 4 && body[0] == '[' && body[2] == ']' && body[3] == ' ' {
		switch body[1] {
		case ' ':
			return body[4:], false, true
		case 'x', 'X':
			return body[4:], true, true
		}
	}
	return "", false, false
}

// parseOrderedItem recognizes "12. text".
func parseOrderedItem(s string) (num, body string, ok bool) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 || i+1 >= len(s) || s[i] != '.' || s[i+1] != ' ' {
		return "", "", false
	}
	if _, err := strconv.Atoi(s[:i]); err != nil {
		return "", "", false
	}
	return s[:i], s[i+2:], true
}
