package textarea

import (
	"github.com/ultracanvas/uc"
)

// Defaults for a freshly created text area.
const (
	DefaultTabWidth   = 4
	DefaultUndoLimit  = 100
	DefaultWheelLines = 3
)

// Option configures a TextArea at creation time.
type Option func(*TextArea)

// WithText sets the initial document content.
func WithText(text string) Option {
	return func(t *TextArea) { t.doc.setText(text) }
}

// WithWrap enables or disables word wrap.
func WithWrap(on bool) Option {
	return func(t *TextArea) { t.wrap = on }
}

// WithFont sets the text font.
func WithFont(f uc.FontFace) Option {
	return func(t *TextArea) { t.font = f }
}

// WithLineNumbers shows the logical-line-number gutter.
func WithLineNumbers(on bool) Option {
	return func(t *TextArea) { t.showLineNumbers = on }
}

// WithTabWidth sets how many spaces a Tab inserts.
func WithTabWidth(n int) Option {
	return func(t *TextArea) {
		if n > 0 {
			t.tabWidth = n
		}
	}
}

// WithLanguage selects the syntax-highlighting language by name or
// file extension.
func WithLanguage(lang string) Option {
	return func(t *TextArea) { t.language = LanguageByName(lang) }
}

// WithMarkdown enables the hybrid markdown render mode.
func WithMarkdown(on bool) Option {
	return func(t *TextArea) { t.markdown = on }
}

// WithReadOnly makes the content immutable through user input.
func WithReadOnly(on bool) Option {
	return func(t *TextArea) { t.readOnly = on }
}

// TextArea is a multi-line editor element.
type TextArea struct {
	uc.BaseElement

	doc *document

	// cursor is a grapheme offset into the document. selAnchor < 0
	// means no selection; selHead follows the cursor while selecting.
	cursor    int
	selAnchor int
	selHead   int

	// goalX preserves the preferred column across vertical movement.
	goalX int

	tabWidth   int
	wrap       bool
	readOnly   bool
	font       uc.FontFace
	wheelLines int

	showLineNumbers      bool
	highlightCurrentLine bool

	// Layout cache, rebuilt when metricsDirty.
	display      []segment
	metricsDirty bool
	layoutWidth  float64

	firstVisible int // first visible display line
	scrollX      float64
	visibleLines int

	undo      []snapshot
	redo      []snapshot
	undoLimit int

	language  string
	tokenizer Tokenizer
	tokCache  map[int][]Token

	markdown   bool
	md         *markdownState
	linkRects  []LinkRect
	OnLinkOpen func(target string)

	searchQuery   string
	searchCase    bool
	searchFrom    int
	searchMatches []matchRange

	// dc is the context of the last paint; mouse position mapping
	// measures through it.
	dc        uc.DrawContext
	clipboard uc.Clipboard

	dragging bool

	// OnTextChanged fires after any edit that changed the content.
	OnTextChanged func(text string)
	// OnCursorMoved fires after the cursor position changed.
	OnCursorMoved func(pos int)
}

// snapshot captures the full editor state for undo/redo.
type snapshot struct {
	text      string
	cursor    int
	selAnchor int
	selHead   int
}

// matchRange is a search hit in grapheme offsets, half-open.
type matchRange struct {
	start, end int
}

// LinkRect is a clickable region recorded during a markdown paint.
type LinkRect struct {
	Bounds uc.RectF
	Target string
}

// New creates a text area with the given id and bounds.
func New(id string, bounds uc.Rect, opts ...Option) *TextArea {
	t := &TextArea{
		BaseElement:          *uc.NewBaseElement(id, bounds),
		doc:                  newDocument(""),
		selAnchor:            -1,
		selHead:              -1,
		goalX:                -1,
		tabWidth:             DefaultTabWidth,
		wheelLines:           DefaultWheelLines,
		undoLimit:            DefaultUndoLimit,
		font:                 uc.DefaultFont(),
		highlightCurrentLine: true,
		metricsDirty:         true,
		tokCache:             make(map[int][]Token),
	}
	t.SetFocusable(true)
	t.SetCursor(uc.CursorText)
	for _, opt := range opts {
		opt(t)
	}
	t.cursor = t.doc.clampPosition(t.cursor)
	return t
}

// Text returns the document content.
func (t *TextArea) Text() string { return t.doc.text() }

// SetText replaces the document, clearing selection and history.
func (t *TextArea) SetText(text string) {
	t.doc.setText(text)
	t.cursor = t.doc.clampPosition(t.cursor)
	t.clearSelection()
	t.undo = nil
	t.redo = nil
	t.invalidate()
	t.emitTextChanged()
}

// GraphemeCount returns the total grapheme count, line breaks
// included.
func (t *TextArea) GraphemeCount() int { return t.doc.graphemes() }

// LineCount returns the number of logical lines.
func (t *TextArea) LineCount() int { return t.doc.lineCount() }

// Line returns logical line i without its newline.
func (t *TextArea) Line(i int) string { return t.doc.line(i) }

// CursorPosition returns the cursor's grapheme offset.
func (t *TextArea) CursorPosition() int { return t.cursor }

// SetCursorPosition moves the cursor, collapsing any selection.
func (t *TextArea) SetCursorPosition(p int) {
	t.cursor = t.doc.clampPosition(p)
	t.clearSelection()
	t.emitCursorMoved()
	t.RequestRedraw()
}

// CursorLineColumn returns the cursor as (line, column).
func (t *TextArea) CursorLineColumn() (int, int) {
	return t.doc.lineColumn(t.cursor)
}

// LineColumnFromPosition converts a grapheme offset to (line, col).
func (t *TextArea) LineColumnFromPosition(p int) (int, int) {
	return t.doc.lineColumn(p)
}

// PositionFromLineColumn converts (line, col) to a grapheme offset.
func (t *TextArea) PositionFromLineColumn(line, col int) int {
	return t.doc.position(line, col)
}

// Selection returns the normalized selection range, ok false when no
// selection is active or it is empty.
func (t *TextArea) Selection() (start, end int, ok bool) {
	if t.selAnchor < 0 || t.selHead < 0 || t.selAnchor == t.selHead {
		return 0, 0, false
	}
	if t.selAnchor < t.selHead {
		return t.selAnchor, t.selHead, true
	}
	return t.selHead, t.selAnchor, true
}

// SelectedText returns the selected text, "" without a selection.
func (t *TextArea) SelectedText() string {
	start, end, ok := t.Selection()
	if !ok {
		return ""
	}
	flat := t.doc.text()
	return graphemeSlice(flat, start, end)
}

// Select sets the selection range and moves the cursor to its head.
func (t *TextArea) Select(anchor, head int) {
	t.selAnchor = t.doc.clampPosition(anchor)
	t.selHead = t.doc.clampPosition(head)
	t.cursor = t.selHead
	t.emitCursorMoved()
	t.RequestRedraw()
}

// SelectAll selects the whole document.
func (t *TextArea) SelectAll() {
	t.Select(0, t.doc.graphemes())
}

// clearSelection drops the selection without moving the cursor.
func (t *TextArea) clearSelection() {
	t.selAnchor = -1
	t.selHead = -1
}

// extendSelection moves the head to the cursor, planting the anchor
// at from if no selection is active.
func (t *TextArea) extendSelection(from int) {
	if t.selAnchor < 0 {
		t.selAnchor = from
	}
	t.selHead = t.cursor
}

// ReadOnly reports whether user edits are rejected.
func (t *TextArea) ReadOnly() bool { return t.readOnly }

// SetReadOnly toggles edit protection.
func (t *TextArea) SetReadOnly(on bool) { t.readOnly = on }

// Wrap reports whether word wrap is on.
func (t *TextArea) Wrap() bool { return t.wrap }

// SetWrap toggles word wrap.
func (t *TextArea) SetWrap(on bool) {
	if t.wrap == on {
		return
	}
	t.wrap = on
	t.invalidate()
}

// Font returns the text font.
func (t *TextArea) Font() uc.FontFace { return t.font }

// SetFont changes the text font.
func (t *TextArea) SetFont(f uc.FontFace) {
	t.font = f
	t.invalidate()
}

// SetLanguage selects the highlighting language by name or extension.
func (t *TextArea) SetLanguage(lang string) {
	t.language = LanguageByName(lang)
	t.clearTokenCache()
	t.RequestRedraw()
}

// Language returns the active highlighting language, "" for none.
func (t *TextArea) Language() string { return t.language }

// SetTokenizer installs a custom tokenizer. Nil restores the
// built-in one.
func (t *TextArea) SetTokenizer(tok Tokenizer) {
	t.tokenizer = tok
	t.clearTokenCache()
	t.RequestRedraw()
}

// SetMarkdown toggles the hybrid markdown render mode.
func (t *TextArea) SetMarkdown(on bool) {
	if t.markdown == on {
		return
	}
	t.markdown = on
	t.md = nil
	t.RequestRedraw()
}

// LinkRects returns the clickable regions recorded by the last
// markdown paint.
func (t *TextArea) LinkRects() []LinkRect { return t.linkRects }

// SetClipboard overrides the clipboard used for cut/copy/paste. The
// default resolves the application clipboard lazily.
func (t *TextArea) SetClipboard(cb uc.Clipboard) { t.clipboard = cb }

// invalidate marks layout and highlight caches stale.
func (t *TextArea) invalidate() {
	t.metricsDirty = true
	t.clearTokenCache()
	t.md = nil
	t.searchMatches = nil
	if t.searchQuery != "" {
		t.rescanMatches()
	}
	t.RequestRedraw()
}

func (t *TextArea) clearTokenCache() {
	clear(t.tokCache)
}

func (t *TextArea) emitTextChanged() {
	if t.OnTextChanged != nil {
		t.OnTextChanged(t.doc.text())
	}
}

func (t *TextArea) emitCursorMoved() {
	if t.OnCursorMoved != nil {
		t.OnCursorMoved(t.cursor)
	}
}

// resolveClipboard returns the configured clipboard, falling back to
// the application's platform clipboard.
func (t *TextArea) resolveClipboard() uc.Clipboard {
	if t.clipboard != nil {
		return t.clipboard
	}
	if app, err := uc.Current(); err == nil {
		return app.Clipboard()
	}
	return nil
}
