package textarea

import (
	"strings"

	"github.com/ultracanvas/uc"
)

// headerScales maps header level 1..6 to a font size multiplier.
var headerScales = [7]float64{0, 2.0, 1.6, 1.3, 1.15, 1.05, 1.0}

// renderMarkdownLine paints one display line as formatted markdown.
// The cursor's logical line never routes here; hybrid mode shows it
// raw with code highlighting instead.
func (t *TextArea) renderMarkdownLine(dc uc.DrawContext, md *markdownState, seg segment, x, y, lh, width float64) {
	line := seg.line

	// Code block content and fences use the monospace face.
	if md.insideCode[line] || md.delimiter[line] {
		dc.FillRect(uc.RectF{X: x, Y: y, W: width, H: lh}, ColorCodeBack)
		mono := t.font
		mono.Monospace = true
		dc.SetFont(mono)
		if md.delimiter[line] {
			dc.SetFillColor(ColorGutterText)
			dc.DrawText(t.segmentText(seg), x, y)
			dc.SetFont(t.font)
			return
		}
		lang := md.codeLang[line]
		if lang != "" {
			t.renderTokens(dc, seg, defaultTokenizer{}.Tokenize(t.doc.line(line), lang), x, y)
		} else {
			dc.SetFillColor(ColorText)
			dc.DrawText(t.segmentText(seg), x, y)
		}
		dc.SetFont(t.font)
		return
	}

	// Table rows render cell-by-cell with the parsed alignment.
	if md.rowKind[line] != rowNone {
		t.renderTableRow(dc, md, line, x, y, lh, width)
		return
	}

	info := classifyBlock(t.doc.line(line))
	indent := 0.0

	// Block quote bar and background per nesting level.
	if info.quoteDepth > 0 {
		dc.FillRect(uc.RectF{X: x, Y: y, W: width, H: lh}, ColorQuoteBack)
		for d := 0; d < info.quoteDepth; d++ {
			dc.FillRect(uc.RectF{X: x + float64(d)*8, Y: y, W: 3, H: lh}, ColorQuoteBar)
		}
		indent = float64(info.quoteDepth) * 12
	}

	// Headers: scaled bold, underline on H1/H2.
	if info.headerLevel > 0 {
		font := t.font
		font.Size = t.font.Size * headerScales[info.headerLevel]
		font.Weight = uc.WeightBold
		dc.SetFont(font)
		dc.SetFillColor(ColorText)
		dc.DrawText(info.content, x+indent, y)
		if info.headerLevel <= 2 {
			tw := dc.GetTextLineWidth(info.content)
			dc.FillRect(uc.RectF{X: x + indent, Y: y + lh - 2, W: tw, H: 1}, uc.Gray(0.7))
		}
		dc.SetFont(t.font)
		return
	}

	// List bullets, numbers, and task checkboxes.
	if info.listBullet != "" {
		indent += float64(info.listIndent) * 16
		dc.SetFont(t.font)
		marker := info.listBullet
		if info.taskBox {
			if info.taskChecked {
				marker = "☑"
			} else {
				marker = "☐"
			}
		}
		dc.SetFillColor(ColorText)
		dc.DrawText(marker, x+indent, y)
		indent += dc.GetTextLineWidth(marker) + 6
	}

	t.renderInlineSpans(dc, parseInline(info.content), x+indent, y, lh)
}

// renderTableRow paints one table row with per-column alignment.
func (t *TextArea) renderTableRow(dc uc.DrawContext, md *markdownState, line int, x, y, lh, width float64) {
	aligns := md.aligns[line]
	cells := splitTableRow(t.doc.line(line))
	cols := len(aligns)
	if cols == 0 {
		cols = len(cells)
	}
	if cols == 0 {
		return
	}
	colW := width / float64(cols)

	if md.rowKind[line] == rowSeparator {
		dc.FillRect(uc.RectF{X: x, Y: y + lh/2, W: width, H: 1}, uc.Gray(0.7))
		return
	}

	font := t.font
	if md.rowKind[line] == rowHeader {
		font.Weight = uc.WeightBold
	}
	dc.SetFont(font)
	dc.SetFillColor(ColorText)
	for i, cell := range cells {
		align := uc.AlignLeft
		if i < len(aligns) {
			align = aligns[i]
		}
		rect := uc.RectF{X: x + float64(i)*colW, Y: y, W: colW, H: lh}
		dc.DrawTextInRect(t.renderInlineText(cell), rect, align)
	}
	dc.SetFont(t.font)
}

// renderInlineText flattens inline markup to plain text, for contexts
// like table cells where per-span styling is dropped.
func (t *TextArea) renderInlineText(s string) string {
	var out strings.Builder
	for _, span := range parseInline(strings.TrimSpace(s)) {
		out.WriteString(span.text)
	}
	return out.String()
}

// renderInlineSpans paints a parsed inline run, switching fonts per
// style and recording link hit-rects.
func (t *TextArea) renderInlineSpans(dc uc.DrawContext, spans []inlineSpan, x, y, lh float64) {
	for _, span := range spans {
		font := t.font
		if span.style&styleBold != 0 {
			font.Weight = uc.WeightBold
		}
		if span.style&styleItalic != 0 {
			font.Slant = uc.SlantItalic
		}
		if span.style&(styleCode|styleMath) != 0 {
			font.Monospace = true
		}
		if span.style&(styleSub|styleSup) != 0 {
			font.Size = t.font.Size * 0.7
		}
		if span.style&styleStrike != 0 {
			font.Strikeout = true
		}
		if span.style&styleLink != 0 {
			font.Underline = true
		}
		dc.SetFont(font)

		tw := dc.GetTextLineWidth(span.text)
		if span.style&styleHighlight != 0 {
			dc.FillRect(uc.RectF{X: x, Y: y, W: tw, H: lh}, ColorHighlightBack)
		}
		if span.style&styleCode != 0 {
			dc.FillRect(uc.RectF{X: x, Y: y, W: tw, H: lh}, ColorCodeBack)
		}

		color := ColorText
		if span.style&styleLink != 0 {
			color = ColorLinkText
		}
		dc.SetFillColor(color)

		dy := 0.0
		if span.style&styleSup != 0 {
			dy = -lh * 0.2
		}
		if span.style&styleSub != 0 {
			dy = lh * 0.25
		}
		dc.DrawText(span.text, x, y+dy)

		if span.style&styleLink != 0 {
			t.linkRects = append(t.linkRects, LinkRect{
				Bounds: uc.RectF{X: x, Y: y, W: tw, H: lh},
				Target: span.target,
			})
		}
		x += tw
	}
	dc.SetFont(t.font)
}
