package render

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if displayWidth(s) <= width {
		return s
	}
	var buf strings.Builder
	curWidth := 0
	for _, ch := range s {
		chWidth := runewidth.RuneWidth(ch)
		if chWidth == 0 {
			buf.WriteRune(ch)
			continue
		}
		if curWidth+chWidth > width {
			break
		}
		buf.WriteRune(ch)
		curWidth += chWidth
	}
	return buf.String()
}

func displayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Text renders a frame as plain lines, one per screen row. Rows end at
// their last painted column.
func (f Frame) Text() []string {
	if f.Width <= 0 {
		return nil
	}
	out := make([]string, 0, f.Height)

	top := f.HeaderLeft
	if f.HeaderRight != "" {
		pad := f.RightCol - displayWidth(top)
		top += strings.Repeat(" ", max(0, pad)) + f.HeaderRight
	}
	out = append(out, top)

	for _, row := range f.Rows {
		var b strings.Builder
		b.WriteString(row.Gutter)
		if row.Gutter == "" && row.Col > 0 && len(row.Cells) > 0 {
			b.WriteString(strings.Repeat(" ", row.Col))
		}
		for _, c := range row.Cells {
			b.WriteString(c.Text())
		}
		out = append(out, b.String())
	}
	return out
}
