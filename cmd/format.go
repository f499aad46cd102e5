package cmd

import (
	"github.com/mattn/go-runewidth"
)

const ellipsis = "..."

// padToWidth fits text into a fixed number of display columns,
// padding with spaces or truncating with an ellipsis. CJK and other
// wide runes count as two columns. A width of 0 or less returns the
// text unchanged.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	if runewidth.StringWidth(text) <= width {
		return runewidth.FillRight(text, width)
	}
	if width <= runewidth.StringWidth(ellipsis) {
		return ellipsis[:width]
	}
	// Truncate can come up a column short when a wide rune does not
	// fit, so pad the result back out.
	return runewidth.FillRight(runewidth.Truncate(text, width, ellipsis), width)
}
