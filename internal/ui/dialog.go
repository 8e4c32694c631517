package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/notas/internal/styles"
	"github.com/mattn/go-runewidth"
)

// Modal widths.
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 56
	ModalWidthLarge  = 72
)

// Dialog is a titled modal frame.
type Dialog struct {
	Title string
	Body  string
	Hints string
	Width int
}

// Render draws the dialog, never wider than maxWidth.
func (d Dialog) Render(maxWidth int) string {
	width := d.Width
	if width <= 0 {
		width = ModalWidthMedium
	}
	if maxWidth > 0 && width > maxWidth-2 {
		width = max(20, maxWidth-2)
	}
	// Border and padding take 6 columns.
	inner := max(1, width-6)

	var b strings.Builder
	if d.Title != "" {
		b.WriteString(styles.ModalTitle.Render(Truncate(d.Title, inner)))
		b.WriteString("\n")
	}
	b.WriteString(d.Body)
	if d.Hints != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.Muted.Render(d.Hints))
	}
	return styles.ModalBox.Width(width - 2).Render(b.String())
}

// Truncate shortens s to at most width terminal cells, ending in "…" when
// anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
