// Package ui provides shared rendering helpers for the TUI: modal
// compositing, dialog frames and width-aware truncation.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// DimStyle is applied to the background behind a modal. Existing ANSI codes
// are stripped first because SGR 2 (faint) does not reliably combine with
// existing colors.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

// Placement is where a composited block landed, in screen cells.
type Placement struct {
	X, Y, W, H int
}

// BlockSize returns the visual width and height of a rendered block.
func BlockSize(block string) (int, int) {
	lines := strings.Split(block, "\n")
	return maxLineWidth(lines), len(lines)
}

func maxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		if w := ansi.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}

// Center returns the placement of a block of size w×h centered on a
// width×height screen.
func Center(w, h, width, height int) Placement {
	return Placement{X: max(0, (width-w)/2), Y: max(0, (height-h)/2), W: w, H: h}
}

// OverlayModal centers modal over a dimmed background.
func OverlayModal(background, modal string, width, height int) (string, Placement) {
	w, h := BlockSize(modal)
	p := Center(w, h, width, height)
	return composite(background, modal, p, width, height, true), p
}

// OverlayAt draws popup with its top-left corner at (x, y), clamped to the
// screen, leaving the background undimmed.
func OverlayAt(background, popup string, x, y, width, height int) (string, Placement) {
	w, h := BlockSize(popup)
	if x+w > width {
		x = width - w
	}
	if y+h > height {
		y = height - h
	}
	p := Placement{X: max(0, x), Y: max(0, y), W: w, H: h}
	return composite(background, popup, p, width, height, false), p
}

func composite(background, block string, p Placement, width, height int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	blockLines := strings.Split(block, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	out := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bg := bgLines[y]
		i := y - p.Y
		switch {
		case i >= 0 && i < len(blockLines):
			out = append(out, spliceRow(bg, blockLines[i], p.X, p.W, dim))
		case dim:
			out = append(out, DimStyle.Render(ansi.Strip(bg)))
		default:
			out = append(out, bg)
		}
	}
	return strings.Join(out, "\n")
}

// spliceRow replaces the cells [x, x+w) of bg with line.
func spliceRow(bg, line string, x, w int, dim bool) string {
	var b strings.Builder

	style := func(s string) string {
		if dim {
			return DimStyle.Render(ansi.Strip(s))
		}
		return s
	}

	bgWidth := ansi.StringWidth(bg)
	if x > 0 {
		left := ansi.Truncate(bg, x, "")
		b.WriteString(style(left))
		if lw := ansi.StringWidth(left); lw < x {
			b.WriteString(strings.Repeat(" ", x-lw))
		}
	}

	b.WriteString(line)
	if lw := ansi.StringWidth(line); lw < w {
		b.WriteString(strings.Repeat(" ", w-lw))
	}

	if right := x + w; bgWidth > right {
		b.WriteString(style(ansi.Cut(bg, right, bgWidth)))
	}
	return b.String()
}
