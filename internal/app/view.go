package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/keymap"
	"github.com/marcus/notas/internal/slug"
	"github.com/marcus/notas/internal/store"
	"github.com/marcus/notas/internal/styles"
	"github.com/marcus/notas/internal/timer"
	"github.com/marcus/notas/internal/ui"
)

const (
	headerHeight = 2 // header line + spacing
	footerHeight = 1

	// Row line layout, in cells.
	cursorWidth  = 2 // "▸ "
	checkWidth   = 4 // "[ ] "
	counterWidth = 7 // " vid  2"
	badgeWidth   = 2 // " ↗"
	trashWidth   = 2 // " ✕"
)

// kindBadges label the per-kind counters of a row.
var kindBadges = map[document.ResourceKind]string{
	document.KindVideos:    "vid",
	document.KindTrueFalse: "v/f",
	document.KindQuizzes:   "quiz",
}

// point is a screen cell.
type point struct {
	x, y int
	ok   bool
}

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ui.ready {
		return "Loading..."
	}
	m.mouse.Clear()

	// Calculate content area
	contentHeight := m.ui.height - headerHeight
	if m.ui.showFooter {
		contentHeight -= footerHeight
	}
	contentHeight = max(contentHeight, 0)

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	var anchor point
	if m.ui.access {
		var content string
		content, anchor = m.renderRows(contentHeight)
		b.WriteString(content)
	} else {
		b.WriteString(m.renderGate(contentHeight))
	}

	if m.ui.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	// Overlay modals (priority order via activeModal)
	bg := b.String()
	switch m.activeModal() {
	case ModalHelp:
		return m.renderHelpOverlay(bg)
	case ModalNewCategory:
		return m.renderNewCategoryOverlay(bg)
	case ModalLinkEditor:
		return m.renderLinkEditorOverlay(bg)
	case ModalResources:
		return m.renderResourcesOverlay(bg)
	case ModalArchive:
		return m.renderArchiveOverlay(bg)
	}

	if m.ui.rowMenu.open && anchor.ok {
		return m.overlayMenu(bg, m.ui.rowMenu, anchor)
	}
	return bg
}

// renderHeader renders the title, the route and the page switcher.
func (m Model) renderHeader() string {
	left := styles.Logo.Render("notas") + "  " + styles.BarText.Render(slug.Route(m.ui.category))
	if !m.ui.access {
		return ansi.Truncate(left, m.ui.width, "")
	}

	prev := styles.BarChip.Render("‹")
	pos := styles.BarText.Render(fmt.Sprintf(" %d/%d ", m.ui.page+1, max(m.ui.pages, 1)))
	next := styles.BarChip.Render("›")
	right := prev + pos + next
	if m.ui.zoom != store.DefaultZoom {
		right += "  " + styles.BarChipActive.Render(fmt.Sprintf("%d%%", int(m.ui.zoom*100+0.5)))
	}

	rightX := m.ui.width - lipgloss.Width(right)
	gap := rightX - lipgloss.Width(left)
	if gap < 1 {
		return ansi.Truncate(left, m.ui.width, "")
	}

	m.mouse.HitMap.AddRect(regionCategoryPrev, rightX, 0, lipgloss.Width(prev), 1, nil)
	nextX := rightX + lipgloss.Width(prev) + lipgloss.Width(pos)
	m.mouse.HitMap.AddRect(regionCategoryNext, nextX, 0, lipgloss.Width(next), 1, nil)

	return left + strings.Repeat(" ", gap) + right
}

// renderGate renders the access gate shown until access is granted.
func (m Model) renderGate(height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		styles.Logo.Render("notas"),
		"",
		styles.Body.Render("Grant access to your notes to start."),
		styles.Muted.Render("Nothing is loaded or written until you do."),
		"",
		styles.BarChipActive.Render("enter  Grant access"),
	)
	box := styles.GateBox.Render(body)
	w, h := ui.BlockSize(box)
	p := ui.Center(w, h, m.ui.width, height)

	out, p := ui.OverlayAt(strings.Repeat("\n", max(height-1, 0)), box, p.X, p.Y, m.ui.width, height)
	m.mouse.HitMap.AddRect(regionGate, p.X, p.Y+headerHeight, p.W, p.H, nil)
	return out
}

// renderRows renders the active rows of the open category, padded to height
// lines. It also returns where the trash glyph of the row with an open
// delete menu landed.
func (m Model) renderRows(height int) (string, point) {
	width := m.contentWidth()
	left := max(0, (m.ui.width-width)/2)
	indent := strings.Repeat(" ", left)

	rows := m.doc.Active()
	// Two lines stay reserved for the add and archive buttons.
	visible := max(height-2, 0)
	start := scrollStart(m.ui.cursor, len(rows), visible)

	var lines []string
	var anchor point
	for i := start; i < len(rows) && len(lines) < visible; i++ {
		y := headerHeight + len(lines)
		line, hits := m.renderRowLine(rows[i], i == m.ui.cursor, width)
		m.commit(hits, left, y)
		if m.ui.rowMenu.open && m.ui.rowMenu.ref.RowID == rows[i].ID {
			anchor = point{x: left + width - 1, y: y, ok: true}
		}
		lines = append(lines, indent+line)
	}
	if len(rows) == 0 && visible > 0 {
		lines = append(lines, indent+styles.Muted.Render("No rows yet. Press + to add one."))
	}

	if len(lines) < height {
		add := styles.Subtle.Render("+ Añadir fila")
		m.mouse.HitMap.AddRect(regionAddRow, left, headerHeight+len(lines), lipgloss.Width(add), 1, nil)
		lines = append(lines, indent+add)
	}
	if archived := len(m.doc.Archived()); archived > 0 && len(lines) < height {
		label := styles.Subtle.Render(fmt.Sprintf("Archivo (%d)", archived))
		m.mouse.HitMap.AddRect(regionOpenArchive, left, headerHeight+len(lines), lipgloss.Width(label), 1, nil)
		lines = append(lines, indent+label)
	}

	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n"), anchor
}

// scrollStart returns the first visible index keeping cursor on screen.
func scrollStart(cursor, n, visible int) int {
	if visible <= 0 || n <= visible {
		return 0
	}
	return clamp(cursor-visible+1, n-visible+1)
}

// renderRowLine renders one row of the main list and its hit regions,
// relative to the start of the line.
func (m Model) renderRowLine(row document.Row, selected bool, width int) (string, hitList) {
	ref := document.RowRef(row.ID)
	var hits hitList
	var b strings.Builder

	// The whole line first so nested controls take precedence.
	hits.add(regionRow, 0, 0, width, 1, ref)

	if selected {
		b.WriteString(styles.Cursor.Render("▸ "))
	} else {
		b.WriteString("  ")
	}
	x := cursorWidth

	box := "[ ] "
	if row.Checked {
		box = "[x] "
	}
	b.WriteString(styles.Muted.Render(box))
	hits.add(regionRowCheck, x, 0, checkWidth-1, 1, ref)
	x += checkWidth

	tail := len(document.Kinds)*counterWidth + badgeWidth + trashWidth
	nameWidth := max(width-x-tail, 1)
	b.WriteString(m.renderName(ref, row.Name, row.Checked, nameWidth))
	hits.add(regionRowName, x, 0, nameWidth, 1, ref)
	x += nameWidth

	for _, k := range document.Kinds {
		n := len(row.Resources.List(k))
		style := styles.Counter
		if n == 0 {
			style = styles.CounterEmpty
		}
		b.WriteString(style.Render(fmt.Sprintf(" %-4s%2d", kindBadges[k], n)))
		hits.add(regionRowCounter, x+1, 0, counterWidth-1, 1, counterRef{rowID: row.ID, kind: k})
		x += counterWidth
	}

	b.WriteString(linkBadge(row.Link))
	x += badgeWidth

	b.WriteString(" " + m.trashGlyph(m.ui.rowMenu, ref))
	hits.add(regionRowTrash, x, 0, trashWidth, 1, ref)

	return b.String(), hits
}

func linkBadge(link string) string {
	if strings.TrimSpace(link) == "" {
		return "  "
	}
	return " " + styles.LinkBadge.Render("↗")
}

func (m Model) trashGlyph(menu deleteMenu, ref document.Ref) string {
	if menu.open && menu.ref == ref {
		return styles.TrashHot.Render("✕")
	}
	return styles.Trash.Render("✕")
}

// renderName renders an editable name in exactly width cells.
func (m Model) renderName(ref document.Ref, name string, checked bool, width int) string {
	if m.ui.editing == ref {
		if m.ui.selectAll {
			return ui.PadRight(styles.RowSelected.Reverse(true).Render(ui.Truncate(name, width)), width)
		}
		in := m.input
		in.Width = max(width-1, 1)
		return ui.PadRight(ansi.Truncate(in.View(), width, ""), width)
	}

	var s string
	switch {
	case strings.TrimSpace(name) == "":
		s = styles.RowPlaceholder.Render(ui.Truncate("Sin nombre", width))
	case checked:
		s = styles.RowChecked.Render(ui.Truncate(name, width))
	default:
		s = styles.RowNormal.Render(ui.Truncate(name, width))
	}
	return ui.PadRight(s, width)
}

// renderFooter renders the bottom bar with key hints and status.
func (m Model) renderFooter() string {
	var status string
	if m.statusMsg != "" {
		toastStyle := styles.ToastSuccess
		if m.statusIsError {
			toastStyle = styles.ToastError
		}
		status = toastStyle.Render(m.statusMsg)
	} else {
		status = styles.Muted.Render(m.saveStatus())
	}

	h := m.help
	h.Width = max(m.ui.width-lipgloss.Width(status)-2, 0)
	hints := h.ShortHelpView(m.keymap.HelpBindings(m.context()))

	spacing := max(m.ui.width-lipgloss.Width(hints)-lipgloss.Width(status), 0)
	footer := hints + strings.Repeat(" ", spacing) + status
	return lipgloss.NewStyle().MaxWidth(m.ui.width).Render(footer)
}

// saveStatus describes the state of the pending write.
func (m Model) saveStatus() string {
	switch {
	case !m.ui.access:
		return "not saving"
	case m.timers.Pending(timer.Save):
		return "unsaved changes"
	case !m.lastSaved.IsZero():
		return "saved " + humanize.RelTime(m.lastSaved, m.now(), "ago", "from now")
	}
	return ""
}

// contextHints renders the short help of ctx for a modal.
func (m Model) contextHints(ctx string, width int) string {
	h := m.help
	h.Width = width
	return h.ShortHelpView(m.keymap.HelpBindings(ctx))
}

// placeDialog overlays d centered on bg, registers its hit regions and
// returns the composited screen with the origin of the dialog body.
func (m Model) placeDialog(bg string, d ui.Dialog, hits hitList) (string, ui.Placement, point) {
	out, p := ui.OverlayModal(bg, d.Render(m.ui.width), m.ui.width, m.ui.height)

	// Clicks outside the dialog close it; the dimmed screen is inert.
	m.mouse.Clear()
	m.mouse.HitMap.AddRect(regionBackdrop, 0, 0, m.ui.width, m.ui.height, nil)
	m.mouse.HitMap.AddRect(regionModal, p.X, p.Y, p.W, p.H, nil)

	// Border and padding, then the title and its margin line.
	origin := point{x: p.X + 3, y: p.Y + 2, ok: true}
	if d.Title != "" {
		origin.y += 2
	}
	m.commit(hits, origin.x, origin.y)
	return out, p, origin
}

// dialogInner is the body width of a dialog of the given width.
func (m Model) dialogInner(width int) int {
	if width > m.ui.width-2 {
		width = max(20, m.ui.width-2)
	}
	return max(width-6, 1)
}

func (m Model) renderNewCategoryOverlay(bg string) string {
	inner := m.dialogInner(ui.ModalWidthMedium)
	in := m.input
	in.Width = inner - 1
	d := ui.Dialog{
		Title: "Nueva categoría",
		Body:  in.View(),
		Hints: m.contextHints(keymap.ContextNewCategory, inner),
		Width: ui.ModalWidthMedium,
	}
	out, _, _ := m.placeDialog(bg, d, nil)
	return out
}

func (m Model) renderLinkEditorOverlay(bg string) string {
	inner := m.dialogInner(ui.ModalWidthLarge)
	in := m.input
	in.Width = inner - 1

	name := strings.TrimSpace(m.doc.Name(m.ui.link.target))
	if name == "" {
		name = "Sin nombre"
	}
	body := styles.Muted.Render(ui.Truncate(name, inner)) + "\n\n" + in.View()
	d := ui.Dialog{
		Title: "Enlace",
		Body:  body,
		Hints: m.contextHints(keymap.ContextLinkEditor, inner),
		Width: ui.ModalWidthLarge,
	}
	out, _, _ := m.placeDialog(bg, d, nil)
	return out
}

func (m Model) renderResourcesOverlay(bg string) string {
	r := m.ui.resources
	inner := m.dialogInner(ui.ModalWidthLarge)
	row, _ := m.doc.Row(r.rowID)

	var hits hitList
	var lines []string

	// Kind tabs
	var tabs strings.Builder
	x := 0
	for i, k := range document.Kinds {
		if i > 0 {
			tabs.WriteString(" ")
			x++
		}
		style := styles.BarChip
		if k == r.kind {
			style = styles.BarChipActive
		}
		tab := style.Render(fmt.Sprintf("%s %d", k.Label(), len(row.Resources.List(k))))
		hits.add(regionResTab, x, 0, lipgloss.Width(tab), 1, k)
		tabs.WriteString(tab)
		x += lipgloss.Width(tab)
	}
	lines = append(lines, tabs.String(), "")

	var anchor point
	list := row.Resources.List(r.kind)
	nameWidth := max(inner-cursorWidth-badgeWidth-trashWidth, 1)
	for i, res := range list {
		ref := document.ResourceRef(r.rowID, r.kind, res.ID)
		y := len(lines)
		hits.add(regionResItem, 0, y, inner, 1, ref)

		var b strings.Builder
		if i == r.cursor {
			b.WriteString(styles.Cursor.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(m.renderName(ref, res.Name, false, nameWidth))
		b.WriteString(linkBadge(res.Link))
		b.WriteString(" " + m.trashGlyph(m.ui.resourceMenu, ref))
		hits.add(regionResTrash, inner-trashWidth, y, trashWidth, 1, ref)

		if m.ui.resourceMenu.open && m.ui.resourceMenu.ref == ref {
			anchor = point{x: inner - 1, y: y, ok: true}
		}
		lines = append(lines, b.String())
	}
	if len(list) == 0 {
		lines = append(lines, styles.Muted.Render("Sin recursos"))
	}

	lines = append(lines, "")
	add := styles.Subtle.Render("+ Añadir recurso")
	hits.add(regionResAdd, 0, len(lines), lipgloss.Width(add), 1, nil)
	lines = append(lines, add)

	title := r.kind.Label()
	if name := strings.TrimSpace(row.Name); name != "" {
		title += " · " + name
	}
	d := ui.Dialog{
		Title: title,
		Body:  strings.Join(lines, "\n"),
		Hints: m.contextHints(m.context(), inner),
		Width: ui.ModalWidthLarge,
	}
	out, _, origin := m.placeDialog(bg, d, hits)

	if m.ui.resourceMenu.open && anchor.ok {
		anchor.x += origin.x
		anchor.y += origin.y
		return m.overlayMenu(out, m.ui.resourceMenu, anchor)
	}
	return out
}

func (m Model) renderArchiveOverlay(bg string) string {
	inner := m.dialogInner(ui.ModalWidthLarge)
	rows := m.doc.Archived()

	var hits hitList
	var lines []string
	var anchor point
	nameWidth := max(inner-cursorWidth-checkWidth-badgeWidth-trashWidth, 1)
	for i, row := range rows {
		ref := document.RowRef(row.ID)
		y := len(lines)
		hits.add(regionArchiveItem, 0, y, inner, 1, ref)

		var b strings.Builder
		if i == m.ui.archive.cursor {
			b.WriteString(styles.Cursor.Render("▸ "))
		} else {
			b.WriteString("  ")
		}
		b.WriteString(styles.Muted.Render("[x] "))
		hits.add(regionArchiveCheck, cursorWidth, y, checkWidth-1, 1, ref)
		b.WriteString(m.renderName(ref, row.Name, true, nameWidth))
		b.WriteString(linkBadge(row.Link))
		b.WriteString(" " + m.trashGlyph(m.ui.rowMenu, ref))
		hits.add(regionArchiveTrash, inner-trashWidth, y, trashWidth, 1, ref)

		if m.ui.rowMenu.open && m.ui.rowMenu.ref == ref {
			anchor = point{x: inner - 1, y: y, ok: true}
		}
		lines = append(lines, b.String())
	}
	if len(rows) == 0 {
		lines = append(lines, styles.Muted.Render("Nada archivado"))
	}

	d := ui.Dialog{
		Title: fmt.Sprintf("Archivo (%d)", len(rows)),
		Body:  strings.Join(lines, "\n"),
		Hints: m.contextHints(m.context(), inner),
		Width: ui.ModalWidthLarge,
	}
	out, _, origin := m.placeDialog(bg, d, hits)

	if m.ui.rowMenu.open && anchor.ok {
		anchor.x += origin.x
		anchor.y += origin.y
		return m.overlayMenu(out, m.ui.rowMenu, anchor)
	}
	return out
}

// overlayMenu draws a delete menu below the trash glyph at anchor.
func (m Model) overlayMenu(bg string, menu deleteMenu, anchor point) string {
	label := "Eliminar fila"
	if menu.ref.IsResource() {
		label = "Eliminar recurso"
	}
	items := []string{
		styles.MenuItemDanger.Render(label),
		styles.MenuItem.Render("Eliminar solo el enlace"),
	}
	box := styles.MenuBox.Render(strings.Join(items, "\n"))
	w, _ := ui.BlockSize(box)

	out, p := ui.OverlayAt(bg, box, anchor.x-w+1, anchor.y+1, m.ui.width, m.ui.height)
	m.mouse.HitMap.AddRect(regionMenu, p.X, p.Y, p.W, p.H, menu.ref)
	m.mouse.HitMap.AddRect(regionMenuDelete, p.X+1, p.Y+1, p.W-2, 1, menu.ref)
	m.mouse.HitMap.AddRect(regionMenuLink, p.X+1, p.Y+2, p.W-2, 1, menu.ref)
	return out
}
