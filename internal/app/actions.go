package app

import (
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/config"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/export"
	"github.com/marcus/notas/internal/keymap"
	appmsg "github.com/marcus/notas/internal/msg"
	"github.com/marcus/notas/internal/navigator"
	"github.com/marcus/notas/internal/slug"
	"github.com/marcus/notas/internal/state"
	"github.com/marcus/notas/internal/store"
	"github.com/marcus/notas/internal/timer"
)

// Placeholders shown by the text input.
const (
	rowPlaceholder      = "Nombre de la fila"
	resourcePlaceholder = "Nombre del recurso"
	linkPlaceholder     = "https://"
	categoryPlaceholder = "Nombre de la categoría"
)

// markDirty schedules a debounced write of the open category. Nothing is
// written before access has been granted.
func (m *Model) markDirty() tea.Cmd {
	if !m.ui.access {
		return nil
	}
	return m.timers.Schedule(timer.Save, m.cfg.Editor.SaveDebounce)
}

// flush writes the open category now if a write is pending.
func (m *Model) flush() tea.Cmd {
	return m.saveFailed(m.writePending())
}

// writePending cancels the debounce timer and writes if it was running.
func (m *Model) writePending() error {
	if !m.timers.Cancel(timer.Save) || !m.ui.access {
		return nil
	}
	return m.write()
}

func (m *Model) write() error {
	if err := m.store.SaveCategory(m.ui.category, m.doc.Snapshot()); err != nil {
		return err
	}
	m.lastSaved = m.now()
	return nil
}

// saveFailed reports a failed write of the open category.
func (m *Model) saveFailed(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	m.logger.Error("save rows", "category", m.ui.category, "err", err)
	return m.ShowToast("Could not save: "+err.Error(), appmsg.DefaultToastDuration, true)
}

func (m *Model) quit() tea.Cmd {
	m.finishEdit()
	// No frame is left to show a toast, so a failed last write is only logged.
	if err := m.writePending(); err != nil {
		m.logger.Error("save rows on quit", "category", m.ui.category, "err", err)
	}
	if m.ui.loaded {
		state.SetCursor(m.ui.category, m.ui.cursor)
	}
	if err := state.Save(); err != nil {
		m.logger.Warn("save state", "err", err)
	}
	return tea.Quit
}

func (m *Model) toggleFooter() tea.Cmd {
	m.ui.showFooter = !m.ui.showFooter
	if err := state.SetFooterHidden(!m.ui.showFooter); err != nil {
		m.logger.Warn("save state", "err", err)
	}
	return nil
}

// setZoom applies and persists z. The zoom is stored even before access is
// granted.
func (m *Model) setZoom(z float64) tea.Cmd {
	z = store.ClampZoom(z)
	if z == m.ui.zoom {
		return nil
	}
	m.ui.zoom = z
	if err := m.store.SetZoom(z); err != nil {
		m.logger.Error("save zoom", "zoom", z, "err", err)
		return m.ShowToast("Could not save zoom: "+err.Error(), appmsg.DefaultToastDuration, true)
	}
	return nil
}

func (m *Model) grantAccess() tea.Cmd {
	if err := m.store.GrantAccess(); err != nil {
		m.logger.Error("grant access", "err", err)
		return m.ShowToast("Could not grant access: "+err.Error(), appmsg.DefaultToastDuration, true)
	}
	m.ui.access = true
	m.openCategory(m.ui.category)
	return m.ShowToast("Access granted", toastDuration, false)
}

// openCategory loads slug and cleans the category index: empty categories
// other than slug are pruned and slug itself is indexed.
func (m *Model) openCategory(s string) {
	m.loadCategory(s)

	pruned, err := m.store.PruneEmpty(s)
	if err != nil {
		m.logger.Warn("prune categories", "err", err)
	}
	for _, p := range pruned {
		state.ForgetCategory(p)
	}
	if s != "" {
		if err := m.store.EnsurePresent(s); err != nil {
			m.logger.Warn("index category", "category", s, "err", err)
		}
	}
	m.refreshPages()
}

// refreshPages caches the position of the open category for the header.
func (m *Model) refreshPages() {
	list := m.store.Categories()
	m.ui.pages = len(list) + 1
	m.ui.page = 0
	for i, c := range list {
		if c == m.ui.category {
			m.ui.page = i + 1
		}
	}
}

// loadCategory replaces the document with the stored rows of slug. Any
// pending write must be flushed first.
func (m *Model) loadCategory(s string) {
	if m.ui.loaded {
		state.SetCursor(m.ui.category, m.ui.cursor)
	}
	m.finishEdit()
	m.closeDeleteMenus()
	m.closeLinkEditor()
	m.closeNewCategory()
	m.ui.resources = resourcesModal{}
	m.ui.archive = archiveModal{}
	m.ui.focus = nil
	m.timers.Cancel(timer.Save)

	m.ui.category = s
	m.ui.loaded = true
	m.doc.Reset(m.store.LoadCategory(s))
	m.ui.cursor = state.GetCursor(s)
	m.clampCursors()

	if err := state.SetLastCategory(s); err != nil {
		m.logger.Warn("save state", "err", err)
	}
}

func (m *Model) navigate(dir navigator.Direction) tea.Cmd {
	if !m.ui.access {
		return nil
	}
	m.finishEdit()
	cmd := m.flush()

	from := m.ui.category
	out, err := m.nav.Step(from, m.doc.HasMeaningfulContent(), dir)
	if err != nil {
		m.logger.Error("navigate", "from", from, "dir", dir.String(), "err", err)
		return tea.Batch(cmd, m.ShowToast("Could not change page: "+err.Error(), appmsg.DefaultToastDuration, true))
	}
	if !out.Moved {
		return cmd
	}
	m.loadCategory(out.Target)
	if out.Pruned {
		state.ForgetCategory(from)
	}
	m.refreshPages()
	m.logger.Debug("navigate", "from", from, "to", out.Target, "created", out.Created, "pruned", out.Pruned)
	return cmd
}

func (m *Model) openNewCategory() {
	m.finishEdit()
	m.ui.newCategory = true
	m.input.Placeholder = categoryPlaceholder
	m.input.SetValue("")
	m.input.Focus()
}

func (m *Model) closeNewCategory() {
	if !m.ui.newCategory {
		return
	}
	m.ui.newCategory = false
	m.input.Blur()
	m.input.SetValue("")
}

func (m *Model) createCategory() tea.Cmd {
	name := m.input.Value()
	m.closeNewCategory()
	cmd := m.flush()

	s, err := m.nav.Create(name)
	if err != nil {
		m.logger.Error("create category", "name", name, "err", err)
		return tea.Batch(cmd, m.ShowToast("Could not create page: "+err.Error(), appmsg.DefaultToastDuration, true))
	}
	m.openCategory(s)
	return tea.Batch(cmd, m.ShowToast("Opened "+slug.Route(s), toastDuration, false))
}

func (m *Model) exportAll() tea.Cmd {
	pages := export.Build(export.Collect(m.store, m.ui.category, m.doc.Snapshot()))
	body, err := export.Render(pages)
	if errors.Is(err, export.ErrNothingToExport) {
		return m.ShowToast("Nothing to export", toastDuration, false)
	}
	if err != nil {
		m.logger.Error("export", "err", err)
		return m.ShowToast("Export failed: "+err.Error(), appmsg.DefaultToastDuration, true)
	}

	path, err := export.Write(m.cfg.Export.Dir, m.cfg.Export.Prefix, m.cfg.Export.Extension, m.now(), body)
	if err != nil {
		m.logger.Error("export", "err", err)
		return m.ShowToast("Export failed: "+err.Error(), appmsg.DefaultToastDuration, true)
	}
	m.logger.Info("exported", "path", path, "pages", len(pages))
	return m.ShowToast("Exported "+path, appmsg.DefaultToastDuration, false)
}

// selectedRef returns the entity under the cursor of the visible list.
func (m *Model) selectedRef() (document.Ref, bool) {
	switch {
	case m.ui.resources.open:
		r := m.ui.resources
		list := m.doc.Resources(r.rowID, r.kind)
		if r.cursor < 0 || r.cursor >= len(list) {
			return document.Ref{}, false
		}
		return document.ResourceRef(r.rowID, r.kind, list[r.cursor].ID), true
	case m.ui.archive.open:
		rows := m.doc.Archived()
		if m.ui.archive.cursor < 0 || m.ui.archive.cursor >= len(rows) {
			return document.Ref{}, false
		}
		return document.RowRef(rows[m.ui.archive.cursor].ID), true
	default:
		rows := m.doc.Active()
		if m.ui.cursor < 0 || m.ui.cursor >= len(rows) {
			return document.Ref{}, false
		}
		return document.RowRef(rows[m.ui.cursor].ID), true
	}
}

func (m *Model) moveCursor(delta int) {
	switch {
	case m.ui.resources.open:
		n := len(m.doc.Resources(m.ui.resources.rowID, m.ui.resources.kind))
		switch {
		case n == 0:
		case m.ui.resources.cursor < 0:
			// Either arrow focuses the first item when none is focused.
			m.ui.resources.cursor = 0
		default:
			m.ui.resources.cursor = clamp(m.ui.resources.cursor+delta, n)
		}
	case m.ui.archive.open:
		m.ui.archive.cursor = clamp(m.ui.archive.cursor+delta, len(m.doc.Archived()))
	default:
		m.ui.cursor = clamp(m.ui.cursor+delta, len(m.doc.Active()))
	}
}

func (m *Model) clampCursors() {
	m.ui.cursor = clamp(m.ui.cursor, len(m.doc.Active()))
	m.ui.archive.cursor = clamp(m.ui.archive.cursor, len(m.doc.Archived()))
	if m.ui.resources.open {
		n := len(m.doc.Resources(m.ui.resources.rowID, m.ui.resources.kind))
		m.ui.resources.cursor = min(m.ui.resources.cursor, n-1)
	}
}

// clamp limits i to [0, n-1], or 0 for an empty list.
func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// reveal moves the cursor of the list holding ref onto it.
func (m *Model) reveal(ref document.Ref) {
	if ref.IsResource() {
		for i, r := range m.doc.Resources(ref.RowID, ref.Kind) {
			if r.ID == ref.ResID {
				m.ui.resources.cursor = i
			}
		}
		return
	}
	row, ok := m.doc.Row(ref.RowID)
	if !ok {
		return
	}
	rows := m.doc.Active()
	if row.Checked {
		rows = m.doc.Archived()
	}
	for i, r := range rows {
		if r.ID != ref.RowID {
			continue
		}
		if row.Checked {
			m.ui.archive.cursor = i
		} else {
			m.ui.cursor = i
		}
	}
}

// startEdit binds the text input to the name of ref.
func (m *Model) startEdit(ref document.Ref, selectAll bool, caret int) {
	if !m.doc.Exists(ref) {
		return
	}
	name := m.doc.Name(ref)
	m.ui.editing = ref
	m.ui.selectAll = selectAll && name != ""
	m.input.Placeholder = rowPlaceholder
	if ref.IsResource() {
		m.input.Placeholder = resourcePlaceholder
	}
	m.input.SetValue(name)
	m.input.Focus()
	if caret < 0 {
		m.input.CursorEnd()
	} else {
		m.input.SetCursor(caret)
	}
}

func (m *Model) finishEdit() {
	if m.ui.editing.IsZero() {
		return
	}
	m.ui.editing = document.Ref{}
	m.ui.selectAll = false
	m.input.Blur()
	m.input.SetValue("")
}

// insertAfter commits the current name and starts a new empty entity right
// below it.
func (m *Model) insertAfter() tea.Cmd {
	ref := m.ui.editing
	if ref.IsZero() {
		return nil
	}
	m.finishEdit()

	var target document.Ref
	if ref.IsResource() {
		res, ok := m.doc.InsertResourceAfter(ref.RowID, ref.Kind, ref.ResID)
		if !ok {
			return nil
		}
		target = document.ResourceRef(ref.RowID, ref.Kind, res.ID)
	} else {
		row := m.doc.InsertRowAfter(ref.RowID)
		target = document.RowRef(row.ID)
	}
	m.ui.focus = &focusIntent{ref: target, caret: 0}
	return m.markDirty()
}

func (m *Model) addRow() tea.Cmd {
	if !m.ui.access {
		return nil
	}
	m.finishEdit()
	row := m.doc.AddRow()
	m.ui.focus = &focusIntent{ref: document.RowRef(row.ID), selectAll: true, caret: -1}
	return m.markDirty()
}

func (m *Model) toggleChecked(rowID string) tea.Cmd {
	if m.ui.editing.RowID == rowID {
		m.finishEdit()
	}
	if !m.doc.ToggleChecked(rowID) {
		return nil
	}
	m.clampCursors()
	return m.markDirty()
}

// covers reports whether deleting ref also removes other.
func covers(ref, other document.Ref) bool {
	if ref == other {
		return true
	}
	return !ref.IsResource() && ref.RowID == other.RowID
}

// requestDelete deletes ref, or offers the delete menu when ref has a link.
func (m *Model) requestDelete(ref document.Ref) tea.Cmd {
	if strings.TrimSpace(m.doc.Link(ref)) != "" {
		m.openDeleteMenu(ref, true)
		return nil
	}
	return m.deleteEntity(ref)
}

func (m *Model) deleteEntity(ref document.Ref) tea.Cmd {
	if !m.ui.editing.IsZero() && covers(ref, m.ui.editing) {
		m.finishEdit()
	}
	if !m.doc.Delete(ref) {
		return nil
	}
	if m.ui.resources.open && !ref.IsResource() && m.ui.resources.rowID == ref.RowID {
		m.ui.resources = resourcesModal{}
	}
	if m.ui.link.open && covers(ref, m.ui.link.target) {
		m.closeLinkEditor()
	}
	if m.ui.rowMenu.open && covers(ref, m.ui.rowMenu.ref) {
		m.ui.rowMenu = deleteMenu{}
		m.timers.Cancel(timer.RowMenu)
	}
	if m.ui.resourceMenu.open && covers(ref, m.ui.resourceMenu.ref) {
		m.ui.resourceMenu = deleteMenu{}
		m.timers.Cancel(timer.ResourceMenu)
	}
	m.clampCursors()
	return m.markDirty()
}

// openDeleteMenu opens the menu for ref. keyed menus come from the delete
// key; the others from a trash click, with the pointer still on the glyph.
func (m *Model) openDeleteMenu(ref document.Ref, keyed bool) {
	menu := deleteMenu{open: true, ref: ref, hovered: !keyed, keyed: keyed}
	if ref.IsResource() {
		m.timers.Cancel(timer.ResourceMenu)
		m.ui.resourceMenu = menu
		return
	}
	m.timers.Cancel(timer.RowMenu)
	m.ui.rowMenu = menu
}

// closeDeleteMenus closes both delete menus and reports whether one was
// open.
func (m *Model) closeDeleteMenus() bool {
	open := m.ui.rowMenu.open || m.ui.resourceMenu.open
	m.ui.rowMenu = deleteMenu{}
	m.ui.resourceMenu = deleteMenu{}
	m.timers.Cancel(timer.RowMenu)
	m.timers.Cancel(timer.ResourceMenu)
	return open
}

// keyedMenuRef returns the target of the menu opened with the delete key.
func (m *Model) keyedMenuRef() (document.Ref, bool) {
	switch {
	case m.ui.resourceMenu.keyed:
		return m.ui.resourceMenu.ref, true
	case m.ui.rowMenu.keyed:
		return m.ui.rowMenu.ref, true
	}
	return document.Ref{}, false
}

// menuDelete runs a delete menu entry on the open menu targeting ref.
func (m *Model) menuDelete(ref document.Ref, linkOnly bool) tea.Cmd {
	menu, purpose := &m.ui.rowMenu, timer.RowMenu
	if ref.IsResource() {
		menu, purpose = &m.ui.resourceMenu, timer.ResourceMenu
	}
	if !menu.open || menu.ref != ref {
		return nil
	}
	*menu = deleteMenu{}
	m.timers.Cancel(purpose)

	if linkOnly {
		if !m.doc.ClearLink(ref) {
			return nil
		}
		return m.markDirty()
	}
	return m.deleteEntity(ref)
}

func (m *Model) openLinkEditor(ref document.Ref) {
	if !m.doc.Exists(ref) {
		return
	}
	m.finishEdit()
	m.ui.link = linkEditor{open: true, target: ref}
	m.input.Placeholder = linkPlaceholder
	m.input.SetValue(m.doc.Link(ref))
	m.input.Focus()
	m.input.CursorEnd()
}

func (m *Model) closeLinkEditor() {
	if !m.ui.link.open {
		return
	}
	m.ui.link = linkEditor{}
	m.input.Blur()
	m.input.SetValue("")
}

// saveLink stores the edited link; a blank value removes it.
func (m *Model) saveLink() tea.Cmd {
	target := m.ui.link.target
	value := m.input.Value()
	m.closeLinkEditor()

	before := m.doc.Link(target)
	if !m.doc.SetLink(target, value) || m.doc.Link(target) == before {
		return nil
	}
	return m.markDirty()
}

// activate opens the link of ref, or the link editor when it has none.
func (m *Model) activate(ref document.Ref) tea.Cmd {
	if link := strings.TrimSpace(m.doc.Link(ref)); link != "" {
		return openLink(link)
	}
	m.openLinkEditor(ref)
	return nil
}

func (m *Model) copyLink(ref document.Ref) tea.Cmd {
	link := strings.TrimSpace(m.doc.Link(ref))
	if link == "" {
		return m.ShowToast("No link to copy", toastDuration, false)
	}
	if err := clipboard.WriteAll(link); err != nil {
		m.logger.Error("copy link", "err", err)
		return m.ShowToast("Copy failed: "+err.Error(), appmsg.DefaultToastDuration, true)
	}
	return m.ShowToast("Link copied", toastDuration, false)
}

func (m *Model) openResourcesAtCursor(kind document.ResourceKind) {
	if ref, ok := m.selectedRef(); ok {
		m.openResources(ref.RowID, kind)
	}
}

func (m *Model) openResources(rowID string, kind document.ResourceKind) {
	m.finishEdit()
	m.closeDeleteMenus()
	m.ui.archive = archiveModal{}
	m.ui.resources = resourcesModal{open: true, rowID: rowID, kind: kind, cursor: -1}
}

func (m *Model) openArchive() {
	m.finishEdit()
	m.closeDeleteMenus()
	m.ui.archive = archiveModal{open: true}
}

func (m *Model) addResource() tea.Cmd {
	r := m.ui.resources
	if !r.open {
		return nil
	}
	m.finishEdit()
	res, ok := m.doc.AddResource(r.rowID, r.kind)
	if !ok {
		return nil
	}
	m.ui.focus = &focusIntent{ref: document.ResourceRef(r.rowID, r.kind, res.ID), selectAll: true, caret: -1}
	return m.markDirty()
}

func (m *Model) cycleKind(delta int) {
	idx := 0
	for i, k := range document.Kinds {
		if k == m.ui.resources.kind {
			idx = i
		}
	}
	n := len(document.Kinds)
	m.ui.resources.kind = document.Kinds[((idx+delta)%n+n)%n]
	m.ui.resources.cursor = -1
}

// closeTop closes whatever ctx belongs to.
func (m *Model) closeTop(ctx string) {
	switch ctx {
	case keymap.ContextHelp:
		m.ui.help = false
	case keymap.ContextDeleteMenu:
		m.closeDeleteMenus()
	case keymap.ContextNewCategory:
		m.closeNewCategory()
	case keymap.ContextLinkEditor:
		m.closeLinkEditor()
	case keymap.ContextResources:
		m.finishEdit()
		m.ui.resources = resourcesModal{}
	case keymap.ContextArchive:
		m.ui.archive = archiveModal{}
	}
}

// applyConfig takes over a reloaded config. Storage settings only apply on
// the next start.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.keymap = BuildKeymap(cfg.Keymap.Overrides, m.logger)
	m.cfg.Editor = cfg.Editor
	m.cfg.Export = cfg.Export
	m.cfg.Keymap = cfg.Keymap
	m.cfg.UI = cfg.UI
	m.ui.showFooter = cfg.UI.ShowFooter && !state.GetFooterHidden()
	m.logger.Info("config reloaded")
}
