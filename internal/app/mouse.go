package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/mouse"
	"github.com/marcus/notas/internal/navigator"
	"github.com/marcus/notas/internal/timer"
)

// Hit region ids.
const (
	regionCategoryPrev = "category-prev"
	regionCategoryNext = "category-next"
	regionGate         = "gate"
	regionRow          = "row"
	regionRowCheck     = "row-check"
	regionRowName      = "row-name"
	regionRowCounter   = "row-counter"
	regionRowTrash     = "row-trash"
	regionAddRow       = "add-row"
	regionOpenArchive  = "open-archive"
	regionBackdrop     = "backdrop"
	regionModal        = "modal"
	regionResTab       = "res-tab"
	regionResItem      = "res-item"
	regionResTrash     = "res-trash"
	regionResAdd       = "res-add"
	regionArchiveItem  = "archive-item"
	regionArchiveCheck = "archive-check"
	regionArchiveTrash = "archive-trash"
	regionMenu         = "menu"
	regionMenuDelete   = "menu-delete"
	regionMenuLink     = "menu-link"
)

// counterRef is the payload of a row's resource counter.
type counterRef struct {
	rowID string
	kind  document.ResourceKind
}

// hitList collects regions relative to a block that is placed later.
type hitList []mouse.Region

func (l *hitList) add(id string, x, y, w, h int, data any) {
	*l = append(*l, mouse.Region{ID: id, Rect: mouse.Rect{X: x, Y: y, W: w, H: h}, Data: data})
}

// commit registers l on the hit map, shifted by (dx, dy).
func (m Model) commit(l hitList, dx, dy int) {
	for _, r := range l {
		m.mouse.HitMap.AddRect(r.ID, r.Rect.X+dx, r.Rect.Y+dy, r.Rect.W, r.Rect.H, r.Data)
	}
}

// handleMouseMsg routes mouse events against the regions of the last frame.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) tea.Cmd {
	action := m.mouse.HandleMouse(msg)
	switch action.Type {
	case mouse.ActionHover:
		return m.handleHover(action.Region)
	case mouse.ActionClick, mouse.ActionDoubleClick:
		return m.handleClick(action)
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		if !m.ui.help && !m.ui.newCategory && !m.ui.link.open {
			m.moveCursor(action.Delta)
		}
	}
	return nil
}

// handleHover drives the delete menus: resting on the trash glyph of a
// linked entity opens its menu, leaving glyph and menu schedules the close,
// and coming back cancels it.
func (m *Model) handleHover(r *mouse.Region) tea.Cmd {
	return tea.Batch(
		m.hoverMenu(&m.ui.rowMenu, timer.RowMenu, r, false),
		m.hoverMenu(&m.ui.resourceMenu, timer.ResourceMenu, r, true),
	)
}

func (m *Model) hoverMenu(menu *deleteMenu, purpose timer.Purpose, r *mouse.Region, resource bool) tea.Cmd {
	if ref, ok := trashTarget(r); ok && ref.IsResource() == resource && m.hasLink(ref) {
		m.timers.Cancel(purpose)
		*menu = deleteMenu{open: true, ref: ref, hovered: true}
		return nil
	}
	if menu.open && onMenu(r, menu.ref) {
		m.timers.Cancel(purpose)
		menu.hovered = true
		return nil
	}
	if menu.open && menu.hovered {
		menu.hovered = false
		return m.timers.Schedule(purpose, m.cfg.Editor.MenuCloseDelay)
	}
	return nil
}

func (m *Model) hasLink(ref document.Ref) bool {
	return strings.TrimSpace(m.doc.Link(ref)) != ""
}

// trashTarget returns the entity whose trash glyph r is.
func trashTarget(r *mouse.Region) (document.Ref, bool) {
	if r == nil {
		return document.Ref{}, false
	}
	switch r.ID {
	case regionRowTrash, regionResTrash, regionArchiveTrash:
		ref, ok := r.Data.(document.Ref)
		return ref, ok
	}
	return document.Ref{}, false
}

// onMenu reports whether r belongs to the delete menu of ref.
func onMenu(r *mouse.Region, ref document.Ref) bool {
	if r == nil {
		return false
	}
	switch r.ID {
	case regionMenu, regionMenuDelete, regionMenuLink:
		data, ok := r.Data.(document.Ref)
		return ok && data == ref
	}
	return false
}

func (m *Model) handleClick(a mouse.Action) tea.Cmd {
	r := a.Region
	if r == nil {
		return nil
	}
	ref, _ := r.Data.(document.Ref)

	// Clicking anywhere but the name being edited ends the edit.
	if !m.ui.editing.IsZero() && !((r.ID == regionRowName || r.ID == regionResItem) && ref == m.ui.editing) {
		m.finishEdit()
	}

	switch r.ID {
	case regionGate:
		return m.grantAccess()
	case regionCategoryPrev:
		return m.navigate(navigator.Backward)
	case regionCategoryNext:
		return m.navigate(navigator.Forward)
	case regionAddRow:
		return m.addRow()
	case regionOpenArchive:
		m.openArchive()

	case regionRow:
		m.reveal(ref)
		return m.activate(ref)
	case regionRowCheck, regionArchiveCheck:
		return m.toggleChecked(ref.RowID)
	case regionRowName:
		m.reveal(ref)
		if m.ui.editing != ref {
			m.startEdit(ref, false, -1)
		}
	case regionRowCounter:
		if c, ok := r.Data.(counterRef); ok {
			m.reveal(document.RowRef(c.rowID))
			m.openResources(c.rowID, c.kind)
		}
	case regionRowTrash, regionResTrash, regionArchiveTrash:
		m.reveal(ref)
		if m.hasLink(ref) {
			m.openDeleteMenu(ref, false)
			return nil
		}
		return m.deleteEntity(ref)

	case regionMenuDelete, regionMenuLink:
		return m.menuDelete(ref, r.ID == regionMenuLink)

	case regionResTab:
		if kind, ok := r.Data.(document.ResourceKind); ok {
			m.ui.resources.kind = kind
			m.ui.resources.cursor = -1
		}
	case regionResItem:
		m.reveal(ref)
		if a.Type == mouse.ActionDoubleClick {
			return m.activate(ref)
		}
	case regionResAdd:
		return m.addResource()
	case regionArchiveItem:
		m.reveal(ref)
		if a.Type == mouse.ActionDoubleClick {
			return m.activate(ref)
		}

	case regionBackdrop:
		m.closeTop(m.context())
	}
	return nil
}
