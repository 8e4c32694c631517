package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/keymap"
	"github.com/marcus/notas/internal/mouse"
	"github.com/marcus/notas/internal/timer"
)

// findRegion renders m and returns the first region with id whose data
// satisfies match.
func findRegion(t *testing.T, m Model, id string, match func(any) bool) mouse.Region {
	t.Helper()
	m.View()
	for _, r := range m.mouse.HitMap.Regions() {
		if r.ID == id && (match == nil || match(r.Data)) {
			return r
		}
	}
	t.Fatalf("no %s region rendered", id)
	return mouse.Region{}
}

func click(m Model, r mouse.Region) (Model, tea.Cmd) {
	return step(m, tea.MouseMsg{
		X:      r.Rect.X,
		Y:      r.Rect.Y,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionPress,
	})
}

func hover(m Model, r mouse.Region) (Model, tea.Cmd) {
	return step(m, tea.MouseMsg{
		X:      r.Rect.X,
		Y:      r.Rect.Y,
		Button: tea.MouseButtonNone,
		Action: tea.MouseActionMotion,
	})
}

// linkedRow returns a model whose home page has one row named name with a
// link.
func linkedRow(t *testing.T, h *harness, name string) Model {
	t.Helper()
	m := h.model(t, "")
	m = press(m, "+")
	m = typeText(m, name)
	m = press(m, "esc", "l")
	m = typeText(m, "example.com")
	return press(m, "enter")
}

func TestMouse_ClickAddRowAndName(t *testing.T) {
	h := newHarness(t, true)
	m := h.model(t, "")

	m, _ = click(m, findRegion(t, m, regionAddRow, nil))
	if m.doc.Len() != 1 || m.context() != keymap.ContextRowEdit {
		t.Fatalf("add row: len=%d ctx=%q", m.doc.Len(), m.context())
	}
	m = press(m, "esc")

	ref := document.RowRef(m.doc.Rows()[0].ID)
	m, _ = click(m, findRegion(t, m, regionRowName, nil))
	if m.ui.editing != ref || m.ui.selectAll {
		t.Errorf("name click: editing=%+v selectAll=%v", m.ui.editing, m.ui.selectAll)
	}

	// Clicking the row body ends the edit and opens the link editor.
	m, _ = click(m, findRegion(t, m, regionRow, nil))
	if !m.ui.editing.IsZero() || m.context() != keymap.ContextLinkEditor {
		t.Errorf("row click: editing=%+v ctx=%q", m.ui.editing, m.context())
	}

	// The backdrop closes the modal.
	m, _ = click(m, findRegion(t, m, regionBackdrop, nil))
	if m.hasModal() {
		t.Error("backdrop click did not close the link editor")
	}
}

func TestMouse_ClickTrashDeletesUnlinkedRow(t *testing.T) {
	h := newHarness(t, true)
	m := h.model(t, "")
	m = press(m, "+", "esc")

	m, _ = click(m, findRegion(t, m, regionRowTrash, nil))
	if m.doc.Len() != 0 {
		t.Errorf("row not deleted: %d left", m.doc.Len())
	}
}

func TestMouse_CounterOpensResources(t *testing.T) {
	h := newHarness(t, true)
	m := h.model(t, "")
	m = press(m, "+", "esc")

	quizzes := func(data any) bool {
		c, ok := data.(counterRef)
		return ok && c.kind == document.KindQuizzes
	}
	m, _ = click(m, findRegion(t, m, regionRowCounter, quizzes))
	if !m.ui.resources.open || m.ui.resources.kind != document.KindQuizzes {
		t.Fatalf("resources = %+v", m.ui.resources)
	}

	m, _ = click(m, findRegion(t, m, regionResAdd, nil))
	if got := len(m.doc.Rows()[0].Resources.Quizzes); got != 1 {
		t.Errorf("quizzes = %d", got)
	}

	videos := func(data any) bool { return data == document.KindVideos }
	m, _ = click(m, findRegion(t, m, regionResTab, videos))
	if m.ui.resources.kind != document.KindVideos || !m.ui.editing.IsZero() {
		t.Errorf("tab click: kind=%q editing=%+v", m.ui.resources.kind, m.ui.editing)
	}
}

func TestMouse_HoverMenuLifecycle(t *testing.T) {
	h := newHarness(t, true)
	m := linkedRow(t, h, "A")
	ref := document.RowRef(m.doc.Rows()[0].ID)

	m, _ = hover(m, findRegion(t, m, regionRowTrash, nil))
	if !m.ui.rowMenu.open || !m.ui.rowMenu.hovered || m.ui.rowMenu.ref != ref {
		t.Fatalf("menu = %+v", m.ui.rowMenu)
	}

	// Moving onto the menu keeps it open without a pending close.
	m, _ = hover(m, findRegion(t, m, regionMenuDelete, nil))
	if !m.ui.rowMenu.open || m.timers.Pending(timer.RowMenu) {
		t.Fatalf("menu hover: %+v pending=%v", m.ui.rowMenu, m.timers.Pending(timer.RowMenu))
	}

	// Leaving schedules the close; coming back cancels it.
	m, cmd := hover(m, findRegion(t, m, regionAddRow, nil))
	if !m.timers.Pending(timer.RowMenu) {
		t.Fatal("leaving the menu scheduled no close")
	}
	stale := fired(t, cmd)
	m, _ = hover(m, findRegion(t, m, regionMenu, nil))
	m, _ = step(m, stale)
	if !m.ui.rowMenu.open {
		t.Fatal("cancelled close still fired")
	}

	m, cmd = hover(m, findRegion(t, m, regionAddRow, nil))
	m, _ = step(m, fired(t, cmd))
	if m.ui.rowMenu.open {
		t.Error("menu still open after the close delay")
	}
	if m.doc.Len() != 1 {
		t.Error("closing the menu deleted the row")
	}
}

func TestMouse_MenuDeleteLinkOnly(t *testing.T) {
	h := newHarness(t, true)
	m := linkedRow(t, h, "A")

	m, _ = click(m, findRegion(t, m, regionRowTrash, nil))
	if !m.ui.rowMenu.open {
		t.Fatal("trash click on a linked row did not open the menu")
	}
	m, _ = click(m, findRegion(t, m, regionMenuLink, nil))
	if m.ui.rowMenu.open {
		t.Error("menu still open")
	}
	if m.doc.Len() != 1 || m.doc.Rows()[0].HasLink() {
		t.Errorf("rows = %+v", m.doc.Rows())
	}

	// Opened again, the delete item removes the row.
	m, _ = click(m, findRegion(t, m, regionRowTrash, nil))
	if m.doc.Len() != 0 {
		t.Errorf("unlinked row not deleted: %d left", m.doc.Len())
	}
}

func TestMouse_HoverMenuLeavesKeysToList(t *testing.T) {
	h := newHarness(t, true)
	m := linkedRow(t, h, "A")
	m = press(m, "+")
	m = typeText(m, "B")
	m = press(m, "esc")
	linked := document.RowRef(m.doc.Rows()[0].ID)

	m, _ = hover(m, findRegion(t, m, regionRowTrash, func(data any) bool { return data == linked }))
	if !m.ui.rowMenu.open || m.ui.rowMenu.keyed {
		t.Fatalf("menu = %+v", m.ui.rowMenu)
	}
	if m.context() != keymap.ContextRows {
		t.Fatalf("context = %q with a hover menu, want rows", m.context())
	}

	m = press(m, "up")
	if m.doc.Len() != 2 || !m.doc.Rows()[0].HasLink() {
		t.Fatalf("up deleted through the hover menu: %v", names(m.doc.Rows()))
	}
	if m.ui.cursor != 0 {
		t.Errorf("cursor = %d after up, want 0", m.ui.cursor)
	}

	m = press(m, "right")
	if m.Category() == "" {
		t.Error("right did not leave the home page")
	}
	if m.ui.rowMenu.open {
		t.Error("menu survived the page change")
	}
}

func TestMouse_ScrollMovesCursor(t *testing.T) {
	h := newHarness(t, true)
	m := h.model(t, "")
	for range 5 {
		m = press(m, "+", "esc")
	}
	m = press(m, "k", "k", "k", "k", "k")
	if m.ui.cursor != 0 {
		t.Fatalf("cursor = %d", m.ui.cursor)
	}

	m, _ = step(m, tea.MouseMsg{X: 10, Y: 5, Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if m.ui.cursor != mouse.ScrollDelta {
		t.Errorf("cursor = %d after wheel, want %d", m.ui.cursor, mouse.ScrollDelta)
	}
}

func TestMouse_Disabled(t *testing.T) {
	h := newHarness(t, true)
	h.cfg.UI.Mouse = false
	m := h.model(t, "")

	r := findRegion(t, m, regionAddRow, nil)
	m, _ = click(m, r)
	if m.doc.Len() != 0 {
		t.Error("click handled with mouse disabled")
	}
}
