package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/keymap"
	appmsg "github.com/marcus/notas/internal/msg"
	"github.com/marcus/notas/internal/navigator"
	"github.com/marcus/notas/internal/store"
	"github.com/marcus/notas/internal/timer"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyMsg(msg)

	case tea.MouseMsg:
		if m.cfg.UI.Mouse {
			cmd = m.handleMouseMsg(msg)
		}

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.ready = true

	case TickMsg:
		return m, tickCmd()

	case timer.FiredMsg:
		cmd = m.handleTimer(msg)

	case appmsg.ToastMsg:
		cmd = m.ShowToast(msg.Message, msg.Duration, msg.IsError)

	case appmsg.ToastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.ClearToast()
		}

	case linkOpenedMsg:
		if msg.Err != nil {
			m.logger.Error("open link", "url", msg.URL, "err", msg.Err)
			cmd = appmsg.ShowError("Could not open link: " + msg.Err.Error())
		}

	case configReloadedMsg:
		m.applyConfig(msg.Config)
		cmd = tea.Batch(listenConfig(m.configUpdates), appmsg.ShowToast("Config reloaded", toastDuration))
	}

	m.applyFocusIntent()
	return m, cmd
}

// handleKeyMsg processes keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) tea.Cmd {
	// Escape closes an open delete menu before anything else sees it.
	if msg.Type == tea.KeyEsc && m.closeDeleteMenus() {
		return nil
	}

	ctx := m.context()
	if command, ok := m.keymap.Handle(msg, ctx); ok {
		return m.runCommand(ctx, command)
	}
	if keymap.IsTextContext(ctx) {
		return m.updateInput(msg)
	}
	return nil
}

// runCommand executes a keymap command in ctx.
func (m *Model) runCommand(ctx, command string) tea.Cmd {
	switch command {
	case keymap.CmdQuit:
		return m.quit()
	case keymap.CmdHelp:
		m.ui.help = true
		m.ui.helpContext = ctx
	case keymap.CmdToggleFooter:
		return m.toggleFooter()
	case keymap.CmdZoomIn:
		return m.setZoom(store.AdjustZoom(m.ui.zoom, store.ZoomStep))
	case keymap.CmdZoomOut:
		return m.setZoom(store.AdjustZoom(m.ui.zoom, -store.ZoomStep))
	case keymap.CmdZoomReset:
		return m.setZoom(store.DefaultZoom)
	case keymap.CmdGrantAccess:
		return m.grantAccess()

	case keymap.CmdAddRow:
		return m.addRow()
	case keymap.CmdNextCategory:
		return m.navigate(navigator.Forward)
	case keymap.CmdPrevCategory:
		return m.navigate(navigator.Backward)
	case keymap.CmdNewCategory:
		m.openNewCategory()
	case keymap.CmdOpenArchive:
		m.openArchive()
	case keymap.CmdExport:
		return m.exportAll()

	case keymap.CmdCursorDown:
		m.moveCursor(1)
	case keymap.CmdCursorUp:
		m.moveCursor(-1)
	case keymap.CmdActivate:
		if ref, ok := m.selectedRef(); ok {
			return m.activate(ref)
		}
	case keymap.CmdRename:
		if ref, ok := m.selectedRef(); ok {
			// Renaming from the resource list selects the whole name.
			m.startEdit(ref, ctx == keymap.ContextResources, -1)
		}
	case keymap.CmdToggleChecked:
		if ref, ok := m.selectedRef(); ok {
			return m.toggleChecked(ref.RowID)
		}
	case keymap.CmdDelete:
		if ref, ok := m.selectedRef(); ok {
			return m.requestDelete(ref)
		}
	case keymap.CmdEditLink:
		if ref, ok := m.selectedRef(); ok {
			m.openLinkEditor(ref)
		}
	case keymap.CmdCopyLink:
		if ref, ok := m.selectedRef(); ok {
			return m.copyLink(ref)
		}
	case keymap.CmdOpenVideos:
		m.openResourcesAtCursor(document.KindVideos)
	case keymap.CmdOpenTrueFalse:
		m.openResourcesAtCursor(document.KindTrueFalse)
	case keymap.CmdOpenQuizzes:
		m.openResourcesAtCursor(document.KindQuizzes)

	case keymap.CmdAddResource:
		return m.addResource()
	case keymap.CmdNextKind:
		m.cycleKind(1)
	case keymap.CmdPrevKind:
		m.cycleKind(-1)

	case keymap.CmdInsertAfter:
		return m.insertAfter()
	case keymap.CmdFinishEdit:
		m.finishEdit()

	case keymap.CmdSaveLink:
		return m.saveLink()
	case keymap.CmdCreateCategory:
		return m.createCategory()

	case keymap.CmdDeleteEntity, keymap.CmdDeleteLink:
		if ref, ok := m.keyedMenuRef(); ok {
			return m.menuDelete(ref, command == keymap.CmdDeleteLink)
		}

	case keymap.CmdClose:
		m.closeTop(ctx)
	}
	return nil
}

// updateInput forwards a key to the focused text input. The name being
// edited follows the input on every keystroke.
func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	if m.ui.selectAll {
		m.ui.selectAll = false
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.input.SetValue("")
		case tea.KeyBackspace, tea.KeyDelete:
			m.input.SetValue("")
			return m.syncEditing()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.syncEditing())
}

// syncEditing copies the input value into the entity being renamed.
func (m *Model) syncEditing() tea.Cmd {
	ref := m.ui.editing
	if ref.IsZero() {
		return nil
	}
	value := m.input.Value()
	if m.doc.Name(ref) == value {
		return nil
	}
	if !m.doc.Rename(ref, value) {
		return nil
	}
	return m.markDirty()
}

// handleTimer dispatches a fired timer if it is still live.
func (m *Model) handleTimer(msg timer.FiredMsg) tea.Cmd {
	if !m.timers.Fire(msg) {
		return nil
	}
	switch msg.Purpose {
	case timer.Save:
		return m.saveFailed(m.write())
	case timer.RowMenu:
		if !m.ui.rowMenu.hovered {
			m.ui.rowMenu = deleteMenu{}
		}
	case timer.ResourceMenu:
		if !m.ui.resourceMenu.hovered {
			m.ui.resourceMenu = deleteMenu{}
		}
	}
	return nil
}

// applyFocusIntent starts editing the pending focus target once it exists.
func (m *Model) applyFocusIntent() {
	fi := m.ui.focus
	if fi == nil || !m.doc.Exists(fi.ref) {
		return
	}
	m.ui.focus = nil
	m.reveal(fi.ref)
	m.startEdit(fi.ref, fi.selectAll, fi.caret)
}

// toastDuration is used for confirmations that need no attention.
const toastDuration = 2 * time.Second
