package keymap

// Contexts. The app derives exactly one from its state on every key press.
const (
	ContextGlobal       = "global"
	ContextGate         = "gate"
	ContextRows         = "rows"
	ContextRowEdit      = "row-edit"
	ContextResources    = "resources"
	ContextResourceEdit = "resource-edit"
	ContextArchive      = "archive"
	ContextArchiveEdit  = "archive-edit"
	ContextLinkEditor   = "link-editor"
	ContextNewCategory  = "new-category"
	ContextDeleteMenu   = "delete-menu"
	ContextHelp         = "help"
)

// Commands.
const (
	CmdQuit         = "quit"
	CmdHelp         = "help"
	CmdToggleFooter = "toggle-footer"
	CmdZoomIn       = "zoom-in"
	CmdZoomOut      = "zoom-out"
	CmdZoomReset    = "zoom-reset"

	CmdGrantAccess = "grant-access"

	CmdAddRow        = "add-row"
	CmdNextCategory  = "next-category"
	CmdPrevCategory  = "prev-category"
	CmdNewCategory   = "new-category"
	CmdOpenArchive   = "open-archive"
	CmdExport        = "export"
	CmdCursorDown    = "cursor-down"
	CmdCursorUp      = "cursor-up"
	CmdActivate      = "activate"
	CmdRename        = "rename"
	CmdToggleChecked = "toggle-checked"
	CmdDelete        = "delete"
	CmdEditLink      = "edit-link"
	CmdCopyLink      = "copy-link"
	CmdOpenVideos    = "open-videos"
	CmdOpenTrueFalse = "open-true-false"
	CmdOpenQuizzes   = "open-quizzes"

	CmdAddResource = "add-resource"
	CmdNextKind    = "next-kind"
	CmdPrevKind    = "prev-kind"

	CmdInsertAfter = "insert-after"
	CmdFinishEdit  = "finish-edit"

	CmdSaveLink       = "save-link"
	CmdCreateCategory = "create-category"

	CmdDeleteEntity = "delete-entity"
	CmdDeleteLink   = "delete-link"

	CmdClose = "close"
)

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings; reachable from text contexts too, so only chords.
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "alt+=", Command: CmdZoomIn, Context: ContextGlobal},
		{Key: "alt++", Command: CmdZoomIn, Context: ContextGlobal},
		{Key: "alt+-", Command: CmdZoomOut, Context: ContextGlobal},
		{Key: "alt+_", Command: CmdZoomOut, Context: ContextGlobal},
		{Key: "ctrl+_", Command: CmdZoomOut, Context: ContextGlobal},
		{Key: "alt+0", Command: CmdZoomReset, Context: ContextGlobal},

		// Access gate
		{Key: "enter", Command: CmdGrantAccess, Context: ContextGate},
		{Key: "?", Command: CmdHelp, Context: ContextGate},
		{Key: "q", Command: CmdQuit, Context: ContextGate},

		// Rows (main list)
		{Key: "+", Command: CmdAddRow, Context: ContextRows},
		{Key: "=", Command: CmdAddRow, Context: ContextRows},
		{Key: "right", Command: CmdNextCategory, Context: ContextRows},
		{Key: "left", Command: CmdPrevCategory, Context: ContextRows},
		{Key: "j", Command: CmdCursorDown, Context: ContextRows},
		{Key: "down", Command: CmdCursorDown, Context: ContextRows},
		{Key: "k", Command: CmdCursorUp, Context: ContextRows},
		{Key: "up", Command: CmdCursorUp, Context: ContextRows},
		{Key: "enter", Command: CmdActivate, Context: ContextRows},
		{Key: "r", Command: CmdRename, Context: ContextRows},
		{Key: " ", Command: CmdToggleChecked, Context: ContextRows},
		{Key: "x", Command: CmdDelete, Context: ContextRows},
		{Key: "l", Command: CmdEditLink, Context: ContextRows},
		{Key: "y", Command: CmdCopyLink, Context: ContextRows},
		{Key: "1", Command: CmdOpenVideos, Context: ContextRows},
		{Key: "2", Command: CmdOpenTrueFalse, Context: ContextRows},
		{Key: "3", Command: CmdOpenQuizzes, Context: ContextRows},
		{Key: "h", Command: CmdOpenArchive, Context: ContextRows},
		{Key: "e", Command: CmdExport, Context: ContextRows},
		{Key: "n", Command: CmdNewCategory, Context: ContextRows},
		{Key: "ctrl+h", Command: CmdToggleFooter, Context: ContextRows},
		{Key: "?", Command: CmdHelp, Context: ContextRows},
		{Key: "q", Command: CmdQuit, Context: ContextRows},

		// Row name input
		{Key: "enter", Command: CmdInsertAfter, Context: ContextRowEdit},
		{Key: "esc", Command: CmdFinishEdit, Context: ContextRowEdit},

		// Resource modal
		{Key: "+", Command: CmdAddResource, Context: ContextResources},
		{Key: "=", Command: CmdAddResource, Context: ContextResources},
		{Key: "down", Command: CmdCursorDown, Context: ContextResources},
		{Key: "j", Command: CmdCursorDown, Context: ContextResources},
		{Key: "up", Command: CmdCursorUp, Context: ContextResources},
		{Key: "k", Command: CmdCursorUp, Context: ContextResources},
		{Key: "enter", Command: CmdRename, Context: ContextResources},
		{Key: "o", Command: CmdActivate, Context: ContextResources},
		{Key: "x", Command: CmdDelete, Context: ContextResources},
		{Key: "l", Command: CmdEditLink, Context: ContextResources},
		{Key: "y", Command: CmdCopyLink, Context: ContextResources},
		{Key: "tab", Command: CmdNextKind, Context: ContextResources},
		{Key: "shift+tab", Command: CmdPrevKind, Context: ContextResources},
		{Key: "esc", Command: CmdClose, Context: ContextResources},

		// Resource name input
		{Key: "enter", Command: CmdInsertAfter, Context: ContextResourceEdit},
		{Key: "esc", Command: CmdFinishEdit, Context: ContextResourceEdit},

		// Archive view
		{Key: "j", Command: CmdCursorDown, Context: ContextArchive},
		{Key: "down", Command: CmdCursorDown, Context: ContextArchive},
		{Key: "k", Command: CmdCursorUp, Context: ContextArchive},
		{Key: "up", Command: CmdCursorUp, Context: ContextArchive},
		{Key: " ", Command: CmdToggleChecked, Context: ContextArchive},
		{Key: "r", Command: CmdRename, Context: ContextArchive},
		{Key: "enter", Command: CmdActivate, Context: ContextArchive},
		{Key: "x", Command: CmdDelete, Context: ContextArchive},
		{Key: "h", Command: CmdClose, Context: ContextArchive},
		{Key: "esc", Command: CmdClose, Context: ContextArchive},

		// Archived row name input
		{Key: "enter", Command: CmdFinishEdit, Context: ContextArchiveEdit},
		{Key: "esc", Command: CmdFinishEdit, Context: ContextArchiveEdit},

		// Link editor
		{Key: "enter", Command: CmdSaveLink, Context: ContextLinkEditor},
		{Key: "esc", Command: CmdClose, Context: ContextLinkEditor},

		// New category dialog
		{Key: "enter", Command: CmdCreateCategory, Context: ContextNewCategory},
		{Key: "esc", Command: CmdClose, Context: ContextNewCategory},

		// Delete menu
		{Key: "d", Command: CmdDeleteEntity, Context: ContextDeleteMenu},
		{Key: "l", Command: CmdDeleteLink, Context: ContextDeleteMenu},
		{Key: "esc", Command: CmdClose, Context: ContextDeleteMenu},

		// Help overlay
		{Key: "?", Command: CmdClose, Context: ContextHelp},
		{Key: "esc", Command: CmdClose, Context: ContextHelp},
		{Key: "q", Command: CmdClose, Context: ContextHelp},
	}
}

// commandNames are the short labels shown in help.
var commandNames = map[string]string{
	CmdQuit:           "quit",
	CmdHelp:           "help",
	CmdToggleFooter:   "footer",
	CmdZoomIn:         "zoom in",
	CmdZoomOut:        "zoom out",
	CmdZoomReset:      "reset zoom",
	CmdGrantAccess:    "grant access",
	CmdAddRow:         "add row",
	CmdNextCategory:   "next page",
	CmdPrevCategory:   "prev page",
	CmdNewCategory:    "new page",
	CmdOpenArchive:    "archive",
	CmdExport:         "export",
	CmdCursorDown:     "down",
	CmdCursorUp:       "up",
	CmdActivate:       "open",
	CmdRename:         "rename",
	CmdToggleChecked:  "check",
	CmdDelete:         "delete",
	CmdEditLink:       "link",
	CmdCopyLink:       "copy link",
	CmdOpenVideos:     "videos",
	CmdOpenTrueFalse:  "true/false",
	CmdOpenQuizzes:    "quizzes",
	CmdAddResource:    "add",
	CmdNextKind:       "next list",
	CmdPrevKind:       "prev list",
	CmdInsertAfter:    "new below",
	CmdFinishEdit:     "done",
	CmdSaveLink:       "save",
	CmdCreateCategory: "create",
	CmdDeleteEntity:   "delete",
	CmdDeleteLink:     "delete link",
	CmdClose:          "close",
}

// CommandName returns the help label of a command.
func CommandName(cmd string) string {
	if name, ok := commandNames[cmd]; ok {
		return name
	}
	return cmd
}
