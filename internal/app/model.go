package app

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/notas/internal/config"
	"github.com/marcus/notas/internal/document"
	"github.com/marcus/notas/internal/keymap"
	"github.com/marcus/notas/internal/mouse"
	appmsg "github.com/marcus/notas/internal/msg"
	"github.com/marcus/notas/internal/navigator"
	"github.com/marcus/notas/internal/state"
	"github.com/marcus/notas/internal/store"
	"github.com/marcus/notas/internal/styles"
	"github.com/marcus/notas/internal/timer"
)

// ModalKind identifies an app-level modal with explicit priority ordering.
// Lower values = higher priority (checked first for rendering and input routing).
type ModalKind int

const (
	ModalNone        ModalKind = iota // No modal open
	ModalHelp                         // Help overlay (highest priority)
	ModalNewCategory                  // New category dialog
	ModalLinkEditor                   // Link editor
	ModalResources                    // Resource lists of one row
	ModalArchive                      // Checked rows (lowest priority)
)

// activeModal returns the highest-priority open modal.
// This is the single source of truth for which modal is currently active.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.ui.help:
		return ModalHelp
	case m.ui.newCategory:
		return ModalNewCategory
	case m.ui.link.open:
		return ModalLinkEditor
	case m.ui.resources.open:
		return ModalResources
	case m.ui.archive.open:
		return ModalArchive
	default:
		return ModalNone
	}
}

// hasModal returns true if any app-level modal is open.
func (m *Model) hasModal() bool {
	return m.activeModal() != ModalNone
}

// deleteMenu is the hover-delayed menu offered for entities with a link.
type deleteMenu struct {
	open bool
	ref  document.Ref
	// hovered is set while the pointer rests on the trash glyph or the menu.
	hovered bool
	// keyed menus were opened with the delete key and take keyboard input.
	// Mouse-opened menus leave keys to the list below them.
	keyed bool
}

type resourcesModal struct {
	open   bool
	rowID  string
	kind   document.ResourceKind
	cursor int // -1 until an item is focused
}

type archiveModal struct {
	open   bool
	cursor int
}

type linkEditor struct {
	open   bool
	target document.Ref
}

// focusIntent asks the update loop to start editing an entity as soon as it
// exists in the document. caret < 0 places the caret at the end.
type focusIntent struct {
	ref       document.Ref
	selectAll bool
	caret     int
}

// uiState is all transient interaction state.
type uiState struct {
	category string
	loaded   bool
	cursor   int

	// editing is the row or resource whose name the input is bound to.
	editing   document.Ref
	selectAll bool

	resources   resourcesModal
	archive     archiveModal
	link        linkEditor
	newCategory bool
	help        bool
	helpContext string

	rowMenu      deleteMenu
	resourceMenu deleteMenu

	focus *focusIntent

	// page is the 0-based slot of category among pages (home first).
	page, pages int

	zoom       float64
	access     bool
	showFooter bool

	width, height int
	ready         bool
}

// helpCache keeps the last rendered help sheet; glamour rendering is slow
// enough to notice on every frame.
type helpCache struct {
	key  string
	text string
}

// Model is the root Bubble Tea model for notas.
type Model struct {
	cfg    *config.Config
	store  *store.Store
	doc    *document.Document
	nav    *navigator.Navigator
	keymap *keymap.Registry
	timers *timer.Set
	mouse  *mouse.Handler
	logger *slog.Logger
	now    func() time.Time

	input textinput.Model
	help  help.Model

	ui        uiState
	helpCache *helpCache

	// Last successful write of the open category.
	lastSaved time.Time

	// Status/toast messages
	statusMsg     string
	statusIsError bool
	toastSeq      int

	configUpdates <-chan *config.Config
}

// Options configures New.
type Options struct {
	Config *config.Config
	Store  *store.Store
	Keymap *keymap.Registry
	Logger *slog.Logger

	// Category is the slug opened first; "" is home.
	Category string

	// ConfigUpdates delivers hot-reloaded configs, may be nil.
	ConfigUpdates <-chan *config.Config

	// Now replaces the clock used for ids, generated slugs and the footer.
	Now func() time.Time
}

// New creates the root model. The store must already be open.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	km := opts.Keymap
	if km == nil {
		km = BuildKeymap(cfg.Keymap.Overrides, logger)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	nav := navigator.New(opts.Store, logger)
	nav.SetClock(now)

	input := textinput.New()
	input.Prompt = ""
	input.Cursor.SetMode(cursor.CursorStatic)
	input.Cursor.Style = styles.Cursor

	h := help.New()
	h.ShortSeparator = "  "

	m := Model{
		cfg:           cfg,
		store:         opts.Store,
		doc:           document.New(nil, document.NewIDSourceWithClock(now)),
		nav:           nav,
		keymap:        km,
		timers:        &timer.Set{},
		mouse:         mouse.NewHandler(),
		logger:        logger,
		now:           now,
		input:         input,
		help:          h,
		helpCache:     &helpCache{},
		configUpdates: opts.ConfigUpdates,
	}
	m.ui.category = opts.Category
	m.ui.zoom = opts.Store.Zoom()
	m.ui.access = opts.Store.AccessGranted()
	m.ui.showFooter = cfg.UI.ShowFooter && !state.GetFooterHidden()

	if m.ui.access {
		m.openCategory(opts.Category)
	}
	return m
}

// Init starts the clock tick and the config listener.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.configUpdates != nil {
		cmds = append(cmds, listenConfig(m.configUpdates))
	}
	return tea.Batch(cmds...)
}

// Category returns the slug of the open category.
func (m Model) Category() string { return m.ui.category }

// context derives the keymap context from the UI state.
func (m *Model) context() string {
	switch {
	case m.ui.help:
		return keymap.ContextHelp
	case !m.ui.access:
		return keymap.ContextGate
	case m.ui.rowMenu.keyed || m.ui.resourceMenu.keyed:
		return keymap.ContextDeleteMenu
	}

	switch m.activeModal() {
	case ModalNewCategory:
		return keymap.ContextNewCategory
	case ModalLinkEditor:
		return keymap.ContextLinkEditor
	case ModalResources:
		if m.ui.editing.IsResource() {
			return keymap.ContextResourceEdit
		}
		return keymap.ContextResources
	case ModalArchive:
		if !m.ui.editing.IsZero() {
			return keymap.ContextArchiveEdit
		}
		return keymap.ContextArchive
	}

	if !m.ui.editing.IsZero() {
		return keymap.ContextRowEdit
	}
	return keymap.ContextRows
}

// ShowToast displays a status message until the returned command expires it.
func (m *Model) ShowToast(text string, d time.Duration, isError bool) tea.Cmd {
	m.toastSeq++
	m.statusMsg = text
	m.statusIsError = isError
	return appmsg.ExpireToast(m.toastSeq, d)
}

// ClearToast clears the status message.
func (m *Model) ClearToast() {
	m.statusMsg = ""
	m.statusIsError = false
}

// contentWidth is the width of the row column at the current zoom.
func (m *Model) contentWidth() int {
	w := int(float64(m.cfg.UI.BaseWidth)*m.ui.zoom + 0.5)
	if m.ui.width > 0 && w > m.ui.width-2 {
		w = m.ui.width - 2
	}
	return max(w, 20)
}
