// Package mouse provides hit testing and click classification for terminal
// mouse events.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DoubleClickThreshold is the longest gap between two clicks on the same
// region that still counts as a double click.
const DoubleClickThreshold = 400 * time.Millisecond

// ScrollDelta is the number of lines one wheel notch scrolls.
const ScrollDelta = 3

// Rect is a screen rectangle. The right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named clickable area with optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds the regions of the last rendered frame. Later regions sit on
// top of earlier ones.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, r Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: r, Data: data})
}

// AddRect registers a region from its coordinates.
func (h *HitMap) AddRect(id string, x, y, w, ht int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: ht}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes every region.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a mouse event.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionHover
	ActionScrollUp
	ActionScrollDown
)

// Action is the classified result of a mouse event.
type Action struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int
}

// Handler classifies mouse events against a HitMap.
type Handler struct {
	HitMap *HitMap

	now       func() time.Time
	lastID    string
	lastClick time.Time
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap(), now: time.Now}
}

// Clear drops every region.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleMouse classifies msg.
func (h *Handler) HandleMouse(msg tea.MouseMsg) Action {
	a := Action{X: msg.X, Y: msg.Y}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		a.Type = ActionScrollUp
		a.Delta = -ScrollDelta
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		return a
	case tea.MouseButtonWheelDown:
		a.Type = ActionScrollDown
		a.Delta = ScrollDelta
		a.Region = h.HitMap.Test(msg.X, msg.Y)
		return a
	}

	switch msg.Action {
	case tea.MouseActionMotion:
		a.Type = ActionHover
		a.Region = h.HitMap.Test(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return a
		}
		region := h.HitMap.Test(msg.X, msg.Y)
		if region == nil {
			h.lastID = ""
			return a
		}
		a.Region = region
		a.Type = ActionClick
		if h.isDoubleClick(region.ID) {
			a.Type = ActionDoubleClick
		}
	}
	return a
}

func (h *Handler) isDoubleClick(id string) bool {
	now := h.now()
	double := id == h.lastID && now.Sub(h.lastClick) <= DoubleClickThreshold
	if double {
		h.lastID = ""
		h.lastClick = time.Time{}
		return true
	}
	h.lastID = id
	h.lastClick = now
	return false
}
