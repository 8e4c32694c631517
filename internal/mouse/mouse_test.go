package mouse

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestRect_Contains(t *testing.T) {
	r := Rect{X: 4, Y: 2, W: 20, H: 1}

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"first cell", 4, 2, true},
		{"last cell", 23, 2, true},
		{"right edge exclusive", 24, 2, false},
		{"line below", 10, 3, false},
		{"left of rect", 3, 2, false},
		{"origin", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	if (Rect{X: 1, Y: 1}).Contains(1, 1) {
		t.Error("empty rect should contain nothing")
	}
}

func TestHitMap(t *testing.T) {
	hm := NewHitMap()
	hm.AddRect("row", 0, 3, 60, 1, "row-1")
	hm.Add("trash", Rect{X: 56, Y: 3, W: 3, H: 1}, "row-1")

	if r := hm.Test(10, 3); r == nil || r.ID != "row" || r.Data != "row-1" {
		t.Fatalf("row body hit = %+v", r)
	}
	if r := hm.Test(57, 3); r == nil || r.ID != "trash" {
		t.Fatalf("nested control should win, got %+v", r)
	}
	if hm.Test(10, 4) != nil {
		t.Error("miss returned a region")
	}

	regions := hm.Regions()
	regions[0].ID = "mutated"
	if hm.Regions()[0].ID != "row" {
		t.Error("Regions exposed internal slice")
	}

	hm.Clear()
	if hm.Test(10, 3) != nil {
		t.Error("hit after Clear")
	}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft, X: x, Y: y}
}

func TestHandleMouse_Clicks(t *testing.T) {
	h := NewHandler()
	clock := time.UnixMilli(0)
	h.now = func() time.Time { return clock }
	h.HitMap.AddRect("name", 0, 0, 10, 1, nil)
	h.HitMap.AddRect("other", 0, 1, 10, 1, nil)

	if a := h.HandleMouse(press(2, 0)); a.Type != ActionClick || a.Region.ID != "name" {
		t.Fatalf("first press = %+v", a)
	}
	clock = clock.Add(100 * time.Millisecond)
	if a := h.HandleMouse(press(3, 0)); a.Type != ActionDoubleClick {
		t.Errorf("second press = %v, want double click", a.Type)
	}
	clock = clock.Add(100 * time.Millisecond)
	if a := h.HandleMouse(press(3, 0)); a.Type != ActionClick {
		t.Errorf("third press = %v, want click", a.Type)
	}

	clock = clock.Add(DoubleClickThreshold + time.Millisecond)
	if a := h.HandleMouse(press(3, 0)); a.Type != ActionClick {
		t.Errorf("slow second press = %v, want click", a.Type)
	}

	clock = clock.Add(10 * time.Millisecond)
	if a := h.HandleMouse(press(3, 1)); a.Type != ActionClick {
		t.Errorf("press on another region = %v, want click", a.Type)
	}

	if a := h.HandleMouse(press(50, 50)); a.Type != ActionNone || a.Region != nil {
		t.Errorf("miss = %+v", a)
	}

	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight, X: 2, Y: 0}
	if a := h.HandleMouse(right); a.Type != ActionNone {
		t.Errorf("right button = %v", a.Type)
	}
}

func TestHandleMouse_Hover(t *testing.T) {
	h := NewHandler()
	h.HitMap.AddRect("trash", 5, 5, 3, 1, nil)

	a := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 6, Y: 5})
	if a.Type != ActionHover || a.Region == nil || a.Region.ID != "trash" {
		t.Errorf("hover = %+v", a)
	}
	a = h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionMotion, X: 0, Y: 0})
	if a.Type != ActionHover || a.Region != nil {
		t.Errorf("hover miss = %+v", a)
	}
}

func TestHandleMouse_Scroll(t *testing.T) {
	h := NewHandler()
	up := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if up.Type != ActionScrollUp || up.Delta != -ScrollDelta {
		t.Errorf("wheel up = %+v", up)
	}
	down := h.HandleMouse(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if down.Type != ActionScrollDown || down.Delta != ScrollDelta {
		t.Errorf("wheel down = %+v", down)
	}
}
