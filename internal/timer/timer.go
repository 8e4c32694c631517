// Package timer provides cancellable, named timers for a Bubble Tea program.
// Each purpose has a generation counter; scheduling or cancelling bumps it,
// so ticks from earlier schedules are recognised as stale and ignored.
package timer

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Purpose names a timer.
type Purpose string

const (
	Save         Purpose = "save"
	RowMenu      Purpose = "row-menu"
	ResourceMenu Purpose = "resource-menu"
)

// FiredMsg is delivered when a scheduled timer elapses.
type FiredMsg struct {
	Purpose Purpose
	Gen     int
}

// Set tracks the live generation of every purpose. The zero value is ready
// to use. A Set belongs to the update loop and is not safe for concurrent
// use.
type Set struct {
	gen     map[Purpose]int
	pending map[Purpose]bool
}

func (s *Set) init() {
	if s.gen == nil {
		s.gen = make(map[Purpose]int)
		s.pending = make(map[Purpose]bool)
	}
}

// Schedule (re)starts the timer for p and returns the command that fires it
// after d. Any earlier schedule of p is superseded.
func (s *Set) Schedule(p Purpose, d time.Duration) tea.Cmd {
	s.init()
	s.gen[p]++
	s.pending[p] = true
	gen := s.gen[p]
	return tea.Tick(d, func(time.Time) tea.Msg {
		return FiredMsg{Purpose: p, Gen: gen}
	})
}

// Cancel stops the timer for p. It reports whether one was pending.
func (s *Set) Cancel(p Purpose) bool {
	s.init()
	was := s.pending[p]
	s.gen[p]++
	s.pending[p] = false
	return was
}

// Fire consumes msg and reports whether it belongs to the live schedule.
// Stale ticks return false.
func (s *Set) Fire(msg FiredMsg) bool {
	s.init()
	if !s.pending[msg.Purpose] || s.gen[msg.Purpose] != msg.Gen {
		return false
	}
	s.pending[msg.Purpose] = false
	return true
}

// Pending reports whether a timer for p is scheduled and has not fired.
func (s *Set) Pending(p Purpose) bool {
	return s.pending[p]
}
