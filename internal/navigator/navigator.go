// Package navigator moves between categories: the implicit home slot
// followed by every slug of the stored index, in order.
package navigator

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/marcus/notas/internal/slug"
)

// Direction of a relative move.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Slug prefixes of generated categories.
const (
	GeneratedPrefix = "nota"
	DialogPrefix    = "categoria"
)

// Index is the category index the navigator reads and edits.
type Index interface {
	Categories() []string
	EnsurePresent(slug string) error
	DeleteCategory(slug string) error
	SaveCategories(list []string) error
}

// Outcome describes the result of a Step.
type Outcome struct {
	// Target is the category to show next; "" is home.
	Target string
	// Created is set when Target was generated by this step.
	Created bool
	// Pruned is set when the category being left was deleted.
	Pruned bool
	// Moved is false when the caller should stay where it is.
	Moved bool
}

// Navigator applies category moves to an Index.
type Navigator struct {
	index  Index
	logger *slog.Logger
	now    func() time.Time
}

// New creates a Navigator over index.
func New(index Index, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{index: index, logger: logger, now: time.Now}
}

// SetClock replaces the clock used for generated slugs.
func (n *Navigator) SetClock(now func() time.Time) {
	n.now = now
}

// Step moves one slot from current in dir. meaningful reports whether the
// current category holds content worth keeping; empty categories are pruned
// when they are left.
func (n *Navigator) Step(current string, meaningful bool, dir Direction) (Outcome, error) {
	list := n.index.Categories()
	stay := Outcome{Target: current}

	if current == "" {
		if dir == Backward {
			if len(list) == 0 {
				return stay, nil
			}
			return moveTo(list[len(list)-1]), nil
		}
		if len(list) > 0 {
			return moveTo(list[0]), nil
		}
		if meaningful {
			return n.create()
		}
		return stay, nil
	}

	idx := indexOf(list, current)
	if idx < 0 {
		if err := n.index.EnsurePresent(current); err != nil {
			return stay, fmt.Errorf("register %s: %w", current, err)
		}
		return stay, nil
	}

	next := idx + int(dir)
	switch {
	case next >= 0 && next < len(list):
		out := moveTo(list[next])
		if !meaningful {
			if err := n.prune(current); err != nil {
				return stay, err
			}
			out.Pruned = true
		}
		return out, nil

	case dir == Forward:
		if meaningful {
			return n.create()
		}
		if err := n.prune(current); err != nil {
			return stay, err
		}
		return Outcome{Pruned: true, Moved: true}, nil

	default:
		out := Outcome{Moved: true}
		if !meaningful {
			if err := n.prune(current); err != nil {
				return stay, err
			}
			out.Pruned = true
		}
		return out, nil
	}
}

// Create registers the category named name and returns its slug. A blank
// name, or one that slugifies to nothing, gets a generated slug.
func (n *Navigator) Create(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = slug.Generated(DialogPrefix, n.now())
	}
	s := slug.Slugify(name)
	if s == "" {
		s = slug.Generated(DialogPrefix, n.now())
	}
	if err := n.index.EnsurePresent(s); err != nil {
		return "", fmt.Errorf("create category %s: %w", s, err)
	}
	n.logger.Info("category created", "slug", s)
	return s, nil
}

func (n *Navigator) create() (Outcome, error) {
	s := slug.Generated(GeneratedPrefix, n.now())
	list := n.index.Categories()
	if err := n.index.SaveCategories(append(list, s)); err != nil {
		return Outcome{}, fmt.Errorf("create category %s: %w", s, err)
	}
	n.logger.Info("category created", "slug", s)
	return Outcome{Target: s, Created: true, Moved: true}, nil
}

func (n *Navigator) prune(s string) error {
	if err := n.index.DeleteCategory(s); err != nil {
		return fmt.Errorf("prune %s: %w", s, err)
	}
	n.logger.Info("empty category pruned", "slug", s)
	return nil
}

func moveTo(s string) Outcome {
	return Outcome{Target: s, Moved: true}
}

func indexOf(list []string, s string) int {
	for i, c := range list {
		if c == s {
			return i
		}
	}
	return -1
}
