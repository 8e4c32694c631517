package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/marcus/notas/internal/keymap"
	"github.com/marcus/notas/internal/styles"
	"github.com/marcus/notas/internal/ui"
)

type helpSection struct {
	title   string
	context string
}

// helpSections lists the contexts shown in the help sheet, in order.
var helpSections = []helpSection{
	{"Rows", keymap.ContextRows},
	{"Editing a name", keymap.ContextRowEdit},
	{"Resources", keymap.ContextResources},
	{"Archive", keymap.ContextArchive},
	{"Delete menu", keymap.ContextDeleteMenu},
	{"Link editor", keymap.ContextLinkEditor},
	{"Anywhere", keymap.ContextGlobal},
}

// helpMarkdown builds the cheat sheet from the live bindings. The section of
// the context help was opened from comes first.
func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("Pages hold rows; rows hold videos, true/false items and quizzes.\n")

	sections := make([]helpSection, 0, len(helpSections))
	for _, s := range helpSections {
		if s.context == m.ui.helpContext {
			sections = append(sections, s)
		}
	}
	for _, s := range helpSections {
		if s.context != m.ui.helpContext {
			sections = append(sections, s)
		}
	}

	for _, s := range sections {
		bindings := m.keymap.HelpBindings(s.context)
		if len(bindings) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n## %s\n\n| key | action |\n| --- | --- |\n", s.title)
		for _, kb := range bindings {
			h := kb.Help()
			fmt.Fprintf(&b, "| `%s` | %s |\n", h.Key, h.Desc)
		}
	}
	return b.String()
}

// renderHelp renders the help markdown for width cells, reusing the last
// result while the keymap and width are unchanged.
func (m Model) renderHelp(width int) string {
	key := fmt.Sprintf("%p/%d/%s", m.keymap, width, m.ui.helpContext)
	if m.helpCache.key == key {
		return m.helpCache.text
	}

	md := m.helpMarkdown()
	text := md
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(styles.CurrentMarkdownTheme),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Warn("glamour init failed", "err", err)
	} else if out, err := r.Render(md); err != nil {
		m.logger.Warn("render help", "err", err)
	} else {
		text = strings.Trim(out, "\n")
	}

	m.helpCache.key = key
	m.helpCache.text = text
	return text
}

// renderHelpOverlay renders the help modal over content.
func (m Model) renderHelpOverlay(content string) string {
	inner := m.dialogInner(ui.ModalWidthLarge)
	text := m.renderHelp(inner)

	// Keep the modal on screen: border, padding, title and hints.
	if maxLines := m.ui.height - 9; maxLines > 0 {
		if lines := strings.Split(text, "\n"); len(lines) > maxLines {
			text = strings.Join(lines[:maxLines], "\n")
		}
	}

	d := ui.Dialog{
		Title: "Keyboard Shortcuts",
		Body:  text,
		Hints: "Press ? or esc to close",
		Width: ui.ModalWidthLarge,
	}
	out, _, _ := m.placeDialog(content, d, nil)
	return out
}
