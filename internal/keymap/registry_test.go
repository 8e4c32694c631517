package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func defaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestLookup(t *testing.T) {
	r := defaults()
	tests := []struct {
		context string
		key     string
		want    string
		ok      bool
	}{
		{ContextRows, "+", CmdAddRow, true},
		{ContextRows, "=", CmdAddRow, true},
		{ContextResources, "+", CmdAddResource, true},
		{ContextResources, "enter", CmdRename, true},
		{ContextGate, "enter", CmdGrantAccess, true},
		{ContextRows, "right", CmdNextCategory, true},
		{ContextRows, "left", CmdPrevCategory, true},
		{ContextRows, "h", CmdOpenArchive, true},
		{ContextRows, "e", CmdExport, true},
		{ContextRows, " ", CmdToggleChecked, true},
		{ContextRows, "alt+=", CmdZoomIn, true},
		{ContextRowEdit, "alt+-", CmdZoomOut, true},
		{ContextLinkEditor, "alt+0", CmdZoomReset, true},
		{ContextRowEdit, "q", "", false},
		{ContextRowEdit, "+", "", false},
		{ContextRowEdit, "ctrl+c", CmdQuit, true},
		{ContextDeleteMenu, "d", CmdDeleteEntity, true},
		{ContextDeleteMenu, "l", CmdDeleteLink, true},
		{ContextDeleteMenu, "up", "", false},
		{ContextDeleteMenu, "down", "", false},
		{ContextResources, "right", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.context+"/"+tt.key, func(t *testing.T) {
			got, ok := r.Lookup(tt.context, tt.key)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Lookup(%q, %q) = %q, %v; want %q, %v", tt.context, tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	r := defaults()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'='}, Alt: true}
	if got, ok := r.Handle(msg, ContextRows); !ok || got != CmdZoomIn {
		t.Errorf("alt+= resolved to %q, %v", got, ok)
	}
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	if got, ok := r.Handle(space, ContextRows); !ok || got != CmdToggleChecked {
		t.Errorf("space resolved to %q, %v", got, ok)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := defaults()

	if !r.SetUserOverride("a", CmdAddRow) {
		t.Fatal("override rejected")
	}
	if got, _ := r.Lookup(ContextRows, "a"); got != CmdAddRow {
		t.Errorf("override not applied, got %q", got)
	}
	if got, _ := r.Lookup(ContextRows, "+"); got != CmdAddRow {
		t.Error("default binding lost after override")
	}

	// Applies to every context that defines the command.
	r.SetUserOverride("space", CmdToggleChecked)
	if got, _ := r.Lookup(ContextArchive, " "); got != CmdToggleChecked {
		t.Errorf("archive space = %q", got)
	}

	if r.SetUserOverride("z", "no-such-command") {
		t.Error("unknown command accepted")
	}
	if _, ok := r.Overrides()["z"]; ok {
		t.Error("rejected override recorded")
	}
}

func TestRegister_Replaces(t *testing.T) {
	r := NewRegistry()
	r.Register(Binding{Key: "x", Command: "a", Context: ContextRows})
	r.Register(Binding{Key: "x", Command: "b", Context: ContextRows})
	if got := r.BindingsForContext(ContextRows); len(got) != 1 || got[0].Command != "b" {
		t.Errorf("bindings = %+v", got)
	}
}

func TestHelpBindings(t *testing.T) {
	r := defaults()
	bindings := r.HelpBindings(ContextDeleteMenu)
	if len(bindings) != 3 {
		t.Fatalf("got %d help bindings", len(bindings))
	}
	h := bindings[0].Help()
	if h.Key != "d" || h.Desc != "delete" {
		t.Errorf("first help = %+v", h)
	}
}

func TestIsTextContext(t *testing.T) {
	for _, ctx := range []string{ContextRowEdit, ContextResourceEdit, ContextArchiveEdit, ContextLinkEditor, ContextNewCategory} {
		if !IsTextContext(ctx) {
			t.Errorf("%s should be a text context", ctx)
		}
	}
	for _, ctx := range []string{ContextRows, ContextResources, ContextArchive, ContextGate, ContextHelp, ContextDeleteMenu} {
		if IsTextContext(ctx) {
			t.Errorf("%s should not be a text context", ctx)
		}
	}
}

func TestFormatKeys(t *testing.T) {
	if got := FormatKeys([]string{"+", "="}); got != "+/=" {
		t.Errorf("FormatKeys = %q", got)
	}
	if got := FormatKeys([]string{" "}); got != "space" {
		t.Errorf("FormatKeys = %q", got)
	}
}
