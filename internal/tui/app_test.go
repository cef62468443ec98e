package tui

import (
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benbotluks/staffear/internal/settings"
	"github.com/benbotluks/staffear/internal/staff"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	cfg := settings.Default()
	cfg.AutoReplay = false
	cfg.MaxNotes = 3
	// nil engine and nil stores: the trainer must run without audio or
	// persistence.
	return NewModel(cfg, nil, nil, nil, rand.New(rand.NewSource(7)), nil)
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if len(s) == 1 {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBuilderFlowThroughKeys(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("c")) // start a C note
	if !m.bld.Building() {
		t.Fatal("letter key should start the builder")
	}
	if m.sel.Len() != 1 {
		t.Fatal("starting should place the note")
	}

	m.Update(key("up")) // step to D
	active, _ := m.bld.Active()
	if active.String() != "D4" {
		t.Errorf("after step up: %s, want D4", active)
	}

	m.Update(key("#"))
	active, _ = m.bld.Active()
	if active.String() != "D#4" {
		t.Errorf("after sharp: %s, want D#4", active)
	}

	m.Update(key("enter")) // confirm
	if m.bld.Building() {
		t.Error("enter should confirm the note")
	}
	if m.sel.Len() != 1 {
		t.Errorf("selection = %d notes, want 1", m.sel.Len())
	}
}

func TestEscRemovesInProgressNote(t *testing.T) {
	m := newTestModel(t)
	m.Update(key("g"))
	m.Update(key("esc"))
	if m.sel.Len() != 0 {
		t.Error("esc should remove the in-progress note")
	}
	if m.bld.Building() {
		t.Error("esc should return to idle")
	}
}

func TestSpaceTogglesAtCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursorPos = 0 // bottom line, E4

	m.Update(key(" "))
	if m.sel.Len() != 1 {
		t.Fatal("space should select at the cursor")
	}
	m.Update(key(" "))
	if m.sel.Len() != 0 {
		t.Error("space on a selected position should deselect")
	}
}

func TestCapacityLimitViaKeyboard(t *testing.T) {
	m := newTestModel(t) // max 3
	for _, pos := range []int{0, 2, 4, 6} {
		m.cursorPos = pos
		m.Update(key(" "))
	}
	if m.sel.Len() != 3 {
		t.Errorf("selection = %d, want capacity 3", m.sel.Len())
	}
	if m.message == "" || !strings.Contains(m.message, "limit") {
		t.Errorf("capacity rejection should surface a message, got %q", m.message)
	}
}

func TestMouseClickTogglesNote(t *testing.T) {
	m := newTestModel(t)
	g := m.renderer.Geometry()
	y := g.YForPosition(4) // middle line

	click := tea.MouseMsg{X: g.LeftX + 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m.Update(click)
	if m.sel.Len() != 1 {
		t.Fatal("click on the staff should place a note")
	}
	if _, ok := m.sel.AtPosition(4); !ok {
		t.Error("note should sit on the clicked line position")
	}

	m.Update(click)
	if m.sel.Len() != 0 {
		t.Error("second click should deselect")
	}
}

func TestMouseHoverAndLeave(t *testing.T) {
	m := newTestModel(t)
	g := m.renderer.Geometry()

	move := tea.MouseMsg{X: g.LeftX + 5, Y: g.BottomY, Action: tea.MouseActionMotion}
	m.Update(move)
	if m.ctrl.Hovered() == nil {
		t.Fatal("motion over the staff should set hover")
	}

	away := tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion}
	m.Update(away)
	if m.ctrl.Hovered() != nil {
		t.Error("motion off the staff should clear hover")
	}
}

func TestRightClickOpensMenu(t *testing.T) {
	m := newTestModel(t)
	m.cursorPos = 2
	m.Update(key(" ")) // place G4

	g := m.renderer.Geometry()
	rc := tea.MouseMsg{X: g.LeftX + 10, Y: g.YForPosition(2), Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	m.Update(rc)
	if m.menu == nil {
		t.Fatal("right click should open the context menu")
	}
	if !m.menu.selected {
		t.Error("menu should know the note is selected")
	}

	m.Update(key("d"))
	if m.menu != nil {
		t.Error("menu action should close the menu")
	}
	if m.sel.Len() != 0 {
		t.Error("menu delete should deselect the note")
	}
}

func TestSubmitRevealsAndDisables(t *testing.T) {
	m := newTestModel(t)
	m.cursorPos = 0
	m.Update(key(" "))
	m.Update(key("enter"))

	if !m.revealed || m.result == nil {
		t.Fatal("enter should submit the answer")
	}
	if m.ctrl.Cursor() != staff.CursorNotAllowed {
		t.Error("interaction should be disabled after reveal")
	}

	// Enter again starts a fresh round.
	m.Update(key("enter"))
	if m.revealed || m.sel.Len() != 0 {
		t.Error("enter after reveal should start a new round")
	}
	if m.ctrl.Cursor() == staff.CursorNotAllowed {
		t.Error("new round should re-enable interaction")
	}
}

func TestStatusMessageExpiry(t *testing.T) {
	m := newTestModel(t)
	cmd := m.status("hello")
	if cmd == nil || m.message != "hello" {
		t.Fatal("status should set the message and schedule expiry")
	}
	seq := m.msgSeq

	// A stale timer for an older message must not clear a newer one.
	m.status("newer")
	m.Update(statusExpiredMsg{seq: seq})
	if m.message != "newer" {
		t.Error("stale expiry cleared a newer message")
	}

	m.Update(statusExpiredMsg{seq: m.msgSeq})
	if m.message != "" {
		t.Error("matching expiry should clear the message")
	}
}

func TestViewRendersEveryScreen(t *testing.T) {
	m := newTestModel(t)
	if v := m.View(); !strings.Contains(v, "𝄞") {
		t.Error("train view should include the staff")
	}
	m.Update(key("tab"))
	if v := m.View(); !strings.Contains(v, "volume") {
		t.Error("settings view missing")
	}
	m.Update(key("tab"))
	if v := m.View(); !strings.Contains(v, "statistics") && !strings.Contains(v, "attempts") {
		t.Error("stats view missing")
	}
}
