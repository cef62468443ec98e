package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/render"
	"github.com/benbotluks/staffear/internal/settings"
	"github.com/benbotluks/staffear/internal/staff"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			Bold(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	menuStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

var screenNames = [3]string{"train", "settings", "stats"}

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("STAFFEAR — ear trainer") + "  " + m.tabBar() + "\n")

	switch m.scr {
	case screenTrain:
		m.viewTrain(&b)
	case screenSettings:
		m.viewSettings(&b)
	case screenStats:
		m.viewStats(&b)
	}

	if m.message != "" {
		b.WriteString("\n" + statusStyle.Render(m.message) + "\n")
	}
	for _, w := range m.warnings {
		b.WriteString(warnStyle.Render("! "+w) + "\n")
	}
	return b.String()
}

func (m *Model) tabBar() string {
	parts := make([]string, len(screenNames))
	for i, name := range screenNames {
		if screen(i) == m.scr {
			parts[i] = activeTabStyle.Render("[" + name + "]")
		} else {
			parts[i] = tabStyle.Render(" " + name + " ")
		}
	}
	return strings.Join(parts, " ")
}

func (m *Model) viewTrain(b *strings.Builder) {
	difficulty := game.DifficultyName(m.round.Difficulty)
	b.WriteString(fmt.Sprintf("round: %d note(s), %s   placed: %d/%d\n",
		m.round.Difficulty, difficulty, m.sel.Len(), m.cfg.MaxNotes))

	if m.revealed {
		b.WriteString(fmt.Sprintf("answer: %s\n", strings.Join(noteStrings(m.round.Answer), " ")))
	} else if !m.engine.Available() {
		b.WriteString(helpStyle.Render("audio unavailable — visual mode") + "\n")
	} else {
		b.WriteString(helpStyle.Render("listen (r to replay), then place what you heard") + "\n")
	}
	b.WriteString("\n")

	staffBlock := m.renderer.Render(m.styledNotes(), m.ctrl.Hovered())
	cursorRow := staff.MaxPosition - m.cursorPos
	for i, line := range strings.Split(staffBlock, "\n") {
		if i == cursorRow && m.scr == screenTrain {
			b.WriteString(cursorStyle.Render("▸") + " " + line + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\n" + m.positionLine() + "\n")

	if m.menu != nil {
		b.WriteString(m.viewMenu() + "\n")
	}

	b.WriteString(helpStyle.Render("c-b: start note • ↑↓: adjust/move • shift+↑↓: octave • #/-/=: accidental") + "\n")
	b.WriteString(helpStyle.Render("space: toggle • .: cycle accidental • x: delete • enter: confirm/submit") + "\n")
	b.WriteString(helpStyle.Render("r: replay • p: play selection • n: new round • m: export midi • tab: screens • q: quit"))
}

// styledNotes decides per-note styling: plain selection before reveal,
// correct/incorrect/missing after.
func (m *Model) styledNotes() []render.StyledNote {
	selected := m.sel.Notes()
	out := make([]render.StyledNote, 0, len(selected)+4)

	if !m.revealed {
		active, building := m.bld.Active()
		for _, n := range selected {
			state := render.StateSelected
			if building && n.Equals(active) {
				state = render.StateActive
			}
			out = append(out, render.StyledNote{Note: n, State: state})
		}
		return out
	}

	matched, missing := game.Matches(selected, m.round.Answer)
	for i, n := range selected {
		state := render.StateIncorrect
		if matched[i] {
			state = render.StateCorrect
		}
		out = append(out, render.StyledNote{Note: n, State: state})
	}
	for _, n := range missing {
		out = append(out, render.StyledNote{Note: n, State: render.StateMissing})
	}
	return out
}

func (m *Model) positionLine() string {
	if hovered := m.ctrl.Hovered(); hovered != nil {
		note := hovered.Pitch
		if existing, ok := m.sel.AtPosition(hovered.LinePosition); ok {
			note = existing
		}
		return fmt.Sprintf("pointer: %s%s", note, ledgerNote(hovered.LinePosition))
	}
	pos := staff.PositionInfo(m.cursorPos)
	note := pos.Pitch
	if existing, ok := m.sel.AtPosition(m.cursorPos); ok {
		note = existing
	}
	return fmt.Sprintf("cursor: %s%s", note, ledgerNote(m.cursorPos))
}

func ledgerNote(position int) string {
	if !staff.RequiresLedgerLine(position) {
		return ""
	}
	return fmt.Sprintf(" (%d ledger)", staff.LedgerLineOffset(position))
}

func (m *Model) viewMenu() string {
	menu := m.menu
	var lines []string
	lines = append(lines, menu.note.String())
	if menu.selected {
		lines = append(lines, "d: delete  c: cycle accidental")
	} else {
		lines = append(lines, "s: select")
	}
	if menu.selected && len(menu.variants) > 1 {
		var vs []string
		for i, v := range menu.variants {
			vs = append(vs, fmt.Sprintf("%d: %s", i+1, v))
		}
		lines = append(lines, strings.Join(vs, "  "))
	}
	lines = append(lines, helpStyle.Render("esc: close"))
	return menuStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) viewSettings(b *strings.Builder) {
	b.WriteString("\n")
	fields := []struct {
		name  string
		value string
	}{
		{"min notes", fmt.Sprintf("%d", m.cfg.MinNotes)},
		{"max notes", fmt.Sprintf("%d", m.cfg.MaxNotes)},
		{"volume", fmt.Sprintf("%.0f%%", m.cfg.Volume*100)},
		{"auto replay", onOff(m.cfg.AutoReplay)},
	}
	for i, f := range fields {
		cursor := "  "
		line := fmt.Sprintf("%-12s %s", f.name, f.value)
		if i == m.settingsCursor {
			cursor = cursorStyle.Render("▸ ")
			line = cursorStyle.Render(line)
		}
		b.WriteString(cursor + line + "\n")
	}
	b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("notes per round stay within [%d,%d]; volume within [0%%,100%%]",
		settings.MinNoteCount, settings.MaxNoteCount)) + "\n")
	b.WriteString(helpStyle.Render("↑↓: field • ←→: adjust • enter: save • tab: screens • q: quit"))
}

func (m *Model) viewStats(b *strings.Builder) {
	b.WriteString("\n")
	if m.summary == nil {
		b.WriteString("no statistics yet\n")
	} else {
		s := m.summary
		b.WriteString(fmt.Sprintf("attempts: %d   correct: %d\n\n", s.TotalAttempts, s.CorrectAnswers))
		if len(s.AccuracyByDifficulty) > 0 {
			b.WriteString("accuracy by difficulty:\n")
			for d := settings.MinNoteCount; d <= settings.MaxNoteCount; d++ {
				if acc, ok := s.AccuracyByDifficulty[d]; ok {
					b.WriteString(fmt.Sprintf("  %d notes (%s): %5.1f%%\n", d, game.DifficultyName(d), acc))
				}
			}
		}
		if len(m.history) > 0 {
			b.WriteString("\nrecent rounds:\n")
			for _, sess := range m.history {
				mark := warnStyle.Render("✗")
				if sess.Correct {
					mark = statusStyle.Render("✓")
				}
				b.WriteString(fmt.Sprintf("  %s %s  played %s, answered %s\n",
					mark,
					sess.When.Format("Jan 2 15:04"),
					strings.Join(sess.NotesPlayed, " "),
					strings.Join(sess.UserAnswer, " ")))
			}
		}
	}
	b.WriteString("\n" + helpStyle.Render("tab: screens • q: quit"))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
