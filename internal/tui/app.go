// Package tui is the interactive trainer: a staff the user can click or
// drive from the keyboard, a note builder for incremental input, and
// settings/statistics screens.
package tui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/benbotluks/staffear/internal/audio"
	"github.com/benbotluks/staffear/internal/builder"
	"github.com/benbotluks/staffear/internal/game"
	"github.com/benbotluks/staffear/internal/midifile"
	"github.com/benbotluks/staffear/internal/music"
	"github.com/benbotluks/staffear/internal/render"
	"github.com/benbotluks/staffear/internal/settings"
	"github.com/benbotluks/staffear/internal/staff"
	"github.com/benbotluks/staffear/internal/stats"
)

// Screen layout. The staff block is drawn at a fixed offset so the
// renderer's reported geometry matches what is on screen.
const (
	staffLeft  = 2
	staffTop   = 4
	staffWidth = 64

	statusDelay = 4 * time.Second
)

type screen int

const (
	screenTrain screen = iota
	screenSettings
	screenStats
)

// statusExpiredMsg clears the status line. The sequence number makes
// stale timers harmless: a timer fired for an already-replaced message
// is ignored.
type statusExpiredMsg struct {
	seq int
}

// noteMenu is the open context menu for one staff position.
type noteMenu struct {
	pos      staff.Position
	note     music.Note
	selected bool
	variants []music.Note
}

// Model is the application state. Collaborators are constructed by the
// caller and passed in; nothing here reaches for globals.
type Model struct {
	settingsStore *settings.Store
	statsStore    *stats.Store
	engine        *audio.Engine
	cfg           settings.Settings

	sel      *game.Selection
	bld      *builder.Builder
	ctrl     *staff.Controller
	renderer *render.Renderer
	rng      *rand.Rand

	round    game.Round
	revealed bool
	result   *game.Stats

	scr       screen
	cursorPos int
	menu      *noteMenu

	message string
	msgSeq  int

	settingsCursor int

	summary *stats.Summary
	history []stats.Session

	width, height int
	warnings      []string
}

// NewModel wires the trainer together. warnings carries non-fatal
// startup problems (settings unreadable, no audio, stats store down)
// for display in the footer.
func NewModel(cfg settings.Settings, settingsStore *settings.Store, statsStore *stats.Store, engine *audio.Engine, rng *rand.Rand, warnings []string) *Model {
	sel := game.NewSelection(cfg.MaxNotes)
	m := &Model{
		settingsStore: settingsStore,
		statsStore:    statsStore,
		engine:        engine,
		cfg:           cfg,
		sel:           sel,
		bld:           builder.New(sel),
		renderer:      render.New(staffWidth, staffLeft, staffTop),
		rng:           rng,
		cursorPos:     4, // middle line
		warnings:      warnings,
	}
	m.ctrl = staff.NewController(m.renderer.Geometry())
	m.ctrl.OnClick = m.staffClicked
	m.ctrl.OnMenu = m.staffMenu
	engine.SetVolume(cfg.Volume)
	m.newRound()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statusExpiredMsg:
		if msg.seq == m.msgSeq {
			m.message = ""
		}
		return m, nil

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.engine.StopAll()
			return m, tea.Quit
		case "tab":
			return m.nextScreen()
		}
		if m.menu != nil {
			return m.updateMenu(msg)
		}
		switch m.scr {
		case screenTrain:
			return m.updateTrain(msg)
		case screenSettings:
			return m.updateSettings(msg)
		case screenStats:
			return m, nil
		}
	}
	return m, nil
}

func (m *Model) nextScreen() (tea.Model, tea.Cmd) {
	m.menu = nil
	m.scr = (m.scr + 1) % 3
	m.ctrl.PointerLeave()
	if m.scr == screenStats {
		m.loadStats()
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.scr != screenTrain {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(msg.X, msg.Y)
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.menu = nil
			m.ctrl.PointerClick(msg.X, msg.Y)
		case tea.MouseButtonRight:
			m.ctrl.PointerRightClick(msg.X, msg.Y)
		}
	}
	return m, nil
}

func (m *Model) updateTrain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "c", "d", "e", "f", "g", "a", "b":
		if m.revealed {
			return m, nil
		}
		class := music.NoteClass(strings.IndexByte("cdefgab", key[0]))
		if !m.bld.Start(class) {
			if m.sel.Full() {
				return m, m.status(fmt.Sprintf("note limit reached (%d)", m.cfg.MaxNotes))
			}
		}
		if active, ok := m.bld.Active(); ok {
			m.cursorPos = staff.PositionForNote(active)
		}
		return m, nil

	case "up", "k":
		if m.bld.Building() {
			m.moveActive(m.bld.StepUp)
		} else if m.cursorPos < staff.MaxPosition {
			m.cursorPos++
		}
		return m, nil

	case "down", "j":
		if m.bld.Building() {
			m.moveActive(m.bld.StepDown)
		} else if m.cursorPos > staff.MinPosition {
			m.cursorPos--
		}
		return m, nil

	case "shift+up", "K":
		m.moveActive(m.bld.OctaveUp)
		return m, nil

	case "shift+down", "J":
		m.moveActive(m.bld.OctaveDown)
		return m, nil

	case "#", "+":
		m.bld.SetAccidental(music.Sharp)
		return m, nil
	case "-":
		m.bld.SetAccidental(music.Flat)
		return m, nil
	case "=":
		m.bld.SetAccidental(music.Natural)
		return m, nil

	case " ":
		if m.revealed || m.bld.Building() {
			return m, nil
		}
		return m, m.toggleAt(staff.PositionInfo(m.cursorPos))

	case ".":
		if note, ok := m.sel.AtPosition(m.cursorPos); ok && !m.revealed {
			m.sel.Replace(note, staff.CycleAccidental(note))
		}
		return m, nil

	case "backspace", "delete", "x":
		if m.bld.Building() {
			m.bld.Remove()
			return m, nil
		}
		if note, ok := m.sel.AtPosition(m.cursorPos); ok && !m.revealed {
			m.sel.Deselect(note)
		}
		return m, nil

	case "esc":
		if m.bld.Building() {
			m.bld.Remove()
		}
		return m, nil

	case "enter":
		if m.bld.Building() {
			m.bld.Confirm()
			return m, nil
		}
		if m.revealed {
			m.newRound()
			return m, nil
		}
		return m.submit()

	case "n":
		m.newRound()
		return m, nil

	case "r":
		return m, m.replay()

	case "p":
		if m.engine.Available() {
			m.engine.PlayChord(m.sel.Notes(), audio.NoteDuration)
		}
		return m, nil

	case "m":
		return m, m.export()
	}
	return m, nil
}

func (m *Model) moveActive(move func() bool) {
	if !m.bld.Building() {
		return
	}
	if move() {
		if active, ok := m.bld.Active(); ok {
			m.cursorPos = staff.PositionForNote(active)
		}
	}
}

// staffClicked is the controller's click callback: toggle the note at
// the clicked position, respecting the capacity limit.
func (m *Model) staffClicked(pos staff.Position) {
	if m.revealed {
		return
	}
	m.cursorPos = pos.LinePosition
	_ = m.toggleAt(pos) // status command is dropped on the mouse path; the footer shows capacity anyway
}

func (m *Model) toggleAt(pos staff.Position) tea.Cmd {
	if note, ok := m.sel.AtPosition(pos.LinePosition); ok {
		if active, building := m.bld.Active(); building && active.Equals(note) {
			m.bld.Clear()
		}
		m.sel.Deselect(note)
		return nil
	}
	if !m.sel.Select(pos.Pitch) {
		return m.status(fmt.Sprintf("note limit reached (%d)", m.cfg.MaxNotes))
	}
	return nil
}

// staffMenu is the controller's right-click callback.
func (m *Model) staffMenu(pos staff.Position) {
	if m.revealed {
		return
	}
	menu := &noteMenu{pos: pos, variants: staff.VariantsAt(pos.LinePosition)}
	if note, ok := m.sel.AtPosition(pos.LinePosition); ok {
		menu.note = note
		menu.selected = true
	} else {
		menu.note = pos.Pitch
	}
	m.menu = menu
	m.cursorPos = pos.LinePosition
}

func (m *Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	menu := m.menu
	switch key := msg.String(); key {
	case "esc":
		m.menu = nil
	case "d", "u":
		if menu.selected {
			m.sel.Deselect(menu.note)
		}
		m.menu = nil
	case "s":
		if !menu.selected {
			if !m.sel.Select(menu.note) {
				m.menu = nil
				return m, m.status(fmt.Sprintf("note limit reached (%d)", m.cfg.MaxNotes))
			}
		}
		m.menu = nil
	case "c":
		if menu.selected {
			m.sel.Replace(menu.note, staff.CycleAccidental(menu.note))
		}
		m.menu = nil
	case "1", "2", "3":
		idx := int(key[0] - '1')
		if idx < len(menu.variants) && menu.selected {
			m.sel.Replace(menu.note, menu.note.WithAccidental(menu.variants[idx].Accidental))
		}
		m.menu = nil
	}
	return m, nil
}

func (m *Model) newRound() {
	m.sel.Clear()
	m.bld.Clear()
	m.menu = nil
	m.revealed = false
	m.result = nil
	m.ctrl.SetDisabled(false)
	m.sel.SetMaxNotes(m.cfg.MaxNotes)
	m.round = game.NewRound(m.rng, m.cfg.MinNotes, m.cfg.MaxNotes)
	if m.cfg.AutoReplay && m.engine.Available() {
		m.engine.PlayChord(m.round.Answer, audio.NoteDuration)
	}
}

func (m *Model) replay() tea.Cmd {
	if !m.engine.Available() {
		return m.status("audio unavailable")
	}
	m.engine.StopAll()
	m.engine.PlayChord(m.round.Answer, audio.NoteDuration)
	return nil
}

func (m *Model) submit() (tea.Model, tea.Cmd) {
	if m.sel.Len() == 0 {
		return m, m.status("place some notes first")
	}
	result := game.Validate(m.sel.Notes(), m.round.Answer)
	m.result = &result
	m.revealed = true
	m.ctrl.SetDisabled(true)

	m.recordResult(result)

	verdict := fmt.Sprintf("%d/%d correct (%.0f%%) — enter for a new round",
		result.Correct, result.Total, result.Accuracy)
	if result.Perfect() {
		verdict = "perfect! enter for a new round"
	}
	return m, m.status(verdict)
}

func (m *Model) recordResult(result game.Stats) {
	if m.statsStore == nil {
		return
	}
	sess := stats.Session{
		When:        time.Now(),
		Difficulty:  m.round.Difficulty,
		Correct:     result.Perfect(),
		NotesPlayed: noteStrings(m.round.Answer),
		UserAnswer:  noteStrings(m.sel.Notes()),
	}
	if err := m.statsStore.Record(sess); err != nil {
		m.warnings = append(m.warnings, fmt.Sprintf("statistics not saved: %v", err))
	}
}

func (m *Model) export() tea.Cmd {
	path := fmt.Sprintf("staffear-%s.mid", time.Now().Format("20060102-150405"))
	if err := midifile.Export(path, m.round.Answer, m.sel.Notes(), 120); err != nil {
		return m.status(fmt.Sprintf("export failed: %v", err))
	}
	return m.status(fmt.Sprintf("exported %s", path))
}

func (m *Model) loadStats() {
	if m.statsStore == nil {
		return
	}
	summary, err := m.statsStore.Summary()
	if err != nil {
		m.warnings = append(m.warnings, fmt.Sprintf("statistics unavailable: %v", err))
		return
	}
	m.summary = &summary
	if hist, err := m.statsStore.History(10); err == nil {
		m.history = hist
	}
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	const numFields = 4
	switch msg.String() {
	case "up", "k":
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case "down", "j":
		if m.settingsCursor < numFields-1 {
			m.settingsCursor++
		}
	case "left", "h":
		m.adjustSetting(-1)
	case "right", "l":
		m.adjustSetting(1)
	case "enter", "s":
		return m, m.saveSettings()
	}
	return m, nil
}

func (m *Model) adjustSetting(dir int) {
	switch m.settingsCursor {
	case 0:
		v := m.cfg.MinNotes + dir
		if v >= settings.MinNoteCount && v <= m.cfg.MaxNotes {
			m.cfg.MinNotes = v
		}
	case 1:
		v := m.cfg.MaxNotes + dir
		if v >= m.cfg.MinNotes && v <= settings.MaxNoteCount {
			m.cfg.MaxNotes = v
			m.sel.SetMaxNotes(v)
		}
	case 2:
		v := m.cfg.Volume + 0.05*float64(dir)
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		m.cfg.Volume = v
		m.engine.SetVolume(v)
	case 3:
		m.cfg.AutoReplay = !m.cfg.AutoReplay
	}
}

func (m *Model) saveSettings() tea.Cmd {
	if m.settingsStore == nil {
		return m.status("settings will not persist")
	}
	if err := m.settingsStore.Save(m.cfg); err != nil {
		return m.status(fmt.Sprintf("settings not saved: %v", err))
	}
	return m.status("settings saved")
}

// status sets the footer message and schedules its expiry.
func (m *Model) status(text string) tea.Cmd {
	m.message = text
	m.msgSeq++
	seq := m.msgSeq
	return tea.Tick(statusDelay, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

func noteStrings(notes []music.Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.String()
	}
	return out
}
