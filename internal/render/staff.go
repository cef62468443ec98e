// Package render draws the staff and its notes with lipgloss, and
// reports the cell geometry it drew so the interaction layer can map
// pointer coordinates back to staff positions.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/benbotluks/staffear/internal/music"
	"github.com/benbotluks/staffear/internal/staff"
)

// NoteState picks the style a note is drawn with.
type NoteState int

const (
	StateSelected NoteState = iota
	StateActive             // the builder's in-progress note
	StateCorrect
	StateIncorrect
	StateMissing
)

// StyledNote pairs a note with its display state.
type StyledNote struct {
	Note  music.Note
	State NoteState
}

// Styles
var (
	lineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	ledgerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	activeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	hoverStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAFF"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true)
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	clefStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
)

const (
	noteStartCol = 8 // first note column, local to the staff block
	noteSpacing  = 5
	clefCol      = 2
)

// Renderer draws a staff block of fixed width at a fixed screen offset.
type Renderer struct {
	width   int
	offsetX int
	offsetY int
}

// New builds a renderer. offsetX/offsetY are where the caller lays the
// block out on screen; they only matter for the reported geometry.
func New(width, offsetX, offsetY int) *Renderer {
	return &Renderer{width: width, offsetX: offsetX, offsetY: offsetY}
}

// Geometry reports the staff geometry of the rendered block in screen
// cells: one line position per row, staff lines 2 rows apart.
func (r *Renderer) Geometry() staff.Geometry {
	return staff.Geometry{
		TopY:        r.offsetY + staff.MaxPosition - staff.TopLine,
		BottomY:     r.offsetY + staff.MaxPosition - staff.BottomLine,
		LeftX:       r.offsetX,
		RightX:      r.offsetX + r.width - 1,
		LineSpacing: 2,
	}
}

// SlotX returns the screen column of the i-th note slot, for callers
// that need to line annotations up with notes.
func (r *Renderer) SlotX(i int) int {
	return r.offsetX + noteStartCol + i*noteSpacing
}

type cell struct {
	ch    rune
	style *lipgloss.Style
}

// Render draws the notes left to right in placement order. The hover
// preview, when present, is shown at the next free note slot on the
// hovered line position.
func (r *Renderer) Render(notes []StyledNote, hover *staff.Position) string {
	rows := staff.MaxPosition - staff.MinPosition + 1
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, r.width)
		for j := range grid[i] {
			grid[i][j] = cell{ch: ' '}
		}
	}

	// Staff lines: positions 0..8, even positions only.
	for p := staff.BottomLine; p <= staff.TopLine; p += 2 {
		row := rowFor(p)
		for j := 0; j < r.width; j++ {
			grid[row][j] = cell{ch: '─', style: &lineStyle}
		}
	}

	// Clef marker on the G4 line.
	grid[rowFor(2)][clefCol] = cell{ch: '𝄞', style: &clefStyle}

	for i, sn := range notes {
		r.drawNote(grid, sn.Note, noteStartCol+i*noteSpacing, styleFor(sn.State), glyphFor(sn.State))
	}

	if hover != nil {
		col := noteStartCol + len(notes)*noteSpacing
		if col < r.width-1 {
			r.drawNote(grid, hover.Pitch, col, &hoverStyle, '◌')
		}
	}

	var b strings.Builder
	for i, row := range grid {
		if i > 0 {
			b.WriteByte('\n')
		}
		for _, c := range row {
			if c.style == nil {
				b.WriteRune(c.ch)
			} else {
				b.WriteString(c.style.Render(string(c.ch)))
			}
		}
	}
	return b.String()
}

func (r *Renderer) drawNote(grid [][]cell, n music.Note, col int, style *lipgloss.Style, glyph rune) {
	pos := staff.PositionForNote(n)
	row := rowFor(pos)
	if col < 1 || col >= r.width-1 {
		return
	}

	// Ledger line through or beside the note head.
	if staff.RequiresLedgerLine(pos) {
		ledgerRow := row
		if pos%2 != 0 {
			// Spaces hang off the nearest ledger line toward the staff.
			if pos < staff.BottomLine {
				ledgerRow = row - 1
			} else {
				ledgerRow = row + 1
			}
		}
		if ledgerRow >= 0 && ledgerRow < len(grid) {
			for _, j := range []int{col - 1, col, col + 1} {
				if grid[ledgerRow][j].ch == ' ' {
					grid[ledgerRow][j] = cell{ch: '─', style: &ledgerStyle}
				}
			}
		}
	}

	if n.Accidental != music.Natural {
		grid[row][col-1] = cell{ch: []rune(n.Accidental.Glyph())[0], style: style}
	}
	grid[row][col] = cell{ch: glyph, style: style}
}

func rowFor(position int) int {
	return staff.MaxPosition - position
}

func styleFor(state NoteState) *lipgloss.Style {
	switch state {
	case StateActive:
		return &activeStyle
	case StateCorrect:
		return &correctStyle
	case StateIncorrect:
		return &incorrectStyle
	case StateMissing:
		return &missingStyle
	default:
		return &selectedStyle
	}
}

func glyphFor(state NoteState) rune {
	switch state {
	case StateMissing:
		return '○'
	default:
		return '●'
	}
}
