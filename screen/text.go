// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import (
	"fmt"
	"sync/atomic"
)

// maxFontSlot bounds the CTerm font table.
const maxFontSlot = 9

// defaultScrollback is how many lines fall off the top before the
// oldest is dropped.
const defaultScrollback = 1000

// TextScreen is the concrete cell-grid screen. It keeps exactly height
// lines; lines scrolled off an unmargined terminal buffer move to a
// separate scrollback list.
type TextScreen struct {
	lines         []Line
	scrollback    []Line
	maxScrollback int

	palette *Palette
	state   *TerminalState
	caret   Caret

	fonts       map[int][]byte
	hyperlinks  []HyperLink
	mouseFields []MouseField
	sel         Selection
	hasSel      bool

	savedPos   Position
	savedState SavedCaretState

	version atomic.Uint64
}

func NewTextScreen(width, height int) *TextScreen {
	t := &TextScreen{
		lines:         make([]Line, height),
		maxScrollback: defaultScrollback,
		palette:       NewEgaPalette(),
		state:         NewTerminalState(width, height),
		caret:         NewCaret(),
		fonts:         make(map[int][]byte),
	}
	return t
}

func (t *TextScreen) Width() int                { return t.state.Width() }
func (t *TextScreen) Height() int               { return t.state.Height() }
func (t *TextScreen) Caret() *Caret             { return &t.caret }
func (t *TextScreen) State() *TerminalState     { return t.state }
func (t *TextScreen) Palette() *Palette         { return t.palette }
func (t *TextScreen) Version() uint64           { return t.version.Load() }
func (t *TextScreen) MarkDirty()                { t.version.Add(1) }
func (t *TextScreen) Hyperlinks() []HyperLink   { return t.hyperlinks }
func (t *TextScreen) MouseFields() []MouseField { return t.mouseFields }

// SetPalette swaps the palette. Undo uses it to restore a clone.
func (t *TextScreen) SetPalette(p *Palette) {
	t.palette = p
	t.MarkDirty()
}

// Scrollback returns the lines that scrolled off, oldest first.
func (t *TextScreen) Scrollback() []Line {
	return t.scrollback
}

func (t *TextScreen) CharAt(pos Position) Cell {
	if pos.Y < 0 || pos.Y >= len(t.lines) {
		return BlankCell(DefaultAttr())
	}
	return t.lines[pos.Y].At(pos.X)
}

func (t *TextScreen) SetChar(pos Position, c Cell) {
	if pos.X < 0 || pos.Y < 0 || pos.X >= t.Width() || pos.Y >= len(t.lines) {
		return
	}
	line := t.lines[pos.Y]
	for len(line) <= pos.X {
		line = append(line, BlankCell(DefaultAttr()))
	}
	line[pos.X] = c
	t.lines[pos.Y] = line
	t.MarkDirty()
}

// editableRect is the scroll region in zero-based cell coordinates.
func (t *TextScreen) editableRect() (top, bottom, left, right int) {
	return FirstEditableLine(t), LastEditableLine(t),
		FirstEditableColumn(t), LastEditableColumn(t)
}

func (t *TextScreen) blankLine() Line {
	line := make(Line, t.Width())
	blank := BlankCell(t.caret.Attr)
	for i := range line {
		line[i] = blank
	}
	return line
}

// pushScrollback moves a line into the scrollback, dropping the oldest
// past the cap.
func (t *TextScreen) pushScrollback(line Line) {
	t.scrollback = append(t.scrollback, line)
	if len(t.scrollback) > t.maxScrollback {
		copy(t.scrollback, t.scrollback[1:])
		t.scrollback = t.scrollback[:len(t.scrollback)-1]
	}
}

// ScrollUp shifts the editable region up one line. Without margins the
// top line of a terminal buffer moves into the scrollback.
func (t *TextScreen) ScrollUp() {
	top, bottom, left, right := t.editableRect()
	_, _, hasTB := t.state.MarginsTopBottom()
	_, _, hasLR := t.state.MarginsLeftRight()

	if !hasTB && !hasLR && t.state.TerminalBuffer {
		t.pushScrollback(t.lines[0])
		copy(t.lines, t.lines[1:])
		t.lines[len(t.lines)-1] = t.blankLine()
		t.MarkDirty()
		return
	}

	for y := top; y < bottom; y++ {
		for x := left; x <= right; x++ {
			t.SetChar(Position{X: x, Y: y}, t.CharAt(Position{X: x, Y: y + 1}))
		}
	}
	blank := BlankCell(t.caret.Attr)
	for x := left; x <= right; x++ {
		t.SetChar(Position{X: x, Y: bottom}, blank)
	}
	t.MarkDirty()
}

// ScrollDown shifts the editable region down one line, blanking the top.
func (t *TextScreen) ScrollDown() {
	top, bottom, left, right := t.editableRect()
	for y := bottom; y > top; y-- {
		for x := left; x <= right; x++ {
			t.SetChar(Position{X: x, Y: y}, t.CharAt(Position{X: x, Y: y - 1}))
		}
	}
	blank := BlankCell(t.caret.Attr)
	for x := left; x <= right; x++ {
		t.SetChar(Position{X: x, Y: top}, blank)
	}
	t.MarkDirty()
}

// ScrollLeft shifts the editable region one column left.
func (t *TextScreen) ScrollLeft() {
	top, bottom, left, right := t.editableRect()
	blank := BlankCell(t.caret.Attr)
	for y := top; y <= bottom; y++ {
		for x := left; x < right; x++ {
			t.SetChar(Position{X: x, Y: y}, t.CharAt(Position{X: x + 1, Y: y}))
		}
		t.SetChar(Position{X: right, Y: y}, blank)
	}
	t.MarkDirty()
}

// ScrollRight shifts the editable region one column right.
func (t *TextScreen) ScrollRight() {
	top, bottom, left, right := t.editableRect()
	blank := BlankCell(t.caret.Attr)
	for y := top; y <= bottom; y++ {
		for x := right; x > left; x-- {
			t.SetChar(Position{X: x, Y: y}, t.CharAt(Position{X: x - 1, Y: y}))
		}
		t.SetChar(Position{X: left, Y: y}, blank)
	}
	t.MarkDirty()
}

// InsertLine opens a blank line at y, shifting the region below down.
// The last editable line falls off. A y outside the region is a no-op.
func (t *TextScreen) InsertLine(y int) {
	top, bottom, left, right := t.editableRect()
	if y < top || y > bottom {
		return
	}
	for line := bottom; line > y; line-- {
		for x := left; x <= right; x++ {
			t.SetChar(Position{X: x, Y: line}, t.CharAt(Position{X: x, Y: line - 1}))
		}
	}
	blank := BlankCell(t.caret.Attr)
	for x := left; x <= right; x++ {
		t.SetChar(Position{X: x, Y: y}, blank)
	}
	t.MarkDirty()
}

// RemoveLine deletes line y, shifting the region below up and blanking
// the last editable line. A y outside the region is a no-op.
func (t *TextScreen) RemoveLine(y int) {
	top, bottom, left, right := t.editableRect()
	if y < top || y > bottom {
		return
	}
	for line := y; line < bottom; line++ {
		for x := left; x <= right; x++ {
			t.SetChar(Position{X: x, Y: line}, t.CharAt(Position{X: x, Y: line + 1}))
		}
	}
	blank := BlankCell(t.caret.Attr)
	for x := left; x <= right; x++ {
		t.SetChar(Position{X: x, Y: bottom}, blank)
	}
	t.MarkDirty()
}

// ClearScreen blanks every line and homes the caret.
func (t *TextScreen) ClearScreen() {
	t.caret.Pos = Position{}
	for i := range t.lines {
		t.lines[i] = nil
	}
	t.MarkDirty()
}

func (t *TextScreen) ClearScrollback() {
	t.scrollback = nil
	t.MarkDirty()
}

// ClearLine blanks the caret line.
func (t *TextScreen) ClearLine() {
	if t.caret.Pos.Y < 0 || t.caret.Pos.Y >= len(t.lines) {
		return
	}
	blank := BlankCell(t.caret.Attr)
	for x := 0; x < t.Width(); x++ {
		t.SetChar(Position{X: x, Y: t.caret.Pos.Y}, blank)
	}
	t.MarkDirty()
}

// ClearLineToEnd blanks from the caret to the line end.
func (t *TextScreen) ClearLineToEnd() {
	blank := BlankCell(t.caret.Attr)
	for x := t.caret.Pos.X; x < t.Width(); x++ {
		t.SetChar(Position{X: x, Y: t.caret.Pos.Y}, blank)
	}
	t.MarkDirty()
}

// ClearLineToStart blanks from the line start through the caret.
func (t *TextScreen) ClearLineToStart() {
	blank := BlankCell(t.caret.Attr)
	for x := 0; x <= t.caret.Pos.X && x < t.Width(); x++ {
		t.SetChar(Position{X: x, Y: t.caret.Pos.Y}, blank)
	}
	t.MarkDirty()
}

// Resize changes the screen geometry. Content is kept where it still
// fits; the caret is clamped back onto the screen.
func (t *TextScreen) Resize(width, height int) {
	if width < 1 || height < 1 {
		return
	}
	switch {
	case height < len(t.lines):
		t.lines = t.lines[:height]
	case height > len(t.lines):
		for len(t.lines) < height {
			t.lines = append(t.lines, nil)
		}
	}
	for i, line := range t.lines {
		if len(line) > width {
			t.lines[i] = line[:width]
		}
	}
	t.state.SetSize(width, height)
	LimitCaret(t, false)
	t.MarkDirty()
}

// ResetTerminal restores power-on modal state. Content, scrollback and
// loaded fonts stay.
func (t *TextScreen) ResetTerminal() {
	t.state = NewTerminalState(t.Width(), t.Height())
	t.caret.Reset()
	t.savedPos = Position{}
	t.savedState = SavedCaretState{}
	t.MarkDirty()
}

func (t *TextScreen) SetFont(slot int, data []byte) error {
	if slot < 0 || slot > maxFontSlot {
		return fmt.Errorf("font slot %d out of range", slot)
	}
	t.fonts[slot] = data
	return nil
}

func (t *TextScreen) Font(slot int) ([]byte, bool) {
	data, ok := t.fonts[slot]
	return data, ok
}

func (t *TextScreen) Selection() (Selection, bool) {
	return t.sel, t.hasSel
}

func (t *TextScreen) SetSelection(sel Selection) {
	t.sel = sel
	t.hasSel = true
	t.MarkDirty()
}

func (t *TextScreen) ClearSelection() {
	t.hasSel = false
	t.MarkDirty()
}

func (t *TextScreen) AddHyperlink(h HyperLink) {
	t.hyperlinks = append(t.hyperlinks, h)
}

func (t *TextScreen) AddMouseField(f MouseField) {
	t.mouseFields = append(t.mouseFields, f)
	t.MarkDirty()
}

func (t *TextScreen) ClearMouseFields() {
	t.mouseFields = nil
	t.MarkDirty()
}

func (t *TextScreen) SavedPosition() *Position     { return &t.savedPos }
func (t *TextScreen) SavedState() *SavedCaretState { return &t.savedState }
