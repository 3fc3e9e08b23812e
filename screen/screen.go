// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

// HyperLink is an OSC 8 link anchored at a cell.
type HyperLink struct {
	URL    string
	Pos    Position
	Length int
}

// MouseField is a clickable region a RIP button or SkyPix gadget
// registers. Coordinates are pixels on the graphics layer.
type MouseField struct {
	Num            int
	X1, Y1, X2, Y2 int
	HostCommand    string
	ResetScreen    bool
}

// Selection is a cell range marked by the user.
type Selection struct {
	Start, End Position
}

// SavedCaretState is what DECSC captures: the caret plus the two modes
// that change how its position is interpreted.
type SavedCaretState struct {
	Caret               Caret
	OriginWithinMargins bool
	AutoWrap            bool
}

// Screen is the read side of a display buffer.
type Screen interface {
	Width() int
	Height() int

	Caret() *Caret
	State() *TerminalState
	Palette() *Palette

	// CharAt reads a cell; out-of-range positions read as blanks.
	CharAt(pos Position) Cell

	// Version increases on every visible change. Renderers poll it.
	Version() uint64

	Hyperlinks() []HyperLink
	MouseFields() []MouseField
	Selection() (Selection, bool)
}

// EditableScreen is the edit side. The package-level editing functions
// (PrintChar, LineFeed, ...) implement the shared algorithms on top of
// these primitives, so a new screen type only supplies storage.
type EditableScreen interface {
	Screen

	// SetChar writes a cell. Out-of-range positions are ignored.
	SetChar(pos Position, c Cell)

	// InsertLine shifts the editable region below y down, blanking y.
	InsertLine(y int)
	// RemoveLine shifts the editable region below y up, blanking the
	// last editable line.
	RemoveLine(y int)

	ScrollUp()
	ScrollDown()
	ScrollLeft()
	ScrollRight()

	ClearScreen()
	ClearScrollback()
	ClearLine()
	ClearLineToEnd()
	ClearLineToStart()

	Resize(width, height int)
	ResetTerminal()

	SetFont(slot int, data []byte) error
	Font(slot int) ([]byte, bool)

	SetSelection(sel Selection)
	ClearSelection()
	AddHyperlink(h HyperLink)
	AddMouseField(f MouseField)
	ClearMouseFields()

	// SavedPosition backs CSI s / CSI u, SavedState backs DECSC/DECRC.
	SavedPosition() *Position
	SavedState() *SavedCaretState

	MarkDirty()
}

// PixelScreen is the capability the raster engine draws on: a
// palette-indexed pixel layer with click fields for buttons.
type PixelScreen interface {
	PixelSize() (width, height int)
	Pixel(x, y int) uint8
	SetPixel(x, y int, color uint8)
	Palette() *Palette
	AddMouseField(f MouseField)
	ClearMouseFields()
	MarkDirty()
}

// FirstEditableLine is the top of the editable region.
func FirstEditableLine(s Screen) int {
	if top, _, ok := s.State().MarginsTopBottom(); ok {
		return top
	}
	return 0
}

// LastEditableLine is the bottom of the editable region.
func LastEditableLine(s Screen) int {
	if _, bottom, ok := s.State().MarginsTopBottom(); ok && bottom < s.Height() {
		return bottom
	}
	return s.Height() - 1
}

// FirstEditableColumn is the left edge of the editable region.
func FirstEditableColumn(s Screen) int {
	if left, _, ok := s.State().MarginsLeftRight(); ok {
		return left
	}
	return 0
}

// LastEditableColumn is the right edge of the editable region.
func LastEditableColumn(s Screen) int {
	if _, right, ok := s.State().MarginsLeftRight(); ok && right < s.Width() {
		return right
	}
	return s.Width() - 1
}

// UpperLeft is the caret home position: the screen origin, or the
// region origin under DECOM.
func UpperLeft(s Screen) Position {
	if s.State().OriginWithinMargins {
		return Position{X: FirstEditableColumn(s), Y: FirstEditableLine(s)}
	}
	return Position{}
}
