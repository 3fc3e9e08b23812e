// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

// The shared editing algorithms. Every screen implementation gets the
// same caret movement, wrapping and scroll-region behavior; a concrete
// screen only provides cell storage and the bulk primitives.

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PrintChar writes c at the caret and advances it, wrapping at the last
// editable column when auto-wrap is on. Editing buffers grow instead of
// wrapping or scrolling.
func PrintChar(s EditableScreen, c Cell) {
	caret := s.Caret()
	st := s.State()

	if !st.TerminalBuffer {
		if caret.Pos.X >= s.Width() {
			s.Resize(caret.Pos.X+1, s.Height())
		}
		if caret.Pos.Y >= s.Height() {
			s.Resize(s.Width(), caret.Pos.Y+1)
		}
	}

	if caret.Insert {
		InsertChar(s)
	}

	pos := caret.Pos
	s.SetChar(pos, c)
	pos.X++

	lastCol := s.Width() - 1
	if pos.Y >= FirstEditableLine(s) && pos.Y <= LastEditableLine(s) {
		lastCol = LastEditableColumn(s)
	}
	if pos.X > lastCol {
		pos.X = lastCol
		caret.Pos = pos
		if st.AutoWrap {
			LineFeed(s)
		}
		return
	}
	caret.Pos = pos
}

// LineFeed moves the caret to the first editable column of the next
// line, scrolling when it leaves the region bottom.
func LineFeed(s EditableScreen) {
	caret := s.Caret()
	st := s.State()
	wasIn := st.InMargin(caret.Pos)
	inRegion := st.InScrollRegion(caret.Pos)

	pos := caret.Pos
	pos.X = FirstEditableColumn(s)
	pos.Y++

	if !st.TerminalBuffer {
		if pos.Y >= s.Height() {
			s.Resize(s.Width(), pos.Y+1)
		}
		caret.Pos = pos
		return
	}

	bottom := s.Height() - 1
	if inRegion {
		bottom = LastEditableLine(s)
	}
	for pos.Y > bottom {
		s.ScrollUp()
		pos.Y--
	}
	caret.Pos = pos
	LimitCaret(s, wasIn)
}

// CarriageReturn moves the caret to column zero, clamped back into the
// region when it started inside one.
func CarriageReturn(s EditableScreen) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	caret.Pos.X = 0
	LimitCaret(s, wasIn)
}

// FormFeed resets the terminal state and clears the screen.
func FormFeed(s EditableScreen) {
	s.ResetTerminal()
	s.ClearScreen()
}

// BackSpace moves the caret one column left, stopping at the region
// edge. Non-destructive.
func BackSpace(s EditableScreen) {
	caret := s.Caret()
	minX := 0
	if s.State().InMargin(caret.Pos) {
		minX = FirstEditableColumn(s)
	}
	if caret.Pos.X > minX {
		caret.Pos.X--
	}
}

// DeleteChar removes the cell under the caret, shifting the rest of the
// editable line left and blanking the last column.
func DeleteChar(s EditableScreen) {
	caret := s.Caret()
	y := caret.Pos.Y
	last := LastEditableColumn(s)
	for x := caret.Pos.X; x < last; x++ {
		s.SetChar(Position{X: x, Y: y}, s.CharAt(Position{X: x + 1, Y: y}))
	}
	s.SetChar(Position{X: last, Y: y}, BlankCell(caret.Attr))
}

// InsertChar opens a blank cell under the caret, shifting the rest of
// the editable line right. The last column falls off.
func InsertChar(s EditableScreen) {
	caret := s.Caret()
	y := caret.Pos.Y
	last := LastEditableColumn(s)
	for x := last; x > caret.Pos.X; x-- {
		s.SetChar(Position{X: x, Y: y}, s.CharAt(Position{X: x - 1, Y: y}))
	}
	s.SetChar(caret.Pos, BlankCell(caret.Attr))
}

// EraseChar blanks n cells from the caret without moving it.
func EraseChar(s EditableScreen, n int) {
	caret := s.Caret()
	blank := BlankCell(caret.Attr)
	for i := 0; i < n && caret.Pos.X+i < s.Width(); i++ {
		s.SetChar(Position{X: caret.Pos.X + i, Y: caret.Pos.Y}, blank)
	}
}

// MoveLeft moves the caret n columns left, wrapping to the previous
// line end under auto-wrap.
func MoveLeft(s EditableScreen, n int) {
	caret := s.Caret()
	st := s.State()
	for i := 0; i < n; i++ {
		if caret.Pos.X > 0 {
			caret.Pos.X--
		} else if st.AutoWrap && caret.Pos.Y > FirstEditableLine(s) {
			caret.Pos.Y--
			caret.Pos.X = LastEditableColumn(s)
		}
	}
}

// MoveRight moves the caret n columns right, wrapping to the next line
// under auto-wrap.
func MoveRight(s EditableScreen, n int) {
	caret := s.Caret()
	st := s.State()
	for i := 0; i < n; i++ {
		if caret.Pos.X < LastEditableColumn(s) {
			caret.Pos.X++
		} else if st.AutoWrap {
			LineFeed(s)
		}
	}
}

// MoveUp moves the caret n lines up. With scroll set, leaving the
// region top scrolls the content down instead.
func MoveUp(s EditableScreen, n int, scroll bool) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	inRegion := s.State().InScrollRegion(caret.Pos)
	caret.Pos.Y -= n
	if scroll {
		scrollOnCaretUp(s, false, inRegion)
	}
	LimitCaret(s, wasIn)
}

// MoveDown moves the caret n lines down. With scroll set, leaving the
// region bottom scrolls the content up instead.
func MoveDown(s EditableScreen, n int, scroll bool) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	inRegion := s.State().InScrollRegion(caret.Pos)
	caret.Pos.Y += n
	if scroll {
		scrollOnCaretDown(s, false, inRegion)
	}
	LimitCaret(s, wasIn)
}

// IndexCaret is ESC D: down one line, scrolling at the region bottom.
func IndexCaret(s EditableScreen) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	inRegion := s.State().InScrollRegion(caret.Pos)
	caret.Pos.Y++
	scrollOnCaretDown(s, true, inRegion)
	LimitCaret(s, wasIn)
}

// ReverseIndexCaret is ESC M: up one line, scrolling at the region top.
func ReverseIndexCaret(s EditableScreen) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	inRegion := s.State().InScrollRegion(caret.Pos)
	caret.Pos.Y--
	scrollOnCaretUp(s, true, inRegion)
	LimitCaret(s, wasIn)
}

// NextLineCaret is ESC E: IndexCaret plus carriage return.
func NextLineCaret(s EditableScreen) {
	caret := s.Caret()
	wasIn := s.State().InMargin(caret.Pos)
	inRegion := s.State().InScrollRegion(caret.Pos)
	caret.Pos.Y++
	caret.Pos.X = 0
	scrollOnCaretDown(s, true, inRegion)
	LimitCaret(s, wasIn)
}

// scrollOnCaretDown scrolls until the caret is back at its limit.
// inRegion is the region membership before the move; the moved
// position may already sit past the region bottom.
func scrollOnCaretDown(s EditableScreen, force, inRegion bool) {
	caret := s.Caret()
	if !s.State().NeedsScrolling() && !force {
		return
	}
	bottom := s.Height() - 1
	if inRegion {
		bottom = LastEditableLine(s)
	}
	for caret.Pos.Y > bottom {
		s.ScrollUp()
		caret.Pos.Y--
	}
}

func scrollOnCaretUp(s EditableScreen, force, inRegion bool) {
	caret := s.Caret()
	if !s.State().NeedsScrolling() && !force {
		return
	}
	top := 0
	if inRegion {
		top = FirstEditableLine(s)
	}
	for caret.Pos.Y < top {
		s.ScrollDown()
		caret.Pos.Y++
	}
}

// TabForward moves the caret to the next tab stop.
func TabForward(s EditableScreen) {
	caret := s.Caret()
	caret.Pos.X = clamp(s.State().NextTabStop(caret.Pos.X), 0, s.Width()-1)
}

// TabBackward moves the caret to the previous tab stop.
func TabBackward(s EditableScreen) {
	caret := s.Caret()
	caret.Pos.X = s.State().PrevTabStop(caret.Pos.X)
}

// LimitCaret clamps the caret to the screen, or to the region when it
// started inside one and origin mode keeps addressing relative.
func LimitCaret(s EditableScreen, wasInMargin bool) {
	caret := s.Caret()
	st := s.State()
	if wasInMargin && st.OriginWithinMargins {
		caret.Pos.Y = clamp(caret.Pos.Y, FirstEditableLine(s), LastEditableLine(s))
		caret.Pos.X = clamp(caret.Pos.X, FirstEditableColumn(s), LastEditableColumn(s))
		return
	}
	caret.Pos.Y = clamp(caret.Pos.Y, 0, s.Height()-1)
	caret.Pos.X = clamp(caret.Pos.X, 0, s.Width()-1)
}

// ClearBufferDown blanks from the caret to the end of the screen.
func ClearBufferDown(s EditableScreen) {
	caret := s.Caret()
	blank := BlankCell(caret.Attr)
	for x := caret.Pos.X; x < s.Width(); x++ {
		s.SetChar(Position{X: x, Y: caret.Pos.Y}, blank)
	}
	for y := caret.Pos.Y + 1; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetChar(Position{X: x, Y: y}, blank)
		}
	}
}

// ClearBufferUp blanks from the start of the screen through the caret.
func ClearBufferUp(s EditableScreen) {
	caret := s.Caret()
	blank := BlankCell(caret.Attr)
	for y := 0; y < caret.Pos.Y; y++ {
		for x := 0; x < s.Width(); x++ {
			s.SetChar(Position{X: x, Y: y}, blank)
		}
	}
	for x := 0; x <= caret.Pos.X && x < s.Width(); x++ {
		s.SetChar(Position{X: x, Y: caret.Pos.Y}, blank)
	}
}

// FillRect writes ch into a rectangle, clamped to the screen. The area
// commands (DECFRA, DECERA) come here.
func FillRect(s EditableScreen, ch rune, top, left, bottom, right int) {
	top = clamp(top, 0, s.Height()-1)
	bottom = clamp(bottom, 0, s.Height()-1)
	left = clamp(left, 0, s.Width()-1)
	right = clamp(right, 0, s.Width()-1)
	attr := s.Caret().Attr
	for y := top; y <= bottom; y++ {
		for x := left; x <= right; x++ {
			s.SetChar(Position{X: x, Y: y}, Cell{Ch: ch, Attr: attr})
		}
	}
}

// Home moves the caret to the upper-left position.
func Home(s EditableScreen) {
	s.Caret().Pos = UpperLeft(s)
}

// EndOfLine moves the caret to the last column.
func EndOfLine(s EditableScreen) {
	s.Caret().Pos.X = s.Width() - 1
}
