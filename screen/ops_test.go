// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import "testing"

func rowText(s Screen, y int) string {
	out := make([]rune, 0, s.Width())
	for x := 0; x < s.Width(); x++ {
		c := s.CharAt(Position{X: x, Y: y})
		if c.Ch == 0 {
			c.Ch = ' '
		}
		out = append(out, c.Ch)
	}
	return string(out)
}

func printText(s EditableScreen, text string) {
	for _, r := range text {
		PrintChar(s, Cell{Ch: r, Attr: s.Caret().Attr})
	}
}

func TestPrintCharWrap(t *testing.T) {
	s := NewTextScreen(4, 3)
	printText(s, "abcdef")

	if got := rowText(s, 0); got != "abcd" {
		t.Errorf("row 0 %q", got)
	}
	if got := rowText(s, 1); got != "ef  " {
		t.Errorf("row 1 %q", got)
	}
	if s.Caret().Pos != (Position{X: 2, Y: 1}) {
		t.Errorf("caret %+v", s.Caret().Pos)
	}
}

func TestPrintCharNoWrap(t *testing.T) {
	s := NewTextScreen(4, 3)
	s.State().AutoWrap = false
	printText(s, "abcdef")

	// the last column keeps taking characters without advancing
	if got := rowText(s, 0); got != "abcf" {
		t.Errorf("row 0 %q", got)
	}
	if s.Caret().Pos != (Position{X: 3, Y: 0}) {
		t.Errorf("caret %+v", s.Caret().Pos)
	}
}

func TestPrintCharGrowsEditingBuffer(t *testing.T) {
	s := NewTextScreen(4, 1)
	s.State().TerminalBuffer = false
	s.Caret().Pos = Position{X: 6, Y: 0}
	PrintChar(s, Cell{Ch: 'x', Attr: DefaultAttr()})

	if s.Width() < 7 {
		t.Errorf("width %d, expect growth past 6", s.Width())
	}
	if got := s.CharAt(Position{X: 6, Y: 0}).Ch; got != 'x' {
		t.Errorf("cell %q", got)
	}
}

func TestLineFeedScrollsAtBottom(t *testing.T) {
	s := NewTextScreen(4, 2)
	printText(s, "aaaa")
	printText(s, "bbbb")
	// caret wrapped to a fresh third line, pushing aaaa out
	if got := rowText(s, 0); got != "bbbb" {
		t.Errorf("row 0 %q", got)
	}
	if len(s.Scrollback()) != 1 {
		t.Fatalf("scrollback %d lines", len(s.Scrollback()))
	}
	if got := string(s.Scrollback()[0].At(0).Ch); got != "a" {
		t.Errorf("scrollback starts %q", got)
	}
}

func TestScrollRegionLock(t *testing.T) {
	s := NewTextScreen(4, 4)
	for i, row := range []string{"a", "b", "c", "d"} {
		s.Caret().Pos = Position{Y: i}
		printText(s, row)
	}
	// region rows 1..2; line feeds at the bottom cycle only b and c
	s.State().SetMarginsTopBottom(1, 2)
	s.Caret().Pos = Position{X: 0, Y: 2}
	LineFeed(s)

	if got := rowText(s, 0); got != "a   " {
		t.Errorf("row 0 %q, expect untouched", got)
	}
	if got := rowText(s, 1); got != "c   " {
		t.Errorf("row 1 %q", got)
	}
	if got := rowText(s, 2); got != "    " {
		t.Errorf("row 2 %q", got)
	}
	if got := rowText(s, 3); got != "d   " {
		t.Errorf("row 3 %q, expect untouched", got)
	}
	if len(s.Scrollback()) != 0 {
		t.Errorf("margined scroll fed the scrollback")
	}
}

func TestIndexScrollsAtRegionBottom(t *testing.T) {
	s := NewTextScreen(4, 4)
	for i, row := range []string{"a", "b", "c", "d"} {
		s.Caret().Pos = Position{Y: i}
		printText(s, row)
	}
	// region rows 1..2; ESC D on the bottom line cycles only b and c
	s.State().SetMarginsTopBottom(1, 2)
	s.Caret().Pos = Position{X: 2, Y: 2}
	IndexCaret(s)

	if got := s.Caret().Pos.Y; got != 2 {
		t.Errorf("caret row %d, expect pinned at region bottom 2", got)
	}
	if got := rowText(s, 1); got != "c   " {
		t.Errorf("row 1 %q, expect scrolled content", got)
	}
	if got := rowText(s, 2); got != "    " {
		t.Errorf("row 2 %q", got)
	}
	if got := rowText(s, 0); got != "a   " {
		t.Errorf("row 0 %q, expect untouched", got)
	}
	if got := rowText(s, 3); got != "d   " {
		t.Errorf("row 3 %q, expect untouched", got)
	}
}

func TestNextLineScrollsAtRegionBottom(t *testing.T) {
	s := NewTextScreen(4, 4)
	s.State().SetMarginsTopBottom(1, 2)
	s.Caret().Pos = Position{X: 3, Y: 2}
	NextLineCaret(s)

	if pos := s.Caret().Pos; pos.X != 0 || pos.Y != 2 {
		t.Errorf("caret %v, expect column 0 at region bottom 2", pos)
	}
}

func TestReverseIndexScrollsRegionDown(t *testing.T) {
	s := NewTextScreen(4, 3)
	printText(s, "top")
	s.State().SetMarginsTopBottom(0, 1)
	s.Caret().Pos = Position{Y: 0}
	ReverseIndexCaret(s)

	if got := rowText(s, 0); got != "    " {
		t.Errorf("row 0 %q", got)
	}
	if got := rowText(s, 1); got != "top " {
		t.Errorf("row 1 %q", got)
	}
}

func TestLimitCaretOriginMode(t *testing.T) {
	s := NewTextScreen(10, 10)
	s.State().SetMarginsTopBottom(2, 5)
	s.State().OriginWithinMargins = true
	s.Caret().Pos = Position{X: 3, Y: 3}

	s.Caret().Pos.Y = 20
	LimitCaret(s, true)
	if s.Caret().Pos.Y != 5 {
		t.Errorf("caret y %d, expect region bottom 5", s.Caret().Pos.Y)
	}

	// outside the region the clamp is the full screen
	s.Caret().Pos.Y = 20
	LimitCaret(s, false)
	if s.Caret().Pos.Y != 9 {
		t.Errorf("caret y %d, expect screen bottom 9", s.Caret().Pos.Y)
	}
}

func TestInsertDeleteChar(t *testing.T) {
	s := NewTextScreen(6, 2)
	printText(s, "abcdef")
	s.Caret().Pos = Position{X: 2}

	DeleteChar(s)
	if got := rowText(s, 0); got != "abdef " {
		t.Errorf("after delete %q", got)
	}
	InsertChar(s)
	if got := rowText(s, 0); got != "ab def" {
		t.Errorf("after insert %q", got)
	}
}

func TestInsertRemoveLine(t *testing.T) {
	s := NewTextScreen(3, 3)
	for i, row := range []string{"aa", "bb", "cc"} {
		s.Caret().Pos = Position{Y: i}
		printText(s, row)
	}

	s.InsertLine(1)
	if rowText(s, 1) != "   " || rowText(s, 2) != "bb " {
		t.Errorf("insert: %q / %q", rowText(s, 1), rowText(s, 2))
	}

	s.RemoveLine(1)
	if rowText(s, 1) != "bb " || rowText(s, 2) != "   " {
		t.Errorf("remove: %q / %q", rowText(s, 1), rowText(s, 2))
	}
}

func TestTabStops(t *testing.T) {
	s := NewTextScreen(20, 1)
	TabForward(s)
	if s.Caret().Pos.X != 8 {
		t.Errorf("first stop %d", s.Caret().Pos.X)
	}
	TabForward(s)
	if s.Caret().Pos.X != 16 {
		t.Errorf("second stop %d", s.Caret().Pos.X)
	}
	TabForward(s)
	if s.Caret().Pos.X != 19 {
		t.Errorf("past last stop %d, expect last column", s.Caret().Pos.X)
	}
	TabBackward(s)
	if s.Caret().Pos.X != 16 {
		t.Errorf("back %d", s.Caret().Pos.X)
	}

	st := s.State()
	st.ClearTabStops()
	st.SetTabAt(5)
	s.Caret().Pos.X = 0
	TabForward(s)
	if s.Caret().Pos.X != 5 {
		t.Errorf("custom stop %d", s.Caret().Pos.X)
	}
}

func TestClearBufferIdempotent(t *testing.T) {
	s := NewTextScreen(4, 3)
	printText(s, "abcdefgh")
	s.Caret().Pos = Position{X: 1, Y: 1}

	ClearBufferDown(s)
	first := []string{rowText(s, 0), rowText(s, 1), rowText(s, 2)}
	ClearBufferDown(s)
	second := []string{rowText(s, 0), rowText(s, 1), rowText(s, 2)}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("row %d changed on second erase: %q vs %q", i, first[i], second[i])
		}
	}
	if first[0] != "abcd" || first[1] != "e   " || first[2] != "    " {
		t.Errorf("erase result %q", first)
	}
}

func TestResizeKeepsContent(t *testing.T) {
	s := NewTextScreen(6, 3)
	printText(s, "hello")
	s.Resize(4, 2)

	if got := rowText(s, 0); got != "hell" {
		t.Errorf("row 0 %q", got)
	}
	if s.Width() != 4 || s.Height() != 2 {
		t.Errorf("size %dx%d", s.Width(), s.Height())
	}
	if s.Caret().Pos.X >= 4 || s.Caret().Pos.Y >= 2 {
		t.Errorf("caret off screen %+v", s.Caret().Pos)
	}
}

func TestVersionAdvancesOnEdit(t *testing.T) {
	s := NewTextScreen(4, 2)
	before := s.Version()
	PrintChar(s, Cell{Ch: 'x', Attr: DefaultAttr()})
	if s.Version() == before {
		t.Error("version unchanged after print")
	}
}

func TestPaletteInsertDedupe(t *testing.T) {
	p := NewEgaPalette()
	n := p.Len()
	idx := p.InsertRGB(0xff, 0x80, 0x00)
	if int(idx) != n {
		t.Errorf("new color index %d, expect %d", idx, n)
	}
	if again := p.InsertRGB(0xff, 0x80, 0x00); again != idx {
		t.Errorf("reinsert index %d, expect %d", again, idx)
	}
	if white := p.InsertRGB(0xff, 0xff, 0xff); white != 15 {
		t.Errorf("white index %d, expect base 15", white)
	}
}

func TestXterm256Ramp(t *testing.T) {
	// cube corner and gray ramp entries
	r, g, b := Xterm256(196).RGB255()
	if r != 255 || g != 0 || b != 0 {
		t.Errorf("index 196 = %d,%d,%d, expect pure red", r, g, b)
	}
	r, g, b = Xterm256(244).RGB255()
	if r != g || g != b {
		t.Errorf("gray ramp not gray: %d,%d,%d", r, g, b)
	}
}
