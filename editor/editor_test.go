// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package editor

import (
	"testing"

	"github.com/ericwq/bbsterm/screen"
)

func newTestState() (*EditState, *screen.TextScreen) {
	scr := screen.NewTextScreen(20, 5)
	return NewEditState(scr), scr
}

func fillPattern(s *EditState) {
	for y := 0; y < s.Screen().Height(); y++ {
		for x := 0; x < s.Screen().Width(); x++ {
			s.Screen().SetChar(screen.Position{X: x, Y: y},
				screen.Cell{Ch: rune('a' + (x+y)%26)})
		}
	}
}

func snapshot(s *EditState) [][]screen.Cell {
	out := make([][]screen.Cell, s.Screen().Height())
	for y := range out {
		out[y] = make([]screen.Cell, s.Screen().Width())
		for x := range out[y] {
			out[y][x] = s.Screen().CharAt(screen.Position{X: x, Y: y})
		}
	}
	return out
}

func compareSnapshot(t *testing.T, s *EditState, want [][]screen.Cell, label string) {
	t.Helper()
	if s.Screen().Height() != len(want) || s.Screen().Width() != len(want[0]) {
		t.Fatalf("%s: size %dx%d, expect %dx%d", label,
			s.Screen().Width(), s.Screen().Height(), len(want[0]), len(want))
	}
	for y := range want {
		for x := range want[y] {
			got := s.Screen().CharAt(screen.Position{X: x, Y: y})
			if got != want[y][x] {
				t.Fatalf("%s: cell (%d,%d) = %+v, expect %+v", label, x, y, got, want[y][x])
			}
		}
	}
}

func TestSetCharUndoRedo(t *testing.T) {
	s, scr := newTestState()
	pos := screen.Position{X: 3, Y: 1}
	s.SetChar(pos, screen.Cell{Ch: 'X'})
	if got := scr.CharAt(pos).Ch; got != 'X' {
		t.Fatalf("forward action not applied: %q", got)
	}
	if !s.CanUndo() || s.CanRedo() {
		t.Fatalf("CanUndo=%v CanRedo=%v after push", s.CanUndo(), s.CanRedo())
	}
	s.Undo()
	if got := scr.CharAt(pos).Ch; got == 'X' {
		t.Fatal("undo did not restore the cell")
	}
	if s.CanUndo() || !s.CanRedo() {
		t.Fatalf("CanUndo=%v CanRedo=%v after undo", s.CanUndo(), s.CanRedo())
	}
	s.Redo()
	if got := scr.CharAt(pos).Ch; got != 'X' {
		t.Fatalf("redo did not re-apply: %q", got)
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s, _ := newTestState()
	fillPattern(s)
	before := snapshot(s)

	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: '1'})
	s.SwapChar(screen.Position{X: 1, Y: 1}, screen.Position{X: 2, Y: 2})
	s.DeleteRow(1)
	s.InsertRow(3)
	s.ScrollUp()
	s.ScrollDown()
	after := snapshot(s)

	for s.CanUndo() {
		s.Undo()
	}
	compareSnapshot(t, s, before, "after full undo")

	for s.CanRedo() {
		s.Redo()
	}
	compareSnapshot(t, s, after, "after full redo")
}

func TestRedoClearedOnPush(t *testing.T) {
	s, _ := newTestState()
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("redo stack empty after undo")
	}
	s.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 'B'})
	if s.CanRedo() {
		t.Fatal("redo stack survived a new push")
	}
}

func TestResizeUndoRestoresContents(t *testing.T) {
	s, _ := newTestState()
	fillPattern(s)
	before := snapshot(s)
	s.Resize(10, 3)
	if s.Screen().Width() != 10 || s.Screen().Height() != 3 {
		t.Fatalf("resize not applied: %dx%d", s.Screen().Width(), s.Screen().Height())
	}
	s.Undo()
	compareSnapshot(t, s, before, "after resize undo")
}

func TestSwitchPaletteUndo(t *testing.T) {
	s, scr := newTestState()
	s.SwitchPalette(screen.NewXterm256Palette())
	if got := scr.Palette().Len(); got != 256 {
		t.Fatalf("palette len %d after switch, expect 256", got)
	}
	s.Undo()
	if got := scr.Palette().Len(); got != 16 {
		t.Fatalf("palette len %d after undo, expect 16", got)
	}
	s.Redo()
	if got := scr.Palette().Len(); got != 256 {
		t.Fatalf("palette len %d after redo, expect 256", got)
	}
}

func TestSelectionUndo(t *testing.T) {
	s, scr := newTestState()
	sel := screen.Selection{Start: screen.Position{X: 1, Y: 1}, End: screen.Position{X: 5, Y: 2}}
	s.SetSelection(sel)
	if got, ok := scr.Selection(); !ok || got != sel {
		t.Fatalf("selection not applied: %+v ok=%v", got, ok)
	}
	s.Deselect()
	if _, ok := scr.Selection(); ok {
		t.Fatal("deselect not applied")
	}
	s.Undo()
	if got, ok := scr.Selection(); !ok || got != sel {
		t.Fatalf("undo of deselect: %+v ok=%v", got, ok)
	}
	s.Undo()
	if _, ok := scr.Selection(); ok {
		t.Fatal("undo of set selection left one behind")
	}
}

func TestDeselectWithoutSelection(t *testing.T) {
	s, _ := newTestState()
	s.Deselect()
	if s.CanUndo() {
		t.Fatal("deselect without a selection pushed an operation")
	}
}

func TestPushCaretPosition(t *testing.T) {
	s, scr := newTestState()
	scr.Caret().Pos = screen.Position{X: 4, Y: 2}
	s.PushCaretPosition()
	scr.Caret().Pos = screen.Position{X: 9, Y: 4}
	s.Undo()
	if got := scr.Caret().Pos; got.X != 4 || got.Y != 2 {
		t.Fatalf("caret after undo %+v, expect (4,2)", got)
	}
	s.Redo()
	if got := scr.Caret().Pos; got.X != 9 || got.Y != 4 {
		t.Fatalf("caret after redo %+v, expect (9,4)", got)
	}
}

func TestAtomicUndoCoalesces(t *testing.T) {
	s, _ := newTestState()
	fillPattern(s)
	before := snapshot(s)

	guard := s.BeginAtomicUndo("typing")
	for i := 0; i < 5; i++ {
		s.SetChar(screen.Position{X: i, Y: 0}, screen.Cell{Ch: '#'})
	}
	guard.End()

	if got := s.UndoStackLen(); got != 1 {
		t.Fatalf("undo stack len %d, expect 1 composite entry", got)
	}
	s.Undo()
	compareSnapshot(t, s, before, "after composite undo")
	s.Redo()
	for i := 0; i < 5; i++ {
		if got := s.Screen().CharAt(screen.Position{X: i, Y: 0}).Ch; got != '#' {
			t.Fatalf("composite redo lost cell %d: %q", i, got)
		}
	}
}

func TestAtomicUndoGuardIdempotentEnd(t *testing.T) {
	s, _ := newTestState()
	run := func() {
		guard := s.BeginAtomicUndo("group")
		defer guard.End()
		s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
		guard.End()
	}
	run()
	if got := s.UndoStackLen(); got != 1 {
		t.Fatalf("undo stack len %d after explicit+deferred End, expect 1", got)
	}
}

func TestAtomicUndoGuardAutoFinalize(t *testing.T) {
	s, _ := newTestState()
	run := func(fail bool) {
		guard := s.BeginAtomicUndo("group")
		defer guard.End()
		s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
		if fail {
			// early return leaves finalization to the deferred End
			return
		}
		s.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 'B'})
	}
	run(true)
	if got := s.UndoStackLen(); got != 1 {
		t.Fatalf("undo stack len %d after early return, expect 1", got)
	}
}

func TestAtomicUndoEmptyGroup(t *testing.T) {
	s, _ := newTestState()
	guard := s.BeginAtomicUndo("nothing")
	guard.End()
	if got := s.UndoStackLen(); got != 0 {
		t.Fatalf("empty group pushed %d entries", got)
	}
}

func TestTypedAtomicUndoTag(t *testing.T) {
	s, _ := newTestState()
	guard := s.BeginTypedAtomicUndo("render", OpRenderCharacter)
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	guard.End()
	typ, ok := s.LastOperationType()
	if !ok || typ != OpRenderCharacter {
		t.Fatalf("last operation type %v ok=%v, expect render character", typ, ok)
	}
}

func TestNestedAtomicUndo(t *testing.T) {
	s, _ := newTestState()
	outer := s.BeginAtomicUndo("outer")
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	inner := s.BeginAtomicUndo("inner")
	s.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 'B'})
	inner.End()
	outer.End()
	if got := s.UndoStackLen(); got != 1 {
		t.Fatalf("undo stack len %d, expect 1", got)
	}
	s.Undo()
	for _, x := range []int{0, 1} {
		if got := s.Screen().CharAt(screen.Position{X: x, Y: 0}).Ch; got == 'A' || got == 'B' {
			t.Fatalf("nested undo left cell %d as %q", x, got)
		}
	}
}

func TestNewReversed(t *testing.T) {
	s, scr := newTestState()
	pos := screen.Position{X: 2, Y: 2}
	// the forward action already happened; push the record only
	scr.SetChar(pos, screen.Cell{Ch: 'R'})
	op := &setCharOp{pos: pos, old: screen.Cell{}, new: screen.Cell{Ch: 'R'}}
	s.PushReverseUndo(NewReversed(op, OpReversedRenderCharacter))
	typ, _ := s.LastOperationType()
	if typ != OpReversedRenderCharacter {
		t.Fatalf("operation type %v", typ)
	}
	// reversed: Undo runs the wrapped Redo direction
	s.Undo()
	if got := scr.CharAt(pos).Ch; got != 'R' {
		t.Fatalf("reversed undo gave %q, expect 'R'", got)
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	s, _ := newTestState()
	if s.IsBufferDirty() {
		t.Fatal("fresh state dirty")
	}
	s.SetSelection(screen.Selection{})
	if s.IsBufferDirty() {
		t.Fatal("selection marked the buffer dirty")
	}
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	if !s.IsBufferDirty() {
		t.Fatal("data change did not mark the buffer dirty")
	}
	s.SetBufferClean()
	s.Undo()
	if !s.IsBufferDirty() {
		t.Fatal("undo of a data change did not mark the buffer dirty")
	}
}

func TestClearUndoStack(t *testing.T) {
	s, _ := newTestState()
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	s.Undo()
	s.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 'B'})
	s.ClearUndoStack()
	if s.CanUndo() || s.CanRedo() {
		t.Fatal("stacks survived ClearUndoStack")
	}
}

func TestUndoDescription(t *testing.T) {
	s, _ := newTestState()
	if _, ok := s.UndoDescription(); ok {
		t.Fatal("description on empty stack")
	}
	s.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'A'})
	if d, ok := s.UndoDescription(); !ok || d != "set char" {
		t.Fatalf("description %q ok=%v", d, ok)
	}
	s.Undo()
	if d, ok := s.RedoDescription(); !ok || d != "set char" {
		t.Fatalf("redo description %q ok=%v", d, ok)
	}
}

func TestPasteTextSingleUndoStep(t *testing.T) {
	s, scr := newTestState()
	scr.Caret().Pos = screen.Position{X: 2, Y: 1}
	s.PasteText("hi\nyo")
	if got := s.UndoStackLen(); got != 1 {
		t.Fatalf("paste pushed %d entries, expect 1", got)
	}
	if got := scr.CharAt(screen.Position{X: 2, Y: 1}).Ch; got != 'h' {
		t.Fatalf("cell (2,1) = %q", got)
	}
	if got := scr.CharAt(screen.Position{X: 3, Y: 1}).Ch; got != 'i' {
		t.Fatalf("cell (3,1) = %q", got)
	}
	// the newline returns to the paste column
	if got := scr.CharAt(screen.Position{X: 2, Y: 2}).Ch; got != 'y' {
		t.Fatalf("cell (2,2) = %q", got)
	}
	s.Undo()
	for _, p := range []screen.Position{{X: 2, Y: 1}, {X: 3, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 2}} {
		if got := scr.CharAt(p).Ch; got != ' ' && got != 0 {
			t.Fatalf("cell %+v = %q after undo", p, got)
		}
	}
}

func TestPasteTextWideCluster(t *testing.T) {
	s, scr := newTestState()
	s.PasteText("中a")
	if got := scr.CharAt(screen.Position{X: 0, Y: 0}).Ch; got != '中' {
		t.Fatalf("cell (0,0) = %q", got)
	}
	// the wide cluster owns a spacer cell
	if got := scr.CharAt(screen.Position{X: 1, Y: 0}).Ch; got != 0 {
		t.Fatalf("cell (1,0) = %q, expect spacer", got)
	}
	if got := scr.CharAt(screen.Position{X: 2, Y: 0}).Ch; got != 'a' {
		t.Fatalf("cell (2,0) = %q", got)
	}
}
