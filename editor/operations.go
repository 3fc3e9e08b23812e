// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package editor

import (
	"github.com/ericwq/bbsterm/screen"
)

// atomicOp is the composite entry an AtomicUndoGuard leaves behind.
type atomicOp struct {
	description string
	ops         []Operation
	opType      OperationType
}

func (a *atomicOp) Description() string { return a.description }

func (a *atomicOp) Undo(s *EditState) {
	for i := len(a.ops) - 1; i >= 0; i-- {
		a.ops[i].Undo(s)
	}
}

func (a *atomicOp) Redo(s *EditState) {
	for _, op := range a.ops {
		op.Redo(s)
	}
}

func (a *atomicOp) ChangesData() bool {
	for _, op := range a.ops {
		if op.ChangesData() {
			return true
		}
	}
	return false
}

func (a *atomicOp) Type() OperationType { return a.opType }

// reversedOp swaps an operation's directions and retags it. A tool
// that applied a mutation itself pushes the reversed form so undo
// replays the opposite direction.
type reversedOp struct {
	op     Operation
	opType OperationType
}

// NewReversed wraps op with its undo and redo swapped, carrying the
// given operation type.
func NewReversed(op Operation, opType OperationType) Operation {
	return &reversedOp{op: op, opType: opType}
}

func (r *reversedOp) Description() string { return r.op.Description() }
func (r *reversedOp) Undo(s *EditState)   { r.op.Redo(s) }
func (r *reversedOp) Redo(s *EditState)   { r.op.Undo(s) }
func (r *reversedOp) ChangesData() bool   { return r.op.ChangesData() }
func (r *reversedOp) Type() OperationType { return r.opType }

// setCharOp records one cell write.
type setCharOp struct {
	pos      screen.Position
	old, new screen.Cell
}

func (o *setCharOp) Description() string { return "set char" }
func (o *setCharOp) Undo(s *EditState)   { s.scr.SetChar(o.pos, o.old) }
func (o *setCharOp) Redo(s *EditState)   { s.scr.SetChar(o.pos, o.new) }
func (o *setCharOp) ChangesData() bool   { return true }
func (o *setCharOp) Type() OperationType { return OpUnknown }

// SetChar writes a cell and records the overwritten one.
func (s *EditState) SetChar(pos screen.Position, c screen.Cell) {
	s.pushUndoAction(&setCharOp{pos: pos, old: s.scr.CharAt(pos), new: c})
}

type swapCharOp struct {
	pos1, pos2 screen.Position
}

func (o *swapCharOp) Description() string { return "swap char" }

func (o *swapCharOp) swap(s *EditState) {
	c1 := s.scr.CharAt(o.pos1)
	c2 := s.scr.CharAt(o.pos2)
	s.scr.SetChar(o.pos1, c2)
	s.scr.SetChar(o.pos2, c1)
}

func (o *swapCharOp) Undo(s *EditState)   { o.swap(s) }
func (o *swapCharOp) Redo(s *EditState)   { o.swap(s) }
func (o *swapCharOp) ChangesData() bool   { return true }
func (o *swapCharOp) Type() OperationType { return OpUnknown }

// SwapChar exchanges two cells.
func (s *EditState) SwapChar(pos1, pos2 screen.Position) {
	s.pushUndoAction(&swapCharOp{pos1: pos1, pos2: pos2})
}

// captureRow snapshots the cells of one row.
func captureRow(scr screen.EditableScreen, y int) []screen.Cell {
	row := make([]screen.Cell, scr.Width())
	for x := range row {
		row[x] = scr.CharAt(screen.Position{X: x, Y: y})
	}
	return row
}

func restoreRow(scr screen.EditableScreen, y int, row []screen.Cell) {
	for x, c := range row {
		scr.SetChar(screen.Position{X: x, Y: y}, c)
	}
}

// insertRowOp blanks row y and shifts the rest down; the row that
// falls off the bottom of the editable region is kept for undo.
type insertRowOp struct {
	y       int
	bottom  int
	dropped []screen.Cell
}

func (o *insertRowOp) Description() string { return "insert row" }

func (o *insertRowOp) Undo(s *EditState) {
	s.scr.RemoveLine(o.y)
	restoreRow(s.scr, o.bottom, o.dropped)
}

func (o *insertRowOp) Redo(s *EditState)   { s.scr.InsertLine(o.y) }
func (o *insertRowOp) ChangesData() bool   { return true }
func (o *insertRowOp) Type() OperationType { return OpUnknown }

// InsertRow inserts a blank row at y within the editable region.
func (s *EditState) InsertRow(y int) {
	bottom := screen.LastEditableLine(s.scr)
	s.pushUndoAction(&insertRowOp{
		y:       y,
		bottom:  bottom,
		dropped: captureRow(s.scr, bottom),
	})
}

// deleteRowOp removes row y; the removed cells restore on undo.
type deleteRowOp struct {
	y       int
	removed []screen.Cell
}

func (o *deleteRowOp) Description() string { return "delete row" }

func (o *deleteRowOp) Undo(s *EditState) {
	s.scr.InsertLine(o.y)
	restoreRow(s.scr, o.y, o.removed)
}

func (o *deleteRowOp) Redo(s *EditState)   { s.scr.RemoveLine(o.y) }
func (o *deleteRowOp) ChangesData() bool   { return true }
func (o *deleteRowOp) Type() OperationType { return OpUnknown }

// DeleteRow removes row y within the editable region.
func (s *EditState) DeleteRow(y int) {
	s.pushUndoAction(&deleteRowOp{y: y, removed: captureRow(s.scr, y)})
}

// scrollUpOp scrolls the editable region up one row.
type scrollUpOp struct {
	top     int
	dropped []screen.Cell
}

func (o *scrollUpOp) Description() string { return "scroll up" }

func (o *scrollUpOp) Undo(s *EditState) {
	s.scr.ScrollDown()
	restoreRow(s.scr, o.top, o.dropped)
}

func (o *scrollUpOp) Redo(s *EditState)   { s.scr.ScrollUp() }
func (o *scrollUpOp) ChangesData() bool   { return true }
func (o *scrollUpOp) Type() OperationType { return OpUnknown }

// ScrollUp scrolls the editable region up, keeping the dropped top
// row for undo.
func (s *EditState) ScrollUp() {
	top := screen.FirstEditableLine(s.scr)
	s.pushUndoAction(&scrollUpOp{top: top, dropped: captureRow(s.scr, top)})
}

type scrollDownOp struct {
	bottom  int
	dropped []screen.Cell
}

func (o *scrollDownOp) Description() string { return "scroll down" }

func (o *scrollDownOp) Undo(s *EditState) {
	s.scr.ScrollUp()
	restoreRow(s.scr, o.bottom, o.dropped)
}

func (o *scrollDownOp) Redo(s *EditState)   { s.scr.ScrollDown() }
func (o *scrollDownOp) ChangesData() bool   { return true }
func (o *scrollDownOp) Type() OperationType { return OpUnknown }

// ScrollDown scrolls the editable region down, keeping the dropped
// bottom row for undo.
func (s *EditState) ScrollDown() {
	bottom := screen.LastEditableLine(s.scr)
	s.pushUndoAction(&scrollDownOp{bottom: bottom, dropped: captureRow(s.scr, bottom)})
}

// resizeOp snapshots the whole grid; shrinking is lossy without it.
type resizeOp struct {
	oldWidth, oldHeight int
	newWidth, newHeight int
	cells               [][]screen.Cell
}

func (o *resizeOp) Description() string { return "resize buffer" }

func (o *resizeOp) Undo(s *EditState) {
	s.scr.Resize(o.oldWidth, o.oldHeight)
	for y, row := range o.cells {
		restoreRow(s.scr, y, row)
	}
}

func (o *resizeOp) Redo(s *EditState)   { s.scr.Resize(o.newWidth, o.newHeight) }
func (o *resizeOp) ChangesData() bool   { return true }
func (o *resizeOp) Type() OperationType { return OpUnknown }

// Resize changes the screen size, recording the full old contents.
func (s *EditState) Resize(width, height int) {
	op := &resizeOp{
		oldWidth:  s.scr.Width(),
		oldHeight: s.scr.Height(),
		newWidth:  width,
		newHeight: height,
	}
	op.cells = make([][]screen.Cell, op.oldHeight)
	for y := range op.cells {
		op.cells[y] = captureRow(s.scr, y)
	}
	s.pushUndoAction(op)
}

// switchPaletteOp swaps palette contents by value.
type switchPaletteOp struct {
	old, new *screen.Palette
}

func (o *switchPaletteOp) Description() string { return "switch palette" }

func (o *switchPaletteOp) Undo(s *EditState) {
	s.scr.Palette().CopyFrom(o.old)
	s.scr.MarkDirty()
}

func (o *switchPaletteOp) Redo(s *EditState) {
	s.scr.Palette().CopyFrom(o.new)
	s.scr.MarkDirty()
}

func (o *switchPaletteOp) ChangesData() bool   { return true }
func (o *switchPaletteOp) Type() OperationType { return OpUnknown }

// SwitchPalette replaces the screen palette.
func (s *EditState) SwitchPalette(pal *screen.Palette) {
	s.pushUndoAction(&switchPaletteOp{
		old: s.scr.Palette().Clone(),
		new: pal.Clone(),
	})
}

type setSelectionOp struct {
	old    screen.Selection
	hadOld bool
	new    screen.Selection
}

func (o *setSelectionOp) Description() string { return "set selection" }

func (o *setSelectionOp) Undo(s *EditState) {
	if o.hadOld {
		s.scr.SetSelection(o.old)
	} else {
		s.scr.ClearSelection()
	}
}

func (o *setSelectionOp) Redo(s *EditState)   { s.scr.SetSelection(o.new) }
func (o *setSelectionOp) ChangesData() bool   { return false }
func (o *setSelectionOp) Type() OperationType { return OpUnknown }

// SetSelection marks a cell range.
func (s *EditState) SetSelection(sel screen.Selection) {
	old, hadOld := s.scr.Selection()
	s.pushUndoAction(&setSelectionOp{old: old, hadOld: hadOld, new: sel})
}

type deselectOp struct {
	old screen.Selection
}

func (o *deselectOp) Description() string { return "deselect" }
func (o *deselectOp) Undo(s *EditState)   { s.scr.SetSelection(o.old) }
func (o *deselectOp) Redo(s *EditState)   { s.scr.ClearSelection() }
func (o *deselectOp) ChangesData() bool   { return false }
func (o *deselectOp) Type() OperationType { return OpUnknown }

// Deselect clears the selection; without one it records nothing.
func (s *EditState) Deselect() {
	old, ok := s.scr.Selection()
	if !ok {
		return
	}
	s.pushUndoAction(&deselectOp{old: old})
}

// caretPositionOp trades the stored position with the live one in
// both directions, so undo/redo walk the caret back and forth.
type caretPositionOp struct {
	pos screen.Position
}

func (o *caretPositionOp) Description() string { return "caret position" }

func (o *caretPositionOp) swap(s *EditState) {
	caret := s.scr.Caret()
	o.pos, caret.Pos = caret.Pos, o.pos
}

func (o *caretPositionOp) Undo(s *EditState)   { o.swap(s) }
func (o *caretPositionOp) Redo(s *EditState)   { o.swap(s) }
func (o *caretPositionOp) ChangesData() bool   { return false }
func (o *caretPositionOp) Type() OperationType { return OpUnknown }

// PushCaretPosition records the current caret position so the next
// undo restores it, without moving anything now.
func (s *EditState) PushCaretPosition() {
	s.pushPlainUndo(&caretPositionOp{pos: s.scr.Caret().Pos})
}
