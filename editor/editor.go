// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package editor wraps an editable screen with an undo/redo log. Every
// public mutation performs the forward action first and then pushes the
// operation that reverses it, so undo always matches what was actually
// applied. The undo stack is the only shared state: a single mutex lets
// a UI goroutine poll CanUndo while the writer goroutine edits.
package editor

import (
	"sync"

	"github.com/ericwq/bbsterm/screen"
)

// OperationType tags undo entries so tools can coalesce runs of
// same-type operations and inspect the last entry. A font tool checks
// for RenderCharacter to decide whether backspace reverses the last
// render instead of destructively erasing.
type OperationType uint8

const (
	OpUnknown OperationType = iota
	OpRenderCharacter
	OpReversedRenderCharacter
)

// Operation is one reversible mutation. Redo applies the forward
// action, Undo reverses it; both mutate the screen directly and never
// push onto the undo log.
type Operation interface {
	Description() string
	Undo(s *EditState)
	Redo(s *EditState)
	ChangesData() bool
	Type() OperationType
}

// EditState owns the screen being edited plus the undo and redo
// stacks. Undo entries survive until ClearUndoStack; pushing any new
// operation invalidates the redo stack.
type EditState struct {
	scr screen.EditableScreen

	// mu guards undoStack only. The redo stack belongs to the writer.
	mu        sync.Mutex
	undoStack []Operation
	redoStack []Operation

	bufferDirty bool
}

func NewEditState(scr screen.EditableScreen) *EditState {
	return &EditState{scr: scr}
}

func (s *EditState) Screen() screen.EditableScreen { return s.scr }

func (s *EditState) Caret() *screen.Caret { return s.scr.Caret() }

// IsBufferDirty reports whether a data-changing operation ran since
// the last SetBufferClean.
func (s *EditState) IsBufferDirty() bool { return s.bufferDirty }

func (s *EditState) SetBufferClean() { s.bufferDirty = false }

// pushUndoAction applies op and records it.
func (s *EditState) pushUndoAction(op Operation) {
	op.Redo(s)
	s.pushPlainUndo(op)
}

// pushPlainUndo records an already-applied operation and invalidates
// the redo stack.
func (s *EditState) pushPlainUndo(op Operation) {
	if op.ChangesData() {
		s.bufferDirty = true
	}
	s.mu.Lock()
	s.undoStack = append(s.undoStack, op)
	s.mu.Unlock()
	s.redoStack = s.redoStack[:0]
}

// PushReverseUndo records op without running its forward action, for
// callers that already mutated the screen themselves.
func (s *EditState) PushReverseUndo(op Operation) {
	s.pushPlainUndo(op)
}

func (s *EditState) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack) > 0
}

func (s *EditState) CanRedo() bool { return len(s.redoStack) > 0 }

// UndoDescription names the operation Undo would reverse.
func (s *EditState) UndoDescription() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return "", false
	}
	return s.undoStack[len(s.undoStack)-1].Description(), true
}

func (s *EditState) RedoDescription() (string, bool) {
	if len(s.redoStack) == 0 {
		return "", false
	}
	return s.redoStack[len(s.redoStack)-1].Description(), true
}

// LastOperationType inspects the top undo entry without popping it.
func (s *EditState) LastOperationType() (OperationType, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.undoStack) == 0 {
		return OpUnknown, false
	}
	return s.undoStack[len(s.undoStack)-1].Type(), true
}

func (s *EditState) UndoStackLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undoStack)
}

// ClearUndoStack drops both stacks, typically after a save.
func (s *EditState) ClearUndoStack() {
	s.mu.Lock()
	s.undoStack = s.undoStack[:0]
	s.mu.Unlock()
	s.redoStack = s.redoStack[:0]
}

// Undo reverses the most recent operation and moves it to the redo
// stack. The lock covers only the pop; the operation itself runs on
// the writer's side.
func (s *EditState) Undo() {
	s.mu.Lock()
	n := len(s.undoStack)
	if n == 0 {
		s.mu.Unlock()
		return
	}
	op := s.undoStack[n-1]
	s.undoStack = s.undoStack[:n-1]
	s.mu.Unlock()

	if op.ChangesData() {
		s.bufferDirty = true
	}
	op.Undo(s)
	s.redoStack = append(s.redoStack, op)
}

// Redo re-applies the most recently undone operation.
func (s *EditState) Redo() {
	n := len(s.redoStack)
	if n == 0 {
		return
	}
	op := s.redoStack[n-1]
	s.redoStack = s.redoStack[:n-1]

	if op.ChangesData() {
		s.bufferDirty = true
	}
	op.Redo(s)
	s.mu.Lock()
	s.undoStack = append(s.undoStack, op)
	s.mu.Unlock()
}

// AtomicUndoGuard coalesces the operations pushed between its creation
// and End into one composite undo entry. End is idempotent, so a
// deferred End after an explicit one finalizes nothing twice; a group
// that gathered no operations pushes nothing.
type AtomicUndoGuard struct {
	state       *EditState
	base        int
	description string
	opType      OperationType
	done        bool
}

// BeginAtomicUndo opens an untyped undo group. Callers defer End so
// early returns still close the group.
func (s *EditState) BeginAtomicUndo(description string) *AtomicUndoGuard {
	return s.BeginTypedAtomicUndo(description, OpUnknown)
}

// BeginTypedAtomicUndo opens an undo group whose composite entry
// carries the given operation type.
func (s *EditState) BeginTypedAtomicUndo(description string, opType OperationType) *AtomicUndoGuard {
	s.mu.Lock()
	base := len(s.undoStack)
	s.mu.Unlock()
	return &AtomicUndoGuard{
		state:       s,
		base:        base,
		description: description,
		opType:      opType,
	}
}

// End finalizes the group, replacing the gathered operations with one
// composite entry.
func (g *AtomicUndoGuard) End() {
	if g.done {
		return
	}
	g.done = true

	s := g.state
	s.mu.Lock()
	if len(s.undoStack) <= g.base {
		s.mu.Unlock()
		return
	}
	ops := make([]Operation, len(s.undoStack)-g.base)
	copy(ops, s.undoStack[g.base:])
	s.undoStack = append(s.undoStack[:g.base], &atomicOp{
		description: g.description,
		ops:         ops,
		opType:      g.opType,
	})
	s.mu.Unlock()
}
