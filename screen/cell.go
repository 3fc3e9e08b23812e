// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package screen holds the cell-grid display model the parsers draw on:
// cells, caret, palette, terminal state, the Screen/EditableScreen
// capability split with the shared editing algorithms, a concrete
// TextScreen, the Sink that replays commands into a screen, and RGBA
// rendering.
package screen

// Position is a zero-based screen coordinate. Column first, the way the
// editing algorithms consume it.
type Position struct {
	X, Y int
}

// AttrFlags is the boolean attribute set of one cell, packed.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrConcealed
	AttrCrossedOut
	AttrDoubleHeight
)

// Default palette indices for foreground and background.
const (
	DefaultFg uint32 = 7
	DefaultBg uint32 = 0
)

// Attr is the display attribute of one cell. Colors are palette indices;
// extended and RGB colors are inserted into the screen palette before
// they reach a cell, so a cell never carries raw color components.
type Attr struct {
	Flags    AttrFlags
	Fg, Bg   uint32
	FontPage uint8
}

// DefaultAttr is light gray on black, font page zero.
func DefaultAttr() Attr {
	return Attr{Fg: DefaultFg, Bg: DefaultBg}
}

func (a Attr) Is(f AttrFlags) bool {
	return a.Flags&f != 0
}

func (a *Attr) SetFlag(f AttrFlags, on bool) {
	if on {
		a.Flags |= f
	} else {
		a.Flags &^= f
	}
}

// Cell is one character cell. Ch 0 marks the spacer half of a wide
// character; it renders as nothing.
type Cell struct {
	Ch   rune
	Attr Attr
}

// BlankCell is a space carrying the given attribute.
func BlankCell(a Attr) Cell {
	return Cell{Ch: ' ', Attr: a}
}

// Line is one screen row. Lines may be shorter than the screen width;
// cells past the end read as default blanks.
type Line []Cell

// At reads a cell, treating positions past the end as blanks.
func (l Line) At(x int) Cell {
	if x < 0 || x >= len(l) {
		return BlankCell(DefaultAttr())
	}
	return l[x]
}
