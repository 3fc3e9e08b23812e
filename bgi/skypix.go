// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"github.com/ericwq/bbsterm/command"
)

// SkyPix scenes target the Amiga 640x200 hires screen.
const (
	SkypixWidth  = 640
	SkypixHeight = 200
)

// DisplayMode is the SkyPix bitplane depth selector.
type DisplayMode uint8

const (
	BitPlanes3 DisplayMode = 3
	BitPlanes4 DisplayMode = 4
)

// skypixPalette holds the stock SkyPix colors as 4-bit Amiga triples.
var skypixPalette = [16][3]uint8{
	{0, 0, 0}, {1, 1, 15}, {13, 13, 13}, {15, 0, 0},
	{0, 15, 1}, {3, 10, 15}, {15, 15, 2}, {12, 0, 14},
	{0, 11, 6}, {0, 13, 13}, {0, 10, 15}, {0, 7, 12},
	{0, 0, 15}, {7, 0, 15}, {12, 0, 14}, {12, 0, 8},
}

// amigaChannel widens a 4-bit Amiga color channel to 8 bits.
func amigaChannel(c int) uint8 { return uint8(c&0xF) * 17 }

// SkypixExecutor runs parsed SkyPix commands against a Bgi engine.
// Pen changes mirror into the text caret through the callbacks; the
// playback commands the engine cannot act on (samples, delays, font
// and CRC transfers, gadgets) go to OnUnhandled with the full command.
type SkypixExecutor struct {
	bgi         *Bgi
	brush       *Image
	displayMode DisplayMode

	// OnCaretMove, when set, receives PositionCursor moves in cells.
	OnCaretMove func(col, row int)

	// OnForeground and OnBackground, when set, mirror the pen colors
	// into the text attributes.
	OnForeground func(color uint8)
	OnBackground func(color uint8)

	// OnUnhandled, when set, receives the playback commands.
	OnUnhandled func(cmd command.SkypixCommand)
}

func NewSkypixExecutor(b *Bgi) *SkypixExecutor {
	return &SkypixExecutor{bgi: b, displayMode: BitPlanes4}
}

func (e *SkypixExecutor) Bgi() *Bgi { return e.bgi }

func (e *SkypixExecutor) DisplayMode() DisplayMode { return e.displayMode }

// Brush reports the image grabbed by the last GrabBrush.
func (e *SkypixExecutor) Brush() *Image { return e.brush }

// Run executes one command.
func (e *SkypixExecutor) Run(cmd command.SkypixCommand) {
	b := e.bgi
	a := func(i int) int { return arg(cmd.Args, i) }

	switch cmd.Op {
	case command.SkypixComment:
		// annotation only

	case command.SkypixSetPixel:
		b.PutPixel(a(0), a(1), b.Color())

	case command.SkypixDrawLine:
		b.LineTo(a(0), a(1))

	case command.SkypixAreaFill:
		// both fill modes stop at the pen color
		b.FloodFill(a(1), a(2), b.Color())

	case command.SkypixRectangleFill:
		b.Bar(a(0), a(1), a(2), a(3))

	case command.SkypixEllipse:
		b.Ellipse(a(0), a(1), 0, 360, a(2), a(3))

	case command.SkypixFilledEllipse:
		b.FillEllipse(a(0), a(1), 0, 360, a(2), a(3))

	case command.SkypixGrabBrush:
		e.brush = b.GetImage(a(0), a(1), a(2), a(3))

	case command.SkypixUseBrush:
		// args: srcX srcY dstX dstY width height minterm mask; the
		// minterm and mask planes are not modeled
		if e.brush != nil {
			b.PutImageRegion(a(0), a(1), a(4), a(5), a(2), a(3), e.brush, ModeCopy)
		}

	case command.SkypixMovePen:
		b.MoveTo(a(0), a(1))

	case command.SkypixNewPalette:
		pal := b.Screen().Palette()
		for i := 0; i < 16 && i < len(cmd.Args); i++ {
			p := cmd.Args[i]
			pal.SetRGB(uint32(i), amigaChannel(p), amigaChannel(p>>4), amigaChannel(p>>8))
		}
		b.Screen().MarkDirty()

	case command.SkypixResetPalette:
		pal := b.Screen().Palette()
		for i, c := range skypixPalette {
			pal.SetRGB(uint32(i), amigaChannel(int(c[0])), amigaChannel(int(c[1])), amigaChannel(int(c[2])))
		}
		b.Screen().MarkDirty()

	case command.SkypixSetPenA:
		col := uint8(a(0))
		b.SetColor(col)
		if e.OnForeground != nil {
			e.OnForeground(col)
		}

	case command.SkypixSetPenB:
		col := uint8(a(0))
		b.SetBkColor(col)
		if e.OnBackground != nil {
			e.OnBackground(col)
		}

	case command.SkypixSetDisplayMode:
		switch a(0) {
		case 1:
			e.displayMode = BitPlanes3
		case 2:
			e.displayMode = BitPlanes4
		}

	case command.SkypixPositionCursor:
		if e.OnCaretMove != nil {
			e.OnCaretMove(a(0)*80/SkypixWidth, a(1)*25/SkypixHeight)
		}

	case command.SkypixEndSkypix:
		// scene terminator, nothing to draw

	default:
		// samples, delays, font and CRC transfers, controller returns
		// and gadgets belong to the playback layer
		if e.OnUnhandled != nil {
			e.OnUnhandled(cmd)
		}
	}
}
