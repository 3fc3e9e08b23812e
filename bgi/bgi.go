// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bgi is a Borland-graphics-style raster engine over a
// palette-indexed pixel screen. The RIP and SkyPix executors translate
// their dialect commands into calls on Bgi; everything draws through
// PutPixel so write modes and the viewport apply uniformly.
package bgi

import (
	"github.com/ericwq/bbsterm/screen"
)

// aspect corrects circle radii for the 640x350 EGA pixel shape.
const aspect = 350.0 / 480.0 * 1.06

// WriteMode combines a new pixel with the one already on screen.
type WriteMode uint8

const (
	ModeCopy WriteMode = iota
	ModeXor
	ModeOr
	ModeAnd
	ModeNot
)

// WriteModeFrom maps the dialect selector byte. Unknown values fall
// back to copy.
func WriteModeFrom(v int) WriteMode {
	switch v {
	case 1:
		return ModeXor
	case 2:
		return ModeOr
	case 3:
		return ModeAnd
	case 4:
		return ModeNot
	}
	return ModeCopy
}

// LineStyle selects one of the 16-bit line bit patterns.
type LineStyle uint8

const (
	LineSolid LineStyle = iota
	LineDotted
	LineCenter
	LineDashed
	LineUser
)

var linePatterns = [5]uint16{
	0xFFFF, // solid
	0xCCCC, // dotted
	0xF878, // center
	0xF8F8, // dashed
	0xFFFF, // user, replaced by SetLinePattern
}

// LineStyleFrom maps the dialect selector byte. Unknown values fall
// back to solid.
func LineStyleFrom(v int) LineStyle {
	switch v {
	case 1:
		return LineDotted
	case 2:
		return LineCenter
	case 3:
		return LineDashed
	case 4:
		return LineUser
	}
	return LineSolid
}

// pattern expands the 16-bit run mask, low bit first.
func (s LineStyle) pattern() [16]bool {
	return expandLinePattern(int(linePatterns[s]))
}

func expandLinePattern(bits int) [16]bool {
	var out [16]bool
	for i := range out {
		out[i] = bits&(1<<i) != 0
	}
	return out
}

// FillStyle selects one of the 8x8 fill bit patterns.
type FillStyle uint8

const (
	FillEmpty FillStyle = iota
	FillSolid
	FillLine
	FillLtSlash
	FillSlash
	FillBkSlash
	FillLtBkSlash
	FillHatch
	FillXHatch
	FillInterleave
	FillWideDot
	FillCloseDot
	FillUser
)

var fillPatterns = [13][8]byte{
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // empty
	{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}, // solid
	{0xFF, 0xFF, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, // line
	{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}, // light slash
	{0xE0, 0xC1, 0x83, 0x07, 0x0E, 0x1C, 0x38, 0x70}, // slash
	{0xF0, 0x78, 0x3C, 0x1E, 0x0F, 0x87, 0xC3, 0xE1}, // backslash
	{0xA5, 0xD2, 0x69, 0xB4, 0x5A, 0x2D, 0x96, 0x4B}, // light backslash
	{0xFF, 0x88, 0x88, 0x88, 0xFF, 0x88, 0x88, 0x88}, // hatch
	{0x81, 0x42, 0x24, 0x18, 0x18, 0x24, 0x42, 0x81}, // cross hatch
	{0xCC, 0x33, 0xCC, 0x33, 0xCC, 0x33, 0xCC, 0x33}, // interleave
	{0x80, 0x00, 0x08, 0x00, 0x80, 0x00, 0x08, 0x00}, // wide dot
	{0x88, 0x00, 0x22, 0x00, 0x88, 0x00, 0x22, 0x00}, // close dot
	{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55}, // user default
}

// FillStyleFrom maps the dialect selector byte. Unknown values fall
// back to empty.
func FillStyleFrom(v int) FillStyle {
	if v >= 1 && v <= 12 {
		return FillStyle(v)
	}
	return FillEmpty
}

// Direction orients text output.
type Direction uint8

const (
	Horizontal Direction = iota
	Vertical
)

func DirectionFrom(v int) Direction {
	if v == 1 {
		return Vertical
	}
	return Horizontal
}

var defaultUserPattern = [8]byte{0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55, 0xAA, 0x55}

// rect is a half-open pixel rectangle: right and bottom are exclusive.
type rect struct {
	left, top, right, bottom int
}

func rectFrom(x, y, w, h int) rect {
	return rect{left: x, top: y, right: x + w, bottom: y + h}
}

func (r rect) width() int  { return r.right - r.left }
func (r rect) height() int { return r.bottom - r.top }

func (r rect) contains(x, y int) bool {
	return x >= r.left && x < r.right && y >= r.top && y < r.bottom
}

func (r rect) intersect(o rect) rect {
	out := rect{
		left:   max(r.left, o.left),
		top:    max(r.top, o.top),
		right:  min(r.right, o.right),
		bottom: min(r.bottom, o.bottom),
	}
	if out.right < out.left {
		out.right = out.left
	}
	if out.bottom < out.top {
		out.bottom = out.top
	}
	return out
}

// Bgi is the raster engine state: pens, patterns, write mode, viewport
// and the current drawing position. All drawing lands on the attached
// pixel screen.
type Bgi struct {
	scr screen.PixelScreen

	color       uint8
	bkColor     uint8
	fillColor   uint8
	writeMode   WriteMode
	lineStyle   LineStyle
	linePattern [16]bool
	thickness   int
	fillStyle   FillStyle
	userPattern [8]byte
	viewport    rect

	font      FontType
	direction Direction
	charSize  int

	pos screen.Position

	buttonStyle ButtonStyle

	// SuspendText gates text output while a scene draws; RIP toggles
	// it with an all-zero TextWindow command.
	SuspendText bool

	// clipboard holds the image saved by RIP GetImage.
	clipboard *Image
}

// NewBgi attaches a fresh engine to a pixel screen. Defaults match a
// just-initialized BGI driver: white pen, solid styles, full viewport.
func NewBgi(scr screen.PixelScreen) *Bgi {
	w, h := scr.PixelSize()
	return &Bgi{
		scr:         scr,
		color:       7,
		bkColor:     0,
		fillColor:   0,
		writeMode:   ModeCopy,
		lineStyle:   LineSolid,
		linePattern: LineSolid.pattern(),
		thickness:   1,
		fillStyle:   FillSolid,
		userPattern: defaultUserPattern,
		viewport:    rectFrom(0, 0, w, h),
		font:        FontDefault,
		direction:   Horizontal,
		charSize:    4,
	}
}

func (b *Bgi) Screen() screen.PixelScreen { return b.scr }

func (b *Bgi) Color() uint8 { return b.color }

func (b *Bgi) SetColor(c uint8) uint8 {
	old := b.color
	b.color = c % 16
	return old
}

func (b *Bgi) BkColor() uint8 { return b.bkColor }

func (b *Bgi) SetBkColor(c uint8) uint8 {
	old := b.bkColor
	b.bkColor = c % 16
	return old
}

func (b *Bgi) FillColor() uint8 { return b.fillColor }

func (b *Bgi) SetFillColor(c uint8) uint8 {
	old := b.fillColor
	b.fillColor = c % 16
	return old
}

func (b *Bgi) FillStyle() FillStyle { return b.fillStyle }

func (b *Bgi) SetFillStyle(s FillStyle) FillStyle {
	old := b.fillStyle
	b.fillStyle = s
	return old
}

// SetUserFillPattern installs the 8x8 user pattern. Short input keeps
// the remaining rows.
func (b *Bgi) SetUserFillPattern(pattern []byte) {
	copy(b.userPattern[:], pattern)
}

func (b *Bgi) LineStyle() LineStyle { return b.lineStyle }

func (b *Bgi) SetLineStyle(s LineStyle) LineStyle {
	old := b.lineStyle
	b.lineStyle = s
	b.linePattern = s.pattern()
	return old
}

// SetLinePattern installs a custom 16-bit run mask for LineUser.
func (b *Bgi) SetLinePattern(bits int) {
	b.linePattern = expandLinePattern(bits)
}

func (b *Bgi) LineThickness() int { return b.thickness }

func (b *Bgi) SetLineThickness(t int) { b.thickness = t }

func (b *Bgi) WriteMode() WriteMode { return b.writeMode }

func (b *Bgi) SetWriteMode(m WriteMode) WriteMode {
	old := b.writeMode
	b.writeMode = m
	return old
}

// fillPattern is the active 8x8 fill mask.
func (b *Bgi) fillPattern() [8]byte {
	if b.fillStyle == FillUser {
		return b.userPattern
	}
	return fillPatterns[b.fillStyle]
}

func (b *Bgi) Pos() screen.Position { return b.pos }

func (b *Bgi) MoveTo(x, y int) {
	b.pos = screen.Position{X: x, Y: y}
}

func (b *Bgi) LineTo(x, y int) {
	b.Line(b.pos.X, b.pos.Y, x, y)
	b.MoveTo(x, y)
}

func (b *Bgi) LineRel(dx, dy int) {
	x, y := b.pos.X+dx, b.pos.Y+dy
	b.Line(b.pos.X, b.pos.Y, x, y)
	b.MoveTo(x, y)
}

// SetViewport clips all drawing to the given rectangle; x1/y1 are
// exclusive.
func (b *Bgi) SetViewport(x0, y0, x1, y1 int) {
	b.viewport = rectFrom(x0, y0, x1-x0, y1-y0)
}

// ClearViewport floods the viewport with the current fill.
func (b *Bgi) ClearViewport() {
	b.barRect(b.viewport)
}

// ClearDevice floods the whole screen with the current fill and homes
// the pen.
func (b *Bgi) ClearDevice() {
	w, h := b.scr.PixelSize()
	b.Bar(0, 0, w, h)
	b.MoveTo(0, 0)
}

// GraphDefaults restores the DOS palette, the full-screen viewport and
// the default pen state, then clears the device and the mouse fields.
func (b *Bgi) GraphDefaults() {
	pal := b.scr.Palette()
	for i := 0; i < 16; i++ {
		b.setEgaEntry(pal, uint32(i), dosPaletteSelectors[i])
	}
	w, h := b.scr.PixelSize()
	b.viewport = rectFrom(0, 0, w, h)
	b.SetColor(7)
	b.SetBkColor(0)
	b.SetLineStyle(LineSolid)
	b.SetLineThickness(1)
	b.userPattern = defaultUserPattern
	b.SetFillStyle(FillSolid)
	b.SetFillColor(0)
	b.ClearDevice()
	b.charSize = 4
	b.font = FontDefault
	b.direction = Horizontal
	b.scr.ClearMouseFields()
	b.SuspendText = false
	b.scr.MarkDirty()
}

// dosPaletteSelectors are the EGA 64-color register values of the
// default DOS text palette.
var dosPaletteSelectors = [16]int{
	0, 1, 2, 3, 4, 5, 20, 7,
	56, 57, 58, 59, 60, 61, 62, 63,
}

// setEgaEntry decodes a 6-bit rgbRGB register value into the palette.
func (b *Bgi) setEgaEntry(pal *screen.Palette, idx uint32, sel int) {
	sel &= 0x3f
	r := 0xaa*uint8(sel>>2&1) + 0x55*uint8(sel>>5&1)
	g := 0xaa*uint8(sel>>1&1) + 0x55*uint8(sel>>4&1)
	bb := 0xaa*uint8(sel&1) + 0x55*uint8(sel>>3&1)
	pal.SetRGB(idx, r, g, bb)
}

// SetPalette installs up to 16 EGA register selectors at once.
func (b *Bgi) SetPalette(selectors []int) {
	pal := b.scr.Palette()
	for i, sel := range selectors {
		if i >= 16 {
			break
		}
		b.setEgaEntry(pal, uint32(i), sel)
	}
	b.scr.MarkDirty()
}

// SetPaletteColor installs one EGA register selector.
func (b *Bgi) SetPaletteColor(index int, sel int) {
	if index < 0 || index >= 16 {
		return
	}
	b.setEgaEntry(b.scr.Palette(), uint32(index), sel)
	b.scr.MarkDirty()
}
