// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"strings"

	"github.com/ericwq/bbsterm/screen"
)

// LabelOrientation places a button label relative to its face.
type LabelOrientation uint8

const (
	LabelAbove LabelOrientation = iota
	LabelLeft
	LabelCenter
	LabelRight
	LabelBelow
)

func LabelOrientationFrom(v int) LabelOrientation {
	switch v {
	case 0:
		return LabelAbove
	case 1:
		return LabelLeft
	case 3:
		return LabelRight
	case 4:
		return LabelBelow
	}
	return LabelCenter
}

// ButtonStyle carries the RIPscrip 1B button template: geometry,
// colors and the two flag words.
type ButtonStyle struct {
	Width, Height int
	Orientation   LabelOrientation

	BevelSize int

	LabelColor      int
	DropShadowColor int
	Bright          int
	Dark            int

	Flags  int
	Flags2 int

	SurfaceColor   int
	Group          int
	UnderlineColor int
	CornerColor    int
}

func (s ButtonStyle) resetScreenAfterClick() bool { return s.Flags&4 != 0 }
func (s ButtonStyle) displayChisel() bool         { return s.Flags&8 != 0 }
func (s ButtonStyle) displayRecessed() bool       { return s.Flags&16 != 0 }
func (s ButtonStyle) displayDropShadow() bool     { return s.Flags&32 != 0 }
func (s ButtonStyle) displayBevel() bool          { return s.Flags&512 != 0 }
func (s ButtonStyle) underlineHotkey() bool       { return s.Flags&2048 != 0 }
func (s ButtonStyle) displaySunken() bool         { return s.Flags&32768 != 0 }
func (s ButtonStyle) highlightHotkey() bool       { return s.Flags2&2 != 0 }
func (s ButtonStyle) leftJustifyLabel() bool      { return s.Flags2&8 != 0 }
func (s ButtonStyle) rightJustifyLabel() bool     { return s.Flags2&16 != 0 }

func (b *Bgi) ButtonStyle() ButtonStyle { return b.buttonStyle }

func (b *Bgi) SetButtonStyle(s ButtonStyle) { b.buttonStyle = s }

// AddMouseField registers a bare clickable region.
func (b *Bgi) AddMouseField(f screen.MouseField) {
	b.scr.AddMouseField(f)
}

func (b *Bgi) ClearMouseFields() {
	b.scr.ClearMouseFields()
}

// chiselInset picks the chisel frame inset for a button height.
func chiselInset(height int) (x, y int) {
	switch {
	case height < 12:
		return 1, 1
	case height < 25:
		return 3, 2
	case height < 40:
		return 4, 3
	case height < 75:
		return 6, 5
	case height < 150:
		return 7, 5
	case height < 200:
		return 8, 6
	case height < 250:
		return 10, 7
	case height < 300:
		return 11, 8
	default:
		return 13, 9
	}
}

// AddButton draws a button in the current style and registers its
// mouse field. Zero x2/y2 take the style's default size.
func (b *Bgi) AddButton(x1, y1, x2, y2 int, hotkey byte, text, hostCommand string, pressed bool) {
	style := b.buttonStyle
	bg := uint8(0)
	ch := uint8(style.LabelColor)
	cs := uint8(style.Dark)
	su := uint8(style.SurfaceColor)
	ul := uint8(style.UnderlineColor)
	cc := uint8(style.CornerColor)
	br := uint8(style.Bright)

	width := x2 - x1 + 1
	height := y2 - y1 + 1
	if x2 == 0 {
		width = style.Width
		x2 = x1 + width - 1
	}
	if y2 == 0 {
		height = style.Height
		y2 = y1 + height - 1
	}

	b.scr.AddMouseField(screen.MouseField{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		HostCommand: hostCommand,
		ResetScreen: style.resetScreenAfterClick(),
	})

	if style.displayRecessed() && !pressed {
		rx1, ry1 := x1-2, y1-2
		rx2, ry2 := x2+2, y2+2

		b.drawLine(rx1, ry1, rx2, ry1, cs)
		b.drawLine(rx1, ry1, rx1, ry2, cs)
		b.drawLine(rx2, ry1, rx2, ry2, br)
		b.drawLine(rx1, ry2, rx2, ry2, br)
		b.PutPixel(rx1, ry1, cc)
		b.PutPixel(rx2, ry1, cc)
		b.PutPixel(rx1, ry2, cc)
		b.PutPixel(rx2, ry2, cc)

		b.drawLine(rx1+1, ry1+1, rx2-1, ry1+1, bg)
		b.drawLine(rx1+1, ry1+1, rx1+1, ry2-1, bg)
		b.drawLine(rx2-1, ry1+1, rx2-1, ry2-1, bg)
		b.drawLine(rx1+1, ry2-1, rx2-1, ry2-1, bg)
	}

	if style.displayBevel() {
		for i := 1; i <= style.BevelSize; i++ {
			b.drawLine(x1-i, y1-i, x2+i, y1-i, br)
			b.drawLine(x1-i, y1-i, x1-i, y2+i, br)
			b.drawLine(x2+i, y2+i, x2+i, y1-i, cs)
			b.drawLine(x2+i, y2+i, x1-i, y2+i, cs)
			b.PutPixel(x1-i, y1-i, cc)
			b.PutPixel(x2+i, y1-i, cc)
			b.PutPixel(x1-i, y2+i, cc)
			b.PutPixel(x2+i, y2+i, cc)
		}
	}

	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			b.PutPixel(x, y, su)
		}
	}

	if style.displaySunken() {
		top, bottom := br, cs
		if pressed {
			top, bottom = cs, br
		}
		b.drawLine(x1, y1, x2, y1, top)
		b.drawLine(x1, y1, x1, y2, top)
		b.drawLine(x2, y2, x2, y1, bottom)
		b.drawLine(x2, y2, x1, y2, bottom)
		b.PutPixel(x1, y1, cc)
		b.PutPixel(x2, y1, cc)
		b.PutPixel(x2, y2, cc)
		b.PutPixel(x1, y2, cc)
	}

	if style.displayChisel() {
		xi, yi := chiselInset(y2 - y1 + 1)
		top, bottom := br, cs
		if pressed {
			top, bottom = cs, br
		}
		b.drawLine(x1+xi, y1+yi, x2-xi, y1+yi, top)
		b.drawLine(x1+xi, y1+yi, x1+xi, y2-yi, top)
		b.drawLine(x1+xi+1, y2-yi, x2-xi, y2-yi, bottom)
		b.drawLine(x2-xi, y1+yi+1, x2-xi, y2-yi, bottom)
	}

	if text == "" {
		return
	}
	text = strings.TrimPrefix(text, "<>")
	text = strings.TrimSuffix(text, "<>")

	oldColor := b.color
	tw, th := b.TextSize(text)

	var tx, ty int
	switch style.Orientation {
	case LabelAbove:
		tx = labelX(style, x1, width, tw)
		ty = y1 - th - 2
	case LabelLeft:
		tx, ty = x1-tw-2, y1+(height-th)/2
	case LabelRight:
		tx, ty = x1+width+2, y1+(height-th)/2
	case LabelBelow:
		tx = labelX(style, x1, width, tw)
		ty = y1 + height + 2
	default:
		tx, ty = x1+(width-tw)/2, y1+(height-th)/2
	}

	b.renderButtonLabel(text, tx, ty, hotkey, ch, cs, ul)
	b.color = oldColor
}

func labelX(style ButtonStyle, x1, width, textWidth int) int {
	switch {
	case style.leftJustifyLabel():
		return x1
	case style.rightJustifyLabel():
		return x1 + width - textWidth
	default:
		return x1 + (width-textWidth)/2
	}
}

// renderButtonLabel draws the label with the drop shadow and hotkey
// decorations the style asks for.
func (b *Bgi) renderButtonLabel(text string, tx, ty int, hotkey byte, ch, cs, ul uint8) {
	style := b.buttonStyle

	if style.displayDropShadow() {
		b.SetColor(cs)
		b.OutTextXY(tx+1, ty+1, text)
	}

	b.SetColor(ch)
	b.OutTextXY(tx, ty, text)

	if hotkey == 0 || hotkey == 255 {
		return
	}
	hk := strings.ToUpper(string(rune(hotkey)))
	for i, r := range text {
		if strings.ToUpper(string(r)) != hk {
			continue
		}
		prefixW, _ := b.TextSize(text[:i])

		if style.highlightHotkey() {
			b.SetColor(ul)
			b.OutTextXY(tx+prefixW, ty, string(r))
		}
		if style.underlineHotkey() {
			hw, hh := b.TextSize(string(r))
			if style.displayDropShadow() {
				b.drawLine(tx+prefixW+1, ty+hh+2, tx+prefixW+hw, ty+hh+2, cs)
			}
			b.drawLine(tx+prefixW, ty+hh+1, tx+prefixW+hw-1, ty+hh+1, ul)
		}
		break
	}
}
