// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ericwq/bbsterm/screen"
)

// FontType names the RIPscrip font selectors. The stroked font files
// are not shipped; every selector renders through the bitmap face.
type FontType uint8

const (
	FontDefault FontType = iota
	FontTriplex
	FontSmall
	FontSansSerif
	FontGothic
	FontScript
	FontSimplex
	FontTriplexScript
	FontComplex
	FontEuropean
	FontBoldOutline
	FontUser
)

func FontTypeFrom(v int) FontType {
	if v >= 0 && v <= int(FontBoldOutline) {
		return FontType(v)
	}
	return FontUser
}

// textFace is the glyph source for OutText. Magnification multiplies
// each face pixel into a charSize x charSize block.
var textFace font.Face = basicfont.Face7x13

// SetTextStyle selects font, direction and magnification. The
// magnification clamps to 1..10.
func (b *Bgi) SetTextStyle(f FontType, dir Direction, charSize int) {
	b.font = f
	b.direction = dir
	if charSize < 1 {
		charSize = 1
	}
	if charSize > 10 {
		charSize = 10
	}
	b.charSize = charSize
}

func (b *Bgi) TextSettings() (FontType, Direction, int) {
	return b.font, b.direction, b.charSize
}

func faceCell() (w, h, ascent int) {
	m := textFace.Metrics()
	h = m.Height.Ceil()
	ascent = m.Ascent.Ceil()
	if adv, ok := textFace.GlyphAdvance('M'); ok {
		w = adv.Ceil()
	} else {
		w = 8
	}
	return w, h, ascent
}

// TextSize is the pixel box the string would occupy.
func (b *Bgi) TextSize(s string) (w, h int) {
	if s == "" {
		return 0, 0
	}
	cw, ch, _ := faceCell()
	n := len([]rune(s))
	if b.direction == Vertical {
		return cw * b.charSize, n * ch * b.charSize
	}
	return n * cw * b.charSize, ch * b.charSize
}

// OutText draws at the current position and advances it.
func (b *Bgi) OutText(s string) {
	b.pos = b.OutTextXY(b.pos.X, b.pos.Y, s)
}

// OutTextXY draws a string with the top-left corner at x, y and
// returns the position after the last glyph. Vertical text runs
// upward from the anchor.
func (b *Bgi) OutTextXY(x, y int, s string) screen.Position {
	if s == "" || b.SuspendText {
		return screen.Position{X: x, Y: y}
	}

	cw, ch, ascent := faceCell()
	mag := b.charSize
	xf, yf := x, y
	if b.direction == Vertical {
		_, th := b.TextSize(s)
		yf += th
	}

	for _, r := range s {
		gx, gy := xf, yf
		if b.direction == Vertical {
			gy = yf - ch*mag
		}
		b.drawGlyph(gx, gy, ascent, mag, r)
		if b.direction == Horizontal {
			xf += cw * mag
		} else {
			yf -= ch * mag
		}
	}
	return screen.Position{X: xf, Y: yf}
}

// drawGlyph rasterizes one glyph mask into magnified pen pixels.
func (b *Bgi) drawGlyph(x, y, ascent, mag int, r rune) {
	dr, mask, maskp, _, ok := textFace.Glyph(fixed.P(0, ascent), r)
	if !ok {
		return
	}
	for gy := dr.Min.Y; gy < dr.Max.Y; gy++ {
		for gx := dr.Min.X; gx < dr.Max.X; gx++ {
			mx := maskp.X + gx - dr.Min.X
			my := maskp.Y + gy - dr.Min.Y
			if _, _, _, a := mask.At(mx, my).RGBA(); a == 0 {
				continue
			}
			for dy := 0; dy < mag; dy++ {
				for dx := 0; dx < mag; dx++ {
					b.PutPixel(x+gx*mag+dx, y+gy*mag+dy, b.color)
				}
			}
		}
	}
}
