// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderOptions controls rasterization. The zero value renders with the
// built-in 7x13 face.
type RenderOptions struct {
	// Face draws the glyphs. Nil selects basicfont.Face7x13.
	Face font.Face

	// CellWidth/CellHeight override the cell geometry. Zero derives
	// them from the face.
	CellWidth, CellHeight int

	// BlinkPhase renders the visible half of the blink cycle when true.
	// Blinking cells hide their glyph in the other half.
	BlinkPhase bool
}

func (o *RenderOptions) face() font.Face {
	if o != nil && o.Face != nil {
		return o.Face
	}
	return basicfont.Face7x13
}

func (o *RenderOptions) cellSize(face font.Face) (cw, ch int) {
	metrics := face.Metrics()
	ch = metrics.Height.Ceil()
	if adv, ok := face.GlyphAdvance('M'); ok {
		cw = adv.Ceil()
	} else {
		cw = 7
	}
	if o != nil {
		if o.CellWidth > 0 {
			cw = o.CellWidth
		}
		if o.CellHeight > 0 {
			ch = o.CellHeight
		}
	}
	return cw, ch
}

func dim(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.66),
		G: uint8(float64(c.G) * 0.66),
		B: uint8(float64(c.B) * 0.66),
		A: c.A,
	}
}

func paletteRGBA(p *Palette, idx uint32) color.RGBA {
	r, g, b := p.RGB(idx)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RenderRGBA rasterizes the cell grid into a new RGBA image.
func RenderRGBA(s Screen, opts *RenderOptions) *image.RGBA {
	face := opts.face()
	cw, ch := opts.cellSize(face)
	ascent := face.Metrics().Ascent.Ceil()
	pal := s.Palette()

	img := image.NewRGBA(image.Rect(0, 0, s.Width()*cw, s.Height()*ch))

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			cell := s.CharAt(Position{X: x, Y: y})
			fg := paletteRGBA(pal, cell.Attr.Fg)
			bg := paletteRGBA(pal, cell.Attr.Bg)
			if cell.Attr.Is(AttrFaint) {
				fg = dim(fg)
			}

			rect := image.Rect(x*cw, y*ch, (x+1)*cw, (y+1)*ch)
			draw.Draw(img, rect, image.NewUniform(bg), image.Point{}, draw.Src)

			hideGlyph := cell.Ch == 0 || cell.Ch == ' ' ||
				cell.Attr.Is(AttrConcealed) ||
				(cell.Attr.Is(AttrBlink) && opts != nil && !opts.BlinkPhase)
			if !hideGlyph {
				d := font.Drawer{
					Dst:  img,
					Src:  image.NewUniform(fg),
					Face: face,
					Dot:  fixed.P(x*cw, y*ch+ascent),
				}
				d.DrawString(string(cell.Ch))
			}

			if cell.Attr.Is(AttrUnderline) {
				line := image.Rect(x*cw, (y+1)*ch-1, (x+1)*cw, (y+1)*ch)
				draw.Draw(img, line, image.NewUniform(fg), image.Point{}, draw.Src)
			}
			if cell.Attr.Is(AttrCrossedOut) {
				mid := y*ch + ch/2
				line := image.Rect(x*cw, mid, (x+1)*cw, mid+1)
				draw.Draw(img, line, image.NewUniform(fg), image.Point{}, draw.Src)
			}
		}
	}
	return img
}

// RenderPixels rasterizes the pixel layer of a graphics screen.
func RenderPixels(s PixelScreen) *image.RGBA {
	w, h := s.PixelSize()
	pal := s.Palette()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, paletteRGBA(pal, uint32(s.Pixel(x, y))))
		}
	}
	return img
}
