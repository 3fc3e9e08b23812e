// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

// GraphicsScreen layers a palette-indexed pixel buffer over a text
// screen. The raster engine draws on the pixel layer; the text layer
// still takes the dialect's ANSI subset.
type GraphicsScreen struct {
	*TextScreen
	pixWidth, pixHeight int
	pix                 []uint8
}

// NewGraphicsScreen builds a graphics screen with the given cell grid
// and pixel resolution.
func NewGraphicsScreen(width, height, pixWidth, pixHeight int) *GraphicsScreen {
	return &GraphicsScreen{
		TextScreen: NewTextScreen(width, height),
		pixWidth:   pixWidth,
		pixHeight:  pixHeight,
		pix:        make([]uint8, pixWidth*pixHeight),
	}
}

func (g *GraphicsScreen) PixelSize() (width, height int) {
	return g.pixWidth, g.pixHeight
}

// Pixel reads a pixel; out-of-range coordinates read as color zero.
func (g *GraphicsScreen) Pixel(x, y int) uint8 {
	if x < 0 || y < 0 || x >= g.pixWidth || y >= g.pixHeight {
		return 0
	}
	return g.pix[y*g.pixWidth+x]
}

// SetPixel writes a pixel; out-of-range coordinates are ignored.
func (g *GraphicsScreen) SetPixel(x, y int, color uint8) {
	if x < 0 || y < 0 || x >= g.pixWidth || y >= g.pixHeight {
		return
	}
	g.pix[y*g.pixWidth+x] = color
	g.MarkDirty()
}

// ClearPixels fills the pixel layer with one color.
func (g *GraphicsScreen) ClearPixels(color uint8) {
	for i := range g.pix {
		g.pix[i] = color
	}
	g.MarkDirty()
}
