// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

// Image is a row-major snapshot of palette-indexed pixels.
type Image struct {
	Width, Height int
	Data          []uint8
}

// GetImage copies the rectangle x0,y0 .. x1,y1 (exclusive end) off the
// screen. Out-of-range pixels read as zero.
func (b *Bgi) GetImage(x0, y0, x1, y1 int) *Image {
	img := &Image{
		Width:  x1 - x0,
		Height: y1 - y0,
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.Data = append(img.Data, b.scr.Pixel(x, y))
		}
	}
	return img
}

// PutImage pastes an image at x, y through the given write mode.
func (b *Bgi) PutImage(x, y int, img *Image, mode WriteMode) {
	old := b.SetWriteMode(mode)
	pos := 0
	for iy := 0; iy < img.Height; iy++ {
		for ix := 0; ix < img.Width; ix++ {
			col := img.Data[pos]
			pos++
			if !b.viewport.contains(x+ix, y+iy) {
				continue
			}
			b.PutPixel(x+ix, y+iy, col)
		}
	}
	b.SetWriteMode(old)
}

// PutImageRegion pastes the sub-rectangle srcX,srcY,width,height of an
// image at x, y. The destination keeps the source offsets, which is
// how the SkyPix brush commands address their pastes.
func (b *Bgi) PutImageRegion(srcX, srcY, width, height, x, y int, img *Image, mode WriteMode) {
	old := b.SetWriteMode(mode)
	for iy := srcY; iy < srcY+height && iy < img.Height; iy++ {
		for ix := srcX; ix < srcX+width && ix < img.Width; ix++ {
			col := img.Data[iy*img.Width+ix]
			if !b.viewport.contains(x+ix, y+iy) {
				continue
			}
			b.PutPixel(x+ix, y+iy, col)
		}
	}
	b.SetWriteMode(old)
}

// SaveClipboard stores a screen region for a later PasteClipboard.
func (b *Bgi) SaveClipboard(x0, y0, x1, y1 int) {
	b.clipboard = b.GetImage(x0, y0, x1, y1)
}

// PasteClipboard pastes the saved region, if any.
func (b *Bgi) PasteClipboard(x, y int, mode WriteMode) {
	if b.clipboard == nil {
		return
	}
	b.PutImage(x, y, b.clipboard, mode)
}

// Clipboard reports the saved region.
func (b *Bgi) Clipboard() *Image { return b.clipboard }
