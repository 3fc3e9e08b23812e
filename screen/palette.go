// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import (
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/exp/slices"
)

// egaBase is the classic 16-color text mode palette. Base SGR colors
// index into the first 16 slots; extended and RGB colors append.
var egaBase = [16][3]uint8{
	{0x00, 0x00, 0x00}, // black
	{0x00, 0x00, 0xaa}, // blue
	{0x00, 0xaa, 0x00}, // green
	{0x00, 0xaa, 0xaa}, // cyan
	{0xaa, 0x00, 0x00}, // red
	{0xaa, 0x00, 0xaa}, // magenta
	{0xaa, 0x55, 0x00}, // brown
	{0xaa, 0xaa, 0xaa}, // light gray
	{0x55, 0x55, 0x55}, // dark gray
	{0x55, 0x55, 0xff}, // light blue
	{0x55, 0xff, 0x55}, // light green
	{0x55, 0xff, 0xff}, // light cyan
	{0xff, 0x55, 0x55}, // light red
	{0xff, 0x55, 0xff}, // light magenta
	{0xff, 0xff, 0x55}, // yellow
	{0xff, 0xff, 0xff}, // white
}

// Palette is a growable indexed color table. The screen owns one; SGR
// extended and RGB colors grow it through Insert.
type Palette struct {
	colors []colorful.Color
}

func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
}

// NewEgaPalette returns the 16-color base palette.
func NewEgaPalette() *Palette {
	p := &Palette{colors: make([]colorful.Color, 0, 16)}
	for _, v := range egaBase {
		p.colors = append(p.colors, rgb255(v[0], v[1], v[2]))
	}
	return p
}

// NewXterm256Palette returns the full 256-color palette: the 16 base
// colors, the 6x6x6 cube and the 24-step gray ramp.
func NewXterm256Palette() *Palette {
	p := &Palette{colors: make([]colorful.Color, 0, 256)}
	for i := 0; i < 256; i++ {
		p.colors = append(p.colors, Xterm256(uint8(i)))
	}
	return p
}

// Xterm256 computes the color of a 256-palette index. The first 16
// entries are the base text mode colors.
func Xterm256(idx uint8) colorful.Color {
	switch {
	case idx < 16:
		v := egaBase[idx]
		return rgb255(v[0], v[1], v[2])
	case idx < 232:
		n := idx - 16
		cube := func(c uint8) uint8 {
			if c == 0 {
				return 0
			}
			return 55 + 40*c
		}
		return rgb255(cube(n/36), cube(n/6%6), cube(n%6))
	default:
		v := 8 + 10*(idx-232)
		return rgb255(v, v, v)
	}
}

func (p *Palette) Len() int {
	return len(p.colors)
}

// Color reads an entry. Out-of-range indices wrap, so a palette swapped
// for a smaller one never panics a renderer.
func (p *Palette) Color(idx uint32) colorful.Color {
	if len(p.colors) == 0 {
		return colorful.Color{}
	}
	return p.colors[int(idx)%len(p.colors)]
}

// RGB reads an entry as 8-bit components.
func (p *Palette) RGB(idx uint32) (r, g, b uint8) {
	return p.Color(idx).RGB255()
}

// SetRGB overwrites an entry, growing the table with black as needed.
func (p *Palette) SetRGB(idx uint32, r, g, b uint8) {
	for int(idx) >= len(p.colors) {
		p.colors = append(p.colors, colorful.Color{})
	}
	p.colors[idx] = rgb255(r, g, b)
}

// Insert returns the index of c, appending it when not present.
func (p *Palette) Insert(c colorful.Color) uint32 {
	if i := slices.Index(p.colors, c); i >= 0 {
		return uint32(i)
	}
	p.colors = append(p.colors, c)
	return uint32(len(p.colors) - 1)
}

// InsertRGB is Insert for 8-bit components.
func (p *Palette) InsertRGB(r, g, b uint8) uint32 {
	return p.Insert(rgb255(r, g, b))
}

// Clone copies the palette. Undo records palette swaps by value.
func (p *Palette) Clone() *Palette {
	return &Palette{colors: slices.Clone(p.colors)}
}

// CopyFrom replaces the palette contents with those of o. The screen's
// palette pointer stays valid across a swap.
func (p *Palette) CopyFrom(o *Palette) {
	p.colors = slices.Clone(o.colors)
}
