// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/ericwq/terminfo"
	_ "github.com/ericwq/terminfo/base"
	"github.com/ericwq/terminfo/dynamic"

	"github.com/ericwq/bbsterm/screen"
)

// lookupTerminfo resolves TERM against the compiled-in database, then
// falls back to infocmp.
func lookupTerminfo(name string) (*terminfo.Terminfo, error) {
	ti, err := terminfo.LookupTerminfo(name)
	if err != nil {
		ti, _, err = dynamic.LoadTerminfo(name)
		if err != nil {
			return nil, err
		}
		terminfo.AddTerminfo(ti)
	}
	return ti, nil
}

// display paints full frames on the host terminal through its terminfo
// capabilities. No damage tracking: art frames change most of the
// screen anyway.
type display struct {
	ti     *terminfo.Terminfo
	out    io.Writer
	legacy bool // screen cells hold CP437 bytes
}

func newDisplay(out io.Writer, legacy bool) (*display, error) {
	name := os.Getenv("TERM")
	if name == "" {
		return nil, errors.New("TERM is not set")
	}
	ti, err := lookupTerminfo(name)
	if err != nil {
		return nil, err
	}
	return &display{ti: ti, out: out, legacy: legacy}, nil
}

// open switches to the alternate screen and clears it.
func (d *display) open() {
	d.ti.TPuts(d.out, d.ti.EnterCA)
	d.ti.TPuts(d.out, d.ti.HideCursor)
	d.ti.TPuts(d.out, d.ti.Clear)
}

func (d *display) close() {
	d.ti.TPuts(d.out, d.ti.AttrOff)
	d.ti.TPuts(d.out, d.ti.ShowCursor)
	d.ti.TPuts(d.out, d.ti.ExitCA)
}

// renderFrame repaints the whole screen and parks the cursor at the
// caret.
func (d *display) renderFrame(s screen.Screen) {
	var b strings.Builder
	var last screen.Attr
	first := true

	for y := 0; y < s.Height(); y++ {
		b.WriteString(d.ti.TGoto(0, y))
		for x := 0; x < s.Width(); x++ {
			cell := s.CharAt(screen.Position{X: x, Y: y})
			if !d.legacy && cell.Ch == 0 {
				// spacer half of a wide character
				continue
			}
			if first || cell.Attr != last {
				d.applyAttr(&b, cell.Attr)
				last = cell.Attr
				first = false
			}
			b.WriteRune(d.displayRune(cell))
		}
	}

	caret := s.Caret()
	b.WriteString(d.ti.TGoto(caret.Pos.X, caret.Pos.Y))
	if caret.Visible {
		b.WriteString(d.ti.ShowCursor)
	} else {
		b.WriteString(d.ti.HideCursor)
	}
	d.ti.TPuts(d.out, b.String())
}

func (d *display) applyAttr(b *strings.Builder, a screen.Attr) {
	b.WriteString(d.ti.AttrOff)
	if a.Is(screen.AttrBold) {
		b.WriteString(d.ti.Bold)
	}
	if a.Is(screen.AttrFaint) {
		b.WriteString(d.ti.Dim)
	}
	if a.Is(screen.AttrUnderline) {
		b.WriteString(d.ti.Underline)
	}
	if a.Is(screen.AttrBlink) {
		b.WriteString(d.ti.Blink)
	}
	if d.ti.Colors > 0 {
		fg := int(a.Fg)
		bg := int(a.Bg)
		if fg >= d.ti.Colors {
			fg %= 8
		}
		if bg >= d.ti.Colors {
			bg %= 8
		}
		b.WriteString(d.ti.TColor(fg, bg))
	}
}

func (d *display) displayRune(c screen.Cell) rune {
	if c.Attr.Is(screen.AttrConcealed) {
		return ' '
	}
	r := c.Ch
	if d.legacy && r < 0x100 {
		return cp437[byte(r)]
	}
	if r == 0 {
		return ' '
	}
	return r
}
