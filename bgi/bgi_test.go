// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"testing"

	"github.com/ericwq/bbsterm/screen"
)

func newTestBgi() (*Bgi, *screen.GraphicsScreen) {
	scr := screen.NewGraphicsScreen(80, 25, 640, 350)
	return NewBgi(scr), scr
}

func TestPutPixelWriteModes(t *testing.T) {
	tc := []struct {
		label  string
		mode   WriteMode
		before uint8
		color  uint8
		expect uint8
	}{
		{"copy", ModeCopy, 9, 5, 5},
		{"xor", ModeXor, 5, 3, 6},
		{"or", ModeOr, 5, 3, 7},
		{"and", ModeAnd, 5, 3, 1},
		{"not", ModeNot, 9, 5, 10},
	}
	for _, c := range tc {
		b, scr := newTestBgi()
		scr.SetPixel(4, 4, c.before)
		b.SetWriteMode(c.mode)
		b.PutPixel(4, 4, c.color)
		if got := scr.Pixel(4, 4); got != c.expect {
			t.Errorf("%s: got %d, expect %d", c.label, got, c.expect)
		}
	}
}

func TestPutPixelXorRoundTrip(t *testing.T) {
	b, scr := newTestBgi()
	b.PutPixel(10, 10, 5)
	b.SetWriteMode(ModeXor)
	b.PutPixel(10, 10, 3)
	b.PutPixel(10, 10, 3)
	if got := scr.Pixel(10, 10); got != 5 {
		t.Errorf("double xor got %d, expect 5", got)
	}
}

func TestPutPixelViewportClip(t *testing.T) {
	b, scr := newTestBgi()
	b.SetViewport(10, 10, 20, 20)
	b.PutPixel(5, 5, 7)
	b.PutPixel(20, 15, 7)
	b.PutPixel(15, 15, 7)
	if got := scr.Pixel(5, 5); got != 0 {
		t.Errorf("pixel outside viewport drawn: %d", got)
	}
	if got := scr.Pixel(20, 15); got != 0 {
		t.Errorf("pixel on exclusive edge drawn: %d", got)
	}
	if got := scr.Pixel(15, 15); got != 7 {
		t.Errorf("pixel inside viewport got %d, expect 7", got)
	}
}

func TestLineHorizontal(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(5)
	b.Line(5, 10, 15, 10)
	for x := 5; x <= 15; x++ {
		if got := scr.Pixel(x, 10); got != 5 {
			t.Fatalf("pixel (%d,10) got %d, expect 5", x, got)
		}
	}
	if got := scr.Pixel(16, 10); got != 0 {
		t.Errorf("pixel past the endpoint drawn: %d", got)
	}
}

func TestLineThickness(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(5)
	b.SetLineThickness(3)
	b.Line(5, 10, 15, 10)
	for _, y := range []int{9, 10, 11} {
		if got := scr.Pixel(10, y); got != 5 {
			t.Errorf("pixel (10,%d) got %d, expect 5", y, got)
		}
	}
	if got := scr.Pixel(10, 8); got != 0 {
		t.Errorf("thickness bled to row 8: %d", got)
	}
}

func TestLineDiagonalEndpoints(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(3)
	b.Line(0, 0, 20, 10)
	if got := scr.Pixel(0, 0); got != 3 {
		t.Errorf("start pixel got %d, expect 3", got)
	}
	if got := scr.Pixel(20, 10); got != 3 {
		t.Errorf("end pixel got %d, expect 3", got)
	}
}

func TestLineDottedSkipsPixels(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(5)
	b.SetLineStyle(LineDotted)
	b.Line(0, 20, 31, 20)
	on := 0
	for x := 0; x <= 31; x++ {
		if scr.Pixel(x, 20) == 5 {
			on++
		}
	}
	if on == 0 || on == 32 {
		t.Errorf("dotted line set %d of 32 pixels", on)
	}
	if on != 16 {
		t.Errorf("dotted pattern set %d of 32 pixels, expect 16", on)
	}
}

func TestLineToAdvancesPosition(t *testing.T) {
	b, _ := newTestBgi()
	b.MoveTo(3, 4)
	b.LineTo(10, 4)
	if p := b.Pos(); p.X != 10 || p.Y != 4 {
		t.Errorf("position after LineTo: %+v", p)
	}
	b.LineRel(5, 6)
	if p := b.Pos(); p.X != 15 || p.Y != 10 {
		t.Errorf("position after LineRel: %+v", p)
	}
}

func TestBarSolid(t *testing.T) {
	b, scr := newTestBgi()
	b.SetFillColor(3)
	b.Bar(5, 5, 10, 8)
	for y := 5; y <= 8; y++ {
		for x := 5; x <= 10; x++ {
			if got := scr.Pixel(x, y); got != 3 {
				t.Fatalf("pixel (%d,%d) got %d, expect 3", x, y, got)
			}
		}
	}
	if got := scr.Pixel(11, 5); got != 0 {
		t.Errorf("bar overran right edge: %d", got)
	}
}

func TestBarLinePattern(t *testing.T) {
	b, scr := newTestBgi()
	b.SetFillStyle(FillLine)
	b.SetFillColor(3)
	b.SetBkColor(1)
	b.Bar(0, 0, 7, 7)
	// rows 0 and 1 of the 8x8 line pattern are solid, the rest empty
	if got := scr.Pixel(2, 0); got != 3 {
		t.Errorf("pattern row 0 got %d, expect 3", got)
	}
	if got := scr.Pixel(2, 1); got != 3 {
		t.Errorf("pattern row 1 got %d, expect 3", got)
	}
	if got := scr.Pixel(2, 3); got != 1 {
		t.Errorf("pattern gap got %d, expect background 1", got)
	}
}

func TestBarUserPattern(t *testing.T) {
	b, scr := newTestBgi()
	b.SetUserFillPattern([]byte{0x80, 0, 0, 0, 0, 0, 0, 0})
	b.SetFillStyle(FillUser)
	b.SetFillColor(5)
	b.Bar(0, 0, 7, 7)
	if got := scr.Pixel(0, 0); got != 5 {
		t.Errorf("pattern bit got %d, expect 5", got)
	}
	if got := scr.Pixel(1, 0); got != 0 {
		t.Errorf("pattern gap got %d, expect 0", got)
	}
}

func TestRectangleOutline(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(4)
	b.Rectangle(10, 10, 20, 18)
	for x := 10; x <= 20; x++ {
		if scr.Pixel(x, 10) != 4 || scr.Pixel(x, 18) != 4 {
			t.Fatalf("outline broken at x=%d", x)
		}
	}
	for y := 10; y <= 18; y++ {
		if scr.Pixel(10, y) != 4 || scr.Pixel(20, y) != 4 {
			t.Fatalf("outline broken at y=%d", y)
		}
	}
	if got := scr.Pixel(15, 14); got != 0 {
		t.Errorf("interior filled: %d", got)
	}
}

func TestFloodFillStopsAtEdge(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(4)
	b.Rectangle(10, 10, 30, 30)
	b.SetFillColor(5)
	b.FloodFill(20, 20, 4)
	if got := scr.Pixel(20, 20); got != 5 {
		t.Errorf("interior got %d, expect 5", got)
	}
	if got := scr.Pixel(11, 11); got != 5 {
		t.Errorf("interior corner got %d, expect 5", got)
	}
	if got := scr.Pixel(10, 20); got != 4 {
		t.Errorf("edge overwritten: %d", got)
	}
	if got := scr.Pixel(31, 20); got != 0 {
		t.Errorf("fill escaped the edge: %d", got)
	}
}

func TestFloodFillPattern(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(4)
	b.Rectangle(10, 10, 30, 30)
	b.SetFillStyle(FillLine)
	b.SetFillColor(5)
	b.SetBkColor(1)
	b.FloodFill(20, 20, 4)
	fill, back := 0, 0
	for y := 11; y < 30; y++ {
		for x := 11; x < 30; x++ {
			switch scr.Pixel(x, y) {
			case 5:
				fill++
			case 1:
				back++
			}
		}
	}
	if fill == 0 || back == 0 {
		t.Errorf("patterned fill: %d fill, %d background pixels", fill, back)
	}
}

func TestBorderFill(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(4)
	b.Rectangle(10, 10, 30, 30)
	b.SetFillColor(5)
	b.BorderFill(20, 20, 4)
	if got := scr.Pixel(20, 20); got != 5 {
		t.Errorf("interior got %d, expect 5", got)
	}
	if got := scr.Pixel(10, 20); got != 4 {
		t.Errorf("border overwritten: %d", got)
	}
	if got := scr.Pixel(35, 20); got != 0 {
		t.Errorf("fill escaped the border: %d", got)
	}
}

func TestCircleExtremes(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(7)
	radius := 40
	b.Circle(100, 100, radius)
	ry := int(float64(radius) * aspect)
	for _, p := range []screen.Position{
		{X: 60, Y: 100}, {X: 140, Y: 100},
		{X: 100, Y: 100 - ry}, {X: 100, Y: 100 + ry},
	} {
		if got := scr.Pixel(p.X, p.Y); got != 7 {
			t.Errorf("extreme (%d,%d) got %d, expect 7", p.X, p.Y, got)
		}
	}
	if got := scr.Pixel(100, 100); got != 0 {
		t.Errorf("circle center drawn: %d", got)
	}
}

func TestEllipseArcRange(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(7)
	// upper half only
	b.Ellipse(100, 100, 0, 180, 30, 20)
	if got := scr.Pixel(100, 80); got != 7 {
		t.Errorf("top of arc got %d, expect 7", got)
	}
	if got := scr.Pixel(100, 120); got != 0 {
		t.Errorf("bottom drawn outside the range: %d", got)
	}
}

func TestFillEllipse(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(7)
	b.SetFillColor(2)
	b.FillEllipse(100, 100, 0, 360, 30, 20)
	if got := scr.Pixel(100, 100); got != 2 {
		t.Errorf("center got %d, expect 2", got)
	}
	if got := scr.Pixel(100, 130); got != 0 {
		t.Errorf("fill escaped the ellipse: %d", got)
	}
}

func TestFillPoly(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(7)
	b.SetFillColor(3)
	b.FillPoly([]screen.Position{
		{X: 50, Y: 50}, {X: 90, Y: 50}, {X: 90, Y: 90}, {X: 50, Y: 90},
	})
	if got := scr.Pixel(70, 70); got != 3 {
		t.Errorf("interior got %d, expect 3", got)
	}
	if got := scr.Pixel(50, 70); got != 7 {
		t.Errorf("outline got %d, expect 7", got)
	}
	if got := scr.Pixel(95, 70); got != 0 {
		t.Errorf("fill escaped the polygon: %d", got)
	}
}

func TestGetPutImage(t *testing.T) {
	b, scr := newTestBgi()
	b.SetFillColor(5)
	b.Bar(10, 10, 13, 13)
	img := b.GetImage(10, 10, 14, 14)
	if img.Width != 4 || img.Height != 4 {
		t.Fatalf("image size %dx%d, expect 4x4", img.Width, img.Height)
	}
	b.PutImage(100, 100, img, ModeCopy)
	for y := 100; y < 104; y++ {
		for x := 100; x < 104; x++ {
			if got := scr.Pixel(x, y); got != 5 {
				t.Fatalf("pasted pixel (%d,%d) got %d, expect 5", x, y, got)
			}
		}
	}
}

func TestClipboardRoundTrip(t *testing.T) {
	b, scr := newTestBgi()
	b.PutPixel(10, 10, 9)
	b.SaveClipboard(10, 10, 12, 12)
	b.PasteClipboard(50, 50, ModeCopy)
	if got := scr.Pixel(50, 50); got != 9 {
		t.Errorf("pasted clipboard pixel got %d, expect 9", got)
	}
	b2, _ := newTestBgi()
	b2.PasteClipboard(0, 0, ModeCopy) // empty clipboard, no panic
}

func TestGraphDefaults(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(3)
	b.SetFillStyle(FillHatch)
	b.SetViewport(10, 10, 20, 20)
	b.SetLineThickness(3)
	b.SuspendText = true
	b.GraphDefaults()
	if got := b.Color(); got != 7 {
		t.Errorf("color got %d, expect 7", got)
	}
	if got := b.FillStyle(); got != FillSolid {
		t.Errorf("fill style got %v, expect solid", got)
	}
	if got := b.LineThickness(); got != 1 {
		t.Errorf("thickness got %d, expect 1", got)
	}
	if b.SuspendText {
		t.Error("SuspendText still set")
	}
	b.PutPixel(5, 5, 7)
	if got := scr.Pixel(5, 5); got != 7 {
		t.Error("viewport not restored to full screen")
	}
}

func TestGraphDefaultsPalette(t *testing.T) {
	b, scr := newTestBgi()
	scr.Palette().SetRGB(1, 1, 2, 3)
	b.GraphDefaults()
	// selector 1 is EGA blue
	if r, g, bl := scr.Palette().RGB(1); r != 0 || g != 0 || bl != 0xAA {
		t.Errorf("palette entry 1 got (%d,%d,%d), expect (0,0,170)", r, g, bl)
	}
}

func TestSetPaletteColor(t *testing.T) {
	b, scr := newTestBgi()
	b.SetPaletteColor(3, 62)
	// selector 62 is EGA yellow
	if r, g, bl := scr.Palette().RGB(3); r != 0xFF || g != 0xFF || bl != 0x55 {
		t.Errorf("palette entry 3 got (%d,%d,%d), expect (255,255,85)", r, g, bl)
	}
	b.SetPaletteColor(16, 1) // out of range, ignored
}

func TestOutTextXYDrawsAndAdvances(t *testing.T) {
	b, scr := newTestBgi()
	b.SetColor(7)
	b.SetTextStyle(FontDefault, Horizontal, 1)
	end := b.OutTextXY(10, 10, "AB")
	cw, _, _ := faceCell()
	if end.X != 10+2*cw {
		t.Errorf("end position X got %d, expect %d", end.X, 10+2*cw)
	}
	on := 0
	for y := 10; y < 30; y++ {
		for x := 10; x < 10+2*cw; x++ {
			if scr.Pixel(x, y) == 7 {
				on++
			}
		}
	}
	if on == 0 {
		t.Error("no glyph pixels drawn")
	}
}

func TestOutTextSuspended(t *testing.T) {
	b, scr := newTestBgi()
	b.SuspendText = true
	b.SetTextStyle(FontDefault, Horizontal, 1)
	b.OutTextXY(10, 10, "A")
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			if scr.Pixel(x, y) != 0 {
				t.Fatalf("pixel (%d,%d) drawn while suspended", x, y)
			}
		}
	}
}

func TestTextSizeMagnified(t *testing.T) {
	b, _ := newTestBgi()
	b.SetTextStyle(FontDefault, Horizontal, 1)
	w1, h1 := b.TextSize("AB")
	b.SetTextStyle(FontDefault, Horizontal, 2)
	w2, h2 := b.TextSize("AB")
	if w2 != 2*w1 || h2 != 2*h1 {
		t.Errorf("magnified size (%d,%d), expect (%d,%d)", w2, h2, 2*w1, 2*h1)
	}
	b.SetTextStyle(FontDefault, Vertical, 1)
	wv, hv := b.TextSize("AB")
	if wv != w1/2 || hv != 2*h1 {
		t.Errorf("vertical size (%d,%d), expect (%d,%d)", wv, hv, w1/2, 2*h1)
	}
}

func TestAddButtonMouseField(t *testing.T) {
	b, scr := newTestBgi()
	b.SetButtonStyle(ButtonStyle{
		Width: 40, Height: 20,
		SurfaceColor: 7,
		Flags:        4, // reset screen after click
	})
	b.AddButton(10, 10, 49, 29, 0, "OK", "ok-cmd", false)
	fields := scr.MouseFields()
	if len(fields) != 1 {
		t.Fatalf("got %d mouse fields, expect 1", len(fields))
	}
	f := fields[0]
	if f.X1 != 10 || f.Y1 != 10 || f.X2 != 49 || f.Y2 != 29 {
		t.Errorf("field rect (%d,%d)-(%d,%d)", f.X1, f.Y1, f.X2, f.Y2)
	}
	if f.HostCommand != "ok-cmd" {
		t.Errorf("host command %q", f.HostCommand)
	}
	if !f.ResetScreen {
		t.Error("ResetScreen not set")
	}
	if got := scr.Pixel(20, 20); got != 7 {
		t.Errorf("surface pixel got %d, expect 7", got)
	}
}

func TestAddButtonDefaultSize(t *testing.T) {
	b, scr := newTestBgi()
	b.SetButtonStyle(ButtonStyle{Width: 30, Height: 12, SurfaceColor: 7})
	b.AddButton(10, 10, 0, 0, 0, "", "", false)
	f := scr.MouseFields()[0]
	if f.X2 != 39 || f.Y2 != 21 {
		t.Errorf("default-size field ends at (%d,%d), expect (39,21)", f.X2, f.Y2)
	}
}

func TestWriteModeFrom(t *testing.T) {
	tc := []struct {
		in     int
		expect WriteMode
	}{
		{0, ModeCopy}, {1, ModeXor}, {2, ModeOr}, {3, ModeAnd}, {4, ModeNot}, {99, ModeCopy},
	}
	for _, c := range tc {
		if got := WriteModeFrom(c.in); got != c.expect {
			t.Errorf("WriteModeFrom(%d) = %v, expect %v", c.in, got, c.expect)
		}
	}
}

func TestFillStyleFrom(t *testing.T) {
	if got := FillStyleFrom(12); got != FillUser {
		t.Errorf("selector 12 got %v, expect user", got)
	}
	if got := FillStyleFrom(13); got != FillEmpty {
		t.Errorf("selector 13 got %v, expect empty", got)
	}
}
