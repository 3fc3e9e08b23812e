// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"strings"

	"github.com/ericwq/bbsterm/command"
	"github.com/ericwq/bbsterm/screen"
)

// RipExecutor runs parsed RIPscrip commands against a Bgi engine. The
// drawing set maps straight onto Bgi calls; the text window and caret
// belong to the caller's text layer, so the executor tracks the window
// in cells and forwards caret moves through OnCaretMove. Commands that
// need host or filesystem interaction go to OnUnhandled.
type RipExecutor struct {
	bgi *Bgi

	// text window in cell coordinates, right/bottom exclusive
	window       rect
	wrap         bool
	cellW, cellH int

	// OnCaretMove, when set, receives text caret moves in cells.
	OnCaretMove func(col, row int)

	// OnUnhandled, when set, receives the commands the engine cannot
	// act on: icon files, scene loads, queries and block transfers.
	OnUnhandled func(cmd command.RipCommand)
}

// NewRipExecutor attaches an executor to an engine. The text window
// starts at the full 80x25 grid of the 640x350 screen.
func NewRipExecutor(b *Bgi) *RipExecutor {
	return &RipExecutor{
		bgi:    b,
		window: rectFrom(0, 0, 80, 25),
		wrap:   true,
		cellW:  8,
		cellH:  14,
	}
}

func (e *RipExecutor) Bgi() *Bgi { return e.bgi }

// TextWindow reports the active text window in cells, right/bottom
// exclusive, plus the wrap flag.
func (e *RipExecutor) TextWindow() (x0, y0, x1, y1 int, wrap bool) {
	return e.window.left, e.window.top, e.window.right, e.window.bottom, e.wrap
}

// CellSize reports the text window font cell in pixels.
func (e *RipExecutor) CellSize() (w, h int) { return e.cellW, e.cellH }

// ripCellSize maps the TextWindow font size selector to a cell box.
func ripCellSize(size int) (w, h int) {
	switch size {
	case 1:
		return 7, 8
	case 2:
		return 8, 14
	case 3:
		return 7, 14
	case 4:
		return 16, 14
	}
	return 8, 8
}

func arg(args []int, i int) int {
	if i < 0 || i >= len(args) {
		return 0
	}
	return args[i]
}

// Run executes one command.
func (e *RipExecutor) Run(cmd command.RipCommand) {
	b := e.bgi
	a := func(i int) int { return arg(cmd.Args, i) }

	switch cmd.Op {
	case command.RipTextWindow:
		if a(0) == 0 && a(1) == 0 && a(2) == 0 && a(3) == 0 && a(4) == 0 && a(5) == 0 {
			b.SuspendText = !b.SuspendText
			return
		}
		e.window = rectFrom(a(0), a(1), a(2)-a(0)+1, a(3)-a(1)+1)
		e.wrap = a(4) != 0
		e.cellW, e.cellH = ripCellSize(a(5))

	case command.RipViewPort:
		b.SetViewport(a(0), a(1), a(2)+1, a(3)+1)

	case command.RipResetWindows:
		e.window = rectFrom(0, 0, 80, 25)
		e.wrap = true
		e.cellW, e.cellH = 8, 14
		b.GraphDefaults()

	case command.RipEraseWindow:
		e.fillBk(e.window.left*e.cellW, e.window.top*e.cellH,
			e.window.right*e.cellW-1, e.window.bottom*e.cellH-1)

	case command.RipEraseView:
		e.fillBk(b.viewport.left, b.viewport.top, b.viewport.right-1, b.viewport.bottom-1)

	case command.RipGotoXY:
		if e.OnCaretMove != nil {
			e.OnCaretMove(a(0), a(1))
		}

	case command.RipHome:
		if e.OnCaretMove != nil {
			e.OnCaretMove(e.window.left, e.window.top)
		}

	case command.RipColor:
		b.SetColor(uint8(a(0)))

	case command.RipSetPalette:
		b.SetPalette(cmd.Args)

	case command.RipOnePalette:
		b.SetPaletteColor(a(0), a(1))

	case command.RipWriteMode:
		b.SetWriteMode(WriteModeFrom(a(0)))

	case command.RipMove:
		b.MoveTo(a(0), a(1))

	case command.RipText:
		b.OutText(string(cmd.Text))

	case command.RipTextXY:
		b.MoveTo(a(0), a(1))
		b.OutText(string(cmd.Text))

	case command.RipFontStyle:
		b.SetTextStyle(FontTypeFrom(a(0)), DirectionFrom(a(1)), a(2))

	case command.RipPixel:
		b.PutPixel(a(0), a(1), b.Color())

	case command.RipLine:
		b.Line(a(0), a(1), a(2), a(3))

	case command.RipRectangle:
		b.Rectangle(a(0), a(1), a(2), a(3))

	case command.RipBar:
		x0, x1 := minMaxPair(a(0), a(2))
		y0, y1 := minMaxPair(a(1), a(3))
		b.Bar(x0, y0, x1, y1)

	case command.RipCircle:
		b.Circle(a(0), a(1), a(2))

	case command.RipOval, command.RipOvalArc:
		b.Ellipse(a(0), a(1), a(2), a(3), a(4), a(5))

	case command.RipFilledOval:
		b.FillEllipse(a(0), a(1), 0, 360, a(2), a(3))

	case command.RipArc:
		b.Arc(a(0), a(1), a(2), a(3), a(4))

	case command.RipPieSlice:
		b.PieSlice(a(0), a(1), a(2), a(3), a(4))

	case command.RipOvalPieSlice:
		b.Sector(a(0), a(1), a(2), a(3), a(4), a(5))

	case command.RipBezier:
		b.Bezier(a(0), a(1), a(2), a(3), a(4), a(5), a(6), a(7), a(8))

	case command.RipPolygon:
		b.DrawPoly(pointPairs(cmd.Args))

	case command.RipFilledPolygon:
		b.FillPoly(pointPairs(cmd.Args))

	case command.RipPolyLine:
		b.DrawPolyLine(pointPairs(cmd.Args))

	case command.RipFill:
		b.FloodFill(a(0), a(1), uint8(a(2)))

	case command.RipLineStyle:
		b.SetLineStyle(LineStyleFrom(a(0)))
		if a(0) == 4 {
			b.SetLinePattern(a(1))
		}
		b.SetLineThickness(a(2))

	case command.RipFillStyle:
		b.SetFillStyle(FillStyleFrom(a(0)))
		b.SetFillColor(uint8(a(1)))

	case command.RipFillPattern:
		var rows [8]byte
		for i := 0; i < 8; i++ {
			rows[i] = byte(a(i))
		}
		b.SetUserFillPattern(rows[:])
		b.SetFillStyle(FillUser)
		b.SetFillColor(uint8(a(8)))

	case command.RipMouse:
		b.AddMouseField(screen.MouseField{
			Num: a(0),
			X1:  a(1), Y1: a(2), X2: a(3), Y2: a(4),
			HostCommand: parseHostCommand(cmd.Text),
			ResetScreen: a(6) != 0,
		})

	case command.RipMouseFields:
		b.ClearMouseFields()

	case command.RipBeginText, command.RipRegionText, command.RipEndText:
		// justified region text needs the caller's text layer

	case command.RipGetImage:
		b.SaveClipboard(a(0), a(1), a(2), a(3))

	case command.RipPutImage:
		b.PasteClipboard(a(0), a(1), WriteModeFrom(a(2)))

	case command.RipCopyRegion:
		img := b.GetImage(a(0), a(1), a(2), a(3)+1)
		b.PutImage(a(0), a(5), img, b.WriteMode())

	case command.RipButtonStyle:
		b.SetButtonStyle(ButtonStyle{
			Width:           a(0),
			Height:          a(1),
			Orientation:     LabelOrientationFrom(a(2)),
			Flags:           a(3),
			BevelSize:       a(4),
			LabelColor:      a(5),
			DropShadowColor: a(6),
			Bright:          a(7),
			Dark:            a(8),
			SurfaceColor:    a(9),
			Group:           a(10),
			Flags2:          a(11),
			UnderlineColor:  a(12),
			CornerColor:     a(13),
		})

	case command.RipButton:
		label, host := splitButtonText(string(cmd.Text))
		b.AddButton(a(0), a(1), a(2), a(3), byte(a(4)), label, parseHostCommand([]byte(host)), false)

	case command.RipNoMore:
		// scene terminator, nothing to draw

	default:
		// icon files, scene loads, queries, defines and block mode all
		// need the host side
		if e.OnUnhandled != nil {
			e.OnUnhandled(cmd)
		}
	}
}

// fillBk bars a rectangle with the background color regardless of the
// current fill state.
func (e *RipExecutor) fillBk(x0, y0, x1, y1 int) {
	b := e.bgi
	oldStyle := b.SetFillStyle(FillSolid)
	oldColor := b.SetFillColor(b.BkColor())
	b.Bar(x0, y0, x1, y1)
	b.SetFillColor(oldColor)
	b.SetFillStyle(oldStyle)
}

func minMaxPair(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}

func pointPairs(args []int) []screen.Position {
	points := make([]screen.Position, 0, len(args)/2)
	for i := 1; i < len(args); i += 2 {
		points = append(points, screen.Position{X: args[i-1], Y: args[i]})
	}
	return points
}

// splitButtonText pulls the label and host command out of the Button
// text argument, which packs icon name, label and host command with
// "<>" separators.
func splitButtonText(s string) (label, host string) {
	parts := strings.Split(s, "<>")
	switch {
	case len(parts) >= 3:
		return parts[1], parts[2]
	case len(parts) == 2:
		return parts[1], ""
	}
	return parts[0], ""
}

// parseHostCommand expands the caret control escapes a button or mouse
// field host command may carry.
func parseHostCommand(text []byte) string {
	var sb strings.Builder
	caret := false
	for _, c := range text {
		if caret {
			switch c {
			case '@':
				sb.WriteByte(0x00)
			case 'G':
				sb.WriteByte(0x07)
			case 'H':
				sb.WriteByte(0x08)
			case 'L':
				sb.WriteByte(0x0c)
			case 'M':
				sb.WriteByte(0x0d)
			case 'C':
				sb.WriteByte(0x18)
			case '[':
				sb.WriteByte(0x1b)
			case 'S':
				sb.WriteByte('1')
			case 'Q':
				sb.WriteByte('2')
			}
			caret = false
			continue
		}
		if c == '^' {
			caret = true
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}
