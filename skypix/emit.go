// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package skypix

import "github.com/ericwq/bbsterm/command"

// skypixSpec describes one graphics command: its name for errors, how
// many numeric arguments it requires, and whether a text payload
// belongs to it.
type skypixSpec struct {
	name    string
	minArgs int
	hasText bool
}

var skypixSpecs = map[command.SkypixOp]skypixSpec{
	command.SkypixComment:          {"Comment", 0, true},
	command.SkypixSetPixel:         {"SetPixel", 2, false},
	command.SkypixDrawLine:         {"DrawLine", 2, false},
	command.SkypixAreaFill:         {"AreaFill", 3, false},
	command.SkypixRectangleFill:    {"RectangleFill", 4, false},
	command.SkypixEllipse:          {"Ellipse", 4, false},
	command.SkypixGrabBrush:        {"GrabBrush", 4, false},
	command.SkypixUseBrush:         {"UseBrush", 8, false},
	command.SkypixMovePen:          {"MovePen", 2, false},
	command.SkypixPlaySample:       {"PlaySample", 4, false},
	command.SkypixSetFont:          {"SetFont", 1, true},
	command.SkypixNewPalette:       {"NewPalette", 16, false},
	command.SkypixResetPalette:     {"ResetPalette", 0, false},
	command.SkypixFilledEllipse:    {"FilledEllipse", 4, false},
	command.SkypixDelay:            {"Delay", 1, false},
	command.SkypixSetPenA:          {"SetPenA", 0, false},
	command.SkypixCrcTransfer:      {"CrcTransfer", 3, true},
	command.SkypixSetDisplayMode:   {"SetDisplayMode", 1, false},
	command.SkypixSetPenB:          {"SetPenB", 0, false},
	command.SkypixPositionCursor:   {"PositionCursor", 2, false},
	command.SkypixControllerReturn: {"ControllerReturn", 3, false},
	command.SkypixDefineGadget:     {"DefineGadget", 6, false},
	command.SkypixEndSkypix:        {"EndSkypix", 0, false},
}

// emitSkypix delivers the finished graphics command, validating the
// argument count and the mode parameters that have a closed domain.
func (p *Parser) emitSkypix(sink command.Sink) {
	b := &p.b
	b.pushParam()
	defer b.reset()

	op := command.SkypixOp(b.cmdNum)
	spec, found := skypixSpecs[op]
	if !found {
		if b.cmdNum > 0 {
			sink.ReportError(command.InvalidParameter("SkypixCommand", b.cmdNum))
		}
		return
	}

	if len(b.params) < spec.minArgs {
		sink.ReportError(command.ArityMismatch(spec.name, len(b.params)))
		return
	}

	cmd := command.SkypixCommand{Op: op}

	switch op {
	case command.SkypixAreaFill:
		if m := b.params[0]; m != command.SkypixFillToBorder && m != command.SkypixFillSameColor {
			sink.ReportError(command.InvalidParameter(spec.name, m))
			return
		}
	case command.SkypixSetFont:
		if b.params[0] == 0 {
			sink.EmitSkypix(command.SkypixCommand{Op: command.SkypixResetFont})
			return
		}
	case command.SkypixCrcTransfer:
		if m := b.params[0]; !command.ValidCrcTransferMode(m) {
			sink.ReportError(command.InvalidParameter(spec.name, m))
			return
		}
	case command.SkypixSetDisplayMode:
		if m := b.params[0]; !command.ValidDisplayMode(m) {
			sink.ReportError(command.InvalidParameter(spec.name, m))
			return
		}
	case command.SkypixSetPenA:
		// missing color defaults to pen 2
		if len(b.params) == 0 {
			cmd.Args = []int{2}
			sink.EmitSkypix(cmd)
			return
		}
	case command.SkypixSetPenB:
		// missing color defaults to pen 0
		if len(b.params) == 0 {
			cmd.Args = []int{0}
			sink.EmitSkypix(cmd)
			return
		}
	}

	if len(b.params) > 0 {
		n := len(b.params)
		if op == command.SkypixSetPenA || op == command.SkypixSetPenB {
			n = 1
		}
		cmd.Args = append([]int(nil), b.params[:n]...)
	}
	if spec.hasText && len(b.text) > 0 {
		cmd.Text = append([]byte(nil), b.text...)
	}
	sink.EmitSkypix(cmd)
}

// emitAnsi handles the letter-terminated ANSI subset SkyPix hosts keep
// using alongside the graphics commands.
func (p *Parser) emitAnsi(final byte, sink command.Sink) {
	b := &p.b
	b.pushParam()
	defer b.reset()

	switch final {
	case 'A':
		sink.Emit(command.MoveCursor{Dir: command.Up, N: b.param(0, 1)})
	case 'B':
		sink.Emit(command.MoveCursor{Dir: command.Down, N: b.param(0, 1)})
	case 'C':
		sink.Emit(command.MoveCursor{Dir: command.Right, N: b.param(0, 1)})
	case 'D':
		sink.Emit(command.MoveCursor{Dir: command.Left, N: b.param(0, 1)})
	case 'H', 'f':
		sink.Emit(command.CursorPosition{Row: b.param(0, 1), Col: b.param(1, 1)})
	case 'E':
		sink.Emit(command.CursorNextLine{N: b.param(0, 1)})
	case 'F':
		sink.Emit(command.CursorPreviousLine{N: b.param(0, 1)})
	case 'G':
		sink.Emit(command.CursorColumn{N: b.param(0, 1)})
	case 'J':
		// the scrollback selector 3 is not part of the SkyPix subset
		n := b.raw(0, 0)
		mode, ok := command.EraseDisplayModeFrom(n)
		if !ok || n > 2 {
			sink.ReportError(command.InvalidParameter("EraseDisplay", n))
			return
		}
		sink.Emit(command.EraseInDisplay{Mode: mode})
	case 'K':
		n := b.raw(0, 0)
		mode, ok := command.EraseLineModeFrom(n)
		if !ok {
			sink.ReportError(command.InvalidParameter("EraseLine", n))
			return
		}
		sink.Emit(command.EraseInLine{Mode: mode})
	case 'm':
		p.emitSgr(sink)
	case 'L':
		sink.Emit(command.InsertLine{N: b.param(0, 1)})
	case 'M':
		sink.Emit(command.DeleteLine{N: b.param(0, 1)})
	case 'P':
		sink.Emit(command.DeleteCharacter{N: b.param(0, 1)})
	case 'S':
		sink.Emit(command.Scroll{Dir: command.Up, N: b.param(0, 1)})
	case 'T':
		sink.Emit(command.Scroll{Dir: command.Down, N: b.param(0, 1)})
	case '@':
		sink.Emit(command.InsertCharacter{N: b.param(0, 1)})
	}
}

// emitSgr maps the SkyPix SGR subset. Base colors go through the Amiga
// palette table; SGR 0 also resets the font page.
func (p *Parser) emitSgr(sink command.Sink) {
	b := &p.b
	if len(b.params) == 0 {
		sink.Emit(command.SGR{Attr: command.ResetAttr()})
		return
	}
	for _, v := range b.params {
		switch {
		case v == 0:
			sink.Emit(command.SGR{Attr: command.ResetAttr()})
			sink.Emit(command.SetFontPage{Page: 0})
		case v == 1:
			sink.Emit(command.SGR{Attr: command.IntensityAttr(command.IntensityBold)})
		case v == 3:
			sink.Emit(command.SGR{Attr: command.ItalicAttr(true)})
		case v == 5:
			sink.Emit(command.SGR{Attr: command.BlinkAttr(command.BlinkSlow)})
		case v == 7:
			sink.Emit(command.SGR{Attr: command.InverseAttr(true)})
		case v >= 30 && v <= 37:
			c := command.BaseColor(amigaColorOffsets[v-30])
			sink.Emit(command.SGR{Attr: command.ForegroundAttr(c)})
		case v >= 40 && v <= 47:
			c := command.BaseColor(amigaColorOffsets[v-40])
			sink.Emit(command.SGR{Attr: command.BackgroundAttr(c)})
		default:
			sink.ReportError(command.InvalidParameter("SGR", v))
		}
	}
}

// param reads a parameter with a default and a floor of one.
func (b *builder) param(idx, def int) int {
	v := b.raw(idx, def)
	if v < 1 {
		return 1
	}
	return v
}

// raw reads a parameter with a default, unclamped.
func (b *builder) raw(idx, def int) int {
	if idx >= len(b.params) {
		return def
	}
	return b.params[idx]
}
