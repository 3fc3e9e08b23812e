// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ansi parses ANSI/VT100 escape sequences into commands.
//
// The parser is chunk-resumable: Parse may be called with arbitrary
// split points, sequence state carries over between calls. It covers
// CSI with the intermediate forms used on BBSes (SP, *, $, ?, >, !, =),
// OSC, DCS (CTerm fonts, DECDMAC macros, sixel) and APS strings, plus
// optional ANSI music.
package ansi

import (
	"github.com/ericwq/bbsterm/command"
)

type state uint8

const (
	ground state = iota
	escape
	csiEntry
	csiParam
	csiDecPrivate // CSI ? ...
	csiAsterisk   // CSI ... *
	csiDollar     // CSI ... $
	csiSpace      // CSI ... SP
	csiGreater    // CSI > ...
	csiExclaim    // CSI ! ...
	csiEquals     // CSI = ...
	oscString
	oscEscape
	dcsString
	dcsEscape
	apsString
	apsEscape
	ansiMusic
)

// MusicOption selects which CSI finals start an ANSI music score.
// CSI M collides with DL, which is why it needs an explicit opt-in.
type MusicOption uint8

const (
	MusicOff         MusicOption = iota
	MusicConflicting             // CSI M
	MusicBanana                  // CSI N
	MusicBoth                    // CSI M and CSI N
)

// macro invocation re-enters Parse; the depth guard stops a macro that
// invokes itself.
const maxMacroDepth = 8

// Parser is the base ANSI parser. The zero value is not ready for use,
// call NewParser.
type Parser struct {
	state    state
	params   []int
	overflow bool
	buf      []byte
	macros   map[int][]byte
	depth    int

	music MusicOption
	mus   musicParser
}

func NewParser() *Parser {
	p := &Parser{macros: make(map[int][]byte)}
	p.mus.init()
	return p
}

// SetMusicOption enables ANSI music entry sequences.
func (p *Parser) SetMusicOption(opt MusicOption) { p.music = opt }

func (p *Parser) reset() {
	p.params = p.params[:0]
	p.overflow = false
	p.state = ground
}

// Parse feeds input through the state machine, delivering commands and
// printable runs to sink.
func (p *Parser) Parse(input []byte, sink command.Sink) {
	i := 0
	printable := 0

	for i < len(input) {
		b := input[i]

		if p.state == ground {
			switch b {
			case 0x1b, 0x07, 0x08, 0x09, 0x0a, 0x0c, 0x0d, 0x7f:
				if i > printable {
					sink.Print(input[printable:i])
				}
				i++
				printable = i
				switch b {
				case 0x1b:
					p.state = escape
				case 0x07:
					sink.Emit(command.Bell{})
				case 0x08:
					sink.Emit(command.Backspace{})
				case 0x09:
					sink.Emit(command.Tab{})
				case 0x0a:
					sink.Emit(command.LineFeed{})
				case 0x0c:
					sink.Emit(command.FormFeed{})
				case 0x0d:
					sink.Emit(command.CarriageReturn{})
				case 0x7f:
					sink.Emit(command.Delete{})
				}
			default:
				i++
			}
			continue
		}

		p.step(b, sink)
		i++
		printable = i
	}

	if p.state == ground && i > printable {
		sink.Print(input[printable:i])
	}
}

// Flush drops any sequence still pending at end of stream.
func (p *Parser) Flush(_ command.Sink) {
	p.buf = p.buf[:0]
	p.reset()
}

// step consumes one in-sequence byte.
func (p *Parser) step(b byte, sink command.Sink) {
	if p.overflow {
		// absorb the rest of the oversized sequence, then drop it and
		// resync to ground on the byte that would have ended it
		if (b >= '0' && b <= '9') || b == ';' {
			return
		}
		sink.ReportError(command.InvalidParameter("CSI", p.params[len(p.params)-1]))
		p.reset()
		return
	}

	switch p.state {
	case escape:
		p.stepEscape(b, sink)

	case csiEntry:
		switch {
		case b >= '0' && b <= '9':
			p.params = append(p.params, int(b-'0'))
			p.state = csiParam
		case b == ';':
			p.params = append(p.params, 0)
		case b == '?':
			p.state = csiDecPrivate
		case b == '>':
			p.state = csiGreater
		case b == '!':
			p.state = csiExclaim
		case b == '=':
			p.state = csiEquals
		case b == '*':
			p.state = csiAsterisk
		case b == '$':
			p.state = csiDollar
		case b == ' ':
			p.state = csiSpace
		case b >= '@' && b <= '~':
			p.handleCsiFinal(b, sink)
		default:
			p.reset()
		}

	case csiParam:
		switch {
		case b >= '0' && b <= '9':
			p.pushDigit(b)
		case b == ';':
			p.params = append(p.params, 0)
		case b == ' ':
			p.state = csiSpace
		case b == '*':
			p.state = csiAsterisk
		case b == '$':
			p.state = csiDollar
		case b == '\'':
			// non-standard HPA final
			p.handleCsiFinal(b, sink)
		case b >= '@' && b <= '~':
			p.handleCsiFinal(b, sink)
		default:
			p.reset()
		}

	case csiDecPrivate:
		switch {
		case b >= '0' && b <= '9':
			p.pushDigit(b)
		case b == ';':
			p.params = append(p.params, 0)
		case b >= '@' && b <= '~':
			p.handleDecPrivateFinal(b, sink)
			p.reset()
		default:
			p.reset()
		}

	case csiAsterisk:
		switch {
		case b >= '0' && b <= '9':
			p.pushDigit(b)
		case b == ';':
			p.params = append(p.params, 0)
		case b == 'z':
			n := p.param(0, 0)
			p.reset()
			p.invokeMacro(n, sink)
		case b == 'r':
			sink.Emit(command.SelectCommunicationSpeed{Ps1: p.param(0, 0), Ps2: p.param(1, 0)})
			p.reset()
		case b == 'y':
			// ESC [ Pid;Ppage;Pt;Pl;Pb;Pr * y, Pid is ignored
			sink.Emit(command.AreaChecksumReport{
				Page: p.param(1, 0), Top: p.param(2, 0), Left: p.param(3, 0),
				Bottom: p.param(4, 0), Right: p.param(5, 0),
			})
			p.reset()
		default:
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
			p.reset()
		}

	case csiDollar:
		switch {
		case b >= '0' && b <= '9':
			p.pushDigit(b)
		case b == ';':
			p.params = append(p.params, 0)
		case b == 'w':
			sink.Emit(command.TabStopReport{Ps: p.param(0, 0)})
			p.reset()
		case b == 'x':
			sink.Emit(command.FillArea{
				Ch: p.param(0, 0), Top: p.param(1, 1), Left: p.param(2, 1),
				Bottom: p.param(3, 1), Right: p.param(4, 1),
			})
			p.reset()
		case b == 'z':
			sink.Emit(command.EraseArea{
				Top: p.param(0, 1), Left: p.param(1, 1),
				Bottom: p.param(2, 1), Right: p.param(3, 1),
			})
			p.reset()
		case b == '{':
			sink.Emit(command.SelectiveEraseArea{
				Top: p.param(0, 1), Left: p.param(1, 1),
				Bottom: p.param(2, 1), Right: p.param(3, 1),
			})
			p.reset()
		default:
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
			p.reset()
		}

	case csiSpace:
		switch {
		case b >= '0' && b <= '9':
			p.pushDigit(b)
		case b == ';':
			p.params = append(p.params, 0)
		case b == 'q':
			blinking, shape := caretStyle(p.param(0, 1))
			sink.Emit(command.SetCaretStyle{Blinking: blinking, Shape: shape})
			p.reset()
		case b == 'D':
			sink.Emit(command.FontSelection{Ps1: p.param(0, 0), Ps2: p.param(1, 0)})
			p.reset()
		case b == 'A':
			sink.Emit(command.Scroll{Dir: command.Right, N: p.param(0, 1)})
			p.reset()
		case b == '@':
			sink.Emit(command.Scroll{Dir: command.Left, N: p.param(0, 1)})
			p.reset()
		case b == 'd':
			if p.param(0, 0) == 0 {
				sink.Emit(command.ClearTabStop{})
			} else {
				sink.Emit(command.ClearAllTabs{})
			}
			p.reset()
		default:
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
			p.reset()
		}

	case csiGreater:
		p.stepUnsupported(b, "Unsupported CSI > sequence", sink)

	case csiExclaim:
		p.stepUnsupported(b, "Unsupported CSI ! sequence", sink)

	case csiEquals:
		p.stepUnsupported(b, "Unsupported CSI = sequence", sink)

	case oscString:
		switch b {
		case 0x07:
			p.emitOsc(sink)
			p.buf = p.buf[:0]
			p.reset()
		case 0x1b:
			p.state = oscEscape
		default:
			p.buf = append(p.buf, b)
		}

	case oscEscape:
		if b == '\\' {
			p.emitOsc(sink)
			p.buf = p.buf[:0]
			p.reset()
		} else {
			p.buf = append(p.buf, 0x1b, b)
			p.state = oscString
		}

	case dcsString:
		if b == 0x1b {
			p.state = dcsEscape
		} else {
			p.buf = append(p.buf, b)
		}

	case dcsEscape:
		if b == '\\' {
			p.parseDcs(sink)
			p.buf = p.buf[:0]
			p.reset()
		} else {
			p.buf = append(p.buf, 0x1b, b)
			p.state = dcsString
		}

	case apsString:
		if b == 0x1b {
			p.state = apsEscape
		} else {
			p.buf = append(p.buf, b)
		}

	case apsEscape:
		if b == '\\' {
			sink.Aps(p.buf)
			p.buf = p.buf[:0]
			p.reset()
		} else {
			p.buf = append(p.buf, 0x1b, b)
			p.state = apsString
		}

	case ansiMusic:
		p.parseMusic(b, sink)
	}
}

func (p *Parser) stepEscape(b byte, sink command.Sink) {
	switch b {
	case '[':
		p.params = p.params[:0]
		p.state = csiEntry
	case ']':
		p.buf = p.buf[:0]
		p.state = oscString
	case 'P':
		p.buf = p.buf[:0]
		p.state = dcsString
	case '_':
		p.buf = p.buf[:0]
		p.state = apsString
	case 'D':
		sink.Emit(command.Index{})
		p.reset()
	case 'E':
		sink.Emit(command.NextLine{})
		p.reset()
	case 'H':
		sink.Emit(command.SetTabStop{})
		p.reset()
	case 'M':
		sink.Emit(command.ReverseIndex{})
		p.reset()
	case '7':
		sink.Emit(command.SaveCursor{})
		p.reset()
	case '8':
		sink.Emit(command.RestoreCursor{})
		p.reset()
	case 'c':
		sink.Emit(command.Reset{})
		p.reset()
	default:
		sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
		p.reset()
	}
}

func (p *Parser) stepUnsupported(b byte, desc string, sink command.Sink) {
	switch {
	case b >= '0' && b <= '9':
		p.pushDigit(b)
	case b == ';':
		p.params = append(p.params, 0)
	default:
		sink.ReportError(command.MalformedSequence(desc))
		p.reset()
	}
}

// maxParam bounds a CSI parameter to its 16-bit domain.
const maxParam = 0xFFFF

// pushDigit appends the digit to the last parameter, starting a new one
// if none is open. A value past the 16-bit domain saturates and marks
// the whole sequence invalid; the error reports when the sequence ends.
func (p *Parser) pushDigit(b byte) {
	d := int(b - '0')
	if n := len(p.params); n > 0 {
		v := p.params[n-1]*10 + d
		if v > maxParam {
			p.overflow = true
			v = maxParam
		}
		p.params[n-1] = v
	} else {
		p.params = append(p.params, d)
	}
}

// param returns the parameter at idx, or def when absent.
func (p *Parser) param(idx, def int) int {
	if idx < len(p.params) {
		return p.params[idx]
	}
	return def
}

func caretStyle(ps int) (blinking bool, shape command.CaretShape) {
	switch ps {
	case 2:
		return false, command.CaretBlock
	case 3:
		return true, command.CaretUnderline
	case 4:
		return false, command.CaretUnderline
	case 5:
		return true, command.CaretBar
	case 6:
		return false, command.CaretBar
	default: // 0, 1 and anything out of range
		return true, command.CaretBlock
	}
}

func (p *Parser) handleCsiFinal(final byte, sink command.Sink) {
	next := ground

	switch final {
	case 'A':
		sink.Emit(command.MoveCursor{Dir: command.Up, N: p.param(0, 1)})
	case 'B':
		sink.Emit(command.MoveCursor{Dir: command.Down, N: p.param(0, 1)})
	case 'C':
		sink.Emit(command.MoveCursor{Dir: command.Right, N: p.param(0, 1)})
	case 'D':
		sink.Emit(command.MoveCursor{Dir: command.Left, N: p.param(0, 1)})
	case 'E':
		sink.Emit(command.CursorNextLine{N: p.param(0, 1)})
	case 'F':
		sink.Emit(command.CursorPreviousLine{N: p.param(0, 1)})
	case 'G':
		sink.Emit(command.CursorColumn{N: p.param(0, 1)})
	case 'H', 'f':
		sink.Emit(command.CursorPosition{Row: p.param(0, 1), Col: p.param(1, 1)})
	case 'j':
		sink.Emit(command.MoveCursor{Dir: command.Left, N: p.param(0, 1)})
	case 'k':
		sink.Emit(command.MoveCursor{Dir: command.Up, N: p.param(0, 1)})
	case 'd':
		sink.Emit(command.LineAbsolute{N: p.param(0, 1)})
	case 'e':
		sink.Emit(command.LineForward{N: p.param(0, 1)})
	case 'a':
		sink.Emit(command.ColumnForward{N: p.param(0, 1)})
	case '\'':
		sink.Emit(command.ColumnAbsolute{N: p.param(0, 1)})
	case 'J':
		n := p.param(0, 0)
		mode, ok := command.EraseDisplayModeFrom(n)
		if !ok {
			sink.ReportError(command.InvalidParameter("EraseInDisplay", n))
		}
		sink.Emit(command.EraseInDisplay{Mode: mode})
	case 'K':
		n := p.param(0, 0)
		mode, ok := command.EraseLineModeFrom(n)
		if !ok {
			sink.ReportError(command.InvalidParameter("EraseInLine", n))
		}
		sink.Emit(command.EraseInLine{Mode: mode})
	case 'S':
		sink.Emit(command.Scroll{Dir: command.Up, N: p.param(0, 1)})
	case 'T':
		sink.Emit(command.Scroll{Dir: command.Down, N: p.param(0, 1)})
	case 'm':
		if len(p.params) == 0 {
			parseSgr([]int{0}, sink)
		} else {
			parseSgr(p.params, sink)
		}
	case 'r':
		sink.Emit(command.SetScrollingRegion{Top: p.param(0, 1), Bottom: p.param(1, 0)})
	case '@':
		sink.Emit(command.InsertCharacter{N: p.param(0, 1)})
	case 'P':
		sink.Emit(command.DeleteCharacter{N: p.param(0, 1)})
	case 'X':
		sink.Emit(command.EraseCharacter{N: p.param(0, 1)})
	case 'L':
		sink.Emit(command.InsertLine{N: p.param(0, 1)})
	case 'M':
		if p.music == MusicConflicting || p.music == MusicBoth {
			p.mus.begin()
			next = ansiMusic
		} else {
			sink.Emit(command.DeleteLine{N: p.param(0, 1)})
		}
	case 'N':
		if p.music == MusicBanana || p.music == MusicBoth {
			p.mus.begin()
			next = ansiMusic
		} else {
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
		}
	case '|':
		if p.music != MusicOff {
			p.mus.begin()
			next = ansiMusic
		} else {
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
		}
	case 'b':
		sink.Emit(command.RepeatCharacter{N: p.param(0, 1)})
	case 's':
		sink.Emit(command.SaveCursorPosition{})
	case 'u':
		sink.Emit(command.RestoreCursorPosition{})
	case 'g':
		if p.param(0, 0) == 0 {
			sink.Emit(command.ClearTabStop{})
		} else {
			sink.Emit(command.ClearAllTabs{})
		}
	case 'Y':
		sink.Emit(command.TabForward{N: p.param(0, 1)})
	case 'Z':
		sink.Emit(command.TabBackward{N: p.param(0, 1)})
	case 't':
		p.handleWindowOp(sink)
	case '~':
		sink.Emit(command.SpecialKey{N: p.param(0, 0)})
	case 'c':
		sink.Emit(command.DeviceAttributes{})
	case 'n':
		n := p.param(0, 0)
		if report, ok := command.StatusReportFrom(n); ok {
			sink.Emit(command.DeviceStatusReport{Report: report})
		} else {
			sink.ReportError(command.InvalidParameter("DeviceStatusReport", n))
		}
	case 'h':
		for _, param := range p.params {
			if mode, ok := command.ModeFrom(param); ok {
				sink.Emit(command.SetMode{Mode: mode})
			} else {
				sink.ReportError(command.InvalidParameter("SetMode", param))
			}
		}
	case 'l':
		for _, param := range p.params {
			if mode, ok := command.ModeFrom(param); ok {
				sink.Emit(command.ResetMode{Mode: mode})
			} else {
				sink.ReportError(command.InvalidParameter("ResetMode", param))
			}
		}
	default:
		sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
	}

	p.params = p.params[:0]
	p.state = next
}

// handleWindowOp is the CSI t family: 8;h;w t resizes, 0|1;r;g;b t sets
// a direct color.
func (p *Parser) handleWindowOp(sink command.Sink) {
	switch len(p.params) {
	case 3:
		if p.params[0] != 8 {
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
			return
		}
		height := clamp(p.params[1], 1, 60)
		width := clamp(p.params[2], 1, 132)
		sink.Emit(command.ResizeTerminal{Height: height, Width: width})
	case 4:
		c := command.RGBColor(uint8(p.params[1]), uint8(p.params[2]), uint8(p.params[3]))
		switch p.params[0] {
		case 0:
			sink.Emit(command.SGR{Attr: command.BackgroundAttr(c)})
		case 1:
			sink.Emit(command.SGR{Attr: command.ForegroundAttr(c)})
		default:
			sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
		}
	default:
		sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
	}
}

func (p *Parser) handleDecPrivateFinal(final byte, sink command.Sink) {
	switch final {
	case 'h':
		for _, param := range p.params {
			if mode, ok := command.PrivateModeFrom(param); ok {
				sink.Emit(command.SetPrivateMode{Mode: mode})
			} else {
				sink.ReportError(command.InvalidParameter("SetPrivateMode", param))
			}
		}
	case 'l':
		for _, param := range p.params {
			if mode, ok := command.PrivateModeFrom(param); ok {
				sink.Emit(command.ResetPrivateMode{Mode: mode})
			} else {
				sink.ReportError(command.InvalidParameter("ResetPrivateMode", param))
			}
		}
	default:
		sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
