// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mode7 parses the BBC Micro / teletext display stream.
//
// Mode 7 is not an escape-sequence dialect: single bytes 0-31 are VDU
// control codes (some opening a fixed-length multi-byte sequence) and
// bytes 128-159 are teletext attribute codes that also occupy a screen
// cell. Attribute state persists to the end of the line.
package mode7

import (
	"github.com/ericwq/bbsterm/command"
)

// vduLength gives the total byte count of a multi-byte VDU sequence,
// keyed by its first byte.
var vduLength = map[byte]int{
	17: 2,  // COLOUR n
	18: 3,  // GCOL mode,colour
	19: 6,  // palette
	22: 2,  // MODE n
	23: 10, // reprogram character
	24: 9,  // graphics viewport
	25: 5,  // PLOT
	28: 5,  // text viewport
	29: 5,  // graphics origin
	31: 3,  // TAB(x,y)
}

// Parser is the standalone Mode 7 parser.
type Parser struct {
	gotEsc      bool // VDU 27, next byte prints literally
	vdu         []byte
	vduExpected int
	disabled    bool // VDU 21 .. VDU 6

	holdGraphics bool
	heldGraphics byte
	contiguous   bool
	inGraphics   bool
	doubleHeight bool

	fg, bg uint8
}

func NewParser() *Parser {
	return &Parser{
		heldGraphics: ' ',
		contiguous:   true,
		fg:           7,
		bg:           0,
	}
}

// resetState clears the per-line teletext attributes. Called on line
// changes, clear screen and home.
func (p *Parser) resetState(sink command.Sink) {
	p.inGraphics = false
	p.holdGraphics = false
	p.heldGraphics = ' '
	p.contiguous = true
	p.fg = 7
	p.bg = 0
	if p.doubleHeight {
		p.doubleHeight = false
		sink.Emit(command.SGR{Attr: command.DoubleHeightAttr(false)})
	}
}

// Parse feeds input through the parser, delivering commands and
// printable runs to sink.
func (p *Parser) Parse(input []byte, sink command.Sink) {
	i := 0
	printable := 0

	flush := func() {
		if i > printable {
			sink.Print(input[printable:i])
		}
	}

	for i < len(input) {
		b := input[i]

		// plain ASCII batches; everything else is handled per byte
		if b >= 32 && b <= 126 && !p.disabled && !p.gotEsc && p.vduExpected == 0 {
			i++
			continue
		}

		flush()
		p.parseByte(b, sink)
		i++
		printable = i
	}

	flush()
}

// Flush drops any VDU sequence still pending at end of stream.
func (p *Parser) Flush(_ command.Sink) {
	p.vdu = p.vdu[:0]
	p.vduExpected = 0
	p.gotEsc = false
}

func (p *Parser) parseByte(b byte, sink command.Sink) {
	// VDU 21 suppresses everything until VDU 6
	if p.disabled && b != 6 {
		return
	}

	if p.gotEsc {
		p.gotEsc = false
		sink.Print([]byte{b})
		return
	}

	if p.vduExpected > 0 {
		p.vdu = append(p.vdu, b)
		if len(p.vdu) >= p.vduExpected {
			p.handleVdu(sink)
		}
		return
	}

	switch {
	case b == 0, b >= 1 && b <= 5, b >= 14 && b <= 16:
		// null, printer control, paging: nothing to do

	case b == 6:
		p.disabled = false

	case b == 7:
		sink.Emit(command.Bell{})

	case b == 8:
		sink.Emit(command.MoveCursor{Dir: command.Left, N: 1})

	case b == 9:
		sink.Emit(command.MoveCursor{Dir: command.Right, N: 1})

	case b == 10, b == 11:
		dir := command.Down
		if b == 11 {
			dir = command.Up
		}
		sink.Emit(command.MoveCursor{Dir: dir, N: 1})
		p.resetState(sink)
		p.emitColors(sink)

	case b == 12:
		// CLS
		sink.Emit(command.EraseInDisplay{Mode: command.EraseDisplayAll})
		sink.Emit(command.CursorPosition{Row: 1, Col: 1})
		p.resetState(sink)

	case b == 13:
		sink.Emit(command.CarriageReturn{})
		p.resetState(sink)

	case vduLength[b] > 0:
		p.vduExpected = vduLength[b]
		p.vdu = append(p.vdu[:0], b)

	case b == 20:
		// restore default colors
		p.fg, p.bg = 7, 0
		p.emitColors(sink)

	case b == 21:
		p.disabled = true

	case b == 26, b == 30:
		// reset viewports / home
		sink.Emit(command.CursorPosition{Row: 1, Col: 1})
		p.resetState(sink)

	case b == 27:
		p.gotEsc = true

	case b == 127:
		// destructive backspace
		sink.Emit(command.Backspace{})
		sink.Print([]byte{' '})
		sink.Emit(command.Backspace{})

	case b >= 129 && b <= 135:
		// alpha colors red..white
		p.inGraphics = false
		p.fg = 1 + (b - 129)
		sink.Emit(command.SGR{Attr: command.ForegroundAttr(command.BaseColor(p.fg))})
		sink.Emit(command.SGR{Attr: command.ConcealedAttr(false)})
		p.displayControl(sink)

	case b == 136:
		sink.Emit(command.SGR{Attr: command.BlinkAttr(command.BlinkSlow)})
		p.displayControl(sink)

	case b == 137:
		sink.Emit(command.SGR{Attr: command.BlinkAttr(command.BlinkOff)})
		p.displayControl(sink)

	case b == 140:
		if p.doubleHeight {
			p.doubleHeight = false
			sink.Emit(command.SGR{Attr: command.DoubleHeightAttr(false)})
		}
		p.displayControl(sink)

	case b == 141:
		if !p.doubleHeight {
			p.doubleHeight = true
			sink.Emit(command.SGR{Attr: command.DoubleHeightAttr(true)})
		}
		p.displayControl(sink)

	case b >= 145 && b <= 151:
		// graphics colors red..white
		p.inGraphics = true
		p.fg = 1 + (b - 145)
		sink.Emit(command.SGR{Attr: command.ForegroundAttr(command.BaseColor(p.fg))})
		sink.Emit(command.SGR{Attr: command.ConcealedAttr(false)})
		p.displayControl(sink)

	case b == 152:
		sink.Emit(command.SGR{Attr: command.ConcealedAttr(true)})
		p.displayControl(sink)

	case b == 153:
		p.contiguous = true
		p.displayControl(sink)

	case b == 154:
		p.contiguous = false
		p.displayControl(sink)

	case b == 156:
		p.bg = 0
		sink.Emit(command.SGR{Attr: command.BackgroundAttr(command.BaseColor(0))})
		p.displayControl(sink)

	case b == 157:
		// new background takes the current foreground color
		p.bg = p.fg
		sink.Emit(command.SGR{Attr: command.BackgroundAttr(command.BaseColor(p.bg))})
		p.displayControl(sink)

	case b == 158:
		p.holdGraphics = true
		p.displayControl(sink)

	case b == 159:
		p.holdGraphics = false
		p.displayControl(sink)

	case b >= 160:
		sink.Print([]byte{p.processGraphics(b)})

	default:
		// unassigned codes pass through
		sink.Print([]byte{b})
	}
}

func (p *Parser) emitColors(sink command.Sink) {
	sink.Emit(command.SGR{Attr: command.ForegroundAttr(command.BaseColor(p.fg))})
	sink.Emit(command.SGR{Attr: command.BackgroundAttr(command.BaseColor(p.bg))})
}

// displayControl prints the cell a teletext attribute code occupies:
// the held graphics character under hold graphics, a space otherwise.
func (p *Parser) displayControl(sink command.Sink) {
	ch := byte(' ')
	if p.holdGraphics && p.inGraphics {
		ch = p.heldGraphics
	}
	sink.Print([]byte{ch})
}

// processGraphics maps a mosaic byte through the contiguous/separated
// tables. Outside graphics mode, mosaic bytes display as spaces.
func (p *Parser) processGraphics(ch byte) byte {
	if !p.inGraphics {
		return ' '
	}

	if (ch >= 160 && ch <= 191) || ch >= 224 {
		p.heldGraphics = ch
	}

	if p.contiguous {
		switch {
		case ch >= 160 && ch <= 191:
			return ch - 32 // 128-159
		case ch >= 224:
			return ch - 64 // 160-191
		}
		return ch
	}
	if ch >= 160 && ch <= 191 {
		return ch + 32 // 192-223
	}
	return ch // 224-255 already separated
}

// handleVdu dispatches a completed multi-byte VDU sequence.
func (p *Parser) handleVdu(sink command.Sink) {
	q := p.vdu
	defer func() {
		p.vdu = p.vdu[:0]
		p.vduExpected = 0
	}()
	if len(q) == 0 {
		return
	}

	switch q[0] {
	case 17:
		// COLOUR n: < 128 foreground, >= 128 background
		c := q[1]
		if c < 128 {
			p.fg = c & 15
			sink.Emit(command.SGR{Attr: command.ForegroundAttr(command.BaseColor(p.fg))})
		} else {
			p.bg = (c - 128) & 15
			sink.Emit(command.SGR{Attr: command.BackgroundAttr(command.BaseColor(p.bg))})
		}
	case 22:
		// MODE n clears the screen
		p.resetState(sink)
		sink.Emit(command.EraseInDisplay{Mode: command.EraseDisplayAll})
		sink.Emit(command.CursorPosition{Row: 1, Col: 1})
	case 31:
		// TAB(x,y), zero-based
		sink.Emit(command.CursorPosition{Row: int(q[2]) + 1, Col: int(q[1]) + 1})
	default:
		// GCOL, palette, viewports, PLOT: consumed, no cell effect
	}
}
