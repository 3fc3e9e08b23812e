// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package skypix parses SkyPix, the Amiga BBS graphics dialect.
//
// SkyPix rides on a restricted CSI syntax: ESC [ params ! selects a
// graphics command by its first parameter, while a letter final runs a
// small ANSI subset with Amiga palette mapping. Parameters are decimal
// and may be negative.
package skypix

import (
	"github.com/ericwq/bbsterm/command"
)

// amigaColorOffsets maps ANSI base colors (black, red, green, yellow,
// blue, magenta, cyan, white) to SkyPix palette indices.
var amigaColorOffsets = [8]uint8{0, 3, 4, 6, 1, 7, 5, 2}

type state uint8

const (
	stDefault state = iota
	stGotEscape
	stGotBracket
	stReadParams
	stReadString // text payload of Comment, SetFont and CrcTransfer
)

// builder accumulates the decimal parameters of one sequence.
type builder struct {
	params   []int
	cur      int
	hasParam bool
	negative bool
	cmdNum   int
	text     []byte
}

func (b *builder) reset() {
	b.params = b.params[:0]
	b.cur = 0
	b.hasParam = false
	b.negative = false
	b.cmdNum = 0
	b.text = b.text[:0]
}

func (b *builder) addDigit(d int) {
	b.cur = b.cur*10 + d
	b.hasParam = true
}

func (b *builder) setNegative() {
	b.negative = true
	b.hasParam = true
}

// pushParam finalizes the pending parameter, if any.
func (b *builder) pushParam() {
	if !b.hasParam {
		return
	}
	v := b.cur
	if b.negative {
		v = -v
	}
	b.params = append(b.params, v)
	b.cur = 0
	b.hasParam = false
	b.negative = false
}

// Parser is the SkyPix stream parser.
type Parser struct {
	state state
	b     builder
}

func NewParser() *Parser { return &Parser{} }

// Parse feeds input through the state machine, delivering commands and
// printable runs to sink.
func (p *Parser) Parse(input []byte, sink command.Sink) {
	i := 0
	printable := 0

	for i < len(input) {
		ch := input[i]

		if p.state == stDefault {
			switch ch {
			case 0x1b, 0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x7f:
				if i > printable {
					sink.Print(input[printable:i])
				}
				i++
				printable = i
				switch ch {
				case 0x1b:
					p.state = stGotEscape
					p.b.reset()
				case 0x07:
					sink.Emit(command.Bell{})
				case 0x08:
					sink.Emit(command.Backspace{})
				case 0x09:
					sink.Emit(command.Tab{})
				case 0x0a:
					sink.Emit(command.LineFeed{})
				case 0x0b:
					// CTRL-K moves the caret up one line in SkyPix
					sink.Emit(command.MoveCursor{Dir: command.Up, N: 1})
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

		p.step(ch, sink)
		i++
		printable = i
	}

	if p.state == stDefault && i > printable {
		sink.Print(input[printable:i])
	}
}

// Flush drops any sequence still pending at end of stream.
func (p *Parser) Flush(_ command.Sink) {
	p.b.reset()
	p.state = stDefault
}

// step consumes one in-sequence byte.
func (p *Parser) step(ch byte, sink command.Sink) {
	switch p.state {
	case stGotEscape:
		if ch == '[' {
			p.state = stGotBracket
		} else {
			// not a sequence after all, both bytes print
			sink.Print([]byte{0x1b})
			sink.Print([]byte{ch})
			p.state = stDefault
		}

	case stGotBracket:
		switch {
		case ch >= '0' && ch <= '9':
			p.b.addDigit(int(ch - '0'))
			p.state = stReadParams
		case ch == '-':
			p.b.setNegative()
			p.state = stReadParams
		case ch == '!':
			// bare CSI !, command number zero
			p.emitSkypix(sink)
			p.state = stDefault
		case isAlpha(ch):
			p.emitAnsi(ch, sink)
			p.state = stDefault
		default:
			sink.ReportError(command.MalformedSequence("invalid character after CSI"))
			p.state = stDefault
		}

	case stReadParams:
		switch {
		case ch >= '0' && ch <= '9':
			p.b.addDigit(int(ch - '0'))
		case ch == '-':
			p.b.setNegative()
		case ch == ';':
			p.b.pushParam()
		case ch == '!':
			p.terminateSkypix(sink)
		case isAlpha(ch):
			p.emitAnsi(ch, sink)
			p.state = stDefault
		default:
			sink.ReportError(command.MalformedSequence("invalid character in CSI parameter sequence"))
			p.state = stDefault
		}

	case stReadString:
		if ch == '!' {
			p.emitSkypix(sink)
			p.state = stDefault
		} else {
			p.b.text = append(p.b.text, ch)
		}
	}
}

// terminateSkypix handles the ! terminator after parameters: the first
// parameter becomes the command number, and the string commands switch
// to text collection instead of emitting.
func (p *Parser) terminateSkypix(sink command.Sink) {
	p.b.pushParam()
	if len(p.b.params) == 0 {
		p.emitSkypix(sink)
		p.state = stDefault
		return
	}

	p.b.cmdNum = p.b.params[0]
	p.b.params = p.b.params[1:]

	switch command.SkypixOp(p.b.cmdNum) {
	case command.SkypixComment, command.SkypixSetFont, command.SkypixCrcTransfer:
		// SetFont size 0 is a font reset and carries no name
		if command.SkypixOp(p.b.cmdNum) == command.SkypixSetFont &&
			len(p.b.params) > 0 && p.b.params[0] == 0 {
			p.emitSkypix(sink)
			p.state = stDefault
			return
		}
		p.state = stReadString
	default:
		p.emitSkypix(sink)
		p.state = stDefault
	}
}

func isAlpha(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}
