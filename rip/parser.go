// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package rip parses RIPscrip, the vector graphics dialect used by
// graphical BBSes. RIP commands start with !| and carry fixed-width
// base-36 parameters; everything outside a command falls through to the
// base ANSI parser.
package rip

import (
	"github.com/ericwq/bbsterm/ansi"
	"github.com/ericwq/bbsterm/command"
)

type state uint8

const (
	stDefault state = iota
	stGotExclaim
	stGotPipe
	stReadLevel1
	stReadLevel9
	stReadParams
	stSkipToEOL // backslash continuation, resumes saved state after newline
	stGotEscape
	stGotEscBracket
	stReadAnsiNumber
)

// Parser wraps the base ANSI parser with the RIPscrip command layer.
type Parser struct {
	inRip   bool
	enabled bool
	state   state
	resume  state // saved by stSkipToEOL
	digits  []byte
	b       builder
	ansi    *ansi.Parser
}

func NewParser() *Parser {
	return &Parser{
		enabled: true, // RIPscrip starts enabled, ESC[1! turns it off
		ansi:    ansi.NewParser(),
	}
}

// Ansi exposes the wrapped base parser for configuration.
func (p *Parser) Ansi() *ansi.Parser { return p.ansi }

func (p *Parser) Parse(input []byte, sink command.Sink) {
	for _, ch := range input {
		p.parseByte(ch, sink)
	}
}

func (p *Parser) Flush(sink command.Sink) {
	p.b.reset()
	p.state = stDefault
	p.ansi.Flush(sink)
}

func (p *Parser) parseByte(ch byte, sink command.Sink) {
	// backslash continues a command across lines
	if p.inRip && ch == '\\' {
		switch p.state {
		case stGotExclaim, stGotPipe, stReadLevel1, stReadLevel9, stReadParams:
			p.resume = p.state
			p.state = stSkipToEOL
			return
		}
	}

	switch p.state {
	case stDefault:
		switch {
		case ch == 0x1b:
			p.state = stGotEscape
		case ch == '!' && (p.inRip || p.enabled):
			p.inRip = true
			p.state = stGotExclaim
		default:
			p.inRip = false
			p.ansi.Parse([]byte{ch}, sink)
		}

	case stGotEscape:
		if ch == '[' {
			p.state = stGotEscBracket
		} else {
			p.state = stDefault
			p.ansi.Parse([]byte{0x1b, ch}, sink)
		}

	case stGotEscBracket:
		switch {
		case ch == '!':
			// ESC[! queries the terminal, same as ESC[0!
			sink.Request(command.RequestRipTerminalID)
			p.state = stDefault
		case ch >= '0' && ch <= '9':
			p.digits = append(p.digits[:0], ch)
			p.state = stReadAnsiNumber
		default:
			p.state = stDefault
			p.ansi.Parse([]byte{0x1b, '['}, sink)
			p.ansi.Parse([]byte{ch}, sink)
		}

	case stReadAnsiNumber:
		switch {
		case ch == '!':
			p.handleRipControl(sink)
			p.state = stDefault
		case ch >= '0' && ch <= '9':
			p.digits = append(p.digits, ch)
		default:
			p.state = stDefault
			p.ansi.Parse([]byte{0x1b, '['}, sink)
			p.ansi.Parse(p.digits, sink)
			p.ansi.Parse([]byte{ch}, sink)
		}

	case stGotExclaim:
		switch ch {
		case '!':
			// stay, double exclaim collapses
		case '|':
			p.state = stGotPipe
		case '\n', '\r':
			p.inRip = false
			p.state = stDefault
			p.ansi.Parse([]byte{ch}, sink)
		default:
			// not a RIP command after all
			p.inRip = false
			p.state = stDefault
			p.ansi.Parse([]byte{'!'}, sink)
			p.ansi.Parse([]byte{ch}, sink)
		}

	case stGotPipe:
		switch ch {
		case '1':
			p.b.level = 1
			p.state = stReadLevel1
		case '9':
			p.b.level = 9
			p.state = stReadLevel9
		case '#':
			p.b.level = 0
			p.b.cmdChar = '#'
			p.emitCommand(sink)
			p.b.reset()
			p.inRip = false
			p.state = stDefault
		default:
			p.b.level = 0
			p.b.cmdChar = ch
			p.state = stReadParams
		}

	case stReadLevel1, stReadLevel9:
		p.b.cmdChar = ch
		p.state = stReadParams

	case stReadParams:
		p.parseParams(ch, sink)

	case stSkipToEOL:
		if ch == '\n' {
			p.state = p.resume
		}
	}
}

// handleRipControl is ESC [ n !: 0 queries the terminal ID, 1 disables
// RIPscrip, 2 enables it, anything else belongs to the ANSI layer.
func (p *Parser) handleRipControl(sink command.Sink) {
	n := 0
	for _, d := range p.digits {
		n = n*10 + int(d-'0')
	}
	switch n {
	case 0:
		sink.Request(command.RequestRipTerminalID)
	case 1:
		p.enabled = false
	case 2:
		p.enabled = true
	default:
		p.ansi.Parse([]byte{0x1b, '['}, sink)
		p.ansi.Parse(p.digits, sink)
		p.ansi.Parse([]byte{'!'}, sink)
	}
}

// parseParams consumes one parameter byte of the current command.
func (p *Parser) parseParams(ch byte, sink command.Sink) {
	switch ch {
	case '\r':
		return
	case '\n':
		p.emitCommand(sink)
		p.b.reset()
		p.state = stDefault // still in RIP mode
		return
	case '|':
		p.emitCommand(sink)
		p.b.reset()
		p.state = stGotPipe
		return
	}

	done, ok := p.b.consume(ch)
	switch {
	case !ok:
		// bad parameter byte aborts the command and leaves RIP mode
		sink.ReportError(command.MalformedSequence("invalid RIP parameter"))
		p.b.reset()
		p.inRip = false
		p.state = stDefault
	case done:
		p.emitCommand(sink)
		p.b.reset()
		p.state = stGotExclaim
	}
}
