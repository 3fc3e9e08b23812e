// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ansi

import (
	"bytes"
	"encoding/base64"
	"strconv"

	"github.com/ericwq/bbsterm/command"
)

var ctermFontPrefix = []byte("CTerm:Font:")

// parseDcs dispatches a complete DCS payload: CTerm font loads, DECDMAC
// macro definitions, and sixel graphics.
func (p *Parser) parseDcs(sink command.Sink) {
	if bytes.HasPrefix(p.buf, ctermFontPrefix) {
		p.parseCtermFont(sink)
		return
	}

	// leading numeric parameters before the discriminating byte
	p.params = p.params[:0]
	p.params = append(p.params, 0)
	i := 0
scan:
	for i < len(p.buf) {
		switch b := p.buf[i]; {
		case b >= '0' && b <= '9':
			n := len(p.params) - 1
			p.params[n] = int(uint16(p.params[n])*10 + uint16(b-'0'))
		case b == ';':
			p.params = append(p.params, 0)
		default:
			break scan
		}
		i++
	}

	// DECDMAC macro definition: ESC P Pid;Pdt;Pen ! z data ST
	if i+2 < len(p.buf) && p.buf[i] == '!' && p.buf[i+1] == 'z' {
		p.defineMacro(p.buf[i+2:])
		return
	}

	// sixel: ESC P Pa;Pb;Ph q data ST
	if i < len(p.buf) && p.buf[i] == 'q' {
		var scale int
		switch p.param(0, 0) {
		case 0, 1, 5, 6:
			scale = 2
		case 2:
			scale = 5
		case 3, 4:
			scale = 3
		default:
			scale = 1
		}
		data := make([]byte, len(p.buf)-i-1)
		copy(data, p.buf[i+1:])
		sink.DeviceControl(command.DeviceControl{
			Kind:          command.DcsSixel,
			Data:          data,
			VerticalScale: scale,
		})
		return
	}

	sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
}

func (p *Parser) parseCtermFont(sink command.Sink) {
	rest := p.buf[len(ctermFontPrefix):]
	colon := bytes.IndexByte(rest, ':')
	if colon >= 0 {
		if slot, err := strconv.Atoi(string(rest[:colon])); err == nil {
			decoded, err := base64.StdEncoding.DecodeString(string(rest[colon+1:]))
			if err != nil {
				sink.ReportError(command.MalformedSequence("Invalid base64 in DCS font data"))
				return
			}
			sink.DeviceControl(command.DeviceControl{
				Kind: command.DcsLoadFont,
				Slot: slot,
				Data: decoded,
			})
			return
		}
	}
	sink.ReportError(command.MalformedSequence("Unknown or malformed DCS sequence"))
}

// defineMacro stores a macro body. Pdt 1 deletes all stored macros
// first; encoding 1 is the hex form with !{count};{data}; repeats.
func (p *Parser) defineMacro(body []byte) {
	pid := p.param(0, 0)
	pdt := p.param(1, 0)
	encoding := p.param(2, 0)

	if pdt == 1 {
		p.macros = make(map[int][]byte)
	}

	switch encoding {
	case 0:
		data := make([]byte, len(body))
		copy(data, body)
		p.macros[pid] = data
	case 1:
		if decoded, ok := decodeHexMacro(body); ok {
			p.macros[pid] = decoded
		}
	}
}

func decodeHexMacro(data []byte) ([]byte, bool) {
	var result []byte
	i := 0
	repeatCount := 0
	inRepeat := false
	repeatStart := 0

	for i < len(data) {
		switch {
		case data[i] == '!':
			i++
			repeatCount = 0
			for i < len(data) && data[i] >= '0' && data[i] <= '9' {
				repeatCount = repeatCount*10 + int(data[i]-'0')
				i++
			}
			if i < len(data) && data[i] == ';' {
				i++
				inRepeat = true
				repeatStart = len(result)
			}
		case inRepeat && data[i] == ';':
			result = repeatTail(result, repeatStart, repeatCount)
			inRepeat = false
			i++
		case i+1 < len(data):
			hi, ok1 := hexDigit(data[i])
			lo, ok2 := hexDigit(data[i+1])
			if !ok1 || !ok2 {
				return nil, false
			}
			result = append(result, hi<<4|lo)
			i += 2
		default:
			i++
		}
	}

	if inRepeat {
		result = repeatTail(result, repeatStart, repeatCount)
	}
	return result, true
}

// repeatTail appends count-1 extra copies of result[start:].
func repeatTail(result []byte, start, count int) []byte {
	section := append([]byte(nil), result[start:]...)
	for n := 1; n < count; n++ {
		result = append(result, section...)
	}
	return result
}

func hexDigit(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

// invokeMacro replays a stored macro through the parser from ground
// state.
func (p *Parser) invokeMacro(id int, sink command.Sink) {
	data, ok := p.macros[id]
	if !ok || p.depth >= maxMacroDepth {
		return
	}
	p.depth++
	p.Parse(data, sink)
	p.depth--
}

// emitOsc splits the buffered OSC payload into Ps ; Pt and dispatches
// the commands this module understands: title, icon name, hyperlink.
func (p *Parser) emitOsc(sink command.Sink) {
	if len(p.buf) == 0 {
		return
	}

	if semi := bytes.IndexByte(p.buf, ';'); semi >= 0 {
		if ps, err := strconv.Atoi(string(p.buf[:semi])); err == nil {
			text := p.buf[semi+1:]
			switch ps {
			case 0:
				sink.Osc(command.OperatingSystemCommand{Kind: command.OscSetTitle, Text: copyBytes(text)})
				return
			case 1:
				sink.Osc(command.OperatingSystemCommand{Kind: command.OscSetIconName, Text: copyBytes(text)})
				return
			case 2:
				sink.Osc(command.OperatingSystemCommand{Kind: command.OscSetWindowTitle, Text: copyBytes(text)})
				return
			case 8:
				// OSC 8 ; params ; URI
				if uriPos := bytes.IndexByte(text, ';'); uriPos >= 0 {
					sink.Osc(command.OperatingSystemCommand{
						Kind:   command.OscHyperlink,
						Params: copyBytes(text[:uriPos]),
						URI:    copyBytes(text[uriPos+1:]),
					})
				}
				return
			}
		}
	}

	sink.ReportError(command.MalformedSequence("Unknown or malformed escape sequence"))
}

func copyBytes(b []byte) []byte {
	return append([]byte(nil), b...)
}
