// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ansi

import "github.com/ericwq/bbsterm/command"

type musicState uint8

const (
	musDefault musicState = iota
	musStyle
	musTempo
	musOctave
	musNote
	musNoteNum
	musLength
	musPause
)

// musicParser accumulates one ANSI music score. Tempo, octave and note
// length persist across scores; the octave snaps back to 3 when a score
// ends.
type musicParser struct {
	st      musicState
	tempo   int
	octave  int
	length  int
	note    int
	num     int
	dotted  bool
	actions []command.MusicAction
}

func (m *musicParser) init() {
	m.tempo = 120
	m.octave = 3
	m.length = 4
}

func (m *musicParser) begin() {
	m.st = musStyle
	m.dotted = false
	m.actions = nil
}

func (m *musicParser) push(a command.MusicAction) {
	m.actions = append(m.actions, a)
}

// parseMusic consumes one byte of a music score. The score runs until
// SO (0x0E), which delivers the collected actions through PlayMusic.
func (p *Parser) parseMusic(b byte, sink command.Sink) {
	m := &p.mus

	switch m.st {
	case musStyle:
		m.st = musDefault
		switch b {
		case 'F':
			m.push(command.MusicAction{Kind: command.MusicSetStyle, Style: command.MusicForeground})
		case 'B':
			m.push(command.MusicAction{Kind: command.MusicSetStyle, Style: command.MusicBackground})
		case 'N':
			m.push(command.MusicAction{Kind: command.MusicSetStyle, Style: command.MusicNormal})
		case 'L':
			m.push(command.MusicAction{Kind: command.MusicSetStyle, Style: command.MusicLegato})
		case 'S':
			m.push(command.MusicAction{Kind: command.MusicSetStyle, Style: command.MusicStaccato})
		default:
			p.parseMusic(b, sink)
		}

	case musTempo:
		if b >= '0' && b <= '9' {
			m.num = m.num*10 + int(b-'0')
		} else {
			m.tempo = clamp(m.num, 32, 255)
			m.st = musDefault
			p.musicDefault(b, sink)
		}

	case musOctave:
		if b >= '0' && b <= '6' {
			m.octave = int(b - '0')
			m.st = musDefault
		} else {
			sink.ReportError(command.InvalidParameter("MusicOctave", int(b)))
			m.st = musDefault
		}

	case musNote:
		switch {
		case b == '+' || b == '#':
			if m.note+1 < len(command.NoteFreq) {
				m.note++
			}
		case b == '-':
			if m.note > 0 {
				m.note--
			}
		case b >= '0' && b <= '9':
			m.num = m.num*10 + int(b-'0')
		case b == '.':
			m.num = m.num * 3 / 2
			m.dotted = true
		default:
			length := m.num
			if length == 0 {
				length = m.length
			}
			idx := m.note + m.octave*12
			if idx >= len(command.NoteFreq) {
				idx = len(command.NoteFreq) - 1
			}
			m.push(command.MusicAction{
				Kind:   command.MusicPlayNote,
				Freq:   command.NoteFreq[idx],
				Length: m.tempo * length,
				Dotted: m.dotted,
			})
			m.dotted = false
			m.st = musDefault
			p.musicDefault(b, sink)
		}

	case musNoteNum:
		if b >= '0' && b <= '9' {
			m.num = m.num*10 + int(b-'0')
		} else {
			idx := clamp(m.num, 0, len(command.NoteFreq)-1)
			m.push(command.MusicAction{
				Kind:   command.MusicPlayNote,
				Freq:   command.NoteFreq[idx],
				Length: m.tempo * m.length,
			})
			m.dotted = false
			m.st = musDefault
			p.musicDefault(b, sink)
		}

	case musLength:
		switch {
		case b >= '0' && b <= '9':
			m.num = m.num*10 + int(b-'0')
		case b == '.':
			m.num = m.num * 3 / 2
		default:
			m.length = clamp(m.num, 1, 64)
			m.st = musDefault
			p.musicDefault(b, sink)
		}

	case musPause:
		switch {
		case b >= '0' && b <= '9':
			m.num = m.num*10 + int(b-'0')
		case b == '.':
			m.num = m.num * 3 / 2
		default:
			pause := clamp(m.num, 1, 64)
			m.push(command.MusicAction{Kind: command.MusicPause, Length: m.tempo * pause})
			m.st = musDefault
			p.musicDefault(b, sink)
		}

	default:
		p.musicDefault(b, sink)
	}
}

func (p *Parser) musicDefault(b byte, sink command.Sink) {
	m := &p.mus

	switch b {
	case 0x0e:
		// SO terminates the score
		actions := m.actions
		m.actions = nil
		m.octave = 3
		p.state = ground
		sink.PlayMusic(command.Music{Actions: actions})
	case 'T':
		m.st = musTempo
		m.num = 0
	case 'L':
		m.st = musLength
		m.num = 0
	case 'O':
		m.st = musOctave
	case 'C':
		m.st, m.note, m.num = musNote, 0, 0
	case 'D':
		m.st, m.note, m.num = musNote, 2, 0
	case 'E':
		m.st, m.note, m.num = musNote, 4, 0
	case 'F':
		m.st, m.note, m.num = musNote, 5, 0
	case 'G':
		m.st, m.note, m.num = musNote, 7, 0
	case 'A':
		m.st, m.note, m.num = musNote, 9, 0
	case 'B':
		m.st, m.note, m.num = musNote, 11, 0
	case 'M':
		m.st = musStyle
	case 'N':
		m.st = musNoteNum
		m.num = 0
	case '<':
		if m.octave > 0 {
			m.octave--
		}
	case '>':
		if m.octave < 6 {
			m.octave++
		}
	case 'P':
		m.st = musPause
		m.num = 0
	}
}
