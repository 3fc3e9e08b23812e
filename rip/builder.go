// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rip

// builder accumulates the fixed-width base-36 parameters of one RIP
// command. state counts consumed digits; most commands pack two digits
// per parameter.
type builder struct {
	level   uint8
	cmdChar byte
	state   int
	npoints int
	args    []int
	text    []byte
	char    byte
}

func (b *builder) reset() {
	b.level = 0
	b.cmdChar = 0
	b.state = 0
	b.npoints = 0
	b.args = b.args[:0]
	b.text = b.text[:0]
	b.char = 0
}

func base36Digit(ch byte) (int, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return int(ch - '0'), true
	case ch >= 'A' && ch <= 'Z':
		return int(ch-'A') + 10, true
	case ch >= 'a' && ch <= 'z':
		return int(ch-'a') + 10, true
	}
	return 0, false
}

func (b *builder) grow(idx int) {
	for len(b.args) <= idx {
		b.args = append(b.args, 0)
	}
}

// fixed consumes one digit of a run of two-digit parameters, finishing
// once state passes final.
func (b *builder) fixed(ch byte, idx, final int) (done, ok bool) {
	digit, ok := base36Digit(ch)
	if !ok {
		return false, false
	}
	b.grow(idx)
	if b.state%2 == 0 {
		b.args[idx] = digit
	} else {
		b.args[idx] = b.args[idx]*36 + digit
	}
	b.state++
	return b.state > final, true
}

// wide consumes one digit of a parameter that spans an arbitrary digit
// count, accumulating into args[idx].
func (b *builder) wide(ch byte, idx int) (int, bool) {
	digit, ok := base36Digit(ch)
	if !ok {
		return 0, false
	}
	b.grow(idx)
	b.args[idx] = b.args[idx]*36 + digit
	b.state++
	return digit, true
}

// consume feeds one parameter byte. done reports command completion,
// ok=false reports an illegal byte.
func (b *builder) consume(ch byte) (done, ok bool) {
	switch {
	// no-parameter commands complete on the first byte after the
	// command character; the byte itself is swallowed
	case b.level == 0 && (b.cmdChar == '*' || b.cmdChar == 'e' || b.cmdChar == 'E' ||
		b.cmdChar == 'H' || b.cmdChar == '>' || b.cmdChar == '#'):
		return true, true
	case b.level == 1 && (b.cmdChar == 'K' || b.cmdChar == 'E'):
		return true, true

	// text-only commands collect until the command terminator
	case b.level == 0 && (b.cmdChar == 'T' || b.cmdChar == '$'):
		b.text = append(b.text, ch)
		return false, true
	case b.level == 1 && (b.cmdChar == 'R' || b.cmdChar == 'F'):
		b.text = append(b.text, ch)
		return false, true

	// TextXY: 2 coordinates then text
	case b.level == 0 && b.cmdChar == '@':
		if b.state < 4 {
			_, ok := b.fixed(ch, b.state/2, 3)
			return false, ok
		}
		b.text = append(b.text, ch)
		return false, true

	// Button: 7 parameters then text
	case b.level == 1 && b.cmdChar == 'U':
		if b.state < 14 {
			_, ok := b.fixed(ch, b.state/2, 13)
			return false, ok
		}
		b.text = append(b.text, ch)
		return false, true

	// Mouse: five 2-digit fields, clk and clr single digits, a 5-digit
	// reserved field, then host command text
	case b.level == 1 && b.cmdChar == 'M':
		return b.consumeMouse(ch)

	// WriteIcon: one literal character then data
	case b.level == 1 && b.cmdChar == 'W':
		if b.state == 0 {
			b.char = ch
			b.state++
			return false, true
		}
		b.text = append(b.text, ch)
		return false, true

	// LoadIcon: 5 parameters then filename
	case b.level == 1 && b.cmdChar == 'I':
		if b.state < 10 {
			_, ok := b.fixed(ch, b.state/2, 9)
			return false, ok
		}
		b.text = append(b.text, ch)
		return false, true

	case b.level == 0 && (b.cmdChar == 'c' || b.cmdChar == 'W'):
		return b.fixed(ch, 0, 1)

	case b.level == 0 && (b.cmdChar == 'g' || b.cmdChar == 'm' || b.cmdChar == 'X' ||
		b.cmdChar == 'a' || b.cmdChar == 'S'):
		return b.fixed(ch, b.state/2, 3)

	case b.level == 0 && (b.cmdChar == 'C' || b.cmdChar == 'F'):
		return b.fixed(ch, b.state/2, 5)

	case b.level == 0 && (b.cmdChar == 'v' || b.cmdChar == 'L' || b.cmdChar == 'R' ||
		b.cmdChar == 'B' || b.cmdChar == 'o' || b.cmdChar == 'Y'):
		return b.fixed(ch, b.state/2, 7)

	// TextWindow: 4 coordinate pairs then wrap and size single digits
	case b.level == 0 && b.cmdChar == 'w':
		if b.state < 8 {
			return b.fixed(ch, b.state/2, 8)
		}
		digit, okDigit := base36Digit(ch)
		if !okDigit {
			return false, false
		}
		b.args = append(b.args, digit)
		b.state++
		return b.state > 9, true

	case b.level == 0 && (b.cmdChar == 'A' || b.cmdChar == 'I'):
		return b.fixed(ch, b.state/2, 9)

	case b.level == 0 && (b.cmdChar == 'O' || b.cmdChar == 'V' || b.cmdChar == 'i'):
		return b.fixed(ch, b.state/2, 11)

	case b.level == 0 && (b.cmdChar == 'Z' || b.cmdChar == 's'):
		return b.fixed(ch, b.state/2, 17)

	// LineStyle: style 2 digits, user pattern 4 digits, thickness 2
	case b.level == 0 && b.cmdChar == '=':
		var idx int
		switch {
		case b.state <= 1:
			idx = 0
		case b.state <= 5:
			idx = 1
		default:
			idx = 2
		}
		if _, ok := b.wide(ch, idx); !ok {
			return false, false
		}
		return b.state > 7, true

	// SetPalette: 16 colors, two digits each
	case b.level == 0 && b.cmdChar == 'Q':
		digit, okDigit := base36Digit(ch)
		if !okDigit {
			return false, false
		}
		if b.state%2 == 0 {
			b.args = append(b.args, digit)
		} else {
			b.args[len(b.args)-1] = b.args[len(b.args)-1]*36 + digit
		}
		b.state++
		return b.state >= 32, true

	// polygon family: point count then npoints x/y pairs
	case b.level == 0 && (b.cmdChar == 'P' || b.cmdChar == 'p' || b.cmdChar == 'l'):
		digit, okDigit := base36Digit(ch)
		if !okDigit {
			return false, false
		}
		if b.state < 2 {
			if b.state == 0 {
				b.npoints = digit
			} else {
				b.npoints = b.npoints*36 + digit
			}
			b.state++
			return false, true
		}
		if b.state%2 == 0 {
			b.args = append(b.args, digit)
		} else {
			b.args[len(b.args)-1] = b.args[len(b.args)-1]*36 + digit
		}
		b.state++
		return b.state >= 2+b.npoints*4, true

	case b.level == 1 && (b.cmdChar == 'T' || b.cmdChar == 'C' || b.cmdChar == 'P'):
		return b.fixed(ch, b.state/2, 9)

	// RegionText: justify digit then text
	case b.level == 1 && b.cmdChar == 't':
		if b.state == 0 {
			digit, okDigit := base36Digit(ch)
			if !okDigit {
				return false, false
			}
			b.args = append(b.args, digit)
			b.state++
			return false, true
		}
		b.text = append(b.text, ch)
		return false, true

	case b.level == 1 && b.cmdChar == 'B':
		return b.consumeButtonStyle(ch)

	case b.level == 1 && b.cmdChar == 'G':
		return b.fixed(ch, b.state/2, 11)

	// Define: flags 3 digits, reserved 2 digits, then text
	case b.level == 1 && b.cmdChar == 'D':
		switch {
		case b.state <= 2:
			_, ok := b.wide(ch, 0)
			return false, ok
		case b.state <= 4:
			_, ok := b.wide(ch, 1)
			return false, ok
		default:
			b.text = append(b.text, ch)
			return false, true
		}

	// Query: mode digit, reserved 3 digits, then text; a non-digit
	// anywhere in the numeric part starts the text early
	case b.level == 1 && b.cmdChar == 0x1b:
		if b.state <= 3 {
			digit, okDigit := base36Digit(ch)
			if !okDigit {
				b.text = append(b.text, ch)
				b.state = 4
				return false, true
			}
			b.grow(1)
			if b.state == 0 {
				b.args[0] = digit
			} else {
				b.args[1] = b.args[1]*36 + digit
			}
			b.state++
			return false, true
		}
		b.text = append(b.text, ch)
		return false, true

	// EnterBlockMode: mode, protocol, file type, reserved, then filename
	case b.level == 9 && b.cmdChar == 0x1b:
		if b.state < 8 {
			digit, okDigit := base36Digit(ch)
			if !okDigit {
				b.text = append(b.text, ch)
				b.state = 8
				return false, true
			}
			var idx int
			switch {
			case b.state <= 1:
				idx = b.state
			case b.state <= 3:
				idx = 2
			default:
				idx = 3
			}
			b.grow(idx)
			b.args[idx] = b.args[idx]*36 + digit
			b.state++
			return false, true
		}
		b.text = append(b.text, ch)
		return false, true
	}

	return false, false
}

func (b *builder) consumeMouse(ch byte) (done, ok bool) {
	if b.state > 16 {
		b.text = append(b.text, ch)
		return false, true
	}
	digit, okDigit := base36Digit(ch)
	if !okDigit {
		return false, false
	}
	b.grow(7)
	switch {
	case b.state <= 1:
		b.args[0] = b.args[0]*36 + digit
	case b.state <= 3:
		b.args[1] = b.args[1]*36 + digit
	case b.state <= 5:
		b.args[2] = b.args[2]*36 + digit
	case b.state <= 7:
		b.args[3] = b.args[3]*36 + digit
	case b.state <= 9:
		b.args[4] = b.args[4]*36 + digit
	case b.state == 10:
		b.args[5] = digit
	case b.state == 11:
		b.args[6] = digit
	default: // 12..16, 5-digit reserved field
		b.args[7] = b.args[7]*36 + digit
	}
	b.state++
	return false, true
}

// consumeButtonStyle walks the 37-digit ButtonStyle layout: three
// 2-digit fields, 4-digit flags, ten 2-digit fields, 7-digit reserved.
func (b *builder) consumeButtonStyle(ch byte) (done, ok bool) {
	digit, okDigit := base36Digit(ch)
	if !okDigit {
		return false, false
	}
	s := b.state
	switch {
	case s <= 5:
		idx := s / 2
		b.grow(idx)
		if s%2 == 0 {
			b.args[idx] = digit
		} else {
			b.args[idx] = b.args[idx]*36 + digit
		}
	case s <= 9:
		b.grow(3)
		b.args[3] = b.args[3]*36 + digit
	case s <= 29:
		idx := 4 + (s-10)/2
		b.grow(idx)
		if (s-10)%2 == 0 {
			b.args[idx] = digit
		} else {
			b.args[idx] = b.args[idx]*36 + digit
		}
	default: // 30..36, reserved field
		b.grow(14)
		b.args[14] = b.args[14]*36 + digit
	}
	b.state++
	return b.state > 36, true
}
