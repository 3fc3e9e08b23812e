// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import "github.com/ericwq/bbsterm/screen"

// GetPixel reads a pixel; out-of-range coordinates read as zero.
func (b *Bgi) GetPixel(x, y int) uint8 {
	return b.scr.Pixel(x, y)
}

// PutPixel writes one pixel through the viewport clip and the current
// write mode. Colors wrap at 16.
func (b *Bgi) PutPixel(x, y int, color uint8) {
	if !b.viewport.contains(x, y) {
		return
	}
	newIndex := color % 16
	if b.writeMode != ModeCopy {
		cur := b.scr.Pixel(x, y)
		switch b.writeMode {
		case ModeXor:
			newIndex = cur ^ color
		case ModeOr:
			newIndex = cur | color
		case ModeAnd:
			newIndex = cur & color
		case ModeNot:
			newIndex = ^color & 0x0f
		}
		newIndex %= 16
	}
	b.scr.SetPixel(x, y, newIndex)
}

// fillX draws one horizontal run of a styled line. The run picks up
// thickness vertically and walks the 16-bit line pattern at *offset.
func (b *Bgi) fillX(y, startX, count int, offset *int) {
	startY := y - b.thickness/2
	endY := startY + b.thickness - 1
	endX := startX + count
	if count > 0 {
		endX--
	} else {
		endX++
		*offset -= count
	}

	if startY < 0 {
		startY = 0
	}
	endY = min(endY, b.viewport.bottom-1)

	inc := 1
	if count < 0 {
		inc = -1
	}
	if startX > endX {
		startX, endX = endX, startX
	}
	if startX >= b.viewport.right {
		return
	}
	if startX < 0 {
		startX = 0
	}
	endX = min(endX, b.viewport.right-1)

	for x := startX; x <= endX; x++ {
		if b.linePattern[abs(*offset)%len(b.linePattern)] {
			for cy := startY; cy <= endY; cy++ {
				b.PutPixel(x, cy, b.color)
			}
		}
		*offset += inc
	}
	if count < 0 {
		*offset -= count
	}
}

// fillY is fillX for vertical runs.
func (b *Bgi) fillY(x, startY, count int, offset *int) {
	startX := x - b.thickness/2
	endX := startX + b.thickness - 1
	endY := startY + count
	if count > 0 {
		endY--
	} else {
		endY++
		*offset -= count
	}

	if startX < 0 {
		startX = 0
	}
	endX = min(endX, b.viewport.right-1)
	if startY > endY {
		startY, endY = endY, startY
	}
	if startY >= b.viewport.bottom {
		return
	}
	if startY < 0 {
		startY = 0
	}
	endY = min(endY, b.viewport.bottom-1)

	for y := startY; y <= endY; y++ {
		if b.linePattern[abs(*offset)%len(b.linePattern)] {
			for cx := startX; cx <= endX; cx++ {
				b.PutPixel(cx, y, b.color)
			}
		}
		*offset++
	}
	if count < 0 {
		*offset += count
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Line draws a styled, possibly thick line with the run-slicing
// variant of Bresenham: each scanline gets one horizontal (or
// vertical) run so the pattern and thickness stay even.
func (b *Bgi) Line(x1, y1, x2, y2 int) {
	yDelta := abs(y2 - y1)
	xDelta := abs(x2 - x1)
	offset := 0

	switch {
	case xDelta == 0:
		b.fillY(x1, min(y1, y2), yDelta+1, &offset)

	case yDelta == 0:
		b.fillX(y1, min(x1, x2), xDelta+1, &offset)

	case xDelta >= yDelta:
		var pos screen.Position
		var step int
		if y1 < y2 {
			pos = screen.Position{X: x1, Y: y1}
			step = 1
			if x1 > x2 {
				step = -1
			}
		} else {
			pos = screen.Position{X: x2, Y: y2}
			step = 1
			if x2 > x1 {
				step = -1
			}
		}

		wholeStep := (xDelta / yDelta) * step
		adjUp := xDelta % yDelta
		adjDown := yDelta * 2
		errTerm := adjUp - adjDown
		adjUp *= 2

		startLength := wholeStep/2 + step
		endLength := startLength
		if adjUp == 0 && wholeStep&1 == 0 {
			startLength -= step
		}
		if wholeStep&1 != 0 {
			errTerm += yDelta
		}

		b.fillX(pos.Y, pos.X, startLength, &offset)
		pos.X += startLength
		pos.Y++
		for i := 0; i < yDelta-1; i++ {
			runLength := wholeStep
			errTerm += adjUp
			if errTerm > 0 {
				runLength += step
				errTerm -= adjDown
			}
			b.fillX(pos.Y, pos.X, runLength, &offset)
			pos.X += runLength
			pos.Y++
		}
		b.fillX(pos.Y, pos.X, endLength, &offset)

	default:
		var pos screen.Position
		var advance int
		if y1 < y2 {
			pos = screen.Position{X: x1, Y: y1}
			advance = 1
			if x1 > x2 {
				advance = -1
			}
		} else {
			pos = screen.Position{X: x2, Y: y2}
			advance = 1
			if x2 > x1 {
				advance = -1
			}
		}

		wholeStep := yDelta / xDelta
		adjUp := yDelta % xDelta
		adjDown := xDelta * 2
		errTerm := adjUp - adjDown
		adjUp *= 2

		startLength := wholeStep/2 + 1
		endLength := startLength
		if adjUp == 0 && wholeStep&1 == 0 {
			startLength--
		}
		if wholeStep&1 != 0 {
			errTerm += xDelta
		}

		b.fillY(pos.X, pos.Y, startLength, &offset)
		pos.Y += startLength
		pos.X += advance
		for i := 0; i < xDelta-1; i++ {
			runLength := wholeStep
			errTerm += adjUp
			if errTerm > 0 {
				runLength++
				errTerm -= adjDown
			}
			b.fillY(pos.X, pos.Y, runLength, &offset)
			pos.Y += runLength
			pos.X += advance
		}
		b.fillY(pos.X, pos.Y, endLength, &offset)
	}
}

// drawLine is a plain one-pixel Bresenham in an explicit color. Button
// decorations use it so they ignore line style and thickness.
func (b *Bgi) drawLine(x0, y0, x1, y1 int, color uint8) {
	dx := abs(x0 - x1)
	dy := abs(y0 - y1)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	errTerm := dx - dy

	x, y := x0, y0
	for {
		b.PutPixel(x, y, color)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x += sx
		}
		if e2 < dx {
			errTerm += dx
			y += sy
		}
	}
}

// Rectangle outlines a rectangle with the current line style.
func (b *Bgi) Rectangle(left, top, right, bottom int) {
	b.Line(left, top, right, top)
	b.Line(left, bottom, right, bottom)
	b.Line(right, top, right, bottom)
	b.Line(left, top, left, bottom)
}

// Bar fills an inclusive rectangle with the current fill style.
func (b *Bgi) Bar(left, top, right, bottom int) {
	b.barRect(rectFrom(left, top, right-left+1, bottom-top+1))
}

func (b *Bgi) barRect(r rect) {
	r = r.intersect(b.viewport)
	if r.width() == 0 || r.height() == 0 {
		return
	}
	if b.fillStyle == FillSolid {
		for y := r.top; y < r.bottom; y++ {
			for x := r.left; x < r.right; x++ {
				b.scr.SetPixel(x, y, b.fillColor)
			}
		}
		return
	}

	pattern := b.fillPattern()
	ypat := ((r.top % 8) + 8) % 8
	for y := r.top; y < r.bottom; y++ {
		xpatmask := uint8(128 >> (((r.left % 8) + 8) % 8))
		row := pattern[ypat]
		for x := r.left; x < r.right; x++ {
			col := b.bkColor
			if row&xpatmask != 0 {
				col = b.fillColor
			}
			b.PutPixel(x, y, col)
			xpatmask >>= 1
			if xpatmask == 0 {
				xpatmask = 128
			}
		}
		ypat = (ypat + 1) % 8
	}
}

type savedPoint struct {
	x, y, oy int
}

// FloodFill paints the connected area around the start pixel with the
// current fill pattern, stopping at the edge color. Span-based with a
// visited bitmap so patterned fills never repaint a pixel.
func (b *Bgi) FloodFill(startX, startY int, edge uint8) {
	if !b.viewport.contains(startX, startY) {
		return
	}
	if b.scr.Pixel(startX, startY) == edge {
		return
	}

	pattern := b.fillPattern()
	vp := b.viewport
	width := vp.width()

	visited := make([]bool, vp.width()*vp.height())
	idx := func(x, y int) (int, bool) {
		if x < vp.left || x >= vp.right || y < vp.top || y >= vp.bottom {
			return 0, false
		}
		return (y-vp.top)*width + (x - vp.left), true
	}

	stack := []savedPoint{{x: startX, y: startY, oy: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !vp.contains(p.x, p.y) {
			continue
		}
		if b.scr.Pixel(p.x, p.y) == edge {
			continue
		}
		if i, ok := idx(p.x, p.y); ok && visited[i] {
			continue
		}

		// walk left to the span start
		scanX := p.x
		for scanX > vp.left {
			nx := scanX - 1
			if b.scr.Pixel(nx, p.y) == edge {
				break
			}
			if i, ok := idx(nx, p.y); ok && visited[i] {
				break
			}
			scanX--
		}

		vx := (vp.left + scanX) & 0x07
		vy := (vp.top + p.y) & 0x07
		prevY := p.y - 1
		nextY := p.y + 1
		iszero := pattern[vy] == 0

		prevActive := false
		nextActive := false

		for curX := scanX; curX < vp.right; curX++ {
			if b.scr.Pixel(curX, p.y) == edge {
				break
			}
			if i, ok := idx(curX, p.y); !ok || visited[i] {
				break
			}

			row := pattern[vy]
			bit := uint8(0x80) >> vx
			useFg := row&bit != 0
			col := b.bkColor
			if useFg {
				col = b.fillColor
			}
			b.PutPixel(curX, p.y, col)
			if i, ok := idx(curX, p.y); ok {
				visited[i] = true
			}

			// a zero pattern row still spawns; a set bit spawns
			if row == 0 || useFg {
				if prevY >= vp.top && !iszero {
					pp := b.scr.Pixel(curX, prevY)
					pv := true
					if i, ok := idx(curX, prevY); ok {
						pv = visited[i]
					}
					if prevActive {
						if pp == edge {
							prevActive = false
						}
					} else if curX > vp.left && curX < vp.right-1 && pp != edge && !pv {
						prevActive = true
						stack = append(stack, savedPoint{x: curX, y: prevY, oy: p.y})
					}
				}
				if nextY < vp.bottom && !iszero {
					np := b.scr.Pixel(curX, nextY)
					nv := true
					if i, ok := idx(curX, nextY); ok {
						nv = visited[i]
					}
					if nextActive {
						if np == edge {
							nextActive = false
						}
					} else if curX > vp.left && curX < vp.right-1 && np != edge && !nv {
						nextActive = true
						stack = append(stack, savedPoint{x: curX, y: nextY, oy: p.y})
					}
				}
			}

			vx = (vx + 1) & 0x07
		}
	}
}

type lineInfo struct {
	x1, x2, y int
}

type fillLineInfo struct {
	lineInfo
	dir int
}

// findLine scans left and right from x for the border color and
// returns the enclosed span. A span pinned to a screen edge with zero
// width reports nothing to fill.
func (b *Bgi) findLine(x, y int, border uint8) (lineInfo, bool) {
	w, _ := b.scr.PixelSize()

	endX := b.viewport.width()
	for ex := x; ex < b.viewport.width(); ex++ {
		if b.scr.Pixel(ex, y) == border {
			endX = ex
			break
		}
	}
	endX--

	startX := -1
	for sx := x - 1; sx >= 0; sx-- {
		if b.scr.Pixel(sx, y) == border {
			startX = sx
			break
		}
	}
	startX++

	if (startX == 0 || endX == w-1) && endX == startX {
		return lineInfo{}, false
	}
	return lineInfo{x1: startX, x2: endX, y: y}, true
}

// BorderFill is the scanline flood fill bounded by a border color: it
// collects whole spans per row, then bars them with the current fill.
func (b *Bgi) BorderFill(x, y int, border uint8) {
	if !b.viewport.contains(x, y) {
		return
	}
	fillLines := make([][]lineInfo, b.viewport.height())
	var stack []fillLineInfo

	if b.scr.Pixel(x, y) != border {
		li, ok := b.findLine(x, y, border)
		if ok {
			stack = append(stack,
				fillLineInfo{lineInfo: li, dir: 1},
				fillLineInfo{lineInfo: li, dir: -1})
			fillLines[li.y] = append(fillLines[li.y], li)

			for len(stack) > 0 {
				fli := stack[len(stack)-1]
				stack = stack[:len(stack)-1]

				curY := fli.y + fli.dir
				if curY >= b.viewport.bottom || curY < b.viewport.top {
					continue
				}
				for cx := fli.x1; cx <= fli.x2; cx++ {
					px := b.scr.Pixel(cx, curY)
					if px == border || (px == b.fillColor && b.fillStyle == FillSolid) {
						continue
					}
					if alreadyDrawn(fillLines, cx, curY) {
						continue
					}
					li, ok := b.findLine(cx, curY, border)
					if !ok {
						continue
					}
					cx = li.x2
					stack = append(stack, fillLineInfo{lineInfo: li, dir: fli.dir})
					if b.fillColor != 0 {
						// spans poking past the parent scan the
						// opposite direction too
						if li.x2 > fli.x2 {
							stack = append(stack, fillLineInfo{
								lineInfo: lineInfo{x1: fli.x2 + 1, x2: li.x2, y: li.y},
								dir:      -fli.dir,
							})
						}
						if li.x1 < fli.x1 {
							stack = append(stack, fillLineInfo{
								lineInfo: lineInfo{x1: li.x1, x2: fli.x1 - 1, y: li.y},
								dir:      -fli.dir,
							})
						}
					}
					fillLines[li.y] = append(fillLines[li.y], li)
				}
			}
		}
	}

	for _, row := range fillLines {
		for _, li := range row {
			b.Bar(li.x1, li.y, li.x2, li.y)
		}
	}
}

func alreadyDrawn(fillLines [][]lineInfo, x, y int) bool {
	if y < 0 || y >= len(fillLines) {
		return true
	}
	for _, li := range fillLines[y] {
		if y == li.y && x >= li.x1 && x <= li.x2 {
			return true
		}
	}
	return false
}
