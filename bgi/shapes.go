// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bgi

import (
	"math"
	"sort"

	"github.com/ericwq/bbsterm/screen"
)

const (
	rad2deg = 180.0 / math.Pi
	deg2rad = math.Pi / 180.0
)

// scanRows collects the x hits per scanline for the polygon and
// ellipse fills. Row 0 holds y = -1; the table covers -1..350.
type scanRows [][]int

func newScanRows() scanRows {
	return make(scanRows, 352)
}

func (r *scanRows) add(x, y int) {
	if y < -1 || y > 350 {
		return
	}
	y++
	for len(*r) <= y {
		*r = append(*r, nil)
	}
	(*r)[y] = append((*r)[y], x)
}

// scanLine interpolates one polygon edge into the rows. full also
// records both endpoints, which the sector fill needs for its spokes.
func (r *scanRows) scanLine(start, end screen.Position, full bool) {
	yDelta := abs(end.Y - start.Y)

	if full || start.Y < end.Y {
		r.add(start.X, start.Y)
	}
	if yDelta > 0 {
		xDelta := end.X - start.X
		minX := start.X
		if start.Y > end.Y {
			xDelta = start.X - end.X
			minX = end.X
		}
		posY := min(start.Y, end.Y) + 1
		for count := 1; count < yDelta; count++ {
			posX := xDelta*count/yDelta + minX
			if posY >= 0 && posY < len(*r) {
				r.add(posX, posY)
			}
			posY++
		}
	}
	if full || end.Y < start.Y {
		r.add(end.X, end.Y)
	}
}

// fillScan bars each row between its leftmost and rightmost hit.
func (b *Bgi) fillScan(rows scanRows) {
	for y := 0; y < len(rows)-2; y++ {
		row := rows[y+1]
		if len(row) == 0 {
			continue
		}
		sort.Ints(row)
		b.Bar(row[0], y, row[len(row)-1], y)
	}
}

// drawScan outlines each row's hits in the current pen color.
func (b *Bgi) drawScan(rows scanRows) {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		y := i - 1
		row = dedupInts(row)
		for _, x := range row {
			b.PutPixel(x, y, b.color)
		}
	}
}

func dedupInts(in []int) []int {
	out := in[:0]
	for i, v := range in {
		if i == 0 || v != in[i-1] {
			out = append(out, v)
		}
	}
	return out
}

// Bezier draws the cubic through the four control points with cnt
// segments.
func (b *Bgi) Bezier(x1, y1, x2, y2, x3, y3, x4, y4, cnt int) {
	targets := []int{x1, y1}
	for step := 1; step < cnt; step++ {
		tf := float64(step) / float64(cnt)
		tr := float64(cnt-step) / float64(cnt)
		tfs := tf * tf
		tfstr := tfs * tr
		tfc := tf * tf * tf
		trs := tr * tr
		tftrs := tf * trs
		trc := tr * tr * tr

		x := trc*float64(x1) + 3.0*tftrs*float64(x2) + 3.0*tfstr*float64(x3) + tfc*float64(x4)
		y := trc*float64(y1) + 3.0*tftrs*float64(y2) + 3.0*tfstr*float64(y3) + tfc*float64(y4)
		targets = append(targets, int(x), int(y))
	}
	targets = append(targets, x4, y4)

	for j := 2; j < len(targets); j += 2 {
		b.Line(targets[j-2], targets[j-1], targets[j], targets[j+1])
	}
}

// DrawPoly outlines a closed polygon.
func (b *Bgi) DrawPoly(points []screen.Position) {
	if len(points) == 0 {
		return
	}
	last := points[0]
	for _, p := range points {
		b.Line(last.X, last.Y, p.X, p.Y)
		last = p
	}
	b.Line(last.X, last.Y, points[0].X, points[0].Y)
}

// DrawPolyLine draws an open polyline.
func (b *Bgi) DrawPolyLine(points []screen.Position) {
	if len(points) == 0 {
		return
	}
	last := points[0]
	for _, p := range points {
		b.Line(last.X, last.Y, p.X, p.Y)
		last = p
	}
}

// FillPoly fills a polygon by even-odd scan conversion, then outlines
// it when the pen is not black.
func (b *Bgi) FillPoly(points []screen.Position) {
	if len(points) <= 1 {
		return
	}
	if !b.viewport.contains(points[0].X, points[0].Y) {
		return
	}

	rows := newScanRows()
	for i := 1; i < len(points); i++ {
		rows.scanLine(points[i-1], points[i], false)
	}
	rows.scanLine(points[len(points)-1], points[0], false)

	if b.fillStyle != FillEmpty {
		for i := 1; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 {
				continue
			}
			y := i - 1
			sort.Ints(row)
			on := false
			lastX := -1
			for _, curX := range row {
				if on {
					b.Bar(lastX, y, curX, y)
				}
				on = !on
				lastX = curX
			}
		}
	}
	if b.color != 0 {
		b.DrawPoly(points)
	}
}

// ellipsePlot visits every rasterized ellipse point within the angle
// range. McIlroy's midpoint walk; angles are degrees counterclockwise
// from three o'clock, and an end below the start inverts the range.
func ellipsePlot(x, y, startAngle, endAngle, radiusX, radiusY int, plot func(px, py int)) {
	if radiusY == 0 {
		radiusY = 1
		radiusX--
	}
	if radiusX <= 0 {
		radiusX = 1
	}

	ex, ey := 0, radiusY
	a2 := int64(radiusX) * int64(radiusX)
	b2 := int64(radiusY) * int64(radiusY)
	crit1 := -(a2/4 + int64(radiusX%2) + b2)
	crit2 := -(b2/4 + int64(radiusY%2) + a2)
	crit3 := -(b2/4 + int64(radiusY%2))
	t := -(a2 * int64(ey))
	dxt := int64(0)
	dyt := -2 * a2 * int64(ey)
	d2xt := 2 * b2
	d2yt := 2 * a2

	inv := endAngle < startAngle
	inRange := func(angle int) bool {
		if inv {
			return angle <= endAngle || angle >= startAngle
		}
		return angle >= startAngle && angle <= endAngle
	}

	skip := false
	for ey >= 0 && ex <= radiusX {
		angle := 90
		if ey != 0 {
			deg := math.Atan(float64(ex)/float64(ey)) * rad2deg
			angle = int(math.Round(90.0 - deg))
		}

		if !skip {
			if ex != 0 || ey != 0 {
				if inRange(180 - angle) {
					plot(x-ex, y-ey)
				}
			}
			if ex != 0 && ey != 0 {
				if inRange(angle) {
					plot(x+ex, y-ey)
				}
				if inRange(180 + angle) {
					plot(x-ex, y+ey)
				}
			}
			if inRange(360 - angle) {
				plot(x+ex, y+ey)
			}
		}
		skip = false

		// corner moves plot twice at the same angle; skip suppresses
		// the duplicate
		switch {
		case t+b2*int64(ex) <= crit1 || t+a2*int64(ey) <= crit3:
			ex++
			dxt += d2xt
			t += dxt
			if !(t+b2*int64(ex) <= crit1 || t+a2*int64(ey) <= crit3) && t-a2*int64(ey) > crit2 {
				skip = true
			}
		case t-a2*int64(ey) > crit2:
			ey--
			dyt += d2yt
			t += dyt
			if t+b2*int64(ex) <= crit1 || t+a2*int64(ey) <= crit3 {
				skip = true
			}
		default:
			ex++
			dxt += d2xt
			t += dxt
			ey--
			dyt += d2yt
			t += dyt
		}
	}
}

// Ellipse draws an elliptical arc. Thickness 3 adds the inner and
// outer rings.
func (b *Bgi) Ellipse(x, y, startAngle, endAngle, radiusX, radiusY int) {
	ellipsePlot(x, y, startAngle, endAngle, radiusX, radiusY, func(px, py int) {
		b.PutPixel(px, py, b.color)
	})

	if b.thickness == 3 {
		old := b.thickness
		b.thickness = 1
		if radiusX > 1 && radiusY > 1 {
			b.Ellipse(x, y, startAngle, endAngle, radiusX-1, radiusY-1)
		}
		b.Ellipse(x, y, startAngle, endAngle, radiusX+1, radiusY+1)
		b.thickness = old
	}
}

func (b *Bgi) scanEllipse(x, y, startAngle, endAngle, radiusX, radiusY int, rows *scanRows) {
	ellipsePlot(x, y, startAngle, endAngle, radiusX, radiusY, func(px, py int) {
		rows.add(px, py)
	})
}

// FillEllipse fills the full ellipse and outlines it.
func (b *Bgi) FillEllipse(x, y, startAngle, endAngle, radiusX, radiusY int) {
	rows := newScanRows()
	b.scanEllipse(x, y, startAngle, endAngle, radiusX, radiusY, &rows)
	b.fillScan(rows)
	b.drawScan(rows)
}

// Circle draws an aspect-corrected circle.
func (b *Bgi) Circle(x, y, radius int) {
	b.Ellipse(x, y, 0, 360, radius, int(float64(radius)*aspect))
}

// Arc draws an aspect-corrected circular arc.
func (b *Bgi) Arc(x, y, startAngle, endAngle, radius int) {
	b.Ellipse(x, y, startAngle, endAngle, radius, int(math.Round(float64(radius)*aspect)))
}

// anglePoint is the arc endpoint at an angle, in screen coordinates
// with y growing downward.
func anglePoint(angle, radiusX, radiusY int) screen.Position {
	return screen.Position{
		X: int(math.Round(math.Cos(float64(angle)*deg2rad) * float64(radiusX))),
		Y: -int(math.Round(math.Sin(float64(angle)*deg2rad) * float64(radiusY))),
	}
}

// Sector fills an elliptical pie wedge and draws its outline plus the
// two spokes to the center.
func (b *Bgi) Sector(x, y, startAngle, endAngle, radiusX, radiusY int) {
	center := screen.Position{X: x, Y: y}
	sp := anglePoint(startAngle, radiusX, radiusY)
	ep := anglePoint(endAngle, radiusX, radiusY)
	startPoint := screen.Position{X: center.X + sp.X, Y: center.Y + sp.Y}
	endPoint := screen.Position{X: center.X + ep.X, Y: center.Y + ep.Y}

	oldThickness := b.thickness
	if b.lineStyle != LineSolid {
		b.SetLineThickness(1)
	}

	rows := newScanRows()
	b.scanEllipse(x, y, startAngle, endAngle, radiusX, radiusY, &rows)
	rows.scanLine(center, startPoint, true)
	rows.scanLine(center, endPoint, true)

	if b.fillStyle != FillEmpty {
		b.fillScan(rows)
	}

	if b.lineStyle == LineSolid {
		// the fill consumed the rows, rebuild them for the outline
		rows = newScanRows()
		b.scanEllipse(x, y, startAngle, endAngle, radiusX, radiusY, &rows)
		b.drawScan(rows)
	} else {
		b.SetLineThickness(oldThickness)
	}

	b.Line(center.X, center.Y, startPoint.X, startPoint.Y)
	b.Line(center.X, center.Y, endPoint.X, endPoint.Y)
}

// PieSlice is Sector with the aspect-corrected circular radius.
func (b *Bgi) PieSlice(x, y, startAngle, endAngle, radius int) {
	b.Sector(x, y, startAngle, endAngle, radius, int(float64(radius)*aspect))
}
