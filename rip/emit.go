// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rip

import "github.com/ericwq/bbsterm/command"

// ripSpec describes the shape of one RIP command: the op tag, the
// minimum argument count, and whether a trailing text argument belongs
// to it.
type ripSpec struct {
	op      command.RipOp
	name    string
	minArgs int
	hasText bool
}

var level0Specs = map[byte]ripSpec{
	'w': {command.RipTextWindow, "RipTextWindow", 5, false},
	'v': {command.RipViewPort, "RipViewPort", 4, false},
	'*': {command.RipResetWindows, "RipResetWindows", 0, false},
	'e': {command.RipEraseWindow, "RipEraseWindow", 0, false},
	'E': {command.RipEraseView, "RipEraseView", 0, false},
	'g': {command.RipGotoXY, "RipGotoXY", 2, false},
	'H': {command.RipHome, "RipHome", 0, false},
	'>': {command.RipEraseEOL, "RipEraseEOL", 0, false},
	'c': {command.RipColor, "RipColor", 1, false},
	'Q': {command.RipSetPalette, "RipSetPalette", 0, false},
	'a': {command.RipOnePalette, "RipOnePalette", 2, false},
	'W': {command.RipWriteMode, "RipWriteMode", 1, false},
	'm': {command.RipMove, "RipMove", 2, false},
	'T': {command.RipText, "RipText", 0, true},
	'@': {command.RipTextXY, "RipTextXY", 2, true},
	'Y': {command.RipFontStyle, "RipFontStyle", 4, false},
	'X': {command.RipPixel, "RipPixel", 2, false},
	'L': {command.RipLine, "RipLine", 4, false},
	'R': {command.RipRectangle, "RipRectangle", 4, false},
	'B': {command.RipBar, "RipBar", 4, false},
	'C': {command.RipCircle, "RipCircle", 3, false},
	'O': {command.RipOval, "RipOval", 6, false},
	'o': {command.RipFilledOval, "RipFilledOval", 4, false},
	'A': {command.RipArc, "RipArc", 5, false},
	'V': {command.RipOvalArc, "RipOvalArc", 6, false},
	'I': {command.RipPieSlice, "RipPieSlice", 5, false},
	'i': {command.RipOvalPieSlice, "RipOvalPieSlice", 6, false},
	'Z': {command.RipBezier, "RipBezier", 9, false},
	'P': {command.RipPolygon, "RipPolygon", 0, false},
	'p': {command.RipFilledPolygon, "RipFilledPolygon", 0, false},
	'l': {command.RipPolyLine, "RipPolyLine", 0, false},
	'F': {command.RipFill, "RipFill", 3, false},
	'=': {command.RipLineStyle, "RipLineStyle", 3, false},
	'S': {command.RipFillStyle, "RipFillStyle", 2, false},
	's': {command.RipFillPattern, "RipFillPattern", 9, false},
	'$': {command.RipTextVariable, "RipTextVariable", 0, true},
	'#': {command.RipNoMore, "RipNoMore", 0, false},
}

var level1Specs = map[byte]ripSpec{
	'M':  {command.RipMouse, "RipMouse", 8, true},
	'K':  {command.RipMouseFields, "RipMouseFields", 0, false},
	'T':  {command.RipBeginText, "RipBeginText", 5, false},
	't':  {command.RipRegionText, "RipRegionText", 0, true},
	'E':  {command.RipEndText, "RipEndText", 0, false},
	'C':  {command.RipGetImage, "RipGetImage", 5, false},
	'P':  {command.RipPutImage, "RipPutImage", 4, false},
	'W':  {command.RipWriteIcon, "RipWriteIcon", 0, true},
	'I':  {command.RipLoadIcon, "RipLoadIcon", 5, true},
	'B':  {command.RipButtonStyle, "RipButtonStyle", 15, false},
	'U':  {command.RipButton, "RipButton", 7, true},
	'D':  {command.RipDefine, "RipDefine", 2, true},
	0x1b: {command.RipQuery, "RipQuery", 2, true},
	'G':  {command.RipCopyRegion, "RipCopyRegion", 6, false},
	'R':  {command.RipReadScene, "RipReadScene", 0, true},
	'F':  {command.RipFileQuery, "RipFileQuery", 0, true},
}

// emitCommand delivers the finished command, or an arity error when the
// parameter run was cut short.
func (p *Parser) emitCommand(sink command.Sink) {
	b := &p.b

	var spec ripSpec
	var found bool
	switch b.level {
	case 0:
		spec, found = level0Specs[b.cmdChar]
	case 1:
		spec, found = level1Specs[b.cmdChar]
	case 9:
		if b.cmdChar == 0x1b {
			spec = ripSpec{command.RipEnterBlockMode, "RipEnterBlockMode", 4, true}
			found = true
		}
	}
	if !found {
		// unknown command, nothing to emit
		return
	}

	if len(b.args) < spec.minArgs {
		sink.ReportError(command.ArityMismatch(spec.name, len(b.args)))
		return
	}

	cmd := command.RipCommand{Op: spec.op}
	args := b.args
	if spec.op == command.RipTextWindow && len(args) == 5 {
		// missing size digit defaults to zero
		args = append(args, 0)
	}
	if len(args) > 0 {
		cmd.Args = append([]int(nil), args...)
	}
	if spec.op == command.RipWriteIcon {
		cmd.Args = []int{int(b.char)}
	}
	if spec.hasText && len(b.text) > 0 {
		cmd.Text = append([]byte(nil), b.text...)
	}
	sink.EmitRip(cmd)
}
