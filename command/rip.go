// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// RipOp identifies a RIPscrip command. The grouping follows the RIPscrip
// 1.54 command levels: level 0 is the drawing set, level 1 is the
// button/file set, level 9 is the vendor escape.
type RipOp uint8

const (
	RipTextWindow RipOp = iota // w
	RipViewPort                // v
	RipResetWindows            // *
	RipEraseWindow             // e
	RipEraseView               // E
	RipGotoXY                  // g
	RipHome                    // H
	RipEraseEOL                // >
	RipColor                   // c
	RipSetPalette              // Q
	RipOnePalette              // a
	RipWriteMode               // W
	RipMove                    // m
	RipText                    // T
	RipTextXY                  // @
	RipFontStyle               // Y
	RipPixel                   // X
	RipLine                    // L
	RipRectangle               // R
	RipBar                     // B
	RipCircle                  // C
	RipOval                    // O
	RipFilledOval              // o
	RipArc                     // A
	RipOvalArc                 // V
	RipPieSlice                // I
	RipOvalPieSlice            // i
	RipBezier                  // Z
	RipPolygon                 // P
	RipFilledPolygon           // p
	RipPolyLine                // l
	RipFill                    // F
	RipLineStyle               // =
	RipFillStyle               // S
	RipFillPattern             // s
	RipMouse                   // 1M
	RipMouseFields             // 1K
	RipBeginText               // 1T
	RipRegionText              // 1t
	RipEndText                 // 1E
	RipGetImage                // 1C
	RipPutImage                // 1P
	RipWriteIcon               // 1W
	RipLoadIcon                // 1I
	RipButtonStyle             // 1B
	RipButton                  // 1U
	RipDefine                  // 1D
	RipQuery                   // 1ESC
	RipCopyRegion              // 1G
	RipReadScene               // 1R
	RipFileQuery               // 1F
	RipEnterBlockMode          // 9ESC
	RipTextVariable            // $
	RipNoMore                  // #
)

// RipCommand is one parsed RIPscrip command. Args holds the decoded
// base-36 parameters in declaration order; Text holds a trailing text
// argument when the command takes one.
type RipCommand struct {
	Op   RipOp
	Args []int
	Text []byte
}

func (RipCommand) cmd() {}

// RipWriteMode values for the W command.
const (
	RipModeNormal = 0
	RipModeXor    = 1
)

// RipFillStyleSolid and friends name the S command pattern selectors.
const (
	RipFillEmpty      = 0
	RipFillSolid      = 1
	RipFillLine       = 2
	RipFillLtSlash    = 3
	RipFillSlash      = 4
	RipFillBkSlash    = 5
	RipFillLtBkSlash  = 6
	RipFillHatch      = 7
	RipFillXHatch     = 8
	RipFillInterleave = 9
	RipFillWideDot    = 10
	RipFillCloseDot   = 11
	RipFillUser       = 12
)
