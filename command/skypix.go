// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// SkypixOp is a SkyPix command number. SkyPix sequences look like
// CSI params ! with the first parameter selecting the command.
type SkypixOp uint8

const (
	SkypixComment          SkypixOp = 0
	SkypixSetPixel         SkypixOp = 1
	SkypixDrawLine         SkypixOp = 2
	SkypixAreaFill         SkypixOp = 3
	SkypixRectangleFill    SkypixOp = 4
	SkypixEllipse          SkypixOp = 5
	SkypixGrabBrush        SkypixOp = 6
	SkypixUseBrush         SkypixOp = 7
	SkypixMovePen          SkypixOp = 8
	SkypixPlaySample       SkypixOp = 9
	SkypixSetFont          SkypixOp = 10
	SkypixNewPalette       SkypixOp = 11
	SkypixResetPalette     SkypixOp = 12
	SkypixFilledEllipse    SkypixOp = 13
	SkypixDelay            SkypixOp = 14
	SkypixSetPenA          SkypixOp = 15
	SkypixCrcTransfer      SkypixOp = 16
	SkypixSetDisplayMode   SkypixOp = 17
	SkypixSetPenB          SkypixOp = 18
	SkypixPositionCursor   SkypixOp = 19
	SkypixControllerReturn SkypixOp = 21
	SkypixDefineGadget     SkypixOp = 22
	SkypixEndSkypix        SkypixOp = 23
	// SkypixResetFont is SetFont with size 0; it carries no name string.
	SkypixResetFont SkypixOp = 24
)

// SkypixCommand is one parsed SkyPix command. Args holds the numeric
// arguments after the command number; Text holds the string payload of
// Comment, SetFont and CrcTransfer.
type SkypixCommand struct {
	Op   SkypixOp
	Args []int
	Text []byte
}

func (SkypixCommand) cmd() {}

// Area fill modes for SkypixAreaFill.
const (
	SkypixFillToBorder = 0
	SkypixFillSameColor = 1
)

// CRC transfer modes for SkypixCrcTransfer.
const (
	SkypixCrcBrush    = 1
	SkypixCrcFont     = 2
	SkypixCrcSample   = 3
	SkypixCrcFileDone = 20
)

// ValidCrcTransferMode reports whether mode is a known CRC transfer mode.
func ValidCrcTransferMode(mode int) bool {
	switch mode {
	case SkypixCrcBrush, SkypixCrcFont, SkypixCrcSample, SkypixCrcFileDone:
		return true
	}
	return false
}

// ValidDisplayMode reports whether mode is legal for SetDisplayMode.
func ValidDisplayMode(mode int) bool { return mode == 1 || mode == 2 }
