// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// EraseDisplayMode selects what ED (CSI n J) clears.
type EraseDisplayMode uint8

const (
	EraseDisplayToEnd EraseDisplayMode = iota // cursor to end of display
	EraseDisplayToCursor
	EraseDisplayAll
	EraseDisplayAllAndScrollback
)

// EraseDisplayModeFrom validates the ED selector.
func EraseDisplayModeFrom(n int) (EraseDisplayMode, bool) {
	if n < 0 || n > 3 {
		return EraseDisplayToEnd, false
	}
	return EraseDisplayMode(n), true
}

// EraseLineMode selects what EL (CSI n K) clears.
type EraseLineMode uint8

const (
	EraseLineToEnd EraseLineMode = iota
	EraseLineToCursor
	EraseLineAll
)

// EraseLineModeFrom validates the EL selector.
func EraseLineModeFrom(n int) (EraseLineMode, bool) {
	if n < 0 || n > 2 {
		return EraseLineToEnd, false
	}
	return EraseLineMode(n), true
}

// StatusReport is the DSR (CSI n n) report type.
type StatusReport uint8

const (
	ReportOperatingStatus StatusReport = 5
	ReportCursorPosition  StatusReport = 6
)

// StatusReportFrom validates the DSR selector.
func StatusReportFrom(n int) (StatusReport, bool) {
	switch n {
	case 5, 6:
		return StatusReport(n), true
	}
	return 0, false
}

// Mode is a standard ANSI mode for SM/RM. Only IRM is recognized.
type Mode uint8

const (
	// ModeInsertReplace is IRM (mode 4). Set: received characters are
	// inserted, pushing the line right. Reset: they overwrite.
	ModeInsertReplace Mode = 4
)

// ModeFrom validates an SM/RM parameter.
func ModeFrom(n int) (Mode, bool) {
	if n == 4 {
		return ModeInsertReplace, true
	}
	return 0, false
}

// PrivateMode is a DEC private mode for DECSET/DECRST (CSI ? n h/l).
type PrivateMode uint16

const (
	ModeSmoothScroll  PrivateMode = 4  // DECSCLM
	ModeOrigin        PrivateMode = 6  // DECOM: caret addressing relative to the scroll region
	ModeAutoWrap      PrivateMode = 7  // DECAWM
	ModeX10Mouse      PrivateMode = 9
	ModeCursorVisible PrivateMode = 25 // DECTCEM
	ModeIceColors     PrivateMode = 33 // background intensity instead of blink
	ModeCursorBlink   PrivateMode = 35 // ATT610, set stops the blink
	ModeLeftRight     PrivateMode = 69 // DECLRMM

	ModeVT200Mouse          PrivateMode = 1000
	ModeVT200HighlightMouse PrivateMode = 1001
	ModeButtonEventMouse    PrivateMode = 1002
	ModeAnyEventMouse       PrivateMode = 1003
	ModeFocusEvent          PrivateMode = 1004
	ModeMouseUTF8           PrivateMode = 1005
	ModeMouseSGR            PrivateMode = 1006
	ModeAlternateScroll     PrivateMode = 1007
	ModeMouseURXVT          PrivateMode = 1015
	ModeMousePixel          PrivateMode = 1016
)

// PrivateModeFrom validates a DECSET/DECRST parameter.
func PrivateModeFrom(n int) (PrivateMode, bool) {
	switch PrivateMode(n) {
	case ModeSmoothScroll, ModeOrigin, ModeAutoWrap, ModeX10Mouse,
		ModeCursorVisible, ModeIceColors, ModeCursorBlink, ModeLeftRight,
		ModeVT200Mouse, ModeVT200HighlightMouse, ModeButtonEventMouse,
		ModeAnyEventMouse, ModeFocusEvent, ModeMouseUTF8, ModeMouseSGR,
		ModeAlternateScroll, ModeMouseURXVT, ModeMousePixel:
		return PrivateMode(n), true
	}
	return 0, false
}
