// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// DcsKind tags a DeviceControl payload.
type DcsKind uint8

const (
	// DcsLoadFont is the CTerm font load: ESC P CTerm:Font:{slot}:{base64} ST.
	// Data holds the decoded glyph bitmap; the row stride is implied by the
	// target font's declared height.
	DcsLoadFont DcsKind = iota
	// DcsSixel carries the raw sixel payload after the q final byte.
	DcsSixel
)

// DeviceControl is a reassembled DCS payload. Font data arrives already
// base64-decoded; a decode failure is reported as a parse error instead.
type DeviceControl struct {
	Kind DcsKind
	Slot int    // font slot, DcsLoadFont
	Data []byte // decoded font blob or raw sixel data

	// Sixel presentation.
	VerticalScale int
	BgR, BgG, BgB uint8
}

// OscKind tags an OperatingSystemCommand payload.
type OscKind uint8

const (
	OscSetTitle OscKind = iota // OSC 0, icon name and window title
	OscSetIconName
	OscSetWindowTitle
	OscHyperlink // OSC 8
)

// OperatingSystemCommand is a reassembled OSC payload.
type OperatingSystemCommand struct {
	Kind   OscKind
	Text   []byte // title / icon name
	Params []byte // hyperlink params
	URI    []byte // hyperlink target
}
