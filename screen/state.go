// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

// defaultTabWidth is the distance between power-on tab stops.
const defaultTabWidth = 8

// TerminalState carries the modal state of a screen: geometry, wrap and
// origin modes, the scroll region, tab stops and the presentation
// toggles the DEC private modes flip.
type TerminalState struct {
	width, height int

	AutoWrap            bool
	OriginWithinMargins bool // DECOM: addressing relative to the scroll region
	IceColors           bool // blinking background bits select bright colors
	InverseVideo        bool // SGR 7, swaps fg/bg at print time

	// TerminalBuffer screens scroll at the bottom; editing buffers grow.
	TerminalBuffer bool

	lrAllowed  bool // DECLRMM
	hasTB      bool
	tb         [2]int
	hasLR      bool
	lr         [2]int
	tabs       []bool
	mouseModes map[uint16]bool
}

func NewTerminalState(width, height int) *TerminalState {
	t := &TerminalState{
		width:          width,
		height:         height,
		AutoWrap:       true,
		TerminalBuffer: true,
		mouseModes:     make(map[uint16]bool),
	}
	t.ResetTabStops()
	return t
}

func (t *TerminalState) Width() int  { return t.width }
func (t *TerminalState) Height() int { return t.height }

// SetSize resizes the state. Margins are cleared and tab stops rebuilt,
// the way a real resize resets the addressing setup.
func (t *TerminalState) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.hasTB = false
	t.hasLR = false
	t.ResetTabStops()
}

// MarginsTopBottom reports the vertical scroll region, zero-based.
func (t *TerminalState) MarginsTopBottom() (top, bottom int, ok bool) {
	if !t.hasTB {
		return 0, 0, false
	}
	return t.tb[0], t.tb[1], true
}

// SetMarginsTopBottom installs DECSTBM margins, zero-based and clamped
// to the screen. An empty or inverted region is ignored.
func (t *TerminalState) SetMarginsTopBottom(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom >= t.height {
		bottom = t.height - 1
	}
	if top >= bottom {
		return
	}
	t.hasTB = true
	t.tb = [2]int{top, bottom}
}

func (t *TerminalState) ClearMarginsTopBottom() {
	t.hasTB = false
}

// LeftRightAllowed reports whether DECSLRM margins may be set (DECLRMM).
func (t *TerminalState) LeftRightAllowed() bool { return t.lrAllowed }

// SetLeftRightAllowed flips DECLRMM. Disabling it drops any margins.
func (t *TerminalState) SetLeftRightAllowed(on bool) {
	t.lrAllowed = on
	if !on {
		t.hasLR = false
	}
}

// MarginsLeftRight reports the horizontal scroll region, zero-based.
func (t *TerminalState) MarginsLeftRight() (left, right int, ok bool) {
	if !t.hasLR {
		return 0, 0, false
	}
	return t.lr[0], t.lr[1], true
}

// SetMarginsLeftRight installs DECSLRM margins. Ignored unless DECLRMM
// is set.
func (t *TerminalState) SetMarginsLeftRight(left, right int) {
	if !t.lrAllowed {
		return
	}
	if left < 0 {
		left = 0
	}
	if right >= t.width {
		right = t.width - 1
	}
	if left >= right {
		return
	}
	t.hasLR = true
	t.lr = [2]int{left, right}
}

func (t *TerminalState) ClearMarginsLeftRight() {
	t.hasLR = false
}

// InMargin reports whether pos lies inside the active scroll region.
// False when no margins are set.
func (t *TerminalState) InMargin(pos Position) bool {
	if !t.hasTB && !t.hasLR {
		return false
	}
	if t.hasTB && (pos.Y < t.tb[0] || pos.Y > t.tb[1]) {
		return false
	}
	if t.hasLR && (pos.X < t.lr[0] || pos.X > t.lr[1]) {
		return false
	}
	return true
}

// InScrollRegion reports whether pos is on a line the vertical margins
// cover. True when no vertical margins are set.
func (t *TerminalState) InScrollRegion(pos Position) bool {
	if !t.hasTB {
		return true
	}
	return pos.Y >= t.tb[0] && pos.Y <= t.tb[1]
}

// NeedsScrolling reports whether caret movement must respect a scroll
// region: a terminal buffer with vertical margins installed.
func (t *TerminalState) NeedsScrolling() bool {
	return t.TerminalBuffer && t.hasTB
}

// ResetTabStops restores a stop every eight columns.
func (t *TerminalState) ResetTabStops() {
	t.tabs = make([]bool, t.width)
	for x := 0; x < t.width; x += defaultTabWidth {
		t.tabs[x] = true
	}
}

func (t *TerminalState) ClearTabStops() {
	t.tabs = make([]bool, t.width)
}

func (t *TerminalState) SetTabAt(x int) {
	if x >= 0 && x < len(t.tabs) {
		t.tabs[x] = true
	}
}

func (t *TerminalState) RemoveTabAt(x int) {
	if x >= 0 && x < len(t.tabs) {
		t.tabs[x] = false
	}
}

// NextTabStop returns the first stop right of x, or the last column.
func (t *TerminalState) NextTabStop(x int) int {
	for i := x + 1; i < len(t.tabs); i++ {
		if t.tabs[i] {
			return i
		}
	}
	return t.width - 1
}

// PrevTabStop returns the first stop left of x, or column zero.
func (t *TerminalState) PrevTabStop(x int) int {
	for i := x - 1; i > 0; i-- {
		if i < len(t.tabs) && t.tabs[i] {
			return i
		}
	}
	return 0
}

// SetMouseMode records an xterm mouse tracking mode. The screen model
// keeps the flags; delivering events is the frontend's business.
func (t *TerminalState) SetMouseMode(mode uint16, on bool) {
	t.mouseModes[mode] = on
}

func (t *TerminalState) MouseMode(mode uint16) bool {
	return t.mouseModes[mode]
}
