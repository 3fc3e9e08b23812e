// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ansi

import "github.com/ericwq/bbsterm/command"

// ansiColorOffsets maps SGR color digits (0-7) onto the base palette,
// which is laid out in the CGA bit order blue/green/red.
var ansiColorOffsets = [8]uint8{0, 4, 2, 6, 1, 5, 3, 7}

type lutKind uint8

const (
	lutAttr lutKind = iota
	lutExtForeground // 38, needs 5;n or 2;r;g;b
	lutExtBackground // 48
	lutUndefined
)

type lutEntry struct {
	kind lutKind
	attr command.Attribute
}

// sgrLUT maps SGR parameter values 0-107 to their meaning. Codes the
// table leaves undefined are reported as invalid parameters.
var sgrLUT [108]lutEntry

func init() {
	for i := range sgrLUT {
		sgrLUT[i] = lutEntry{kind: lutUndefined}
	}
	set := func(code int, a command.Attribute) {
		sgrLUT[code] = lutEntry{kind: lutAttr, attr: a}
	}

	set(0, command.ResetAttr())
	set(1, command.IntensityAttr(command.IntensityBold))
	set(2, command.IntensityAttr(command.IntensityFaint))
	set(3, command.ItalicAttr(true))
	set(4, command.UnderlineAttr(command.UnderlineSingle))
	set(5, command.BlinkAttr(command.BlinkSlow))
	set(6, command.BlinkAttr(command.BlinkRapid))
	set(7, command.InverseAttr(true))
	set(8, command.ConcealedAttr(true))
	set(9, command.CrossedOutAttr(true))
	for n := 0; n <= 9; n++ {
		set(10+n, command.FontAttr(uint8(n)))
	}
	set(20, command.FrakturAttr())
	set(21, command.UnderlineAttr(command.UnderlineDouble))
	set(22, command.IntensityAttr(command.IntensityNormal))
	set(23, command.ItalicAttr(false))
	set(24, command.UnderlineAttr(command.UnderlineOff))
	set(25, command.BlinkAttr(command.BlinkOff))
	// 26 proportional spacing stays undefined
	set(27, command.InverseAttr(false))
	set(28, command.ConcealedAttr(false))
	set(29, command.CrossedOutAttr(false))
	for n := 0; n < 8; n++ {
		set(30+n, command.ForegroundAttr(command.BaseColor(ansiColorOffsets[n])))
		set(40+n, command.BackgroundAttr(command.BaseColor(ansiColorOffsets[n])))
		set(90+n, command.ForegroundAttr(command.BaseColor(8+ansiColorOffsets[n])))
		set(100+n, command.BackgroundAttr(command.BaseColor(8+ansiColorOffsets[n])))
	}
	sgrLUT[38] = lutEntry{kind: lutExtForeground}
	set(39, command.ForegroundAttr(command.DefaultColor()))
	sgrLUT[48] = lutEntry{kind: lutExtBackground}
	set(49, command.BackgroundAttr(command.DefaultColor()))
	// 50 disable proportional spacing stays undefined
	set(51, command.FrameAttr(command.FrameFramed))
	set(52, command.FrameAttr(command.FrameEncircled))
	set(53, command.OverlinedAttr(true))
	set(54, command.FrameAttr(command.FrameOff))
	set(55, command.OverlinedAttr(false))
	// 56-59 reserved / underline color stay undefined
	set(60, command.Attribute{Kind: command.AttrIdeogramUnderline})
	set(61, command.Attribute{Kind: command.AttrIdeogramDoubleUnderline})
	set(62, command.Attribute{Kind: command.AttrIdeogramOverline})
	set(63, command.Attribute{Kind: command.AttrIdeogramDoubleOverline})
	set(64, command.Attribute{Kind: command.AttrIdeogramStress})
	set(65, command.Attribute{Kind: command.AttrIdeogramOff})
}

// parseSgr fans a CSI ... m parameter list out into one SGR command per
// attribute, handling 256-color (38;5;n) and RGB (38;2;r;g;b) forms.
func parseSgr(params []int, sink command.Sink) {
	i := 0
	for i < len(params) {
		code := params[i]

		entry := lutEntry{kind: lutUndefined}
		if code >= 0 && code < len(sgrLUT) {
			entry = sgrLUT[code]
		}

		switch entry.kind {
		case lutAttr:
			sink.Emit(command.SGR{Attr: entry.attr})
			i++

		case lutExtForeground, lutExtBackground:
			attr := command.ForegroundAttr
			if entry.kind == lutExtBackground {
				attr = command.BackgroundAttr
			}
			if i+2 >= len(params) {
				sink.ReportError(command.MalformedSequence("extended color requires sub-parameters"))
				i++
				break
			}
			switch {
			case params[i+1] == 5:
				sink.Emit(command.SGR{Attr: attr(command.ExtColor(uint8(params[i+2])))})
				i += 3
			case params[i+1] == 2 && i+4 < len(params):
				c := command.RGBColor(uint8(params[i+2]), uint8(params[i+3]), uint8(params[i+4]))
				sink.Emit(command.SGR{Attr: attr(c)})
				i += 5
			default:
				sink.ReportError(command.InvalidParameter("SGR", params[i+1]))
				i++
			}

		default:
			sink.ReportError(command.InvalidParameter("SGR", code))
			i++
		}
	}
}
