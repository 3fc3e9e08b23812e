// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// ColorModel distinguishes the color encodings an SGR sequence can carry.
type ColorModel uint8

const (
	ColorDefault ColorModel = iota
	ColorBase               // base-16 palette index
	ColorExtended           // 256-color palette index
	ColorRGB
)

// Color is a foreground or background color value.
type Color struct {
	Model   ColorModel
	Index   uint8 // Base / Extended
	R, G, B uint8 // RGB
}

func DefaultColor() Color        { return Color{Model: ColorDefault} }
func BaseColor(idx uint8) Color  { return Color{Model: ColorBase, Index: idx} }
func ExtColor(idx uint8) Color   { return Color{Model: ColorExtended, Index: idx} }
func RGBColor(r, g, b uint8) Color {
	return Color{Model: ColorRGB, R: r, G: g, B: b}
}

// Intensity levels.
type Intensity uint8

const (
	IntensityNormal Intensity = iota
	IntensityBold
	IntensityFaint
)

// Underline styles.
type Underline uint8

const (
	UnderlineOff Underline = iota
	UnderlineSingle
	UnderlineDouble
)

// Blink rates.
type Blink uint8

const (
	BlinkOff Blink = iota
	BlinkSlow
	BlinkRapid
)

// Frame styles.
type Frame uint8

const (
	FrameOff Frame = iota
	FrameFramed
	FrameEncircled
)

// AttrKind tags an Attribute value.
type AttrKind uint8

const (
	AttrReset AttrKind = iota
	AttrIntensity
	AttrItalic
	AttrFraktur
	AttrUnderline
	AttrCrossedOut
	AttrBlink
	AttrInverse
	AttrConcealed
	AttrFrame
	AttrOverlined
	AttrFont
	AttrForeground
	AttrBackground
	AttrDoubleHeight // teletext double height, no SGR code of its own
	AttrIdeogramUnderline
	AttrIdeogramDoubleUnderline
	AttrIdeogramOverline
	AttrIdeogramDoubleOverline
	AttrIdeogramStress
	AttrIdeogramOff
)

// Attribute is one SGR attribute value. Kind selects which payload field
// is meaningful: Level for Intensity/Underline/Blink/Frame and the font
// index, On for the boolean attributes, Color for the color attributes.
type Attribute struct {
	Kind  AttrKind
	Level uint8
	On    bool
	Color Color
}

func ResetAttr() Attribute               { return Attribute{Kind: AttrReset} }
func IntensityAttr(v Intensity) Attribute { return Attribute{Kind: AttrIntensity, Level: uint8(v)} }
func ItalicAttr(on bool) Attribute       { return Attribute{Kind: AttrItalic, On: on} }
func FrakturAttr() Attribute             { return Attribute{Kind: AttrFraktur} }
func UnderlineAttr(v Underline) Attribute { return Attribute{Kind: AttrUnderline, Level: uint8(v)} }
func CrossedOutAttr(on bool) Attribute   { return Attribute{Kind: AttrCrossedOut, On: on} }
func BlinkAttr(v Blink) Attribute        { return Attribute{Kind: AttrBlink, Level: uint8(v)} }
func InverseAttr(on bool) Attribute      { return Attribute{Kind: AttrInverse, On: on} }
func ConcealedAttr(on bool) Attribute    { return Attribute{Kind: AttrConcealed, On: on} }
func FrameAttr(v Frame) Attribute        { return Attribute{Kind: AttrFrame, Level: uint8(v)} }
func OverlinedAttr(on bool) Attribute    { return Attribute{Kind: AttrOverlined, On: on} }
func FontAttr(n uint8) Attribute         { return Attribute{Kind: AttrFont, Level: n} }
func ForegroundAttr(c Color) Attribute   { return Attribute{Kind: AttrForeground, Color: c} }
func BackgroundAttr(c Color) Attribute   { return Attribute{Kind: AttrBackground, Color: c} }
func DoubleHeightAttr(on bool) Attribute { return Attribute{Kind: AttrDoubleHeight, On: on} }
