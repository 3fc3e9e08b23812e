// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/ericwq/bbsterm/command"
	"github.com/ericwq/bbsterm/util"
)

// Sink replays a parser's command stream into an editable screen. It
// owns the print path (incremental UTF-8, wide characters) and the
// translation of every command into the editing algorithms.
type Sink struct {
	scr EditableScreen

	utf8Pending []byte
	legacy      bool // byte-per-cell, for CP437 art streams
	lastRune    rune
	errorCount  int

	// Music receives parsed ANSI music; playback is the caller's
	// business. Nil drops the score.
	Music func(m command.Music)

	// Bell rings the terminal bell. Nil ignores BEL.
	Bell func()
}

func NewSink(scr EditableScreen) *Sink {
	return &Sink{scr: scr}
}

// SetLegacyMode switches the print path to byte-per-cell. The screen
// then holds raw bytes a CP437-aware renderer maps through its charset.
func (k *Sink) SetLegacyMode(on bool) {
	k.legacy = on
	k.utf8Pending = nil
}

// ErrorCount reports how many parse errors arrived so far.
func (k *Sink) ErrorCount() int {
	return k.errorCount
}

// Print decodes literal bytes and writes them at the caret. Invalid
// UTF-8 prints U+FFFD; an incomplete tail waits for the next chunk.
func (k *Sink) Print(data []byte) {
	if k.legacy {
		for _, b := range data {
			k.printRune(rune(b))
		}
		return
	}

	k.utf8Pending = append(k.utf8Pending, data...)
	for len(k.utf8Pending) > 0 {
		r, size := utf8.DecodeRune(k.utf8Pending)
		if r == utf8.RuneError && size <= 1 {
			if !utf8.FullRune(k.utf8Pending) && len(k.utf8Pending) < utf8.UTFMax {
				return
			}
			size = 1
		}
		k.utf8Pending = k.utf8Pending[size:]
		k.printRune(r)
	}
}

func (k *Sink) printRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// combining marks do not take a cell of their own
		return
	}
	k.lastRune = r
	attr := k.displayAttr()
	PrintChar(k.scr, Cell{Ch: r, Attr: attr})
	if w == 2 {
		// spacer half of a wide character
		PrintChar(k.scr, Cell{Ch: 0, Attr: attr})
	}
}

// displayAttr resolves the caret attribute for printing: inverse video
// swaps the colors, ice mode turns a blinking low background into a
// bright one.
func (k *Sink) displayAttr() Attr {
	a := k.scr.Caret().Attr
	st := k.scr.State()
	if st.InverseVideo {
		a.Fg, a.Bg = a.Bg, a.Fg
	}
	if st.IceColors && a.Is(AttrBlink) && a.Bg < 8 {
		a.SetFlag(AttrBlink, false)
		a.Bg += 8
	}
	return a
}

// Emit translates one command into screen edits.
func (k *Sink) Emit(c command.Command) {
	s := k.scr
	caret := s.Caret()
	st := s.State()

	switch v := c.(type) {
	case command.Bell:
		if k.Bell != nil {
			k.Bell()
		}
	case command.Backspace:
		BackSpace(s)
	case command.Tab:
		TabForward(s)
	case command.LineFeed:
		LineFeed(s)
	case command.FormFeed:
		FormFeed(s)
	case command.CarriageReturn:
		CarriageReturn(s)
	case command.Delete:
		DeleteChar(s)

	case command.MoveCursor:
		switch v.Dir {
		case command.Up:
			MoveUp(s, v.N, false)
		case command.Down:
			MoveDown(s, v.N, false)
		case command.Left:
			MoveLeft(s, v.N)
		case command.Right:
			MoveRight(s, v.N)
		}
	case command.CursorNextLine:
		for i := 0; i < v.N; i++ {
			NextLineCaret(s)
		}
	case command.CursorPreviousLine:
		MoveUp(s, v.N, false)
		CarriageReturn(s)
	case command.CursorColumn:
		caret.Pos.X = UpperLeft(s).X + v.N - 1
		LimitCaret(s, false)
	case command.CursorPosition:
		ul := UpperLeft(s)
		caret.Pos = Position{X: ul.X + v.Col - 1, Y: ul.Y + v.Row - 1}
		LimitCaret(s, false)
	case command.LineAbsolute:
		caret.Pos.Y = UpperLeft(s).Y + v.N - 1
		LimitCaret(s, false)
	case command.LineForward:
		caret.Pos.Y += v.N
		LimitCaret(s, false)
	case command.ColumnForward:
		caret.Pos.X += v.N
		LimitCaret(s, false)
	case command.ColumnAbsolute:
		caret.Pos.X = UpperLeft(s).X + v.N - 1
		LimitCaret(s, false)
	case command.TabForward:
		for i := 0; i < v.N; i++ {
			TabForward(s)
		}
	case command.TabBackward:
		for i := 0; i < v.N; i++ {
			TabBackward(s)
		}

	case command.SaveCursorPosition:
		*s.SavedPosition() = caret.Pos
	case command.RestoreCursorPosition:
		caret.Pos = *s.SavedPosition()
		LimitCaret(s, false)
	case command.SaveCursor:
		*s.SavedState() = SavedCaretState{
			Caret:               *caret,
			OriginWithinMargins: st.OriginWithinMargins,
			AutoWrap:            st.AutoWrap,
		}
	case command.RestoreCursor:
		saved := *s.SavedState()
		*caret = saved.Caret
		st.OriginWithinMargins = saved.OriginWithinMargins
		st.AutoWrap = saved.AutoWrap
		LimitCaret(s, false)

	case command.EraseInDisplay:
		switch v.Mode {
		case command.EraseDisplayToEnd:
			ClearBufferDown(s)
		case command.EraseDisplayToCursor:
			ClearBufferUp(s)
		case command.EraseDisplayAll:
			s.ClearScreen()
		case command.EraseDisplayAllAndScrollback:
			s.ClearScreen()
			s.ClearScrollback()
		}
	case command.EraseInLine:
		switch v.Mode {
		case command.EraseLineToEnd:
			s.ClearLineToEnd()
		case command.EraseLineToCursor:
			s.ClearLineToStart()
		case command.EraseLineAll:
			s.ClearLine()
		}
	case command.EraseCharacter:
		EraseChar(s, v.N)
	case command.InsertCharacter:
		for i := 0; i < v.N; i++ {
			InsertChar(s)
		}
	case command.DeleteCharacter:
		for i := 0; i < v.N; i++ {
			DeleteChar(s)
		}
	case command.InsertLine:
		for i := 0; i < v.N; i++ {
			s.InsertLine(caret.Pos.Y)
		}
	case command.DeleteLine:
		for i := 0; i < v.N; i++ {
			s.RemoveLine(caret.Pos.Y)
		}
	case command.RepeatCharacter:
		if k.lastRune != 0 {
			for i := 0; i < v.N; i++ {
				k.printRune(k.lastRune)
			}
		}

	case command.Scroll:
		for i := 0; i < v.N; i++ {
			switch v.Dir {
			case command.Up:
				s.ScrollUp()
			case command.Down:
				s.ScrollDown()
			case command.Left:
				s.ScrollLeft()
			case command.Right:
				s.ScrollRight()
			}
		}
	case command.SetScrollingRegion:
		bottom := v.Bottom
		if bottom == 0 {
			bottom = s.Height()
		}
		st.SetMarginsTopBottom(v.Top-1, bottom-1)
		caret.Pos = UpperLeft(s)
		LimitCaret(s, false)

	case command.SGR:
		k.applySgr(v.Attr)

	case command.SetMode:
		if v.Mode == command.ModeInsertReplace {
			caret.Insert = true
		}
	case command.ResetMode:
		if v.Mode == command.ModeInsertReplace {
			caret.Insert = false
		}
	case command.SetPrivateMode:
		k.setPrivateMode(v.Mode, true)
	case command.ResetPrivateMode:
		k.setPrivateMode(v.Mode, false)

	case command.SetCaretStyle:
		caret.Blinking = v.Blinking
		caret.Shape = v.Shape
	case command.FontSelection:
		if _, ok := s.Font(v.Ps2); ok {
			caret.Attr.FontPage = uint8(v.Ps2)
		} else {
			util.Logger.Debug("font selection for empty slot", "slot", v.Ps2)
		}
	case command.SetFontPage:
		caret.Attr.FontPage = uint8(v.Page)
	case command.ResizeTerminal:
		s.Resize(v.Width, v.Height)

	case command.SetTabStop:
		st.SetTabAt(caret.Pos.X)
	case command.ClearTabStop:
		st.RemoveTabAt(caret.Pos.X)
	case command.ClearAllTabs:
		st.ClearTabStops()

	case command.Index:
		IndexCaret(s)
	case command.NextLine:
		NextLineCaret(s)
	case command.ReverseIndex:
		ReverseIndexCaret(s)
	case command.Reset:
		s.ResetTerminal()
		s.ClearScreen()

	case command.FillArea:
		FillRect(s, rune(v.Ch), v.Top-1, v.Left-1, v.Bottom-1, v.Right-1)
	case command.EraseArea, command.SelectiveEraseArea:
		var top, left, bottom, right int
		if e, ok := c.(command.EraseArea); ok {
			top, left, bottom, right = e.Top, e.Left, e.Bottom, e.Right
		} else {
			e := c.(command.SelectiveEraseArea)
			top, left, bottom, right = e.Top, e.Left, e.Bottom, e.Right
		}
		FillRect(s, ' ', top-1, left-1, bottom-1, right-1)

	case command.DeviceAttributes, command.DeviceStatusReport,
		command.SpecialKey, command.SelectCommunicationSpeed,
		command.TabStopReport, command.AreaChecksumReport:
		// reports need a return channel; the application layer answers
		util.Logger.Debug("unanswered report command", "command", c)

	default:
		util.Logger.Debug("unhandled command", "command", c)
	}
}

func (k *Sink) setPrivateMode(mode command.PrivateMode, on bool) {
	s := k.scr
	st := s.State()
	caret := s.Caret()

	switch mode {
	case command.ModeOrigin:
		st.OriginWithinMargins = on
		caret.Pos = UpperLeft(s)
	case command.ModeAutoWrap:
		st.AutoWrap = on
	case command.ModeCursorVisible:
		caret.Visible = on
	case command.ModeCursorBlink:
		// ATT610: set stops the blink
		caret.Blinking = !on
	case command.ModeIceColors:
		st.IceColors = on
	case command.ModeLeftRight:
		st.SetLeftRightAllowed(on)
	case command.ModeSmoothScroll:
		// no animation in a headless screen
	default:
		st.SetMouseMode(uint16(mode), on)
	}
	s.MarkDirty()
}

// applySgr folds one SGR attribute into the caret attribute. Extended
// and RGB colors become palette indices here.
func (k *Sink) applySgr(a command.Attribute) {
	caret := k.scr.Caret()
	st := k.scr.State()
	at := &caret.Attr

	switch a.Kind {
	case command.AttrReset:
		*at = DefaultAttr()
		st.InverseVideo = false
	case command.AttrIntensity:
		switch command.Intensity(a.Level) {
		case command.IntensityNormal:
			at.SetFlag(AttrBold|AttrFaint, false)
		case command.IntensityBold:
			at.SetFlag(AttrBold, true)
			at.SetFlag(AttrFaint, false)
		case command.IntensityFaint:
			at.SetFlag(AttrFaint, true)
			at.SetFlag(AttrBold, false)
		}
	case command.AttrItalic:
		at.SetFlag(AttrItalic, a.On)
	case command.AttrFraktur:
		// no fraktur face, render italic
		at.SetFlag(AttrItalic, true)
	case command.AttrUnderline:
		// double underline folds into single
		at.SetFlag(AttrUnderline, command.Underline(a.Level) != command.UnderlineOff)
	case command.AttrCrossedOut:
		at.SetFlag(AttrCrossedOut, a.On)
	case command.AttrBlink:
		at.SetFlag(AttrBlink, command.Blink(a.Level) != command.BlinkOff)
	case command.AttrInverse:
		st.InverseVideo = a.On
	case command.AttrConcealed:
		at.SetFlag(AttrConcealed, a.On)
	case command.AttrFont:
		at.FontPage = a.Level
	case command.AttrDoubleHeight:
		at.SetFlag(AttrDoubleHeight, a.On)
	case command.AttrForeground:
		at.Fg = k.colorIndex(a.Color, DefaultFg)
	case command.AttrBackground:
		at.Bg = k.colorIndex(a.Color, DefaultBg)
	case command.AttrFrame, command.AttrOverlined,
		command.AttrIdeogramUnderline, command.AttrIdeogramDoubleUnderline,
		command.AttrIdeogramOverline, command.AttrIdeogramDoubleOverline,
		command.AttrIdeogramStress, command.AttrIdeogramOff:
		// no cell representation
	}
}

func (k *Sink) colorIndex(c command.Color, def uint32) uint32 {
	switch c.Model {
	case command.ColorBase:
		return uint32(c.Index) % 16
	case command.ColorExtended:
		return k.scr.Palette().Insert(Xterm256(c.Index))
	case command.ColorRGB:
		return k.scr.Palette().InsertRGB(c.R, c.G, c.B)
	default:
		return def
	}
}

// EmitRip ignores RIP commands; a raster executor wraps this sink when
// graphics are wanted.
func (k *Sink) EmitRip(c command.RipCommand) {
	util.Logger.Debug("rip command on text screen", "op", int(c.Op))
}

// EmitSkypix ignores SkyPix commands, same split as EmitRip.
func (k *Sink) EmitSkypix(c command.SkypixCommand) {
	util.Logger.Debug("skypix command on text screen", "op", int(c.Op))
}

// DeviceControl loads fonts; sixel graphics need a pixel layer and are
// dropped here.
func (k *Sink) DeviceControl(d command.DeviceControl) {
	switch d.Kind {
	case command.DcsLoadFont:
		if err := k.scr.SetFont(d.Slot, d.Data); err != nil {
			util.Logger.Warn("font load failed", "slot", d.Slot, "error", err)
		}
	case command.DcsSixel:
		util.Logger.Debug("sixel on text screen", "bytes", len(d.Data))
	}
}

// Osc handles hyperlinks; titles are outside the cell grid and only
// logged.
func (k *Sink) Osc(o command.OperatingSystemCommand) {
	switch o.Kind {
	case command.OscHyperlink:
		caret := k.scr.Caret()
		if len(o.URI) == 0 {
			caret.Attr.SetFlag(AttrUnderline, false)
			return
		}
		caret.Attr.SetFlag(AttrUnderline, true)
		k.scr.AddHyperlink(HyperLink{URL: string(o.URI), Pos: caret.Pos})
	default:
		util.Logger.Debug("title change", "text", string(o.Text))
	}
}

func (k *Sink) Aps(data []byte) {
	util.Logger.Debug("application program string", "bytes", len(data))
}

func (k *Sink) PlayMusic(m command.Music) {
	if k.Music != nil {
		k.Music(m)
	}
}

func (k *Sink) Request(r command.TerminalRequest) {
	// replies go out on the application's writer, not through the screen
	util.Logger.Debug("terminal request", "request", int(r))
}

func (k *Sink) ReportError(e *command.ParseError) {
	k.errorCount++
	util.Logger.Warn("parse error", "error", e)
}
