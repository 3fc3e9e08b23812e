// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package command defines the dialect-neutral terminal command vocabulary.
//
// Every parser in this module produces values from this closed set and
// pushes them through a Sink. The commands carry numeric parameters that
// are already validated for range: a parser reports a ParseError instead
// of constructing an out-of-domain value.
package command

// Direction for cursor movement and scrolling commands.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// CaretShape values for DECSCUSR.
type CaretShape uint8

const (
	CaretBlock CaretShape = iota
	CaretUnderline
	CaretBar
)

// Command is a single decoded terminal action. The concrete types below
// form a closed set; each carries its parameters as exported fields so
// sinks can switch on the type and tests can compare values directly.
type Command interface {
	cmd()
}

// C0 controls. BEL, BS, HT, LF, FF, CR and DEL are commands of their own
// so a sink can treat them uniformly with escape sequences.
type (
	Bell           struct{}
	Backspace      struct{}
	Tab            struct{}
	LineFeed       struct{}
	FormFeed       struct{}
	CarriageReturn struct{}
	Delete         struct{}
)

// Cursor movement.
type (
	// MoveCursor is CUU/CUD/CUF/CUB (and the HPB/VPB aliases j, k).
	MoveCursor struct {
		Dir Direction
		N   int
	}
	CursorNextLine     struct{ N int }      // CNL
	CursorPreviousLine struct{ N int }      // CPL
	CursorColumn       struct{ N int }      // CHA, 1-based
	CursorPosition     struct{ Row, Col int } // CUP/HVP, 1-based
	LineAbsolute       struct{ N int }      // VPA
	LineForward        struct{ N int }      // VPR
	ColumnForward      struct{ N int }      // HPR
	ColumnAbsolute     struct{ N int }      // HPA
	TabForward         struct{ N int }      // CVT
	TabBackward        struct{ N int }      // CBT

	SaveCursorPosition    struct{} // CSI s
	RestoreCursorPosition struct{} // CSI u
)

// Erase and edit.
type (
	EraseInDisplay struct{ Mode EraseDisplayMode }
	EraseInLine    struct{ Mode EraseLineMode }
	EraseCharacter struct{ N int }
	InsertCharacter struct{ N int }
	DeleteCharacter struct{ N int }
	InsertLine      struct{ N int }
	DeleteLine      struct{ N int }
	RepeatCharacter struct{ N int } // REP, repeats the preceding graphic character
)

// Scrolling.
type (
	Scroll             struct {
		Dir Direction
		N   int
	}
	SetScrollingRegion struct{ Top, Bottom int } // DECSTBM, 1-based, Bottom 0 = last line
)

// SGR. One value per attribute, even when a single sequence bundles several.
type SGR struct{ Attr Attribute }

// Modes.
type (
	SetMode          struct{ Mode Mode }
	ResetMode        struct{ Mode Mode }
	SetPrivateMode   struct{ Mode PrivateMode }
	ResetPrivateMode struct{ Mode PrivateMode }
)

// Reports and device control.
type (
	DeviceAttributes   struct{}
	DeviceStatusReport struct{ Report StatusReport }
	SpecialKey         struct{ N int }

	SetCaretStyle struct {
		Blinking bool
		Shape    CaretShape
	}
	FontSelection            struct{ Ps1, Ps2 int } // CSI SP D
	SetFontPage              struct{ Page int }
	SelectCommunicationSpeed struct{ Ps1, Ps2 int } // CSI * r
	ResizeTerminal           struct{ Height, Width int }
)

// Tab stops.
type (
	SetTabStop    struct{} // HTS
	ClearTabStop  struct{} // TBC 0
	ClearAllTabs  struct{} // TBC 3
	TabStopReport struct{ Ps int } // DECRQTSR
)

// Non-CSI escape commands.
type (
	Index         struct{} // ESC D
	NextLine      struct{} // ESC E
	ReverseIndex  struct{} // ESC M
	SaveCursor    struct{} // DECSC
	RestoreCursor struct{} // DECRC
	Reset         struct{} // RIS
)

// Rectangular area operations.
type (
	FillArea           struct{ Ch, Top, Left, Bottom, Right int } // DECFRA
	EraseArea          struct{ Top, Left, Bottom, Right int }     // DECERA
	SelectiveEraseArea struct{ Top, Left, Bottom, Right int }     // DECSERA
	AreaChecksumReport struct{ Page, Top, Left, Bottom, Right int }
)

func (Bell) cmd()           {}
func (Backspace) cmd()      {}
func (Tab) cmd()            {}
func (LineFeed) cmd()       {}
func (FormFeed) cmd()       {}
func (CarriageReturn) cmd() {}
func (Delete) cmd()         {}

func (MoveCursor) cmd()            {}
func (CursorNextLine) cmd()        {}
func (CursorPreviousLine) cmd()    {}
func (CursorColumn) cmd()          {}
func (CursorPosition) cmd()        {}
func (LineAbsolute) cmd()          {}
func (LineForward) cmd()           {}
func (ColumnForward) cmd()         {}
func (ColumnAbsolute) cmd()        {}
func (TabForward) cmd()            {}
func (TabBackward) cmd()           {}
func (SaveCursorPosition) cmd()    {}
func (RestoreCursorPosition) cmd() {}

func (EraseInDisplay) cmd()  {}
func (EraseInLine) cmd()     {}
func (EraseCharacter) cmd()  {}
func (InsertCharacter) cmd() {}
func (DeleteCharacter) cmd() {}
func (InsertLine) cmd()      {}
func (DeleteLine) cmd()      {}
func (RepeatCharacter) cmd() {}

func (Scroll) cmd()             {}
func (SetScrollingRegion) cmd() {}

func (SGR) cmd() {}

func (SetMode) cmd()          {}
func (ResetMode) cmd()        {}
func (SetPrivateMode) cmd()   {}
func (ResetPrivateMode) cmd() {}

func (DeviceAttributes) cmd()         {}
func (DeviceStatusReport) cmd()       {}
func (SpecialKey) cmd()               {}
func (SetCaretStyle) cmd()            {}
func (FontSelection) cmd()            {}
func (SetFontPage) cmd()              {}
func (SelectCommunicationSpeed) cmd() {}
func (ResizeTerminal) cmd()           {}

func (SetTabStop) cmd()    {}
func (ClearTabStop) cmd()  {}
func (ClearAllTabs) cmd()  {}
func (TabStopReport) cmd() {}

func (Index) cmd()         {}
func (NextLine) cmd()      {}
func (ReverseIndex) cmd()  {}
func (SaveCursor) cmd()    {}
func (RestoreCursor) cmd() {}
func (Reset) cmd()         {}

func (FillArea) cmd()           {}
func (EraseArea) cmd()          {}
func (SelectiveEraseArea) cmd() {}
func (AreaChecksumReport) cmd() {}
