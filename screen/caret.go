// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package screen

import "github.com/ericwq/bbsterm/command"

// Caret is the text cursor: position, the attribute new cells take, and
// its presentation.
type Caret struct {
	Pos      Position
	Attr     Attr
	Visible  bool
	Blinking bool
	Shape    command.CaretShape
	Insert   bool // IRM: new characters push the line right
}

func NewCaret() Caret {
	return Caret{
		Attr:     DefaultAttr(),
		Visible:  true,
		Blinking: true,
	}
}

// Reset returns the caret to its power-on state.
func (c *Caret) Reset() {
	*c = NewCaret()
}
