// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package editor

import (
	"github.com/rivo/uniseg"

	"github.com/ericwq/bbsterm/screen"
)

// PasteText writes a text block at the caret as one undo step. The
// text is split into grapheme clusters; a wide cluster takes its width
// in cells with spacer halves, and '\n' returns to the paste column on
// the next row. Rows past the screen bottom are dropped.
func (s *EditState) PasteText(text string) {
	guard := s.BeginAtomicUndo("paste")
	defer guard.End()

	caret := s.scr.Caret()
	startX := caret.Pos.X
	pos := caret.Pos

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		switch runes[0] {
		case '\r':
			continue
		case '\n':
			pos.X = startX
			pos.Y++
			continue
		}
		if pos.Y >= s.scr.Height() {
			break
		}

		w := uniseg.StringWidth(g.Str())
		if w < 1 {
			w = 1
		}
		if pos.X+w > s.scr.Width() {
			pos.X = startX
			pos.Y++
			if pos.Y >= s.scr.Height() {
				break
			}
		}

		s.SetChar(pos, screen.Cell{Ch: runes[0], Attr: caret.Attr})
		for i := 1; i < w; i++ {
			s.SetChar(screen.Position{X: pos.X + i, Y: pos.Y}, screen.Cell{Attr: caret.Attr})
		}
		pos.X += w
	}
	caret.Pos = pos
	s.scr.MarkDirty()
}
