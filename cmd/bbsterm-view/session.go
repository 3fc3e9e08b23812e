// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"sync"

	"github.com/ericwq/bbsterm/ansi"
	"github.com/ericwq/bbsterm/bgi"
	"github.com/ericwq/bbsterm/command"
	"github.com/ericwq/bbsterm/mode7"
	"github.com/ericwq/bbsterm/rip"
	"github.com/ericwq/bbsterm/screen"
	"github.com/ericwq/bbsterm/skypix"
)

// ripTerminalID answers the RIPscrip version query ESC [ ! .
const ripTerminalID = "RIPSCRIP015410\x00"

// native geometry per dialect
const (
	ripPixWidth  = 640
	ripPixHeight = 350
)

// viewSink layers the raster executors over the text sink. RIP and
// SkyPix commands go to the engine; everything else stays on the text
// path. Terminal queries answer on reply when a return channel exists.
type viewSink struct {
	*screen.Sink

	ripExec *bgi.RipExecutor
	skyExec *bgi.SkypixExecutor
	reply   io.Writer
}

func (v *viewSink) EmitRip(c command.RipCommand) {
	if v.ripExec != nil {
		v.ripExec.Run(c)
		return
	}
	v.Sink.EmitRip(c)
}

func (v *viewSink) EmitSkypix(c command.SkypixCommand) {
	if v.skyExec != nil {
		v.skyExec.Run(c)
		return
	}
	v.Sink.EmitSkypix(c)
}

func (v *viewSink) Request(r command.TerminalRequest) {
	if v.reply == nil {
		return
	}
	if r == command.RequestRipTerminalID {
		v.reply.Write([]byte(ripTerminalID))
	}
}

// session owns one parser, its sink and the screen it fills. feed and
// render serialize on the mutex; the live reader and the render loop
// run on different goroutines.
type session struct {
	mu     sync.Mutex
	parser command.Parser
	sink   command.Sink

	scr      screen.EditableScreen
	pixels   screen.PixelScreen
	graphics bool
}

// newSession builds the parser and screen for the configured dialect.
// reply receives terminal query answers; nil drops them.
func newSession(conf *Config, reply io.Writer) *session {
	cols, rows := conf.width, conf.height
	if cols <= 0 {
		cols = 80
		if conf.dialect == "mode7" {
			cols = 40
		}
	}
	if rows <= 0 {
		rows = 25
	}

	ses := &session{}
	var text *screen.Sink

	switch conf.dialect {
	case "rip":
		gs := screen.NewGraphicsScreen(cols, rows, ripPixWidth, ripPixHeight)
		text = screen.NewSink(gs)
		exec := bgi.NewRipExecutor(bgi.NewBgi(gs))
		exec.OnCaretMove = func(col, row int) {
			gs.Caret().Pos = screen.Position{X: col, Y: row}
		}
		ses.parser = rip.NewParser()
		ses.sink = &viewSink{Sink: text, ripExec: exec, reply: reply}
		ses.scr = gs
		ses.pixels = gs
		ses.graphics = true

	case "skypix":
		gs := screen.NewGraphicsScreen(cols, rows, bgi.SkypixWidth, bgi.SkypixHeight)
		text = screen.NewSink(gs)
		exec := bgi.NewSkypixExecutor(bgi.NewBgi(gs))
		exec.OnCaretMove = func(col, row int) {
			gs.Caret().Pos = screen.Position{X: col, Y: row}
		}
		exec.OnForeground = func(color uint8) {
			gs.Caret().Attr.Fg = uint32(color)
		}
		exec.OnBackground = func(color uint8) {
			gs.Caret().Attr.Bg = uint32(color)
		}
		ses.parser = skypix.NewParser()
		ses.sink = &viewSink{Sink: text, skyExec: exec, reply: reply}
		ses.scr = gs
		ses.pixels = gs
		ses.graphics = true

	case "mode7":
		scr := screen.NewTextScreen(cols, rows)
		text = screen.NewSink(scr)
		ses.parser = mode7.NewParser()
		ses.sink = text
		ses.scr = scr

	default: // ansi
		scr := screen.NewTextScreen(cols, rows)
		text = screen.NewSink(scr)
		ses.parser = ansi.NewParser()
		ses.sink = &viewSink{Sink: text, reply: reply}
		ses.scr = scr
	}

	text.SetLegacyMode(!conf.utf8)
	return ses
}

func (s *session) feed(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parser.Parse(data, s.sink)
}

func (s *session) flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parser.Flush(s.sink)
}

// version reads the screen change counter without the session lock;
// the counter is atomic.
func (s *session) version() uint64 {
	return s.scr.Version()
}

func (s *session) render(d *display) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.renderFrame(s.scr)
}
