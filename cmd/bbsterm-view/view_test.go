// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ericwq/terminfo"

	"github.com/ericwq/bbsterm/command"
	"github.com/ericwq/bbsterm/screen"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		label string
		args  []string
		check func(*Config) bool
	}{
		{"defaults", []string{"art.ans"},
			func(c *Config) bool {
				return c.dialect == "ansi" && c.file == "art.ans" && c.delayMs == 20 && !c.utf8
			}},
		{"dialect short", []string{"-d", "rip", "art.rip"},
			func(c *Config) bool { return c.dialect == "rip" && c.file == "art.rip" }},
		{"png output", []string{"-png", "out.png", "-delay", "0", "art.ans"},
			func(c *Config) bool { return c.pngPath == "out.png" && c.delayMs == 0 }},
		{"exec", []string{"-e", "sh -c ls"},
			func(c *Config) bool { return c.execCmd == "sh -c ls" && c.file == "" }},
		{"geometry", []string{"-width", "132", "-height", "43", "art.ans"},
			func(c *Config) bool { return c.width == 132 && c.height == 43 }},
		{"version", []string{"-v"},
			func(c *Config) bool { return c.version }},
	}
	for _, v := range tests {
		conf, output, err := parseFlags(_COMMAND_NAME, v.args)
		if err != nil {
			t.Fatalf("%s: %s (%s)", v.label, err, output)
		}
		if !v.check(conf) {
			t.Errorf("%s: unexpected config %+v", v.label, conf)
		}
	}
}

func TestParseFlagsBadFlag(t *testing.T) {
	_, _, err := parseFlags(_COMMAND_NAME, []string{"-no-such-flag"})
	if err == nil {
		t.Fatal("undefined flag accepted")
	}
}

func TestBuildConfig(t *testing.T) {
	tests := []struct {
		label string
		conf  Config
		ok    bool
	}{
		{"file replay", Config{dialect: "ansi", file: "a.ans"}, true},
		{"live session", Config{dialect: "ansi", execCmd: "sh"}, true},
		{"no input", Config{dialect: "ansi"}, false},
		{"both inputs", Config{dialect: "ansi", file: "a", execCmd: "sh"}, false},
		{"bad dialect", Config{dialect: "avatar", file: "a"}, false},
		{"png of live", Config{dialect: "rip", execCmd: "sh", pngPath: "x.png"}, false},
		{"version skips checks", Config{version: true}, true},
	}
	for _, v := range tests {
		if _, ok := v.conf.buildConfig(); ok != v.ok {
			t.Errorf("%s: got ok=%t", v.label, ok)
		}
	}
}

func TestNewSessionGeometry(t *testing.T) {
	tests := []struct {
		dialect    string
		cols, rows int
		graphics   bool
	}{
		{"ansi", 80, 25, false},
		{"mode7", 40, 25, false},
		{"rip", 80, 25, true},
		{"skypix", 80, 25, true},
	}
	for _, v := range tests {
		ses := newSession(&Config{dialect: v.dialect}, nil)
		if ses.scr.Width() != v.cols || ses.scr.Height() != v.rows {
			t.Errorf("%s: screen %dx%d", v.dialect, ses.scr.Width(), ses.scr.Height())
		}
		if ses.graphics != v.graphics {
			t.Errorf("%s: graphics=%t", v.dialect, ses.graphics)
		}
		if ses.parser == nil || ses.sink == nil {
			t.Errorf("%s: session not wired", v.dialect)
		}
	}
}

func TestNewSessionRipDrawsPixels(t *testing.T) {
	ses := newSession(&Config{dialect: "rip"}, nil)
	ses.sink.EmitRip(command.RipCommand{Op: command.RipColor, Args: []int{5}})
	ses.sink.EmitRip(command.RipCommand{Op: command.RipPixel, Args: []int{10, 20}})
	if got := ses.pixels.Pixel(10, 20); got != 5 {
		t.Fatalf("pixel (10,20) = %d, want 5", got)
	}
}

func TestNewSessionSkypixDrawsPixels(t *testing.T) {
	ses := newSession(&Config{dialect: "skypix"}, nil)
	ses.sink.EmitSkypix(command.SkypixCommand{Op: command.SkypixSetPenA, Args: []int{3}})
	ses.sink.EmitSkypix(command.SkypixCommand{Op: command.SkypixSetPixel, Args: []int{15, 7}})
	if got := ses.pixels.Pixel(15, 7); got != 3 {
		t.Fatalf("pixel (15,7) = %d, want 3", got)
	}
}

func TestViewSinkAnswersRipQuery(t *testing.T) {
	var reply bytes.Buffer
	ses := newSession(&Config{dialect: "rip"}, &reply)
	ses.sink.Request(command.RequestRipTerminalID)
	if got := reply.String(); got != ripTerminalID {
		t.Fatalf("terminal id reply %q", got)
	}
}

func TestViewSinkDropsQueryWithoutReply(t *testing.T) {
	ses := newSession(&Config{dialect: "rip"}, nil)
	// must not panic
	ses.sink.Request(command.RequestRipTerminalID)
}

func TestSessionFeedReplaysAnsi(t *testing.T) {
	ses := newSession(&Config{dialect: "ansi"}, nil)
	ses.feed([]byte("\x1b[2;3HAB"))
	ses.flush()
	if got := ses.scr.CharAt(screen.Position{X: 2, Y: 1}).Ch; got != 'A' {
		t.Fatalf("cell (2,1) = %q", got)
	}
	if got := ses.scr.CharAt(screen.Position{X: 3, Y: 1}).Ch; got != 'B' {
		t.Fatalf("cell (3,1) = %q", got)
	}
}

// fakeTerminfo builds a synthetic capability set with readable markers.
func fakeTerminfo() *terminfo.Terminfo {
	return &terminfo.Terminfo{
		Name:      "fake",
		Colors:    8,
		AttrOff:   "<off>",
		Bold:      "<bold>",
		Dim:       "<dim>",
		Underline: "<ul>",
		Blink:     "<blink>",
		SetFg:     "<fg%p1%d>",
		SetBg:     "<bg%p1%d>",
		SetCursor: "<goto%p1%d,%p2%d>",
	}
}

func TestRenderFrameContent(t *testing.T) {
	scr := screen.NewTextScreen(4, 2)
	scr.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 'H', Attr: screen.DefaultAttr()})
	bold := screen.DefaultAttr()
	bold.SetFlag(screen.AttrBold, true)
	bold.Fg = 4
	scr.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 'i', Attr: bold})
	scr.Caret().Pos = screen.Position{X: 2, Y: 0}

	var out bytes.Buffer
	d := &display{ti: fakeTerminfo(), out: &out, legacy: false}
	d.renderFrame(scr)
	got := out.String()

	for _, want := range []string{
		"<goto0,0>", "<goto1,0>", // row starts
		"H", "i",
		"<off><fg7><bg0>",
		"<off><bold><fg4><bg0>",
		"<goto0,2>", // caret park, row 0 col 2
	} {
		if !strings.Contains(got, want) {
			t.Errorf("frame misses %q in %q", want, got)
		}
	}
}

func TestRenderFrameLegacyCharset(t *testing.T) {
	scr := screen.NewTextScreen(2, 1)
	scr.SetChar(screen.Position{X: 0, Y: 0}, screen.Cell{Ch: 0xB0, Attr: screen.DefaultAttr()})
	scr.SetChar(screen.Position{X: 1, Y: 0}, screen.Cell{Ch: 0xDB, Attr: screen.DefaultAttr()})

	var out bytes.Buffer
	d := &display{ti: fakeTerminfo(), out: &out, legacy: true}
	d.renderFrame(scr)
	got := out.String()
	if !strings.Contains(got, "░") || !strings.Contains(got, "█") {
		t.Fatalf("legacy glyphs missing in %q", got)
	}
}

func TestCp437Table(t *testing.T) {
	tests := []struct {
		b byte
		r rune
	}{
		{0x00, ' '},
		{0x01, '☺'},
		{0x41, 'A'},
		{0x7F, '⌂'},
		{0xB2, '▓'},
		{0xCD, '═'},
		{0xE1, 'ß'},
		{0xFE, '■'},
	}
	for _, v := range tests {
		if got := cp437[v.b]; got != v.r {
			t.Errorf("cp437[%#x] = %q, want %q", v.b, got, v.r)
		}
	}
}

func TestDisplayRuneConcealed(t *testing.T) {
	a := screen.DefaultAttr()
	a.SetFlag(screen.AttrConcealed, true)
	d := &display{ti: fakeTerminfo()}
	if got := d.displayRune(screen.Cell{Ch: 'x', Attr: a}); got != ' ' {
		t.Fatalf("concealed cell shows %q", got)
	}
}
