// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package rip

import (
	"reflect"
	"testing"

	"github.com/ericwq/bbsterm/command"
)

type recorder struct {
	printed []byte
	cmds    []command.Command
	rip     []command.RipCommand
	errs    []*command.ParseError
	reqs    []command.TerminalRequest
}

func (r *recorder) Print(data []byte)                     { r.printed = append(r.printed, data...) }
func (r *recorder) Emit(c command.Command)                { r.cmds = append(r.cmds, c) }
func (r *recorder) EmitRip(c command.RipCommand)          { r.rip = append(r.rip, c) }
func (r *recorder) EmitSkypix(c command.SkypixCommand)    {}
func (r *recorder) DeviceControl(d command.DeviceControl) {}
func (r *recorder) Osc(o command.OperatingSystemCommand)  {}
func (r *recorder) Aps(data []byte)                       {}
func (r *recorder) PlayMusic(m command.Music)             {}
func (r *recorder) Request(q command.TerminalRequest)     { r.reqs = append(r.reqs, q) }
func (r *recorder) ReportError(e *command.ParseError)     { r.errs = append(r.errs, e) }

func parseAll(t *testing.T, input string) *recorder {
	t.Helper()
	var rec recorder
	p := NewParser()
	p.Parse([]byte(input), &rec)
	return &rec
}

func TestParseDrawingCommands(t *testing.T) {
	tc := []struct {
		label  string
		input  string
		expect []command.RipCommand
	}{
		{"pixel", "!|X0102\n", []command.RipCommand{
			{Op: command.RipPixel, Args: []int{1, 2}},
		}},
		{"line", "!|L00010203\n", []command.RipCommand{
			{Op: command.RipLine, Args: []int{0, 1, 2, 3}},
		}},
		{"base36 coords", "!|X0A0Z\n", []command.RipCommand{
			{Op: command.RipPixel, Args: []int{10, 35}},
		}},
		{"color", "!|c0F\n", []command.RipCommand{
			{Op: command.RipColor, Args: []int{15}},
		}},
		{"goto", "!|g0509\n", []command.RipCommand{
			{Op: command.RipGotoXY, Args: []int{5, 9}},
		}},
		{"circle", "!|C01020A\n", []command.RipCommand{
			{Op: command.RipCircle, Args: []int{1, 2, 10}},
		}},
		{"bar", "!|B0102030A\n", []command.RipCommand{
			{Op: command.RipBar, Args: []int{1, 2, 3, 10}},
		}},
		{"fill", "!|F01020F\n", []command.RipCommand{
			{Op: command.RipFill, Args: []int{1, 2, 15}},
		}},
		{"fill style", "!|S0102\n", []command.RipCommand{
			{Op: command.RipFillStyle, Args: []int{1, 2}},
		}},
		{"write mode", "!|W01\n", []command.RipCommand{
			{Op: command.RipWriteMode, Args: []int{1}},
		}},
		{"polygon", "!|P0201020304\n", []command.RipCommand{
			{Op: command.RipPolygon, Args: []int{1, 2, 3, 4}},
		}},
		{"text", "!|Thello world\n", []command.RipCommand{
			{Op: command.RipText, Text: []byte("hello world")},
		}},
		{"text xy", "!|@0102Hi\n", []command.RipCommand{
			{Op: command.RipTextXY, Args: []int{1, 2}, Text: []byte("Hi")},
		}},
		{"chained", "!|X0102|L00010203\n", []command.RipCommand{
			{Op: command.RipPixel, Args: []int{1, 2}},
			{Op: command.RipLine, Args: []int{0, 1, 2, 3}},
		}},
		{"button", "!|1U00010203040506OK\n", []command.RipCommand{
			{Op: command.RipButton, Args: []int{0, 1, 2, 3, 4, 5, 6}, Text: []byte("OK")},
		}},
		{"no more", "!|#", []command.RipCommand{
			{Op: command.RipNoMore},
		}},
	}

	for _, v := range tc {
		t.Run(v.label, func(t *testing.T) {
			rec := parseAll(t, v.input)
			if !reflect.DeepEqual(rec.rip, v.expect) {
				t.Errorf("%s: got %#v, expect %#v", v.label, rec.rip, v.expect)
			}
			if len(rec.errs) != 0 {
				t.Errorf("%s: unexpected errors %v", v.label, rec.errs)
			}
		})
	}
}

func TestParseImmediateCommands(t *testing.T) {
	// reset windows completes immediately; the pipe starts the next command
	rec := parseAll(t, "!|*|X0102\n")
	expect := []command.RipCommand{
		{Op: command.RipResetWindows},
		{Op: command.RipPixel, Args: []int{1, 2}},
	}
	if !reflect.DeepEqual(rec.rip, expect) {
		t.Errorf("got %#v, expect %#v", rec.rip, expect)
	}
}

func TestParseTextWindow(t *testing.T) {
	rec := parseAll(t, "!|w0001020311\n")
	expect := []command.RipCommand{
		{Op: command.RipTextWindow, Args: []int{0, 1, 2, 3, 1, 1}},
	}
	if !reflect.DeepEqual(rec.rip, expect) {
		t.Errorf("got %#v, expect %#v", rec.rip, expect)
	}
}

func TestParseArityError(t *testing.T) {
	// line terminated after two of four coordinates
	rec := parseAll(t, "!|L0001\n")
	if len(rec.rip) != 0 {
		t.Errorf("short command emitted %#v", rec.rip)
	}
	if len(rec.errs) != 1 || rec.errs[0].Kind != command.ErrArityMismatch {
		t.Errorf("expect arity error, got %v", rec.errs)
	}
}

func TestParseInvalidParameter(t *testing.T) {
	rec := parseAll(t, "!|X01..")
	if len(rec.errs) != 1 {
		t.Fatalf("expect one error, got %v", rec.errs)
	}
	// parser drops back to the ANSI layer; the second dot prints
	if string(rec.printed) != "." {
		t.Errorf("printed %q", rec.printed)
	}
}

func TestParseLineContinuation(t *testing.T) {
	rec := parseAll(t, "!|X01\\junk\n02\n")
	expect := []command.RipCommand{
		{Op: command.RipPixel, Args: []int{1, 2}},
	}
	if !reflect.DeepEqual(rec.rip, expect) {
		t.Errorf("got %#v, expect %#v", rec.rip, expect)
	}
}

func TestAnsiPassthrough(t *testing.T) {
	rec := parseAll(t, "hello\x1b[1mworld")
	if string(rec.printed) != "helloworld" {
		t.Errorf("printed %q", rec.printed)
	}
	expect := []command.Command{command.SGR{Attr: command.IntensityAttr(command.IntensityBold)}}
	if !reflect.DeepEqual(rec.cmds, expect) {
		t.Errorf("got %#v", rec.cmds)
	}
}

func TestExclaimWithoutPipe(t *testing.T) {
	// a lone exclamation mark is plain text
	rec := parseAll(t, "!x")
	if string(rec.printed) != "!x" {
		t.Errorf("printed %q", rec.printed)
	}
}

func TestTerminalIDRequest(t *testing.T) {
	rec := parseAll(t, "\x1b[!")
	if len(rec.reqs) != 1 || rec.reqs[0] != command.RequestRipTerminalID {
		t.Errorf("got %v", rec.reqs)
	}

	rec = parseAll(t, "\x1b[0!")
	if len(rec.reqs) != 1 || rec.reqs[0] != command.RequestRipTerminalID {
		t.Errorf("got %v", rec.reqs)
	}
}

func TestEnableDisable(t *testing.T) {
	var rec recorder
	p := NewParser()

	// ESC[1! disables RIPscrip: commands print as text
	p.Parse([]byte("\x1b[1!"), &rec)
	p.Parse([]byte("!X"), &rec)
	if string(rec.printed) != "!X" {
		t.Errorf("printed %q while disabled", rec.printed)
	}

	// ESC[2! re-enables
	p.Parse([]byte("\x1b[2!"), &rec)
	p.Parse([]byte("!|X0102\n"), &rec)
	expect := []command.RipCommand{{Op: command.RipPixel, Args: []int{1, 2}}}
	if !reflect.DeepEqual(rec.rip, expect) {
		t.Errorf("got %#v", rec.rip)
	}
}

func TestParseChunked(t *testing.T) {
	input := []byte("ab!|X0102|L00010203\ncd\x1b[1m")

	var whole recorder
	NewParser().Parse(input, &whole)

	var split recorder
	q := NewParser()
	for _, b := range input {
		q.Parse([]byte{b}, &split)
	}

	if string(whole.printed) != string(split.printed) {
		t.Errorf("printed %q vs %q", whole.printed, split.printed)
	}
	if !reflect.DeepEqual(whole.rip, split.rip) {
		t.Errorf("rip diverge: %#v vs %#v", whole.rip, split.rip)
	}
	if !reflect.DeepEqual(whole.cmds, split.cmds) {
		t.Errorf("commands diverge: %#v vs %#v", whole.cmds, split.cmds)
	}
}
