// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

// Sink receives the output of a parser. A parser never interprets what a
// command means for the display; it decodes bytes into commands and hands
// them over. Implementations must be safe for use by one parser goroutine.
type Sink interface {
	// Print receives a run of literal bytes that are not part of any
	// sequence. Encoding is the sink's business: CP437 screens map each
	// byte through their charset, UTF-8 sinks feed an incremental decoder.
	// The slice is only valid for the duration of the call.
	Print(data []byte)

	// Emit receives one decoded command.
	Emit(c Command)

	// EmitRip receives one RIPscrip command.
	EmitRip(c RipCommand)

	// EmitSkypix receives one SkyPix command.
	EmitSkypix(c SkypixCommand)

	// DeviceControl receives a reassembled DCS payload.
	DeviceControl(d DeviceControl)

	// Osc receives a reassembled operating system command.
	Osc(o OperatingSystemCommand)

	// Aps receives an application program string, terminator stripped.
	Aps(data []byte)

	// PlayMusic receives a parsed ANSI music score.
	PlayMusic(m Music)

	// Request receives a query the remote side expects an answer to.
	Request(r TerminalRequest)

	// ReportError receives a recoverable parse error. The parser has
	// already resynchronized when this is called.
	ReportError(e *ParseError)
}

// TerminalRequest is a query from the remote side that wants a reply on
// the return channel.
type TerminalRequest uint8

const (
	// RequestRipTerminalID is ESC [ 0 !, the RIPscrip version query.
	RequestRipTerminalID TerminalRequest = iota
)

// Parser decodes a byte stream into commands delivered to a Sink.
// Parse may be called with arbitrary chunk boundaries; state carries
// over between calls, so splitting an input anywhere yields the same
// command stream as parsing it whole.
type Parser interface {
	Parse(input []byte, sink Sink)

	// Flush finalizes any sequence still pending at end of stream.
	Flush(sink Sink)
}

// NopSink discards everything. Useful as an embedding base for sinks
// that only care about a subset of the callbacks.
type NopSink struct{}

func (NopSink) Print([]byte)                {}
func (NopSink) Emit(Command)                {}
func (NopSink) EmitRip(RipCommand)          {}
func (NopSink) EmitSkypix(SkypixCommand)    {}
func (NopSink) DeviceControl(DeviceControl) {}
func (NopSink) Osc(OperatingSystemCommand)  {}
func (NopSink) Aps([]byte)                  {}
func (NopSink) PlayMusic(Music)             {}
func (NopSink) Request(TerminalRequest)     {}
func (NopSink) ReportError(*ParseError)     {}
