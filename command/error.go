// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package command

import "fmt"

// ErrorKind classifies a parse error.
type ErrorKind uint8

const (
	// ErrInvalidParameter: a numeric value outside the command's legal
	// domain. The command is dropped, parsing continues.
	ErrInvalidParameter ErrorKind = iota
	// ErrMalformedSequence: unknown final byte, bad intermediate, or a
	// string payload that fails to decode. The parser resyncs to ground.
	ErrMalformedSequence
	// ErrArityMismatch: a dialect's fixed-argument command received the
	// wrong number of arguments.
	ErrArityMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidParameter:
		return "invalid parameter"
	case ErrMalformedSequence:
		return "malformed sequence"
	default:
		return "arity mismatch"
	}
}

// ParseError is the structured error reported through Sink.ReportError.
// A parser never halts on bad input; it reports and resynchronizes.
type ParseError struct {
	Kind    ErrorKind
	Command string // command or sequence name, for ErrInvalidParameter
	Value   int    // the offending value
	Desc    string // description, for ErrMalformedSequence
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrInvalidParameter:
		return fmt.Sprintf("%s: %s value %d", e.Kind, e.Command, e.Value)
	case ErrArityMismatch:
		return fmt.Sprintf("%s: %s got %d arguments", e.Kind, e.Command, e.Value)
	default:
		return fmt.Sprintf("%s: %s", e.Kind, e.Desc)
	}
}

// InvalidParameter builds an invalid-parameter error.
func InvalidParameter(cmd string, value int) *ParseError {
	return &ParseError{Kind: ErrInvalidParameter, Command: cmd, Value: value}
}

// MalformedSequence builds a malformed-sequence error.
func MalformedSequence(desc string) *ParseError {
	return &ParseError{Kind: ErrMalformedSequence, Desc: desc}
}

// ArityMismatch builds an arity-mismatch error.
func ArityMismatch(cmd string, got int) *ParseError {
	return &ParseError{Kind: ErrArityMismatch, Command: cmd, Value: got}
}
