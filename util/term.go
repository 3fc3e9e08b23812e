// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// CheckIUTF8 reports whether the terminal on fd has the IUTF8 input
// flag set.
func CheckIUTF8(fd int) (bool, error) {
	termios, err := unix.IoctlGetTermios(fd, GetTermios)
	if err != nil {
		return false, err
	}
	return (termios.Iflag & unix.IUTF8) != 0, nil
}

// SetIUTF8 marks the terminal on fd as taking UTF-8 input, so the line
// discipline erases multibyte characters as units.
func SetIUTF8(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, GetTermios)
	if err != nil {
		return err
	}
	termios.Iflag |= unix.IUTF8
	return unix.IoctlSetTermios(fd, SetTermios, termios)
}

// ConvertWinsize translates a kernel window size into the pty
// package's shape. A nil size stays nil.
func ConvertWinsize(windowSize *unix.Winsize) *pty.Winsize {
	if windowSize == nil {
		return nil
	}
	return &pty.Winsize{
		Cols: windowSize.Col,
		Rows: windowSize.Row,
		X:    windowSize.Xpixel,
		Y:    windowSize.Ypixel,
	}
}
