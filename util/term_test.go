// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"testing"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

func TestSetIUTF8(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Fatalf("open pty: %s", err)
	}
	defer ptmx.Close()
	defer tty.Close()

	flag, err := CheckIUTF8(int(ptmx.Fd()))
	if err != nil {
		t.Fatalf("check master: %s", err)
	}
	if flag {
		t.Error("fresh pty master already has IUTF8")
	}

	if err := SetIUTF8(int(ptmx.Fd())); err != nil {
		t.Fatalf("set master: %s", err)
	}
	if flag, _ = CheckIUTF8(int(ptmx.Fd())); !flag {
		t.Error("IUTF8 not set on master")
	}

	// master and slave share the termios
	if flag, _ = CheckIUTF8(int(tty.Fd())); !flag {
		t.Error("IUTF8 not visible on slave")
	}
}

func TestIUTF8NonTerminal(t *testing.T) {
	nullFD, err := os.OpenFile("/dev/null", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/null: %s", err)
	}
	defer nullFD.Close()

	if _, err := CheckIUTF8(int(nullFD.Fd())); err == nil {
		t.Error("CheckIUTF8 on /dev/null should fail")
	}
	if err := SetIUTF8(int(nullFD.Fd())); err == nil {
		t.Error("SetIUTF8 on /dev/null should fail")
	}
}

func TestConvertWinsize(t *testing.T) {
	tests := []struct {
		label  string
		win    *unix.Winsize
		expect *pty.Winsize
	}{
		{
			"normal case",
			&unix.Winsize{Col: 80, Row: 40, Xpixel: 640, Ypixel: 400},
			&pty.Winsize{Cols: 80, Rows: 40, X: 640, Y: 400},
		},
		{"nil case", nil, nil},
	}
	for _, v := range tests {
		got := ConvertWinsize(v.win)
		if v.expect == nil {
			if got != nil {
				t.Errorf("%s: expect nil, got %v", v.label, got)
			}
			continue
		}
		if got == nil || *got != *v.expect {
			t.Errorf("%s: expect %v, got %v", v.label, v.expect, got)
		}
	}
}
