// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/ericwq/bbsterm/util"
)

// frameInterval paces the live render loop. The reader marks frames
// through the screen version counter; the loop repaints on change.
const frameInterval = 33 * time.Millisecond

// runLive runs a command under a pty and parses its output as it
// arrives. Keystrokes pass through raw; terminal query answers go back
// into the pty.
func runLive(conf *Config) error {
	disp, err := newDisplay(os.Stdout, !conf.utf8)
	if err != nil {
		return err
	}

	parts := strings.Fields(conf.execCmd)
	cmd := exec.Command(parts[0], parts[1:]...)
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return err
	}
	defer ptmx.Close()

	if err := util.SetIUTF8(int(ptmx.Fd())); err != nil {
		util.Logger.Warn("set IUTF8 failed", "error", err)
	}

	ses := newSession(conf, ptmx)
	pty.Setsize(ptmx, &pty.Winsize{
		Cols: uint16(ses.scr.Width()),
		Rows: uint16(ses.scr.Height()),
	})

	savedTermios, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer term.Restore(int(os.Stdin.Fd()), savedTermios)

	disp.open()
	defer disp.close()

	// the child follows the host window; the parse screen keeps the
	// dialect geometry
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			ws, err := unix.IoctlGetWinsize(int(os.Stdin.Fd()), unix.TIOCGWINSZ)
			if err != nil {
				util.Logger.Warn("read window size failed", "error", err)
				continue
			}
			pty.Setsize(ptmx, util.ConvertWinsize(ws))
		}
	}()

	// keystrokes go to the child until the pty closes
	go io.Copy(ptmx, os.Stdin)

	done := make(chan struct{})
	eg := errgroup.Group{}
	eg.Go(func() error {
		defer close(done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				ses.feed(buf[:n])
			}
			if err != nil {
				// EIO is the normal pty close on child exit
				if errors.Is(err, io.EOF) || errors.Is(err, unix.EIO) {
					return nil
				}
				return err
			}
		}
	})
	eg.Go(func() error {
		ticker := time.NewTicker(frameInterval)
		defer ticker.Stop()
		var last uint64
		for {
			select {
			case <-done:
				ses.flush()
				ses.render(disp)
				return nil
			case <-ticker.C:
				if v := ses.version(); v != last {
					last = v
					ses.render(disp)
				}
			}
		}
	})

	if err := eg.Wait(); err != nil {
		cmd.Wait()
		return err
	}
	return cmd.Wait()
}
