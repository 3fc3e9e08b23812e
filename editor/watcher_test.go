// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package editor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFontFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte{0}, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFontWatcherSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeFontFile(t, dir, "topaz.f16")
	writeFontFile(t, dir, "ibm-vga.f14")
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	w := NewFontWatcher(dir, time.Minute)
	if changed := w.Refresh(); !changed {
		t.Fatal("first scan reported no change")
	}
	files := w.Files()
	if len(files) != 2 || files[0] != "ibm-vga.f14" || files[1] != "topaz.f16" {
		t.Fatalf("snapshot %v", files)
	}

	// the snapshot is a copy; mutating it must not leak back
	files[0] = "mutated"
	if got := w.Files()[0]; got != "ibm-vga.f14" {
		t.Fatalf("snapshot aliased internal state: %q", got)
	}
}

func TestFontWatcherChangeSignal(t *testing.T) {
	dir := t.TempDir()
	w := NewFontWatcher(dir, time.Minute)
	w.Refresh()

	writeFontFile(t, dir, "new.f16")
	if changed := w.Refresh(); !changed {
		t.Fatal("added file not detected")
	}
	select {
	case <-w.Changed():
	default:
		t.Fatal("no change notification pending")
	}

	if changed := w.Refresh(); changed {
		t.Fatal("unchanged directory reported a change")
	}
	select {
	case <-w.Changed():
		t.Fatal("spurious change notification")
	default:
	}
}

func TestFontWatcherStartStop(t *testing.T) {
	dir := t.TempDir()
	writeFontFile(t, dir, "a.f16")
	w := NewFontWatcher(dir, 5*time.Millisecond)
	w.Start()
	defer w.Stop()

	if got := w.Files(); len(got) != 1 {
		t.Fatalf("initial synchronous scan missing: %v", got)
	}

	writeFontFile(t, dir, "b.f16")
	deadline := time.After(2 * time.Second)
	for {
		if len(w.Files()) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("background scan never picked up the new file")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestFontWatcherMissingDir(t *testing.T) {
	w := NewFontWatcher(filepath.Join(t.TempDir(), "absent"), time.Minute)
	if changed := w.Refresh(); changed {
		t.Fatal("missing directory reported a change")
	}
	if got := w.Files(); len(got) != 0 {
		t.Fatalf("files from a missing directory: %v", got)
	}
}

func TestFontWatcherRefreshEmptyDirFirstScan(t *testing.T) {
	w := NewFontWatcher(t.TempDir(), time.Minute)
	if changed := w.Refresh(); changed {
		t.Fatal("empty directory differs from the empty initial snapshot")
	}
}
