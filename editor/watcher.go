// Copyright 2026 wangqi. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package editor

import (
	"os"
	"sort"
	"sync"
	"time"

	"github.com/ericwq/bbsterm/util"
)

// FontWatcher watches a font directory in the background and keeps a
// snapshot of its file names. The scan goroutine publishes through a
// mutex-guarded slice plus a notification channel; readers never touch
// the filesystem.
type FontWatcher struct {
	dir      string
	interval time.Duration

	mu    sync.Mutex
	files []string

	changed chan struct{}
	stop    chan struct{}
	wg      sync.WaitGroup
}

// NewFontWatcher builds a watcher for dir polling at the given
// interval; an interval of zero means one second.
func NewFontWatcher(dir string, interval time.Duration) *FontWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FontWatcher{
		dir:      dir,
		interval: interval,
		changed:  make(chan struct{}, 1),
		stop:     make(chan struct{}),
	}
}

// Start scans once synchronously, then keeps scanning in the
// background until Stop.
func (w *FontWatcher) Start() {
	w.Refresh()
	w.wg.Add(1)
	go w.run()
}

// Stop ends the background scan and waits for it.
func (w *FontWatcher) Stop() {
	close(w.stop)
	w.wg.Wait()
}

// Files reports the current snapshot, sorted by name.
func (w *FontWatcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, len(w.files))
	copy(out, w.files)
	return out
}

// Changed signals after every scan that saw a different file set. The
// channel holds one pending notification; coalesced signals are fine
// because readers re-read the whole snapshot.
func (w *FontWatcher) Changed() <-chan struct{} { return w.changed }

// Refresh scans the directory now and updates the snapshot. It
// reports whether the file set changed.
func (w *FontWatcher) Refresh() bool {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		util.Logger.Warn("font watcher scan failed", "dir", w.dir, "error", err)
		return false
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	w.mu.Lock()
	changed := !equalStrings(w.files, files)
	if changed {
		w.files = files
	}
	w.mu.Unlock()

	if changed {
		select {
		case w.changed <- struct{}{}:
		default:
		}
	}
	return changed
}

func (w *FontWatcher) run() {
	defer w.wg.Done()
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.Refresh()
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
