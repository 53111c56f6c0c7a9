package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/standardbeagle/grimoire/internal/debug"
)

// DefaultDebounce is used when NewWatcher is given a non-positive window.
const DefaultDebounce = 200 * time.Millisecond

// Watcher reports dataset file changes after a quiet period. The callback
// runs on the watcher's own goroutine, one batch at a time.
type Watcher struct {
	fs       *fsnotify.Watcher
	patterns []string
	debounce time.Duration
	onChange func(paths []string)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statsMu sync.RWMutex
	stats   WatchStats
}

// WatchStats summarizes watcher activity.
type WatchStats struct {
	EventsSeen    int64
	Batches       int64
	Errors        int64
	LastBatchTime time.Time
}

// NewWatcher watches the files selected by src. onChange receives the sorted
// set of paths touched since the previous batch.
func NewWatcher(src Sources, debounce time.Duration, onChange func(paths []string)) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	patterns := make([]string, 0, len(src.Spells)+len(src.Features))
	for _, p := range append(append([]string{}, src.Spells...), src.Features...) {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		patterns = append(patterns, filepath.ToSlash(filepath.Clean(p)))
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		fs:       fs,
		patterns: patterns,
		debounce: debounce,
		onChange: onChange,
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start adds watches and begins processing events.
func (w *Watcher) Start() error {
	dirs, err := w.watchDirs()
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	debug.LogLoad("watching %d directories for dataset changes\n", len(dirs))

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop ends event processing. Pending events are dropped.
func (w *Watcher) Stop() error {
	w.cancel()
	err := w.fs.Close()
	w.wg.Wait()
	return err
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() WatchStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	return w.stats
}

// watchDirs returns the static base directory of every pattern, plus every
// directory below it for recursive patterns.
func (w *Watcher) watchDirs() ([]string, error) {
	seen := make(map[string]bool)
	var dirs []string
	add := func(d string) {
		if !seen[d] {
			seen[d] = true
			dirs = append(dirs, d)
		}
	}

	for _, pattern := range w.patterns {
		base, _ := doublestar.SplitPattern(pattern)
		base = filepath.FromSlash(base)
		if !hasMeta(pattern) {
			base = filepath.Dir(filepath.FromSlash(pattern))
		}
		info, err := os.Stat(base)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("watch %s: not a directory", base)
		}
		add(base)
		if !strings.Contains(pattern, "**") {
			continue
		}
		err = filepath.WalkDir(base, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

func (w *Watcher) matches(path string) bool {
	slashed := filepath.ToSlash(path)
	for _, pattern := range w.patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	pending := make(map[string]bool)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !w.handleEvent(event) {
				continue
			}
			pending[event.Name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.statsMu.Lock()
			w.stats.Errors++
			w.statsMu.Unlock()
			debug.LogLoad("watcher error: %v\n", err)

		case <-fire:
			fire = nil
			paths := make([]string, 0, len(pending))
			for p := range pending {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			pending = make(map[string]bool)

			w.statsMu.Lock()
			w.stats.Batches++
			w.stats.LastBatchTime = time.Now()
			w.statsMu.Unlock()

			debug.LogLoad("dataset changed: %d files\n", len(paths))
			if w.onChange != nil {
				w.onChange(paths)
			}
		}
	}
}

// handleEvent reports whether event touches a dataset file. New directories
// under a recursive pattern are watched as they appear.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.recursive() {
				if err := w.fs.Add(event.Name); err != nil {
					debug.LogLoad("failed to watch new directory %s: %v\n", event.Name, err)
				}
			}
			return false
		}
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	if !w.matches(event.Name) {
		return false
	}

	w.statsMu.Lock()
	w.stats.EventsSeen++
	w.statsMu.Unlock()
	return true
}

func (w *Watcher) recursive() bool {
	for _, p := range w.patterns {
		if strings.Contains(p, "**") {
			return true
		}
	}
	return false
}
