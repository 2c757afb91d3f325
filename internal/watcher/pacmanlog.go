// Package watcher tails the pacman log during an installer invocation
// and reports per-package install events, giving the progress display
// package-level granularity that the installer's exit code cannot.
// Everything here is best-effort: a missing log or a watch error
// degrades to no events, never to a failed install.
package watcher

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultLogPath is where pacman writes its transaction log.
const DefaultLogPath = "/var/log/pacman.log"

// installedLine matches ALPM install records, e.g.
// [2026-08-29T10:12:01+0000] [ALPM] installed firefox (129.0-1)
var installedLine = regexp.MustCompile(`\[ALPM\] (?:installed|reinstalled|upgraded) (\S+) `)

// LogWatcher follows appended pacman log lines from the moment Start is
// called. Lines written before Start are never reported.
type LogWatcher struct {
	path        string
	onInstalled func(pkg string)

	fw     *fsnotify.Watcher
	offset int64
	buf    string

	done chan struct{}
	wg   sync.WaitGroup
}

// New returns a watcher for the given log path. onInstalled is called
// from the watcher goroutine once per package install event.
func New(path string, onInstalled func(pkg string)) *LogWatcher {
	return &LogWatcher{
		path:        path,
		onInstalled: onInstalled,
		done:        make(chan struct{}),
	}
}

// Start begins tailing from the current end of the log. The log file
// must already exist; callers treat an error here as "no live progress"
// and continue.
func (w *LogWatcher) Start() error {
	info, err := os.Stat(w.path)
	if err != nil {
		return fmt.Errorf("cannot stat %s: %w", w.path, err)
	}
	w.offset = info.Size()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cannot create watcher: %w", err)
	}
	if err := fw.Add(w.path); err != nil {
		fw.Close()
		return fmt.Errorf("cannot watch %s: %w", w.path, err)
	}
	w.fw = fw

	w.wg.Add(1)
	go w.run()
	return nil
}

// Stop ends the tail after draining any already-appended lines.
func (w *LogWatcher) Stop() {
	if w.fw == nil {
		return
	}
	close(w.done)
	w.wg.Wait()
	w.fw.Close()
}

func (w *LogWatcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) {
				w.consume()
			}
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			// Watch errors end live progress but not the install.
			return
		case <-w.done:
			w.consume()
			return
		}
	}
}

// consume reads newly appended bytes and emits an event per complete
// install line. A trailing partial line is kept for the next read.
func (w *LogWatcher) consume() {
	f, err := os.Open(w.path)
	if err != nil {
		return
	}
	defer f.Close()

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return
	}

	data, err := io.ReadAll(f)
	if err != nil || len(data) == 0 {
		return
	}
	w.offset += int64(len(data))

	w.buf += string(data)
	for {
		idx := strings.IndexByte(w.buf, '\n')
		if idx < 0 {
			break
		}
		line := w.buf[:idx]
		w.buf = w.buf[idx+1:]

		if pkg, ok := parseInstalled(line); ok && w.onInstalled != nil {
			w.onInstalled(pkg)
		}
	}
}

// parseInstalled extracts the package name from an ALPM install line.
func parseInstalled(line string) (string, bool) {
	m := installedLine.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
