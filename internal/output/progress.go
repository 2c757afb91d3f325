// Package output renders terminal output for archsetup: a group-level
// progress bar fed by pacman log events and tables for run reports.
// Rendering is TTY-aware; piped output only gets completion lines.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// writerIsTTY returns true if the writer exposes an Fd() method and that
// fd is a terminal. Plain io.Writer values such as *bytes.Buffer are not
// terminals.
func writerIsTTY(w io.Writer) bool {
	type fder interface {
		Fd() uintptr
	}
	if f, ok := w.(fder); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// ProgressBar displays install progress with a live package label.
// Example: [=========>          ]  45% xorg: installing xorg-server
type ProgressBar struct {
	total   int
	current int
	label   string
	width   int
	mu      sync.Mutex
	writer  io.Writer
}

// NewProgress creates a progress bar over total steps.
func NewProgress(total int, label string) *ProgressBar {
	return &ProgressBar{
		total:  total,
		label:  label,
		width:  40,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer (useful for testing).
func (p *ProgressBar) SetWriter(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writer = w
}

// SetLabel updates the label shown next to the bar and redraws. Safe to
// call from the log-watcher goroutine.
func (p *ProgressBar) SetLabel(label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.label = label
	p.render()
}

// Increment advances the bar by one step and redraws.
func (p *ProgressBar) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current >= p.total {
		// Already complete; a redundant step must not re-emit the
		// completion line on non-TTY writers.
		return
	}
	p.current++
	p.render()
}

// Finish completes the bar and terminates the line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	alreadyDone := p.current == p.total
	p.current = p.total

	if writerIsTTY(p.writer) {
		p.render()
		fmt.Fprintln(p.writer)
	} else if !alreadyDone {
		// Non-TTY render emits only the completion line; skip when the
		// last Increment already printed it.
		p.render()
	}
}

// render draws the bar; callers hold the lock.
func (p *ProgressBar) render() {
	percentage := 0
	filled := 0
	if p.total > 0 {
		percentage = (p.current * 100) / p.total
		filled = (p.current * p.width) / p.total
	}

	var bar strings.Builder
	bar.WriteByte('[')
	for i := 0; i < p.width; i++ {
		switch {
		case i < filled-1:
			bar.WriteByte('=')
		case i == filled-1:
			bar.WriteByte('>')
		default:
			bar.WriteByte(' ')
		}
	}
	bar.WriteByte(']')

	if writerIsTTY(p.writer) {
		// Clear to end of line so a shrinking label leaves no residue.
		fmt.Fprintf(p.writer, "\r%s %3d%% %s\x1b[K", bar.String(), percentage, p.label)
	} else if p.current == p.total {
		fmt.Fprintf(p.writer, "%s %3d%% %s\n", bar.String(), percentage, p.label)
	}
}
