package app

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2/data/binding"
)

// logPane collects lines written by the service logger and publishes the most
// recent ones to the binding behind the log entry.
type logPane struct {
	mu    sync.Mutex
	lines []string
	max   int
	out   binding.String
}

func newLogPane(out binding.String, max int) *logPane {
	return &logPane{out: out, max: max}
}

func (p *logPane) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for line := range strings.Lines(string(b)) {
		if line = strings.TrimRight(line, "\r\n"); line != "" {
			p.lines = append(p.lines, line)
		}
	}
	if p.max > 0 && len(p.lines) > p.max {
		p.lines = append(p.lines[:0], p.lines[len(p.lines)-p.max:]...)
	}
	_ = p.out.Set(strings.Join(p.lines, "\n"))
	return len(b), nil
}
