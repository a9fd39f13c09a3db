package scrapers

import (
	"context"
	"regexp"
	"sync"
	"time"
)

// VideoHostPattern matches the embed URLs served by the site's video host.
var VideoHostPattern = regexp.MustCompile(`(?i)https://play\.zephyrflick\.top/video/[A-Za-z0-9\-_]+`)

// Listener collects video host URLs seen during one resolution attempt.
// Observe is safe to call from playwright's event goroutine.
type Listener struct {
	pattern *regexp.Regexp

	mu      sync.Mutex
	matches []string
	found   chan struct{} // closed on first match
}

func NewListener(pattern *regexp.Regexp) *Listener {
	return &Listener{
		pattern: pattern,
		found:   make(chan struct{}),
	}
}

// Observe records the matching part of rawURL, if any.
func (l *Listener) Observe(rawURL string) {
	m := l.pattern.FindString(rawURL)
	if m == "" {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.matches = append(l.matches, m)
	if len(l.matches) == 1 {
		close(l.found)
	}
}

// Found is closed once the first match has been recorded.
func (l *Listener) Found() <-chan struct{} {
	return l.found
}

// First returns the earliest match.
func (l *Listener) First() (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.matches) == 0 {
		return "", false
	}
	return l.matches[0], true
}

func (l *Listener) Matches() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.matches...)
}

// Wait blocks until a match exists, d elapses or ctx is done.
func (l *Listener) Wait(ctx context.Context, d time.Duration) (string, bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-l.found:
	case <-timer.C:
	case <-ctx.Done():
	}
	return l.First()
}
