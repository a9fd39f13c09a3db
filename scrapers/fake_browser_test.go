package scrapers

import (
	"context"
	"errors"
	"sync"
	"time"

	"dekhocrawler/commons"
)

// fakePage describes what the simulated upstream does for one URL.
type fakePage struct {
	traffic []string // network URLs emitted during navigation
	err     error    // navigation error
	hang    bool     // block until the session closes or the timeout expires
}

type fakeSession struct {
	pages map[string]fakePage

	mu        sync.Mutex
	listeners []func(string)
	visited   []string
	closed    bool
	done      chan struct{}
}

func newFakeSession(pages map[string]fakePage) *fakeSession {
	return &fakeSession{pages: pages, done: make(chan struct{})}
}

func (s *fakeSession) OnNetwork(fn func(url string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *fakeSession) Goto(url string, timeout time.Duration) error {
	s.mu.Lock()
	s.visited = append(s.visited, url)
	page, ok := s.pages[url]
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	if !ok {
		return errors.New("NS_ERROR_UNKNOWN_HOST")
	}
	if page.err != nil {
		return page.err
	}
	for _, u := range page.traffic {
		for _, fn := range listeners {
			fn(u)
		}
	}
	if page.hang {
		select {
		case <-s.done:
			return errors.New("target closed")
		case <-time.After(timeout):
			return errors.New("timeout exceeded")
		}
	}
	return nil
}

func (s *fakeSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.done)
	}
	return nil
}

func (s *fakeSession) Visited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visited...)
}

func (s *fakeSession) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

type fakeBrowser struct {
	pages  map[string]fakePage
	newErr error

	mu       sync.Mutex
	sessions []*fakeSession
}

func (b *fakeBrowser) NewSession(ctx context.Context) (commons.Session, error) {
	if b.newErr != nil {
		return nil, b.newErr
	}
	s := newFakeSession(b.pages)
	b.mu.Lock()
	b.sessions = append(b.sessions, s)
	b.mu.Unlock()
	return s, nil
}

func (b *fakeBrowser) Sessions() []*fakeSession {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*fakeSession(nil), b.sessions...)
}
