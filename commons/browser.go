package commons

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

var ErrEngineClosed = errors.New("browser engine is shut down")

// Session is one isolated browsing context with a single page.
type Session interface {
	// OnNetwork registers fn for the URL of every request and response the
	// page sees. fn may be called from another goroutine.
	OnNetwork(fn func(url string))
	// Goto loads url and returns once the DOM is ready or timeout expires.
	Goto(url string, timeout time.Duration) error
	Close() error
}

// Engine owns the playwright driver and one Firefox instance for the whole
// process. The browser is started on the first NewSession call, relaunched
// if it disconnects, and torn down by Close.
type Engine struct {
	cfg BrowserConfig

	// sem is a one-slot lock over pw, browser and closed. Callers that may
	// give up acquire it in a select against their context.
	sem     chan struct{}
	pw      *playwright.Playwright
	browser playwright.Browser
	closed  bool
}

func NewEngine(cfg BrowserConfig) *Engine {
	return &Engine{cfg: cfg, sem: make(chan struct{}, 1)}
}

// Install downloads the playwright driver and the firefox build. It is meant
// to run once at startup, before the engine serves sessions.
func (e *Engine) Install() error {
	Logger.Info("Installing playwright firefox.. Please wait")
	err := playwright.Install(&playwright.RunOptions{
		Browsers: []string{"firefox"},
	})
	if err != nil {
		return fmt.Errorf("could not install playwright: %w", err)
	}
	return nil
}

// start must be called with sem held.
func (e *Engine) start() (playwright.Browser, error) {
	if e.pw == nil {
		pw, err := playwright.Run(&playwright.RunOptions{Browsers: []string{"firefox"}})
		if err != nil {
			return nil, fmt.Errorf("could not start playwright: %w", err)
		}
		e.pw = pw
	}

	browser, err := e.pw.Firefox.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(e.cfg.Headless),
	})
	if err != nil {
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}
	e.browser = browser
	Logger.Info("Browser launched", "engine", "firefox", "headless", e.cfg.Headless, "version", browser.Version())
	return browser, nil
}

type launchResult struct {
	browser playwright.Browser
	err     error
}

// ensureBrowser returns a connected browser, launching one if needed. It
// gives up with ctx.Err() when ctx ends first; a launch already under way
// keeps going so the next caller can use it.
func (e *Engine) ensureBrowser(ctx context.Context) (playwright.Browser, error) {
	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if e.closed {
		<-e.sem
		return nil, ErrEngineClosed
	}
	if e.browser != nil && e.browser.IsConnected() {
		browser := e.browser
		<-e.sem
		return browser, nil
	}
	if e.browser != nil {
		Logger.Warn("Browser disconnected, relaunching")
		e.browser = nil
	}

	done := make(chan launchResult, 1)
	go func() {
		defer func() { <-e.sem }()
		browser, err := e.start()
		done <- launchResult{browser: browser, err: err}
	}()

	select {
	case r := <-done:
		return r.browser, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// NewSession opens a fresh browsing context. ctx bounds the wait for the
// engine; the session itself lives until Close.
func (e *Engine) NewSession(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := e.ensureBrowser(ctx)
	if err != nil {
		return nil, err
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(e.cfg.UserAgent),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		if cerr := bctx.Close(); cerr != nil {
			Logger.Warn("could not close browser context", "err", cerr)
		}
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return &pageSession{context: bctx, page: page}, nil
}

// Close stops the browser and the playwright driver, waiting for a launch in
// progress. Later NewSession calls fail with ErrEngineClosed.
func (e *Engine) Close() error {
	e.sem <- struct{}{}
	defer func() { <-e.sem }()

	if e.closed {
		return nil
	}
	e.closed = true

	var errs []error
	if e.browser != nil {
		if err := e.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("could not close browser: %w", err))
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("could not stop Playwright: %w", err))
		}
		e.pw = nil
	}
	return errors.Join(errs...)
}

type pageSession struct {
	context playwright.BrowserContext
	page    playwright.Page
	once    sync.Once
	err     error
}

func (s *pageSession) OnNetwork(fn func(url string)) {
	s.page.OnRequest(func(r playwright.Request) {
		fn(r.URL())
	})
	s.page.OnResponse(func(r playwright.Response) {
		fn(r.URL())
	})
}

func (s *pageSession) Goto(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("could not goto %s: %w", url, err)
	}
	return nil
}

// Close is idempotent. Closing the context also closes its page.
func (s *pageSession) Close() error {
	s.once.Do(func() {
		if err := s.context.Close(); err != nil {
			s.err = fmt.Errorf("could not close browser context: %w", err)
		}
	})
	return s.err
}
