package scrapers

import (
	"context"
	"errors"
	"regexp"
	"time"

	"dekhocrawler/commons"
)

// Resolver finds the video host URL for an episode page on animedekho.
type Resolver struct {
	browser Browser
	pacer   *Pacer
	pattern *regexp.Regexp
	cfg     commons.ResolveConfig
}

func NewResolver(browser Browser, cfg commons.ResolveConfig) *Resolver {
	return &Resolver{
		browser: browser,
		pacer:   NewPacer(cfg.NavRate),
		pattern: VideoHostPattern,
		cfg:     cfg,
	}
}

// Resolve runs one resolution attempt. Failures are reported in the result,
// never as a panic or error.
func (r *Resolver) Resolve(ctx context.Context, req VideoRequest) ResolutionResult {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ResolveTimeout)
	defer cancel()

	start := time.Now()
	log := commons.Logger.With("title", req.Title, "season", req.Season, "episode", req.Episode)

	videoURL, err := r.find(ctx, req)
	switch {
	case err != nil:
		log.Error("Resolution failed", "err", err, "elapsed", time.Since(start))
		return Failed(err)
	case videoURL == "":
		log.Info("No video URL found", "elapsed", time.Since(start))
		return NotFound()
	default:
		log.Info("Video URL found", "url", videoURL, "elapsed", time.Since(start))
		return Found(videoURL)
	}
}

// find returns "" with a nil error when pages loaded (or time ran out) but
// nothing matched, and an error only when no candidate page could be loaded.
func (r *Resolver) find(ctx context.Context, req VideoRequest) (string, error) {
	candidates := CandidateURLs(r.cfg.BaseURL, req)
	if len(candidates) == 0 {
		commons.Logger.Warn("Title produces an empty slug", "title", req.Title)
		return "", nil
	}

	session, err := r.browser.NewSession(ctx)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := session.Close(); err != nil {
			commons.Logger.Warn("could not close session", "err", err)
		}
	}()

	listener := NewListener(r.pattern)
	session.OnNetwork(listener.Observe)

	var lastErr error
	navigated, timedOut := false, false
	for _, u := range candidates {
		if _, ok := listener.First(); ok {
			break
		}
		if err := r.pacer.Wait(ctx); err != nil {
			timedOut = true
			break
		}

		commons.Logger.Debug("Navigating", "url", u)
		err := r.navigate(ctx, session, listener, u)
		if errors.Is(err, context.DeadlineExceeded) {
			timedOut = true
			break
		}
		if err != nil {
			commons.Logger.Debug("Candidate failed", "url", u, "err", err)
			lastErr = err
			continue
		}
		navigated = true

		if _, ok := listener.Wait(ctx, r.cfg.Settle); ok {
			break
		}
	}

	if m, ok := listener.First(); ok {
		return m, nil
	}
	if !navigated && !timedOut && lastErr != nil {
		return "", lastErr
	}
	return "", nil
}

// navigate loads u but returns early once the listener has a match or ctx
// expires. An abandoned Goto is cut short when the session closes.
func (r *Resolver) navigate(ctx context.Context, s commons.Session, l *Listener, u string) error {
	done := make(chan error, 1)
	timeout := r.navTimeout(ctx)
	go func() {
		done <- s.Goto(u, timeout)
	}()

	select {
	case err := <-done:
		return err
	case <-l.Found():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Resolver) navTimeout(ctx context.Context) time.Duration {
	timeout := r.cfg.NavTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}
	// playwright treats 0 as "no timeout"
	return max(timeout, time.Millisecond)
}
