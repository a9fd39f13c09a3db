package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dekhocrawler/commons"
	"dekhocrawler/scrapers"
	"dekhocrawler/server"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string) int {
	cfg, err := commons.LoadConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\nUse --help to see usage.\n", err)
		return 2
	}
	if cfg.Action == commons.Exit {
		commons.PrintHelp()
		return 0
	}

	commons.InitLogger(cfg.Debug)

	engine := commons.NewEngine(cfg.Browser)
	if cfg.Browser.Install {
		if err := engine.Install(); err != nil {
			commons.Logger.Error("browser install failed", "err", err)
			return 1
		}
	}
	defer shutdownEngine(engine)

	resolver := scrapers.NewResolver(engine, cfg.Resolve)

	if cfg.Action == commons.Resolve {
		return resolveOnce(resolver, cfg)
	}

	printBanner()
	if err := serve(resolver, cfg); err != nil {
		commons.Logger.Error("server stopped", "err", err)
		return 1
	}
	return 0
}

func shutdownEngine(engine *commons.Engine) {
	if err := engine.Close(); err != nil {
		commons.Logger.Error("could not shut down browser engine", "err", err)
	}
}

// resolveOnce prints a single ResolutionResult and returns the exit code.
func resolveOnce(resolver *scrapers.Resolver, cfg commons.Config) int {
	var result scrapers.ResolutionResult
	req, err := scrapers.ParseVideoRequest(cfg.Title, cfg.Season, cfg.Episode)
	if err != nil {
		result = scrapers.ResolutionResult{Error: err.Error(), Message: "Usage: dekhocrawler resolve 'anime title' season episode"}
	} else {
		result = resolver.Resolve(context.Background(), req)
	}

	enc := json.NewEncoder(os.Stdout)
	if err := enc.Encode(result); err != nil {
		commons.Logger.Error("could not encode result", "err", err)
		return 1
	}
	if !result.Success {
		return 1
	}
	return 0
}

func serve(resolver *scrapers.Resolver, cfg commons.Config) error {
	api := server.New(resolver, Version)
	srv := &http.Server{
		Addr:         cfg.Addr(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- api.Start(srv)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		commons.Logger.Info("Shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.WriteTimeout())
	defer cancel()
	return api.Shutdown(ctx)
}
