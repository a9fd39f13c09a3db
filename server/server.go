package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dekhocrawler/commons"
	"dekhocrawler/scrapers"
)

// Resolver is the part of *scrapers.Resolver the handlers need.
type Resolver interface {
	Resolve(ctx context.Context, req scrapers.VideoRequest) scrapers.ResolutionResult
}

type Server struct {
	echo     *echo.Echo
	resolver Resolver
	version  string
}

func New(resolver Resolver, version string) *Server {
	s := &Server{
		echo:     echo.New(),
		resolver: resolver,
		version:  version,
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogError:    true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				commons.Logger.Error("HTTP request", "remote", v.RemoteIP, "method", v.Method, "uri", v.URI,
					"status", v.Status, "latency", v.Latency, "err", v.Error)
			} else {
				commons.Logger.Info("HTTP request", "remote", v.RemoteIP, "method", v.Method, "uri", v.URI,
					"status", v.Status, "latency", v.Latency)
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/", s.handleDocs)
	e.GET("/health", s.handleHealth)
	e.GET("/api/video", s.handleVideo)

	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start blocks serving on srv until Shutdown is called.
func (s *Server) Start(srv *http.Server) error {
	commons.Logger.Info("API listening", "addr", srv.Addr)
	err := s.echo.StartServer(srv)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// handleError keeps every failure in the ResolutionResult shape.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "Internal server error"
	detail := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = http.StatusText(he.Code)
		detail = fmt.Sprint(he.Message)
	}
	if status >= http.StatusInternalServerError {
		commons.Logger.Error("Unhandled error", "uri", c.Request().RequestURI, "err", err)
	}

	body := scrapers.ResolutionResult{Error: detail, Message: message}
	if jerr := c.JSON(status, body); jerr != nil {
		commons.Logger.Error("could not write error response", "err", jerr)
	}
}
