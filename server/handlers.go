package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dekhocrawler/scrapers"
)

type endpointDoc struct {
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
	Example     string            `json:"example,omitempty"`
}

type docsResponse struct {
	Message     string                 `json:"message"`
	Description string                 `json:"description"`
	Version     string                 `json:"version"`
	Endpoints   map[string]endpointDoc `json:"endpoints"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

func (s *Server) handleDocs(c echo.Context) error {
	return c.JSON(http.StatusOK, docsResponse{
		Message:     "AnimeDekho API",
		Description: "API to fetch video URLs from animedekho.co",
		Version:     s.version,
		Endpoints: map[string]endpointDoc{
			"/api/video": {
				Method:      http.MethodGet,
				Description: "Fetch video URL for an anime episode",
				Parameters: map[string]string{
					"title":   "Anime title (string)",
					"season":  "Season number (integer)",
					"episode": "Episode number (integer)",
				},
				Example: "/api/video?title=shinchan&season=1&episode=1",
			},
			"/health": {
				Method:      http.MethodGet,
				Description: "Liveness check",
			},
		},
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Message: "AnimeDekho API is running",
		Version: s.version,
	})
}

func (s *Server) handleVideo(c echo.Context) error {
	req, err := scrapers.ParseVideoRequest(c.QueryParam("title"), c.QueryParam("season"), c.QueryParam("episode"))
	switch {
	case errors.Is(err, scrapers.ErrMissingParams):
		return c.JSON(http.StatusBadRequest, scrapers.ResolutionResult{
			Error:   "Missing required parameters: title, season, episode",
			Message: "Please provide title, season, and episode as query parameters",
		})
	case err != nil:
		return c.JSON(http.StatusBadRequest, scrapers.ResolutionResult{
			Error:   "Invalid season or episode number",
			Message: "Season and episode must be valid numbers",
		})
	}

	// A client hanging up does not abort the attempt; the resolver's own
	// timeout bounds it.
	ctx := context.WithoutCancel(c.Request().Context())
	return c.JSON(http.StatusOK, s.resolver.Resolve(ctx, req))
}
