package scrapers

import (
	"context"

	"dekhocrawler/commons"
)

// Browser hands out isolated sessions. *commons.Engine is the production
// implementation.
type Browser interface {
	NewSession(ctx context.Context) (commons.Session, error)
}

type VideoRequest struct {
	Title   string
	Season  int
	Episode int
}

type ResolutionResult struct {
	Success  bool   `json:"success"`
	VideoURL string `json:"video_url,omitempty"`
	Error    string `json:"error,omitempty"`
	Message  string `json:"message"`
}

const (
	MsgFound       = "Video URL found successfully"
	MsgNotFound    = "No video URL found"
	ErrNotFoundMsg = "No video URL found. Try different season/episode numbers."
	MsgFailed      = "Failed to fetch video URL"
)

func Found(videoURL string) ResolutionResult {
	return ResolutionResult{Success: true, VideoURL: videoURL, Message: MsgFound}
}

func NotFound() ResolutionResult {
	return ResolutionResult{Error: ErrNotFoundMsg, Message: MsgNotFound}
}

func Failed(err error) ResolutionResult {
	return ResolutionResult{Error: "An error occurred: " + err.Error(), Message: MsgFailed}
}
