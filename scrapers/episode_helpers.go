package scrapers

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	ErrMissingParams  = errors.New("missing required parameters: title, season, episode")
	ErrInvalidNumbers = errors.New("invalid season or episode number")
)

// ParseVideoRequest validates raw query values. Season and episode must be
// integers ≥ 1.
func ParseVideoRequest(title, season, episode string) (VideoRequest, error) {
	title = strings.TrimSpace(title)
	season = strings.TrimSpace(season)
	episode = strings.TrimSpace(episode)
	if title == "" || season == "" || episode == "" {
		return VideoRequest{}, ErrMissingParams
	}

	s, err := parsePositive(season)
	if err != nil {
		return VideoRequest{}, fmt.Errorf("%w: season: %v", ErrInvalidNumbers, err)
	}
	e, err := parsePositive(episode)
	if err != nil {
		return VideoRequest{}, fmt.Errorf("%w: episode: %v", ErrInvalidNumbers, err)
	}

	return VideoRequest{Title: title, Season: s, Episode: e}, nil
}

func parsePositive(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d must be ≥ 1", n)
	}
	return n, nil
}

var (
	slugStrip  = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-+`)
)

// MakeSlug turns a title into the site's path form: "Shin Chan!" -> "shin-chan".
func MakeSlug(title string) string {
	base := strings.ToLower(strings.TrimSpace(title))
	base = slugStrip.ReplaceAllString(base, "")
	base = slugSpaces.ReplaceAllString(base, "-")
	base = slugDashes.ReplaceAllString(base, "-")
	return strings.Trim(base, "-")
}

// MakeSlugs returns the slug and, when it differs, its query-escaped form.
func MakeSlugs(title string) []string {
	slug := MakeSlug(title)
	if slug == "" {
		return nil
	}
	slugs := []string{slug}
	if escaped := url.QueryEscape(slug); escaped != slug {
		slugs = append(slugs, escaped)
	}
	return slugs
}

// CandidateURLs lists every episode page layout the site has used, per slug.
func CandidateURLs(baseURL string, req VideoRequest) []string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	var urls []string
	for _, slug := range MakeSlugs(req.Title) {
		se := fmt.Sprintf("%dx%d", req.Season, req.Episode)
		urls = append(urls,
			fmt.Sprintf("%s/epi/%s-%s/", baseURL, slug, se),
			fmt.Sprintf("%s/episodes/%s-%s/", baseURL, slug, se),
			fmt.Sprintf("%s/epi/%s/%s/", baseURL, slug, se),
			fmt.Sprintf("%s/episodes/%s/%s/", baseURL, slug, se),
		)
	}
	return urls
}
