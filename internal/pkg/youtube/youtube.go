// Package youtube extracts video IDs from the URL shapes YouTube hands out.
package youtube

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidURL = errors.New("not a valid YouTube video URL")

// videoIDPattern matches the 11-character IDs YouTube assigns to videos.
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the video ID from a YouTube watch, share, embed or
// shorts URL. Returns ErrInvalidURL for anything that does not resolve to
// an 11-character video ID.
func ParseVideoID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || u.Host == "" {
		return "", ErrInvalidURL
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com", "music.youtube.com":
		// /watch?v=<id>
		if u.Path == "/watch" {
			return validateID(u.Query().Get("v"))
		}
		// /embed/<id>, /shorts/<id>, /live/<id>, /v/<id>
		for _, prefix := range []string{"/embed/", "/shorts/", "/live/", "/v/"} {
			if strings.HasPrefix(u.Path, prefix) {
				return validateID(strings.TrimPrefix(u.Path, prefix))
			}
		}
	case "youtu.be":
		// youtu.be/<id>
		return validateID(strings.TrimPrefix(u.Path, "/"))
	}

	return "", ErrInvalidURL
}

// EmbedURL returns the embeddable player URL for a video ID.
func EmbedURL(videoID string) string {
	return "https://www.youtube.com/embed/" + videoID
}

// ThumbnailURL returns the default thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/hqdefault.jpg"
}

func validateID(id string) (string, error) {
	// Strip anything after a path separator left by trailing segments
	if idx := strings.IndexByte(id, '/'); idx != -1 {
		id = id[:idx]
	}
	if !videoIDPattern.MatchString(id) {
		return "", ErrInvalidURL
	}
	return id, nil
}
