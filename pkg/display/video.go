package display

import (
	"net/url"
	"strings"
)

var allowedVideoHosts = []string{
	"youtube.com",
	"youtu.be",
	"vimeo.com",
	"dailymotion.com",
	"twitch.tv",
}

// IsValidVideoURL accepts https URLs on a known video host or one of its
// subdomains.
func IsValidVideoURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range allowedVideoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// SanitizeVideoURL returns raw when it is a valid video URL, "" otherwise.
func SanitizeVideoURL(raw string) string {
	if raw == "" || !IsValidVideoURL(raw) {
		return ""
	}
	return raw
}
