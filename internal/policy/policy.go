// Package policy decides which target hosts the extractor refuses to touch.
package policy

import (
	"net/url"
	"strings"
)

var blockedHosts = []string{
	"youtube.com",
	"youtu.be",
	"music.youtube.com",
	"youtube-nocookie.com",
}

// IsBlocked reports whether the URL's host matches the denylist.
// Unparseable URLs are not blocked here; extraction fails on them
// later with a clearer diagnostic.
func IsBlocked(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, blocked := range blockedHosts {
		if strings.Contains(host, blocked) {
			return true
		}
	}
	return false
}
