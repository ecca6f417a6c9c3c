// Package youtube registers a YouTube service identity so the
// orchestrator can recognize and refuse YouTube URLs that slip past
// the host denylist. Extraction itself is deliberately disabled.
package youtube

import (
	"context"
	"net/url"
	"strings"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
)

// ServiceID identifies YouTube within the engine.
const ServiceID = 0

var hosts = []string{"youtube.com", "youtu.be", "youtube-nocookie.com"}

type Service struct{}

func New() *Service { return &Service{} }

func (s *Service) ID() int { return ServiceID }

func (s *Service) Name() string { return "YouTube" }

func (s *Service) Supports(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func (s *Service) LinkKind(rawURL string) (domain.LinkKind, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return domain.KindUnknown, engine.ParseErrorf("invalid youtube url: %s", rawURL)
	}
	if parsed.Query().Has("list") || strings.HasPrefix(parsed.Path, "/playlist") {
		return domain.KindPlaylist, nil
	}
	return domain.KindStream, nil
}

func (s *Service) Stream(context.Context, string) (*engine.StreamInfo, error) {
	return nil, engine.ParseErrorf("youtube extraction disabled")
}

func (s *Service) Playlist(context.Context, string) (*engine.PlaylistInfo, error) {
	return nil, engine.ParseErrorf("youtube extraction disabled")
}
