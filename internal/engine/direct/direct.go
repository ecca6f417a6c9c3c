// Package direct handles plain audio URLs and Icecast-style radio
// mounts that need no site-specific parsing. It probes the target with
// a HEAD request and reports a single progressive variant.
package direct

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
)

// ServiceID identifies the direct-stream service within the engine.
const ServiceID = 3

var audioExtensions = map[string]string{
	".mp3":  "mp3",
	".aac":  "aac",
	".m4a":  "m4a",
	".ogg":  "ogg",
	".opus": "opus",
	".flac": "flac",
	".wav":  "wav",
	".m3u8": "hls",
}

var mountPaths = []string{"/stream", "/live", "/listen", "/;"}

// Service is the fallback for URLs that look like raw audio streams.
type Service struct {
	fetcher engine.Fetcher
}

func New(f engine.Fetcher) *Service {
	return &Service{fetcher: f}
}

func (s *Service) ID() int { return ServiceID }

func (s *Service) Name() string { return "Direct" }

func (s *Service) Supports(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	if _, ok := audioExtensions[ext]; ok {
		return true
	}
	lowered := strings.ToLower(parsed.Path)
	for _, mount := range mountPaths {
		if lowered == mount || strings.HasPrefix(lowered, mount+"/") {
			return true
		}
	}
	return false
}

// LinkKind is always stream; there is no playlist notion for raw URLs.
func (s *Service) LinkKind(string) (domain.LinkKind, error) {
	return domain.KindStream, nil
}

func (s *Service) Stream(ctx context.Context, rawURL string) (*engine.StreamInfo, error) {
	resp, err := s.fetcher.Execute(ctx, &fetcher.Request{Method: http.MethodHead, URL: rawURL})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, engine.ParseErrorf("stream unreachable: %s (status %d)", rawURL, resp.StatusCode)
	}

	mime := resp.Headers.Get("Content-Type")
	if idx := strings.Index(mime, ";"); idx >= 0 {
		mime = strings.TrimSpace(mime[:idx])
	}

	title := resp.Headers.Get("Icy-Name")
	if title == "" {
		if parsed, err := url.Parse(rawURL); err == nil {
			title = path.Base(parsed.Path)
		}
	}

	bitrate := 0
	if br, err := strconv.Atoi(resp.Headers.Get("Icy-Br")); err == nil {
		bitrate = br * 1000
	}

	delivery := engine.DeliveryProgressive
	format := formatFor(rawURL, mime)
	if format == "hls" || strings.Contains(mime, "mpegurl") {
		delivery = engine.DeliveryHLS
	}

	return &engine.StreamInfo{
		Title: title,
		Audio: []engine.AudioCandidate{{
			Content:  resp.FinalURL,
			Format:   format,
			MimeType: mime,
			Bitrate:  bitrate,
			Delivery: delivery,
		}},
	}, nil
}

func (s *Service) Playlist(_ context.Context, rawURL string) (*engine.PlaylistInfo, error) {
	return nil, engine.ParseErrorf("not a playlist: %s", rawURL)
}

func formatFor(rawURL, mime string) string {
	if parsed, err := url.Parse(rawURL); err == nil {
		if format, ok := audioExtensions[strings.ToLower(path.Ext(parsed.Path))]; ok {
			return format
		}
	}
	if _, subtype, found := strings.Cut(mime, "/"); found {
		return subtype
	}
	return ""
}
