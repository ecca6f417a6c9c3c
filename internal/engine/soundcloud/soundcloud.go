// Package soundcloud extracts stream and playlist metadata through the
// SoundCloud api-v2 resolve endpoint.
package soundcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
)

// ServiceID identifies SoundCloud within the engine.
const ServiceID = 1

const apiBase = "https://api-v2.soundcloud.com"

// Service extracts from soundcloud.com URLs.
type Service struct {
	fetcher  engine.Fetcher
	clientID string
}

// New creates the SoundCloud service. The client ID is required by
// api-v2 and comes from configuration.
func New(f engine.Fetcher, clientID string) *Service {
	return &Service{fetcher: f, clientID: clientID}
}

func (s *Service) ID() int { return ServiceID }

func (s *Service) Name() string { return "SoundCloud" }

func (s *Service) Supports(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	return host == "soundcloud.com" || strings.HasSuffix(host, ".soundcloud.com") || host == "snd.sc"
}

func (s *Service) LinkKind(rawURL string) (domain.LinkKind, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return domain.KindUnknown, engine.ParseErrorf("invalid soundcloud url: %s", rawURL)
	}
	if strings.Contains(parsed.Path, "/sets/") {
		return domain.KindPlaylist, nil
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) >= 2 && segments[1] != "" {
		return domain.KindStream, nil
	}
	return domain.KindUnknown, nil
}

func (s *Service) Stream(ctx context.Context, rawURL string) (*engine.StreamInfo, error) {
	resource, err := s.resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if resource.Kind != "track" {
		return nil, engine.ParseErrorf("not a track: %s", rawURL)
	}

	info := &engine.StreamInfo{
		Title:    resource.Title,
		Uploader: resource.User.Username,
		Duration: resource.Duration / 1000,
	}

	for _, t := range resource.Media.Transcodings {
		content, err := s.streamURL(ctx, t.URL)
		if err != nil {
			slog.Debug("skipping transcoding", "preset", t.Preset, "error", err)
			continue
		}
		info.Audio = append(info.Audio, engine.AudioCandidate{
			Content:  content,
			Format:   presetFormat(t.Preset),
			MimeType: t.Format.MimeType,
			Bitrate:  presetBitrate(t.Preset),
			Delivery: protocolDelivery(t.Format.Protocol),
		})
	}

	return info, nil
}

func (s *Service) Playlist(ctx context.Context, rawURL string) (*engine.PlaylistInfo, error) {
	resource, err := s.resolve(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if resource.Kind != "playlist" {
		return nil, engine.ParseErrorf("not a playlist: %s", rawURL)
	}

	info := &engine.PlaylistInfo{Title: resource.Title}
	for _, track := range resource.Tracks {
		info.Items = append(info.Items, engine.PlaylistEntry{
			Title: track.Title,
			URL:   track.PermalinkURL,
		})
	}
	return info, nil
}

type resolvedResource struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Duration int64  `json:"duration"` // milliseconds
	User     struct {
		Username string `json:"username"`
	} `json:"user"`
	Media struct {
		Transcodings []transcoding `json:"transcodings"`
	} `json:"media"`
	Tracks []struct {
		Title        string `json:"title"`
		PermalinkURL string `json:"permalink_url"`
	} `json:"tracks"`
}

type transcoding struct {
	URL    string `json:"url"`
	Preset string `json:"preset"`
	Format struct {
		Protocol string `json:"protocol"`
		MimeType string `json:"mime_type"`
	} `json:"format"`
}

func (s *Service) resolve(ctx context.Context, rawURL string) (*resolvedResource, error) {
	endpoint := fmt.Sprintf("%s/resolve?url=%s&client_id=%s",
		apiBase, url.QueryEscape(rawURL), url.QueryEscape(s.clientID))

	resp, err := s.fetcher.Execute(ctx, &fetcher.Request{Method: http.MethodGet, URL: endpoint})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, engine.ParseErrorf("soundcloud could not resolve %s (status %d)", rawURL, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("soundcloud resolve failed with status %d", resp.StatusCode)
	}

	var resource resolvedResource
	if err := json.Unmarshal([]byte(resp.Body), &resource); err != nil {
		return nil, engine.ParseErrorf("soundcloud resolve returned malformed json: %v", err)
	}
	return &resource, nil
}

// streamURL exchanges a transcoding URL for the actual media URL.
func (s *Service) streamURL(ctx context.Context, transcodingURL string) (string, error) {
	separator := "?"
	if strings.Contains(transcodingURL, "?") {
		separator = "&"
	}
	endpoint := transcodingURL + separator + "client_id=" + url.QueryEscape(s.clientID)

	resp, err := s.fetcher.Execute(ctx, &fetcher.Request{Method: http.MethodGet, URL: endpoint})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcoding lookup failed with status %d", resp.StatusCode)
	}

	var payload struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal([]byte(resp.Body), &payload); err != nil {
		return "", fmt.Errorf("malformed transcoding response: %w", err)
	}
	return payload.URL, nil
}

func presetFormat(preset string) string {
	if idx := strings.IndexAny(preset, "_-"); idx > 0 {
		return preset[:idx]
	}
	return preset
}

// presetBitrate approximates the bitrate of known SoundCloud presets;
// api-v2 does not report one directly.
func presetBitrate(preset string) int {
	switch {
	case strings.HasPrefix(preset, "aac"):
		return 256000
	case strings.HasPrefix(preset, "mp3"):
		return 128000
	case strings.HasPrefix(preset, "opus"):
		return 64000
	}
	return 0
}

func protocolDelivery(protocol string) string {
	switch protocol {
	case "progressive":
		return engine.DeliveryProgressive
	case "hls":
		return engine.DeliveryHLS
	}
	return ""
}
