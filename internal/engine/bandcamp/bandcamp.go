// Package bandcamp extracts stream and album metadata from Bandcamp
// pages by reading the tralbum payload embedded in the page HTML.
package bandcamp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/kennygrant/sanitize"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
)

// ServiceID identifies Bandcamp within the engine.
const ServiceID = 2

// Service extracts from *.bandcamp.com track and album pages.
type Service struct {
	fetcher engine.Fetcher
}

func New(f engine.Fetcher) *Service {
	return &Service{fetcher: f}
}

func (s *Service) ID() int { return ServiceID }

func (s *Service) Name() string { return "Bandcamp" }

func (s *Service) Supports(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(parsed.Hostname())
	if host != "bandcamp.com" && !strings.HasSuffix(host, ".bandcamp.com") {
		return false
	}
	return strings.HasPrefix(parsed.Path, "/track/") || strings.HasPrefix(parsed.Path, "/album/")
}

func (s *Service) LinkKind(rawURL string) (domain.LinkKind, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return domain.KindUnknown, engine.ParseErrorf("invalid bandcamp url: %s", rawURL)
	}
	switch {
	case strings.HasPrefix(parsed.Path, "/album/"):
		return domain.KindPlaylist, nil
	case strings.HasPrefix(parsed.Path, "/track/"):
		return domain.KindStream, nil
	}
	return domain.KindUnknown, nil
}

// tralbum mirrors the data-tralbum JSON attribute Bandcamp embeds in
// track and album pages.
type tralbum struct {
	Artist  string `json:"artist"`
	Current struct {
		Title string `json:"title"`
	} `json:"current"`
	TrackInfo []struct {
		Title     string            `json:"title"`
		TitleLink string            `json:"title_link"`
		Duration  float64           `json:"duration"`
		File      map[string]string `json:"file"`
	} `json:"trackinfo"`
}

func (s *Service) Stream(ctx context.Context, rawURL string) (*engine.StreamInfo, error) {
	album, err := s.fetchTralbum(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(album.TrackInfo) == 0 {
		return nil, engine.ParseErrorf("no track data on page: %s", rawURL)
	}

	track := album.TrackInfo[0]
	info := &engine.StreamInfo{
		Title:    sanitize.HTML(album.Current.Title),
		Uploader: sanitize.HTML(album.Artist),
		Duration: int64(track.Duration),
	}

	for variant, content := range track.File {
		format, bitrate := parseFileVariant(variant)
		info.Audio = append(info.Audio, engine.AudioCandidate{
			Content:  content,
			Format:   format,
			MimeType: mimeForFormat(format),
			Bitrate:  bitrate,
			Delivery: engine.DeliveryProgressive,
		})
	}

	return info, nil
}

func (s *Service) Playlist(ctx context.Context, rawURL string) (*engine.PlaylistInfo, error) {
	album, err := s.fetchTralbum(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, engine.ParseErrorf("invalid bandcamp url: %s", rawURL)
	}

	info := &engine.PlaylistInfo{Title: sanitize.HTML(album.Current.Title)}
	for _, track := range album.TrackInfo {
		itemURL := track.TitleLink
		if itemURL != "" && !strings.HasPrefix(itemURL, "http") {
			itemURL = base.Scheme + "://" + base.Host + itemURL
		}
		info.Items = append(info.Items, engine.PlaylistEntry{
			Title: sanitize.HTML(track.Title),
			URL:   itemURL,
		})
	}
	return info, nil
}

func (s *Service) fetchTralbum(ctx context.Context, rawURL string) (*tralbum, error) {
	resp, err := s.fetcher.Execute(ctx, &fetcher.Request{Method: http.MethodGet, URL: rawURL})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, engine.ParseErrorf("bandcamp page unavailable: %s (status %d)", rawURL, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bandcamp page fetch failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.Body))
	if err != nil {
		return nil, engine.ParseErrorf("bandcamp page not parseable: %v", err)
	}

	payload, ok := doc.Find("script[data-tralbum]").First().Attr("data-tralbum")
	if !ok {
		return nil, engine.ParseErrorf("no tralbum data on page: %s", rawURL)
	}

	var album tralbum
	if err := json.Unmarshal([]byte(payload), &album); err != nil {
		return nil, engine.ParseErrorf("malformed tralbum data: %v", err)
	}
	return &album, nil
}

// parseFileVariant splits a file key such as "mp3-128" into its format
// name and bitrate in bits per second.
func parseFileVariant(variant string) (string, int) {
	format, rate, found := strings.Cut(variant, "-")
	if !found {
		return variant, 0
	}
	kbps, err := strconv.Atoi(rate)
	if err != nil {
		return format, 0
	}
	return format, kbps * 1000
}

func mimeForFormat(format string) string {
	switch format {
	case "mp3":
		return "audio/mpeg"
	case "aac":
		return "audio/aac"
	case "flac":
		return "audio/flac"
	}
	return ""
}
