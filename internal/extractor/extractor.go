// Package extractor orchestrates a single extraction: resolve the
// owning service, classify the link, fetch metadata and shape the
// flattened response.
package extractor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
)

// Extractor turns a URL into a flattened extraction response. It holds
// no per-request state and is safe for concurrent use.
type Extractor struct {
	engine    *engine.Engine
	blockedID int
}

// New creates an Extractor. blockedServiceID names the service whose
// URLs are refused even when the host denylist did not catch them.
func New(eng *engine.Engine, blockedServiceID int) *Extractor {
	return &Extractor{engine: eng, blockedID: blockedServiceID}
}

// Extract resolves the URL and returns either a stream, playlist or
// error response. Engine failures propagate as errors; the caller maps
// them to status codes.
func (x *Extractor) Extract(ctx context.Context, url string) (*domain.Response, error) {
	svc, err := x.engine.Resolve(url)
	if err != nil {
		return nil, err
	}

	if svc.ID() == x.blockedID {
		slog.Info("refusing blocked service", "service", svc.Name(), "url", url)
		return domain.ErrorResponse("service blocked"), nil
	}

	// Classification is best-effort: on a parsing failure fall back to
	// stream extraction, which surfaces a sharper error if the URL
	// really cannot be handled.
	kind, err := svc.LinkKind(url)
	if err != nil {
		if !engine.IsParseError(err) {
			return nil, err
		}
		kind = domain.KindStream
	}

	if kind == domain.KindPlaylist {
		return x.extractPlaylist(ctx, svc, url)
	}
	return x.extractStream(ctx, svc, url)
}

func (x *Extractor) extractPlaylist(ctx context.Context, svc engine.Service, url string) (*domain.Response, error) {
	playlist, err := svc.Playlist(ctx, url)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PlaylistItem, 0, len(playlist.Items))
	for _, entry := range playlist.Items {
		if len(items) >= domain.MaxPlaylistItems {
			break
		}
		items = append(items, domain.PlaylistItem{Title: entry.Title, URL: entry.URL})
	}

	return domain.PlaylistResponse(svc.Name(), url, playlist.Title, items), nil
}

func (x *Extractor) extractStream(ctx context.Context, svc engine.Service, url string) (*domain.Response, error) {
	info, err := svc.Stream(ctx, url)
	if err != nil {
		return nil, err
	}

	variants := make([]domain.AudioVariant, 0, len(info.Audio))
	for _, candidate := range info.Audio {
		if strings.TrimSpace(candidate.Content) == "" {
			continue
		}
		variants = append(variants, domain.AudioVariant{
			URL:            candidate.Content,
			Format:         candidate.Format,
			MimeType:       candidate.MimeType,
			Bitrate:        candidate.Bitrate,
			AverageBitrate: candidate.AverageBitrate,
			Delivery:       strings.ToLower(candidate.Delivery),
		})
	}
	Rank(variants)

	return domain.StreamResponse(svc.Name(), url, info.Title, info.Uploader, info.Duration, variants), nil
}
