// Package engine models the extraction engine: a registry of per-site
// services, each knowing how to turn that site's URLs into stream or
// playlist metadata.
package engine

import (
	"context"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/fetcher"
)

// Delivery methods reported by services for audio candidates.
const (
	DeliveryProgressive = "PROGRESSIVE_HTTP"
	DeliveryHLS         = "HLS"
	DeliveryDASH        = "DASH"
)

// Fetcher performs upstream HTTP requests on behalf of services.
type Fetcher interface {
	Execute(ctx context.Context, req *fetcher.Request) (*fetcher.Response, error)
}

// AudioCandidate is a raw audio rendition as reported by a service,
// before filtering and ranking.
type AudioCandidate struct {
	Content        string
	Format         string
	MimeType       string
	Bitrate        int
	AverageBitrate int
	Delivery       string
}

// StreamInfo is the metadata a service extracts for a single stream.
type StreamInfo struct {
	Title    string
	Uploader string
	Duration int64
	Audio    []AudioCandidate
}

// PlaylistEntry is one member of an extracted playlist.
type PlaylistEntry struct {
	Title string
	URL   string
}

// PlaylistInfo is the metadata a service extracts for a playlist.
type PlaylistInfo struct {
	Title string
	Items []PlaylistEntry
}

// Service is one per-site extraction strategy. Implementations are
// stateless with respect to request data and route all network access
// through the injected Fetcher.
type Service interface {
	// ID identifies the service; stable across requests.
	ID() int

	// Name is the human-readable service name for display.
	Name() string

	// Supports reports whether this service handles the URL.
	Supports(url string) bool

	// LinkKind classifies the URL as stream or playlist. A ParseError
	// here is best-effort; callers fall back to stream extraction.
	LinkKind(url string) (domain.LinkKind, error)

	// Stream extracts stream metadata for the URL.
	Stream(ctx context.Context, url string) (*StreamInfo, error)

	// Playlist extracts playlist metadata for the URL.
	Playlist(ctx context.Context, url string) (*PlaylistInfo, error)
}

// Engine resolves URLs to the service that owns them.
type Engine struct {
	services []Service
}

// New creates an Engine. Services are consulted in the given order;
// the first one that supports a URL wins.
func New(services ...Service) *Engine {
	return &Engine{services: services}
}

// Resolve returns the service responsible for the URL, or a ParseError
// when no registered service supports it.
func (e *Engine) Resolve(url string) (Service, error) {
	for _, svc := range e.services {
		if svc.Supports(url) {
			return svc, nil
		}
	}
	return nil, ParseErrorf("unsupported url: %s", url)
}
