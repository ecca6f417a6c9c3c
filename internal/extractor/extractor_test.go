package extractor

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fodders-Dev/RadioAtlas/internal/domain"
	"github.com/Fodders-Dev/RadioAtlas/internal/engine"
)

// fakeService is a scriptable engine.Service for orchestrator tests.
type fakeService struct {
	id   int
	name string

	kind    domain.LinkKind
	kindErr error

	stream    *engine.StreamInfo
	streamErr error

	playlist    *engine.PlaylistInfo
	playlistErr error

	streamCalls   int
	playlistCalls int
}

func (f *fakeService) ID() int { return f.id }
func (f *fakeService) Name() string { return f.name }
func (f *fakeService) Supports(string) bool { return true }

func (f *fakeService) LinkKind(string) (domain.LinkKind, error) {
	return f.kind, f.kindErr
}

func (f *fakeService) Stream(context.Context, string) (*engine.StreamInfo, error) {
	f.streamCalls++
	return f.stream, f.streamErr
}

func (f *fakeService) Playlist(context.Context, string) (*engine.PlaylistInfo, error) {
	f.playlistCalls++
	return f.playlist, f.playlistErr
}

const blockedID = 99

func newExtractor(svc engine.Service) *Extractor {
	return New(engine.New(svc), blockedID)
}

func TestExtractBlockedServiceIdentity(t *testing.T) {
	svc := &fakeService{id: blockedID, name: "Blocked", kind: domain.KindStream}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://blocked.example/watch")

	require.NoError(t, err)
	assert.Equal(t, "error", result.Type)
	assert.Equal(t, "service blocked", result.Error)
	assert.Zero(t, svc.streamCalls, "no metadata fetch may happen for a blocked service")
	assert.Zero(t, svc.playlistCalls)
}

func TestExtractUnsupportedURL(t *testing.T) {
	ex := New(engine.New(), blockedID)

	result, err := ex.Extract(context.Background(), "ftp://nowhere.example/file")

	assert.Nil(t, result)
	assert.True(t, engine.IsParseError(err))
}

func TestExtractStream(t *testing.T) {
	svc := &fakeService{
		id:   1,
		name: "SoundCloud",
		kind: domain.KindStream,
		stream: &engine.StreamInfo{
			Title:    "Song A",
			Uploader: "Artist",
			Duration: 215,
			Audio: []engine.AudioCandidate{
				{Content: "https://cdn.example/low", Format: "mp3", MimeType: "audio/mpeg", Bitrate: 128000, Delivery: engine.DeliveryProgressive},
				{Content: "https://cdn.example/high", Format: "opus", MimeType: "audio/ogg", AverageBitrate: 192000, Delivery: engine.DeliveryHLS},
			},
		},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/track/1")

	require.NoError(t, err)
	assert.Equal(t, "stream", result.Type)
	assert.Equal(t, "SoundCloud", result.Service)
	assert.Equal(t, "https://example.com/track/1", result.URL)
	assert.Equal(t, "Song A", result.Title)
	assert.Equal(t, "Artist", result.Uploader)
	assert.Equal(t, int64(215), result.Duration)
	require.Len(t, result.AudioStreams, 2)
	// The 192k average-bitrate variant outranks the 128k one.
	assert.Equal(t, "https://cdn.example/high", result.AudioStreams[0].URL)
	assert.Equal(t, "https://cdn.example/low", result.AudioStreams[1].URL)
	assert.Equal(t, "hls", result.AudioStreams[0].Delivery)
	assert.Equal(t, "progressive_http", result.AudioStreams[1].Delivery)
	assert.Empty(t, result.Items)
}

func TestExtractStreamDropsBlankContent(t *testing.T) {
	svc := &fakeService{
		id:   1,
		name: "SoundCloud",
		kind: domain.KindStream,
		stream: &engine.StreamInfo{
			Title: "Song",
			Audio: []engine.AudioCandidate{
				{Content: "", Bitrate: 320000},
				{Content: "   ", Bitrate: 256000},
				{Content: "https://cdn.example/ok", Bitrate: 128000},
			},
		},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/track/1")

	require.NoError(t, err)
	require.Len(t, result.AudioStreams, 1)
	assert.Equal(t, "https://cdn.example/ok", result.AudioStreams[0].URL)
}

func TestExtractClassificationFailureFallsBackToStream(t *testing.T) {
	svc := &fakeService{
		id:      1,
		name:    "SoundCloud",
		kindErr: engine.ParseErrorf("cannot classify"),
		stream:  &engine.StreamInfo{Title: "Song"},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/weird")

	require.NoError(t, err)
	assert.Equal(t, "stream", result.Type)
	assert.Equal(t, 1, svc.streamCalls)
}

func TestExtractClassificationTransportFailurePropagates(t *testing.T) {
	svc := &fakeService{
		id:      1,
		name:    "SoundCloud",
		kindErr: fmt.Errorf("connection reset"),
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/weird")

	assert.Nil(t, result)
	assert.EqualError(t, err, "connection reset")
	assert.Zero(t, svc.streamCalls)
}

func TestExtractUnknownKindTakesStreamPath(t *testing.T) {
	svc := &fakeService{
		id:     1,
		name:   "SoundCloud",
		kind:   domain.KindUnknown,
		stream: &engine.StreamInfo{Title: "Song"},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/whoami")

	require.NoError(t, err)
	assert.Equal(t, "stream", result.Type)
	assert.Zero(t, svc.playlistCalls)
}

func TestExtractPlaylist(t *testing.T) {
	svc := &fakeService{
		id:   1,
		name: "SoundCloud",
		kind: domain.KindPlaylist,
		playlist: &engine.PlaylistInfo{
			Title: "Mix Collection",
			Items: []engine.PlaylistEntry{
				{Title: "One", URL: "https://example.com/1"},
				{Title: "Two", URL: "https://example.com/2"},
			},
		},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/sets/mix")

	require.NoError(t, err)
	assert.Equal(t, "playlist", result.Type)
	assert.Equal(t, "Mix Collection", result.Title)
	require.Len(t, result.Items, 2)
	assert.Equal(t, domain.PlaylistItem{Title: "One", URL: "https://example.com/1"}, result.Items[0])
	assert.Empty(t, result.AudioStreams)
	assert.Empty(t, result.Uploader)
	assert.Zero(t, result.Duration)
}

func TestExtractPlaylistCappedAt200(t *testing.T) {
	entries := make([]engine.PlaylistEntry, 250)
	for i := range entries {
		entries[i] = engine.PlaylistEntry{
			Title: fmt.Sprintf("Track %d", i),
			URL:   fmt.Sprintf("https://example.com/%d", i),
		}
	}
	svc := &fakeService{
		id:       1,
		name:     "SoundCloud",
		kind:     domain.KindPlaylist,
		playlist: &engine.PlaylistInfo{Title: "Big", Items: entries},
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/sets/big")

	require.NoError(t, err)
	require.Len(t, result.Items, domain.MaxPlaylistItems)
	assert.Equal(t, "Track 0", result.Items[0].Title)
	assert.Equal(t, "Track 199", result.Items[199].Title)
}

func TestExtractStreamErrorPropagates(t *testing.T) {
	svc := &fakeService{
		id:        1,
		name:      "SoundCloud",
		kind:      domain.KindStream,
		streamErr: engine.ParseErrorf("track not found"),
	}
	ex := newExtractor(svc)

	result, err := ex.Extract(context.Background(), "https://example.com/track/gone")

	assert.Nil(t, result)
	assert.True(t, engine.IsParseError(err))
}
