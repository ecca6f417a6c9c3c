package domain

// MaxPlaylistItems caps how many playlist entries are retained per response.
const MaxPlaylistItems = 200

// LinkKind classifies what a URL points at.
type LinkKind int

const (
	KindUnknown LinkKind = iota
	KindStream
	KindPlaylist
)

func (k LinkKind) String() string {
	switch k {
	case KindStream:
		return "stream"
	case KindPlaylist:
		return "playlist"
	default:
		return "unknown"
	}
}

// AudioVariant is one candidate audio rendition of a stream.
type AudioVariant struct {
	URL            string `json:"url"`
	Format         string `json:"format"`
	MimeType       string `json:"mimeType"`
	Bitrate        int    `json:"bitrate"`
	AverageBitrate int    `json:"averageBitrate"`
	Delivery       string `json:"delivery"`
}

// PlaylistItem is one member entry of a playlist.
type PlaylistItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Response is the flattened extraction result. All fields are always
// present on the wire regardless of variant so clients can parse a
// single stable shape; Type tells them which fields carry data.
type Response struct {
	Type         string         `json:"type"`
	Service      string         `json:"service"`
	URL          string         `json:"url"`
	Title        string         `json:"title"`
	Uploader     string         `json:"uploader"`
	Duration     int64          `json:"duration"`
	AudioStreams []AudioVariant `json:"audioStreams"`
	Items        []PlaylistItem `json:"items"`
	Error        string         `json:"error"`
}

// StreamResponse builds a stream-variant response.
func StreamResponse(service, url, title, uploader string, duration int64, audio []AudioVariant) *Response {
	if audio == nil {
		audio = []AudioVariant{}
	}
	return &Response{
		Type:         "stream",
		Service:      service,
		URL:          url,
		Title:        title,
		Uploader:     uploader,
		Duration:     duration,
		AudioStreams: audio,
		Items:        []PlaylistItem{},
	}
}

// PlaylistResponse builds a playlist-variant response.
func PlaylistResponse(service, url, title string, items []PlaylistItem) *Response {
	if items == nil {
		items = []PlaylistItem{}
	}
	return &Response{
		Type:         "playlist",
		Service:      service,
		URL:          url,
		Title:        title,
		AudioStreams: []AudioVariant{},
		Items:        items,
	}
}

// ErrorResponse builds an error-variant response.
func ErrorResponse(message string) *Response {
	return &Response{
		Type:         "error",
		AudioStreams: []AudioVariant{},
		Items:        []PlaylistItem{},
		Error:        message,
	}
}
