// Package fetcher is the single network egress point for the extractor.
// Every upstream request a service makes goes through Client so that
// timeouts, the User-Agent and rate-limit detection stay in one place.
package fetcher

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:140.0) Gecko/20100101 Firefox/140.0"

const (
	connectTimeout = 15 * time.Second
	requestTimeout = 30 * time.Second
)

// ErrRateLimited marks an upstream HTTP 429. Callers need to tell
// "blocked by anti-bot defenses" apart from "content not found", so a
// 429 never comes back as a normal Response.
var ErrRateLimited = errors.New("rate limited")

// Request describes one upstream HTTP request. Headers may carry
// multiple values per name; all of them are forwarded.
type Request struct {
	Method  string
	URL     string
	Headers map[string][]string
	Body    []byte
}

// Response is the outcome of an executed Request. FinalURL reflects
// any redirects that were followed.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       string
	FinalURL   string
}

// Client performs upstream requests with fixed timeouts and redirect
// following. It is safe for concurrent use.
type Client struct {
	http *http.Client
}

// New creates a Client with a 15s connect timeout and a 30s overall
// request timeout.
func New() *Client {
	return &Client{
		http: &http.Client{
			Timeout: requestTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: connectTimeout,
				}).DialContext,
			},
		},
	}
}

// Execute performs the request, forwarding method, headers and body.
// GET and HEAD never carry a body. An upstream 429 is returned as
// ErrRateLimited rather than a Response; no retry happens here.
func (c *Client) Execute(ctx context.Context, req *Request) (*Response, error) {
	var body io.Reader
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		// no body
	default:
		if req.Body != nil {
			body = bytes.NewReader(req.Body)
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", req.URL, err)
	}

	httpReq.Header.Set("User-Agent", userAgent)
	for name, values := range req.Headers {
		if name == "" || len(values) == 0 {
			continue
		}
		httpReq.Header.Set(name, values[0])
		for _, value := range values[1:] {
			httpReq.Header.Add(name, value)
		}
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: %s", ErrRateLimited, req.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", req.URL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       string(data),
		FinalURL:   resp.Request.URL.String(),
	}, nil
}
