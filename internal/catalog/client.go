// Package catalog implements the extensions.gnome.org HTTP API client.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"

	"github.com/gext-cli/gext/core"
)

const (
	// DefaultBaseURL is the public extension catalog.
	DefaultBaseURL = "https://extensions.gnome.org"

	// DefaultUserAgent is sent with every catalog request.
	DefaultUserAgent = "gext/1.0"

	infoPath = "/extension-info/"
)

// ProgressFunc receives download progress. total is -1 when the catalog
// does not report a content length.
type ProgressFunc func(written, total int64)

// Client talks to the extension catalog. It implements core.Catalog.
type Client struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
	progress  ProgressFunc
}

// Compile-time interface implementation check.
var _ core.Catalog = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for catalog requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserAgent sets the User-Agent header for catalog requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets a logger. By default, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithProgress sets a callback invoked while a download streams to disk.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.progress = fn
	}
}

// New creates a catalog client for baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse catalog URL %q: %w", baseURL, err)
	}
	c := &Client{
		base:      base,
		http:      http.DefaultClient,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// infoResponse is the catalog's JSON shape for a single extension. The
// version field arrives as a number for some extensions and a string for
// others, so it is decoded loosely.
type infoResponse struct {
	UUID        string      `json:"uuid"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Link        string      `json:"link"`
	CreatorURL  string      `json:"creator_url"`
	DownloadURL string      `json:"download_url"`
	PK          int         `json:"pk"`
	Version     json.Number `json:"version"`
}

// Info fetches catalog metadata for the extension selected by q.
func (c *Client) Info(ctx context.Context, q core.InfoQuery) (core.InfoResult, error) {
	values := url.Values{}
	switch {
	case q.UUID != "":
		values.Set("uuid", q.UUID)
	case q.PK > 0:
		values.Set("pk", strconv.Itoa(q.PK))
	default:
		return core.InfoResult{}, fmt.Errorf("%w: empty info query", core.ErrInvalidIdentifier)
	}
	if q.ShellVersion != "" {
		values.Set("shell_version", q.ShellVersion)
	}

	endpoint := c.base.JoinPath(infoPath)
	endpoint.RawQuery = values.Encode()

	c.logger.Debug("catalog info query", "url", endpoint.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return core.InfoResult{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return core.InfoResult{}, fmt.Errorf("%w: %v", core.ErrRemote, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.InfoResult{}, fmt.Errorf("%w: extension not in catalog", core.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return core.InfoResult{}, fmt.Errorf("%w: catalog returned %s", core.ErrRemote, resp.Status)
	}

	var payload infoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return core.InfoResult{}, fmt.Errorf("%w: decode catalog response: %v", core.ErrRemote, err)
	}

	return core.InfoResult{
		UUID:        payload.UUID,
		Name:        payload.Name,
		Description: payload.Description,
		Link:        payload.Link,
		CreatorURL:  payload.CreatorURL,
		DownloadURL: payload.DownloadURL,
		PK:          payload.PK,
		Version:     payload.Version.String(),
	}, nil
}

// Download fetches the zip archive behind downloadURL, resolved against
// the catalog base URL, into a temporary file. The caller owns the
// returned path and must remove it when done.
func (c *Client) Download(ctx context.Context, downloadURL string) (string, int64, error) {
	target, err := c.base.Parse(downloadURL)
	if err != nil {
		return "", 0, fmt.Errorf("parse download URL %q: %w", downloadURL, err)
	}

	c.logger.Debug("downloading archive", "url", target.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", core.ErrRemote, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("%w: download returned %s", core.ErrRemote, resp.Status)
	}

	tmp, err := os.CreateTemp("", "gext-*.zip")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}

	var body io.Reader = resp.Body
	if c.progress != nil {
		body = &progressReader{r: resp.Body, total: resp.ContentLength, fn: c.progress}
	}

	written, copyErr := io.Copy(tmp, body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return "", 0, fmt.Errorf("%w: download body: %v", core.ErrRemote, copyErr)
		}
		return "", 0, fmt.Errorf("close temp file: %w", closeErr)
	}

	return tmp.Name(), written, nil
}

// progressReader reports cumulative bytes read to a ProgressFunc.
type progressReader struct {
	r       io.Reader
	total   int64
	written int64
	fn      ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.written += int64(n)
		p.fn(p.written, p.total)
	}
	return n, err
}
