package gext

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gext-cli/gext/core"
	"github.com/gext-cli/gext/internal/catalog"
	"github.com/gext-cli/gext/internal/settings"
	"github.com/gext-cli/gext/internal/shell"
)

// Client performs extension management operations. The zero value is not
// usable; create one with NewClient.
type Client struct {
	catalog  Catalog
	shell    ShellProxy
	settings SettingsStore
	logger   *slog.Logger

	// configuration passed to the catalog client
	catalogBaseURL string
	httpClient     *http.Client
	userAgent      string
	progress       ProgressFunc

	// shell version for catalog queries; detected lazily unless overridden
	shellVersion string

	// memoized session-bus connection failure
	shellErr error
}

// NewClient creates a new gext client.
//
// By default the client talks to the public catalog, drives the gsettings
// binary for the enabled-extensions list, and connects to the session bus
// lazily on first use. All three collaborators can be replaced with
// options.
func NewClient(opts ...ClientOption) (*Client, error) {
	c := &Client{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.catalog == nil {
		catOpts := []catalog.Option{
			catalog.WithLogger(c.logger),
		}
		if c.httpClient != nil {
			catOpts = append(catOpts, catalog.WithHTTPClient(c.httpClient))
		}
		if c.userAgent != "" {
			catOpts = append(catOpts, catalog.WithUserAgent(c.userAgent))
		}
		if c.progress != nil {
			catOpts = append(catOpts, catalog.WithProgress(c.progress))
		}
		cat, err := catalog.New(c.catalogBaseURL, catOpts...)
		if err != nil {
			return nil, fmt.Errorf("create catalog client: %w", err)
		}
		c.catalog = cat
	}

	if c.settings == nil {
		c.settings = settings.NewStore()
	}

	return c, nil
}

// shellProxy returns the session proxy, connecting on first use. The
// connection attempt is made once; a failure is remembered so callers
// that treat shell access as best-effort do not retry per call.
func (c *Client) shellProxy() (ShellProxy, error) {
	if c.shell != nil {
		return c.shell, nil
	}
	if c.shellErr != nil {
		return nil, c.shellErr
	}
	proxy, err := shell.Connect()
	if err != nil {
		c.shellErr = err
		return nil, err
	}
	c.shell = proxy
	return proxy, nil
}

// detectShellVersion determines the shell version to send with catalog
// queries: an explicit override, the session's ShellVersion property, the
// gnome-shell binary, in that order. Returns "" when none is available;
// the catalog then serves its latest supported build.
func (c *Client) detectShellVersion() string {
	if c.shellVersion != "" {
		return c.shellVersion
	}
	if proxy, err := c.shellProxy(); err == nil {
		if v, err := proxy.ShellVersion(); err == nil && v != "" {
			c.shellVersion = v
			return v
		}
	}
	if v, err := shell.VersionFromCommand(); err == nil {
		c.shellVersion = v
		return v
	}
	c.logger.Debug("shell version not detectable, querying catalog without it")
	return ""
}

// Resolve parses an identifier (UUID or catalog URL) and fetches the
// extension's catalog metadata.
func (c *Client) Resolve(ctx context.Context, identifier string) (InfoResult, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return InfoResult{}, err
	}
	return c.catalog.Info(ctx, core.InfoQuery{
		UUID:         id.UUID,
		PK:           id.PK,
		ShellVersion: c.detectShellVersion(),
	})
}
