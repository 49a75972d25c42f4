package gext

import (
	"log/slog"
	"net/http"

	"github.com/gext-cli/gext/internal/catalog"
)

// ClientOption configures a Client.
type ClientOption func(*Client) error

// InstallOption configures an Install operation.
type InstallOption func(*installConfig)

// ProgressFunc receives download progress. total is -1 when the catalog
// does not report a content length.
type ProgressFunc = catalog.ProgressFunc

// installConfig holds configuration for Install operations.
type installConfig struct {
	multiple bool
	enable   bool
}

// WithCatalog replaces the catalog client. Intended for tests.
func WithCatalog(cat Catalog) ClientOption {
	return func(c *Client) error {
		c.catalog = cat
		return nil
	}
}

// WithCatalogBaseURL points the client at a different catalog.
func WithCatalogBaseURL(baseURL string) ClientOption {
	return func(c *Client) error {
		c.catalogBaseURL = baseURL
		return nil
	}
}

// WithHTTPClient sets the HTTP client used for catalog requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) error {
		c.httpClient = hc
		return nil
	}
}

// WithLogger sets a logger for the client. By default, logging is
// disabled.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithProgress sets a callback invoked while archive downloads stream to
// disk.
func WithProgress(fn ProgressFunc) ClientOption {
	return func(c *Client) error {
		c.progress = fn
		return nil
	}
}

// WithSettingsStore replaces the enabled-extensions settings store.
func WithSettingsStore(store SettingsStore) ClientOption {
	return func(c *Client) error {
		c.settings = store
		return nil
	}
}

// WithShellProxy replaces the session shell proxy.
func WithShellProxy(proxy ShellProxy) ClientOption {
	return func(c *Client) error {
		c.shell = proxy
		return nil
	}
}

// WithShellVersion overrides shell version detection for catalog queries.
func WithShellVersion(version string) ClientOption {
	return func(c *Client) error {
		c.shellVersion = version
		return nil
	}
}

// WithUserAgent sets a custom User-Agent header for catalog requests.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithMultiple proceeds with installation even when the running session
// already knows the extension from another location.
func WithMultiple() InstallOption {
	return func(c *installConfig) {
		c.multiple = true
	}
}

// WithoutEnable skips the best-effort enable after installation.
func WithoutEnable() InstallOption {
	return func(c *installConfig) {
		c.enable = false
	}
}
