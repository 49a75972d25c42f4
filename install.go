package gext

import (
	"archive/zip"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gext-cli/gext/core"
	"github.com/gext-cli/gext/internal/archive"
)

// InstallResult describes a completed installation.
type InstallResult struct {
	UUID            string
	Name            string
	Path            string
	DownloadedBytes int64
	Enabled         bool
}

// Install resolves the identifier, downloads the packaged archive, and
// extracts it under destRoot/<uuid>. The target directory must not exist
// yet; an existing installation returns ErrAlreadyExists. Unless
// WithoutEnable is given, the extension is enabled afterwards on a
// best-effort basis: enable failures are logged, not returned.
//
// Extraction failures leave whatever was already written under the target
// directory; the caller decides whether to clean up before retrying.
func (c *Client) Install(ctx context.Context, identifier, destRoot string, opts ...InstallOption) (*InstallResult, error) {
	cfg := installConfig{enable: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	info, err := c.Resolve(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if info.UUID == "" {
		return nil, fmt.Errorf("%w: catalog response has no uuid", core.ErrRemote)
	}
	if info.DownloadURL == "" {
		return nil, fmt.Errorf("%w: catalog offers no download for %s", core.ErrNotFound, info.UUID)
	}

	target := filepath.Join(destRoot, info.UUID)
	if _, err := os.Stat(target); err == nil {
		return nil, fmt.Errorf("%w: %s at %s", core.ErrAlreadyExists, info.UUID, target)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", target, err)
	}

	// A session may know the extension from a different root (say, a
	// system-wide install). Refuse a second copy unless asked for one.
	// Best-effort: no session means nothing to check against.
	if !cfg.multiple {
		if err := c.checkNotInstalledElsewhere(info.UUID); err != nil {
			return nil, err
		}
	}

	archivePath, size, err := c.catalog.Download(ctx, info.DownloadURL)
	if err != nil {
		return nil, err
	}
	defer os.Remove(archivePath)

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, fmt.Errorf("create extensions directory: %w", err)
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("%w: %s at %s", core.ErrAlreadyExists, info.UUID, target)
		}
		return nil, fmt.Errorf("create %s: %w", target, err)
	}

	if err := extractArchive(archivePath, target); err != nil {
		return nil, err
	}

	c.logger.Debug("installed", "uuid", info.UUID, "path", target, "bytes", size)

	result := &InstallResult{
		UUID:            info.UUID,
		Name:            info.Name,
		Path:            target,
		DownloadedBytes: size,
	}

	if cfg.enable {
		if _, err := c.Enable(ctx, info.UUID); err != nil {
			c.logger.Warn("installed but could not enable", "uuid", info.UUID, "error", err)
		} else {
			result.Enabled = true
		}
	}

	return result, nil
}

// Uninstall removes the extension's directory under destRoot, disabling
// it first on a best-effort basis. Returns ErrNotFound when the extension
// is not installed there.
func (c *Client) Uninstall(ctx context.Context, identifier, destRoot string) error {
	uuid, err := c.resolveUUID(ctx, identifier)
	if err != nil {
		return err
	}

	target := filepath.Join(destRoot, uuid)
	if _, err := os.Stat(target); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s is not installed under %s", core.ErrNotFound, uuid, destRoot)
		}
		return fmt.Errorf("stat %s: %w", target, err)
	}

	if _, err := c.Disable(ctx, uuid); err != nil {
		c.logger.Warn("could not disable before uninstall", "uuid", uuid, "error", err)
	}

	if err := os.RemoveAll(target); err != nil {
		return fmt.Errorf("remove %s: %w", target, err)
	}

	c.logger.Debug("uninstalled", "uuid", uuid, "path", target)
	return nil
}

// resolveUUID turns an identifier into a UUID, asking the catalog only
// when the identifier is a catalog URL.
func (c *Client) resolveUUID(ctx context.Context, identifier string) (string, error) {
	id, err := ParseIdentifier(identifier)
	if err != nil {
		return "", err
	}
	if id.UUID != "" {
		return id.UUID, nil
	}
	info, err := c.Resolve(ctx, identifier)
	if err != nil {
		return "", err
	}
	return info.UUID, nil
}

// checkNotInstalledElsewhere consults the running session for an existing
// installation of uuid.
func (c *Client) checkNotInstalledElsewhere(uuid string) error {
	proxy, err := c.shellProxy()
	if err != nil {
		c.logger.Debug("skipping duplicate-install check", "error", err)
		return nil
	}
	known, err := proxy.ListExtensions()
	if err != nil {
		c.logger.Debug("skipping duplicate-install check", "error", err)
		return nil
	}
	if ext, ok := known[uuid]; ok && ext.State != core.StateUninstalled {
		return fmt.Errorf("%w: session already has %s at %s (pass the multiple-install option to add another copy)",
			core.ErrAlreadyExists, uuid, ext.Path)
	}
	return nil
}

// extractArchive opens the downloaded zip and extracts it into target.
func extractArchive(archivePath, target string) error {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	extractErr := archive.Extract(&zr.Reader, target)
	closeErr := zr.Close()
	if extractErr != nil {
		return extractErr
	}
	return closeErr
}
