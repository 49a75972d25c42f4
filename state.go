package gext

import (
	"context"
	"slices"
)

// Enable adds the extension to the session's enabled-extensions list. The
// identifier may be a UUID or a catalog URL; URLs are resolved to their
// UUID through the catalog first. Returns false with a nil error when the
// extension was already enabled; the list is left untouched in that case,
// so no duplicates accumulate.
func (c *Client) Enable(ctx context.Context, identifier string) (bool, error) {
	uuid, err := c.resolveUUID(ctx, identifier)
	if err != nil {
		return false, err
	}
	enabled, err := c.settings.Enabled()
	if err != nil {
		return false, err
	}
	if slices.Contains(enabled, uuid) {
		return false, nil
	}
	if err := c.settings.SetEnabled(append(enabled, uuid)); err != nil {
		return false, err
	}
	c.logger.Debug("enabled", "uuid", uuid)
	return true, nil
}

// Disable removes the extension from the session's enabled-extensions
// list, preserving the order of the remaining entries. The identifier may
// be a UUID or a catalog URL. Returns false with a nil error when the
// extension was not enabled.
func (c *Client) Disable(ctx context.Context, identifier string) (bool, error) {
	uuid, err := c.resolveUUID(ctx, identifier)
	if err != nil {
		return false, err
	}
	enabled, err := c.settings.Enabled()
	if err != nil {
		return false, err
	}
	remaining := slices.DeleteFunc(slices.Clone(enabled), func(s string) bool {
		return s == uuid
	})
	if len(remaining) == len(enabled) {
		return false, nil
	}
	if err := c.settings.SetEnabled(remaining); err != nil {
		return false, err
	}
	c.logger.Debug("disabled", "uuid", uuid)
	return true, nil
}
