package gext

import "context"

// List returns the extensions known to the running shell session, keyed
// by UUID.
func (c *Client) List() (map[string]Extension, error) {
	proxy, err := c.shellProxy()
	if err != nil {
		return nil, err
	}
	return proxy.ListExtensions()
}

// Reload asks the running session to reload the extension. The identifier
// may be a UUID or a catalog URL.
func (c *Client) Reload(ctx context.Context, identifier string) error {
	uuid, err := c.resolveUUID(ctx, identifier)
	if err != nil {
		return err
	}
	proxy, err := c.shellProxy()
	if err != nil {
		return err
	}
	return proxy.ReloadExtension(uuid)
}

// Info fetches the extension's catalog metadata and, when a session is
// reachable and knows the UUID, its local record. The local record is nil
// otherwise; session access is best-effort and never fails the call.
func (c *Client) Info(ctx context.Context, identifier string) (InfoResult, *Extension, error) {
	info, err := c.Resolve(ctx, identifier)
	if err != nil {
		return InfoResult{}, nil, err
	}
	if proxy, perr := c.shellProxy(); perr == nil {
		if known, lerr := proxy.ListExtensions(); lerr == nil {
			if ext, ok := known[info.UUID]; ok {
				return info, &ext, nil
			}
		} else {
			c.logger.Debug("session list unavailable", "error", lerr)
		}
	}
	return info, nil, nil
}
