// Package gext manages GNOME Shell extensions: it resolves identifiers
// against the extensions.gnome.org catalog, downloads and safely extracts
// packaged archives, and toggles enabled state through the session's
// settings and D-Bus interface.
//
// The entry point is [Client], created with [NewClient] and functional
// options. The catalog, the shell session proxy, and the settings store
// are injectable interfaces so the client can run against fakes in tests.
//
// Basic usage:
//
//	client, err := gext.NewClient()
//	if err != nil { ... }
//	result, err := client.Install(ctx, "drive-menu@gnome-shell-extensions.gcampax.github.com", dir)
package gext
