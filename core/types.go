// Package core provides the shared types and interfaces for gext.
//
// This package exists to break import cycles between the root gext package
// and internal implementation packages. The gext package re-exports all
// public types from this package, so external users should import gext
// directly, not gext/core.
package core

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions.
var (
	// ErrNotFound indicates the extension was not found, either in the
	// catalog or on the local filesystem.
	ErrNotFound = errors.New("gext: not found")

	// ErrAlreadyExists indicates the extension is already installed.
	ErrAlreadyExists = errors.New("gext: already installed")

	// ErrInvalidIdentifier indicates the identifier is neither a valid
	// extension UUID nor a catalog URL.
	ErrInvalidIdentifier = errors.New("gext: invalid identifier")

	// ErrPathTraversal indicates an archive entry path contains a
	// parent-directory traversal segment.
	ErrPathTraversal = errors.New("gext: path traversal detected")

	// ErrAbsolutePath indicates an archive entry path is absolute.
	ErrAbsolutePath = errors.New("gext: absolute entry path")

	// ErrUnsafeTarget indicates an archive entry resolves outside the
	// extraction destination.
	ErrUnsafeTarget = errors.New("gext: unsafe extraction target")

	// ErrRemote indicates the catalog or the shell service returned a
	// failure.
	ErrRemote = errors.New("gext: remote service error")

	// ErrNoSession indicates no GNOME Shell session is reachable on the
	// session bus.
	ErrNoSession = errors.New("gext: no shell session")
)

// State is the lifecycle state of an extension as reported by the shell.
type State int

// Extension states, matching the values GNOME Shell puts on the wire.
const (
	StateEnabled     State = 1
	StateDisabled    State = 2
	StateError       State = 3
	StateOutOfDate   State = 4
	StateDownloading State = 5
	StateInitialized State = 6
	StateUninstalled State = 99
)

// String returns the lowercase human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateEnabled:
		return "enabled"
	case StateDisabled:
		return "disabled"
	case StateError:
		return "error"
	case StateOutOfDate:
		return "out of date"
	case StateDownloading:
		return "downloading"
	case StateInitialized:
		return "initialized"
	case StateUninstalled:
		return "uninstalled"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Type distinguishes system-wide from per-user extensions.
type Type int

// Extension types, matching the values GNOME Shell puts on the wire.
const (
	TypeSystem  Type = 1
	TypePerUser Type = 2
)

// String returns the lowercase human-readable name of the type.
func (t Type) String() string {
	switch t {
	case TypeSystem:
		return "system"
	case TypePerUser:
		return "user"
	}
	return fmt.Sprintf("unknown(%d)", int(t))
}

// Extension is an extension record as reported by a running shell session.
type Extension struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"url,omitempty"`
	Version     string `json:"version,omitempty"`
	State       State  `json:"state"`
	Type        Type   `json:"type"`
	Path        string `json:"path,omitempty"`
	Error       string `json:"error,omitempty"`
}

// InfoResult is the catalog's metadata for a single extension.
type InfoResult struct {
	UUID        string `json:"uuid"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
	CreatorURL  string `json:"creator_url,omitempty"`
	DownloadURL string `json:"download_url"`
	PK          int    `json:"pk,omitempty"`
	Version     string `json:"version,omitempty"`
}

// InfoQuery selects the extension to look up in the catalog. Exactly one
// of UUID or PK must be set. ShellVersion is optional; when empty the
// catalog serves its latest supported build.
type InfoQuery struct {
	UUID         string
	PK           int
	ShellVersion string
}

// Catalog queries the remote extension catalog.
// This interface is implemented by internal/catalog.
type Catalog interface {
	// Info fetches catalog metadata for one extension.
	// Returns ErrNotFound if the catalog does not know it.
	Info(ctx context.Context, q InfoQuery) (InfoResult, error)

	// Download fetches the packaged zip archive behind downloadURL
	// (resolved against the catalog base URL) into a temporary file.
	// The caller owns the returned path and must remove it.
	Download(ctx context.Context, downloadURL string) (path string, size int64, err error)
}

// ShellProxy is the session-scoped shell service.
// This interface is implemented by internal/shell.
type ShellProxy interface {
	// ListExtensions returns the extensions known to the running session,
	// keyed by UUID.
	ListExtensions() (map[string]Extension, error)

	// ReloadExtension asks the shell to reload the extension. The call has
	// no return value; errors indicate the IPC call itself failed.
	ReloadExtension(uuid string) error

	// ShellVersion reports the running shell's version string.
	ShellVersion() (string, error)
}

// SettingsStore is the enabled-extensions list in the session's settings.
// This interface is implemented by internal/settings.
type SettingsStore interface {
	// Enabled returns the ordered list of enabled extension UUIDs.
	Enabled() ([]string, error)

	// SetEnabled replaces the ordered list of enabled extension UUIDs.
	SetEnabled(uuids []string) error
}
