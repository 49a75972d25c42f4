package gext

import "github.com/gext-cli/gext/core"

// Sentinel errors for common failure conditions.
// Re-exported from core package.
var (
	// ErrNotFound indicates the extension was not found, either in the
	// catalog or on the local filesystem.
	ErrNotFound = core.ErrNotFound

	// ErrAlreadyExists indicates the extension is already installed.
	ErrAlreadyExists = core.ErrAlreadyExists

	// ErrInvalidIdentifier indicates the identifier is neither a valid
	// extension UUID nor a catalog URL.
	ErrInvalidIdentifier = core.ErrInvalidIdentifier

	// ErrPathTraversal indicates an archive entry path contains a
	// parent-directory traversal segment.
	ErrPathTraversal = core.ErrPathTraversal

	// ErrAbsolutePath indicates an archive entry path is absolute.
	ErrAbsolutePath = core.ErrAbsolutePath

	// ErrUnsafeTarget indicates an archive entry resolves outside the
	// extraction destination.
	ErrUnsafeTarget = core.ErrUnsafeTarget

	// ErrRemote indicates the catalog or the shell service returned a
	// failure.
	ErrRemote = core.ErrRemote

	// ErrNoSession indicates no GNOME Shell session is reachable on the
	// session bus.
	ErrNoSession = core.ErrNoSession
)
