package gext

import "github.com/gext-cli/gext/core"

// Shared types, re-exported from core so callers only import gext.
type (
	// Extension is an extension record as reported by a running session.
	Extension = core.Extension

	// InfoResult is the catalog's metadata for a single extension.
	InfoResult = core.InfoResult

	// InfoQuery selects the extension to look up in the catalog.
	InfoQuery = core.InfoQuery

	// State is the lifecycle state of an extension.
	State = core.State

	// Type distinguishes system-wide from per-user extensions.
	Type = core.Type

	// Catalog queries the remote extension catalog.
	Catalog = core.Catalog

	// ShellProxy is the session-scoped shell service.
	ShellProxy = core.ShellProxy

	// SettingsStore is the enabled-extensions list in the session's
	// settings.
	SettingsStore = core.SettingsStore
)

// Extension states, matching the values GNOME Shell puts on the wire.
const (
	StateEnabled     = core.StateEnabled
	StateDisabled    = core.StateDisabled
	StateError       = core.StateError
	StateOutOfDate   = core.StateOutOfDate
	StateDownloading = core.StateDownloading
	StateInitialized = core.StateInitialized
	StateUninstalled = core.StateUninstalled
)

// Extension types.
const (
	TypeSystem  = core.TypeSystem
	TypePerUser = core.TypePerUser
)
