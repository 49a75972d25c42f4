// Package config provides configuration management for the gext CLI.
package config

import (
	"os"
	"path/filepath"
)

// SystemExtensionsDir is where system-wide extensions live.
const SystemExtensionsDir = "/usr/share/gnome-shell/extensions"

// UserExtensionsDir returns the per-user extensions directory.
// Uses XDG_DATA_HOME/gnome-shell/extensions, defaulting to
// ~/.local/share/gnome-shell/extensions.
func UserExtensionsDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "gnome-shell", "extensions"), nil
}

// Dir returns the gext config directory.
// Uses XDG_CONFIG_HOME/gext, defaulting to ~/.config/gext.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "gext"), nil
}
