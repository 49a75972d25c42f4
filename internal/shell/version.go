package shell

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// "GNOME Shell 45.2" or "GNOME Shell 3.38.5".
var versionPattern = regexp.MustCompile(`(\d+(?:\.\d+)*)`)

// VersionFromCommand asks the gnome-shell binary for its version. Used as
// a fallback when the session bus is unavailable (for example over SSH).
func VersionFromCommand() (string, error) {
	out, err := exec.Command("gnome-shell", "--version").Output()
	if err != nil {
		return "", fmt.Errorf("run gnome-shell --version: %w", err)
	}
	version := versionPattern.FindString(strings.TrimSpace(string(out)))
	if version == "" {
		return "", fmt.Errorf("unrecognized gnome-shell version output %q", strings.TrimSpace(string(out)))
	}
	return version, nil
}
