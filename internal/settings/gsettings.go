// Package settings reads and writes the shell's enabled-extensions list.
//
// The list lives under the org.gnome.shell GSettings schema. There is no
// GSettings binding in pure Go, so the store drives the stock gsettings
// binary and speaks the GVariant textual form of a string array.
package settings

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gext-cli/gext/core"
)

const (
	schema = "org.gnome.shell"
	key    = "enabled-extensions"
)

// Store implements core.SettingsStore on top of the gsettings binary.
type Store struct {
	// run executes gsettings with the given arguments and returns stdout.
	// Overridable for tests.
	run func(args ...string) (string, error)
}

// Compile-time interface implementation check.
var _ core.SettingsStore = (*Store)(nil)

// NewStore creates a Store that executes the gsettings binary.
func NewStore() *Store {
	return &Store{run: runGsettings}
}

// Enabled returns the ordered list of enabled extension UUIDs.
func (s *Store) Enabled() ([]string, error) {
	out, err := s.run("get", schema, key)
	if err != nil {
		return nil, fmt.Errorf("%w: gsettings get: %v", core.ErrRemote, err)
	}
	list, err := ParseStringList(strings.TrimSpace(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrRemote, err)
	}
	return list, nil
}

// SetEnabled replaces the ordered list of enabled extension UUIDs.
func (s *Store) SetEnabled(uuids []string) error {
	if _, err := s.run("set", schema, key, FormatStringList(uuids)); err != nil {
		return fmt.Errorf("%w: gsettings set: %v", core.ErrRemote, err)
	}
	return nil
}

func runGsettings(args ...string) (string, error) {
	out, err := exec.Command("gsettings", args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return "", fmt.Errorf("%s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}

// ParseStringList parses the GVariant textual form of a string array:
// ['a', 'b'], [] or the typed empty form @as [].
func ParseStringList(s string) ([]string, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "@as"))
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("not a GVariant string array: %q", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []string{}, nil
	}

	var (
		list    []string
		current strings.Builder
		quote   byte
		escaped bool
		inItem  bool
	)
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case escaped:
			current.WriteByte(c)
			escaped = false
		case inItem && c == '\\':
			escaped = true
		case inItem && c == quote:
			list = append(list, current.String())
			current.Reset()
			inItem = false
		case inItem:
			current.WriteByte(c)
		case c == '\'' || c == '"':
			quote = c
			inItem = true
		case c == ',' || c == ' ' || c == '\t':
			// separators between items
		default:
			return nil, fmt.Errorf("unexpected character %q in GVariant string array", c)
		}
	}
	if inItem || escaped {
		return nil, fmt.Errorf("unterminated string in GVariant array: %q", s)
	}
	return list, nil
}

// FormatStringList renders the GVariant textual form of a string array.
// The empty list needs the typed form so gsettings can infer the type.
func FormatStringList(items []string) string {
	if len(items) == 0 {
		return "@as []"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		item = strings.ReplaceAll(item, `\`, `\\`)
		item = strings.ReplaceAll(item, `'`, `\'`)
		quoted[i] = "'" + item + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
