package gext

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gext-cli/gext/core"
)

// uuidPattern is the character set an extension UUID may use. The UUID
// doubles as the installation directory name, so nothing resembling a
// path separator is allowed.
var uuidPattern = regexp.MustCompile(`^[-a-zA-Z0-9@._]+$`)

// Identifier is the parsed form of a user-supplied extension identifier:
// either an extension UUID or the numeric catalog id (pk) taken from a
// catalog URL. Exactly one field is set.
type Identifier struct {
	UUID string
	PK   int
}

// IsUUID reports whether s is a well-formed extension UUID.
func IsUUID(s string) bool {
	return uuidPattern.MatchString(s)
}

// ParseIdentifier parses s as an extension UUID, falling back to a
// catalog URL of the form https://host/extension/<digits>/... . Input
// matching neither shape returns ErrInvalidIdentifier.
func ParseIdentifier(s string) (Identifier, error) {
	if IsUUID(s) {
		return Identifier{UUID: s}, nil
	}
	if pk, ok := parseCatalogURL(s); ok {
		return Identifier{PK: pk}, nil
	}
	return Identifier{}, fmt.Errorf("%w: %q", core.ErrInvalidIdentifier, s)
}

// parseCatalogURL extracts the numeric catalog id from an extension page
// URL, e.g. 7 from https://extensions.gnome.org/extension/7/removable-drive-menu/.
func parseCatalogURL(s string) (int, bool) {
	u, err := url.Parse(s)
	if err != nil {
		return 0, false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return 0, false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "extension" {
		return 0, false
	}
	pk, err := strconv.Atoi(parts[1])
	if err != nil || pk <= 0 {
		return 0, false
	}
	return pk, true
}
