// Package safepath provides textual validation of archive entry paths.
package safepath

import (
	"strings"

	"github.com/gext-cli/gext/core"
)

// Validator rejects archive entry paths that could escape an extraction
// destination on textual grounds: parent-directory traversal segments in
// either separator flavor, absolute paths, and NUL bytes. The structural
// containment check against the resolved destination lives in
// internal/archive; both must pass.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidatePath checks a stored archive entry path. Returns
// core.ErrPathTraversal for traversal segments or NUL bytes and
// core.ErrAbsolutePath for absolute paths; nil otherwise.
func (v *Validator) ValidatePath(path string) error {
	if containsNull(path) || containsTraversal(path) {
		return core.ErrPathTraversal
	}
	if isAbsolute(path) {
		return core.ErrAbsolutePath
	}
	return nil
}

// containsTraversal reports whether any path segment is "..", treating
// both forward and backward slashes as separators regardless of the
// platform the archive was built on.
func containsTraversal(path string) bool {
	for _, seg := range strings.FieldsFunc(path, isSeparator) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// isAbsolute reports whether the stored path would escape relative
// interpretation under the destination: a leading separator of either
// flavor, or a Windows drive prefix.
func isAbsolute(path string) bool {
	if path == "" {
		return false
	}
	if isSeparator(rune(path[0])) {
		return true
	}
	return len(path) >= 2 && path[1] == ':' && isDriveLetter(path[0])
}

func containsNull(path string) bool {
	return strings.IndexByte(path, 0) >= 0
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
