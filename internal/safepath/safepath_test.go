package safepath

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gext-cli/gext/core"
)

func TestValidator_ValidatePath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{
			name:    "simple file",
			path:    "extension.js",
			wantErr: nil,
		},
		{
			name:    "nested path",
			path:    "schemas/gschemas.compiled",
			wantErr: nil,
		},
		{
			name:    "dot prefix",
			path:    "./metadata.json",
			wantErr: nil,
		},
		{
			name:    "single dot component",
			path:    "locale/./de",
			wantErr: nil,
		},
		{
			name:    "dots inside a segment",
			path:    "icons/..hidden/icon.svg",
			wantErr: nil,
		},
		{
			name:    "parent traversal at start",
			path:    "../evil.js",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "parent traversal in middle",
			path:    "locale/../../evil.js",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "parent traversal at end",
			path:    "locale/..",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "dot slash prefixed traversal",
			path:    "./../evil.js",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "backslash traversal",
			path:    `..\evil.js`,
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "mixed separator traversal",
			path:    `locale\..\..\evil.js`,
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "bare parent segment",
			path:    "..",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "nul byte",
			path:    "evil\x00.js",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "absolute unix path",
			path:    "/etc/passwd",
			wantErr: core.ErrAbsolutePath,
		},
		{
			name:    "absolute backslash path",
			path:    `\windows\system32`,
			wantErr: core.ErrAbsolutePath,
		},
		{
			name:    "windows drive path",
			path:    `C:\windows\evil.js`,
			wantErr: core.ErrAbsolutePath,
		},
		{
			name:    "absolute path with traversal rejected as traversal",
			path:    "/../evil.js",
			wantErr: core.ErrPathTraversal,
		},
		{
			name:    "empty path",
			path:    "",
			wantErr: nil,
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := v.ValidatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
