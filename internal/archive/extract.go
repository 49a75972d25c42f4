// Package archive extracts extension zip packages onto the filesystem,
// enforcing that every entry lands inside the destination directory.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gext-cli/gext/core"
	"github.com/gext-cli/gext/internal/safepath"
)

// Extract materializes the entries of zr under destination, in archive
// order. The destination must already exist as a directory; it is resolved
// through symlinks once up front, and every entry must resolve to a path
// strictly inside it. The first violating entry aborts the whole
// extraction. Entries written before the violation stay on disk, so
// callers extract into a freshly created directory and clean it up on
// failure themselves if they need atomicity.
//
// Files are created with O_EXCL: extraction never overwrites an existing
// file.
func Extract(zr *zip.Reader, destination string) error {
	destRoot, err := filepath.EvalSymlinks(destination)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if destRoot, err = filepath.Abs(destRoot); err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	info, err := os.Stat(destRoot)
	if err != nil {
		return fmt.Errorf("stat destination: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination %s is not a directory", destRoot)
	}

	validator := safepath.NewValidator()
	for _, f := range zr.File {
		if err := extractEntry(f, destRoot, validator); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry processes a single archive entry: textual validation,
// structural containment, parent creation, then the entry itself.
func extractEntry(f *zip.File, destRoot string, v *safepath.Validator) error {
	if err := v.ValidatePath(f.Name); err != nil {
		return fmt.Errorf("%w: entry %s", err, f.Name)
	}

	target, err := resolveTarget(destRoot, f.Name)
	if err != nil {
		return fmt.Errorf("resolve entry %q: %w", f.Name, err)
	}
	if !hasAncestor(target, destRoot) {
		return fmt.Errorf("%w: entry %s", core.ErrUnsafeTarget, f.Name)
	}

	if err := makeParents(destRoot, target); err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return makeDir(target)
	}
	return writeFile(f, target)
}

// resolveTarget joins the entry path onto destRoot and resolves it the way
// the filesystem would: the longest existing ancestor is resolved through
// symlinks and the not-yet-existing remainder is appended lexically
// cleaned. Entries routed through a symlinked intermediate directory
// therefore resolve to the symlink's real target.
func resolveTarget(destRoot, name string) (string, error) {
	path := filepath.Join(destRoot, filepath.FromSlash(name))

	var suffix string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", fmt.Errorf("no existing ancestor for %s", path)
		}
		suffix = filepath.Join(filepath.Base(path), suffix)
		path = parent
	}
}

// hasAncestor reports whether root appears as a literal element of
// target's ancestor chain. This is an element-wise walk, not a string
// prefix test, so /tmp/dest-evil does not pass for root /tmp/dest.
func hasAncestor(target, root string) bool {
	for p := filepath.Dir(target); ; p = filepath.Dir(p) {
		if p == root {
			return true
		}
		if p == filepath.Dir(p) {
			return false
		}
	}
}

// makeParents creates every missing intermediate directory between
// destRoot and target's parent, one level at a time from the root
// outward. Levels are created individually so a pre-existing
// non-directory at any level surfaces as the Mkdir error instead of being
// papered over by a recursive create.
func makeParents(destRoot, target string) error {
	var chain []string
	for p := filepath.Dir(target); p != destRoot; p = filepath.Dir(p) {
		if p == filepath.Dir(p) {
			break
		}
		chain = append(chain, p)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		dir := chain[i]
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			continue
		}
		if err := os.Mkdir(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	return nil
}

// makeDir creates a directory entry's target if it does not already exist
// as a directory. An existing non-directory surfaces as the Mkdir error.
func makeDir(target string) error {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return nil
	}
	if err := os.Mkdir(target, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return nil
}

// writeFile copies a file entry's byte stream into target. The target is
// opened for exclusive creation, so an existing file at the path fails the
// extraction rather than being overwritten.
func writeFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	_, copyErr := io.Copy(out, rc)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("write %s: %w", target, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close %s: %w", target, closeErr)
	}
	return nil
}
