package apply

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stormops/k8s-storm-operator-go/internal/catalog"
)

// owner is a resolved owner and group. -1 leaves the id unmanaged.
type owner struct {
	uid, gid int
	// unresolved names that do not exist yet, possible only in dry-run.
	pending bool
}

func (a *Applier) resolveOwner(f catalog.File) (owner, error) {
	o := owner{uid: -1, gid: -1}
	if f.Owner != "" {
		uid, err := a.Owners.LookupUser(f.Owner)
		switch {
		case err == nil:
			o.uid = uid
		case a.DryRun:
			o.pending = true
		default:
			return o, err
		}
	}
	if f.Group != "" {
		gid, err := a.Owners.LookupGroup(f.Group)
		switch {
		case err == nil:
			o.gid = gid
		case a.DryRun:
			o.pending = true
		default:
			return o, err
		}
	}
	return o, nil
}

func parseMode(mode string) (fs.FileMode, bool, error) {
	if mode == "" {
		return 0, false, nil
	}
	m, err := strconv.ParseUint(mode, 8, 32)
	if err != nil || m > 0o7777 {
		return 0, false, fmt.Errorf("invalid file mode %q", mode)
	}
	return fs.FileMode(m), true, nil
}

// unixMode converts a permission-and-special-bits value to an os.FileMode.
func unixMode(m fs.FileMode) fs.FileMode {
	mode := m & fs.ModePerm
	if m&0o4000 != 0 {
		mode |= fs.ModeSetuid
	}
	if m&0o2000 != 0 {
		mode |= fs.ModeSetgid
	}
	if m&0o1000 != 0 {
		mode |= fs.ModeSticky
	}
	return mode
}

func (a *Applier) applyFile(path string, f catalog.File) ([]string, error) {
	target := a.hostPath(path)
	switch f.Ensure {
	case catalog.EnsureDirectory:
		return a.applyDirectory(target, f)
	case catalog.EnsureFile:
		return a.applyRegular(target, f)
	case catalog.EnsureLink:
		return a.applyLink(target, f)
	case catalog.EnsureAbsent:
		return a.applyAbsent(target)
	default:
		return nil, fmt.Errorf("unsupported file ensure %q", f.Ensure)
	}
}

func (a *Applier) applyDirectory(path string, f catalog.File) ([]string, error) {
	mode, hasMode, err := parseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	own, err := a.resolveOwner(f)
	if err != nil {
		return nil, err
	}

	var actions []string
	fi, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		actions = append(actions, "created directory")
		if a.DryRun {
			return actions, nil
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return actions, fmt.Errorf("failed to create directory: %w", err)
		}
		if fi, err = os.Lstat(path); err != nil {
			return actions, err
		}
	case err != nil:
		return nil, err
	case !fi.IsDir():
		return nil, fmt.Errorf("%s exists and is not a directory", path)
	}

	more, err := a.setAttributes(path, fi, own, mode, hasMode)
	if err != nil {
		return actions, err
	}
	actions = append(actions, more...)

	if f.Recurse {
		more, err := a.recurse(path, f.RecurseLimit, own, mode, hasMode)
		if err != nil {
			return actions, err
		}
		actions = append(actions, more...)
	}
	return actions, nil
}

// recurse applies ownership below root. Directories take mode; files take
// mode without the execute bits.
func (a *Applier) recurse(root string, limit int, own owner, mode fs.FileMode, hasMode bool) ([]string, error) {
	var fixed int
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == root {
			return nil
		}
		rel, _ := filepath.Rel(root, p)
		depth := strings.Count(rel, string(filepath.Separator)) + 1
		if limit > 0 && depth > limit {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		fi, err := os.Lstat(p)
		if err != nil {
			return err
		}
		if fi.Mode()&fs.ModeSymlink != 0 {
			return nil
		}
		m := mode
		if !fi.IsDir() {
			m &^= 0o111
		}
		changed, err := a.setAttributes(p, fi, own, m, hasMode)
		if err != nil {
			return err
		}
		if len(changed) > 0 {
			fixed++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply attributes recursively: %w", err)
	}
	if fixed == 0 {
		return nil, nil
	}
	return []string{fmt.Sprintf("fixed attributes of %d nested entries", fixed)}, nil
}

// setAttributes converges mode and ownership of path.
func (a *Applier) setAttributes(path string, fi fs.FileInfo, own owner, mode fs.FileMode, hasMode bool) ([]string, error) {
	var actions []string

	uid, gid, ok := fileOwner(fi)
	switch {
	case own.pending:
		actions = append(actions, "set ownership")
	case ok && ((own.uid >= 0 && uid != own.uid) || (own.gid >= 0 && gid != own.gid)):
		actions = append(actions, fmt.Sprintf("ownership changed from %d:%d", uid, gid))
		if !a.DryRun {
			if err := os.Lchown(path, own.uid, own.gid); err != nil {
				return actions, fmt.Errorf("failed to change ownership: %w", err)
			}
		}
	}

	if hasMode {
		current := fi.Mode() & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
		want := unixMode(mode)
		if current != want {
			actions = append(actions, fmt.Sprintf("mode changed from %04o to %04o", current.Perm(), want.Perm()))
			if !a.DryRun {
				if err := os.Chmod(path, want); err != nil {
					return actions, fmt.Errorf("failed to change mode: %w", err)
				}
			}
		}
	}
	return actions, nil
}

func (a *Applier) applyRegular(path string, f catalog.File) ([]string, error) {
	mode, hasMode, err := parseMode(f.Mode)
	if err != nil {
		return nil, err
	}
	own, err := a.resolveOwner(f)
	if err != nil {
		return nil, err
	}

	var actions []string
	fi, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		actions = append(actions, "created file")
	case err != nil:
		return nil, err
	case !fi.Mode().IsRegular():
		return nil, fmt.Errorf("%s exists and is not a regular file", path)
	default:
		current, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read current content: %w", err)
		}
		if string(current) != f.Content {
			actions = append(actions, "content changed")
		}
	}

	if len(actions) > 0 {
		if a.DryRun {
			return actions, nil
		}
		writeMode := fs.FileMode(0o644)
		if hasMode {
			writeMode = unixMode(mode)
		}
		if err := writeAtomic(path, []byte(f.Content), writeMode); err != nil {
			return actions, err
		}
		if fi, err = os.Lstat(path); err != nil {
			return actions, err
		}
	}

	more, err := a.setAttributes(path, fi, own, mode, hasMode)
	if err != nil {
		return actions, err
	}
	return append(actions, more...), nil
}

// writeAtomic replaces path with data through a temporary file in the same
// directory.
func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write content: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), mode); err != nil {
		return fmt.Errorf("failed to set mode: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

// applyLink points path at f.Target. An existing empty directory or regular
// file is replaced; a non-empty directory is an error.
func (a *Applier) applyLink(path string, f catalog.File) ([]string, error) {
	if f.Target == "" {
		return nil, fmt.Errorf("link has no target")
	}
	target := a.linkTarget(f.Target)

	fi, err := os.Lstat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	case fi.Mode()&fs.ModeSymlink != 0:
		current, err := os.Readlink(path)
		if err != nil {
			return nil, err
		}
		if current == target {
			return nil, nil
		}
		if !a.DryRun {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove old link: %w", err)
			}
		}
	case fi.IsDir():
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		if len(entries) > 0 {
			return nil, fmt.Errorf("%s is a non-empty directory, refusing to replace it with a link", path)
		}
		if !a.DryRun {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove directory: %w", err)
			}
		}
	default:
		if !a.DryRun {
			if err := os.Remove(path); err != nil {
				return nil, fmt.Errorf("failed to remove file: %w", err)
			}
		}
	}

	actions := []string{"linked to " + f.Target}
	if a.DryRun {
		return actions, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return actions, fmt.Errorf("failed to create parent directory: %w", err)
	}
	if err := os.Symlink(target, path); err != nil {
		return actions, fmt.Errorf("failed to create link: %w", err)
	}
	return actions, nil
}

// linkTarget moves absolute link targets under the root prefix, so a link
// inside the root never points at the live host. Relative targets resolve
// against the link's own directory and are kept as declared.
func (a *Applier) linkTarget(target string) string {
	if !filepath.IsAbs(target) {
		return target
	}
	return a.hostPath(target)
}

func (a *Applier) applyAbsent(path string) ([]string, error) {
	fi, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory, refusing to remove it", path)
	}
	if !a.DryRun {
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("failed to remove: %w", err)
		}
	}
	return []string{"removed"}, nil
}
