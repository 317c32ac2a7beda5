package extract

import (
	"fmt"
	"os"
	"path/filepath"
)

// mergeStaged reconciles the populated staging directory with the final
// destination and removes the staging directory. With mergeSingle set, a
// lone top-level entry becomes the effective staged root, flattening one
// level of wrapping directory.
func (x *Extractor) mergeStaged(staging, dest string, mergeSingle bool) error {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return err
	}

	root := staging
	if mergeSingle && len(entries) == 1 {
		root = filepath.Join(staging, entries[0].Name())
	}

	info, err := os.Lstat(root)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		if err := x.moveStagedFile(root, dest); err != nil {
			return err
		}
		return os.RemoveAll(staging)
	}

	rootEntries, err := os.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range rootEntries {
		src := filepath.Join(root, entry.Name())
		target := filepath.Join(dest, entry.Name())

		fi, err := os.Lstat(target)
		if os.IsNotExist(err) {
			if err := os.Rename(src, target); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if !fi.IsDir() {
			if entry.IsDir() {
				return fmt.Errorf("%s: %w", target, ErrIncompatibleMerge)
			}
			x.log.Warn().Str("path", target).Msg("overwriting existing file")
			if err := os.Remove(target); err != nil {
				return err
			}
			if err := os.Rename(src, target); err != nil {
				return err
			}
			continue
		}

		if !entry.IsDir() {
			return fmt.Errorf("%s: %w", target, ErrIncompatibleMerge)
		}
		x.log.Warn().Str("path", target).Msg("merging into existing directory")
		if err := mergeDirs(src, target); err != nil {
			return err
		}
	}

	return os.RemoveAll(staging)
}

// moveStagedFile places a single staged file into the destination directory.
// An existing file there is overwritten; an existing directory is renamed
// aside with a random suffix rather than destroyed.
func (x *Extractor) moveStagedFile(staged, dest string) error {
	target := filepath.Join(dest, filepath.Base(staged))
	if fi, err := os.Lstat(target); err == nil {
		if fi.IsDir() {
			renamed := target + randomID()
			x.log.Warn().Str("path", target).Str("renamed", renamed).
				Msg("directory in the way of extracted file, renaming")
			if err := os.Rename(target, renamed); err != nil {
				return err
			}
		} else {
			x.log.Warn().Str("path", target).Msg("overwriting existing file")
			if err := os.Remove(target); err != nil {
				return err
			}
		}
	}
	return os.Rename(staged, target)
}

// mergeDirs moves the contents of src into dst, recursing where both sides
// have a directory and overwriting where both sides have a file. Destination
// entries the source does not provide are left untouched.
func mergeDirs(src, dst string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		s := filepath.Join(src, entry.Name())
		d := filepath.Join(dst, entry.Name())

		fi, err := os.Lstat(d)
		if os.IsNotExist(err) {
			if err := os.Rename(s, d); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		if entry.IsDir() {
			if !fi.IsDir() {
				return fmt.Errorf("%s: %w", d, ErrIncompatibleMerge)
			}
			if err := mergeDirs(s, d); err != nil {
				return err
			}
			continue
		}

		if fi.IsDir() {
			return fmt.Errorf("%s: %w", d, ErrIncompatibleMerge)
		}
		if err := os.Remove(d); err != nil {
			return err
		}
		if err := os.Rename(s, d); err != nil {
			return err
		}
	}

	return nil
}
