package scaffold

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// excludedNames are never copied out of a template.
var excludedNames = map[string]bool{
	"node_modules": true,
	".git":         true,
	".DS_Store":    true,
}

// CopyTree recursively copies src into dst, merging with what dst already
// holds. Symlinks and special files are skipped. It returns the slash-separated
// paths, relative to dst, of the files it wrote.
func CopyTree(src, dst string) ([]string, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}
	if !srcInfo.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", src)
	}
	var copied []string
	if err := copyDir(src, dst, "", &copied); err != nil {
		return nil, fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return copied, nil
}

func copyDir(src, dst, rel string, copied *[]string) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if excludedNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		relPath := path.Join(rel, entry.Name())

		if entry.IsDir() {
			if err := copyDir(srcPath, dstPath, relPath, copied); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
			*copied = append(*copied, relPath)
		}
	}
	return nil
}

// copyFile copies a single file, preserving permissions.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// IsDirEmpty reports whether dir holds nothing but dotfiles and node_modules.
// A missing directory counts as empty.
func IsDirEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") || e.Name() == "node_modules" {
			continue
		}
		return false, nil
	}
	return true, nil
}

// EmptyDir removes everything inside dir but keeps dir itself.
func EmptyDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(dir, e.Name())); err != nil {
			return fmt.Errorf("removing %s: %w", e.Name(), err)
		}
	}
	return nil
}
