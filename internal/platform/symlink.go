package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const sidecarSuffix = ".target"

// LinkDir points link at the directory target, replacing any previous link.
// On Unix this is a native symlink. On Windows without developer mode the
// link is recorded in a .target sidecar file instead.
func LinkDir(target, link string) error {
	if err := os.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return fmt.Errorf("creating link parent: %w", err)
	}
	if err := RemoveLink(link); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing previous link %s: %w", link, err)
	}

	err := os.Symlink(target, link)
	if err == nil || runtime.GOOS != "windows" {
		return err
	}

	if err := os.WriteFile(link+sidecarSuffix, []byte(target), 0644); err != nil {
		return fmt.Errorf("symlink fallback (sidecar) failed: %w", err)
	}
	return nil
}

// RemoveLink removes a link created by LinkDir along with its sidecar. It
// refuses to remove a real directory.
func RemoveLink(link string) error {
	os.Remove(link + sidecarSuffix) // best-effort

	info, err := os.Lstat(link)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return fmt.Errorf("%s is not a link", link)
	}
	return os.Remove(link)
}

// ReadLink returns the target of a link created by LinkDir.
func ReadLink(link string) (string, error) {
	target, err := os.Readlink(link)
	if err == nil {
		return target, nil
	}

	data, readErr := os.ReadFile(link + sidecarSuffix)
	if readErr != nil {
		return "", fmt.Errorf("readlink failed and no %s sidecar found: %w", sidecarSuffix, err)
	}
	return strings.TrimSpace(string(data)), nil
}
