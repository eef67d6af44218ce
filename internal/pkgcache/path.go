package pkgcache

import (
	"path/filepath"
	"strings"
)

// CachePath returns the directory holding name@version inside storeDir.
func CachePath(storeDir, name, version string) string {
	flat := strings.ReplaceAll(name, "/", "_")
	return filepath.Join(storeDir, "_"+flat+"@"+version+"@"+filepath.FromSlash(name))
}

// LinkPath returns where name is linked inside a dependency tree rooted at
// targetPath.
func LinkPath(targetPath, name string) string {
	return filepath.Join(targetPath, "node_modules", filepath.FromSlash(name))
}
