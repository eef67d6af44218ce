package platform

import (
	"os"
	"runtime"
)

// ApplyMode sets permission bits taken from an archive header. The owner always
// keeps read and write access so later updates can replace the file. On Windows
// this is a no-op.
func ApplyMode(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode.Perm()|0600)
}
