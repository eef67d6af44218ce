package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackageFile is the manifest file name searched for by FindPackageDir.
const PackageFile = "package.json"

// PackageJSON holds the package.json fields the CLI reads.
type PackageJSON struct {
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Main         string            `json:"main"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// FindPackageDir walks from start up to the filesystem root and returns the
// first directory containing a package.json. ok is false when none is found.
func FindPackageDir(start string) (dir string, ok bool) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false
	}
	for {
		info, err := os.Stat(filepath.Join(dir, PackageFile))
		if err == nil && !info.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// ReadPackageJSON parses the package.json in dir.
func ReadPackageJSON(dir string) (*PackageJSON, error) {
	data, err := readFile(filepath.Join(dir, PackageFile))
	if err != nil {
		return nil, err
	}
	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing %s in %s: %w", PackageFile, dir, err)
	}
	return &pkg, nil
}

// EntryPoint returns the absolute, forward-slash path of the "main" file of
// the package enclosing start. ok is false when there is no manifest or it
// declares no entry point.
func EntryPoint(start string) (string, bool) {
	dir, ok := FindPackageDir(start)
	if !ok {
		return "", false
	}
	pkg, err := ReadPackageJSON(dir)
	if err != nil || pkg.Main == "" {
		return "", false
	}
	return filepath.ToSlash(filepath.Join(dir, pkg.Main)), true
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
