package pkgcache

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha512"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
)

// buildTarball packs files under a "package/" prefix the way npm pack does.
func buildTarball(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		content := files[name]
		hdr := &tar.Header{
			Name:     "package/" + name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}
		if err := tw.WriteHeader(hdr); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	tw.Close()
	gw.Close()
	return buf.Bytes()
}

func sri(data []byte) string {
	sum := sha512.Sum512(data)
	return "sha512-" + base64.StdEncoding.EncodeToString(sum[:])
}

// fakeRegistry serves a packument and tarballs for one package.
type fakeRegistry struct {
	name      string
	latest    string
	tarballs  map[string][]byte
	integrity map[string]string // advertised digest overrides
	server    *httptest.Server

	mu   sync.Mutex
	hits map[string]int
}

func newFakeRegistry(t *testing.T, name, latest string, tarballs map[string][]byte) *fakeRegistry {
	t.Helper()
	r := &fakeRegistry{
		name:      name,
		latest:    latest,
		tarballs:  tarballs,
		integrity: map[string]string{},
		hits:      map[string]int{},
	}
	r.server = httptest.NewServer(http.HandlerFunc(r.serve))
	t.Cleanup(r.server.Close)
	return r
}

func (r *fakeRegistry) serve(w http.ResponseWriter, req *http.Request) {
	r.mu.Lock()
	r.hits[req.URL.Path]++
	r.mu.Unlock()

	if req.URL.Path == "/"+url.PathEscape(r.name) || req.URL.Path == "/"+r.name {
		versions := map[string]any{}
		for v, data := range r.tarballs {
			digest := sri(data)
			if override, ok := r.integrity[v]; ok {
				digest = override
			}
			versions[v] = map[string]any{
				"name":    r.name,
				"version": v,
				"dist": map[string]string{
					"tarball":   r.server.URL + "/-/" + v + ".tgz",
					"integrity": digest,
				},
			}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"name":      r.name,
			"dist-tags": map[string]string{"latest": r.latest},
			"versions":  versions,
		})
		return
	}
	for v, data := range r.tarballs {
		if req.URL.Path == "/-/"+v+".tgz" {
			w.Write(data)
			return
		}
	}
	http.NotFound(w, req)
}

func (r *fakeRegistry) hitCount(path string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hits[path]
}

// countingInstaller records installs and creates the cache directory.
type countingInstaller struct {
	calls []Request
}

func (c *countingInstaller) Install(_ context.Context, req Request) error {
	c.calls = append(c.calls, req)
	dir := CachePath(req.StoreDir, req.Name, req.Version)
	if err := os.MkdirAll(filepath.Join(dir, TemplateSubdir), 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"name":"`+req.Name+`","main":"index.js"}`), 0644)
}

type staticResolver struct {
	latest string
	calls  int
}

func (s *staticResolver) ResolveLatest(context.Context, string) (string, error) {
	s.calls++
	return s.latest, nil
}

// recordingDeps records dependency installs. When populate is set it creates
// node_modules/<dep> for each call, the way npm would.
type recordingDeps struct {
	dirs     []string
	commands []string
	populate string
	err      error
}

func (r *recordingDeps) Exec(_ context.Context, dir, command, _ string) error {
	r.dirs = append(r.dirs, dir)
	r.commands = append(r.commands, command)
	if r.err != nil {
		return r.err
	}
	if r.populate != "" {
		return os.MkdirAll(filepath.Join(dir, "node_modules", r.populate), 0755)
	}
	return nil
}
