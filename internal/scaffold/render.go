package scaffold

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"text/template"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/colin-cli/colin/internal/clierr"
	"github.com/colin-cli/colin/internal/logging"
)

// DefaultIgnore is always excluded from rendering.
var DefaultIgnore = []string{"**/node_modules/**", "**/.git/**"}

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8000

// Render renders every regular file under root in place, skipping paths that
// match any ignore glob or DefaultIgnore, and dot-paths. Files render
// concurrently; the first failure cancels the rest and is returned as a Render
// error naming the file.
func Render(ctx context.Context, root string, data map[string]any, ignore []string) error {
	patterns, err := ignorePatterns(ignore)
	if err != nil {
		return err
	}
	files, err := collectFiles(root, patterns)
	if err != nil {
		return clierr.Wrapf(err, clierr.Render, "listing files under %s", root)
	}
	return renderAll(ctx, root, files, data)
}

// RenderFiles is Render restricted to files, slash-separated paths relative to
// root such as those returned by CopyTree. Files already in root that are not
// listed are never touched.
func RenderFiles(ctx context.Context, root string, files []string, data map[string]any, ignore []string) error {
	patterns, err := ignorePatterns(ignore)
	if err != nil {
		return err
	}
	var selected []string
	for _, rel := range files {
		if !isDotPath(rel) && !matchesAny(patterns, rel) {
			selected = append(selected, rel)
		}
	}
	return renderAll(ctx, root, selected, data)
}

func ignorePatterns(ignore []string) ([]string, error) {
	patterns := append(append([]string{}, DefaultIgnore...), ignore...)
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, clierr.Newf(clierr.Config, "invalid ignore pattern %q", p)
		}
	}
	return patterns, nil
}

func renderAll(ctx context.Context, root string, files []string, data map[string]any) error {
	logger := logging.GetLogger("scaffold")
	logger.Debug().Str("root", root).Int("files", len(files)).Msg("rendering template")

	funcs := dataFuncs(data)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := renderFile(filepath.Join(root, filepath.FromSlash(rel)), rel, data, funcs); err != nil {
				return clierr.Wrapf(err, clierr.Render, "rendering %s", rel)
			}
			return nil
		})
	}
	return g.Wait()
}

// collectFiles returns slash-separated paths of the files to render.
func collectFiles(root string, patterns []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".") || matchesAny(patterns, rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || isDotPath(rel) || matchesAny(patterns, rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

// isDotPath reports whether any element of the slash-separated rel starts
// with a dot. Such files are copied but never rendered.
func isDotPath(rel string) bool {
	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// dataFuncs exposes each key as a zero-argument function, so templates may
// write {{name}} as well as {{.name}}.
func dataFuncs(data map[string]any) template.FuncMap {
	funcs := template.FuncMap{}
	for k, v := range data {
		if !isIdentifier(k) {
			continue
		}
		funcs[k] = func() any { return v }
	}
	return funcs
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}

func renderFile(path, name string, data map[string]any, funcs template.FuncMap) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isBinary(src) || !bytes.Contains(src, []byte("{{")) {
		return nil
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(string(src))
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

func isBinary(b []byte) bool {
	if len(b) > binarySniffLen {
		b = b[:binarySniffLen]
	}
	return bytes.IndexByte(b, 0) >= 0
}
