package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLinkDir(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "_demo@1.0.0@demo")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "package.json"), []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}

	link := filepath.Join(tmp, "node_modules", "demo")
	if err := LinkDir(target, link); err != nil {
		t.Fatalf("LinkDir: %v", err)
	}

	got, err := ReadLink(link)
	if err != nil {
		t.Fatalf("ReadLink: %v", err)
	}
	if got != target {
		t.Errorf("ReadLink = %q, want %q", got, target)
	}

	if runtime.GOOS != "windows" {
		if _, err := os.Stat(filepath.Join(link, "package.json")); err != nil {
			t.Errorf("package.json not reachable through link: %v", err)
		}
	}
}

func TestLinkDirReplacesPreviousLink(t *testing.T) {
	tmp := t.TempDir()
	v1 := filepath.Join(tmp, "v1")
	v2 := filepath.Join(tmp, "v2")
	for _, d := range []string{v1, v2} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	link := filepath.Join(tmp, "current")
	if err := LinkDir(v1, link); err != nil {
		t.Fatal(err)
	}
	if err := LinkDir(v2, link); err != nil {
		t.Fatalf("second LinkDir: %v", err)
	}

	got, err := ReadLink(link)
	if err != nil {
		t.Fatal(err)
	}
	if got != v2 {
		t.Errorf("ReadLink = %q, want %q", got, v2)
	}
}

func TestRemoveLinkRefusesDirectory(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "real")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	if err := RemoveLink(dir); err == nil {
		t.Error("RemoveLink should refuse a real directory")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Error("directory should survive RemoveLink")
	}
}
