package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestApplyMode(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "bin.js")
	if err := os.WriteFile(path, []byte("#!/usr/bin/env node"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ApplyMode(path, 0755); err != nil {
		t.Fatalf("ApplyMode: %v", err)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if perm := info.Mode().Perm(); perm != 0755 {
			t.Errorf("permissions = %o, want %o", perm, 0755)
		}
	}
}

func TestApplyModeKeepsOwnerWrite(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not applicable on Windows")
	}
	tmp := t.TempDir()
	path := filepath.Join(tmp, "readonly.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := ApplyMode(path, 0444); err != nil {
		t.Fatalf("ApplyMode: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0644 {
		t.Errorf("permissions = %o, want %o", perm, 0644)
	}
}
