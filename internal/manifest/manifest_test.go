package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePackage(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, PackageFile), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindPackageDirWalksUp(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, `{"name": "demo"}`)
	nested := filepath.Join(root, "template", "src")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	dir, ok := FindPackageDir(nested)
	if !ok {
		t.Fatal("FindPackageDir returned ok=false")
	}
	if dir != root {
		t.Errorf("FindPackageDir = %q, want %q", dir, root)
	}
}

func TestEntryPoint(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, `{"name": "demo", "main": "lib/index.js"}`)

	got, ok := EntryPoint(root)
	if !ok {
		t.Fatal("EntryPoint returned ok=false")
	}
	want := filepath.ToSlash(filepath.Join(root, "lib", "index.js"))
	if got != want {
		t.Errorf("EntryPoint = %q, want %q", got, want)
	}
	if strings.Contains(got, `\`) {
		t.Errorf("EntryPoint %q should use forward slashes", got)
	}
}

func TestEntryPointMissingMain(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, `{"name": "demo"}`)

	if _, ok := EntryPoint(root); ok {
		t.Error("EntryPoint should fail without a main field")
	}
}

func TestReadPackageJSONInvalid(t *testing.T) {
	root := t.TempDir()
	writePackage(t, root, `{not json`)

	if _, err := ReadPackageJSON(root); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidateDescriptors(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantValid bool
		wantPath  string
	}{
		{
			name:      "valid json",
			data:      `[{"name": "Demo", "npmName": "@colin-cli/demo", "version": "1.0.0", "type": "standard", "tags": ["project"]}]`,
			wantValid: true,
		},
		{
			name:      "valid yaml",
			data:      "- name: Demo\n  npmName: demo-template\n  version: 1.0.0\n  ignore: ['**/public/**']\n",
			wantValid: true,
		},
		{
			name:      "missing npmName",
			data:      `[{"name": "Demo", "version": "1.0.0"}]`,
			wantValid: false,
			wantPath:  "/0",
		},
		{
			name:      "bad type",
			data:      `[{"name": "Demo", "npmName": "demo", "version": "1.0.0", "type": "weird"}]`,
			wantValid: false,
			wantPath:  "/0/type",
		},
		{
			name:      "not a list",
			data:      `{"name": "Demo"}`,
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateDescriptors([]byte(tt.data))
			if err != nil {
				t.Fatalf("ValidateDescriptors: %v", err)
			}
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %v, want %v (issues: %s)", result.Valid, tt.wantValid, result.Summary())
			}
			if tt.wantPath == "" {
				return
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s: %s", tt.wantPath, result.Summary())
			}
		})
	}
}
