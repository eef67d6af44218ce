package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("COLIN_CLI_HOME", "")
	t.Setenv("COLIN_REGISTRY", "")

	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if want := filepath.Join(home, ".colin-cli"); cfg.CacheRoot != want {
		t.Errorf("CacheRoot = %q, want %q", cfg.CacheRoot, want)
	}
	if cfg.Registry != MirrorRegistry {
		t.Errorf("Registry = %q, want %q", cfg.Registry, MirrorRegistry)
	}
	if cfg.TemplateAPI != DefaultTemplateAPI {
		t.Errorf("TemplateAPI = %q, want %q", cfg.TemplateAPI, DefaultTemplateAPI)
	}
	if !cfg.TemplateFallback {
		t.Error("TemplateFallback should default to true")
	}
	if cfg.StrictExit {
		t.Error("StrictExit should default to false")
	}
	if want := filepath.Join(home, ".colin-cli", "templates", "node_modules"); cfg.StoreDir() != want {
		t.Errorf("StoreDir() = %q, want %q", cfg.StoreDir(), want)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	home := t.TempDir()
	t.Setenv("COLIN_CLI_HOME", ".scaffold-cache")
	t.Setenv("COLIN_REGISTRY", "http://localhost:4873/")
	t.Setenv("COLIN_STRICT_EXIT", "true")

	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if want := filepath.Join(home, ".scaffold-cache"); cfg.CacheRoot != want {
		t.Errorf("CacheRoot = %q, want %q", cfg.CacheRoot, want)
	}
	if cfg.Registry != "http://localhost:4873" {
		t.Errorf("Registry = %q, want trailing slash trimmed", cfg.Registry)
	}
	if !cfg.StrictExit {
		t.Error("StrictExit should be true from env")
	}
}

func TestLoadFromOriginRegistry(t *testing.T) {
	home := t.TempDir()
	t.Setenv("COLIN_REGISTRY", "")
	t.Setenv("COLIN_ORIGIN_REGISTRY", "true")

	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Registry != OriginRegistry {
		t.Errorf("Registry = %q, want %q", cfg.Registry, OriginRegistry)
	}
}

func TestLoadFromDotenv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("COLIN_CLI_HOME", "")
	t.Setenv("COLIN_TEMPLATE_API", "")
	if err := os.WriteFile(filepath.Join(home, ".env"), []byte("COLIN_TEMPLATE_API=http://templates.local\nOTHER=1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.TemplateAPI != "http://templates.local" {
		t.Errorf("TemplateAPI = %q, want value from .env", cfg.TemplateAPI)
	}
}

func TestSetAndGet(t *testing.T) {
	home := t.TempDir()
	t.Setenv("COLIN_TEMPLATE_API", "")

	cfg, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if err := cfg.Set("template_api", "http://example.test"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := cfg.Get("template_api"); got != "http://example.test" {
		t.Errorf("Get = %q, want %q", got, "http://example.test")
	}
	if _, err := os.Stat(cfg.FilePath()); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	reloaded, err := LoadFrom(home)
	if err != nil {
		t.Fatalf("LoadFrom after Set: %v", err)
	}
	if reloaded.TemplateAPI != "http://example.test" {
		t.Errorf("reloaded TemplateAPI = %q, want persisted value", reloaded.TemplateAPI)
	}
}

func TestIsKey(t *testing.T) {
	for _, key := range Keys {
		if !IsKey(key) {
			t.Errorf("IsKey(%q) = false, want true", key)
		}
	}
	if IsKey("colour") {
		t.Error("IsKey(colour) = true, want false")
	}
}
