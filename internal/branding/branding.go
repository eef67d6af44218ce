// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	NpmPackage   string `yaml:"npm_package"`
	TemplatesDir string `yaml:"templates_dir"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:      "colin",
			DisplayName:  "Colin CLI",
			Description:  "Scaffold projects and components from registry templates",
			HomeDir:      ".colin-cli",
			EnvPrefix:    "COLIN",
			NpmPackage:   "@colin-cli/core",
			TemplatesDir: "templates",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "colin").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".colin-cli").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "COLIN").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// NpmPackage returns the registry name the CLI itself is published under.
// The self-update notice compares against it.
func NpmPackage() string { load(); return defaults.NpmPackage }

// TemplatesDir returns the cache subdirectory holding template packages.
func TemplatesDir() string { load(); return defaults.TemplatesDir }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("REGISTRY") → "COLIN_REGISTRY".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
