package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/colin-cli/colin/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
	dotenv   = ".env"
)

// Registry endpoints. The mirror is the default; origin_registry selects npmjs.
const (
	MirrorRegistry = "https://registry.npmmirror.com"
	OriginRegistry = "https://registry.npmjs.org"
)

// Keys understood by Load, Get and Set.
const (
	KeyCLIHome          = "cli_home"
	KeyRegistry         = "registry"
	KeyOriginRegistry   = "origin_registry"
	KeyTemplateAPI      = "template_api"
	KeyTemplateFallback = "template_fallback"
	KeyMinNodeVersion   = "min_node_version"
	KeyStrictExit       = "strict_exit"
	KeyDebug            = "debug"
	KeyTargetPath       = "target_path"
)

// Keys lists every key accepted by Get and Set, in display order.
var Keys = []string{
	KeyCLIHome,
	KeyRegistry,
	KeyOriginRegistry,
	KeyTemplateAPI,
	KeyTemplateFallback,
	KeyMinNodeVersion,
	KeyStrictExit,
	KeyDebug,
	KeyTargetPath,
}

// IsKey reports whether key is a known configuration key.
func IsKey(key string) bool {
	return slices.Contains(Keys, key)
}

// DefaultTemplateAPI is the template descriptor service.
const DefaultTemplateAPI = "http://124.222.52.186:7001"

// DefaultMinNodeVersion is the lowest Node.js release the lifecycle accepts.
const DefaultMinNodeVersion = "12.0.0"

// Config is the process-wide configuration. It is built once at startup and
// handed to every component by reference.
type Config struct {
	Home             string // user home directory
	CacheRoot        string // e.g. ~/.colin-cli
	Registry         string // npm registry base URL
	TemplateAPI      string // template descriptor service base URL
	TemplateFallback bool   // substitute the built-in list when the service is down
	MinNodeVersion   string
	StrictExit       bool   // exit non-zero when a command fails
	Debug            bool   // verbose logging
	TargetPath       string // local template package used instead of the cache

	v *viper.Viper
}

// Dir returns the path to the CLI home directory (~/.colin-cli/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// Load reads configuration for the current user.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	if _, err := os.Stat(home); err != nil {
		return nil, fmt.Errorf("home directory %s does not exist: %w", home, err)
	}
	return LoadFrom(home)
}

// LoadFrom reads configuration rooted at the given home directory. Precedence,
// highest first: environment, config.yaml, ~/.env, defaults.
func LoadFrom(home string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyRegistry, "")
	v.SetDefault(KeyOriginRegistry, false)
	v.SetDefault(KeyTemplateAPI, DefaultTemplateAPI)
	v.SetDefault(KeyTemplateFallback, true)
	v.SetDefault(KeyMinNodeVersion, DefaultMinNodeVersion)
	v.SetDefault(KeyStrictExit, false)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyCLIHome, "")
	v.SetDefault(KeyTargetPath, "")

	if err := loadDotenv(v, filepath.Join(home, dotenv)); err != nil {
		return nil, err
	}

	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	cfgFile := filepath.Join(home, branding.HomeDir(), fileName+"."+fileType)
	v.SetConfigFile(cfgFile)
	v.SetConfigType(fileType)
	if _, err := os.Stat(cfgFile); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	}

	c := &Config{
		Home:             home,
		TemplateAPI:      strings.TrimRight(v.GetString(KeyTemplateAPI), "/"),
		TemplateFallback: v.GetBool(KeyTemplateFallback),
		MinNodeVersion:   v.GetString(KeyMinNodeVersion),
		StrictExit:       v.GetBool(KeyStrictExit),
		Debug:            v.GetBool(KeyDebug),
		TargetPath:       v.GetString(KeyTargetPath),
		v:                v,
	}

	// cli_home is relative to the user's home, matching the documented override.
	if sub := v.GetString(KeyCLIHome); sub != "" {
		c.CacheRoot = filepath.Join(home, sub)
	} else {
		c.CacheRoot = filepath.Join(home, branding.HomeDir())
	}

	c.Registry = strings.TrimRight(v.GetString(KeyRegistry), "/")
	if c.Registry == "" {
		c.Registry = MirrorRegistry
		if v.GetBool(KeyOriginRegistry) {
			c.Registry = OriginRegistry
		}
	}

	return c, nil
}

// loadDotenv folds prefixed keys from a dotenv file into v as defaults, so
// real environment variables and the config file still win.
func loadDotenv(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	env := viper.New()
	env.SetConfigFile(path)
	env.SetConfigType("env")
	if err := env.ReadInConfig(); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	prefix := strings.ToLower(branding.EnvPrefix()) + "_"
	for _, key := range env.AllKeys() {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			v.SetDefault(name, env.GetString(key))
		}
	}
	return nil
}

// TemplatesDir returns the directory holding the template package tree.
func (c *Config) TemplatesDir() string {
	return filepath.Join(c.CacheRoot, branding.TemplatesDir())
}

// StoreDir returns the directory holding unpacked cache entries.
func (c *Config) StoreDir() string {
	return filepath.Join(c.TemplatesDir(), "node_modules")
}

// FilePath returns the full path to the config file.
func (c *Config) FilePath() string {
	return filepath.Join(c.Home, branding.HomeDir(), fileName+"."+fileType)
}

// Get returns a config value by key. Returns empty string if not set.
func (c *Config) Get(key string) string {
	return c.v.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func (c *Config) Set(key, value string) error {
	dir := filepath.Dir(c.FilePath())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	// Persist only what the file already holds plus the new key, so env
	// overrides and defaults are not frozen into it.
	file := viper.New()
	file.SetConfigFile(c.FilePath())
	file.SetConfigType(fileType)
	if _, err := os.Stat(c.FilePath()); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	file.Set(key, value)
	if err := file.WriteConfigAs(c.FilePath()); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	c.v.Set(key, value)
	return nil
}
