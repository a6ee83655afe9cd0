package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// StateDir holds the cache and optional config inside the scanned root.
	StateDir = ".symdoc"

	EnvRoot   = "WORKSPACE"
	EnvOutput = "SYMDOC_OUTPUT"
)

// Config holds all configuration for symdoc.
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Output  OutputConfig  `yaml:"output"`
	Cache   CacheConfig   `yaml:"cache"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig controls traversal and reading.
type ScanConfig struct {
	IgnoreDirs  []string `yaml:"ignore_dirs"` // matched against every path component
	Excludes    []string `yaml:"excludes"`    // doublestar globs, relative to root
	Gitignore   bool     `yaml:"gitignore"`
	MaxFileSize int64    `yaml:"max_file_size"` // bytes, 0 = unlimited
	Workers     int      `yaml:"workers"`       // 0 = one per CPU
}

// OutputConfig controls the generated document.
type OutputConfig struct {
	Path        string `yaml:"path"`   // relative to root unless absolute
	Format      string `yaml:"format"` // "markdown" or "json"
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// CacheConfig controls the per-file symbol cache.
type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			IgnoreDirs:  []string{"node_modules", ".git", ".venv", "dist", "build", "out", "target", "venv", ".idea", ".vscode", StateDir},
			Excludes:    nil,
			Gitignore:   false,
			MaxFileSize: 2 << 20,
			Workers:     0,
		},
		Output: OutputConfig{
			Path:        filepath.Join("docs", "API.md"),
			Format:      "markdown",
			Title:       "API Reference",
			Description: "Auto-generated documentation of public APIs, functions, and components.",
		},
		Cache: CacheConfig{
			Enabled: true,
		},
		Watch: WatchConfig{
			DebounceMS: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for symdoc.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "symdoc.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, StateDir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv applies environment overrides.
func (c *Config) ApplyEnv() {
	if out := os.Getenv(EnvOutput); out != "" {
		c.Output.Path = out
	}
}

// OutputPath resolves the output document path against root.
func (c *Config) OutputPath(root string) string {
	if filepath.IsAbs(c.Output.Path) {
		return c.Output.Path
	}
	return filepath.Join(root, c.Output.Path)
}

// ResolveRoot picks the directory to scan: the explicit flag value, then
// $WORKSPACE, then the working directory.
func ResolveRoot(flagValue string) (string, error) {
	root := flagValue
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		var err error
		root, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	return filepath.Abs(root)
}

// CacheDBPath returns the path to the symbol cache database.
func CacheDBPath(dir string) string {
	return filepath.Join(dir, StateDir, "cache.db")
}

// EnsureStateDir ensures the .symdoc directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, StateDir), 0755)
}
