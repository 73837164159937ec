package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/burst-go/burst/assets"
	"github.com/burst-go/burst/internal/domain"
	"github.com/burst-go/burst/internal/pkg/filesystem"
	"github.com/burst-go/burst/internal/ports"
)

// Environment variables imported over the file values.
const (
	EnvConfigPath  = "BURST_CONFIG"
	EnvTermWidth   = "BURST_TERM_WIDTH"
	EnvHistorySize = "BURST_HISTORY_SIZE"
	EnvPager       = "BURST_PAGER"
	EnvPayloadsDir = "BURST_PAYLOADS_DIR"
)

// FileLoader loads YAML configuration from ~/.burst/config.yaml (overridable via BURST_CONFIG).
type FileLoader struct {
	overridePath string
	firstRun     bool
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.Path()
	if _, err := os.Stat(filepath.Dir(path)); errors.Is(err, fs.ErrNotExist) {
		l.firstRun = true
	}
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return importEnv(cfg)
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}

	return importEnv(hydrateDefaults(cfg))
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.ConfigDir(), domain.ConfigFileName)
}

// Dir is the directory holding the config file, history and sessions.
func (l *FileLoader) Dir() string {
	return filepath.Dir(l.Path())
}

// FirstRun reports whether the last Load had to create the config directory.
func (l *FileLoader) FirstRun() bool {
	return l.firstRun
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, domain.DirectoryPermissions)
}

func writeDefault(path string) error {
	return os.WriteFile(path, assets.DefaultConfigYAML, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	var cfg domain.Config
	if err := yaml.Unmarshal(assets.DefaultConfigYAML, &cfg); err != nil {
		// Fallback to minimal config if embedded YAML is corrupted
		return domain.Config{
			ConfigFormatVersion: "1",
			TermWidth:           "auto",
			HistorySize:         domain.DefaultHistorySize,
			DefaultSession:      domain.DefaultSessionName,
		}
	}
	return cfg
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.DefaultSession == "" {
		cfg.DefaultSession = domain.DefaultSessionName
	}
	if cfg.PayloadsDir != "" {
		cfg.PayloadsDir = filesystem.ExpandPath(cfg.PayloadsDir)
	}
	return cfg
}

// importEnv applies BURST_* overrides; the environment wins over the file.
func importEnv(cfg domain.Config) (domain.Config, error) {
	if v, ok := os.LookupEnv(EnvTermWidth); ok {
		cfg.TermWidth = v
	}
	if v, ok := os.LookupEnv(EnvHistorySize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return domain.Config{}, fmt.Errorf("%s: %w", EnvHistorySize, err)
		}
		cfg.HistorySize = n
	}
	if v := os.Getenv(EnvPager); v != "" {
		cfg.Pager = v
	}
	if v := os.Getenv(EnvPayloadsDir); v != "" {
		cfg.PayloadsDir = filesystem.ExpandPath(v)
	}
	return cfg, nil
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
