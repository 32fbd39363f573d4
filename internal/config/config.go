package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/pathwatch/internal/gitrun"
)

// DefaultFile is the config file looked for when no --config flag is given.
const DefaultFile = ".pathwatch.yaml"

// Config is the effective pathwatch configuration, built once at process
// start.
type Config struct {
	Remote        string `yaml:"remote"`
	FetchStrategy string `yaml:"fetchStrategy"`
	GitPath       string `yaml:"gitPath"`
	MarkSafeDir   bool   `yaml:"markSafeDir"`
	LogLevel      string `yaml:"logLevel"`
	LogFormat     string `yaml:"logFormat"`
}

// fileConfig mirrors Config for YAML decoding. MarkSafeDir is a pointer so
// an absent key is distinguishable from an explicit false.
type fileConfig struct {
	Remote        string `yaml:"remote"`
	FetchStrategy string `yaml:"fetchStrategy"`
	GitPath       string `yaml:"gitPath"`
	MarkSafeDir   *bool  `yaml:"markSafeDir"`
	LogLevel      string `yaml:"logLevel"`
	LogFormat     string `yaml:"logFormat"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Remote:        "origin",
		FetchStrategy: gitrun.StrategyDeepen,
		GitPath:       "git",
		MarkSafeDir:   true,
		LogLevel:      "info",
		LogFormat:     "text",
	}
}

// Lookup resolves one environment key.
type Lookup func(key string) string

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides, then validates the result. The overrides map comes from CLI
// flags; only set values should be present. An empty filePath means
// DefaultFile, and a missing default file is not an error.
func Load(lookup Lookup, filePath string, overrides map[string]string) (Config, error) {
	cfg := Default()

	explicit := filePath != ""
	if !explicit {
		filePath = DefaultFile
	}
	fileCfg, err := loadFile(filePath, explicit)
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg, lookup)
	mergeOverrides(&cfg, overrides)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, explicit bool) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return fileConfig{}, nil
		}
		return fileConfig{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fileConfig{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return fc, nil
}

func mergeFile(dst *Config, src fileConfig) {
	if src.Remote != "" {
		dst.Remote = src.Remote
	}
	if src.FetchStrategy != "" {
		dst.FetchStrategy = src.FetchStrategy
	}
	if src.GitPath != "" {
		dst.GitPath = src.GitPath
	}
	if src.MarkSafeDir != nil {
		dst.MarkSafeDir = *src.MarkSafeDir
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	if src.LogFormat != "" {
		dst.LogFormat = src.LogFormat
	}
}

func mergeEnv(cfg *Config, lookup Lookup) {
	if v := lookup("PATHWATCH_REMOTE"); v != "" {
		cfg.Remote = v
	}
	if v := lookup("PATHWATCH_FETCH_STRATEGY"); v != "" {
		cfg.FetchStrategy = v
	}
	if v := lookup("PATHWATCH_GIT_PATH"); v != "" {
		cfg.GitPath = v
	}
	if v := lookup("PATHWATCH_MARK_SAFE_DIR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.MarkSafeDir = b
		}
	}
	if v := lookup("PATHWATCH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := lookup("PATHWATCH_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if v := overrides["remote"]; v != "" {
		cfg.Remote = v
	}
	if v := overrides["fetchStrategy"]; v != "" {
		cfg.FetchStrategy = v
	}
	if v := overrides["gitPath"]; v != "" {
		cfg.GitPath = v
	}
	if v := overrides["logLevel"]; v != "" {
		cfg.LogLevel = v
	}
	if v := overrides["logFormat"]; v != "" {
		cfg.LogFormat = v
	}
}

// Validate rejects values the rest of the program does not handle.
func (c Config) Validate() error {
	if c.Remote == "" {
		return fmt.Errorf("remote must not be empty")
	}
	if c.GitPath == "" {
		return fmt.Errorf("gitPath must not be empty")
	}
	switch c.FetchStrategy {
	case gitrun.StrategyDeepen, gitrun.StrategyTargeted:
	default:
		return fmt.Errorf("invalid fetchStrategy %q (want %q or %q)",
			c.FetchStrategy, gitrun.StrategyDeepen, gitrun.StrategyTargeted)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logFormat %q (want text or json)", c.LogFormat)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logLevel %q (want debug, info, warn, or error)", c.LogLevel)
	}
	return nil
}
