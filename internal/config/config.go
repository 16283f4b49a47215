package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/dshills/censor/internal/redact"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config represents the censor configuration.
type Config struct {
	Secrets      []string    `json:"secrets"`
	Redact       string      `json:"redact"`
	ReduceArrays string      `json:"reduceArrays"`
	Format       string      `json:"format"`
	InputFormat  string      `json:"inputFormat"`
	MaxDepth     int         `json:"maxDepth"`
	Workers      int         `json:"workers"`
	Cache        CacheConfig `json:"cache"`
	Log          LogConfig   `json:"log"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLSeconds int    `json:"ttlSeconds"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `json:"level"`
	File  string `json:"file,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Secrets:      append([]string(nil), redact.DefaultSecrets...),
		Redact:       redact.DefaultMarker,
		ReduceArrays: "false",
		Format:       "json",
		InputFormat:  "auto",
		MaxDepth:     256,
		Workers:      runtime.NumCPU(),
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: 86400,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for censor.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "censor"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "censor"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "censor"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "censor"), nil
	default:
		return filepath.Join(home, ".config", "censor"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	// An explicit empty list in the file disables key matching.
	if src.Secrets != nil {
		dst.Secrets = src.Secrets
	}
	if src.Redact != "" {
		dst.Redact = src.Redact
	}
	if src.ReduceArrays != "" {
		dst.ReduceArrays = src.ReduceArrays
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.InputFormat != "" {
		dst.InputFormat = src.InputFormat
	}
	if src.MaxDepth > 0 {
		dst.MaxDepth = src.MaxDepth
	}
	if src.Workers > 0 {
		dst.Workers = src.Workers
	}
	if src.Cache.Dir != "" {
		dst.Cache.Dir = src.Cache.Dir
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
	dst.Cache.Enabled = src.Cache.Enabled || dst.Cache.Enabled
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.File != "" {
		dst.Log.File = src.Log.File
	}
}

// envKeys maps environment variables to SetField keys.
var envKeys = []struct {
	env string
	key string
}{
	{"CENSOR_SECRETS", "secrets"},
	{"CENSOR_REDACT", "redact"},
	{"CENSOR_REDUCE_ARRAYS", "reduceArrays"},
	{"CENSOR_FORMAT", "format"},
	{"CENSOR_INPUT_FORMAT", "inputFormat"},
	{"CENSOR_MAX_DEPTH", "maxDepth"},
	{"CENSOR_WORKERS", "workers"},
	{"CENSOR_LOG_LEVEL", "logLevel"},
	{"CENSOR_LOG_FILE", "logFile"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for k, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, k, v); err != nil {
			return err
		}
	}
	return nil
}

// SplitSecrets splits a comma-separated secrets list. A comma inside a
// /pattern/ does not split it, so "/a{1,3}/i,token" yields two entries. An
// entry that starts with a slash but never closes is split on every comma.
func SplitSecrets(s string) []string {
	result := []string{}
	add := func(p string) {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}

	var cur strings.Builder
	for _, r := range s {
		if r == ',' && !openPattern(cur.String()) {
			add(cur.String())
			cur.Reset()
			continue
		}
		cur.WriteRune(r)
	}

	last := strings.TrimSpace(cur.String())
	if openPattern(last) {
		for _, p := range strings.Split(last, ",") {
			add(p)
		}
		return result
	}
	add(last)
	return result
}

// openPattern reports whether entry starts a /pattern/ that is not yet
// closed by a slash followed only by flag letters.
func openPattern(entry string) bool {
	entry = strings.TrimSpace(entry)
	if !strings.HasPrefix(entry, "/") {
		return false
	}
	end := strings.LastIndexByte(entry, '/')
	if end == 0 {
		return true
	}
	for _, r := range entry[end+1:] {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return true
		}
	}
	return false
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "secrets":
		cfg.Secrets = SplitSecrets(value)
	case "redact":
		cfg.Redact = value
	case "reduceArrays":
		if _, err := redact.ParseReduction(value); err != nil {
			return fmt.Errorf("reduceArrays: %w", err)
		}
		cfg.ReduceArrays = value
	case "format":
		cfg.Format = value
	case "inputFormat":
		cfg.InputFormat = value
	case "maxDepth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDepth must be an integer: %w", err)
		}
		cfg.MaxDepth = n
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("workers must be an integer: %w", err)
		}
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		cfg.Workers = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlSeconds":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlSeconds must be an integer: %w", err)
		}
		cfg.Cache.TTLSeconds = n
	case "logLevel":
		cfg.Log.Level = value
	case "logFile":
		cfg.Log.File = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// GetField returns a single config field by key name, formatted the way
// SetField accepts it.
func GetField(cfg Config, key string) (string, error) {
	switch key {
	case "secrets":
		return strings.Join(cfg.Secrets, ","), nil
	case "redact":
		return cfg.Redact, nil
	case "reduceArrays":
		return cfg.ReduceArrays, nil
	case "format":
		return cfg.Format, nil
	case "inputFormat":
		return cfg.InputFormat, nil
	case "maxDepth":
		return strconv.Itoa(cfg.MaxDepth), nil
	case "workers":
		return strconv.Itoa(cfg.Workers), nil
	case "cache.enabled":
		return strconv.FormatBool(cfg.Cache.Enabled), nil
	case "cache.dir":
		return cfg.Cache.Dir, nil
	case "cache.ttlSeconds":
		return strconv.Itoa(cfg.Cache.TTLSeconds), nil
	case "logLevel":
		return cfg.Log.Level, nil
	case "logFile":
		return cfg.Log.File, nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}
