package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "HRDESK_"

type Config struct {
	ServerURL      string        `yaml:"server_url"`
	DBPath         string        `yaml:"db_path"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
	Log            LogConfig     `yaml:"log"`
	Web            WebConfig     `yaml:"web"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type WebConfig struct {
	Addr string `yaml:"addr"`
}

func Default() Config {
	return Config{
		ServerURL:      "http://localhost:3000",
		RequestTimeout: 15 * time.Second,
		SessionTTL:     8 * time.Hour,
		Log:            LogConfig{Level: "info", Format: "text"},
		Web:            WebConfig{Addr: "127.0.0.1:8080"},
	}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "hrdesk", "config.yaml"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// LoadDotEnv reads KEY=value pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with HRDESK_* variables read through getenv.
func ApplyEnv(cfg Config, getenv func(string) string) (Config, error) {
	strs := map[string]*string{
		"SERVER_URL": &cfg.ServerURL,
		"DB_PATH":    &cfg.DBPath,
		"LOG_LEVEL":  &cfg.Log.Level,
		"LOG_FORMAT": &cfg.Log.Format,
		"LOG_FILE":   &cfg.Log.File,
		"WEB_ADDR":   &cfg.Web.Addr,
	}
	for key, target := range strs {
		if value := strings.TrimSpace(getenv(envPrefix + key)); value != "" {
			*target = value
		}
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"SESSION_TTL":     &cfg.SessionTTL,
	}
	for key, target := range durations {
		value := strings.TrimSpace(getenv(envPrefix + key))
		if value == "" {
			continue
		}
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s%s: %w", envPrefix, key, err)
		}
		*target = parsed
	}
	return cfg, nil
}

// ResolveDBPath places the database next to the config file unless set.
func (c *Config) ResolveDBPath(configPath string) {
	if c.DBPath == "" {
		c.DBPath = filepath.Join(filepath.Dir(configPath), "hrdesk.db")
	}
}

func (c Config) Validate() error {
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server_url must start with http:// or https://, got %q", c.ServerURL)
	}
	if c.RequestTimeout < 0 || c.SessionTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
