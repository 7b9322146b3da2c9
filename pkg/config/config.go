package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendSupabase = "supabase"
	BackendDuckDB   = "duckdb"
)

var (
	ErrStoreNotConfigured = errors.New("store is not configured: set SUPABASE_URL and SUPABASE_ANON_KEY")
	ErrUnknownBackend     = errors.New("unknown store backend")
)

type StoreConfig struct {
	Backend     string `yaml:"backend"`
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	Table       string `yaml:"table"`
	DuckDBPath  string `yaml:"duckdb_path"`
}

type RecommendConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`
}

type Config struct {
	Store     StoreConfig     `yaml:"store"`
	Recommend RecommendConfig `yaml:"recommend"`
	// Password gates the app. Plain text or a bcrypt hash; empty disables
	// the gate.
	Password string    `yaml:"password"`
	Log      LogConfig `yaml:"log"`
}

// Dir is where anitrack keeps its local files.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".anitrack"
	}
	return filepath.Join(home, ".anitrack")
}

func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

func Default() *Config {
	dir := Dir()
	return &Config{
		Store: StoreConfig{
			Backend:    BackendSupabase,
			Table:      "animes",
			DuckDBPath: filepath.Join(dir, "anitrack.db"),
		},
		Recommend: RecommendConfig{
			Model: "gemini-2.5-flash",
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "anitrack.log"),
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path, a
// .env file in the working directory and finally the environment. A missing
// file at the default path is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	setString(&c.Store.Backend, "ANITRACK_STORE")
	setString(&c.Store.SupabaseURL, "SUPABASE_URL")
	setString(&c.Store.SupabaseKey, "SUPABASE_ANON_KEY")
	setString(&c.Store.Table, "ANITRACK_TABLE")
	setString(&c.Store.DuckDBPath, "ANITRACK_DB")

	setString(&c.Recommend.APIKey, "GEMINI_API_KEY")
	setString(&c.Recommend.APIKey, "API_KEY")
	setString(&c.Recommend.Model, "ANITRACK_MODEL")

	setString(&c.Password, "APP_PASSWORD")

	setString(&c.Log.Level, "ANITRACK_LOG_LEVEL")
	setString(&c.Log.File, "ANITRACK_LOG_FILE")

	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Validate reports configuration errors that must stop the app before it
// touches the store.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendSupabase, "":
		if strings.TrimSpace(c.Store.SupabaseURL) == "" || strings.TrimSpace(c.Store.SupabaseKey) == "" {
			return ErrStoreNotConfigured
		}
	case BackendDuckDB:
		if strings.TrimSpace(c.Store.DuckDBPath) == "" {
			return fmt.Errorf("%w: duckdb backend needs a database path (ANITRACK_DB)", ErrStoreNotConfigured)
		}
	default:
		return fmt.Errorf("%w %q (want %s or %s)", ErrUnknownBackend, c.Store.Backend, BackendSupabase, BackendDuckDB)
	}
	return nil
}
