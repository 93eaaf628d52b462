package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/losangeles1156/lutagu-mvp-sub001/router"
)

// EnvConfigPath names the environment variable holding an explicit config path.
const EnvConfigPath = "RAILRANK_CONFIG"

// Config is the global application configuration
var Config AppConfig

// DefaultSearchPaths are tried in order when no explicit path is given.
var DefaultSearchPaths = []string{"config.yml", "config.yaml", "./configs/config.yml"}

// Defaults returns the configuration used for any field the file omits.
func Defaults() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:           16181,
			QueryTimeoutMS: 5000,
			CORSOrigins:    []string{"*"},
			GinMode:        "release",
		},
		Traffic: TrafficConfig{
			ReadIntervalMS: 60000,
			TimeoutMS:      10000,
		},
		Router: RouterConfig{
			DefaultMaxHops: 30,
			DefaultLocale:  "en",
			Tuning:         router.DefaultTuning(),
		},
		Cache: CacheConfig{
			Size:       1024,
			TTLSeconds: 30,
			Engines:    4,
		},
	}
}

// LoadAppConfig loads .env, then the config file named by RAILRANK_CONFIG or
// the first of DefaultSearchPaths that exists, and stores it in Config.
func LoadAppConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	paths := DefaultSearchPaths
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = []string{p}
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes yaml over Defaults and validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	if cfg.Router.DefaultMaxHops > 0 {
		cfg.Router.Tuning.DefaultMaxHops = cfg.Router.DefaultMaxHops
	}
	return cfg, nil
}

// Validate checks struct tags on every section.
func Validate(cfg AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := v.Struct(cfg.Topology); err != nil {
		return fmt.Errorf("topology: %w", err)
	}
	if err := v.Struct(cfg.Traffic); err != nil {
		return fmt.Errorf("traffic: %w", err)
	}
	if err := v.Struct(cfg.Router.Tuning); err != nil {
		return fmt.Errorf("router.tuning: %w", err)
	}
	if err := v.Struct(cfg.Cache); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}
