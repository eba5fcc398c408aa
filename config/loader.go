package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration. With no
// arguments it tries the default path candidates.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{"config.yml", "./config/config.yml"}
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
		return err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return err
	}
	v := validator.New()
	if err := v.Struct(cfg.Server); err != nil {
		return err
	}
	if err := v.Struct(cfg.Cache); err != nil {
		return err
	}
	// sources are optional; if present validate each
	for _, s := range cfg.Sources {
		if err := v.Struct(s); err != nil {
			return err
		}
	}
	Config = cfg
	if Config.Server.Port == 0 {
		Config.Server.Port = 8317
	}
	if Config.LogLevel == "" {
		Config.LogLevel = "info"
	}
	applyEnvOverrides(&Config)
	return nil
}

// applyEnvOverrides lets .env / environment settings win over config.yml for
// the cache tier, so deployments can point at Redis without editing YAML.
func applyEnvOverrides(cfg *AppConfig) {
	if host := os.Getenv("REDIS_HOST"); host != "" {
		port := os.Getenv("REDIS_PORT")
		if port == "" {
			port = "6379"
		}
		cfg.Cache.RedisAddr = host + ":" + port
	}
	if pass := os.Getenv("REDIS_PASS"); pass != "" {
		cfg.Cache.RedisPass = pass
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Cache.RedisDB = n
		}
	}
}

// SelectSource chooses a source by name; fallback to first in sources[];
// if none, use the top-level source.
func SelectSource(name string) SourceConfig {
	if name != "" {
		for _, s := range Config.Sources {
			if s.Name == name {
				return s
			}
		}
	}
	if len(Config.Sources) > 0 {
		return Config.Sources[0]
	}
	return Config.Source
}
