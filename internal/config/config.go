package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/cotador/internal/domain"
	"github.com/alexanderramin/cotador/internal/llm"
	"github.com/alexanderramin/cotador/internal/session"
)

type Config struct {
	Store struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"store"`
	Session struct {
		Backend  string        `yaml:"backend"`
		RedisURL string        `yaml:"redis_url"`
		TTL      time.Duration `yaml:"ttl"`
	} `yaml:"session"`
	Quote struct {
		MaxOffers int    `yaml:"max_offers"`
		SeedFile  string `yaml:"seed_file"`
	} `yaml:"quote"`
	Log struct {
		Level string `yaml:"level"`
		Path  string `yaml:"path"`
	} `yaml:"log"`
	LLM llm.LLMConfig `yaml:"llm"`
}

// HomeDir is where cotador keeps its database, log and config by default.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cotador"
	}
	return filepath.Join(home, ".cotador")
}

func Default() Config {
	var cfg Config
	base := HomeDir()
	cfg.Store.Driver = "sqlite"
	cfg.Store.DSN = filepath.Join(base, "cotador.db")
	cfg.Session.Backend = session.BackendSQL
	cfg.Session.TTL = session.DefaultTTL
	cfg.Quote.MaxOffers = domain.DefaultMaxOffers
	cfg.Log.Level = "info"
	cfg.Log.Path = filepath.Join(base, "cotador.log")
	cfg.LLM = llm.DefaultConfig()
	return cfg
}

// Path resolves the config file location: the explicit flag value, then
// COTADOR_CONFIG, then ~/.cotador/config.yaml.
func Path(flag string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv("COTADOR_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(HomeDir(), "config.yaml")
}

// Load reads the YAML file at path over the defaults and then applies the
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.Quote.MaxOffers <= 0 {
		cfg.Quote.MaxOffers = domain.DefaultMaxOffers
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = session.DefaultTTL
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("COTADOR_DB_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("COTADOR_DB"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("COTADOR_SESSION_BACKEND"); v != "" {
		cfg.Session.Backend = v
	}
	if v := os.Getenv("COTADOR_REDIS_URL"); v != "" {
		cfg.Session.RedisURL = v
	}
	if v := os.Getenv("COTADOR_SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Session.TTL = d
		}
	}
	if v := os.Getenv("COTADOR_MAX_OFFERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Quote.MaxOffers = n
		}
	}
	if v := os.Getenv("COTADOR_SEED_FILE"); v != "" {
		cfg.Quote.SeedFile = v
	}
	if v := os.Getenv("COTADOR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("COTADOR_LOG_PATH"); v != "" {
		cfg.Log.Path = v
	}
	llm.ApplyEnv(&cfg.LLM)
}
