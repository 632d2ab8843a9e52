package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"tokenAuthAPI/internal/auth"
)

// Credential store backends
const (
	StoreStatic     = "static"
	StoreKubernetes = "kubernetes"
	StoreRedis      = "redis"
)

// Config holds all application configuration
type Config struct {
	ListenAddr      string        `yaml:"listen_addr"`
	SecretKey       string        `yaml:"secret_key"`
	TokenDuration   time.Duration `yaml:"token_duration"`
	CredentialStore string        `yaml:"credential_store"`
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Redis           RedisConfig   `yaml:"redis"`
}

// RedisConfig holds settings for the redis credential store
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration used when nothing is overridden.
// SecretKey has no default and must always be provided.
func Default() Config {
	return Config{
		ListenAddr:      ":8080",
		TokenDuration:   auth.DefaultTokenDuration,
		CredentialStore: StoreStatic,
		Username:        auth.DefaultUsername,
		Password:        auth.DefaultPassword,
		Redis: RedisConfig{
			Prefix: "auth",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by
// CONFIG_FILE, and environment variables, in that order of precedence.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.ListenAddr, "LISTEN_ADDR")
	setString(&cfg.SecretKey, "SECRET_KEY")
	setString(&cfg.CredentialStore, "CREDENTIAL_STORE")
	setString(&cfg.Username, "AUTH_USERNAME")
	setString(&cfg.Password, "AUTH_PASSWORD")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Redis.Prefix, "REDIS_PREFIX")

	if v := os.Getenv("TOKEN_DURATION"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_DURATION %q: %w", v, err)
		}
		cfg.TokenDuration = d
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// Validate checks that the configuration is usable
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token duration must be positive, got %s", c.TokenDuration)
	}

	switch c.CredentialStore {
	case StoreStatic:
		if c.Username == "" || c.Password == "" {
			return errors.New("static credential store requires a username and password")
		}
	case StoreKubernetes:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return errors.New("redis credential store requires REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown credential store %q", c.CredentialStore)
	}
	return nil
}
