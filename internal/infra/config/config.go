package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Log        LogConfig        `yaml:"log"`
	Auth       AuthConfig       `yaml:"auth"`
	Templates  TemplatesConfig  `yaml:"templates"`
	ImageFetch ImageFetchConfig `yaml:"image_fetch"`
	Limiter    LimiterConfig    `yaml:"limiter"`
	Storage    StorageConfig    `yaml:"storage"`
}

type ServerConfig struct {
	Addr                string `yaml:"addr"`
	ReadTimeoutSeconds  int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `yaml:"write_timeout_seconds"`
	AllowedOrigin       string `yaml:"allowed_origin"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AuthConfig struct {
	SharedSecret string `yaml:"shared_secret"`
}

type TemplatesConfig struct {
	Dir string `yaml:"dir"`
}

type ImageFetchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"`
	MaxRetries     int `yaml:"max_retries"`
}

type LimiterConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
	RatePerSecond int `yaml:"rate_per_second"`
}

type StorageConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return applyEnvOverrides(cfg), nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return applyEnvOverrides(cfg), nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:                ":8080",
			ReadTimeoutSeconds:  30,
			WriteTimeoutSeconds: 120,
			AllowedOrigin:       "https://areaprompt.com",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Templates: TemplatesConfig{
			Dir: "./templates",
		},
		ImageFetch: ImageFetchConfig{
			TimeoutSeconds: 8,
			MaxRetries:     1,
		},
		Limiter: LimiterConfig{
			MaxConcurrent: 10,
			RatePerSecond: 5,
		},
		Storage: StorageConfig{
			BasePath: "./output",
			BaseURL:  "/files",
		},
	}
}

func applyEnvOverrides(cfg *Config) *Config {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ALLOWED_ORIGIN"); v != "" {
		cfg.Server.AllowedOrigin = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SHARED_SECRET"); v != "" {
		cfg.Auth.SharedSecret = v
	}
	if v := os.Getenv("TEMPLATE_DIR"); v != "" {
		cfg.Templates.Dir = v
	}
	if v := os.Getenv("STORAGE_BASE_PATH"); v != "" {
		cfg.Storage.BasePath = v
	}
	if v := os.Getenv("STORAGE_BASE_URL"); v != "" {
		cfg.Storage.BaseURL = v
	}
	return cfg
}
