package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port         string   `mapstructure:"port"`
	Renderer     string   `mapstructure:"renderer"`
	ProcessorURI string   `mapstructure:"processor_url"`
	JWTSecret    string   `mapstructure:"jwt_secret"`
	StoreDriver  string   `mapstructure:"store_driver"`
	SQLitePath   string   `mapstructure:"sqlite_path"`
	MongoURI     string   `mapstructure:"mongo_uri"`
	MongoDB      string   `mapstructure:"mongo_db"`
	LogLevel     string   `mapstructure:"log_level"`
	LogFormat    string   `mapstructure:"log_format"`
	CORSOrigins  []string `mapstructure:"cors_origins"`
}

var configDefaults = map[string]any{
	"port":          "8080",
	"renderer":      "map",
	"processor_url": "",
	"jwt_secret":    "change_me",
	"store_driver":  "memory",
	"sqlite_path":   "data/terrawatch.db",
	"mongo_uri":     "mongodb://localhost:27017",
	"mongo_db":      "terrawatch",
	"log_level":     "info",
	"log_format":    "console",
	"cors_origins":  []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"},
}

// loadConfig reads .env (if present), then the optional YAML file at path, then
// environment variables. Later sources win.
func loadConfig(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range configDefaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8080"
	}
	return cfg, nil
}
