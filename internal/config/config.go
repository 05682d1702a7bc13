package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the server.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	LogJSON  bool

	Sheets SheetsConfig
	Gemini GeminiConfig
}

// SheetsConfig holds the two persistence secrets and the target tab.
type SheetsConfig struct {
	CredentialsJSON string
	SheetURL        string
	SheetName       string
}

// GeminiConfig enables narrative feedback when APIKey is set.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"port":                    "PORT",
	"gin_mode":                "GIN_MODE",
	"log.level":               "LOG_LEVEL",
	"log.json":                "LOG_JSON",
	"sheets.credentials_json": "GCP_JSON_TEXT",
	"sheets.sheet_url":        "PRIVATE_SHEET_URL",
	"sheets.sheet_name":       "SHEET_NAME",
	"gemini.api_key":          "GEMINI_API_KEY",
	"gemini.model":            "GEMINI_MODEL",
}

// Load reads .env (when present), an optional config file and the
// environment, in increasing order of precedence. An empty configFile looks
// for isaq.yaml in the working directory.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("isaq")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Port:     v.GetString("port"),
		GinMode:  v.GetString("gin_mode"),
		LogLevel: strings.ToLower(v.GetString("log.level")),
		LogJSON:  v.GetBool("log.json"),
		Sheets: SheetsConfig{
			CredentialsJSON: v.GetString("sheets.credentials_json"),
			SheetURL:        v.GetString("sheets.sheet_url"),
			SheetName:       v.GetString("sheets.sheet_name"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("gemini.api_key"),
			Model:  v.GetString("gemini.model"),
		},
	}

	if cfg.Port == "" {
		return nil, errors.New("port must not be empty")
	}
	return cfg, nil
}
