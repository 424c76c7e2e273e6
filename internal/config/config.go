package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Extractor backend names accepted in EXTRACTOR.
const (
	ExtractorReadability = "readability"
	ExtractorBrowser     = "browser"
)

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	ListenAddr   string `mapstructure:"LISTEN_ADDR"`
	BadgerDBPath string `mapstructure:"BADGERDB_PATH"`

	JWTSecret     string        `mapstructure:"JWT_SECRET"`
	TokenValidity time.Duration `mapstructure:"TOKEN_VALIDITY"`

	// SessionCookieTTL is deliberately much shorter than the token
	// validity: the cookie expires quickly while the signed token it
	// carries stays usable via the Authorization header.
	SessionCookieTTL time.Duration `mapstructure:"SESSION_COOKIE_TTL"`

	// Extractor selects the extraction backend: "readability" (plain
	// HTTP fetch) or "browser" (headless render for JS-heavy pages).
	Extractor string `mapstructure:"EXTRACTOR"`

	// TelegramBotToken enables the Telegram capture front-end when set.
	TelegramBotToken string `mapstructure:"TELEGRAM_BOT_TOKEN"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// Reset makes repeated loads independent of each other.
	viper.Reset()
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Registering defaults also registers the keys, which is what lets
	// AutomaticEnv pick them up when no config file is present.
	viper.SetDefault("LISTEN_ADDR", ":8080")
	viper.SetDefault("BADGERDB_PATH", "./badger_data")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("TOKEN_VALIDITY", 14*24*time.Hour)
	viper.SetDefault("SESSION_COOKIE_TTL", 5*time.Minute)
	viper.SetDefault("EXTRACTOR", ExtractorReadability)
	viper.SetDefault("TELEGRAM_BOT_TOKEN", "")

	err = viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine when env vars carry the values.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if config.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}
	if config.TokenValidity <= 0 {
		config.TokenValidity = 14 * 24 * time.Hour
	}
	if config.SessionCookieTTL <= 0 {
		config.SessionCookieTTL = 5 * time.Minute
	}
	switch config.Extractor {
	case "":
		config.Extractor = ExtractorReadability
	case ExtractorReadability, ExtractorBrowser:
	default:
		return Config{}, fmt.Errorf("unknown extractor backend %q", config.Extractor)
	}

	return config, nil
}
