package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Scryfall
		Import
		Decks
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Scryfall struct {
		BaseURL string
		Timeout time.Duration
	}
	Import struct {
		// RequireImages makes a failed artwork batch abort the whole
		// bulk import instead of committing rows without images.
		RequireImages bool
	}
	Decks struct {
		DefaultMaxCards int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8080)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("scryfall_base_url", "https://api.scryfall.com")
	v.SetDefault("scryfall_timeout", "30s")
	v.SetDefault("import_require_images", false)
	v.SetDefault("deck_default_max_cards", 100)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Scryfall: Scryfall{
			BaseURL: v.GetString("SCRYFALL_BASE_URL"),
			Timeout: v.GetDuration("SCRYFALL_TIMEOUT"),
		},
		Import: Import{
			RequireImages: v.GetBool("IMPORT_REQUIRE_IMAGES"),
		},
		Decks: Decks{
			DefaultMaxCards: v.GetInt("DECK_DEFAULT_MAX_CARDS"),
		},
	}
}
