package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken      string
	ApplicationID string
	// IgnoreEmojiID is the optional custom emoji the bot reacts with when a
	// moderator ignores a message.
	IgnoreEmojiID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" && c.ApplicationID != ""
	// Note: IgnoreEmojiID is optional
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL    string
	DatabaseSchema string
	Environment    string

	// SettingsCacheSize is the number of guild settings kept in the in-memory
	// read cache. Zero disables caching.
	SettingsCacheSize int

	DiscordConfig DiscordConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	cacheSize, err := strconv.Atoi(getEnvWithDefault("SETTINGS_CACHE_SIZE", "1024"))
	if err != nil {
		return nil, fmt.Errorf("SETTINGS_CACHE_SIZE must be an integer: %w", err)
	}

	config := &AppConfig{
		DatabaseURL:       databaseURL,
		DatabaseSchema:    databaseSchema,
		Environment:       getEnvWithDefault("ENVIRONMENT", "dev"),
		SettingsCacheSize: cacheSize,

		DiscordConfig: DiscordConfig{
			BotToken:      os.Getenv("DISCORD_BOT_TOKEN"),
			ApplicationID: os.Getenv("DISCORD_APPLICATION_ID"),
			IgnoreEmojiID: os.Getenv("IGNORE_EMOJI_ID"),
		},
	}

	if !config.DiscordConfig.IsConfigured() {
		return nil, fmt.Errorf("discord integration is not fully configured")
	}

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
