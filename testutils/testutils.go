package testutils

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"starboard/config"
)

// LoadTestConfig loads configuration for integration tests from environment
// variables. Tests skip themselves when the database is not configured.
func LoadTestConfig() (*config.AppConfig, error) {
	_ = godotenv.Load("../../.env.test") // From services/<name>/ directories
	_ = godotenv.Load(".env.test")       // From root directory
	_ = godotenv.Load()                  // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}, nil
}

// TestGuildID returns a unique guild ID so parallel test runs never collide.
func TestGuildID() string {
	return "guild-" + uuid.New().String()
}

// TestChannelID returns a unique channel ID.
func TestChannelID() string {
	return "chan-" + uuid.New().String()
}

// TestMessageID returns a unique message ID.
func TestMessageID() string {
	return "msg-" + uuid.New().String()
}

// TestUserID returns a unique user ID.
func TestUserID() string {
	return "user-" + uuid.New().String()
}
