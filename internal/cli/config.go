package cli

import (
	"log/slog"
	"os"

	"github.com/Jeet1511/EliteZero/internal/config"
	"github.com/Jeet1511/EliteZero/internal/events"
	"github.com/Jeet1511/EliteZero/internal/factory"
	"github.com/Jeet1511/EliteZero/internal/services/chatbot"
	"github.com/Jeet1511/EliteZero/internal/services/session"
	"github.com/Jeet1511/EliteZero/internal/storage/postgres"
	redisstorage "github.com/Jeet1511/EliteZero/internal/storage/redis"
	"github.com/Jeet1511/EliteZero/internal/storage/snapshot"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	EnvFile   string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("ELITEZERO_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("ELITEZERO_ADMIN_TOKEN"),
		EnvFile:   ".env",
		Output:    "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// factoryConfig maps runtime settings onto the application factory. Optional
// backends are only configured when their settings are present.
func factoryConfig(c *config.Config, logger *slog.Logger) factory.Config {
	fc := factory.Config{
		Logger:      logger,
		StorageType: c.StorageType,
		StatsFile:   c.StatsFile,
	}

	if c.StorageType == config.StorageRedis {
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = c.RedisURL
		fc.RedisConfig = &redisCfg
	}
	if c.S3Bucket != "" {
		snap := snapshot.DefaultConfig()
		snap.Bucket = c.S3Bucket
		snap.Region = c.S3Region
		snap.Endpoint = c.S3Endpoint
		snap.AccessKeyID = c.S3AccessKeyID
		snap.SecretAccessKey = c.S3SecretAccessKey
		fc.Snapshot = &snap
	}
	if c.DatabaseURL != "" {
		pg := postgres.DefaultConfig()
		pg.URL = c.DatabaseURL
		fc.Postgres = &pg
	}
	if len(c.KafkaBrokers) > 0 {
		kafka := events.DefaultConfig()
		kafka.Brokers = c.KafkaBrokers
		kafka.Topic = c.KafkaTopic
		fc.Kafka = &kafka
	}
	if c.AIEnabled() {
		ai := chatbot.DefaultOpenAIConfig()
		ai.APIKey = c.OpenAIKey
		ai.BaseURL = c.OpenAIBaseURL
		ai.MaxTokens = c.OpenAIMaxTokens
		if c.OpenAIModel != "" {
			ai.Model = c.OpenAIModel
		}
		fc.OpenAI = ai
	}

	fc.Session = session.DefaultConfig()
	fc.Session.StaleAfter = c.SessionStaleAfter
	fc.Session.SweepInterval = c.SessionSweepInterval
	return fc
}
