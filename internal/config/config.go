// Package config loads runtime settings from the environment
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the stats table
const (
	StorageMemory = "memory"
	StorageFile   = "file"
	StorageRedis  = "redis"
)

// Config holds every setting the bot reads from the environment
type Config struct {
	LogLevel slog.Level
	HTTPAddr string

	DiscordToken   string
	DiscordGuildID string

	// AdminTokenHash is the bcrypt hash of the admin API bearer token
	AdminTokenHash string

	StorageType string
	StatsFile   string
	RedisURL    string
	DatabaseURL string

	KafkaBrokers []string
	KafkaTopic   string

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	OpenAIKey     string
	OpenAIBaseURL string
	OpenAIModel   string
	// OpenAIMaxTokens caps the length of AI replies
	OpenAIMaxTokens int

	SessionStaleAfter    time.Duration
	SessionSweepInterval time.Duration
}

// Load reads envFile if it exists, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := &Config{
		HTTPAddr:          getEnvOrDefault("ELITEZERO_HTTP_ADDR", ":8080"),
		DiscordToken:      os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID:    os.Getenv("DISCORD_GUILD_ID"),
		AdminTokenHash:    os.Getenv("ELITEZERO_ADMIN_TOKEN_HASH"),
		StorageType:       getEnvOrDefault("ELITEZERO_STORAGE", StorageFile),
		StatsFile:         getEnvOrDefault("ELITEZERO_STATS_FILE", "data/game_stats.json"),
		RedisURL:          getEnvOrDefault("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        getEnvOrDefault("KAFKA_TOPIC", "elitezero-game-events"),
		S3Bucket:          os.Getenv("S3_BUCKET"),
		S3Region:          getEnvOrDefault("S3_REGION", "auto"),
		S3Endpoint:        os.Getenv("S3_ENDPOINT"),
		S3AccessKeyID:     os.Getenv("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: os.Getenv("S3_SECRET_ACCESS_KEY"),
		OpenAIKey:         os.Getenv("OPENAI_API_KEY"),
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnvOrDefault("ELITEZERO_LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("ELITEZERO_LOG_LEVEL: %w", err)
	}
	stale, err := time.ParseDuration(getEnvOrDefault("ELITEZERO_SESSION_STALE_AFTER", "30m"))
	if err != nil {
		return nil, fmt.Errorf("ELITEZERO_SESSION_STALE_AFTER: %w", err)
	}
	cfg.SessionStaleAfter = stale
	sweep, err := time.ParseDuration(getEnvOrDefault("ELITEZERO_SESSION_SWEEP_INTERVAL", "10m"))
	if err != nil || sweep <= 0 {
		return nil, fmt.Errorf("ELITEZERO_SESSION_SWEEP_INTERVAL: invalid duration %q", os.Getenv("ELITEZERO_SESSION_SWEEP_INTERVAL"))
	}
	cfg.SessionSweepInterval = sweep
	if cfg.OpenAIMaxTokens, err = getEnvInt("OPENAI_MAX_TOKENS", 300); err != nil {
		return nil, err
	}

	switch cfg.StorageType {
	case StorageMemory, StorageFile, StorageRedis:
	default:
		return nil, fmt.Errorf("ELITEZERO_STORAGE: unknown backend %q", cfg.StorageType)
	}
	return cfg, nil
}

// AIEnabled reports whether AI mode can be offered
func (c *Config) AIEnabled() bool {
	return c.OpenAIKey != ""
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
