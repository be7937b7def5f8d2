package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Platforms
const (
	PlatformDiscord = "discord"
	PlatformConsole = "console"
)

// Store types
const (
	StoreFile     = "file"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
	StoreS3       = "s3"
)

const DefaultPollsFile = "polls_active.json"

type Config struct {
	Port          int
	Platform      string
	DiscordToken  string
	CommandPrefix string
	StoreType     string
	StoreURL      string
	S3Region      string
	S3Endpoint    string
	S3AccessKey   string
	S3SecretKey   string
	LogLevel      string
	LogFormat     string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var envFile string

	fs := flag.NewFlagSet("poll-bot", flag.ContinueOnError)

	fs.StringVar(&envFile, "env", ".env", "Path of an optional .env file")

	// Chat platform
	fs.StringVar(&cfg.Platform, "platform", "", "Chat platform (discord or console)")
	fs.StringVar(&cfg.DiscordToken, "token", "", "Discord bot token (prefer env)")
	fs.StringVar(&cfg.CommandPrefix, "prefix", "", "Command prefix")

	// Storage
	fs.StringVar(&cfg.StoreType, "t", "", "Store type (file, sqlite, postgres, redis or s3)")
	fs.StringVar(&cfg.StoreURL, "d", "", "Store path or URL")
	fs.StringVar(&cfg.S3Region, "s3-region", "", "S3 region")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", "", "S3 endpoint override")

	// Status server and logging
	fs.IntVar(&cfg.Port, "p", 0, "Status server port (0 disables it)")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env never overrides variables that are already set
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	cfg.Platform = orEnv(cfg.Platform, "PLATFORM", PlatformDiscord)
	switch cfg.Platform {
	case PlatformDiscord:
		cfg.DiscordToken = orEnv(cfg.DiscordToken, "DISCORD_TOKEN", "")
		if cfg.DiscordToken == "" {
			return Config{}, errors.New("discord token required (use -token or DISCORD_TOKEN env)")
		}
	case PlatformConsole:
	default:
		return Config{}, fmt.Errorf("unknown platform %q", cfg.Platform)
	}

	cfg.CommandPrefix = orEnv(cfg.CommandPrefix, "COMMAND_PREFIX", "!")

	cfg.StoreType = orEnv(cfg.StoreType, "STORE_TYPE", StoreFile)
	cfg.StoreURL = orEnv(cfg.StoreURL, "STORE_URL", "")
	switch cfg.StoreType {
	case StoreFile:
		if cfg.StoreURL == "" {
			cfg.StoreURL = DefaultPollsFile
		}
	case StoreSQLite, StorePostgres, StoreRedis, StoreS3:
		if cfg.StoreURL == "" {
			return Config{}, fmt.Errorf("store URL required for %s store (use -d or STORE_URL env)", cfg.StoreType)
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	cfg.S3Region = orEnv(cfg.S3Region, "AWS_REGION", "")
	cfg.S3Endpoint = orEnv(cfg.S3Endpoint, "S3_ENDPOINT", "")
	// Secrets only come from the environment
	cfg.S3AccessKey = os.Getenv("S3_ACCESS_KEY")
	cfg.S3SecretKey = os.Getenv("S3_SECRET_KEY")
	if cfg.StoreType == StoreS3 && cfg.S3Region == "" {
		return Config{}, errors.New("AWS_REGION required for s3 store")
	}

	cfg.LogLevel = orEnv(cfg.LogLevel, "LOG_LEVEL", "info")
	cfg.LogFormat = orEnv(cfg.LogFormat, "LOG_FORMAT", "text")

	return cfg, nil
}

func orEnv(value, key, fallback string) string {
	if value != "" {
		return value
	}
	if env := os.Getenv(key); env != "" {
		return env
	}
	return fallback
}

// NewLogger builds the slog logger described by LogLevel and LogFormat
func (c Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch c.LogFormat {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", c.LogFormat)
	}
}
