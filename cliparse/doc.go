// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-platform    discord or console (default: discord)
	-token       Discord bot token
	-prefix      Command prefix (default: !)
	-t           Store type: file, sqlite, postgres, redis, s3 (default: file)
	-d           Store path or URL (default for file: polls_active.json)
	-s3-region   S3 region
	-s3-endpoint S3 endpoint override (MinIO, localstack)
	-p           Status server port (default: disabled)
	-log-level   debug, info, warn, error
	-log-format  text or json
	-env         Optional .env file (default: .env)

# Environment Variables

Flags fall back to environment variables:

	PLATFORM       → -platform
	DISCORD_TOKEN  → -token
	COMMAND_PREFIX → -prefix
	STORE_TYPE     → -t
	STORE_URL      → -d
	AWS_REGION     → -s3-region
	S3_ENDPOINT    → -s3-endpoint
	PORT           → -p
	LOG_LEVEL      → -log-level
	LOG_FORMAT     → -log-format

S3_ACCESS_KEY and S3_SECRET_KEY are read from the environment only. When they
are unset the default AWS credential chain is used.

The .env file is loaded before the fallbacks are applied and never overrides
variables that are already set. CLI flags take precedence over both.

# Validation

ParseFlags returns an error if:

  - the platform is discord and no token is given
  - a sqlite, postgres, redis or s3 store has no URL
  - an s3 store has no region

# Logging

Config.NewLogger builds the slog logger for LogLevel and LogFormat and fails
on unknown values:

	logger, err := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)
*/
package cliparse
