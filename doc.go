// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for poll-bot.

poll-bot runs simple per-channel polls in chat. Users create a poll with a
list of options, vote for one or more options, and view the running tallies.
All polls live in a single JSON document that is rewritten after every change.

# Starting the Bot

The bot needs a Discord token, from the environment or a flag:

	DISCORD_TOKEN=... go run .

Or try it locally without Discord:

	go run . -platform console

A .env file in the working directory is loaded when present.

# Configuration

  - PLATFORM (-platform): discord or console (default: discord)
  - DISCORD_TOKEN (-token): Bot token, required for discord
  - COMMAND_PREFIX (-prefix): Command prefix (default: !)
  - STORE_TYPE (-t): file, sqlite, postgres, redis or s3 (default: file)
  - STORE_URL (-d): File path, DSN, redis URL or s3://bucket/key
    (default: polls_active.json for the file store)
  - AWS_REGION (-s3-region), S3_ENDPOINT (-s3-endpoint), S3_ACCESS_KEY,
    S3_SECRET_KEY: S3 settings
  - PORT (-p): Status server port (default: 0, disabled)
  - LOG_LEVEL (-log-level), LOG_FORMAT (-log-format): slog settings

# Architecture

  - messaging: Discord and console adapters, reply delivery
  - router: Command parsing and dispatch, status HTTP endpoints
  - middleware: Command and request logging, JSON helpers
  - handlers: Command handlers and reply text
  - engine: Poll operations over the stored document
  - store: File, SQL, redis and S3 document stores
  - models: Poll document and result types
  - db: SQL schema for the document table
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
