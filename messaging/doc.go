// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package messaging connects the command router to a chat platform.

An adapter receives messages, hands each one to a Dispatcher, and sends the
reply back to the channel the message came from:

	bot, err := messaging.NewDiscord(cfg.DiscordToken, version, r)
	err = bot.Run(ctx)

Console reads one command per line, which is handy for local testing:

	messaging.NewConsole(os.Stdin, os.Stdout, r).Run(ctx)

# Delivery

Replies are sent up to SendAttempts times with a fixed backoff. A reply that
still fails is logged and dropped; the poll state is already saved by then.

The Discord session dispatches events synchronously, so one command finishes
before the next starts. Messages from bots are ignored.
*/
package messaging
