// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/poll-bot/models"
)

const (
	// SendAttempts is how many times a reply is sent before giving up
	SendAttempts = 3

	// DefaultSendBackoff is the fixed wait between send attempts
	DefaultSendBackoff = 500 * time.Millisecond

	// commandTimeout bounds the store work done for a single message
	commandTimeout = 30 * time.Second
)

// Sender delivers a text reply to a channel
type Sender interface {
	Send(ctx context.Context, channelID, text string) error
}

// Dispatcher turns an incoming message into the reply to send back.
// handled is false for messages the bot should ignore.
type Dispatcher interface {
	Dispatch(ctx context.Context, msg models.Message) (reply string, handled bool)
}

// SendWithRetry sends text, retrying with a fixed backoff on failure
func SendWithRetry(ctx context.Context, s Sender, channelID, text string, backoff time.Duration) error {
	var err error
	for attempt := 1; attempt <= SendAttempts; attempt++ {
		if err = s.Send(ctx, channelID, text); err == nil {
			return nil
		}
		slog.Warn("failed to send reply", "channel", channelID, "attempt", attempt, "error", err)

		if attempt == SendAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed to send reply after %d attempts: %w", SendAttempts, err)
}

// handleMessage dispatches msg and sends the reply, if any, back to its channel
func handleMessage(ctx context.Context, d Dispatcher, s Sender, msg models.Message, backoff time.Duration) {
	reply, handled := d.Dispatch(ctx, msg)
	if !handled || reply == "" {
		return
	}
	if err := SendWithRetry(ctx, s, msg.ChannelID, reply, backoff); err != nil {
		slog.Error("reply dropped", "channel", msg.ChannelID, "message_id", msg.ID, "error", err)
	}
}
