// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/danielhkuo/poll-bot/models"
)

// Discord connects the bot to a Discord gateway session
type Discord struct {
	session    *discordgo.Session
	dispatcher Dispatcher
	version    string
	backoff    time.Duration
}

func NewDiscord(token, version string, d Dispatcher) (*Discord, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}

	session.Identify.Intents = discordgo.IntentGuildMessages |
		discordgo.IntentDirectMessages |
		discordgo.IntentMessageContent

	// One event at a time, so commands never interleave
	session.SyncEvents = true

	bot := &Discord{
		session:    session,
		dispatcher: d,
		version:    version,
		backoff:    DefaultSendBackoff,
	}
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)

	return bot, nil
}

// Send posts text to a Discord channel
func (b *Discord) Send(ctx context.Context, channelID, text string) error {
	_, err := b.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx))
	return err
}

// Run opens the gateway connection and blocks until ctx is done
func (b *Discord) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open discord session: %w", err)
	}

	<-ctx.Done()

	slog.Info("Closing discord session")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("failed to close discord session: %w", err)
	}
	return nil
}

func (b *Discord) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Logged in",
		"username", r.User.Username,
		"user_id", r.User.ID,
		"guilds", len(r.Guilds),
		"version", b.version,
	)
}

func (b *Discord) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	if !shouldHandle(selfID, m.Message) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	handleMessage(ctx, b.dispatcher, b, toMessage(m.Message), b.backoff)
}

// shouldHandle drops messages from bots, including this one
func shouldHandle(selfID string, m *discordgo.Message) bool {
	if m == nil || m.Author == nil {
		return false
	}
	if m.Author.Bot {
		return false
	}
	return selfID == "" || m.Author.ID != selfID
}

func toMessage(m *discordgo.Message) models.Message {
	return models.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		UserID:    m.Author.ID,
		Content:   m.Content,
	}
}
