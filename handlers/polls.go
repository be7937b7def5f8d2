// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"strings"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/models"
)

type PollHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewPollHandler(eng *engine.Engine, cfg cliparse.Config) *PollHandler {
	return &PollHandler{engine: eng, cfg: cfg}
}

// CreatePoll handles `poll new <name> [options...]`
func (h *PollHandler) CreatePoll(ctx context.Context, req models.Request) (string, error) {
	if len(req.Args) == 0 {
		return "", models.ErrMissingParam
	}

	poll, err := h.engine.CreatePoll(ctx, req.ChannelID, req.Args[0], req.UserID, req.Args[1:])
	if err != nil {
		return "", err
	}

	slog.Info("poll created", "channel", req.ChannelID, "poll", poll.Name, "owner", req.UserID, "options", len(poll.Options))

	header := "> " + MentionUser(req.UserID) + ", created poll `" + poll.Name + "`"
	if len(poll.Options) == 0 {
		return header + " with no options", nil
	}

	names := make([]string, 0, len(poll.Options))
	for _, o := range poll.Options {
		names = append(names, o.Name)
	}
	return bulletList(header+" with the following options:", names), nil
}

// EndPoll handles `poll end <name>`
func (h *PollHandler) EndPoll(ctx context.Context, req models.Request) (string, error) {
	var name string
	if len(req.Args) > 0 {
		name = req.Args[0]
	}
	return "", h.engine.EndPoll(ctx, req.ChannelID, name, req.UserID)
}

// Help handles `poll help`
func (h *PollHandler) Help(ctx context.Context, req models.Request) (string, error) {
	cmd := "`" + h.cfg.CommandPrefix + "poll"

	lines := []string{
		"> " + MentionUser(req.UserID) + ", here are some commands you can run:",
		"> * " + cmd + " help`: Displays this message",
		"> * " + cmd + " new/create poll_name opt1 opt2...`: Creates a new poll for this channel with the name '`poll_name`' and options '`opt1`' and '`opt2`' (any number of options)",
		"> * " + cmd + " vote poll_name opt1 opt2`: Votes for options '`opt1`' and '`opt2`' in the poll '`poll_name`'",
		"> * " + cmd + " list`: Lists all of the active polls for this channel",
		"> * " + cmd + " view poll_name`: Shows the settings, the options, and the number of votes per option for the poll '`poll_name`'",
	}
	return strings.Join(lines, "\n"), nil
}
