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

type VotingHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
}

func NewVotingHandler(eng *engine.Engine, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{engine: eng, cfg: cfg}
}

// Vote handles `poll vote <name> <options...>`
func (h *VotingHandler) Vote(ctx context.Context, req models.Request) (string, error) {
	if len(req.Args) < 2 {
		return "", models.ErrMissingParam
	}

	result, err := h.engine.Vote(ctx, req.ChannelID, req.Args[0], req.UserID, req.Args[1:])
	if err != nil {
		return "", err
	}

	slog.Info("vote recorded",
		"channel", req.ChannelID,
		"poll", result.Poll,
		"voter", req.UserID,
		"voted", len(result.Voted),
		"already_voted", len(result.AlreadyVoted),
		"not_exists", len(result.NotExists),
	)

	return VoteReply(req.UserID, result), nil
}

// VoteReply has one section per outcome that occurred
func VoteReply(userID string, result models.VoteResult) string {
	mention := MentionUser(userID)
	var sections []string

	if len(result.Voted) > 0 {
		sections = append(sections, bulletList(
			"> "+mention+", you successfully voted in `"+result.Poll+"` for the following options:", result.Voted))
	}
	if len(result.AlreadyVoted) > 0 {
		sections = append(sections, bulletList(
			"> "+mention+", you already voted in `"+result.Poll+"` for the following options:", result.AlreadyVoted))
	}
	if len(result.NotExists) > 0 {
		sections = append(sections, bulletList(
			"> "+mention+", the following options don't exist in `"+result.Poll+"`:", result.NotExists))
	}

	return strings.Join(sections, "\n")
}
