// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/models"
)

type ResultsHandler struct {
	engine *engine.Engine
	cfg    cliparse.Config
	now    func() time.Time
}

func NewResultsHandler(eng *engine.Engine, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{engine: eng, cfg: cfg, now: time.Now}
}

// ListPolls handles `poll list`
func (h *ResultsHandler) ListPolls(ctx context.Context, req models.Request) (string, error) {
	names, err := h.engine.ListPolls(ctx, req.ChannelID)
	if err != nil {
		return "", err
	}

	if len(names) == 0 {
		return "> " + MentionUser(req.UserID) + " there are no active polls in this channel", nil
	}
	return bulletList("> "+MentionUser(req.UserID)+" all active polls for this channel:", names), nil
}

// ViewPoll handles `poll view <name>`
func (h *ResultsHandler) ViewPoll(ctx context.Context, req models.Request) (string, error) {
	if len(req.Args) < 1 {
		return "", models.ErrMissingParam
	}

	view, err := h.engine.ViewPoll(ctx, req.ChannelID, req.Args[0])
	if err != nil {
		return "", err
	}

	return ViewReply(req.UserID, view, h.now()), nil
}

// ViewReply lists every option with its vote count
func ViewReply(userID string, view models.PollView, now time.Time) string {
	var b strings.Builder

	b.WriteString("> View Poll " + MentionUser(userID) + ":\n> `" + view.Name + "`")
	b.WriteString(" by " + MentionUser(view.Owner))
	b.WriteString(", opened " + humanize.RelTime(view.StartedAt, now, "ago", "from now"))
	b.WriteString(", " + strconv.Itoa(view.Voters) + plural(view.Voters, " voter", " voters"))
	if view.MultipleVotes {
		b.WriteString(", multiple votes allowed")
	} else {
		b.WriteString(", one vote per person")
	}

	for _, o := range view.Options {
		b.WriteString("\n>  * `" + o.Name + "`: " + strconv.Itoa(o.Votes))
	}

	return b.String()
}
