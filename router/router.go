// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/handlers"
	"github.com/danielhkuo/poll-bot/middleware"
	"github.com/danielhkuo/poll-bot/models"
)

// CommandName is the only top-level command the bot answers to
const CommandName = "poll"

// Command is a tokenized chat command: <prefix><name> <verb> <args...>
type Command struct {
	Name string
	Verb string
	Args []string
}

// Parse tokenizes a message. ok is false when the message does not start
// with the prefix and should be ignored.
func Parse(content, prefix string) (cmd Command, ok bool) {
	if prefix == "" || !strings.HasPrefix(content, prefix) {
		return Command{}, false
	}

	fields := strings.Fields(content[len(prefix):])
	if len(fields) > 0 {
		cmd.Name = strings.ToLower(fields[0])
	}
	if len(fields) > 1 {
		cmd.Verb = strings.ToLower(fields[1])
		cmd.Args = fields[2:]
	}
	return cmd, true
}

type Router struct {
	prefix   string
	handlers map[string]models.HandlerFunc
}

func NewRouter(eng *engine.Engine, cfg cliparse.Config) *Router {
	r := &Router{
		prefix:   cfg.CommandPrefix,
		handlers: make(map[string]models.HandlerFunc),
	}

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(eng, cfg)
	votingHandler := handlers.NewVotingHandler(eng, cfg)
	resultsHandler := handlers.NewResultsHandler(eng, cfg)

	// Poll management
	r.Handle(middleware.WithCommandLogging(pollHandler.CreatePoll), models.VerbNew, models.VerbCreate)
	r.Handle(middleware.WithCommandLogging(pollHandler.EndPoll), models.VerbEnd, models.VerbFinish)
	r.Handle(middleware.WithCommandLogging(pollHandler.Help), models.VerbHelp)

	// Voting
	r.Handle(middleware.WithCommandLogging(votingHandler.Vote), models.VerbVote, models.VerbOption)

	// Results
	r.Handle(middleware.WithCommandLogging(resultsHandler.ListPolls), models.VerbList)
	r.Handle(middleware.WithCommandLogging(resultsHandler.ViewPoll), models.VerbView)

	return r
}

// Handle registers h for each of the given verbs
func (r *Router) Handle(h models.HandlerFunc, verbs ...string) {
	for _, verb := range verbs {
		r.handlers[strings.ToLower(verb)] = h
	}
}

// Dispatch runs the command in msg and returns the reply to send back.
// handled is false for messages that are not commands.
func (r *Router) Dispatch(ctx context.Context, msg models.Message) (reply string, handled bool) {
	cmd, ok := Parse(msg.Content, r.prefix)
	if !ok {
		return "", false
	}

	req := models.Request{
		RequestID: uuid.NewString(),
		ChannelID: msg.ChannelID,
		UserID:    msg.UserID,
		Verb:      cmd.Verb,
		Args:      cmd.Args,
	}

	var err error
	switch h, found := r.handlers[cmd.Verb]; {
	case cmd.Name != CommandName:
		err = models.ErrBadCommand
	case cmd.Verb == "":
		err = models.ErrMissingParam
	case !found:
		err = models.ErrUnknownParam
	default:
		reply, err = h(ctx, req)
	}

	if err != nil {
		slog.Debug("replying with error", "request_id", req.RequestID, "error", err)
		reply = handlers.ErrorReply(r.prefix, msg.UserID, err)
	}
	return reply, true
}
