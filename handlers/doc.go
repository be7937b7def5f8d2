// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the chat command handlers for the poll bot.

# Handler Types

Each handler is a struct with engine and config dependencies:

  - PollHandler: create, end, help
  - VotingHandler: vote
  - ResultsHandler: list, view

Handlers are created via constructor functions that accept *engine.Engine and Config:

	pollHandler := handlers.NewPollHandler(eng, cfg)

Every handler method is a models.HandlerFunc. It takes the routed request and
returns the reply text, or an error that ErrorReply turns into a canned reply:

	reply, err := pollHandler.CreatePoll(ctx, req)
	if err != nil {
		reply = handlers.ErrorReply(cfg.CommandPrefix, req.UserID, err)
	}

# Commands

	poll new/create <name> [options...] → CreatePoll
	poll vote/option <name> <options...> → Vote
	poll list                            → ListPolls
	poll view <name>                     → ViewPoll
	poll end/finish <name>               → EndPoll (not implemented)
	poll help                            → Help

# Replies

Replies are quoted markdown and mention the invoking user. A vote reply has
up to three sections: options voted for, options already voted for, and
options that do not exist in the poll.
*/
package handlers
