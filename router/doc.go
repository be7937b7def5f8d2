// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router turns chat messages into poll commands and serves the status API.

# Command Routing

NewRouter registers every verb against its handler:

	r := router.NewRouter(eng, cfg)
	reply, handled := r.Dispatch(ctx, msg)

Messages that do not start with cfg.CommandPrefix are not handled and get no
reply. Everything after the prefix is split on whitespace:

	!poll <verb> [args...]

The command name and verb are case-insensitive. Verbs and their aliases:

	new, create    - Create a poll: new <name> [options...]
	vote, option   - Vote: vote <name> <option> [options...]
	list           - List the channel's polls
	view           - Show tallies: view <name>
	end, finish    - Reserved, always replies "not implemented"
	help           - Show usage

Any other command name, a missing verb, or an unknown verb is answered with
the matching error reply from handlers.ErrorReply.

# Status Endpoints

NewStatusMux exposes read-only poll data over HTTP:

	GET /health                          - Liveness
	GET /channels/{channel}/polls        - Poll names, sorted
	GET /channels/{channel}/polls/{name} - Tallies and settings

The status server is optional and only started when a port is configured.
*/
package router
