// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides logging wrappers and HTTP helper functions.

# Command Logging

Wrap command handlers with logging:

	r.Handle(middleware.WithCommandLogging(votingHandler.Vote), models.VerbVote, models.VerbOption)

Every command gets a request_id (a UUID unless the caller set one). Completed
commands log at info, rejected input (unknown poll, missing parameter, ...)
at info with the reason, and anything else at error.

# Request Logging

Wrap status server handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs method, path, remote and duration_ms on completion.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusNotFound, "message")
*/
package middleware
