// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/poll-bot/models"
)

// WithCommandLogging wraps a command handler with request logging.
// It assigns the request id when the router has not set one.
func WithCommandLogging(next models.HandlerFunc) models.HandlerFunc {
	return func(ctx context.Context, req models.Request) (string, error) {
		if req.RequestID == "" {
			req.RequestID = uuid.NewString()
		}
		start := time.Now()

		slog.Debug("command started",
			"request_id", req.RequestID,
			"verb", req.Verb,
			"channel", req.ChannelID,
			"user", req.UserID,
			"args", len(req.Args),
		)

		reply, err := next(ctx, req)

		duration := time.Since(start)
		switch {
		case err == nil:
			slog.Info("command completed",
				"request_id", req.RequestID,
				"verb", req.Verb,
				"duration_ms", duration.Milliseconds(),
			)
		case models.IsUserError(err):
			slog.Info("command rejected",
				"request_id", req.RequestID,
				"verb", req.Verb,
				"reason", err,
			)
		default:
			slog.Error("command failed",
				"request_id", req.RequestID,
				"verb", req.Verb,
				"channel", req.ChannelID,
				"error", err,
			)
		}

		return reply, err
	}
}

// WithLogging wraps an HTTP handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next(w, r)

		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
