// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/middleware"
	"github.com/danielhkuo/poll-bot/models"
)

// NewStatusMux serves read-only poll data for health checks and dashboards
func NewStatusMux(eng *engine.Engine) *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /channels/{channel}/polls", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		names, err := eng.ListPolls(r.Context(), r.PathValue("channel"))
		if err != nil {
			slog.Error("failed to list polls", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, names)
	}))

	mux.HandleFunc("GET /channels/{channel}/polls/{name}", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		view, err := eng.ViewPoll(r.Context(), r.PathValue("channel"), r.PathValue("name"))
		if errors.Is(err, models.ErrPollNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
			return
		}
		if err != nil {
			slog.Error("failed to view poll", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Store error")
			return
		}
		middleware.JSONResponse(w, http.StatusOK, view)
	}))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("poll-bot status v1"))
	})

	return mux
}
