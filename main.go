package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/danielhkuo/poll-bot/cliparse"
	"github.com/danielhkuo/poll-bot/engine"
	"github.com/danielhkuo/poll-bot/messaging"
	"github.com/danielhkuo/poll-bot/router"
	"github.com/danielhkuo/poll-bot/store"
)

const version = "1.0.0"

func main() {
	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		slog.Error("Error configuring logger", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// signal.NotifyContext cancels ctx on Ctrl-C or SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open poll storage
	polls, err := store.Open(ctx, cfg)
	if err != nil {
		slog.Error("store setup failed", "store", cfg.StoreType, "error", err)
		os.Exit(1)
	}
	defer polls.Close()
	slog.Info("Store ready", "store", cfg.StoreType)

	eng := engine.New(polls)
	r := router.NewRouter(eng, cfg)

	// Optional status server
	var server *http.Server
	if cfg.Port > 0 {
		server = &http.Server{
			Handler: router.NewStatusMux(eng),
			Addr:    ":" + strconv.Itoa(cfg.Port),
		}
		go func() {
			slog.Info("Listening", "port", cfg.Port)
			err := server.ListenAndServe()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("Status server closed", "error", err)
			}
		}()
	}

	slog.Info("Starting poll bot", "platform", cfg.Platform, "prefix", cfg.CommandPrefix, "version", version)
	err = run(ctx, cfg, r)

	if server != nil {
		server.Close()
	}
	if err != nil {
		slog.Error("Bot stopped", "error", err)
		polls.Close()
		os.Exit(1)
	}
	slog.Info("Bot stopped")
}

func run(ctx context.Context, cfg cliparse.Config, d messaging.Dispatcher) error {
	switch cfg.Platform {
	case cliparse.PlatformConsole:
		return messaging.NewConsole(os.Stdin, os.Stdout, d).Run(ctx)
	default:
		bot, err := messaging.NewDiscord(cfg.DiscordToken, version, d)
		if err != nil {
			return err
		}
		return bot.Run(ctx)
	}
}
