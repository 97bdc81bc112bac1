package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/lrklep/tale-of-light/internal/config"
	"github.com/lrklep/tale-of-light/internal/server"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel()}))
	slog.SetDefault(logger)

	s, err := server.NewServer(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.Port
	logger.Info("chronicle server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, s.Router()); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
