package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ytmp3-cli/ytmp3/internal/cli"
	cfgpkg "github.com/ytmp3-cli/ytmp3/internal/config"
	"github.com/ytmp3-cli/ytmp3/internal/console"
	"github.com/ytmp3-cli/ytmp3/internal/history"
	"github.com/ytmp3-cli/ytmp3/internal/service"
	"github.com/ytmp3-cli/ytmp3/internal/ytdlp"
)

func main() {
	cfg, err := cfgpkg.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	cfgpkg.SetupLogger(cfg)
	logger := slog.Default()

	client := ytdlp.NewCommandClient(cfg.DownloaderBin, cfg.FFmpegBin, logger)
	if err := client.Check(); err != nil {
		slog.Error("downloader executable not available", "binary", cfg.DownloaderBin, "error", err)
		os.Exit(1)
	}

	repo, err := history.NewFileRepo(cfg.HistoryFile, logger)
	if err != nil {
		slog.Error("failed to initialize history repository", "error", err)
		os.Exit(1)
	}

	svc := service.NewDownloadService(repo, client, console.SurveyConfirmer{}, cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(cfg, svc, logger)
	if err := root.ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
