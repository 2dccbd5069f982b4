package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/ytmp3-cli/ytmp3/internal/browser"
	"github.com/ytmp3-cli/ytmp3/internal/config"
	"github.com/ytmp3-cli/ytmp3/internal/console"
	"github.com/ytmp3-cli/ytmp3/internal/domain"
	errpkg "github.com/ytmp3-cli/ytmp3/internal/errors"
	"github.com/ytmp3-cli/ytmp3/internal/history"
)

// Downloader is the part of the downloader client the service drives.
type Downloader interface {
	Download(ctx context.Context, url string, opts domain.DownloadOptions) error
	ResolvePlaylist(ctx context.Context, url string) ([]domain.PlaylistItem, error)
}

// OpenFolderFunc reveals a directory in the platform file browser.
type OpenFolderFunc func(path string) error

// DownloadService orchestrates single and playlist downloads against the
// history repository.
type DownloadService struct {
	history    history.Repo
	downloader Downloader
	confirmer  console.Confirmer
	openFolder OpenFolderFunc
	out        io.Writer
	logger     *slog.Logger
	runID      uuid.UUID

	downloadTimeout time.Duration
	resolveTimeout  time.Duration
}

// Option customizes DownloadService creation.
type Option func(*DownloadService)

// WithOpenFolder sets a custom folder opener.
func WithOpenFolder(open OpenFolderFunc) Option {
	return func(s *DownloadService) {
		s.openFolder = open
	}
}

// WithOutput sets the writer for user-facing messages.
func WithOutput(w io.Writer) Option {
	return func(s *DownloadService) {
		s.out = w
	}
}

// NewDownloadService creates a DownloadService. User-facing messages go to
// stdout; each run is tagged with a fresh id in the logs.
func NewDownloadService(
	hist history.Repo,
	downloader Downloader,
	confirmer console.Confirmer,
	cfg *config.Config,
	logger *slog.Logger,
	options ...Option,
) *DownloadService {
	service := &DownloadService{
		history:         hist,
		downloader:      downloader,
		confirmer:       confirmer,
		openFolder:      browser.Open,
		out:             os.Stdout,
		logger:          logger,
		runID:           uuid.New(),
		downloadTimeout: cfg.DownloadTimeout,
		resolveTimeout:  cfg.ResolveTimeout,
	}

	for _, option := range options {
		option(service)
	}

	return service
}

// DownloadSingle downloads one video. A URL already present in history
// triggers an interactive confirmation; declining aborts with no side
// effects. On success the output directory is opened.
func (s *DownloadService) DownloadSingle(ctx context.Context, url string, opts domain.DownloadOptions) error {
	if s.history.Contains(url) {
		answer, err := s.confirmer.Confirm(fmt.Sprintf("%s was already downloaded. Download again?", url))
		if err != nil {
			return fmt.Errorf("confirmation prompt: %w", err)
		}
		if !answer {
			s.logger.Info("download declined by user", "url", url, "run_id", s.runID)
			color.New(color.FgYellow).Fprintln(s.out, "Skipped.")
			return errpkg.ErrAborted
		}
	}

	if err := s.downloadOne(ctx, url, opts); err != nil {
		return err
	}

	color.New(color.FgGreen).Fprintln(s.out, "Download finished.")
	s.openOutputDir(opts.OutputDir)
	return nil
}

// DownloadPlaylist resolves the playlist members, filters out URLs already
// in history and downloads the rest strictly in playlist order. Per-item
// failures are logged and do not stop the batch.
func (s *DownloadService) DownloadPlaylist(ctx context.Context, url string, opts domain.DownloadOptions) (domain.Summary, error) {
	items := s.resolve(ctx, url)
	if len(items) == 0 {
		color.New(color.FgYellow).Fprintln(s.out, "0 videos found in playlist.")
		return domain.Summary{}, nil
	}

	pending := s.filterNew(items)
	if len(pending) == 0 {
		color.New(color.FgGreen).Fprintln(s.out, "All videos from this playlist were already downloaded.")
		return domain.Summary{}, nil
	}

	s.logger.Info("starting playlist batch",
		"playlist_url", url,
		"resolved_count", len(items),
		"pending_count", len(pending),
		"run_id", s.runID,
	)
	color.New(color.FgCyan).Fprintf(s.out, "Downloading %d new video(s)...\n", len(pending))

	itemOpts := opts
	itemOpts.IsPlaylist = true

	summary := domain.Summary{Attempted: len(pending)}
	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		if err := s.downloadOne(ctx, item.URL, itemOpts); err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}

	s.logger.Info("playlist batch finished",
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"run_id", s.runID,
	)
	color.New(color.FgGreen).Fprintf(s.out, "Done: %d downloaded, %d failed.\n", summary.Succeeded, summary.Failed)

	if summary.Succeeded > 0 {
		s.openOutputDir(opts.OutputDir)
	}

	return summary, nil
}

func (s *DownloadService) downloadOne(ctx context.Context, url string, opts domain.DownloadOptions) error {
	itemCtx := ctx
	if s.downloadTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, s.downloadTimeout)
		defer cancel()
	}

	if err := s.downloader.Download(itemCtx, url, opts); err != nil {
		s.logger.Error("download failed", "url", url, "error", err, "run_id", s.runID)
		return err
	}

	s.logger.Info("download completed", "url", url, "run_id", s.runID)

	if err := s.history.Append(ctx, url); err != nil {
		// The file is on disk already; a history write failure only risks a
		// duplicate download later.
		s.logger.Warn("failed to record url in history", "url", url, "error", err)
	}

	return nil
}

func (s *DownloadService) resolve(ctx context.Context, url string) []domain.PlaylistItem {
	resolveCtx := ctx
	if s.resolveTimeout > 0 {
		var cancel context.CancelFunc
		resolveCtx, cancel = context.WithTimeout(ctx, s.resolveTimeout)
		defer cancel()
	}

	items, err := s.downloader.ResolvePlaylist(resolveCtx, url)
	if err != nil {
		s.logger.Error("playlist resolution failed", "playlist_url", url, "error", err, "run_id", s.runID)
		return nil
	}
	return items
}

func (s *DownloadService) filterNew(items []domain.PlaylistItem) []domain.PlaylistItem {
	var pending []domain.PlaylistItem
	for _, item := range items {
		if !s.history.Contains(item.URL) {
			pending = append(pending, item)
		}
	}
	return pending
}

func (s *DownloadService) openOutputDir(dir string) {
	if err := s.openFolder(dir); err != nil {
		s.logger.Warn("failed to open output directory", "path", dir, "error", err)
	}
}
