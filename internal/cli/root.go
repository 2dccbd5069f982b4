// Package cli wires command-line flags to the download service.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ytmp3-cli/ytmp3/internal/config"
	"github.com/ytmp3-cli/ytmp3/internal/domain"
	errpkg "github.com/ytmp3-cli/ytmp3/internal/errors"
	"github.com/ytmp3-cli/ytmp3/internal/validation"
)

// Service is the part of the download service the CLI drives.
type Service interface {
	DownloadSingle(ctx context.Context, url string, opts domain.DownloadOptions) error
	DownloadPlaylist(ctx context.Context, url string, opts domain.DownloadOptions) (domain.Summary, error)
}

// NewRootCmd builds the root command. There are no subcommands; the tool
// takes exactly one positional URL.
func NewRootCmd(cfg *config.Config, svc Service, logger *slog.Logger) *cobra.Command {
	var (
		output       string
		name         string
		playlist     bool
		skipExisting bool
	)

	cmd := &cobra.Command{
		Use:           "ytmp3 <url>",
		Short:         "Download YouTube videos or playlists as MP3 files",
		Long:          "ytmp3 wraps an external media downloader to fetch YouTube videos or playlists as MP3 files, keeping a local history so already fetched URLs are not downloaded twice.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if err := validation.ValidateURL(url); err != nil {
				return err
			}

			outputDir := output
			if outputDir == "" {
				outputDir = cfg.DownloadDir
			}
			if err := os.MkdirAll(outputDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
			}

			opts := domain.DownloadOptions{
				OutputDir:    outputDir,
				Name:         name,
				IsPlaylist:   playlist,
				SkipExisting: skipExisting,
			}

			ctx := cmd.Context()

			// Per-item download failures are reported but do not flip the
			// exit code; only startup problems do.
			if opts.IsPlaylist {
				if _, err := svc.DownloadPlaylist(ctx, url, opts); err != nil {
					logger.Error("playlist download aborted", "url", url, "error", err)
				}
				return nil
			}

			if err := svc.DownloadSingle(ctx, url, opts); err != nil {
				if errors.Is(err, errpkg.ErrAborted) {
					return nil
				}
				logger.Error("download failed", "url", url, "error", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory (defaults to the configured download directory)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Custom name for the output file or playlist folder")
	cmd.Flags().BoolVarP(&playlist, "playlist", "p", false, "Treat the URL as a playlist")
	cmd.Flags().BoolVarP(&skipExisting, "skip-existing", "k", false, "Do not overwrite files that already exist on disk")

	return cmd
}
