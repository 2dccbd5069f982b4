package ytdlp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/ytmp3-cli/ytmp3/internal/domain"
	errpkg "github.com/ytmp3-cli/ytmp3/internal/errors"
	"golang.org/x/sync/errgroup"
)

// Client defines the operations the tool needs from the external downloader.
type Client interface {
	Download(ctx context.Context, url string, opts domain.DownloadOptions) error
	ResolvePlaylist(ctx context.Context, url string) ([]domain.PlaylistItem, error)
}

// CommandClient implements Client by invoking the downloader binary.
type CommandClient struct {
	binary string
	ffmpeg string

	// Terminal streams handed to download subprocesses so their progress
	// output is visible live.
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	logger *slog.Logger
}

// NewCommandClient creates a CommandClient for the given downloader binary.
// ffmpegBin may be empty; when set it is passed through as the transcoder
// location.
func NewCommandClient(binary, ffmpegBin string, logger *slog.Logger) *CommandClient {
	return &CommandClient{
		binary: binary,
		ffmpeg: ffmpegBin,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger,
	}
}

// Check verifies the downloader binary is available in PATH.
func (c *CommandClient) Check() error {
	if _, err := exec.LookPath(c.binary); err != nil {
		return fmt.Errorf("%w: %q: %v", errpkg.ErrDownloaderNotFound, c.binary, err)
	}
	return nil
}

// Download fetches a single URL as MP3 using the output template derived
// from opts. The subprocess inherits the terminal streams and runs until it
// exits or ctx is cancelled.
func (c *CommandClient) Download(ctx context.Context, url string, opts domain.DownloadOptions) error {
	args := downloadArgs(url, opts, c.ffmpeg)

	cmd := exec.CommandContext(ctx, c.binary, args...)
	cmd.Stdin = c.stdin
	cmd.Stdout = c.stdout
	cmd.Stderr = c.stderr

	c.logger.Debug("invoking downloader", "binary", c.binary, "args", args)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("downloader failed: %w", err)
	}
	return nil
}

func downloadArgs(url string, opts domain.DownloadOptions, ffmpegBin string) []string {
	args := []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--restrict-filenames",
		"--output", OutputTemplate(opts),
	}

	if opts.SkipExisting {
		args = append(args, "--no-overwrites")
	}
	if ffmpegBin != "" {
		args = append(args, "--ffmpeg-location", ffmpegBin)
	}

	return append(args, url)
}

// ResolvePlaylist lists the member videos of a playlist without downloading
// anything. The downloader prints one JSON object per line in flat-playlist
// mode; stdout is decoded as it streams while stderr is captured for error
// reporting.
func (c *CommandClient) ResolvePlaylist(ctx context.Context, url string) ([]domain.PlaylistItem, error) {
	args := []string{"--flat-playlist", "-j", "--no-warnings", url}

	cmd := exec.CommandContext(ctx, c.binary, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe: %w", err)
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stderr pipe: %w", err)
	}

	c.logger.Debug("resolving playlist", "binary", c.binary, "args", args)

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("downloader failed: %w", err)
	}

	var (
		items  []domain.PlaylistItem
		stderr bytes.Buffer
		g      errgroup.Group
	)

	g.Go(func() error {
		var parseErr error
		items, parseErr = parsePlaylist(stdout)
		if parseErr != nil {
			// Drain so the subprocess never blocks on a full pipe.
			io.Copy(io.Discard, stdout)
		}
		return parseErr
	})
	g.Go(func() error {
		_, copyErr := io.Copy(&stderr, stderrPipe)
		return copyErr
	})

	parseErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return nil, fmt.Errorf("downloader failed: %w: %s", err, stderr.String())
	}
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse downloader output: %w: %s", parseErr, stderr.String())
	}
	return items, nil
}
