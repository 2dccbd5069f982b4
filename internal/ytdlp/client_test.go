package ytdlp

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytmp3-cli/ytmp3/internal/domain"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeDownloader builds a CommandClient backed by a shell script standing in
// for the real downloader binary.
func fakeDownloader(t *testing.T, script string) *CommandClient {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake downloader script requires a shell")
	}

	path := filepath.Join(t.TempDir(), "fake-downloader")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755))
	return NewCommandClient(path, "", newTestLogger())
}

func TestDownloadArgs_Fixed(t *testing.T) {
	opts := domain.DownloadOptions{OutputDir: "/music"}
	args := downloadArgs("https://youtu.be/abc", opts, "")

	assert.Equal(t, []string{
		"--extract-audio",
		"--audio-format", "mp3",
		"--restrict-filenames",
		"--output", OutputTemplate(opts),
		"https://youtu.be/abc",
	}, args)
}

func TestDownloadArgs_SkipExisting(t *testing.T) {
	opts := domain.DownloadOptions{OutputDir: "/music", SkipExisting: true}
	args := downloadArgs("https://youtu.be/abc", opts, "")

	assert.Contains(t, args, "--no-overwrites")
	assert.Equal(t, "https://youtu.be/abc", args[len(args)-1])
}

func TestDownloadArgs_FFmpegLocation(t *testing.T) {
	opts := domain.DownloadOptions{OutputDir: "/music"}
	args := downloadArgs("https://youtu.be/abc", opts, "/opt/ffmpeg/bin/ffmpeg")

	require.Contains(t, args, "--ffmpeg-location")
	for i, a := range args {
		if a == "--ffmpeg-location" {
			assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", args[i+1])
		}
	}
}

func TestParsePlaylist(t *testing.T) {
	out := strings.Join([]string{
		`{"id":"aaa","url":"https://www.youtube.com/watch?v=aaa","title":"First"}`,
		`{"id":"bbb","url":"https://www.youtube.com/watch?v=bbb","title":"Second"}`,
	}, "\n")

	items, err := parsePlaylist(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaa", items[0].URL)
	assert.Equal(t, "Second", items[1].Title)
}

func TestParsePlaylist_URLFromID(t *testing.T) {
	items, err := parsePlaylist(strings.NewReader(`{"id":"ccc","title":"No URL field"}`))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://www.youtube.com/watch?v=ccc", items[0].URL)
}

func TestParsePlaylist_Empty(t *testing.T) {
	items, err := parsePlaylist(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestParsePlaylist_MalformedJSON(t *testing.T) {
	_, err := parsePlaylist(strings.NewReader(`{"id":"aaa"` + "\n" + `garbage`))
	assert.Error(t, err)
}

func TestResolvePlaylist_StreamsEntries(t *testing.T) {
	client := fakeDownloader(t, `
echo '{"id":"aaa","url":"https://www.youtube.com/watch?v=aaa","title":"First"}'
echo 'resolver noise' >&2
echo '{"id":"bbb","url":"https://www.youtube.com/watch?v=bbb","title":"Second"}'`)

	items, err := client.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=aaa", items[0].URL)
	assert.Equal(t, "Second", items[1].Title)
}

func TestResolvePlaylist_NonZeroExit(t *testing.T) {
	client := fakeDownloader(t, `
echo 'ERROR: playlist does not exist' >&2
exit 1`)

	_, err := client.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playlist does not exist")
}

func TestResolvePlaylist_MalformedOutputIncludesStderr(t *testing.T) {
	client := fakeDownloader(t, `
echo 'garbage output'
echo 'something went sideways' >&2`)

	_, err := client.ResolvePlaylist(context.Background(), "https://www.youtube.com/playlist?list=PL1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse downloader output")
	assert.Contains(t, err.Error(), "something went sideways")
}
