package ytdlp

import (
	"path/filepath"

	"github.com/ytmp3-cli/ytmp3/internal/domain"
)

// OutputTemplate builds the downloader output path template for the given
// options. Precedence:
//
//   - playlist mode, custom name:  {output}/{name}/{index} - {title}.{ext}
//   - playlist mode, no name:      {output}/{playlist title}/{index} - {title}.{ext}
//   - single mode, custom name:    {output}/{name}.{ext}
//   - single mode, no name:        {output}/{title}.{ext}
func OutputTemplate(opts domain.DownloadOptions) string {
	switch {
	case opts.IsPlaylist && opts.Name != "":
		return filepath.Join(opts.OutputDir, opts.Name, "%(playlist_index)s - %(title)s.%(ext)s")
	case opts.IsPlaylist:
		return filepath.Join(opts.OutputDir, "%(playlist_title)s", "%(playlist_index)s - %(title)s.%(ext)s")
	case opts.Name != "":
		return filepath.Join(opts.OutputDir, opts.Name+".%(ext)s")
	default:
		return filepath.Join(opts.OutputDir, "%(title)s.%(ext)s")
	}
}
