package ytdlp

import (
	"encoding/json"
	"io"

	"github.com/ytmp3-cli/ytmp3/internal/domain"
)

const watchURLPrefix = "https://www.youtube.com/watch?v="

// parsePlaylist decodes the downloader's flat-playlist output: one JSON
// object per line, one per playlist member. Entries without a url field are
// reconstructed from their video id.
func parsePlaylist(r io.Reader) ([]domain.PlaylistItem, error) {
	var items []domain.PlaylistItem

	dec := json.NewDecoder(r)
	for {
		var item domain.PlaylistItem
		if err := dec.Decode(&item); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		if item.URL == "" && item.ID != "" {
			item.URL = watchURLPrefix + item.ID
		}
		if item.URL == "" {
			continue
		}

		items = append(items, item)
	}

	return items, nil
}
