package domain

// PlaylistItem is one member of a resolved playlist. The downloader's flat
// listing mode emits one of these per line as a JSON object.
type PlaylistItem struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
}
