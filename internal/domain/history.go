package domain

import "time"

// HistoryEntry records a URL that was downloaded successfully.
type HistoryEntry struct {
	URL          string    `json:"url"`
	DownloadedAt time.Time `json:"downloadedAt"`
}
