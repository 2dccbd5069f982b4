package history

import (
	"context"

	"github.com/ytmp3-cli/ytmp3/internal/domain"
)

// Repo defines the interface for download history operations.
type Repo interface {
	Entries() []domain.HistoryEntry
	Contains(url string) bool
	Append(ctx context.Context, url string) error
}
