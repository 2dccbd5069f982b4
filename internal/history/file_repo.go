package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ytmp3-cli/ytmp3/internal/domain"
)

// FileRepo keeps the download history in memory and mirrors it to a JSON
// file. The file is rewritten in full after every append; there is no
// cross-process locking, the tool is meant to run one instance at a time.
type FileRepo struct {
	mu      sync.RWMutex
	entries []domain.HistoryEntry
	file    string
	logger  *slog.Logger
}

// NewFileRepo creates a FileRepo backed by filePath and loads existing
// entries from it. A missing or unparseable file yields an empty history.
func NewFileRepo(filePath string, logger *slog.Logger) (*FileRepo, error) {
	repo := &FileRepo{
		file:   filepath.Clean(filePath),
		logger: logger,
	}

	if err := repo.restore(); err != nil {
		return nil, fmt.Errorf("failed to load history from file: %w", err)
	}

	logger.Info("history repository initialized", "file_path", repo.file, "entries_count", len(repo.entries))
	return repo, nil
}

func (r *FileRepo) restore() error {
	if isFileNotExist(r.file) {
		r.logger.Info("history file does not exist, starting with empty history", "file_path", r.file)
		return nil
	}

	data, err := os.ReadFile(r.file)
	if err != nil {
		return fmt.Errorf("failed to read history file: %w", err)
	}

	if len(data) == 0 {
		r.logger.Warn("history file is empty")
		return nil
	}

	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt history must not take the tool down; the worst case is
		// re-downloading something we already have.
		r.logger.Warn("history file is corrupt, starting with empty history", "file_path", r.file, "error", err)
		return nil
	}

	r.entries = entries
	r.logger.Debug("history loaded from file", "entries_count", len(entries), "file_path", r.file)
	return nil
}

func isFileNotExist(filePath string) bool {
	_, err := os.Stat(filePath)
	return os.IsNotExist(err)
}

func (r *FileRepo) persist() error {
	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	tempFile := r.file + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, r.file); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	r.logger.Debug("history saved to file", "entries_count", len(r.entries), "file_path", r.file)
	return nil
}

// Entries returns a copy of all history entries in insertion order.
func (r *FileRepo) Entries() []domain.HistoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := make([]domain.HistoryEntry, len(r.entries))
	copy(entries, r.entries)
	return entries
}

// Contains reports whether url was recorded before.
func (r *FileRepo) Contains(url string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.contains(url)
}

func (r *FileRepo) contains(url string) bool {
	for _, entry := range r.entries {
		if entry.URL == url {
			return true
		}
	}
	return false
}

// Append records url with the current timestamp and rewrites the history
// file. Appending a URL that is already recorded is a no-op.
func (r *FileRepo) Append(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.contains(url) {
		r.logger.Debug("url already recorded in history", "url", url)
		return nil
	}

	r.entries = append(r.entries, domain.HistoryEntry{
		URL:          url,
		DownloadedAt: time.Now().UTC(),
	})

	if err := r.persist(); err != nil {
		return fmt.Errorf("failed to save history after append: %w", err)
	}

	r.logger.Debug("url recorded in history", "url", url)
	return nil
}
