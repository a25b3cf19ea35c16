// Package file stores reviews as a single JSON snapshot on local disk.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"shopfront-api/internal/core/domain"

	"github.com/rs/zerolog"
)

const defaultFileMode os.FileMode = 0o644

// ReviewStore implements ports.ReviewRepository on a JSON file. Every
// append rewrites the whole snapshot; mu serializes the read-modify-write
// cycle within the process.
type ReviewStore struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

// NewReviewStore creates a store backed by path. The file need not exist.
func NewReviewStore(path string, log zerolog.Logger) *ReviewStore {
	return &ReviewStore{
		path: path,
		log:  log.With().Str("component", "review_file_store").Logger(),
	}
}

// Fetch returns the reviews stored for productID. A snapshot that cannot
// be read or parsed is logged and treated as empty.
func (s *ReviewStore) Fetch(_ context.Context, productID string) ([]domain.ReviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.load()
	if err != nil {
		s.log.Error().Err(err).Str("path", s.path).Msg("review snapshot unreadable, serving empty list")
		return []domain.ReviewRecord{}, nil
	}
	return snapshot.Reviews(productID), nil
}

// Append adds record to productID and persists the snapshot atomically.
// It refuses to overwrite a snapshot it could not parse.
func (s *ReviewStore) Append(_ context.Context, productID string, record domain.ReviewRecord) (domain.ReviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.load()
	if err != nil {
		return domain.ReviewRecord{}, err
	}

	snapshot[productID] = append(snapshot.Reviews(productID), record)

	if err := s.write(snapshot); err != nil {
		return domain.ReviewRecord{}, err
	}

	s.log.Debug().Str("product_id", productID).Int("count", len(snapshot[productID])).Msg("review appended")
	return record, nil
}

func (s *ReviewStore) load() (domain.ReviewSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.ReviewSnapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading review snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.ReviewSnapshot{}, nil
	}

	var snapshot domain.ReviewSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing review snapshot: %w", err)
	}
	if snapshot == nil {
		snapshot = domain.ReviewSnapshot{}
	}
	return snapshot, nil
}

// write replaces the snapshot via a temp file in the same directory so
// readers never observe a partial document.
func (s *ReviewStore) write(snapshot domain.ReviewSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding review snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := tmp.Chmod(s.snapshotMode()); err != nil {
		tmp.Close()
		return fmt.Errorf("setting snapshot mode: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp snapshot: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing review snapshot: %w", err)
	}
	return nil
}

// snapshotMode keeps the permissions of an existing snapshot; new files get 0644.
func (s *ReviewStore) snapshotMode() os.FileMode {
	if info, err := os.Stat(s.path); err == nil {
		return info.Mode().Perm()
	}
	return defaultFileMode
}
