package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// Store writes documents to a directory tree. Intended for development.
type Store struct {
	root    string
	baseURL string
	clock   *blobstore.Clock
	log     *slog.Logger
}

// New creates a filesystem store rooted at cfg.Root.
func New(cfg config.LocalConfig, logger *slog.Logger) (*Store, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{
		root:    root,
		baseURL: cfg.BaseURL,
		clock:   blobstore.NewClock(),
		log:     logger.With("adapter", "local_store"),
	}, nil
}

// Root returns the absolute directory documents are written under.
func (s *Store) Root() string { return s.root }

// Store writes payload under namespace and returns its URL below baseURL.
func (s *Store) Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("local.Store: %w: %w", domain.ErrStoreUnavailable, err)
	}

	key := s.clock.Key(namespace, suggestedName)
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if !isWithin(s.root, full) {
		return "", fmt.Errorf("local.Store: %w: key %q escapes root", domain.ErrStoreUnavailable, key)
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", fmt.Errorf("local.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	// O_EXCL: never overwrite an existing document.
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("local.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	if _, err := f.Write(payload); err != nil {
		f.Close()
		_ = os.Remove(full)
		return "", fmt.Errorf("local.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(full)
		return "", fmt.Errorf("local.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	s.log.DebugContext(ctx, "document written", slog.String("key", key), slog.Int("bytes", len(payload)))

	return blobstore.JoinURL(s.baseURL, key), nil
}

// Ping checks that the root directory still exists.
func (s *Store) Ping(_ context.Context) error {
	fi, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("local.Ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("local.Ping: %w: %s is not a directory", domain.ErrStoreUnavailable, s.root)
	}
	return nil
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
