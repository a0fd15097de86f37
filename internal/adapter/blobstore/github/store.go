package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v69/github"
	"golang.org/x/oauth2"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// Store commits each document as a new file in a repository branch.
type Store struct {
	client *gh.Client
	owner  string
	repo   string
	branch string
	clock  *blobstore.Clock
	log    *slog.Logger
}

// New creates a token-authenticated GitHub contents store.
// cfg.BaseURL overrides the API root (GitHub Enterprise, tests).
func New(ctx context.Context, cfg config.GitHubConfig, logger *slog.Logger) (*Store, error) {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
	client := gh.NewClient(httpClient)

	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse github base url: %w", err)
		}
		client.BaseURL = base
	}

	return &Store{
		client: client,
		owner:  cfg.Owner,
		repo:   cfg.Repo,
		branch: cfg.Branch,
		clock:  blobstore.NewClock(),
		log:    logger.With("adapter", "github_contents"),
	}, nil
}

// Store commits payload under namespace and returns its raw download URL.
func (s *Store) Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error) {
	key := s.clock.Key(namespace, suggestedName)

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.Ptr("Upload " + key),
		Content: payload,
	}
	if s.branch != "" {
		opts.Branch = gh.Ptr(s.branch)
	}

	res, _, err := s.client.Repositories.CreateFile(ctx, s.owner, s.repo, key, opts)
	if err != nil {
		return "", fmt.Errorf("github.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	s.log.DebugContext(ctx, "file committed", slog.String("path", key), slog.String("sha", res.GetCommit().GetSHA()))

	if u := res.GetContent().GetDownloadURL(); u != "" {
		return u, nil
	}
	return blobstore.JoinURL(fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s", s.owner, s.repo, s.branch), key), nil
}

// Ping checks that the repository is visible to the token.
func (s *Store) Ping(ctx context.Context) error {
	if _, _, err := s.client.Repositories.Get(ctx, s.owner, s.repo); err != nil {
		return fmt.Errorf("github.Ping %s/%s: %w: %w", s.owner, s.repo, domain.ErrStoreUnavailable, err)
	}
	return nil
}
