package azure

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"

	"github.com/heartmarshall/equitybridge-backend/internal/adapter/blobstore"
	"github.com/heartmarshall/equitybridge-backend/internal/config"
	"github.com/heartmarshall/equitybridge-backend/internal/domain"
)

// Store writes documents as block blobs into one container.
type Store struct {
	container *container.Client
	clock     *blobstore.Clock
	log       *slog.Logger
}

// New connects to the storage account described by cfg.ConnectionString.
func New(cfg config.AzureConfig, logger *slog.Logger) (*Store, error) {
	client, err := azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("azure blob client: %w", err)
	}
	return &Store{
		container: client.ServiceClient().NewContainerClient(cfg.Container),
		clock:     blobstore.NewClock(),
		log:       logger.With("adapter", "azure_blob"),
	}, nil
}

// Store uploads payload under namespace and returns the blob URL.
func (s *Store) Store(ctx context.Context, payload []byte, suggestedName, namespace string) (string, error) {
	key := s.clock.Key(namespace, suggestedName)
	bb := s.container.NewBlockBlobClient(key)

	_, err := bb.UploadBuffer(ctx, payload, &blockblob.UploadBufferOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: to.Ptr(blobstore.ContentType(payload, suggestedName)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("azure.Store %s: %w: %w", key, domain.ErrStoreUnavailable, err)
	}

	s.log.DebugContext(ctx, "blob stored", slog.String("key", key), slog.Int("bytes", len(payload)))

	return bb.URL(), nil
}

// Ping checks that the container exists.
func (s *Store) Ping(ctx context.Context) error {
	if _, err := s.container.GetProperties(ctx, nil); err != nil {
		return fmt.Errorf("azure.Ping: %w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}
