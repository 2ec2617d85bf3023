// Package storage provides blob storage operations with an Azure Blob Storage implementation.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/planforge/planforge/pkg/lifecycle"
)

// System manages blob storage operations across named containers and
// coordinates container initialization with the application lifecycle.
// Uploads overwrite existing blobs at the same key, so deterministic
// keys yield last-writer-wins semantics under retry.
type System interface {
	// Start registers a startup hook that initializes all configured containers.
	Start(lc *lifecycle.Coordinator) error
	// Upload streams data to a blob at the given container and key with the
	// specified content type, replacing any existing blob at that key.
	Upload(ctx context.Context, container, key string, reader io.Reader, contentType string) error
	// Download returns a stream for the blob at the given container and key.
	// The caller must close the reader. Returns ErrNotFound if the blob does not exist.
	Download(ctx context.Context, container, key string) (io.ReadCloser, error)
	// Delete removes the blob at the given container and key.
	// Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, container, key string) error
	// Exists reports whether a blob exists at the given container and key.
	Exists(ctx context.Context, container, key string) (bool, error)
	// PublicURL returns the externally fetchable URL for a blob.
	PublicURL(container, key string) (string, error)
}

type azure struct {
	client     *azblob.Client
	containers []string
	logger     *slog.Logger
}

// New creates a storage system from the given configuration. It prefers the
// connection string when present, otherwise authenticates against the account
// URL with the default Azure credential chain. No connection is established
// until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	return &azure{
		client:     client,
		containers: cfg.Containers(),
		logger:     logger.With("system", "storage"),
	}, nil
}

func newClient(cfg *Config) (*azblob.Client, error) {
	if cfg.ConnectionString != "" {
		return azblob.NewClientFromConnectionString(cfg.ConnectionString, nil)
	}

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("default azure credential: %w", err)
	}

	return azblob.NewClient(cfg.AccountURL, cred, nil)
}

func (a *azure) Start(lc *lifecycle.Coordinator) error {
	a.logger.Info("starting storage system")

	lc.OnStartup(func() {
		for _, container := range a.containers {
			_, err := a.client.CreateContainer(lc.Context(), container, nil)
			if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
				a.logger.Error("storage container initialization failed",
					"container", container,
					"error", err,
				)
				return
			}
		}

		a.logger.Info("storage containers ready", "containers", a.containers)
	})

	return nil
}

func (a *azure) Upload(ctx context.Context, container, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	opts := &azblob.UploadStreamOptions{
		HTTPHeaders: &blob.HTTPHeaders{
			BlobContentType: &contentType,
		},
	}

	_, err := a.client.UploadStream(ctx, container, key, reader, opts)
	if err != nil {
		return fmt.Errorf("upload blob %s/%s: %w", container, key, err)
	}

	return nil
}

func (a *azure) Download(ctx context.Context, container, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := a.client.DownloadStream(ctx, container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("download blob %s/%s: %w", container, key, err)
	}

	return resp.Body, nil
}

func (a *azure) Delete(ctx context.Context, container, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := a.client.DeleteBlob(ctx, container, key, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s/%s: %w", container, key, err)
	}

	return nil
}

func (a *azure) Exists(ctx context.Context, container, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	blobClient := a.client.
		ServiceClient().
		NewContainerClient(container).
		NewBlobClient(key)

	_, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s/%s: %w", container, key, err)
	}

	return true, nil
}

func (a *azure) PublicURL(container, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}

	return a.client.
		ServiceClient().
		NewContainerClient(container).
		NewBlobClient(key).
		URL(), nil
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
