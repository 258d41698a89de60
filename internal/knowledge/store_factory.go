package knowledge

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
)

// StorageType selects the document store backend.
type StorageType string

const (
	// MemoryStorage keeps documents in process memory (demo mode).
	MemoryStorage StorageType = "memory"
	// GCPStorage persists documents in Google Cloud Storage.
	GCPStorage StorageType = "gcp"
)

// StorageConfig contains configuration for document store backends.
type StorageConfig struct {
	Type       StorageType
	GCPBucket  string
	GCPProject string
	GCPKeyFile string
}

// NewDocumentStore creates a document store from configuration.
func NewDocumentStore(ctx context.Context, config StorageConfig, logger *slog.Logger) (DocumentStore, error) {
	switch config.Type {
	case MemoryStorage, "":
		return NewMemoryStore(), nil
	case GCPStorage:
		if config.GCPBucket == "" {
			return nil, fmt.Errorf("GCP_STORAGE_BUCKET must be set when using GCP storage")
		}
		var opts []option.ClientOption
		if config.GCPKeyFile != "" {
			opts = append(opts, option.WithCredentialsFile(config.GCPKeyFile))
		}
		return NewGCPStore(ctx, config.GCPBucket, "documents.json", logger, opts...)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", config.Type)
	}
}
