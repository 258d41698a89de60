package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GCPStore persists the document registry as a single JSON object in a
// Google Cloud Storage bucket. It implements DocumentStore.
type GCPStore struct {
	bucketName  string
	registryKey string
	client      *storage.Client
	mutex       sync.RWMutex
	documents   []Document
	logger      *slog.Logger
}

// NewGCPStore creates a GCS-backed document store. A missing registry
// object is initialized with the seed documents so the demo behaves the
// same on every backend.
func NewGCPStore(ctx context.Context, bucketName, registryKey string, logger *slog.Logger, opts ...option.ClientOption) (*GCPStore, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCP storage client: %w", err)
	}

	s := &GCPStore{
		bucketName:  bucketName,
		registryKey: registryKey,
		client:      client,
		logger:      logger,
	}

	if err := s.ensureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}

	if err := s.loadRegistry(ctx); err != nil {
		if err != storage.ErrObjectNotExist {
			return nil, fmt.Errorf("failed to load registry: %w", err)
		}
		s.documents = SeedDocuments()
		if err := s.saveRegistry(ctx); err != nil {
			return nil, fmt.Errorf("failed to save initial registry: %w", err)
		}
	}

	return s, nil
}

func (s *GCPStore) ensureBucketExists(ctx context.Context) error {
	bucket := s.client.Bucket(s.bucketName)
	_, err := bucket.Attrs(ctx)
	if err == storage.ErrBucketNotExist {
		if err := bucket.Create(ctx, "", nil); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	} else if err != nil {
		return fmt.Errorf("failed to check if bucket exists: %w", err)
	}
	return nil
}

func (s *GCPStore) loadRegistry(ctx context.Context) error {
	reader, err := s.client.Bucket(s.bucketName).Object(s.registryKey).NewReader(ctx)
	if err != nil {
		return err
	}
	defer reader.Close()

	var docs []Document
	if err := json.NewDecoder(reader).Decode(&docs); err != nil {
		return fmt.Errorf("failed to parse registry: %w", err)
	}

	s.mutex.Lock()
	s.documents = docs
	s.mutex.Unlock()
	return nil
}

func (s *GCPStore) saveRegistry(ctx context.Context) error {
	s.mutex.RLock()
	docs := make([]Document, len(s.documents))
	copy(docs, s.documents)
	s.mutex.RUnlock()

	writer := s.client.Bucket(s.bucketName).Object(s.registryKey).NewWriter(ctx)
	if err := json.NewEncoder(writer).Encode(docs); err != nil {
		writer.Close()
		return fmt.Errorf("failed to encode registry: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

func (s *GCPStore) List(_ context.Context) ([]Document, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	docs := make([]Document, len(s.documents))
	copy(docs, s.documents)
	return docs, nil
}

func (s *GCPStore) Store(ctx context.Context, doc Document) error {
	s.mutex.Lock()
	replaced := false
	for i := range s.documents {
		if s.documents[i].ID == doc.ID {
			s.documents[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		s.documents = append(s.documents, doc)
	}
	s.mutex.Unlock()

	if err := s.saveRegistry(ctx); err != nil {
		return fmt.Errorf("failed to persist document: %w", err)
	}
	s.logger.Info("Stored knowledge document", "id", doc.ID, "filename", doc.Filename)
	return nil
}

func (s *GCPStore) Delete(ctx context.Context, ids []string) (int, error) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mutex.Lock()
	deleted := 0
	kept := s.documents[:0]
	for _, doc := range s.documents {
		if drop[doc.ID] {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.documents = kept
	s.mutex.Unlock()

	if deleted > 0 {
		if err := s.saveRegistry(ctx); err != nil {
			return deleted, fmt.Errorf("failed to persist deletion: %w", err)
		}
	}
	return deleted, nil
}
