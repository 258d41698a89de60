package knowledge

import (
	"context"
	"sync"
)

// DocumentStore holds the knowledge-base documents. Injected so tests
// can substitute a fake and so persistent backends can be swapped in.
type DocumentStore interface {
	// List returns all documents.
	List(ctx context.Context) ([]Document, error)

	// Store adds or replaces a document by ID.
	Store(ctx context.Context, doc Document) error

	// Delete removes the documents with the given IDs and returns how
	// many were actually removed.
	Delete(ctx context.Context, ids []string) (int, error)
}

// MemoryStore is the default in-process document store, seeded with the
// demo documents. State does not survive a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	documents []Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{documents: SeedDocuments()}
}

func (s *MemoryStore) List(_ context.Context) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]Document, len(s.documents))
	copy(docs, s.documents)
	return docs, nil
}

func (s *MemoryStore) Store(_ context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].ID == doc.ID {
			s.documents[i] = doc
			return nil
		}
	}
	s.documents = append(s.documents, doc)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

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
	return deleted, nil
}
