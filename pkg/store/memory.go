package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"

	"github.com/xhad/askdocs/internal/models"
)

type MemoryStoreConfig struct {
	Collection string
}

// MemoryStore is the process-lifetime similarity index. Every ingestion
// replaces the whole index; nothing is persisted across restarts.
type MemoryStore struct {
	config MemoryStoreConfig

	mu         sync.RWMutex
	collection *chromem.Collection
}

func NewWithConfig(config MemoryStoreConfig) *MemoryStore {
	if config.Collection == "" {
		config.Collection = "chunks"
	}

	return &MemoryStore{config: config}
}

// embeddings are computed upstream and attached to every document, so the
// collection's own embedding hook must never run.
func rejectEmbedding(ctx context.Context, text string) ([]float32, error) {
	return nil, fmt.Errorf("store: embedding requested for %q, but embeddings are precomputed", text)
}

// Replace builds a complete new index from the (chunk, vector) pairs and
// swaps it in. The swap happens only after the build fully succeeds, so
// readers see either the old index or the new one, never a partial rebuild.
func (s *MemoryStore) Replace(ctx context.Context, chunks []models.Chunk, embeddings [][]float32) error {
	if len(chunks) != len(embeddings) {
		return fmt.Errorf("chunk/embedding count mismatch: %d vs %d", len(chunks), len(embeddings))
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(s.config.Collection, nil, rejectEmbedding)
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	if len(chunks) > 0 {
		documents := make([]chromem.Document, len(chunks))
		for i, chunk := range chunks {
			documents[i] = chromem.Document{
				ID:        strconv.Itoa(chunk.Ordinal),
				Content:   chunk.Text,
				Embedding: embeddings[i],
				Metadata: map[string]string{
					"source":  chunk.Source,
					"ordinal": strconv.Itoa(chunk.Ordinal),
				},
			}
		}

		// Sequential insert; the pipeline performs no internal parallelism.
		if err := collection.AddDocuments(ctx, documents, 1); err != nil {
			return fmt.Errorf("failed to index chunks: %w", err)
		}
	}

	s.mu.Lock()
	s.collection = collection
	s.mu.Unlock()

	return nil
}

// Search returns the top-k chunks by similarity to the query embedding,
// most similar first. k is clamped to the index size.
func (s *MemoryStore) Search(ctx context.Context, embedding []float32, k int) ([]models.Chunk, error) {
	s.mu.RLock()
	collection := s.collection
	s.mu.RUnlock()

	if collection == nil {
		return nil, fmt.Errorf("no index has been built yet")
	}

	if count := collection.Count(); k > count {
		k = count
	}
	if k == 0 {
		return nil, nil
	}

	results, err := collection.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}

	chunks := make([]models.Chunk, 0, len(results))
	for _, result := range results {
		ordinal, _ := strconv.Atoi(result.Metadata["ordinal"])
		chunks = append(chunks, models.Chunk{
			Source:  result.Metadata["source"],
			Text:    result.Content,
			Ordinal: ordinal,
		})
	}

	return chunks, nil
}

// Ready reports whether any ingestion has published an index. An index with
// zero chunks is still ready.
func (s *MemoryStore) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collection != nil
}

// Count returns the number of chunks in the active index.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.collection == nil {
		return 0
	}

	return s.collection.Count()
}
