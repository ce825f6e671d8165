package types

import (
	"context"
	"io"

	"github.com/xhad/askdocs/internal/models"
)

// Core interfaces

// Upload is one file received over the network boundary, identified by its
// original name. The extension of Name selects the parsing strategy.
type Upload struct {
	Name string
	Body io.Reader
}

type Loader interface {
	LoadFiles(ctx context.Context, uploads []Upload) ([]models.Document, error)
}

type Fetcher interface {
	FetchURLs(ctx context.Context, urls []string) ([]models.Document, error)
}

type Processor interface {
	Process(docs []models.Document) ([]models.Chunk, error)
}

type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// VectorStore is the process-lifetime similarity index. Replace publishes a
// fully built index; readers never observe a partial rebuild.
type VectorStore interface {
	Replace(ctx context.Context, chunks []models.Chunk, embeddings [][]float32) error
	Search(ctx context.Context, embedding []float32, k int) ([]models.Chunk, error)
	Ready() bool
	Count() int
}

type ChatEngine interface {
	Answer(ctx context.Context, query string, chunks []models.Chunk) (models.Answer, error)
}

// Pipeline is the surface the HTTP server talks to.
type Pipeline interface {
	IngestFiles(ctx context.Context, uploads []Upload) (int, error)
	IngestURLs(ctx context.Context, urls []string) (int, error)
	Answer(ctx context.Context, query string) (models.Answer, error)
}
