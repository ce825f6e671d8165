package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/xhad/askdocs/internal/models"
	"github.com/xhad/askdocs/internal/types"
)

// ErrNotReady is returned when a question arrives before any ingestion has
// published an index. The language model is never contacted in that case.
var ErrNotReady = errors.New("please upload and process your data first (no index has been built yet)")

type PipelineConfig struct {
	// TopK is how many chunks are retrieved per question.
	TopK int
	// ExternalTimeout bounds each embedding and chat call.
	ExternalTimeout time.Duration
}

type Deps struct {
	Loader    types.Loader
	Fetcher   types.Fetcher
	Processor types.Processor
	Embedder  types.Embedder
	Store     types.VectorStore
	Engine    types.ChatEngine
}

// Pipeline wires loading, chunking, embedding, indexing and answering into
// the three operations the server exposes. Each ingestion fully replaces
// the index; the most recently completed ingestion wins.
type Pipeline struct {
	config PipelineConfig
	deps   Deps
}

func NewWithConfig(config PipelineConfig, deps Deps) *Pipeline {
	if config.TopK == 0 {
		config.TopK = 10
	}
	if config.ExternalTimeout == 0 {
		config.ExternalTimeout = 120 * time.Second
	}

	return &Pipeline{
		config: config,
		deps:   deps,
	}
}

// IngestFiles parses the uploads, chunks them, embeds every chunk and
// replaces the index. Returns the number of chunks indexed.
func (p *Pipeline) IngestFiles(ctx context.Context, uploads []types.Upload) (int, error) {
	docs, err := p.deps.Loader.LoadFiles(ctx, uploads)
	if err != nil {
		return 0, err
	}

	return p.index(ctx, docs)
}

// IngestURLs fetches up to the configured number of URLs and indexes their
// content the same way file uploads are indexed.
func (p *Pipeline) IngestURLs(ctx context.Context, urls []string) (int, error) {
	docs, err := p.deps.Fetcher.FetchURLs(ctx, urls)
	if err != nil {
		return 0, err
	}

	return p.index(ctx, docs)
}

func (p *Pipeline) index(ctx context.Context, docs []models.Document) (int, error) {
	chunks, err := p.deps.Processor.Process(docs)
	if err != nil {
		return 0, fmt.Errorf("failed to chunk documents: %w", err)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embedCtx, cancel := context.WithTimeout(ctx, p.config.ExternalTimeout)
	defer cancel()

	embeddings, err := p.deps.Embedder.EmbedTexts(embedCtx, texts)
	if err != nil {
		return 0, fmt.Errorf("failed to embed chunks: %w", err)
	}

	if err := p.deps.Store.Replace(ctx, chunks, embeddings); err != nil {
		return 0, fmt.Errorf("failed to build index: %w", err)
	}

	slog.Info("ingestion complete", "documents", len(docs), "chunks", len(chunks))
	return len(chunks), nil
}

// Answer embeds the question, retrieves the top-K chunks and asks the chat
// engine for a sourced answer. Fails fast with ErrNotReady when no index
// exists.
func (p *Pipeline) Answer(ctx context.Context, query string) (models.Answer, error) {
	if !p.deps.Store.Ready() {
		return models.Answer{}, ErrNotReady
	}

	embedCtx, cancel := context.WithTimeout(ctx, p.config.ExternalTimeout)
	defer cancel()

	embedding, err := p.deps.Embedder.EmbedQuery(embedCtx, query)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to embed query: %w", err)
	}

	chunks, err := p.deps.Store.Search(ctx, embedding, p.config.TopK)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to search index: %w", err)
	}

	chatCtx, cancel := context.WithTimeout(ctx, p.config.ExternalTimeout)
	defer cancel()

	answer, err := p.deps.Engine.Answer(chatCtx, query, chunks)
	if err != nil {
		return models.Answer{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	return answer, nil
}
