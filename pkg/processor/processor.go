package processor

import (
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"

	"github.com/xhad/askdocs/internal/models"
)

type ProcessorConfig struct {
	ChunkSize    int
	ChunkOverlap int
}

// Processor splits Documents into overlapping Chunks. Splitting is
// hierarchical: paragraphs first, then lines, words, and finally raw cuts,
// so boundaries avoid mid-sentence breaks where possible.
type Processor struct {
	config   ProcessorConfig
	splitter textsplitter.RecursiveCharacter
}

func NewWithConfig(config ProcessorConfig) Processor {
	if config.ChunkSize == 0 {
		config.ChunkSize = 256
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = 20
	}

	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithChunkSize(config.ChunkSize),
		textsplitter.WithChunkOverlap(config.ChunkOverlap),
	)

	return Processor{
		config:   config,
		splitter: splitter,
	}
}

// Process returns a flat chunk sequence in document and in-document order.
// Each chunk inherits its document's source.
func (p Processor) Process(docs []models.Document) ([]models.Chunk, error) {
	var chunks []models.Chunk

	ordinal := 0
	for _, doc := range docs {
		parts, err := p.splitter.SplitText(doc.Content)
		if err != nil {
			return nil, fmt.Errorf("failed to split %s: %w", doc.Source, err)
		}

		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}

			chunks = append(chunks, models.Chunk{
				Source:  doc.Source,
				Text:    part,
				Ordinal: ordinal,
			})
			ordinal++
		}
	}

	return chunks, nil
}
