package processor_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xhad/askdocs/internal/models"
	"github.com/xhad/askdocs/pkg/processor"
)

func TestProcessSplitsAndInheritsSource(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    64,
		ChunkOverlap: 8,
	})

	documents := []models.Document{
		{
			Source: "report.pdf",
			Content: "This is a test document. It contains several sentences spread over " +
				"enough words that the splitter has to produce more than one chunk of output.",
		},
	}

	chunks, err := p.Process(documents)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for _, chunk := range chunks {
		assert.Equal(t, "report.pdf", chunk.Source)
		assert.NotEmpty(t, chunk.Text)
	}
}

func TestChunksAreLengthBounded(t *testing.T) {
	const size = 50
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    size,
		ChunkOverlap: 10,
	})

	var words []string
	for i := 0; i < 80; i++ {
		words = append(words, fmt.Sprintf("word%02d", i))
	}

	chunks, err := p.Process([]models.Document{
		{Source: "words.txt", Content: strings.Join(words, " ")},
	})
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk.Text), size)
	}
}

func TestAdjacentChunksOverlap(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    40,
		ChunkOverlap: 14,
	})

	var words []string
	for i := 0; i < 40; i++ {
		words = append(words, fmt.Sprintf("token%02d", i))
	}

	chunks, err := p.Process([]models.Document{
		{Source: "overlap.txt", Content: strings.Join(words, " ")},
	})
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	// Each chunk starts with content the previous one ended with.
	for i := 1; i < len(chunks); i++ {
		first := strings.Fields(chunks[i].Text)[0]
		assert.Contains(t, chunks[i-1].Text, first,
			"chunk %d should share a leading span with chunk %d", i, i-1)
	}
}

func TestChunkOrderFollowsDocuments(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:    32,
		ChunkOverlap: 4,
	})

	documents := []models.Document{
		{Source: "a.txt", Content: "alpha alpha alpha alpha alpha alpha alpha alpha alpha alpha"},
		{Source: "b.txt", Content: "beta beta beta beta beta beta beta beta beta beta beta beta"},
	}

	chunks, err := p.Process(documents)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	lastASeen := -1
	firstBSeen := len(chunks)
	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Ordinal)
		if chunk.Source == "a.txt" {
			lastASeen = i
		} else if i < firstBSeen {
			firstBSeen = i
		}
	}

	assert.Less(t, lastASeen, firstBSeen, "all a.txt chunks must come before b.txt chunks")
}

func TestEmptyDocumentYieldsNoChunks(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	chunks, err := p.Process([]models.Document{
		{Source: "empty.txt", Content: ""},
	})
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
