package llm

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/xhad/askdocs/internal/models"
)

const sourcesMarker = "SOURCES:"

// A bare marker the model left at the end of the answer, with nothing after
// it. Case sensitive and anchored so body text is never touched.
var trailingSourcesMarker = regexp.MustCompile(`\s*SOURCES:$`)

// ParseAnswer splits a raw completion at the final SOURCES: marker into
// answer text and a source reference. The source keeps only its file-name
// component; a marker with no payload is stripped from the answer instead.
func ParseAnswer(raw string) models.Answer {
	answer := raw
	var sources string

	if idx := strings.LastIndex(raw, sourcesMarker); idx >= 0 {
		sources = strings.TrimSpace(raw[idx+len(sourcesMarker):])
		if sources != "" {
			answer = raw[:idx]
		}
	}

	return models.Answer{
		Answer:  trailingSourcesMarker.ReplaceAllString(answer, ""),
		Sources: CleanSources(sources),
	}
}

// CleanSources reduces a path-like source reference to its base name.
// Comma-joined multi-source values get the same transform applied to the
// raw string, matching the single-source assumption upstream.
func CleanSources(sources string) string {
	if sources == "" {
		return ""
	}

	return filepath.Base(sources)
}
