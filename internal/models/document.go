package models

// Document is the raw text of one uploaded file or fetched page, before
// chunking. Source identifies where it came from: the file name for uploads,
// the URL for fetched pages.
type Document struct {
	Source   string
	Title    string
	Content  string
	Metadata map[string]interface{}
}

// Chunk is a bounded-length slice of a Document's text. Ordinal preserves
// document and in-document order across a whole ingestion batch.
type Chunk struct {
	Source  string
	Text    string
	Ordinal int
}

// Answer carries a generated response plus the source reference extracted
// from the model output.
type Answer struct {
	Answer  string `json:"answer"`
	Sources string `json:"sources"`
}
