package loader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/tmc/langchaingo/documentloaders"
	"github.com/xuri/excelize/v2"

	"github.com/xhad/askdocs/internal/models"
	"github.com/xhad/askdocs/internal/types"
)

// Supported upload extensions and their parsing strategies. The extension of
// the uploaded name alone decides the strategy.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".txt":  true,
	".pptx": true,
	".xlsx": true,
}

type LoaderConfig struct {
	// TempDir is where upload batches are spooled before parsing. Each batch
	// gets its own subdirectory, removed when the batch is done.
	TempDir string
}

type Loader struct {
	config LoaderConfig
}

func NewWithConfig(config LoaderConfig) Loader {
	if config.TempDir == "" {
		config.TempDir = "tempDir"
	}

	return Loader{config: config}
}

// LoadFiles persists the uploads to the temp area and parses each one into
// Documents. An unsupported extension rejects the batch before anything is
// parsed; a parse failure of any file fails the batch with the file named.
func (l Loader) LoadFiles(ctx context.Context, uploads []types.Upload) ([]models.Document, error) {
	for _, up := range uploads {
		if !supportedExtensions[strings.ToLower(filepath.Ext(up.Name))] {
			return nil, &UnsupportedFileError{Name: up.Name}
		}
	}

	if err := os.MkdirAll(l.config.TempDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	batchDir, err := os.MkdirTemp(l.config.TempDir, "batch-")
	if err != nil {
		return nil, fmt.Errorf("failed to create batch dir: %w", err)
	}
	defer os.RemoveAll(batchDir)

	var documents []models.Document

	for _, up := range uploads {
		path := filepath.Join(batchDir, filepath.Base(up.Name))
		if err := spool(path, up.Body); err != nil {
			return nil, &ParseError{Name: up.Name, Err: err}
		}

		docs, err := l.parseFile(ctx, up.Name, path)
		if err != nil {
			return nil, &ParseError{Name: up.Name, Err: err}
		}
		documents = append(documents, docs...)
	}

	return documents, nil
}

func spool(path string, body io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, body)
	return err
}

func (l Loader) parseFile(ctx context.Context, name, path string) ([]models.Document, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return parsePDF(ctx, name, path)
	case ".txt":
		return parseText(ctx, name, path)
	case ".docx":
		return parseOffice(name, path, docconv.ConvertDocx)
	case ".pptx":
		return parseOffice(name, path, docconv.ConvertPptx)
	case ".xlsx":
		return parseSpreadsheet(name, path)
	default:
		return nil, &UnsupportedFileError{Name: name}
	}
}

func parsePDF(ctx context.Context, name, path string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pages, err := documentloaders.NewPDF(f, info.Size()).Load(ctx)
	if err != nil {
		return nil, err
	}

	// One Document per page, all carrying the upload's name as source.
	docs := make([]models.Document, 0, len(pages))
	for _, page := range pages {
		docs = append(docs, models.Document{
			Source:   name,
			Title:    name,
			Content:  page.PageContent,
			Metadata: page.Metadata,
		})
	}
	return docs, nil
}

func parseText(ctx context.Context, name, path string) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	loaded, err := documentloaders.NewText(f).Load(ctx)
	if err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(loaded))
	for _, d := range loaded {
		docs = append(docs, models.Document{
			Source:  name,
			Title:   name,
			Content: d.PageContent,
		})
	}
	return docs, nil
}

func parseOffice(name, path string, convert func(io.Reader) (string, map[string]string, error)) ([]models.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	text, meta, err := convert(f)
	if err != nil {
		return nil, err
	}

	metadata := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		metadata[k] = v
	}

	return []models.Document{{
		Source:   name,
		Title:    name,
		Content:  text,
		Metadata: metadata,
	}}, nil
}

func parseSpreadsheet(name, path string) ([]models.Document, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var content strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, err
		}

		content.WriteString(sheet)
		content.WriteString("\n")
		for _, row := range rows {
			content.WriteString(strings.Join(row, "\t"))
			content.WriteString("\n")
		}
	}

	return []models.Document{{
		Source:  name,
		Title:   name,
		Content: content.String(),
	}}, nil
}
