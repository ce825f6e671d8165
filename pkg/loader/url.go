package loader

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/xhad/askdocs/internal/models"
)

type FetcherConfig struct {
	MaxURLs   int
	RateLimit float64 // requests per second
	Timeout   time.Duration
}

// Fetcher turns a small batch of URLs into Documents, one page per URL.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewFetcherWithConfig(config FetcherConfig) *Fetcher {
	if config.MaxURLs == 0 {
		config.MaxURLs = 5
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

// FetchURLs fetches each URL and extracts its main text content. Oversized
// batches are rejected before any network traffic; any fetch or parse
// failure fails the whole batch naming the URL.
func (f *Fetcher) FetchURLs(ctx context.Context, urls []string) ([]models.Document, error) {
	if len(urls) > f.config.MaxURLs {
		return nil, &TooManyURLsError{Count: len(urls), Max: f.config.MaxURLs}
	}

	var documents []models.Document
	for _, u := range urls {
		doc, err := f.fetch(ctx, u)
		if err != nil {
			return nil, &ParseError{Name: u, Err: err}
		}
		documents = append(documents, doc)
	}

	return documents, nil
}

func (f *Fetcher) fetch(ctx context.Context, urlStr string) (models.Document, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return models.Document{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return models.Document{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return models.Document{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Document{}, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, urlStr)
	}

	page, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return models.Document{}, err
	}

	return models.Document{
		Source:  urlStr,
		Title:   page.Find("title").Text(),
		Content: extractMainContent(page),
		Metadata: map[string]interface{}{
			"contentType":  resp.Header.Get("Content-Type"),
			"lastModified": resp.Header.Get("Last-Modified"),
			"time":         time.Now(),
		},
	}, nil
}

func extractMainContent(page *goquery.Document) string {
	// Prefer an obvious main content area before falling back to body text.
	selectors := []string{
		"main",
		"article",
		".content",
		"#content",
		".documentation",
		"#documentation",
	}

	var content string
	for _, selector := range selectors {
		if selected := page.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}

	if content == "" {
		content = page.Find("body").Text()
	}

	return cleanContent(content)
}

func cleanContent(content string) string {
	// Collapse whitespace runs
	content = strings.Join(strings.Fields(content), " ")

	// Remove common page noise
	noisePatterns := []string{
		"Cookie Policy",
		"Accept Cookies",
		"Privacy Policy",
		"Terms of Service",
	}

	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}

	return strings.TrimSpace(content)
}
