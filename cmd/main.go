package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/xhad/askdocs/pkg/config"
	"github.com/xhad/askdocs/pkg/llm"
	"github.com/xhad/askdocs/pkg/loader"
	"github.com/xhad/askdocs/pkg/pipeline"
	"github.com/xhad/askdocs/pkg/processor"
	"github.com/xhad/askdocs/pkg/store"
	"github.com/xhad/askdocs/server"
)

func main() {
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	var (
		configPath   = flag.String("config", "", "Path to config file")
		console      = flag.Bool("console", false, "Run an interactive console chat instead of the HTTP server")
		addr         = flag.String("addr", "", "Listen address")
		ollamaURL    = flag.String("ollama-url", os.Getenv("OLLAMA_BASE_URL"), "Ollama server URL")
		model        = flag.String("model", "", "LLM model to use")
		chunkSize    = flag.Int("chunk-size", 0, "Size of text chunks")
		chunkOverlap = flag.Int("chunk-overlap", 0, "Overlap between adjacent chunks")
		topK         = flag.Int("top-k", 0, "Number of chunks retrieved per question")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Command line flags override the config file
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *ollamaURL != "" {
		cfg.LLM.BaseURL = *ollamaURL
		cfg.Embedder.BaseURL = *ollamaURL
	}
	if *model != "" {
		cfg.LLM.Model = *model
	}
	if *chunkSize != 0 {
		cfg.Processor.ChunkSize = *chunkSize
	}
	if *chunkOverlap != 0 {
		cfg.Processor.ChunkOverlap = *chunkOverlap
	}
	if *topK != 0 {
		cfg.Retrieval.TopK = *topK
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			slog.Error("invalid configuration", "error", e)
		}
		os.Exit(1)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		slog.Error("failed to initialize pipeline", "error", err)
		os.Exit(1)
	}

	if *console {
		runConsole(p)
		return
	}

	srv := server.New(server.Config{Addr: cfg.Server.Addr}, p)
	if err := srv.Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func buildPipeline(cfg *config.Config) (*pipeline.Pipeline, error) {
	engine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		BaseURL:     cfg.LLM.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:   cfg.Embedder.Model,
		BaseURL: cfg.Embedder.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	deps := pipeline.Deps{
		Loader: loader.NewWithConfig(loader.LoaderConfig{
			TempDir: cfg.Loader.TempDir,
		}),
		Fetcher: loader.NewFetcherWithConfig(loader.FetcherConfig{
			MaxURLs:   cfg.Loader.MaxURLs,
			RateLimit: cfg.Loader.RateLimit,
			Timeout:   time.Duration(cfg.Loader.FetchTimeout) * time.Second,
		}),
		Processor: processor.NewWithConfig(processor.ProcessorConfig{
			ChunkSize:    cfg.Processor.ChunkSize,
			ChunkOverlap: cfg.Processor.ChunkOverlap,
		}),
		Embedder: embedder,
		Store:    store.NewWithConfig(store.MemoryStoreConfig{}),
		Engine:   engine,
	}

	return pipeline.NewWithConfig(pipeline.PipelineConfig{
		TopK:            cfg.Retrieval.TopK,
		ExternalTimeout: time.Duration(cfg.Retrieval.RequestTimeout) * time.Second,
	}, deps), nil
}
