package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/xhad/askdocs/internal/types"
)

type Config struct {
	Addr string
	// MaxUploadBytes caps the in-memory portion of multipart parsing.
	MaxUploadBytes int64
}

// Server exposes the ingestion and answer operations over HTTP.
type Server struct {
	config   Config
	pipeline types.Pipeline
}

func New(config Config, p types.Pipeline) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.MaxUploadBytes == 0 {
		config.MaxUploadBytes = 32 << 20
	}

	return &Server{
		config:   config,
		pipeline: p,
	}
}

// Handler builds the route table. Split out from Run so tests can drive the
// server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload-files/", s.handleUploadFiles)
	mux.HandleFunc("/process-urls/", s.handleProcessURLs)
	mux.HandleFunc("/generate-response/", s.handleGenerateResponse)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return logRequests(mux)
}

func (s *Server) Run() error {
	slog.Info("starting HTTP server", "addr", s.config.Addr)
	return http.ListenAndServe(s.config.Addr, s.Handler())
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
