package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	LLM struct {
		BaseURL     string  `yaml:"base_url"`
		Model       string  `yaml:"model"`
		MaxTokens   int     `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"llm"`

	Embedder struct {
		BaseURL string `yaml:"base_url"`
		Model   string `yaml:"model"`
	} `yaml:"embedder"`

	Loader struct {
		TempDir      string  `yaml:"temp_dir"`
		FetchTimeout int     `yaml:"fetch_timeout_seconds"`
		RateLimit    float64 `yaml:"rate_limit"`
		MaxURLs      int     `yaml:"max_urls"`
	} `yaml:"loader"`

	Processor struct {
		ChunkSize    int `yaml:"chunk_size"`
		ChunkOverlap int `yaml:"chunk_overlap"`
	} `yaml:"processor"`

	Retrieval struct {
		TopK           int `yaml:"top_k"`
		RequestTimeout int `yaml:"request_timeout_seconds"`
	} `yaml:"retrieval"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/askdocs/config.yaml"),
			"/etc/askdocs/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	mergeWithEnv(&config)
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}

	if config.LLM.Model == "" {
		config.LLM.Model = "mistral"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.7
	}
	if config.LLM.BaseURL == "" {
		config.LLM.BaseURL = "http://localhost:11434"
	}

	if config.Embedder.Model == "" {
		config.Embedder.Model = "nomic-embed-text:latest"
	}
	if config.Embedder.BaseURL == "" {
		config.Embedder.BaseURL = config.LLM.BaseURL
	}

	if config.Loader.TempDir == "" {
		config.Loader.TempDir = "tempDir"
	}
	if config.Loader.FetchTimeout == 0 {
		config.Loader.FetchTimeout = 30
	}
	if config.Loader.RateLimit == 0 {
		config.Loader.RateLimit = 2.0
	}
	if config.Loader.MaxURLs == 0 {
		config.Loader.MaxURLs = 5
	}

	if config.Processor.ChunkSize == 0 {
		config.Processor.ChunkSize = 256
	}
	if config.Processor.ChunkOverlap == 0 {
		config.Processor.ChunkOverlap = 20
	}

	if config.Retrieval.TopK == 0 {
		config.Retrieval.TopK = 10
	}
	if config.Retrieval.RequestTimeout == 0 {
		config.Retrieval.RequestTimeout = 120
	}
}

func mergeWithEnv(config *Config) {
	if addr := os.Getenv("ASKDOCS_ADDR"); addr != "" {
		config.Server.Addr = addr
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.LLM.BaseURL = baseURL
		config.Embedder.BaseURL = baseURL
	}
	if model := os.Getenv("ASKDOCS_MODEL"); model != "" {
		config.LLM.Model = model
	}
	if tempDir := os.Getenv("ASKDOCS_TEMP_DIR"); tempDir != "" {
		config.Loader.TempDir = tempDir
	}
}
