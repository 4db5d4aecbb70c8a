package config

import (
	"fmt"
	"log"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	QdrantURL    string `envconfig:"QDRANT_URL"`
	QdrantAPIKey string `envconfig:"QDRANT_API_KEY"`

	Collection string `envconfig:"COLLECTION" default:"guidebot_docs"`

	ContentDir   string `envconfig:"CONTENT_DIR" default:"content"`
	TrackingFile string `envconfig:"TRACKING_FILE" default:".embedding-index.json"`

	EmbeddingModel string `envconfig:"EMBEDDING_MODEL" default:"text-embedding-3-small"`
	ChatModel      string `envconfig:"CHAT_MODEL" default:"gpt-4-turbo-preview"`

	SiteTitle string `envconfig:"SITE_TITLE" default:"the documentation site"`

	TopK           int           `envconfig:"TOP_K" default:"5"`
	ScoreThreshold float32       `envconfig:"SCORE_THRESHOLD" default:"0.7"`
	MaxTokens      int           `envconfig:"MAX_TOKENS" default:"1000"`
	Temperature    float32       `envconfig:"TEMPERATURE" default:"0.3"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// ReindexInterval enables the background reindex worker in serve
	// mode when set to a positive duration.
	ReindexInterval time.Duration `envconfig:"REINDEX_INTERVAL" default:"0"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("GUIDEBOT", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

func (c *Config) HasQdrant() bool {
	return c.QdrantURL != ""
}

// QdrantEndpoint holds the connection parameters parsed out of QDRANT_URL.
type QdrantEndpoint struct {
	Host   string
	Port   int
	UseTLS bool
}

// ParseQdrantURL derives host, gRPC port, and TLS mode from the configured
// base URL. HTTPS URLs without an explicit port default to 443 (hosted
// Qdrant terminates TLS on the standard port); plain URLs default to the
// gRPC port 6334.
func (c *Config) ParseQdrantURL() (QdrantEndpoint, error) {
	raw := c.QdrantURL
	if raw == "" {
		raw = "http://localhost:6334"
	}

	u, err := url.Parse(raw)
	if err != nil {
		return QdrantEndpoint{}, fmt.Errorf("invalid QDRANT_URL: %w", err)
	}
	if u.Hostname() == "" {
		return QdrantEndpoint{}, fmt.Errorf("invalid QDRANT_URL: missing host in %q", raw)
	}

	useTLS := u.Scheme == "https"
	port := 6334
	if useTLS {
		port = 443
	}
	if p := u.Port(); p != "" {
		port, err = strconv.Atoi(p)
		if err != nil {
			return QdrantEndpoint{}, fmt.Errorf("invalid QDRANT_URL port: %w", err)
		}
	}

	return QdrantEndpoint{
		Host:   u.Hostname(),
		Port:   port,
		UseTLS: useTLS,
	}, nil
}
