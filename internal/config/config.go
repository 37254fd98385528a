// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (runtime override)
//  2. Config file (~/.jarvis/config.yaml or ./config.yaml)
//  3. Default values
//
// A missing provider setting is never a startup failure: the availability
// probe in internal/app downgrades to the next fallback instead. Validation
// here only rejects values that are present but nonsensical.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// ErrInvalidProvider indicates the generation provider is not supported.
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrInvalidVectorStore indicates the vector store selection is not supported.
	ErrInvalidVectorStore = errors.New("invalid vector store")

	// ErrInvalidChunkSize indicates the chunk size is out of range.
	ErrInvalidChunkSize = errors.New("invalid chunk size")

	// ErrInvalidTopK indicates the retrieval top-k is out of range.
	ErrInvalidTopK = errors.New("invalid top_k")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresSSLMode indicates the PostgreSQL SSL mode is invalid.
	ErrInvalidPostgresSSLMode = errors.New("invalid PostgreSQL SSL mode")
)

// Generation provider identifiers used in Config.Provider.
const (
	ProviderGemini   = "gemini"
	ProviderOllama   = "ollama"
	ProviderScripted = "scripted"
)

// Vector store identifiers used in Config.VectorStore.
const (
	VectorStorePgvector = "pgvector"
	VectorStoreChromem  = "chromem"
	VectorStoreMemory   = "memory"
)

// Default model identifiers per provider.
const (
	DefaultGeminiModel         = "gemini-2.0-flash"
	DefaultGeminiEmbedderModel = "gemini-embedding-001"
	DefaultOllamaModel         = "llama3.2"
	DefaultOllamaEmbedderModel = "nomic-embed-text"
)

// Chunking and retrieval bounds.
const (
	MinChunkSize = 50
	MaxChunkSize = 8000
	MaxTopK      = 10
)

// Config stores application configuration.
type Config struct {
	// Generation provider and model configuration
	Provider     string `mapstructure:"provider"`      // "gemini" (default), "ollama", "scripted"
	ModelName    string `mapstructure:"model_name"`    // generation model; defaults depend on provider
	GeminiAPIKey string `mapstructure:"gemini_api_key"` // SENSITIVE: from GEMINI_API_KEY, never logged
	OllamaHost   string `mapstructure:"ollama_host"`

	// Embedding configuration
	EmbedderModel string `mapstructure:"embedder_model"`

	// Knowledge store configuration
	VectorStore string `mapstructure:"vector_store"` // "pgvector" (default), "chromem", "memory"
	ChromemPath string `mapstructure:"chromem_path"` // persistence dir for the embedded index

	// Ingestion and retrieval tuning
	ChunkSize int `mapstructure:"chunk_size"`
	TopK      int `mapstructure:"top_k"`

	// PostgreSQL connection (pgvector store; see storage.go)
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"` // SENSITIVE: never logged
	PostgresDBName   string `mapstructure:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode"`

	// HTTP server configuration
	Addr        string   `mapstructure:"addr"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	v := viper.New()

	configDir, err := userConfigDir()
	if err == nil {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	setDefaults(v)
	bindEnvVariables(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine: defaults plus env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	cfg.applyModelDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

// userConfigDir returns ~/.jarvis, creating it if needed.
func userConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	dir := filepath.Join(home, ".jarvis")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	return dir, nil
}

// setDefaults sets all default configuration values.
func setDefaults(v *viper.Viper) {
	// Generation defaults
	v.SetDefault("provider", ProviderGemini)
	v.SetDefault("model_name", "")
	v.SetDefault("ollama_host", "http://localhost:11434")

	// Embedding defaults (resolved per provider in applyModelDefaults)
	v.SetDefault("embedder_model", "")

	// Knowledge store defaults
	v.SetDefault("vector_store", VectorStorePgvector)
	v.SetDefault("chromem_path", "./jarvis_db")

	// Ingestion and retrieval defaults
	v.SetDefault("chunk_size", 500)
	v.SetDefault("top_k", 3)

	// PostgreSQL defaults (matching docker-compose.yml)
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "jarvis")
	v.SetDefault("postgres_password", "jarvis_dev_password")
	v.SetDefault("postgres_db_name", "jarvis")
	v.SetDefault("postgres_ssl_mode", "disable")

	// HTTP defaults; "*" mirrors the permissive CORS policy of the
	// reference frontend deployment.
	v.SetDefault("addr", "0.0.0.0:8000")
	v.SetDefault("cors_origins", []string{"*"})
}

// bindEnvVariables binds environment variables explicitly.
func bindEnvVariables(v *viper.Viper) {
	// Hardcoded keys cannot fail to bind; a panic here is a bug, not a
	// runtime condition.
	mustBind := func(key, envVar string) {
		if err := v.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("provider", "JARVIS_PROVIDER")
	mustBind("model_name", "JARVIS_MODEL_NAME")
	mustBind("ollama_host", "OLLAMA_HOST")
	mustBind("embedder_model", "JARVIS_EMBEDDER_MODEL")
	mustBind("vector_store", "JARVIS_VECTOR_STORE")
	mustBind("chromem_path", "JARVIS_CHROMEM_PATH")
	mustBind("chunk_size", "JARVIS_CHUNK_SIZE")
	mustBind("top_k", "JARVIS_TOP_K")
	mustBind("addr", "JARVIS_ADDR")
	mustBind("cors_origins", "JARVIS_CORS_ORIGINS")

	// Secrets
	mustBind("gemini_api_key", "GEMINI_API_KEY")
	mustBind("postgres_password", "JARVIS_POSTGRES_PASSWORD")
}

// applyModelDefaults fills model names that depend on the selected provider.
func (c *Config) applyModelDefaults() {
	if c.ModelName == "" {
		switch c.Provider {
		case ProviderOllama:
			c.ModelName = DefaultOllamaModel
		default:
			c.ModelName = DefaultGeminiModel
		}
	}
	if c.EmbedderModel == "" {
		switch c.Provider {
		case ProviderOllama:
			c.EmbedderModel = DefaultOllamaEmbedderModel
		default:
			c.EmbedderModel = DefaultGeminiEmbedderModel
		}
	}
}

// Validate rejects configuration values that are present but out of range.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOllama, ProviderScripted:
	default:
		return fmt.Errorf("%w: %q (expected gemini, ollama or scripted)", ErrInvalidProvider, c.Provider)
	}

	switch c.VectorStore {
	case VectorStorePgvector, VectorStoreChromem, VectorStoreMemory:
	default:
		return fmt.Errorf("%w: %q (expected pgvector, chromem or memory)", ErrInvalidVectorStore, c.VectorStore)
	}

	if c.ChunkSize < MinChunkSize || c.ChunkSize > MaxChunkSize {
		return fmt.Errorf("%w: %d (expected %d-%d)", ErrInvalidChunkSize, c.ChunkSize, MinChunkSize, MaxChunkSize)
	}

	if c.TopK < 1 || c.TopK > MaxTopK {
		return fmt.Errorf("%w: %d (expected 1-%d)", ErrInvalidTopK, c.TopK, MaxTopK)
	}

	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}

	switch c.PostgresSSLMode {
	case "disable", "allow", "prefer", "require", "verify-ca", "verify-full":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPostgresSSLMode, c.PostgresSSLMode)
	}

	return nil
}
