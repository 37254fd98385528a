// Package app wires the application together: it probes provider
// availability once at startup, selects exactly one knowledge store variant
// and one generation backend, and hands the composed pipeline to the HTTP
// layer.
//
// The probe is deliberately forgiving: a missing API key or an unreachable
// database is logged and downgraded to the next fallback, never a startup
// failure. Probe results are fixed for the process lifetime: a provider
// outage later degrades individual calls, it does not re-run selection.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jarvis0/jarvis/db"
	"github.com/jarvis0/jarvis/internal/chat"
	"github.com/jarvis0/jarvis/internal/config"
	"github.com/jarvis0/jarvis/internal/embed"
	"github.com/jarvis0/jarvis/internal/generate"
	"github.com/jarvis0/jarvis/internal/knowledge"
	"github.com/jarvis0/jarvis/internal/log"
)

// Status captures provider availability as decided at startup. Health and
// knowledge endpoints read it without touching the providers again.
type Status struct {
	Provider      string // active generation variant: "gemini", "ollama", "scripted"
	EmbedderReady bool
	EmbedderModel string // empty when no embedder is available
	VectorDB      bool
	VectorStore   string // "pgvector" or "chromem" when VectorDB is true
}

// Demo reports whether the scripted backend is active.
func (s Status) Demo() bool { return s.Provider == config.ProviderScripted }

// App is the composed application container.
type App struct {
	Config   *config.Config
	Logger   log.Logger
	Status   Status
	Store    knowledge.Store
	Ingestor *knowledge.Ingestor
	Chat     *chat.Service

	pool *pgxpool.Pool
}

// Setup probes providers, selects variants and wires the pipeline.
func Setup(ctx context.Context, cfg *config.Config, logger log.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		logger = log.NewNop()
	}

	a := &App{Config: cfg, Logger: logger}

	embedder := a.probeEmbedder(ctx)
	a.Store = a.selectStore(ctx, embedder)
	gen := a.probeGenerator(ctx)

	a.Status.Provider = gen.Name()
	a.Ingestor = knowledge.NewIngestor(a.Store, cfg.ChunkSize, logger.With("component", "ingest"))
	a.Chat = chat.NewService(a.Store, gen, cfg.TopK, logger.With("component", "chat"))

	logger.Info("providers selected",
		"generator", a.Status.Provider,
		"embedder", a.Status.EmbedderModel,
		"store", a.Store.Name())

	return a, nil
}

// probeEmbedder initializes the embedding provider matching the configured
// generation provider. Returns nil when none is available.
func (a *App) probeEmbedder(ctx context.Context) embed.Embedder {
	cfg := a.Config

	switch cfg.Provider {
	case config.ProviderGemini:
		embedder, err := embed.NewGemini(ctx, cfg.GeminiAPIKey, cfg.EmbedderModel)
		if err != nil {
			a.Logger.Warn("Gemini embedder unavailable", "error", err)
			return nil
		}
		a.Status.EmbedderReady = true
		a.Status.EmbedderModel = embedder.Model()
		return embedder

	case config.ProviderOllama:
		embedder := embed.NewOllama(cfg.OllamaHost, cfg.EmbedderModel)
		a.Status.EmbedderReady = true
		a.Status.EmbedderModel = embedder.Model()
		return embedder

	default:
		return nil
	}
}

// selectStore picks the knowledge store variant: a vector-backed store
// (wrapped in the soft-fail fallback) when an embedder and the configured
// index both initialized, otherwise the in-memory keyword store.
func (a *App) selectStore(ctx context.Context, embedder embed.Embedder) knowledge.Store {
	mem := knowledge.NewMemory()

	if embedder == nil {
		a.Logger.Info("no embedder available, using in-memory keyword store")
		return mem
	}

	var vector knowledge.Store
	switch a.Config.VectorStore {
	case config.VectorStorePgvector:
		vector = a.openPgvector(ctx, embedder)
	case config.VectorStoreChromem:
		vector = a.openChromem(embedder)
	case config.VectorStoreMemory:
		// explicit opt-out of vector search
	}

	if vector == nil {
		return mem
	}

	a.Status.VectorDB = true
	a.Status.VectorStore = vector.Name()
	return knowledge.NewFallback(vector, mem, a.Logger.With("component", "knowledge"))
}

// openPgvector migrates the schema and connects the pool. Any failure is
// logged and yields nil so selection falls through to the keyword store.
func (a *App) openPgvector(ctx context.Context, embedder embed.Embedder) knowledge.Store {
	if err := db.Migrate(a.Config.PostgresURL()); err != nil {
		a.Logger.Warn("pgvector unavailable: migrations failed", "error", err)
		return nil
	}

	pool, err := knowledge.NewPool(ctx, a.Config.PostgresConnectionString())
	if err != nil {
		a.Logger.Warn("pgvector unavailable: connection failed", "error", err)
		return nil
	}

	a.pool = pool
	return knowledge.NewPGVector(pool, embedder, a.Logger.With("component", "knowledge"))
}

// openChromem opens the embedded persistent index.
func (a *App) openChromem(embedder embed.Embedder) knowledge.Store {
	store, err := knowledge.NewChromem(a.Config.ChromemPath, embedder, a.Logger.With("component", "knowledge"))
	if err != nil {
		a.Logger.Warn("chromem unavailable", "error", err)
		return nil
	}
	return store
}

// probeGenerator initializes the generation backend, degrading to the
// scripted variant when no live provider is configured.
func (a *App) probeGenerator(ctx context.Context) generate.Generator {
	cfg := a.Config

	switch cfg.Provider {
	case config.ProviderGemini:
		gen, err := generate.NewGemini(ctx, cfg.GeminiAPIKey, cfg.ModelName, a.Logger.With("component", "generate"))
		if err != nil {
			a.Logger.Warn("Gemini backend unavailable, using scripted replies", "error", err)
			return generate.NewScripted()
		}
		return gen

	case config.ProviderOllama:
		return generate.NewOllama(cfg.OllamaHost, cfg.ModelName, a.Logger.With("component", "generate"))

	default:
		return generate.NewScripted()
	}
}

// Pool exposes the database pool for readiness checks; nil unless the
// pgvector store is active.
func (a *App) Pool() *pgxpool.Pool { return a.pool }

// Close releases held resources.
func (a *App) Close() error {
	if a.pool != nil {
		a.pool.Close()
		a.Logger.Info("database pool closed")
	}
	return nil
}
