//go:build !wireinject
// +build !wireinject

package di

import (
	"context"

	"ideaforge-backend/application/commands/bus"
	"ideaforge-backend/application/ports"
	querybus "ideaforge-backend/application/queries/bus"
	"ideaforge-backend/infrastructure/config"
	"ideaforge-backend/interfaces/http/rest/middleware"
	"ideaforge-backend/pkg/auth"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Storage      *Storage
	IdeaRepo     ports.IdeaRepository
	DocRepo      ports.DocumentRepository
	Publisher    ports.EventPublisher
	Analyzer     ports.Analyzer
	Ingredients  ports.IngredientSource
	Verifier     middleware.TokenVerifier
	DevTokens    *auth.JWTGenerator
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	Cache        ports.Cache
	Collector    *observability.Collector
	ErrorHandler *pkgerrors.ErrorHandler
}

// InitializeContainer creates a fully wired container. The hand-written
// wiring mirrors the wire.go provider set so the two stay interchangeable.
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := ProvideLogger(cfg)
	if err != nil {
		return nil, err
	}

	storage, err := ProvideStorage(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ideaRepo := ProvideIdeaRepository(storage)
	docRepo := ProvideDocumentRepository(storage)
	publisher := ProvideEventPublisher(storage)
	collector := ProvideCollector(cfg)
	analyzer := ProvideAnalyzer(cfg, collector, logger)
	ingredients := ProvideIngredientSource()
	cacheStore := ProvideCache()
	errorHandler := ProvideErrorHandler(cfg, logger)

	authBundle, err := ProvideAuth(cfg, logger)
	if err != nil {
		return nil, err
	}

	commandBus := ProvideCommandBus(
		ideaRepo, docRepo, analyzer, ingredients, publisher, collector, logger)
	queryBus := ProvideQueryBus(ideaRepo, docRepo, ingredients, cacheStore, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Storage:      storage,
		IdeaRepo:     ideaRepo,
		DocRepo:      docRepo,
		Publisher:    publisher,
		Analyzer:     analyzer,
		Ingredients:  ingredients,
		Verifier:     ProvideTokenVerifier(authBundle),
		DevTokens:    ProvideDevTokenIssuer(authBundle),
		CommandBus:   commandBus,
		QueryBus:     queryBus,
		Cache:        cacheStore,
		Collector:    collector,
		ErrorHandler: errorHandler,
	}, nil
}

// Shutdown releases container resources
func (c *Container) Shutdown() error {
	if c.Storage != nil && c.Storage.Close != nil {
		return c.Storage.Close()
	}
	return nil
}
