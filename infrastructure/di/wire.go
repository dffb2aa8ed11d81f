//go:build wireinject
// +build wireinject

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

	"github.com/google/wire"
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

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideStorage,
	ProvideIdeaRepository,
	ProvideDocumentRepository,
	ProvideEventPublisher,
	ProvideAnalyzer,
	ProvideIngredientSource,
	ProvideCollector,
	ProvideErrorHandler,
	ProvideAuth,
	ProvideTokenVerifier,
	ProvideDevTokenIssuer,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideCache,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
