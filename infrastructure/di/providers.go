package di

import (
	"context"
	"fmt"
	"time"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/commands/bus"
	commands_handlers "ideaforge-backend/application/commands/handlers"
	"ideaforge-backend/application/ports"
	"ideaforge-backend/application/queries"
	querybus "ideaforge-backend/application/queries/bus"
	queries_handlers "ideaforge-backend/application/queries/handlers"
	"ideaforge-backend/infrastructure/ai"
	"ideaforge-backend/infrastructure/ai/gemini"
	"ideaforge-backend/infrastructure/cache"
	"ideaforge-backend/infrastructure/config"
	ebpublisher "ideaforge-backend/infrastructure/messaging/eventbridge"
	localpublisher "ideaforge-backend/infrastructure/messaging/local"
	dynamorepo "ideaforge-backend/infrastructure/persistence/dynamodb"
	sqliterepo "ideaforge-backend/infrastructure/persistence/sqlite"
	"ideaforge-backend/interfaces/http/rest/middleware"
	"ideaforge-backend/pkg/auth"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideCollector creates the metrics collector
func ProvideCollector(cfg *config.Config) *observability.Collector {
	collector := observability.NewCollector("ideaforge")
	if cfg.IsLocalMode() {
		collector.StorageMode.Set(1)
	} else {
		collector.StorageMode.Set(0)
	}
	return collector
}

// ProvideErrorHandler creates the HTTP error handler
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, cfg.IsDevelopment())
}

// Storage bundles the persistence backend selected at wiring time. The rest
// of the application only ever sees the repository ports, so hosted and local
// deployments run the exact same handler code.
type Storage struct {
	IdeaRepo  ports.IdeaRepository
	DocRepo   ports.DocumentRepository
	Publisher ports.EventPublisher

	// ReadyCheck probes the backend for the readiness endpoint.
	ReadyCheck func() error
	// Close releases backend resources. Nil for the hosted backend.
	Close func() error
}

// ProvideStorage selects the persistence backend from configuration. This is
// the single place where the hosted/local decision is made.
func ProvideStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	if cfg.IsLocalMode() {
		return newLocalStorage(cfg, logger)
	}
	return newHostedStorage(ctx, cfg, logger)
}

func newLocalStorage(cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	store, err := sqliterepo.NewStore(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	return &Storage{
		IdeaRepo:   sqliterepo.NewIdeaRepository(store, logger),
		DocRepo:    sqliterepo.NewDocumentRepository(store, cfg.LocalDocumentQuota, logger),
		Publisher:  localpublisher.NewPublisher(logger),
		ReadyCheck: store.Ping,
		Close:      store.Close,
	}, nil
}

func newHostedStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Storage, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	dynamoClient := awsdynamodb.NewFromConfig(awsCfg)
	eventClient := awseventbridge.NewFromConfig(awsCfg)

	return &Storage{
		IdeaRepo: dynamorepo.NewIdeaRepository(dynamoClient, cfg.DynamoDBTable, cfg.IndexName, logger),
		DocRepo: dynamorepo.NewDocumentRepository(
			dynamoClient, cfg.DynamoDBTable, cfg.LegacyTable, cfg.IndexName, logger),
		Publisher: ebpublisher.NewPublisher(eventClient, cfg.EventBusName, logger),
		ReadyCheck: func() error {
			probeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_, err := dynamoClient.DescribeTable(probeCtx, &awsdynamodb.DescribeTableInput{
				TableName: aws.String(cfg.DynamoDBTable),
			})
			return err
		},
	}, nil
}

// ProvideIdeaRepository exposes the selected idea repository
func ProvideIdeaRepository(s *Storage) ports.IdeaRepository {
	return s.IdeaRepo
}

// ProvideDocumentRepository exposes the selected document repository
func ProvideDocumentRepository(s *Storage) ports.DocumentRepository {
	return s.DocRepo
}

// ProvideEventPublisher exposes the selected event publisher
func ProvideEventPublisher(s *Storage) ports.EventPublisher {
	return s.Publisher
}

// ProvideAnalyzer creates the generative analysis provider behind a circuit
// breaker
func ProvideAnalyzer(cfg *config.Config, collector *observability.Collector, logger *zap.Logger) ports.Analyzer {
	client := gemini.NewClient(
		cfg.GeminiAPIKey,
		logger,
		gemini.WithModel(cfg.GeminiModel),
		gemini.WithEndpoint(cfg.GeminiEndpoint),
	)
	return ai.NewBreakerAnalyzer(client, collector, logger)
}

// ProvideIngredientSource creates the frankenstein ingredient pool
func ProvideIngredientSource() ports.IngredientSource {
	return ai.NewIngredientPool(nil, time.Now().UnixNano())
}

// Auth bundles the token verifier with the dev token issuer. DevTokens is
// non-nil only in local non-production mode.
type Auth struct {
	Verifier  middleware.TokenVerifier
	DevTokens *auth.JWTGenerator
}

// ProvideAuth selects the auth backend: Supabase in hosted mode, HS256 JWT
// validation in local mode. A local non-production setup without JWT_SECRET
// gets an ephemeral generated secret and a dev token issuer, so the service
// starts with nothing configured beyond the AI key.
func ProvideAuth(cfg *config.Config, logger *zap.Logger) (*Auth, error) {
	if !cfg.IsLocalMode() {
		verifier, err := auth.NewSupabaseVerifier(cfg.SupabaseURL, cfg.SupabaseServiceKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create supabase verifier: %w", err)
		}
		return &Auth{Verifier: verifier}, nil
	}

	secret := cfg.JWTSecret
	if secret == "" {
		generated, err := auth.NewDevSecret()
		if err != nil {
			return nil, err
		}
		secret = generated
		logger.Warn("JWT_SECRET not set, generated an ephemeral dev secret; " +
			"request tokens from POST /auth/dev-token, they expire on restart")
	}

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
		Audience:  []string{cfg.JWTAudience},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	bundle := &Auth{Verifier: middleware.NewJWTVerifier(validator)}

	if !cfg.IsProduction() {
		generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
			SecretKey: secret,
			Issuer:    cfg.JWTIssuer,
			Audience:  []string{cfg.JWTAudience},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create dev token issuer: %w", err)
		}
		bundle.DevTokens = generator
	}

	return bundle, nil
}

// ProvideTokenVerifier exposes the selected token verifier
func ProvideTokenVerifier(a *Auth) middleware.TokenVerifier {
	return a.Verifier
}

// ProvideDevTokenIssuer exposes the dev token issuer, nil outside local
// non-production mode
func ProvideDevTokenIssuer(a *Auth) *auth.JWTGenerator {
	return a.DevTokens
}

// CommandHandlerAdapter adapts typed command handlers to the generic interface
type CommandHandlerAdapter struct {
	handler func(context.Context, bus.Command) error
}

func (a *CommandHandlerAdapter) Handle(ctx context.Context, cmd bus.Command) error {
	return a.handler(ctx, cmd)
}

// ProvideCommandBus creates a command bus with all handlers registered
func ProvideCommandBus(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	analyzer ports.Analyzer,
	ingredients ports.IngredientSource,
	publisher ports.EventPublisher,
	collector *observability.Collector,
	logger *zap.Logger,
) *bus.CommandBus {
	commandBus := bus.NewCommandBus()

	createHandler := commands.NewCreateIdeaHandler(ideaRepo, publisher, collector, logger)
	commandBus.Register(commands.CreateIdeaCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			createCmd, ok := cmd.(commands.CreateIdeaCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			_, err := createHandler.Handle(ctx, createCmd)
			return err
		},
	})

	updateHandler := commands_handlers.NewUpdateIdeaHandler(ideaRepo, publisher, logger)
	commandBus.Register(commands.UpdateIdeaCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			updateCmd, ok := cmd.(commands.UpdateIdeaCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return updateHandler.Handle(ctx, updateCmd)
		},
	})

	deleteHandler := commands_handlers.NewDeleteIdeaHandler(ideaRepo, docRepo, publisher, collector, logger)
	commandBus.Register(commands.DeleteIdeaCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			deleteCmd, ok := cmd.(commands.DeleteIdeaCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return deleteHandler.Handle(ctx, deleteCmd)
		},
	})

	analysisHandler := commands_handlers.NewSaveAnalysisHandler(
		ideaRepo, docRepo, analyzer, publisher, collector, logger)
	commandBus.Register(commands.SaveAnalysisCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			saveCmd, ok := cmd.(commands.SaveAnalysisCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return analysisHandler.Handle(ctx, saveCmd)
		},
	})

	hackathonHandler := commands_handlers.NewSaveHackathonHandler(
		ideaRepo, docRepo, analyzer, publisher, collector, logger)
	commandBus.Register(commands.SaveHackathonCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			saveCmd, ok := cmd.(commands.SaveHackathonCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return hackathonHandler.Handle(ctx, saveCmd)
		},
	})

	frankensteinHandler := commands_handlers.NewSaveFrankensteinHandler(
		docRepo, analyzer, ingredients, publisher, collector, logger)
	commandBus.Register(commands.SaveFrankensteinCommand{}, &CommandHandlerAdapter{
		handler: func(ctx context.Context, cmd bus.Command) error {
			saveCmd, ok := cmd.(commands.SaveFrankensteinCommand)
			if !ok {
				return fmt.Errorf("invalid command type")
			}
			return frankensteinHandler.Handle(ctx, saveCmd)
		},
	})

	return commandBus
}

// QueryHandlerAdapter adapts typed query handlers to the generic interface
type QueryHandlerAdapter struct {
	handler func(context.Context, querybus.Query) (interface{}, error)
}

func (a *QueryHandlerAdapter) Handle(ctx context.Context, query querybus.Query) (interface{}, error) {
	return a.handler(ctx, query)
}

// ProvideQueryBus creates a query bus with all handlers registered
func ProvideQueryBus(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	ingredients ports.IngredientSource,
	cacheStore ports.Cache,
	logger *zap.Logger,
) *querybus.QueryBus {
	queryBus := querybus.NewQueryBus()

	getIdeaHandler := queries_handlers.NewGetIdeaHandler(ideaRepo, logger)
	queryBus.Register(queries.GetIdeaQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetIdeaQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getIdeaHandler.Handle(ctx, getQuery)
		},
	})

	listIdeasHandler := queries_handlers.NewListIdeasHandler(ideaRepo, logger)
	queryBus.Register(queries.ListIdeasQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListIdeasQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return listIdeasHandler.Handle(ctx, listQuery)
		},
	})

	getAnalysisHandler := queries_handlers.NewGetAnalysisHandler(ideaRepo, docRepo, logger)
	queryBus.Register(queries.GetAnalysisQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetAnalysisQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getAnalysisHandler.Handle(ctx, getQuery)
		},
	})

	getDocumentHandler := queries_handlers.NewGetDocumentHandler(docRepo, logger)
	queryBus.Register(queries.GetDocumentQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			getQuery, ok := query.(queries.GetDocumentQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return getDocumentHandler.Handle(ctx, getQuery)
		},
	})

	dashboardHandler := queries_handlers.NewGetDashboardHandler(ideaRepo, docRepo, cacheStore, logger)
	queryBus.Register(queries.GetDashboardQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			dashQuery, ok := query.(queries.GetDashboardQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return dashboardHandler.Handle(ctx, dashQuery)
		},
	})

	ingredientsHandler := queries_handlers.NewListIngredientsHandler(ingredients)
	queryBus.Register(queries.ListIngredientsQuery{}, &QueryHandlerAdapter{
		handler: func(ctx context.Context, query querybus.Query) (interface{}, error) {
			listQuery, ok := query.(queries.ListIngredientsQuery)
			if !ok {
				return nil, fmt.Errorf("invalid query type")
			}
			return ingredientsHandler.Handle(ctx, listQuery)
		},
	})

	return queryBus
}

// ProvideCache creates the in-process read-side cache
func ProvideCache() ports.Cache {
	return cache.NewMemory()
}
