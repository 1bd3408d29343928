package di

import (
	"context"
	"fmt"
	"time"

	"whiteboard/application/commands/bus"
	commandhandlers "whiteboard/application/commands/handlers"
	"whiteboard/application/ports"
	querybus "whiteboard/application/queries/bus"
	queryhandlers "whiteboard/application/queries/handlers"
	"whiteboard/application/services"
	domainconfig "whiteboard/domain/config"
	"whiteboard/domain/core/aggregates"
	"whiteboard/domain/events"
	"whiteboard/infrastructure/config"
	"whiteboard/infrastructure/messaging"
	"whiteboard/interfaces/http/rest"
	pkgerrors "whiteboard/pkg/errors"
	"whiteboard/pkg/observability"
	"whiteboard/pkg/ratelimit"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

const (
	serviceName      = "whiteboard"
	slowQueryLimit   = 250 * time.Millisecond
	metricsNamespace = "whiteboard"
)

// ProvideLogger creates a zap logger for the environment
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if cfg.IsProduction() {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	switch cfg.LogLevel {
	case "debug":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapConfig.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.With(zap.String("service", serviceName), zap.String("environment", cfg.Environment)), nil
}

// ProvideDomainConfig resolves the canvas rules
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	return cfg.DomainConfig()
}

// ProvideBoard creates the empty board
func ProvideBoard(dc *domainconfig.DomainConfig) (*aggregates.Board, error) {
	return aggregates.NewBoardWithConfig(dc)
}

// ProvideCollector creates the Prometheus collector, or nil when metrics are off
func ProvideCollector(cfg *config.Config) *observability.Collector {
	if !cfg.EnableMetrics {
		return nil
	}
	return observability.NewCollector(metricsNamespace)
}

// ProvideMetricsRecorder exposes the collector to the application layer
func ProvideMetricsRecorder(collector *observability.Collector) ports.MetricsRecorder {
	if collector == nil {
		return ports.NoopMetrics{}
	}
	return collector
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideEventBus creates the in-process event bus. Every event is logged at debug level.
func ProvideEventBus(logger *zap.Logger) (*messaging.InMemoryEventBus, error) {
	eventBus := messaging.NewInMemoryEventBus(logger)
	err := eventBus.Subscribe(messaging.AllEvents, ports.EventHandlerFunc(func(ctx context.Context, event events.DomainEvent) error {
		logger.Debug("Domain event",
			zap.String("type", event.GetEventType()),
			zap.String("aggregate_id", event.GetAggregateID()),
		)
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return eventBus, nil
}

// ProvideEventBridgePublisher creates the EventBridge publisher. It returns
// nil when no event bus is configured.
func ProvideEventBridgePublisher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*messaging.EventBridgePublisher, error) {
	if cfg.EventBusName == "" {
		logger.Info("EventBridge publishing disabled; no event bus configured")
		return nil, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := eventbridge.NewFromConfig(awsCfg)
	return messaging.NewEventBridgePublisher(
		client,
		cfg.EventBusName,
		cfg.EventSource,
		messaging.DefaultBreakerSettings(),
		logger,
	), nil
}

// ProvidePublisher combines the in-process bus with EventBridge when present
func ProvidePublisher(eventBus *messaging.InMemoryEventBus, remote *messaging.EventBridgePublisher) ports.EventPublisher {
	if remote == nil {
		return eventBus
	}
	return messaging.NewFanoutPublisher(eventBus, remote)
}

// ProvideBoardService creates the board service
func ProvideBoardService(
	board *aggregates.Board,
	publisher ports.EventPublisher,
	metrics ports.MetricsRecorder,
	logger *zap.Logger,
) *services.BoardService {
	return services.NewBoardService(board, publisher, metrics, logger)
}

// ProvideCommandBus creates a command bus with registered handlers
func ProvideCommandBus(
	service *services.BoardService,
	tracer *observability.Tracer,
	logger *zap.Logger,
) (*bus.CommandBus, error) {
	commandBus := bus.NewCommandBus(
		bus.LoggingMiddleware(logger),
		bus.TracingMiddleware(tracer),
	)

	handler := commandhandlers.NewBoardCommandHandler(service, logger)
	if err := handler.Register(commandBus); err != nil {
		return nil, fmt.Errorf("failed to register command handlers: %w", err)
	}
	return commandBus, nil
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(service *services.BoardService, logger *zap.Logger) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus(querybus.LoggingMiddleware(logger, slowQueryLimit))

	handler := queryhandlers.NewBoardQueryHandler(service, logger)
	if err := handler.Register(queryBus); err != nil {
		return nil, fmt.Errorf("failed to register query handlers: %w", err)
	}
	return queryBus, nil
}

// ProvideRateLimiter creates the per-client token bucket limiter
func ProvideRateLimiter(cfg *config.Config) *ratelimit.TokenBucketLimiter {
	return ratelimit.NewTokenBucketLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
}

// ProvideErrorHandler creates the HTTP error handler. Details are exposed outside production.
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *pkgerrors.ErrorHandler {
	return pkgerrors.NewErrorHandler(logger, !cfg.IsProduction())
}

// ProvideRouter creates the REST router
func ProvideRouter(
	cfg *config.Config,
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	collector *observability.Collector,
	limiter ratelimit.Limiter,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(
		commandBus,
		queryBus,
		collector,
		limiter,
		errorHandler,
		rest.RouterConfig{
			EnableCORS:     cfg.EnableCORS,
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimit:      cfg.RateLimitRPS,
			RequestTimeout: cfg.RequestTimeout,
		},
		logger,
	)
}
