package di

import (
	"whiteboard/application/commands/bus"
	"whiteboard/application/ports"
	querybus "whiteboard/application/queries/bus"
	"whiteboard/application/services"
	"whiteboard/infrastructure/config"
	"whiteboard/infrastructure/messaging"
	"whiteboard/interfaces/http/rest"
	pkgerrors "whiteboard/pkg/errors"
	"whiteboard/pkg/observability"
	"whiteboard/pkg/ratelimit"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Collector    *observability.Collector
	Tracer       *observability.Tracer
	EventBus     *messaging.InMemoryEventBus
	Publisher    ports.EventPublisher
	BoardService *services.BoardService
	CommandBus   *bus.CommandBus
	QueryBus     *querybus.QueryBus
	RateLimiter  *ratelimit.TokenBucketLimiter
	ErrorHandler *pkgerrors.ErrorHandler
	Router       *rest.Router
}

// Close flushes the logger
func (c *Container) Close() error {
	if c.Logger == nil {
		return nil
	}
	return c.Logger.Sync()
}
