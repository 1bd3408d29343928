//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"whiteboard/infrastructure/config"
	"whiteboard/pkg/ratelimit"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideBoard,
	ProvideCollector,
	ProvideMetricsRecorder,
	ProvideTracer,
	ProvideEventBus,
	ProvideEventBridgePublisher,
	ProvidePublisher,
	ProvideBoardService,
	ProvideCommandBus,
	ProvideQueryBus,
	ProvideRateLimiter,
	wire.Bind(new(ratelimit.Limiter), new(*ratelimit.TokenBucketLimiter)),
	ProvideErrorHandler,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
