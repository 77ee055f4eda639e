//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/config"
	"finpin-api/internal/domain/repository"
	"finpin-api/internal/infrastructure/llm"
	"finpin-api/internal/infrastructure/persistence/memory"
	"finpin-api/internal/interfaces/http/handler"
	"finpin-api/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		ExternalSet,
		RouterSet,
	)
	return nil, nil, nil
}

// RepoSet 仓储提供者集合
var RepoSet = wire.NewSet(
	memory.NewTripRepository,
	wire.Bind(new(repository.TripRepository), new(*memory.TripRepository)),
)

// RedisSet 可选 Redis（未启用时缓存与限流均关闭）
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideGeocodeCache,
	ProvideRateLimiter,
	ProvideHealthChecker,
)

// ExternalSet 外部 AI / 地图服务
var ExternalSet = wire.NewSet(
	ProvideGeminiClient,
	wire.Bind(new(suggestion.TextGenerator), new(*llm.GeminiClient)),
	ProvideGeocoder,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	suggestion.NewService,
	ProvideTripService,
	ProvideHealthHandler,
	handler.NewTripHandler,
	handler.NewSuggestionHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
