package wire

import (
	"context"
	"fmt"

	"finpin-api/internal/application/suggestion"
	"finpin-api/internal/application/trip"
	"finpin-api/internal/config"
	"finpin-api/internal/domain/repository"
	"finpin-api/internal/infrastructure/geocoding"
	"finpin-api/internal/infrastructure/llm"
	"finpin-api/internal/infrastructure/persistence/redis"
	"finpin-api/internal/interfaces/http/handler"
	"finpin-api/internal/interfaces/http/middleware"
	"finpin-api/pkg/logger"
)

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, geocode cache and rate limit off")
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("redis enabled but unavailable: %w", err)
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideGeocodeCache 提供逆地理编码缓存，Redis 未启用时返回 nil
func ProvideGeocodeCache(client *redis.Client) geocoding.KVCache {
	if client == nil {
		return nil
	}
	return redis.NewCache(client)
}

// ProvideRateLimiter 提供限流器，Redis 未启用时返回 nil
func ProvideRateLimiter(client *redis.Client) middleware.RateLimiter {
	if client == nil {
		return nil
	}
	return redis.NewRateLimiter(client)
}

// ProvideHealthChecker 就绪检查依赖
func ProvideHealthChecker(client *redis.Client) handler.HealthChecker {
	if client == nil {
		return nil
	}
	return client
}

// ProvideGeminiClient 提供生成式文本客户端
func ProvideGeminiClient(cfg *config.Config) *llm.GeminiClient {
	return llm.NewGeminiClient(&cfg.AI.Generative, nil)
}

// ProvideGeocoder 提供逆地理编码器，TTL<=0 时不缓存
func ProvideGeocoder(cfg *config.Config, cache geocoding.KVCache) suggestion.ReverseGeocoder {
	client := geocoding.NewClient(&cfg.AI.Geocoding, nil)
	if cache == nil || cfg.Cache.Redis.GeocodeTTL <= 0 {
		return client
	}
	return geocoding.NewCachedGeocoder(client, cache, cfg.Cache.Redis.GeocodeTTL)
}

// ProvideTripService 提供行程服务，按开关写入示例行程
func ProvideTripService(ctx context.Context, cfg *config.Config, repo repository.TripRepository) (*trip.Service, error) {
	svc := trip.NewService(repo)
	if cfg.Features.SeedDemoTrip {
		if _, err := svc.SeedDemoTrip(ctx); err != nil {
			return nil, fmt.Errorf("failed to seed demo trip: %w", err)
		}
	}
	return svc, nil
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, checker handler.HealthChecker) *handler.HealthHandler {
	return handler.NewHealthHandler(cfg.App.Version, checker)
}
