package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"finpin-api/internal/domain/entity"
	"finpin-api/pkg/logger"
	"finpin-api/pkg/metrics"
)

// Geocoder 逆地理编码能力
type Geocoder interface {
	ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceInfo, error)
}

// KVCache Read-Through 缓存
type KVCache interface {
	GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (interface{}, error)) ([]byte, bool, error)
}

// CachedGeocoder 为 Geocoder 增加坐标级缓存
type CachedGeocoder struct {
	next  Geocoder
	cache KVCache
	ttl   time.Duration
}

// NewCachedGeocoder 包装 next；cache 为空时直接透传
func NewCachedGeocoder(next Geocoder, cache KVCache, ttl time.Duration) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, ttl: ttl}
}

// CacheKey 坐标缓存键
func CacheKey(coord entity.Coordinate) string {
	return fmt.Sprintf("geocode:%s,%s", formatCoord(coord.Latitude), formatCoord(coord.Longitude))
}

// ReverseGeocode 先查缓存，未命中时调用下游并回填
func (g *CachedGeocoder) ReverseGeocode(ctx context.Context, coord entity.Coordinate) (*entity.PlaceInfo, error) {
	if g.cache == nil {
		return g.next.ReverseGeocode(ctx, coord)
	}

	raw, hit, err := g.cache.GetOrLoadSafe(ctx, CacheKey(coord), g.ttl, func(ctx context.Context) (interface{}, error) {
		return g.next.ReverseGeocode(ctx, coord)
	})
	if err != nil {
		return nil, err
	}

	var place entity.PlaceInfo
	if err := json.Unmarshal(raw, &place); err != nil {
		// 缓存内容损坏时回源
		logger.Warn(ctx, "cached place decode failed", "key", CacheKey(coord), "error", err.Error())
		metrics.GeocodeCacheTotal.WithLabelValues("corrupt").Inc()
		return g.next.ReverseGeocode(ctx, coord)
	}

	if hit {
		metrics.GeocodeCacheTotal.WithLabelValues("hit").Inc()
	} else {
		metrics.GeocodeCacheTotal.WithLabelValues("miss").Inc()
	}
	return &place, nil
}
