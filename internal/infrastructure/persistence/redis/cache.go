package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var cacheTracer = otel.Tracer("redis.cache")

// loadTimeout 单次回源加载的上限
const loadTimeout = 30 * time.Second

// Cache 缓存服务
type Cache struct {
	client *Client
	group  singleflight.Group
}

// NewCache 创建缓存服务
func NewCache(client *Client) *Cache {
	return &Cache{
		client: client,
	}
}

// GetOrLoadSafe Read-Through 缓存，使用 singleflight 合并相同 key 的并发加载
// Redis 读写失败时降级为直接加载，hit 表示结果是否来自缓存
func (c *Cache) GetOrLoadSafe(ctx context.Context, key string, ttl time.Duration, loader func(context.Context) (interface{}, error)) ([]byte, bool, error) {
	ctx, span := cacheTracer.Start(ctx, "cache.GetOrLoadSafe",
		trace.WithAttributes(attribute.String("cache.key", key)))
	defer span.End()

	val, err := c.client.rdb.Get(ctx, key).Bytes()
	if err == nil {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return val, true, nil
	}
	if err != redis.Nil {
		span.RecordError(err)
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	// 加载与回写脱离首个调用方的取消，每个调用方只等待自己的 ctx
	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		data, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}

		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data: %w", err)
		}

		if err := c.client.rdb.Set(loadCtx, key, bytes, ttl).Err(); err != nil {
			// 缓存写入失败不影响返回结果
			span.RecordError(err)
		}

		return bytes, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		span.RecordError(ctx.Err())
		return nil, false, ctx.Err()
	}

	span.SetAttributes(attribute.Bool("cache.shared", res.Shared))

	if res.Err != nil {
		span.RecordError(res.Err)
		return nil, false, res.Err
	}

	return res.Val.([]byte), false, nil
}
