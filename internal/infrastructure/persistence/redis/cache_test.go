package redis

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"finpin-api/internal/config"
)

func newMiniredisClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("bad miniredis port: %v", err)
	}
	client, err := NewClient(&config.RedisConfig{
		Host:        mr.Host(),
		Port:        port,
		DialTimeout: time.Second,
		ReadTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("connect miniredis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestHealthCheck(t *testing.T) {
	client, mr := newMiniredisClient(t)
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	mr.SetError("LOADING dataset")
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatalf("expected health check failure")
	}
}

func TestGetOrLoadSafeMissHitAndExpiry(t *testing.T) {
	client, mr := newMiniredisClient(t)
	cache := NewCache(client)
	ctx := context.Background()
	key := "geocode:48.8584,2.2945"
	ttl := 10 * time.Minute

	var calls int
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return map[string]string{"name": "Eiffel Tower"}, nil
	}

	raw, hit, err := cache.GetOrLoadSafe(ctx, key, ttl, loader)
	if err != nil || hit {
		t.Fatalf("first call: hit=%v err=%v", hit, err)
	}
	if string(raw) != `{"name":"Eiffel Tower"}` {
		t.Fatalf("unexpected value %s", raw)
	}
	stored, err := mr.Get(key)
	if err != nil || stored != string(raw) {
		t.Fatalf("value not written back: %q %v", stored, err)
	}
	if got := mr.TTL(key); got != ttl {
		t.Fatalf("expected ttl %v, got %v", ttl, got)
	}

	raw, hit, err = cache.GetOrLoadSafe(ctx, key, ttl, loader)
	if err != nil || !hit || calls != 1 {
		t.Fatalf("second call: hit=%v err=%v calls=%d", hit, err, calls)
	}
	if string(raw) != `{"name":"Eiffel Tower"}` {
		t.Fatalf("unexpected cached value %s", raw)
	}

	mr.FastForward(ttl + time.Second)
	if _, hit, err = cache.GetOrLoadSafe(ctx, key, ttl, loader); err != nil || hit || calls != 2 {
		t.Fatalf("after expiry: hit=%v err=%v calls=%d", hit, err, calls)
	}
}

func TestGetOrLoadSafeLoaderErrorNotCached(t *testing.T) {
	client, mr := newMiniredisClient(t)
	cache := NewCache(client)
	boom := errors.New("upstream down")

	_, _, err := cache.GetOrLoadSafe(context.Background(), "geocode:1,1", time.Minute, func(ctx context.Context) (interface{}, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if mr.Exists("geocode:1,1") {
		t.Fatalf("failed load must not be cached")
	}
}

func TestGetOrLoadSafeFallsBackWhenRedisFails(t *testing.T) {
	client, mr := newMiniredisClient(t)
	cache := NewCache(client)
	mr.SetError("LOADING dataset")

	var calls int
	raw, hit, err := cache.GetOrLoadSafe(context.Background(), "geocode:2,2", time.Minute, func(ctx context.Context) (interface{}, error) {
		calls++
		return "Somewhere", nil
	})
	if err != nil || hit || calls != 1 {
		t.Fatalf("expected direct load, hit=%v err=%v calls=%d", hit, err, calls)
	}
	if string(raw) != `"Somewhere"` {
		t.Fatalf("unexpected value %s", raw)
	}
}

func TestGetOrLoadSafeCoalescesConcurrentLoads(t *testing.T) {
	client, _ := newMiniredisClient(t)
	cache := NewCache(client)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	loader := func(ctx context.Context) (interface{}, error) {
		calls.Add(1)
		once.Do(func() { close(started) })
		<-release
		return "Times Square", nil
	}

	const callers = 5
	var wg sync.WaitGroup
	results := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			raw, _, err := cache.GetOrLoadSafe(context.Background(), "geocode:40.758,-73.9855", time.Minute, loader)
			results[i], errs[i] = string(raw), err
		}(i)
	}

	<-started
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one upstream load, got %d", got)
	}
	for i := range results {
		if errs[i] != nil || results[i] != `"Times Square"` {
			t.Fatalf("caller %d: %q %v", i, results[i], errs[i])
		}
	}
}

func TestGetOrLoadSafeCancelledCallerDoesNotFailOthers(t *testing.T) {
	client, mr := newMiniredisClient(t)
	cache := NewCache(client)
	key := "geocode:1,1"

	started := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	loader := func(ctx context.Context) (interface{}, error) {
		once.Do(func() { close(started) })
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return "Null Island", nil
	}

	type outcome struct {
		raw []byte
		err error
	}
	firstCtx, cancelFirst := context.WithCancel(context.Background())
	defer cancelFirst()

	first := make(chan outcome, 1)
	go func() {
		raw, _, err := cache.GetOrLoadSafe(firstCtx, key, time.Minute, loader)
		first <- outcome{raw, err}
	}()
	<-started

	second := make(chan outcome, 1)
	go func() {
		raw, _, err := cache.GetOrLoadSafe(context.Background(), key, time.Minute, loader)
		second <- outcome{raw, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancelFirst()
	if got := <-first; !errors.Is(got.err, context.Canceled) {
		t.Fatalf("cancelled caller: expected context.Canceled, got %v", got.err)
	}

	close(release)
	got := <-second
	if got.err != nil {
		t.Fatalf("live caller failed: %v", got.err)
	}
	if string(got.raw) != `"Null Island"` {
		t.Fatalf("unexpected value %s", got.raw)
	}
	if !mr.Exists(key) {
		t.Fatalf("shared load should still be written back")
	}
}
