package redis

import (
	"testing"
	"time"

	"finpin-api/internal/config"
)

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	_, err := NewClient(&config.RedisConfig{
		Host:        "127.0.0.1",
		Port:        1,
		DialTimeout: 200 * time.Millisecond,
		ReadTimeout: 200 * time.Millisecond,
	})
	if err == nil {
		t.Fatalf("expected ping failure for unreachable redis")
	}
}
