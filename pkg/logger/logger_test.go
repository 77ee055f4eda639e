package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestFromContextAddsKnownKeys(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "debug", "json")

	ctx := WithContext(context.Background(), RequestIDKey, "req-1")
	ctx = WithContext(ctx, TripIDKey, "trip-9")
	Error(ctx, "boom", errors.New("upstream down"), "op", "insights")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not json: %v\n%s", err, buf.String())
	}
	for key, want := range map[string]string{
		"msg":        "boom",
		"level":      "ERROR",
		"request_id": "req-1",
		"trip_id":    "trip-9",
		"error":      "upstream down",
		"op":         "insights",
	} {
		if entry[key] != want {
			t.Fatalf("%s: want %q, got %v", key, want, entry[key])
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", "text")

	Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}
	Warn(context.Background(), "shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Fatalf("warn should be written")
	}
}
