package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finpin-api/internal/config"
	apperrors "finpin-api/pkg/errors"
)

func newTestClient(baseURL string) *GeminiClient {
	return NewGeminiClient(&config.GenerativeConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Model:   "gemini-pro",
		Timeout: 2 * time.Second,
	}, nil)
}

func TestGenerateTextSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`))
	}))
	defer srv.Close()

	text, err := newTestClient(srv.URL).GenerateText(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "hello" {
		t.Fatalf("expected hello, got %q", text)
	}
	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("unexpected key %q", gotKey)
	}

	contents, ok := gotBody["contents"].([]any)
	if !ok || len(contents) != 1 {
		t.Fatalf("unexpected contents: %v", gotBody)
	}
	parts := contents[0].(map[string]any)["parts"].([]any)
	if parts[0].(map[string]any)["text"] != "say hi" {
		t.Fatalf("prompt not forwarded: %v", parts)
	}
}

func TestGenerateTextMissingText(t *testing.T) {
	cases := map[string]string{
		"no candidates": `{"candidates":[]}`,
		"no content":    `{"candidates":[{}]}`,
		"no parts":      `{"candidates":[{"content":{"parts":[]}}]}`,
		"empty text":    `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
			if !errors.Is(err, apperrors.ErrNoResponse) {
				t.Fatalf("expected ErrNoResponse, got %v", err)
			}
		})
	}
}

func TestGenerateTextNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	if !errors.Is(err, apperrors.ErrNoResponse) {
		t.Fatalf("expected ErrNoResponse, got %v", err)
	}
}

func TestGenerateTextInvalidEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateText(context.Background(), "p")
	if !errors.Is(err, apperrors.ErrParsing) {
		t.Fatalf("expected ErrParsing, got %v", err)
	}
}

func TestGenerateTextNetworkFailureRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	_, err := newTestClient(baseURL).GenerateText(context.Background(), "p")
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
	if strings.Contains(err.Error(), "test-key") {
		t.Fatalf("api key leaked in error: %v", err)
	}
}

func TestGenerateTextCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"late"}]}}]}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).GenerateText(ctx, "p")
	if !errors.Is(err, apperrors.ErrNetwork) {
		t.Fatalf("expected ErrNetwork for cancelled context, got %v", err)
	}
}

func TestNewGeminiClientDefaultsModel(t *testing.T) {
	c := NewGeminiClient(&config.GenerativeConfig{BaseURL: "http://x/"}, nil)
	if c.Model() != "gemini-pro" {
		t.Fatalf("expected default model, got %s", c.Model())
	}
	if !strings.HasPrefix(c.endpoint(), "http://x/v1beta/") {
		t.Fatalf("trailing slash not trimmed: %s", c.endpoint())
	}
}
