// Package llm 提供生成式文本接口客户端
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"finpin-api/internal/config"
	apperrors "finpin-api/pkg/errors"
	"finpin-api/pkg/metrics"
	"finpin-api/pkg/tracer"
	"finpin-api/pkg/utils"
)

// GeminiClient generateContent 接口客户端，单次调用，不做重试
type GeminiClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content *struct {
			Parts []struct {
				Text *string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// NewGeminiClient 创建客户端；httpClient 为空时按配置超时新建
func NewGeminiClient(cfg *config.GenerativeConfig, httpClient *http.Client) *GeminiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gemini-pro"
	}
	return &GeminiClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      model,
		httpClient: httpClient,
	}
}

// Model 当前使用的模型名
func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))
}

// GenerateText 发送 prompt 并返回 candidates[0].content.parts[0].text
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (text string, err error) {
	ctx, span := tracer.StartClient(ctx, "llm.GenerateText",
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_chars", len(prompt)),
	)
	start := time.Now()
	defer func() {
		status := "success"
		if err != nil {
			status = string(apperrors.AsAppError(err).Code)
		}
		metrics.LLMCallTotal.WithLabelValues(c.model, status).Inc()
		metrics.LLMCallDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
		tracer.Finish(span, err)
	}()

	body, err := json.Marshal(&generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperrors.ErrInternalError.WithError(fmt.Errorf("failed to marshal generate request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", apperrors.ErrInternalError.WithError(fmt.Errorf("failed to create generate request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.ErrNetwork.WithError(fmt.Errorf("generate request failed: %w", utils.RedactSecret(err, c.apiKey)))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.ErrNetwork.WithError(fmt.Errorf("failed to read generate response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.ErrNoResponse.WithDetail(fmt.Sprintf("generate status=%d", resp.StatusCode))
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", apperrors.ErrParsing.WithError(fmt.Errorf("failed to decode generate response: %w", err))
	}

	text, ok := firstText(&decoded)
	if !ok {
		return "", apperrors.ErrNoResponse.WithDetail("candidates[0].content.parts[0].text missing")
	}
	return text, nil
}

func firstText(r *generateResponse) (string, bool) {
	if len(r.Candidates) == 0 {
		return "", false
	}
	c := r.Candidates[0].Content
	if c == nil || len(c.Parts) == 0 || c.Parts[0].Text == nil {
		return "", false
	}
	if *c.Parts[0].Text == "" {
		return "", false
	}
	return *c.Parts[0].Text, true
}
