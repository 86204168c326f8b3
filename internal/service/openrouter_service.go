package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fadilmartias/talent-matcher/internal/apperr"
	"github.com/fadilmartias/talent-matcher/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type OpenRouterServiceInterface interface {
	EmbeddingProvider
}

// OpenRouterService is the fallback embedding backend, speaking the
// OpenAI-compatible embeddings endpoint.
type OpenRouterService struct {
	APIKey  string
	BaseURL string
	Model   string
	Client  *resty.Client
	Logger  *zap.Logger
}

func NewOpenRouterService(logger *zap.Logger) *OpenRouterService {
	return &OpenRouterService{
		APIKey:  config.LoadOpenRouterConfig().APIKey,
		BaseURL: "https://openrouter.ai/api/v1",
		Model:   "openai/text-embedding-3-small",
		Client:  resty.New(),
		Logger:  logger,
	}
}

func (s *OpenRouterService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.BatchGenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (s *OpenRouterService) BatchGenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("texts for embedding cannot be empty")
	}
	for _, text := range texts {
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("text for embedding cannot be empty")
		}
	}

	resp, err := s.Client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+s.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]interface{}{
			"model": s.Model,
			"input": texts,
		}).
		Post(s.BaseURL + "/embeddings")
	if err != nil {
		return nil, fmt.Errorf("openrouter embeddings: %v: %w", err, apperr.ErrServiceUnavailable)
	}
	if resp.IsError() {
		s.Logger.Warn("openrouter embeddings error response",
			zap.Int("status", resp.StatusCode()),
			zap.String("body", resp.String()))
		return nil, fmt.Errorf("openrouter embeddings status %d: %w",
			resp.StatusCode(), apperr.ErrServiceUnavailable)
	}

	data := gjson.Get(resp.String(), "data")
	if !data.IsArray() || len(data.Array()) != len(texts) {
		return nil, fmt.Errorf("openrouter returned %d embeddings, expected %d: %w",
			len(data.Array()), len(texts), apperr.ErrServiceUnavailable)
	}

	vectors := make([][]float32, 0, len(texts))
	for _, item := range data.Array() {
		values := item.Get("embedding").Array()
		if len(values) == 0 {
			return nil, fmt.Errorf("openrouter returned an empty embedding: %w", apperr.ErrServiceUnavailable)
		}
		vec := make([]float32, 0, len(values))
		for _, v := range values {
			vec = append(vec, float32(v.Float()))
		}
		vectors = append(vectors, vec)
	}
	return vectors, nil
}
