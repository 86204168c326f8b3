package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type MatchingConfig struct {
	VectorDimension    int
	EmbeddingModel     string
	CompletionModel    string
	EmbeddingCacheTTL  time.Duration
	CompletionCacheTTL time.Duration
	EmbeddingBatchSize int
	// RetrievalBuffer widens the top-K window beyond limit+offset so that
	// post-retrieval filtering still fills a page.
	RetrievalBuffer int
	RankingWorkers  int
	MaxApplications int
}

var (
	matchingConfig *MatchingConfig
	matchingOnce   sync.Once
)

func LoadMatchingConfig() *MatchingConfig {
	matchingOnce.Do(func() {
		matchingConfig = &MatchingConfig{
			VectorDimension:    envInt("MATCHING_VECTOR_DIMENSION", 1536),
			EmbeddingModel:     envString("MATCHING_EMBEDDING_MODEL", "gemini-embedding-001"),
			CompletionModel:    envString("MATCHING_COMPLETION_MODEL", "gemini-2.5-flash"),
			EmbeddingCacheTTL:  envDuration("MATCHING_EMBEDDING_CACHE_TTL", 24*time.Hour),
			CompletionCacheTTL: envDuration("MATCHING_COMPLETION_CACHE_TTL", time.Hour),
			EmbeddingBatchSize: envInt("MATCHING_EMBEDDING_BATCH_SIZE", 32),
			RetrievalBuffer:    envInt("MATCHING_RETRIEVAL_BUFFER", 20),
			RankingWorkers:     envInt("MATCHING_RANKING_WORKERS", 8),
			MaxApplications:    envInt("MATCHING_MAX_APPLICATIONS", 500),
		}
	})
	return matchingConfig
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
