// Package scoring implements the deterministic fit index calculation. Two
// strategies coexist on purpose: the seeker view (fixed point allocations)
// and the employer view (weighted percentages). They disagree on
// what "skills" and "experience" mean and must not be merged.
package scoring

import (
	"context"
	"math"

	"github.com/fadilmartias/talent-matcher/internal/model"
)

type Strategy string

const (
	StrategySeekerView   Strategy = "seeker_view"
	StrategyEmployerView Strategy = "employer_view"
)

// Options carries per-call inputs that are not part of the candidate/job pair.
type Options struct {
	// RetrievalScore is the cosine similarity from the vector index hit that
	// produced this pairing. Only the seeker strategy consumes it.
	RetrievalScore float64
}

// FitScorer computes an explainable 0-100 fit index for a candidate/job pair.
type FitScorer interface {
	Strategy() Strategy
	Score(ctx context.Context, candidate *model.Candidate, job *model.JobPosting, opts Options) (*model.MatchResult, error)
}

// SimilarityFunc answers how semantically close two texts are, in [0,1].
type SimilarityFunc func(ctx context.Context, a, b string) (float64, error)

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundRatio(numerator, denominator, budget float64) int {
	if denominator == 0 {
		return int(budget)
	}
	return int(math.Round(numerator / denominator * budget))
}
