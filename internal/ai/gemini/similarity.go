package gemini

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Jitender135/AI-Powered-Resume-Screener-CVNLP/internal/utils"
)

type embedder interface {
	Embed(ctx context.Context, texts ...string) ([][]float32, error)
}

// Similarity scores two texts by the cosine similarity of their embeddings,
// scaled to [0, 100].
type Similarity struct {
	embedder embedder
}

// NewSimilarity returns a similarity scorer backed by e.
func NewSimilarity(e embedder) *Similarity {
	return &Similarity{embedder: e}
}

// Similarity implements ai.SimilarityScorer.
func (s *Similarity) Similarity(ctx context.Context, a, b string) (float64, error) {
	if s == nil || s.embedder == nil {
		return 0, errors.New("embedder is not configured")
	}
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0, nil
	}

	vectors, err := s.embedder.Embed(ctx, a, b)
	if err != nil {
		return 0, err
	}
	if len(vectors) != 2 {
		return 0, errors.New("expected two embeddings")
	}

	cos, err := cosine(vectors[0], vectors[1])
	if err != nil {
		return 0, err
	}

	return utils.Round2(utils.ClampPercent(cos * 100)), nil
}

func cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, errors.New("embedding dimensions do not match")
	}

	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	if na == 0 || nb == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
