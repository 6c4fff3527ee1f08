// Package ai declares the optional model-backed collaborators used by the
// scoring core. Implementations may block and may fail; callers treat any
// failure as "no signal".
package ai

import "context"

// SimilarityScorer compares two texts and returns a score in [0, 100].
type SimilarityScorer interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// NameRecognizer returns the first person name found in text, or "".
type NameRecognizer interface {
	RecognizePerson(ctx context.Context, text string) (string, error)
}
