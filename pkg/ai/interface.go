package ai

import "context"

type Generator interface {
	Generate(ctx context.Context, prompt string, maxOutputTokens int, temperature float64) (string, error)
}

type Embedder interface {
	Embedding(ctx context.Context, input string, model string) ([]float64, error)
	Embeddings(ctx context.Context, inputs []string, model string) ([][]float64, error)
}
