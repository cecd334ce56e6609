package ai

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

var _ Embedder = (*EmbeddingsService)(nil)

// EmbeddingsService provides embeddings for the semantic retrieval path.
// Optional: the memory store falls back to substring ranking without it.
type EmbeddingsService struct {
	client *openai.Client
	logger *log.Logger
}

func NewEmbeddingsService(logger *log.Logger, apiKey, baseURL string) *EmbeddingsService {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	)
	return &EmbeddingsService{
		client: &client,
		logger: logger,
	}
}

func (s *EmbeddingsService) Embeddings(ctx context.Context, inputs []string, model string) ([][]float64, error) {
	embedding, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: inputs,
		},
	})
	if err != nil {
		return nil, err
	}
	var embeddings [][]float64
	for _, item := range embedding.Data {
		embeddings = append(embeddings, item.Embedding)
	}
	return embeddings, nil
}

func (s *EmbeddingsService) Embedding(ctx context.Context, input string, model string) ([]float64, error) {
	embedding, err := s.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: param.Opt[string]{
				Value: input,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(embedding.Data) == 0 {
		return nil, &TransportError{Body: "embeddings response contained no data"}
	}
	return embedding.Data[0].Embedding, nil
}
