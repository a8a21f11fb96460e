package client

import (
	"context"
	"errors"

	"github.com/tmc/langchaingo/embeddings"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// EmbeddingClient probes embedding endpoints via langchaingo, which covers
// OpenAI-compatible embedding providers with a single client.
type EmbeddingClient interface {
	Ping(ctx context.Context, baseUrl, apiKey, modelName string) (int, error)
}

func NewEmbeddingClient() EmbeddingClient {
	return &embeddingClientImpl{}
}

type embeddingClientImpl struct{}

// Ping embeds a single probe string and returns the vector dimension.
func (e embeddingClientImpl) Ping(ctx context.Context, baseUrl, apiKey, modelName string) (int, error) {
	if apiKey == "" {
		return 0, errors.New("api key is required")
	}
	if modelName == "" {
		return 0, errors.New("model name is required")
	}

	opts := []lcopenai.Option{
		lcopenai.WithToken(apiKey),
		lcopenai.WithEmbeddingModel(modelName),
	}
	if baseUrl != "" {
		opts = append(opts, lcopenai.WithBaseURL(baseUrl))
	}

	llm, err := lcopenai.New(opts...)
	if err != nil {
		return 0, err
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return 0, err
	}

	vector, err := embedder.EmbedQuery(ctx, "ping")
	if err != nil {
		return 0, err
	}
	if len(vector) == 0 {
		return 0, errors.New("provider returned an empty embedding")
	}
	return len(vector), nil
}
