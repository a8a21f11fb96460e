package client

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// LLMClient probes OpenAI-compatible chat endpoints. Used by the model
// connectivity check, not by task execution (tasks run on the executor side).
type LLMClient interface {
	Ping(ctx context.Context, baseUrl, apiKey, modelName string) error
}

func NewLLMClient() LLMClient {
	return &llmClientImpl{}
}

type llmClientImpl struct{}

func (l llmClientImpl) Ping(ctx context.Context, baseUrl, apiKey, modelName string) error {
	if apiKey == "" {
		return errors.New("api key is required")
	}
	if modelName == "" {
		return errors.New("model name is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseUrl != "" {
		opts = append(opts, option.WithBaseURL(baseUrl))
	}

	tr := http.Transport{TLSClientConfig: &tls.Config{InsecureSkipVerify: true}}
	cl := http.Client{Transport: &tr, Timeout: time.Second * 30}
	opts = append(opts, option.WithHTTPClient(&cl))

	client := openai.NewClient(opts...)

	chat, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage("ping")},
		Model:               modelName,
		MaxCompletionTokens: openai.Int(1),
	})
	if err != nil {
		return err
	}
	if len(chat.Choices) == 0 {
		return errors.New("provider returned an empty completion")
	}
	return nil
}
