package provider

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"

	"github.com/nostromo/mother/internal/settings"
)

// OpenAIBackend uses the chat completions API.
type OpenAIBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewOpenAIBackend returns an OpenAIBackend. An empty baseURL uses the public API.
func NewOpenAIBackend(httpClient *http.Client, baseURL string) *OpenAIBackend {
	return &OpenAIBackend{httpClient: httpClient, baseURL: baseURL}
}

func (b *OpenAIBackend) Name() string         { return "OpenAI" }
func (b *OpenAIBackend) DefaultModel() string { return openai.GPT3Dot5Turbo }

// Check implements Backend.
func (b *OpenAIBackend) Check(s settings.Settings) error {
	if s.OpenAIAPIKey == "" {
		return errors.New("OpenAI API key not configured")
	}
	return nil
}

// Complete implements Backend.
func (b *OpenAIBackend) Complete(ctx context.Context, request Request) (string, error) {
	config := openai.DefaultConfig(request.Settings.OpenAIAPIKey)
	if b.baseURL != "" {
		config.BaseURL = b.baseURL
	}
	config.HTTPClient = b.httpClient
	client := openai.NewClientWithConfig(config)

	response, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: request.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: request.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: request.Text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", openAIError(err)
	}
	if len(response.Choices) == 0 {
		return "", nil
	}
	return response.Choices[0].Message.Content, nil
}

// Models implements Backend.
func (b *OpenAIBackend) Models(context.Context, settings.Settings) ([]Model, error) {
	return fixedModels(openai.GPT4, openai.GPT3Dot5Turbo), nil
}

func openAIError(err error) error {
	var apiError *openai.APIError
	if errors.As(err, &apiError) && apiError.HTTPStatusCode != 0 {
		return errors.Errorf("OpenAI API error: %d", apiError.HTTPStatusCode)
	}
	var requestError *openai.RequestError
	if errors.As(err, &requestError) && requestError.HTTPStatusCode != 0 {
		return errors.Errorf("OpenAI API error: %d", requestError.HTTPStatusCode)
	}
	return errors.Wrap(err, "OpenAI API error")
}
