package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/pkg/errors"

	"github.com/nostromo/mother/internal/settings"
)

// AnthropicBackend uses the messages API.
type AnthropicBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewAnthropicBackend returns an AnthropicBackend. An empty baseURL uses the public API.
func NewAnthropicBackend(httpClient *http.Client, baseURL string) *AnthropicBackend {
	return &AnthropicBackend{httpClient: httpClient, baseURL: baseURL}
}

func (b *AnthropicBackend) Name() string         { return "Anthropic" }
func (b *AnthropicBackend) DefaultModel() string { return "claude-3-sonnet-20240229" }

// Check implements Backend.
func (b *AnthropicBackend) Check(s settings.Settings) error {
	if s.AnthropicAPIKey == "" {
		return errors.New("Anthropic API key not configured")
	}
	return nil
}

// Complete implements Backend.
func (b *AnthropicBackend) Complete(ctx context.Context, request Request) (string, error) {
	options := []option.RequestOption{
		option.WithAPIKey(request.Settings.AnthropicAPIKey),
		option.WithHTTPClient(b.httpClient),
		option.WithMaxRetries(0),
	}
	if b.baseURL != "" {
		options = append(options, option.WithBaseURL(b.baseURL))
	}
	client := anthropic.NewClient(options...)

	message, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(request.Model),
		MaxTokens: maxTokens,
		System:    []anthropic.TextBlockParam{{Text: request.SystemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(request.Text)),
		},
	})
	if err != nil {
		var apiError *anthropic.Error
		if errors.As(err, &apiError) {
			return "", errors.Errorf("Anthropic API error: %d", apiError.StatusCode)
		}
		return "", errors.Wrap(err, "Anthropic API error")
	}

	var builder strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	return builder.String(), nil
}

// Models implements Backend.
func (b *AnthropicBackend) Models(context.Context, settings.Settings) ([]Model, error) {
	return fixedModels("claude-3-sonnet-20240229", "claude-3-haiku-20240307"), nil
}
