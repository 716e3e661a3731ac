package provider

import (
	"context"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nostromo/mother/internal/settings"
)

const (
	maxTokens   = 500
	temperature = 0.7
)

// Result of a chat request. Error carries configuration problems meant to be shown to the user.
type Result struct {
	Content string
	Error   string
}

// Request to a backend.
type Request struct {
	Model        string
	SystemPrompt string
	Text         string
	Settings     settings.Settings
}

// Backend is one AI vendor.
type Backend interface {
	// Name used in user-facing messages ("OpenAI").
	Name() string
	// DefaultModel used when no model is configured.
	DefaultModel() string
	// Check returns a configuration error, or nil when a request can be attempted.
	Check(settings.Settings) error
	// Complete sends the request and returns the reply text.
	Complete(ctx context.Context, request Request) (string, error)
	// Models available to the user.
	Models(ctx context.Context, settings settings.Settings) ([]Model, error)
}

// Config of a Gateway.
type Config struct {
	// Timeout of a single request. Zero means no timeout.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *zap.Logger

	// Base urls of the hosted vendors. Empty uses the vendor default.
	OpenAIBaseURL    string
	AnthropicBaseURL string
	GoogleBaseURL    string
}

// Gateway dispatches chat requests to the backend selected by the settings.
type Gateway struct {
	backends map[settings.Provider]Backend
	timeout  time.Duration
	logger   *zap.Logger
}

// New returns a Gateway over the four built-in backends.
func New(config Config) *Gateway {
	if config.HTTPClient == nil {
		config.HTTPClient = http.DefaultClient
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return NewWithBackends(config, map[settings.Provider]Backend{
		settings.ProviderOllama:    NewOllamaBackend(config.HTTPClient),
		settings.ProviderOpenAI:    NewOpenAIBackend(config.HTTPClient, config.OpenAIBaseURL),
		settings.ProviderGoogle:    NewGoogleBackend(config.HTTPClient, config.GoogleBaseURL),
		settings.ProviderAnthropic: NewAnthropicBackend(config.HTTPClient, config.AnthropicBaseURL),
	})
}

// NewWithBackends returns a Gateway over the given backends.
func NewWithBackends(config Config, backends map[settings.Provider]Backend) *Gateway {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	return &Gateway{backends: backends, timeout: config.Timeout, logger: config.Logger}
}

// Send text to the configured backend.
// Configuration problems come back in Result.Error; transport failures as an error.
func (g *Gateway) Send(ctx context.Context, text string, s settings.Settings) (Result, error) {
	backend, ok := g.backends[s.AIProvider]
	if !ok {
		return Result{Error: "Unsupported AI provider"}, nil
	}
	if err := backend.Check(s); err != nil {
		return Result{Error: err.Error()}, nil
	}

	model := s.CurrentModel
	if model == "" {
		model = backend.DefaultModel()
	}
	systemPrompt, err := RenderSystemPrompt(s.AIProvider, model)
	if err != nil {
		return Result{}, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	start := time.Now()
	content, err := backend.Complete(ctx, Request{Model: model, SystemPrompt: systemPrompt, Text: text, Settings: s})
	if err != nil {
		g.logger.Error("sending message", zap.String("provider", string(s.AIProvider)), zap.String("model", model), zap.Error(err))
		return Result{}, err
	}
	g.logger.Debug(
		"received reply", zap.String("provider", string(s.AIProvider)), zap.String("model", model),
		zap.Duration("latency", time.Since(start)), zap.Int("length", len(content)),
	)
	if strings.TrimSpace(content) == "" {
		content = "No response from " + backend.Name()
	}
	return Result{Content: content}, nil
}

// FetchModels lists the models of the configured backend. Never fails: errors are logged and yield no models.
func (g *Gateway) FetchModels(ctx context.Context, s settings.Settings) []Model {
	backend, ok := g.backends[s.AIProvider]
	if !ok {
		return nil
	}
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	models, err := backend.Models(ctx, s)
	if err != nil {
		g.logger.Warn("fetching models", zap.String("provider", string(s.AIProvider)), zap.Error(err))
		return nil
	}
	return models
}
