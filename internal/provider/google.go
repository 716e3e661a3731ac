package provider

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/nostromo/mother/internal/settings"
)

// GoogleBackend uses the Gemini generateContent API.
type GoogleBackend struct {
	httpClient *http.Client
	baseURL    string
}

// NewGoogleBackend returns a GoogleBackend. An empty baseURL uses the public API.
func NewGoogleBackend(httpClient *http.Client, baseURL string) *GoogleBackend {
	return &GoogleBackend{httpClient: httpClient, baseURL: baseURL}
}

func (b *GoogleBackend) Name() string         { return "Google" }
func (b *GoogleBackend) DefaultModel() string { return "gemini-pro" }

// Check implements Backend.
func (b *GoogleBackend) Check(s settings.Settings) error {
	if s.GoogleAPIKey == "" {
		return errors.New("Google API key not configured")
	}
	return nil
}

// Complete implements Backend.
func (b *GoogleBackend) Complete(ctx context.Context, request Request) (string, error) {
	config := &genai.ClientConfig{
		APIKey:     request.Settings.GoogleAPIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: b.httpClient,
	}
	if b.baseURL != "" {
		config.HTTPOptions.BaseURL = b.baseURL
	}
	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return "", errors.Wrap(err, "creating genai client")
	}

	// Persona goes in front of the user text.
	contents := []*genai.Content{
		genai.NewContentFromText(request.SystemPrompt+"\n\nUser: "+request.Text, genai.RoleUser),
	}
	response, err := client.Models.GenerateContent(ctx, request.Model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		MaxOutputTokens: maxTokens,
	})
	if err != nil {
		if code, ok := googleStatusCode(err); ok {
			return "", errors.Errorf("Google API error: %d", code)
		}
		return "", errors.Wrap(err, "Google API error")
	}
	return response.Text(), nil
}

// Models implements Backend.
func (b *GoogleBackend) Models(context.Context, settings.Settings) ([]Model, error) {
	return fixedModels("gemini-pro", "gemini-pro-vision"), nil
}

func googleStatusCode(err error) (int, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		switch apiError := err.(type) {
		case genai.APIError:
			return apiError.Code, true
		case *genai.APIError:
			return apiError.Code, true
		}
	}
	return 0, false
}
