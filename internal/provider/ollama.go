package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/nostromo/mother/internal/settings"
)

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Messages []ollamaMessage `json:"messages"`
	Stream   bool            `json:"stream"`
}

// OllamaBackend talks to a local ollama server.
type OllamaBackend struct {
	client *http.Client
}

// NewOllamaBackend returns an OllamaBackend.
func NewOllamaBackend(client *http.Client) *OllamaBackend {
	return &OllamaBackend{client: client}
}

func (b *OllamaBackend) Name() string         { return "Ollama" }
func (b *OllamaBackend) DefaultModel() string { return "llama3.1:8b" }

// Check implements Backend.
func (b *OllamaBackend) Check(s settings.Settings) error {
	if s.OllamaURL == "" {
		return errors.New("Ollama URL not configured")
	}
	return nil
}

// Complete implements Backend.
func (b *OllamaBackend) Complete(ctx context.Context, request Request) (string, error) {
	body, err := json.Marshal(ollamaChatRequest{
		Model: request.Model,
		Messages: []ollamaMessage{
			{Role: "system", Content: request.SystemPrompt},
			{Role: "user", Content: request.Text},
		},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshaling request")
	}
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint(request.Settings.OllamaURL, "/api/chat"), bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "creating request")
	}
	httpRequest.Header.Set("Content-Type", "application/json")

	data, err := b.do(httpRequest)
	if err != nil {
		return "", err
	}
	result := gjson.GetManyBytes(data, "message.content", "response")
	for _, value := range result {
		if value.String() != "" {
			return value.String(), nil
		}
	}
	return "", nil
}

// Models implements Backend.
func (b *OllamaBackend) Models(ctx context.Context, s settings.Settings) ([]Model, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint(s.OllamaURL, "/api/tags"), nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	data, err := b.do(httpRequest)
	if err != nil {
		return nil, err
	}

	var models []Model
	gjson.GetBytes(data, "models").ForEach(func(_, value gjson.Result) bool {
		model := Model{Name: value.Get("name").String(), Size: value.Get("size").Int()}
		if modifiedAt, err := time.Parse(time.RFC3339Nano, value.Get("modified_at").String()); err == nil {
			model.ModifiedAt = modifiedAt
		}
		if model.Name != "" {
			models = append(models, model)
		}
		return true
	})
	return models, nil
}

func (b *OllamaBackend) do(request *http.Request) ([]byte, error) {
	response, err := b.client.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "Ollama API error")
	}
	defer response.Body.Close()
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, errors.Errorf("Ollama API error: %d", response.StatusCode)
	}
	data, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading response")
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("Ollama API error: invalid JSON response")
	}
	return data, nil
}

func endpoint(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + path
}
