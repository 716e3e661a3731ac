package settings

import (
	"os"
	"slices"

	"github.com/pkg/errors"
)

// Provider selects the AI backend.
type Provider string

const (
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderGoogle    Provider = "google"
	ProviderAnthropic Provider = "anthropic"
)

// Providers in display order.
var Providers = []Provider{ProviderOllama, ProviderOpenAI, ProviderGoogle, ProviderAnthropic}

// ColorTheme of the terminal.
type ColorTheme string

const (
	ColorThemeGreen      ColorTheme = "green"
	ColorThemeYellow     ColorTheme = "yellow"
	ColorThemeBlue       ColorTheme = "blue"
	ColorThemeRed        ColorTheme = "red"
	ColorThemePurple     ColorTheme = "purple"
	ColorThemeCyan       ColorTheme = "cyan"
	ColorThemeAlienEarth ColorTheme = "alienEarth"
)

// ColorThemes in display order.
var ColorThemes = []ColorTheme{
	ColorThemeGreen, ColorThemeYellow, ColorThemeBlue, ColorThemeRed, ColorThemePurple, ColorThemeCyan, ColorThemeAlienEarth,
}

// Environment variables filling empty credentials. Never persisted.
const (
	EnvOpenAIAPIKey    = "MOTHER_OPENAI_API_KEY"
	EnvGoogleAPIKey    = "MOTHER_GOOGLE_API_KEY"
	EnvAnthropicAPIKey = "MOTHER_ANTHROPIC_API_KEY"
	EnvOllamaURL       = "MOTHER_OLLAMA_URL"
)

// Settings of the console. The JSON shape is the persisted blob.
type Settings struct {
	AIProvider      Provider   `json:"aiProvider"`
	OllamaURL       string     `json:"ollamaUrl"`
	OpenAIAPIKey    string     `json:"openaiApiKey"`
	GoogleAPIKey    string     `json:"googleApiKey"`
	AnthropicAPIKey string     `json:"anthropicApiKey"`
	CurrentModel    string     `json:"currentModel"`
	ColorTheme      ColorTheme `json:"colorTheme"`
	EnableSounds    bool       `json:"enableSounds"`
	ShowScanlines   bool       `json:"showScanlines"`
}

// Default settings.
func Default() Settings {
	return Settings{
		AIProvider:    ProviderOllama,
		OllamaURL:     "http://localhost:11434",
		CurrentModel:  "llama3.1:8b",
		ColorTheme:    ColorThemeGreen,
		EnableSounds:  true,
		ShowScanlines: true,
	}
}

// Validate the enumerated fields.
func (s Settings) Validate() error {
	if !slices.Contains(Providers, s.AIProvider) {
		return errors.Errorf("unsupported provider %q", s.AIProvider)
	}
	if !slices.Contains(ColorThemes, s.ColorTheme) {
		return errors.Errorf("unsupported color theme %q", s.ColorTheme)
	}
	return nil
}

// WithEnvironment fills empty credentials from the environment.
// The ollama url is taken from the environment unless it was changed from its default.
func (s Settings) WithEnvironment(getenv func(string) string) Settings {
	if getenv == nil {
		getenv = os.Getenv
	}
	fill := func(field *string, key string) {
		if *field == "" {
			*field = getenv(key)
		}
	}
	fill(&s.OpenAIAPIKey, EnvOpenAIAPIKey)
	fill(&s.GoogleAPIKey, EnvGoogleAPIKey)
	fill(&s.AnthropicAPIKey, EnvAnthropicAPIKey)
	if value := getenv(EnvOllamaURL); value != "" && (s.OllamaURL == "" || s.OllamaURL == Default().OllamaURL) {
		s.OllamaURL = value
	}
	return s
}
