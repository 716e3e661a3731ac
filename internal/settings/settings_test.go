package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "db", "mother.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func noEnvironment(string) string { return "" }

func TestDefault(t *testing.T) {
	settings := Default()
	require.Equal(t, ProviderOllama, settings.AIProvider)
	require.Equal(t, "http://localhost:11434", settings.OllamaURL)
	require.Equal(t, "llama3.1:8b", settings.CurrentModel)
	require.Equal(t, ColorThemeGreen, settings.ColorTheme)
	require.True(t, settings.EnableSounds)
	require.True(t, settings.ShowScanlines)
	require.NoError(t, settings.Validate())
}

func TestValidate(t *testing.T) {
	settings := Default()
	settings.AIProvider = "skynet"
	require.Error(t, settings.Validate())

	settings = Default()
	settings.ColorTheme = "pink"
	require.Error(t, settings.Validate())
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Default(), loaded)

	settings := Default()
	settings.AIProvider = ProviderAnthropic
	settings.EnableSounds = false
	require.NoError(t, store.Save(ctx, settings))

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(settings, loaded))

	require.NoError(t, store.Reset(ctx))
	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, Default(), loaded)
}

func TestStoreMergesOverDefaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.db.Exec(`REPLACE INTO settings (key, value) VALUES (?, ?)`, StorageKey, `{"aiProvider": "google", "enableSounds": false}`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	expected := Default()
	expected.AIProvider = ProviderGoogle
	expected.EnableSounds = false
	require.Equal(t, expected, loaded)
}

func TestStoreCorruptBlob(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	_, err := store.db.Exec(`REPLACE INTO settings (key, value) VALUES (?, ?)`, StorageKey, `{not json`)
	require.NoError(t, err)

	loaded, err := store.Load(ctx)
	require.ErrorIs(t, err, ErrCorruptSettings)
	require.Equal(t, Default(), loaded)

	manager, err := NewManager(ctx, store, noEnvironment)
	require.NoError(t, err)
	require.Equal(t, Default(), manager.Stored())
}

func TestManager(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	manager, err := NewManager(ctx, store, noEnvironment)
	require.NoError(t, err)

	require.NoError(t, manager.SetModel(ctx, "mistral:7b"))
	require.Equal(t, "mistral:7b", manager.Current().CurrentModel)
	require.Equal(t, ProviderOllama, manager.Current().AIProvider)

	require.NoError(t, manager.Update(ctx, Settings{AIProvider: ProviderOpenAI, OpenAIAPIKey: "sk-test"}))
	current := manager.Current()
	require.Equal(t, ProviderOpenAI, current.AIProvider)
	require.Equal(t, "sk-test", current.OpenAIAPIKey)
	require.Equal(t, "mistral:7b", current.CurrentModel)

	// Persisted.
	reloaded, err := NewManager(ctx, store, noEnvironment)
	require.NoError(t, err)
	require.Equal(t, current, reloaded.Current())

	require.Error(t, manager.Update(ctx, Settings{AIProvider: "skynet"}))
	require.Equal(t, ProviderOpenAI, manager.Current().AIProvider)
	require.Error(t, manager.SetModel(ctx, ""))

	require.NoError(t, manager.Reset(ctx))
	require.Equal(t, Default(), manager.Current())
	reloaded, err = NewManager(ctx, store, noEnvironment)
	require.NoError(t, err)
	require.Equal(t, Default(), reloaded.Current())
}

func TestManagerReplaceCanClearFields(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ctx, newTestStore(t), noEnvironment)
	require.NoError(t, err)

	settings := manager.Stored()
	settings.EnableSounds = false
	require.NoError(t, manager.Replace(ctx, settings))
	require.False(t, manager.Current().EnableSounds)
}

func TestEnvironmentFallback(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	environment := map[string]string{
		EnvOpenAIAPIKey: "sk-env",
		EnvOllamaURL:    "http://ollama:11434",
	}
	manager, err := NewManager(ctx, store, func(key string) string { return environment[key] })
	require.NoError(t, err)

	current := manager.Current()
	require.Equal(t, "sk-env", current.OpenAIAPIKey)
	require.Equal(t, "http://ollama:11434", current.OllamaURL)
	require.Empty(t, current.GoogleAPIKey)

	// Never persisted.
	require.NoError(t, manager.SetModel(ctx, "gpt-4"))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded.OpenAIAPIKey)

	// Explicit values win.
	require.NoError(t, manager.Update(ctx, Settings{OpenAIAPIKey: "sk-stored", OllamaURL: "http://custom:11434"}))
	current = manager.Current()
	require.Equal(t, "sk-stored", current.OpenAIAPIKey)
	require.Equal(t, "http://custom:11434", current.OllamaURL)
}

func TestEditorCommand(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ctx, newTestStore(t), noEnvironment)
	require.NoError(t, err)

	command := NewEditorCommand(ctx, manager, func(current Settings, opts ...survey.AskOpt) (Settings, error) {
		current.ColorTheme = ColorThemeAlienEarth
		current.ShowScanlines = false
		return current, nil
	})
	require.NoError(t, command.Run())
	require.Equal(t, ColorThemeAlienEarth, manager.Current().ColorTheme)
	require.False(t, manager.Current().ShowScanlines)
}

func TestEditorCommandInterrupted(t *testing.T) {
	ctx := context.Background()
	manager, err := NewManager(ctx, newTestStore(t), noEnvironment)
	require.NoError(t, err)

	command := NewEditorCommand(ctx, manager, func(current Settings, opts ...survey.AskOpt) (Settings, error) {
		return current, terminal.InterruptErr
	})
	require.NoError(t, command.Run())
	require.Equal(t, Default(), manager.Current())
}
