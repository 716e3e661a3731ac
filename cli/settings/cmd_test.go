package settings

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/nostromo/mother/internal/cli"
	"github.com/nostromo/mother/internal/settings"
)

func newManager(t *testing.T) *settings.Manager {
	t.Helper()
	store, err := settings.OpenSQLiteStore(filepath.Join(t.TempDir(), "mother.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	manager, err := settings.NewManager(context.Background(), store, func(string) string { return "" })
	require.NoError(t, err)
	return manager
}

func run(t *testing.T, manager *settings.Manager, edit settings.EditFunc, args ...string) string {
	t.Helper()
	buffer := &bytes.Buffer{}
	previousOutput, previousNoColor := cli.Output, color.NoColor
	cli.Output, color.NoColor = buffer, true
	t.Cleanup(func() { cli.Output, color.NoColor = previousOutput, previousNoColor })

	cmd := NewCmd(manager, edit)
	cmd.SetArgs(args)
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	return buffer.String()
}

func TestEdit(t *testing.T) {
	manager := newManager(t)
	edit := func(current settings.Settings, _ ...survey.AskOpt) (settings.Settings, error) {
		current.AIProvider = settings.ProviderAnthropic
		current.AnthropicAPIKey = "sk-ant-secret-1234"
		return current, nil
	}
	output := run(t, manager, edit)
	require.Equal(t, settings.ProviderAnthropic, manager.Stored().AIProvider)
	require.Contains(t, output, "********1234")
	require.NotContains(t, output, "secret")
}

func TestShowAndReset(t *testing.T) {
	manager := newManager(t)
	require.NoError(t, manager.SetModel(context.Background(), "mistral:7b"))
	require.Contains(t, run(t, manager, nil, "show"), "mistral:7b")

	output := run(t, manager, nil, "reset", "--yes")
	require.Contains(t, output, "SETTINGS RESTORED TO DEFAULTS.")
	require.Equal(t, settings.Default(), manager.Stored())
}

func TestMask(t *testing.T) {
	require.Equal(t, "-", mask(""))
	require.Equal(t, "***", mask("abc"))
	require.Equal(t, "********6789", mask("sk-123456789"))
}
